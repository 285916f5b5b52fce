// Package storage persists the application's keyed JSON documents. Every
// collection lives under one key; values are raw JSON.
package storage

import (
	"context"
	"errors"
)

// Keys of the persisted layout.
const (
	KeySession         = "wims-session-v4"
	KeyLogouts         = "wims-logouts"
	KeyUsers           = "wims-users-v4"
	KeyInventory       = "wims-inventory-v2"
	KeyInventoryLegacy = "wims-inventory"
	KeyTransfers       = "wims-transfers"
	KeyMovements       = "wims-movements"
	KeyAlerts          = "wims-alerts"
	KeyOrders          = "wims-orders"
	KeyVendors         = "wims-vendors"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("storage: key not found")

// Storage is a key/value store for JSON documents.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}
