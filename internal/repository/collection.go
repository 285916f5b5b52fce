package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/model"
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/storage"
)

// Collection loads and saves a whole JSON array stored under one key.
// Services keep the loaded slice in memory and write it back after each
// mutation.
type Collection[T any] interface {
	Load(ctx context.Context) ([]T, error)
	Save(ctx context.Context, items []T) error
}

type (
	UserRepository      = Collection[model.User]
	InventoryRepository = Collection[model.InventoryItem]
	MovementRepository  = Collection[model.StockMovement]
	TransferRepository  = Collection[model.StockTransfer]
	AlertRepository     = Collection[model.InventoryAlert]
	OrderRepository     = Collection[model.Order]
	VendorRepository    = Collection[model.Vendor]
)

type jsonCollection[T any] struct {
	st  storage.Storage
	key string
	// legacy keys are read, in order, until key has been written once. Writes
	// always go to key.
	legacy []string
}

func newCollection[T any](st storage.Storage, key string, legacy ...string) *jsonCollection[T] {
	return &jsonCollection[T]{st: st, key: key, legacy: legacy}
}

func NewUserRepository(st storage.Storage) UserRepository {
	return newCollection[model.User](st, storage.KeyUsers)
}

func NewInventoryRepository(st storage.Storage) InventoryRepository {
	return newCollection[model.InventoryItem](st, storage.KeyInventory, storage.KeyInventoryLegacy)
}

func NewMovementRepository(st storage.Storage) MovementRepository {
	return newCollection[model.StockMovement](st, storage.KeyMovements)
}

func NewTransferRepository(st storage.Storage) TransferRepository {
	return newCollection[model.StockTransfer](st, storage.KeyTransfers)
}

func NewAlertRepository(st storage.Storage) AlertRepository {
	return newCollection[model.InventoryAlert](st, storage.KeyAlerts)
}

func NewOrderRepository(st storage.Storage) OrderRepository {
	return newCollection[model.Order](st, storage.KeyOrders)
}

func NewVendorRepository(st storage.Storage) VendorRepository {
	return newCollection[model.Vendor](st, storage.KeyVendors)
}

// Load returns the stored items, or an empty slice when nothing was stored yet.
func (c *jsonCollection[T]) Load(ctx context.Context) ([]T, error) {
	items, found, err := c.read(ctx, c.key)
	if err != nil {
		return nil, err
	}
	for _, key := range c.legacy {
		if found {
			break
		}
		if items, found, err = c.read(ctx, key); err != nil {
			return nil, err
		}
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// read reports found=false when key was never written; an empty array that
// was saved counts as found.
func (c *jsonCollection[T]) read(ctx context.Context, key string) ([]T, bool, error) {
	raw, err := c.st.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load %s: %w", key, err)
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false, fmt.Errorf("decode %s: %w", key, err)
	}
	return items, true, nil
}

func (c *jsonCollection[T]) Save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.key, err)
	}
	if err := c.st.Set(ctx, c.key, raw); err != nil {
		return fmt.Errorf("save %s: %w", c.key, err)
	}
	return nil
}
