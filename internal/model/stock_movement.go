package model

import "time"

// MovementType: "in" | "out" | "transfer" | "adjustment"
type MovementType string

const (
	MovementIn         MovementType = "in"
	MovementOut        MovementType = "out"
	MovementTransfer   MovementType = "transfer"
	MovementAdjustment MovementType = "adjustment"
)

// StockMovement is an append-only ledger entry. Entries are never modified or
// deleted; the log is kept most-recent-first.
type StockMovement struct {
	ID            string       `json:"id"`
	ItemID        string       `json:"itemId"`
	Type          MovementType `json:"type"`
	Quantity      int          `json:"quantity"`
	PreviousStock int          `json:"previousStock"`
	NewStock      int          `json:"newStock"`
	Reason        string       `json:"reason"`
	Location      string       `json:"location"`
	PerformedBy   string       `json:"performedBy"`
	Timestamp     time.Time    `json:"timestamp"`
	OrderID       *string      `json:"orderId,omitempty"`
	TransferID    *string      `json:"transferId,omitempty"`
}
