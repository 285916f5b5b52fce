package model

import "time"

// TransferOperator is recorded as approver on every completed transfer.
const TransferOperator = "Warehouse Operator"

type TransferStatus string

const (
	TransferPending   TransferStatus = "pending"
	TransferInTransit TransferStatus = "in-transit"
	TransferCompleted TransferStatus = "completed"
	TransferCancelled TransferStatus = "cancelled"
)

// CanTransitionTo reports whether moving from s to next is allowed.
// completed and cancelled are terminal.
func (s TransferStatus) CanTransitionTo(next TransferStatus) bool {
	switch s {
	case TransferPending:
		return next == TransferInTransit || next == TransferCancelled
	case TransferInTransit:
		return next == TransferCompleted || next == TransferCancelled
	}
	return false
}

type TransferType string

const (
	TransferWarehouseToStore     TransferType = "warehouse-to-store"
	TransferStoreToWarehouse     TransferType = "store-to-warehouse"
	TransferWarehouseToWarehouse TransferType = "warehouse-to-warehouse"
	TransferStoreToStore         TransferType = "store-to-store"
)

func (t TransferType) Valid() bool {
	switch t {
	case TransferWarehouseToStore, TransferStoreToWarehouse, TransferWarehouseToWarehouse, TransferStoreToStore:
		return true
	}
	return false
}

// StockTransfer is a request to move stock between locations. It reserves
// nothing; stock only moves when a warehouse-to-store transfer completes.
type StockTransfer struct {
	ID           string         `json:"id"`
	ItemID       string         `json:"itemId"`
	FromLocation string         `json:"fromLocation"`
	ToLocation   string         `json:"toLocation"`
	Quantity     int            `json:"quantity"`
	Type         TransferType   `json:"type"`
	Status       TransferStatus `json:"status"`
	RequestedBy  string         `json:"requestedBy"`
	ApprovedBy   *string        `json:"approvedBy,omitempty"`
	Notes        string         `json:"notes,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	CompletedAt  *time.Time     `json:"completedAt,omitempty"`
}
