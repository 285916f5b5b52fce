package dto

import (
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/model"
	"github.com/shopspring/decimal"
)

// ─── Items ───────────────────────────────────────────────────────────────────

type CreateItemRequest struct {
	Name           string          `json:"name"           validate:"required,max=200"`
	Category       string          `json:"category"       validate:"omitempty,max=100"`
	Volume         string          `json:"volume"         validate:"omitempty,max=50"`
	BottlesPerCase int             `json:"bottlesPerCase" validate:"min=0"`
	CurrentStock   int             `json:"currentStock"   validate:"min=0"`
	MinStock       int             `json:"minStock"       validate:"min=0"`
	MaxStock       int             `json:"maxStock"       validate:"min=0"`
	UnitCost       decimal.Decimal `json:"unitCost"       validate:"min=0"`
	ReorderPoint   int             `json:"reorderPoint"   validate:"min=0"`
	Location       string          `json:"location"       validate:"omitempty,max=200"`
	Supplier       string          `json:"supplier"       validate:"omitempty,max=200"`
}

type UpdateStockRequest struct {
	Quantity int                `json:"quantity" validate:"min=0"`
	Type     model.MovementType `json:"type"     validate:"required,oneof=in out"`
	Reason   string             `json:"reason"   validate:"required,max=500"`
	Location string             `json:"location" validate:"omitempty,max=200"`
}

// ─── Movements ───────────────────────────────────────────────────────────────

type MovementFilter struct {
	ItemID string             `form:"itemId"`
	Type   model.MovementType `form:"type"`
	Page   int                `form:"page"`
	Limit  int                `form:"limit"`
}

type MovementListResponse struct {
	Data  []model.StockMovement `json:"data"`
	Total int                   `json:"total"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
}

// ─── Summary ─────────────────────────────────────────────────────────────────

type InventorySummary struct {
	TotalItems       int             `json:"totalItems"`
	TotalUnits       int             `json:"totalUnits"`
	TotalValue       decimal.Decimal `json:"totalValue"`
	InStock          int             `json:"inStock"`
	LowStock         int             `json:"lowStock"`
	OutOfStock       int             `json:"outOfStock"`
	Overstocked      int             `json:"overstocked"`
	PendingTransfers int             `json:"pendingTransfers"`
}

// ─── Transfers ───────────────────────────────────────────────────────────────

type CreateTransferRequest struct {
	ItemID       string             `json:"itemId"       validate:"required"`
	FromLocation string             `json:"fromLocation" validate:"required,max=200"`
	ToLocation   string             `json:"toLocation"   validate:"required,max=200"`
	Quantity     int                `json:"quantity"     validate:"gt=0"`
	Type         model.TransferType `json:"type"         validate:"required,oneof=warehouse-to-store store-to-warehouse warehouse-to-warehouse store-to-store"`
	Notes        string             `json:"notes"        validate:"omitempty,max=500"`
}

type UpdateTransferStatusRequest struct {
	Status model.TransferStatus `json:"status" validate:"required,oneof=pending in-transit completed cancelled"`
	Notes  string               `json:"notes"  validate:"omitempty,max=500"`
}

// ─── Alerts ──────────────────────────────────────────────────────────────────

type AlertFilter struct {
	Unacknowledged bool `form:"unacknowledged"`
}
