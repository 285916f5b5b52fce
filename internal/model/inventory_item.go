package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockStatus is derived from stock thresholds; it is never set directly.
type StockStatus string

const (
	StatusInStock     StockStatus = "in-stock"
	StatusLowStock    StockStatus = "low-stock"
	StatusOutOfStock  StockStatus = "out-of-stock"
	StatusOverstocked StockStatus = "overstocked"
)

// InventoryItem is one stocked product at a location.
// Status and TotalValue are derived fields, see Refresh.
type InventoryItem struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	Volume         string          `json:"volume"`
	BottlesPerCase int             `json:"bottlesPerCase"`
	CurrentStock   int             `json:"currentStock"`
	MinStock       int             `json:"minStock"`
	MaxStock       int             `json:"maxStock"`
	Status         StockStatus     `json:"status"`
	UnitCost       decimal.Decimal `json:"unitCost"`
	TotalValue     decimal.Decimal `json:"totalValue"`
	ReorderPoint   int             `json:"reorderPoint"`
	Location       string          `json:"location"`
	Supplier       string          `json:"supplier"`
	LastUpdated    time.Time       `json:"lastUpdated"`
}

// DeriveStatus maps a stock level onto its status category. The checks run in
// order, so an empty item is out-of-stock even when minStock is 0.
func DeriveStatus(current, minStock, maxStock int) StockStatus {
	switch {
	case current <= 0:
		return StatusOutOfStock
	case current <= minStock:
		return StatusLowStock
	case current >= maxStock:
		return StatusOverstocked
	default:
		return StatusInStock
	}
}

// Refresh recomputes Status and TotalValue from the current stock.
func (i *InventoryItem) Refresh() {
	i.Status = DeriveStatus(i.CurrentStock, i.MinStock, i.MaxStock)
	i.TotalValue = i.UnitCost.Mul(decimal.NewFromInt(int64(i.CurrentStock)))
}
