package infra

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func pricedOrder() *model.Order {
	var prices model.PriceMap
	prices.Set("a", decimal.NewFromInt(100))
	approved := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return &model.Order{
		ID: "order-1",
		Items: []model.OrderItem{
			{ID: "a", Name: "Cola 500ml", Volume: "500ml", RequestedQuantity: 2},
			{ID: "b", Name: "Soda", RequestedQuantity: 1},
		},
		Status: model.OrderApproved,
		AdminPricing: &model.Pricing{
			Subtotal:   decimal.NewFromInt(200),
			Tax:        decimal.NewFromInt(24),
			Total:      decimal.NewFromInt(224),
			ItemPrices: prices,
		},
		SalesmanNotes: "deliver before noon",
		ApprovedAt:    &approved,
	}
}

func TestEffectivePricing(t *testing.T) {
	o := pricedOrder()
	assert.Same(t, o.AdminPricing, EffectivePricing(o))

	o.FinalPricing = &model.Pricing{}
	assert.Same(t, o.FinalPricing, EffectivePricing(o))

	assert.Nil(t, EffectivePricing(&model.Order{}))
}

func TestGenerateOrderPDF(t *testing.T) {
	dir := t.TempDir()
	vendor := &model.Vendor{Name: "Acme Traders", Address: "12 Dock Road"}

	path, err := GenerateOrderPDF(pricedOrder(), vendor, dir)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF-")))
}

func TestGenerateOrderPDFUnpriced(t *testing.T) {
	_, err := GenerateOrderPDF(&model.Order{ID: "bare"}, nil, t.TempDir())
	assert.NoError(t, err)
}

func TestExportInventoryXLSX(t *testing.T) {
	item := model.InventoryItem{
		ID:           "i1",
		Name:         "Cola 500ml",
		CurrentStock: 40,
		MinStock:     10,
		MaxStock:     100,
		UnitCost:     decimal.RequireFromString("2.5"),
	}
	item.Refresh()

	raw, err := ExportInventoryXLSX([]model.InventoryItem{item})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Inventory"}, f.GetSheetList())
	name, err := f.GetCellValue("Inventory", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Cola 500ml", name)
	status, err := f.GetCellValue("Inventory", "I2")
	require.NoError(t, err)
	assert.Equal(t, "in-stock", status)
	value, err := f.GetCellValue("Inventory", "K2")
	require.NoError(t, err)
	assert.Equal(t, "100", value)
}
