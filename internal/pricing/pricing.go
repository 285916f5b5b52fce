// Package pricing holds the order pricing arithmetic. Everything here is pure:
// callers own the orders and decide what to do with the results.
package pricing

import (
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/model"

	"github.com/shopspring/decimal"
)

var (
	// AdminTaxRate is the GST rate applied when an admin prices a GST order.
	AdminTaxRate = decimal.RequireFromString("0.12")

	// AdjustmentTaxRate is applied to every salesman-adjusted total, GST or not.
	// NOTE: this does not match AdminTaxRate. Both rates are existing behaviour
	// that downstream totals depend on; do not unify them here.
	AdjustmentTaxRate = decimal.RequireFromString("0.10")

	adjustmentMin = decimal.NewFromInt(10)
	adjustmentMax = decimal.NewFromInt(15)
)

// DefaultAdjustmentRange is attached to every order that allows adjustment.
// It is policy, not a per-order setting.
func DefaultAdjustmentRange() model.AdjustmentRange {
	return model.AdjustmentRange{Min: adjustmentMin, Max: adjustmentMax}
}

// AdminTaxRateFor returns the admin-stage rate for an order.
func AdminTaxRateFor(gst bool) decimal.Decimal {
	if gst {
		return AdminTaxRate
	}
	return decimal.Zero
}

// Compute prices every line of items at prices (missing ids price at zero)
// and applies rate to the subtotal. The returned ItemPrices covers every item
// in line order.
func Compute(items []model.OrderItem, prices model.PriceMap, rate decimal.Decimal) model.Pricing {
	var itemPrices model.PriceMap
	subtotal := decimal.Zero
	for _, it := range items {
		p := prices.Get(it.ID)
		itemPrices.Set(it.ID, p)
		subtotal = subtotal.Add(p.Mul(decimal.NewFromInt(int64(it.RequestedQuantity))))
	}
	tax := subtotal.Mul(rate)
	return model.Pricing{
		Subtotal:   subtotal,
		Tax:        tax,
		Total:      subtotal.Add(tax),
		ItemPrices: itemPrices,
	}
}

// Admin computes the admin pricing stage.
func Admin(items []model.OrderItem, prices model.PriceMap, gst bool) model.Pricing {
	return Compute(items, prices, AdminTaxRateFor(gst))
}

// Adjusted computes the salesman stage: base price plus delta per item, both
// defaulting to zero, taxed at AdjustmentTaxRate.
func Adjusted(items []model.OrderItem, base, deltas model.PriceMap) model.Pricing {
	var prices model.PriceMap
	for _, it := range items {
		prices.Set(it.ID, base.Get(it.ID).Add(deltas.Get(it.ID)))
	}
	return Compute(items, prices, AdjustmentTaxRate)
}

// ClampAdjustment bounds delta to [-r.Max, +r.Max].
func ClampAdjustment(delta decimal.Decimal, r model.AdjustmentRange) decimal.Decimal {
	limit := r.Max.Abs()
	if delta.GreaterThan(limit) {
		return limit
	}
	if delta.LessThan(limit.Neg()) {
		return limit.Neg()
	}
	return delta
}

// ClampAll clamps every delta in deltas, keeping key order.
func ClampAll(deltas model.PriceMap, r model.AdjustmentRange) model.PriceMap {
	var out model.PriceMap
	for _, e := range deltas.Entries() {
		out.Set(e.Key, ClampAdjustment(e.Value, r))
	}
	return out
}
