package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus moves linearly:
// pending → admin_priced → [salesman_adjusted] → approved | rejected
type OrderStatus string

const (
	OrderPending          OrderStatus = "pending"
	OrderAdminPriced      OrderStatus = "admin_priced"
	OrderSalesmanAdjusted OrderStatus = "salesman_adjusted"
	OrderApproved         OrderStatus = "approved"
	OrderRejected         OrderStatus = "rejected"
)

// OrderItem is one requested line. ID is the inventory item id and keys the
// price maps.
type OrderItem struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	Category          string           `json:"category"`
	Volume            string           `json:"volume"`
	RequestedQuantity int              `json:"requestedQuantity"`
	UnitPrice         *decimal.Decimal `json:"unitPrice,omitempty"`
	LineTotal         *decimal.Decimal `json:"lineTotal,omitempty"`
	AdminPrice        *decimal.Decimal `json:"adminPrice,omitempty"`
	FinalPrice        *decimal.Decimal `json:"finalPrice,omitempty"`
}

// Pricing is the result of one pricing stage.
type Pricing struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	Tax        decimal.Decimal `json:"tax"`
	Total      decimal.Decimal `json:"total"`
	ItemPrices PriceMap        `json:"itemPrices"`
}

func (p *Pricing) clone() *Pricing {
	if p == nil {
		return nil
	}
	c := *p
	c.ItemPrices = p.ItemPrices.Clone()
	return &c
}

// AdjustmentRange bounds the per-item delta a salesman may apply.
type AdjustmentRange struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

type Order struct {
	ID                   string           `json:"id"`
	SalesmanID           string           `json:"salesmanId"`
	VendorID             string           `json:"vendorId"`
	Items                []OrderItem      `json:"items"`
	Status               OrderStatus      `json:"status"`
	GSTEnabled           bool             `json:"gstEnabled"`
	SalesmanPricing      *Pricing         `json:"salesmanPricing,omitempty"`
	AdminPricing         *Pricing         `json:"adminPricing,omitempty"`
	FinalPricing         *Pricing         `json:"finalPricing,omitempty"`
	AllowPriceAdjustment bool             `json:"allowPriceAdjustment"`
	PriceAdjustmentRange *AdjustmentRange `json:"priceAdjustmentRange,omitempty"`
	SalesmanNotes        string           `json:"salesmanNotes,omitempty"`
	AdminNotes           string           `json:"adminNotes,omitempty"`
	CreatedAt            time.Time        `json:"createdAt"`
	UpdatedAt            time.Time        `json:"updatedAt"`
	AdminPricedAt        *time.Time       `json:"adminPricedAt,omitempty"`
	SalesmanAdjustedAt   *time.Time       `json:"salesmanAdjustedAt,omitempty"`
	ApprovedAt           *time.Time       `json:"approvedAt,omitempty"`
}

// Clone returns a copy that shares no mutable state with o.
func (o Order) Clone() Order {
	c := o
	c.Items = make([]OrderItem, len(o.Items))
	copy(c.Items, o.Items)
	c.SalesmanPricing = o.SalesmanPricing.clone()
	c.AdminPricing = o.AdminPricing.clone()
	c.FinalPricing = o.FinalPricing.clone()
	if o.PriceAdjustmentRange != nil {
		r := *o.PriceAdjustmentRange
		c.PriceAdjustmentRange = &r
	}
	return c
}
