package dto

import (
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/model"
)

type OrderItemRequest struct {
	ID                string `json:"id"                validate:"required"`
	Name              string `json:"name"              validate:"required,max=200"`
	Category          string `json:"category"          validate:"omitempty,max=100"`
	Volume            string `json:"volume"            validate:"omitempty,max=50"`
	RequestedQuantity int    `json:"requestedQuantity" validate:"gt=0"`
}

// CreateOrderRequest carries an optional salesman price proposal keyed by item id.
type CreateOrderRequest struct {
	VendorID       string             `json:"vendorId"       validate:"required"`
	Items          []OrderItemRequest `json:"items"          validate:"required,min=1,dive"`
	GSTEnabled     bool               `json:"gstEnabled"`
	ProposedPrices model.PriceMap     `json:"proposedPrices"`
	Notes          string             `json:"notes"          validate:"omitempty,max=1000"`
}

// SetPricingRequest ignores any caller-supplied range; see pricing.DefaultAdjustmentRange.
type SetPricingRequest struct {
	ItemPrices      model.PriceMap `json:"itemPrices"`
	Notes           string         `json:"notes"           validate:"omitempty,max=1000"`
	AllowAdjustment bool           `json:"allowAdjustment"`
}

type AdjustmentRequest struct {
	Adjustments model.PriceMap `json:"adjustments"`
}

type RejectOrderRequest struct {
	Reason string `json:"reason" validate:"required,max=1000"`
}

type OrderFilter struct {
	Status model.OrderStatus `form:"status"`
}
