package handler

import (
	"net/http"

	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/apierror"
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/dto"
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/model"
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/pricing"
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// OrderHandler exposes the pricing workflow. Salesmen only ever see their own
// orders; other salesmen's orders answer 404.
type OrderHandler struct{ svc service.OrderService }

func NewOrderHandler(svc service.OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// Create godoc
// @Summary Submit an order for admin pricing
// @Tags orders
// @Accept json
// @Produce json
// @Param body body dto.CreateOrderRequest true "Order"
// @Success 201 {object} model.Order
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	userID, _ := caller(c)
	order, err := h.svc.Create(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) List(c *gin.Context) {
	var filter dto.OrderFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	salesmanID := ""
	if userID, role := caller(c); role == model.RoleSalesman {
		salesmanID = userID
	}
	orders, err := h.svc.List(c.Request.Context(), filter, salesmanID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) Get(c *gin.Context) {
	order, ok := h.visibleOrder(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, order)
}

// SetPricing godoc
// @Summary Set admin base prices
// @Description Tax is 12% when the order has GST enabled. Allowing adjustment
// @Description always grants the default range.
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order id"
// @Param body body dto.SetPricingRequest true "Prices keyed by item id"
// @Success 200 {object} model.Order
// @Failure 404 {object} apierror.APIError
// @Router /v1/orders/{id}/pricing [put]
func (h *OrderHandler) SetPricing(c *gin.Context) {
	var req dto.SetPricingRequest
	if !bindAndValidate(c, &req) {
		return
	}
	order, err := h.svc.SetAdminPricing(c.Request.Context(), c.Param("id"), req)
	h.respond(c, order, err)
}

// Adjust clamps the salesman's deltas to the order's range before applying
// them. An order that does not allow adjustment comes back unchanged.
func (h *OrderHandler) Adjust(c *gin.Context) {
	var req dto.AdjustmentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	order, ok := h.visibleOrder(c)
	if !ok {
		return
	}
	bounds := pricing.DefaultAdjustmentRange()
	if order.PriceAdjustmentRange != nil {
		bounds = *order.PriceAdjustmentRange
	}
	deltas := pricing.ClampAll(req.Adjustments, bounds)

	updated, err := h.svc.ApplyAdjustment(c.Request.Context(), order.ID, deltas)
	h.respond(c, updated, err)
}

func (h *OrderHandler) Approve(c *gin.Context) {
	order, err := h.svc.Approve(c.Request.Context(), c.Param("id"))
	h.respond(c, order, err)
}

func (h *OrderHandler) Reject(c *gin.Context) {
	var req dto.RejectOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	order, err := h.svc.Reject(c.Request.Context(), c.Param("id"), req.Reason)
	h.respond(c, order, err)
}

// visibleOrder loads the order named in the path and writes 404 when it is
// missing or belongs to another salesman.
func (h *OrderHandler) visibleOrder(c *gin.Context) (*model.Order, bool) {
	order, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	userID, role := caller(c)
	if order == nil || role == model.RoleSalesman && order.SalesmanID != userID {
		notFound(c, "Order")
		return nil, false
	}
	return order, true
}

func (h *OrderHandler) respond(c *gin.Context, order *model.Order, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	if order == nil {
		notFound(c, "Order")
		return
	}
	c.JSON(http.StatusOK, order)
}
