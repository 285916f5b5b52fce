package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/apierror"
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/dto"
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/infra"
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// InventoryHandler serves items, stock movements, transfers and alerts.
type InventoryHandler struct{ svc service.InventoryService }

func NewInventoryHandler(svc service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

func (h *InventoryHandler) CreateItem(c *gin.Context) {
	var req dto.CreateItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	item, err := h.svc.CreateItem(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *InventoryHandler) ListItems(c *gin.Context) {
	items, err := h.svc.ListItems(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *InventoryHandler) GetItem(c *gin.Context) {
	item, err := h.svc.GetItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if item == nil {
		notFound(c, "Item")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *InventoryHandler) RemoveItem(c *gin.Context) {
	removed, err := h.svc.RemoveItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !removed {
		notFound(c, "Item")
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateStock godoc
// @Summary Move stock in or out of an item
// @Description Outgoing movements are floored at zero. Returns the refreshed item.
// @Tags inventory
// @Accept json
// @Produce json
// @Param id path string true "Item id"
// @Param body body dto.UpdateStockRequest true "Movement"
// @Success 200 {object} model.InventoryItem
// @Failure 404 {object} apierror.APIError
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/inventory/{id}/stock [post]
func (h *InventoryHandler) UpdateStock(c *gin.Context) {
	var req dto.UpdateStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	item, err := h.svc.UpdateStock(c.Request.Context(), c.Param("id"), req, callerName(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if item == nil {
		notFound(c, "Item")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *InventoryHandler) Summary(c *gin.Context) {
	sum, err := h.svc.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

func (h *InventoryHandler) ListMovements(c *gin.Context) {
	var filter dto.MovementFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListMovements(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Export streams the current inventory as an XLSX workbook.
func (h *InventoryHandler) Export(c *gin.Context) {
	items, err := h.svc.ListItems(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	data, err := infra.ExportInventoryXLSX(items)
	if err != nil {
		respondError(c, err)
		return
	}
	filename := fmt.Sprintf("inventory_%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
