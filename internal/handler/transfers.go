package handler

import (
	"net/http"

	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/dto"

	"github.com/gin-gonic/gin"
)

func (h *InventoryHandler) ListTransfers(c *gin.Context) {
	transfers, err := h.svc.ListTransfers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, transfers)
}

func (h *InventoryHandler) CreateTransfer(c *gin.Context) {
	var req dto.CreateTransferRequest
	if !bindAndValidate(c, &req) {
		return
	}
	t, err := h.svc.CreateTransfer(c.Request.Context(), req, callerName(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if t == nil {
		notFound(c, "Item")
		return
	}
	c.JSON(http.StatusCreated, t)
}

// UpdateTransferStatus advances a transfer. Completing a warehouse-to-store
// transfer takes the quantity out of the source item.
func (h *InventoryHandler) UpdateTransferStatus(c *gin.Context) {
	var req dto.UpdateTransferStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	t, err := h.svc.UpdateTransferStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	if t == nil {
		notFound(c, "Transfer")
		return
	}
	c.JSON(http.StatusOK, t)
}
