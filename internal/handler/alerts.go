package handler

import (
	"net/http"

	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/apierror"
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/dto"

	"github.com/gin-gonic/gin"
)

func (h *InventoryHandler) ListAlerts(c *gin.Context) {
	var filter dto.AlertFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	alerts, err := h.svc.ListAlerts(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, alerts)
}

func (h *InventoryHandler) AcknowledgeAlert(c *gin.Context) {
	alert, err := h.svc.AcknowledgeAlert(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if alert == nil {
		notFound(c, "Alert")
		return
	}
	c.JSON(http.StatusOK, alert)
}
