package handler

import (
	"net/http"

	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/dto"
	"github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

type VendorHandler struct{ svc service.VendorService }

func NewVendorHandler(svc service.VendorService) *VendorHandler {
	return &VendorHandler{svc: svc}
}

func (h *VendorHandler) Create(c *gin.Context) {
	var req dto.CreateVendorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	userID, _ := caller(c)
	v, err := h.svc.Create(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

func (h *VendorHandler) List(c *gin.Context) {
	vendors, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vendors)
}

func (h *VendorHandler) Get(c *gin.Context) {
	v, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if v == nil {
		notFound(c, "Vendor")
		return
	}
	c.JSON(http.StatusOK, v)
}
