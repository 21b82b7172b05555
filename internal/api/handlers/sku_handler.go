package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ponna-create/wkly-nuts-sub000/internal/domain"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/service"
)

type SKUHandler struct {
	service *service.SKUService
}

func NewSKUHandler(service *service.SKUService) *SKUHandler {
	return &SKUHandler{service: service}
}

func (h *SKUHandler) List(c *gin.Context) {
	skus, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, "failed to fetch skus", err)
		return
	}
	c.JSON(http.StatusOK, skus)
}

func (h *SKUHandler) Get(c *gin.Context) {
	sku, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "failed to fetch sku", err)
		return
	}
	c.JSON(http.StatusOK, sku)
}

func (h *SKUHandler) Create(c *gin.Context) {
	var sku domain.SKU
	if !bindJSON(c, &sku) {
		return
	}
	result, err := h.service.Create(c.Request.Context(), &sku)
	if err != nil {
		respondError(c, "failed to create sku", err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *SKUHandler) Update(c *gin.Context) {
	var sku domain.SKU
	if !bindJSON(c, &sku) {
		return
	}
	result, err := h.service.Update(c.Request.Context(), c.Param("id"), &sku)
	if err != nil {
		respondError(c, "failed to update sku", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *SKUHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "failed to delete sku", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Recalculate refreshes the SKU's captured prices and cached pack costs.
func (h *SKUHandler) Recalculate(c *gin.Context) {
	result, err := h.service.Recalculate(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "failed to recalculate sku", err)
		return
	}
	c.JSON(http.StatusOK, result)
}
