package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ponna-create/wkly-nuts-sub000/internal/costing"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/service"
)

type PricingHandler struct {
	service *service.PricingService
}

func NewPricingHandler(service *service.PricingService) *PricingHandler {
	return &PricingHandler{service: service}
}

func (h *PricingHandler) List(c *gin.Context) {
	strategies, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, "failed to fetch pricing strategies", err)
		return
	}
	c.JSON(http.StatusOK, strategies)
}

func (h *PricingHandler) Get(c *gin.Context) {
	pt, ok := packTypeParam(c, c.Param("pack_type"))
	if !ok {
		return
	}
	strategy, err := h.service.Get(c.Request.Context(), c.Param("sku_id"), pt)
	if err != nil {
		respondError(c, "failed to fetch pricing strategy", err)
		return
	}
	c.JSON(http.StatusOK, strategy)
}

// Defaults returns the calculator input to pre-populate the pricing form with.
func (h *PricingHandler) Defaults(c *gin.Context) {
	pt, ok := packTypeParam(c, c.Param("pack_type"))
	if !ok {
		return
	}
	in, err := h.service.Defaults(c.Request.Context(), c.Param("sku_id"), pt)
	if err != nil {
		respondError(c, "failed to load pricing defaults", err)
		return
	}
	c.JSON(http.StatusOK, in)
}

// Calculate previews a strategy without saving it.
func (h *PricingHandler) Calculate(c *gin.Context) {
	var in costing.StrategyInput
	if !bindJSON(c, &in) {
		return
	}
	strategy, err := h.service.Preview(c.Request.Context(), in)
	if err != nil {
		respondError(c, "failed to calculate pricing", err)
		return
	}
	c.JSON(http.StatusOK, strategy)
}

func (h *PricingHandler) Save(c *gin.Context) {
	var in costing.StrategyInput
	if !bindJSON(c, &in) {
		return
	}
	strategy, err := h.service.Save(c.Request.Context(), in)
	if err != nil {
		respondError(c, "failed to save pricing strategy", err)
		return
	}
	c.JSON(http.StatusOK, strategy)
}

func (h *PricingHandler) Delete(c *gin.Context) {
	pt, ok := packTypeParam(c, c.Param("pack_type"))
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), c.Param("sku_id"), pt); err != nil {
		respondError(c, "failed to delete pricing strategy", err)
		return
	}
	c.Status(http.StatusNoContent)
}
