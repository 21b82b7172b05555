package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Ponna-create/wkly-nuts-sub000/internal/costing"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/service"
)

type ProductionHandler struct {
	service *service.ProductionService
}

func NewProductionHandler(service *service.ProductionService) *ProductionHandler {
	return &ProductionHandler{service: service}
}

func (h *ProductionHandler) parseInput(c *gin.Context) (service.PlanInput, bool) {
	var in service.PlanInput
	if err := c.ShouldBindQuery(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query", "details": err.Error()})
		return in, false
	}
	if raw := strings.TrimSpace(string(in.PackType)); raw != "" {
		pt, ok := packTypeParam(c, raw)
		if !ok {
			return in, false
		}
		in.PackType = pt
	}
	return in, true
}

func (h *ProductionHandler) parseMode(c *gin.Context) (costing.PurchaseMode, bool) {
	mode, ok := costing.ParsePurchaseMode(c.Query("mode"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid purchase mode", "details": fmt.Sprintf("unknown mode %q", c.Query("mode"))})
	}
	return mode, ok
}

func (h *ProductionHandler) Plan(c *gin.Context) {
	in, ok := h.parseInput(c)
	if !ok {
		return
	}
	plan, err := h.service.Plan(c.Request.Context(), in)
	if err != nil {
		respondError(c, "failed to plan production", err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *ProductionHandler) PurchaseList(c *gin.Context) {
	in, ok := h.parseInput(c)
	if !ok {
		return
	}
	mode, ok := h.parseMode(c)
	if !ok {
		return
	}
	_, list, err := h.service.PurchaseList(c.Request.Context(), in, mode)
	if err != nil {
		respondError(c, "failed to build purchase list", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ProductionHandler) Export(c *gin.Context) {
	in, ok := h.parseInput(c)
	if !ok {
		return
	}
	mode, ok := h.parseMode(c)
	if !ok {
		return
	}
	report, err := h.service.Export(c.Request.Context(), in, c.DefaultQuery("format", service.FormatCSV), mode)
	if err != nil {
		respondError(c, "failed to export plan", err)
		return
	}
	sendReport(c, report)
}

// Publish exports a plan to object storage.
func (h *ProductionHandler) Publish(c *gin.Context) {
	in, ok := h.parseInput(c)
	if !ok {
		return
	}
	mode, ok := h.parseMode(c)
	if !ok {
		return
	}
	key, err := h.service.Publish(c.Request.Context(), in, c.DefaultQuery("format", service.FormatXLSX), mode)
	if err != nil {
		respondError(c, "failed to publish plan", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"key": key})
}

