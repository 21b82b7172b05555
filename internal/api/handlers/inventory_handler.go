package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ponna-create/wkly-nuts-sub000/internal/domain"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/service"
)

type InventoryHandler struct {
	service *service.InventoryService
}

func NewInventoryHandler(service *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: service}
}

func (h *InventoryHandler) List(c *gin.Context) {
	records, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, "failed to fetch inventory", err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *InventoryHandler) LowStock(c *gin.Context) {
	records, err := h.service.LowStock(c.Request.Context())
	if err != nil {
		respondError(c, "failed to fetch low stock", err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *InventoryHandler) Get(c *gin.Context) {
	record, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "failed to fetch inventory record", err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *InventoryHandler) Create(c *gin.Context) {
	var record domain.InventoryRecord
	if !bindJSON(c, &record) {
		return
	}
	if err := h.service.Create(c.Request.Context(), &record); err != nil {
		respondError(c, "failed to create inventory record", err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *InventoryHandler) Update(c *gin.Context) {
	var record domain.InventoryRecord
	if !bindJSON(c, &record) {
		return
	}
	if err := h.service.Update(c.Request.Context(), c.Param("id"), &record); err != nil {
		respondError(c, "failed to update inventory record", err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *InventoryHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "failed to delete inventory record", err)
		return
	}
	c.Status(http.StatusNoContent)
}

type adjustRequest struct {
	Delta int `json:"delta"`
}

// Adjust adds a signed delta to the stock of a record.
func (h *InventoryHandler) Adjust(c *gin.Context) {
	var req adjustRequest
	if !bindJSON(c, &req) {
		return
	}
	record, err := h.service.Adjust(c.Request.Context(), c.Param("id"), req.Delta)
	if err != nil {
		respondError(c, "failed to adjust stock", err)
		return
	}
	c.JSON(http.StatusOK, record)
}
