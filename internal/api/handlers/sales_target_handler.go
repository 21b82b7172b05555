package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Ponna-create/wkly-nuts-sub000/internal/domain"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/service"
)

type SalesTargetHandler struct {
	service *service.SalesTargetService
}

func NewSalesTargetHandler(service *service.SalesTargetService) *SalesTargetHandler {
	return &SalesTargetHandler{service: service}
}

func parseYearMonth(c *gin.Context) (int, int, bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year", "details": err.Error()})
		return 0, 0, false
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month", "details": err.Error()})
		return 0, 0, false
	}
	return year, month, true
}

func (h *SalesTargetHandler) List(c *gin.Context) {
	targets, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, "failed to fetch sales targets", err)
		return
	}
	c.JSON(http.StatusOK, targets)
}

func (h *SalesTargetHandler) Get(c *gin.Context) {
	year, month, ok := parseYearMonth(c)
	if !ok {
		return
	}
	target, err := h.service.Get(c.Request.Context(), year, month)
	if err != nil {
		respondError(c, "failed to fetch sales target", err)
		return
	}
	c.JSON(http.StatusOK, target)
}

// Save stores the target of the month in the path; year and month in the body are ignored.
func (h *SalesTargetHandler) Save(c *gin.Context) {
	year, month, ok := parseYearMonth(c)
	if !ok {
		return
	}
	var target domain.SalesTarget
	if !bindJSON(c, &target) {
		return
	}
	target.Year, target.Month = year, month
	saved, err := h.service.Save(c.Request.Context(), &target)
	if err != nil {
		respondError(c, "failed to save sales target", err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (h *SalesTargetHandler) Delete(c *gin.Context) {
	year, month, ok := parseYearMonth(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), year, month); err != nil {
		respondError(c, "failed to delete sales target", err)
		return
	}
	c.Status(http.StatusNoContent)
}
