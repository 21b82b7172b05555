package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Ponna-create/wkly-nuts-sub000/internal/domain"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/repository"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/service"
)

// respondError maps validation failures to 400, missing records to 404 and
// everything else to 500.
func respondError(c *gin.Context, message string, err error) {
	body := gin.H{"error": message, "details": err.Error()}

	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		body["fields"] = verr.Fields
		c.JSON(http.StatusBadRequest, body)
	case repository.IsNotFound(err):
		c.JSON(http.StatusNotFound, body)
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg(message)
		c.JSON(http.StatusInternalServerError, body)
	}
}

func bindJSON(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return false
	}
	return true
}

func sendReport(c *gin.Context, report *service.Report) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Name))
	c.Data(http.StatusOK, report.ContentType, report.Data)
}

func packTypeParam(c *gin.Context, value string) (domain.PackType, bool) {
	pt, ok := domain.ParsePackType(value)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pack type", "details": fmt.Sprintf("unknown pack type %q", value)})
	}
	return pt, ok
}
