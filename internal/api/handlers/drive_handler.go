package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ponna-create/wkly-nuts-sub000/internal/drive"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/service"
)

type DriveHandler struct {
	fetcher *drive.CatalogFetcher
	catalog *service.CatalogService
}

func NewDriveHandler(fetcher *drive.CatalogFetcher, catalog *service.CatalogService) *DriveHandler {
	return &DriveHandler{fetcher: fetcher, catalog: catalog}
}

// ListFiles lists the vendor catalogs of a Drive folder (the configured one by default).
func (h *DriveHandler) ListFiles(c *gin.Context) {
	files, err := h.fetcher.ListCatalogs(c.Request.Context(), c.Query("folder_id"))
	if err != nil {
		respondError(c, "failed to list drive files", err)
		return
	}
	c.JSON(http.StatusOK, files)
}

type driveImportRequest struct {
	FolderID string `json:"folder_id"`
}

// Import downloads every catalog of a folder and merges it into the vendor list.
func (h *DriveHandler) Import(c *gin.Context) {
	var req driveImportRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}

	catalogs, err := h.fetcher.FetchFolder(c.Request.Context(), req.FolderID)
	if err != nil {
		respondError(c, "failed to fetch drive catalogs", err)
		return
	}

	files := make([]string, 0, len(catalogs))
	result := service.ImportResult{Created: []string{}, Updated: []string{}}
	for _, catalog := range catalogs {
		r, err := h.catalog.ImportVendors(c.Request.Context(), catalog.Vendors)
		if err != nil {
			respondError(c, "failed to import "+catalog.File.Name, err)
			return
		}
		files = append(files, catalog.File.Name)
		result.Created = append(result.Created, r.Created...)
		result.Updated = append(result.Updated, r.Updated...)
	}

	c.JSON(http.StatusOK, gin.H{"files": files, "created": result.Created, "updated": result.Updated})
}
