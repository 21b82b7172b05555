package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ponna-create/wkly-nuts-sub000/internal/domain"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/importer"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/service"
)

type VendorHandler struct {
	catalog    *service.CatalogService
	production *service.ProductionService
}

func NewVendorHandler(catalog *service.CatalogService, production *service.ProductionService) *VendorHandler {
	return &VendorHandler{catalog: catalog, production: production}
}

func (h *VendorHandler) List(c *gin.Context) {
	vendors, err := h.catalog.ListVendors(c.Request.Context())
	if err != nil {
		respondError(c, "failed to fetch vendors", err)
		return
	}
	c.JSON(http.StatusOK, vendors)
}

func (h *VendorHandler) Get(c *gin.Context) {
	vendor, err := h.catalog.GetVendor(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "failed to fetch vendor", err)
		return
	}
	c.JSON(http.StatusOK, vendor)
}

func (h *VendorHandler) Create(c *gin.Context) {
	var vendor domain.Vendor
	if !bindJSON(c, &vendor) {
		return
	}
	if err := h.catalog.CreateVendor(c.Request.Context(), &vendor); err != nil {
		respondError(c, "failed to create vendor", err)
		return
	}
	c.JSON(http.StatusCreated, vendor)
}

func (h *VendorHandler) Update(c *gin.Context) {
	var vendor domain.Vendor
	if !bindJSON(c, &vendor) {
		return
	}
	if err := h.catalog.UpdateVendor(c.Request.Context(), c.Param("id"), &vendor); err != nil {
		respondError(c, "failed to update vendor", err)
		return
	}
	c.JSON(http.StatusOK, vendor)
}

func (h *VendorHandler) Delete(c *gin.Context) {
	if err := h.catalog.DeleteVendor(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "failed to delete vendor", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Compare ranks vendors by coverage of a SKU's recipe.
func (h *VendorHandler) Compare(c *gin.Context) {
	coverage, err := h.production.CompareVendors(c.Request.Context(), c.Query("sku_id"))
	if err != nil {
		respondError(c, "failed to compare vendors", err)
		return
	}
	c.JSON(http.StatusOK, coverage)
}

// Import merges an uploaded CSV or XLSX catalog into the vendor list.
func (h *VendorHandler) Import(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required", "details": err.Error()})
		return
	}
	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open uploaded file", "details": err.Error()})
		return
	}
	defer file.Close()

	vendors, err := importer.Parse(header.Filename, file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse catalog", "details": err.Error()})
		return
	}
	result, err := h.catalog.ImportVendors(c.Request.Context(), vendors)
	if err != nil {
		respondError(c, "failed to import vendors", err)
		return
	}
	c.JSON(http.StatusOK, result)
}
