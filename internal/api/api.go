// internal/api/api.go
package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Ponna-create/wkly-nuts-sub000/internal/api/handlers"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/api/middleware"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/drive"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/service"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependencies are what the router serves. Drive is optional.
type Dependencies struct {
	Services *service.Services
	Drive    *drive.CatalogFetcher
	Store    Pinger
}

func NewRouter(deps Dependencies, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000", "http://localhost:5173"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", healthHandler(deps.Store))

	apiGroup := router.Group("/api/v1")
	services := deps.Services
	if services == nil {
		return router
	}

	vendorHandler := handlers.NewVendorHandler(services.Catalog, services.Production)
	vendorGroup := apiGroup.Group("/vendors")
	{
		vendorGroup.GET("", vendorHandler.List)
		vendorGroup.POST("", vendorHandler.Create)
		vendorGroup.GET("/compare", vendorHandler.Compare)
		vendorGroup.POST("/import", vendorHandler.Import)
		vendorGroup.GET("/:id", vendorHandler.Get)
		vendorGroup.PUT("/:id", vendorHandler.Update)
		vendorGroup.DELETE("/:id", vendorHandler.Delete)
	}

	skuHandler := handlers.NewSKUHandler(services.SKUs)
	skuGroup := apiGroup.Group("/skus")
	{
		skuGroup.GET("", skuHandler.List)
		skuGroup.POST("", skuHandler.Create)
		skuGroup.GET("/:id", skuHandler.Get)
		skuGroup.PUT("/:id", skuHandler.Update)
		skuGroup.DELETE("/:id", skuHandler.Delete)
		skuGroup.POST("/:id/recalculate", skuHandler.Recalculate)
	}

	pricingHandler := handlers.NewPricingHandler(services.Pricing)
	pricingGroup := apiGroup.Group("/pricing")
	{
		pricingGroup.GET("", pricingHandler.List)
		pricingGroup.PUT("", pricingHandler.Save)
		pricingGroup.POST("/calculate", pricingHandler.Calculate)
		pricingGroup.GET("/:sku_id/:pack_type", pricingHandler.Get)
		pricingGroup.GET("/:sku_id/:pack_type/defaults", pricingHandler.Defaults)
		pricingGroup.DELETE("/:sku_id/:pack_type", pricingHandler.Delete)
	}

	productionHandler := handlers.NewProductionHandler(services.Production)
	productionGroup := apiGroup.Group("/production")
	{
		productionGroup.GET("/plan", productionHandler.Plan)
		productionGroup.GET("/purchase-list", productionHandler.PurchaseList)
		productionGroup.GET("/export", productionHandler.Export)
		productionGroup.POST("/publish", productionHandler.Publish)
	}

	salesTargetHandler := handlers.NewSalesTargetHandler(services.SalesTargets)
	salesTargetGroup := apiGroup.Group("/sales-targets")
	{
		salesTargetGroup.GET("", salesTargetHandler.List)
		salesTargetGroup.GET("/:year/:month", salesTargetHandler.Get)
		salesTargetGroup.PUT("/:year/:month", salesTargetHandler.Save)
		salesTargetGroup.DELETE("/:year/:month", salesTargetHandler.Delete)
	}

	billingHandler := handlers.NewBillingHandler(services.Billing)
	customerGroup := apiGroup.Group("/customers")
	{
		customerGroup.GET("", billingHandler.ListCustomers)
		customerGroup.POST("", billingHandler.CreateCustomer)
		customerGroup.GET("/:id", billingHandler.GetCustomer)
		customerGroup.PUT("/:id", billingHandler.UpdateCustomer)
		customerGroup.DELETE("/:id", billingHandler.DeleteCustomer)
	}
	invoiceGroup := apiGroup.Group("/invoices")
	{
		invoiceGroup.GET("", billingHandler.ListInvoices)
		invoiceGroup.POST("", billingHandler.CreateInvoice)
		invoiceGroup.GET("/:id", billingHandler.GetInvoice)
		invoiceGroup.PUT("/:id", billingHandler.UpdateInvoice)
		invoiceGroup.DELETE("/:id", billingHandler.DeleteInvoice)
		invoiceGroup.GET("/:id/pdf", billingHandler.InvoicePDF)
		invoiceGroup.POST("/:id/status", billingHandler.SetInvoiceStatus)
	}

	inventoryHandler := handlers.NewInventoryHandler(services.Inventory)
	inventoryGroup := apiGroup.Group("/inventory")
	{
		inventoryGroup.GET("", inventoryHandler.List)
		inventoryGroup.POST("", inventoryHandler.Create)
		inventoryGroup.GET("/low-stock", inventoryHandler.LowStock)
		inventoryGroup.GET("/:id", inventoryHandler.Get)
		inventoryGroup.PUT("/:id", inventoryHandler.Update)
		inventoryGroup.DELETE("/:id", inventoryHandler.Delete)
		inventoryGroup.POST("/:id/adjust", inventoryHandler.Adjust)
	}

	if deps.Drive != nil {
		driveHandler := handlers.NewDriveHandler(deps.Drive, services.Catalog)
		driveGroup := apiGroup.Group("/drive")
		{
			driveGroup.GET("/files", driveHandler.ListFiles)
			driveGroup.POST("/import", driveHandler.Import)
		}
	}

	return router
}

func healthHandler(store Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
			defer cancel()
			if err := store.Ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
