package service

import (
	"github.com/Ponna-create/wkly-nuts-sub000/internal/cache"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/config"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/repository"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/storage"
)

// Services wires every application service over one repository set.
type Services struct {
	Catalog      *CatalogService
	SKUs         *SKUService
	Pricing      *PricingService
	Production   *ProductionService
	SalesTargets *SalesTargetService
	Billing      *BillingService
	Inventory    *InventoryService
}

func New(repos *repository.Set, plans cache.PlanCache, store storage.ObjectStorage, business config.BusinessConfig) *Services {
	if plans == nil {
		plans = cache.NewNoopPlanCache()
	}
	return &Services{
		Catalog:      NewCatalogService(repos.Vendors, plans),
		SKUs:         NewSKUService(repos.SKUs, repos.Vendors, plans),
		Pricing:      NewPricingService(repos.PricingStrategies, repos.SKUs),
		Production:   NewProductionService(repos.SKUs, repos.Vendors, plans, store),
		SalesTargets: NewSalesTargetService(repos.SalesTargets, repos.PricingStrategies, repos.SKUs),
		Billing:      NewBillingService(repos, business),
		Inventory:    NewInventoryService(repos.Inventory, repos.SKUs),
	}
}
