package repository

import "github.com/Ponna-create/wkly-nuts-sub000/internal/domain"

type (
	VendorRepository          = Repository[domain.Vendor, *domain.Vendor]
	SKURepository             = Repository[domain.SKU, *domain.SKU]
	PricingStrategyRepository = Repository[domain.PricingStrategy, *domain.PricingStrategy]
	SalesTargetRepository     = Repository[domain.SalesTarget, *domain.SalesTarget]
	CustomerRepository        = Repository[domain.Customer, *domain.Customer]
	InvoiceRepository         = Repository[domain.Invoice, *domain.Invoice]
	InventoryRepository       = Repository[domain.InventoryRecord, *domain.InventoryRecord]
)

// Set bundles the typed repositories of every collection over one store.
type Set struct {
	Store             DocumentStore
	Vendors           *VendorRepository
	SKUs              *SKURepository
	PricingStrategies *PricingStrategyRepository
	SalesTargets      *SalesTargetRepository
	Customers         *CustomerRepository
	Invoices          *InvoiceRepository
	Inventory         *InventoryRepository
}

func NewSet(store DocumentStore) *Set {
	return &Set{
		Store:             store,
		Vendors:           NewRepository[domain.Vendor](store, Vendors),
		SKUs:              NewRepository[domain.SKU](store, SKUs),
		PricingStrategies: NewRepository[domain.PricingStrategy](store, PricingStrategies),
		SalesTargets:      NewRepository[domain.SalesTarget](store, SalesTargets),
		Customers:         NewRepository[domain.Customer](store, Customers),
		Invoices:          NewRepository[domain.Invoice](store, Invoices),
		Inventory:         NewRepository[domain.InventoryRecord](store, Inventory),
	}
}
