package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Ponna-create/wkly-nuts-sub000/internal/cache"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/config"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/costing"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/domain"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/repository"
)

var testBusiness = config.BusinessConfig{
	Name:              "Wkly Nuts",
	InvoicePrefix:     "INV",
	DefaultTaxPercent: 5,
	PaymentTermsDays:  15,
	CurrencySymbol:    "Rs.",
}

// memPlanCache is an in-process PlanCache that counts its calls.
type memPlanCache struct {
	mu          sync.Mutex
	plans       map[cache.PlanKey]costing.ProductionPlan
	hits        int
	sets        int
	invalidated int
}

func newMemPlanCache() *memPlanCache {
	return &memPlanCache{plans: make(map[cache.PlanKey]costing.ProductionPlan)}
}

func (c *memPlanCache) GetPlan(_ context.Context, key cache.PlanKey) (*costing.ProductionPlan, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.plans[key]
	if !ok {
		return nil, false, nil
	}
	c.hits++
	return &p, true, nil
}

func (c *memPlanCache) SetPlan(_ context.Context, key cache.PlanKey, plan *costing.ProductionPlan) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.plans[key] = *plan
	c.sets++
	return nil
}

func (c *memPlanCache) InvalidateAll(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.plans = make(map[cache.PlanKey]costing.ProductionPlan)
	c.invalidated++
	return nil
}

type fixture struct {
	repos *repository.Set
	plans *memPlanCache
	svc   *Services
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repos := repository.NewSet(repository.NewMemoryStore())
	plans := newMemPlanCache()
	return &fixture{repos: repos, plans: plans, svc: New(repos, plans, nil, testBusiness)}
}

func abcVendor() *domain.Vendor {
	return &domain.Vendor{
		Name:  "ABC Traders",
		Phone: "98450 00000",
		Ingredients: []domain.Ingredient{
			{Name: "Almonds", QuantityAvailable: 500, Unit: domain.UnitKg, PricePerUnit: 600, Quality: 5},
			{Name: "Cashews", QuantityAvailable: 200, Unit: "kgs", PricePerUnit: 800, Quality: 4},
		},
	}
}

// weeklySKU has the same 8g sachet every day: 5g almonds and 3g cashews from vendorID.
func weeklySKU(vendorID string) *domain.SKU {
	recipes := make(map[domain.Weekday][]domain.RecipeLine, len(domain.Weekdays))
	for _, day := range domain.Weekdays {
		recipes[day] = []domain.RecipeLine{
			{IngredientName: "Almonds", Grams: 5, VendorID: vendorID},
			{IngredientName: "Cashews", Grams: 3, VendorID: vendorID},
		}
	}
	return &domain.SKU{Name: "Trail Mix", Type: domain.SKUTypeWeekly, TargetWeightGrams: 8, Recipes: recipes}
}

// seed stores ABC Traders and the weekly trail mix SKU.
func (f *fixture) seed(t *testing.T) (*domain.Vendor, *domain.SKU) {
	t.Helper()
	ctx := context.Background()
	v := abcVendor()
	require.NoError(t, f.svc.Catalog.CreateVendor(ctx, v))
	res, err := f.svc.SKUs.Create(ctx, weeklySKU(v.ID))
	require.NoError(t, err)
	return v, res.SKU
}
