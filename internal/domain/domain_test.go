package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullWeek(lines ...RecipeLine) map[Weekday][]RecipeLine {
	recipes := make(map[Weekday][]RecipeLine, len(Weekdays))
	for _, day := range Weekdays {
		recipes[day] = append([]RecipeLine(nil), lines...)
	}
	return recipes
}

func TestSKUValidateWeekly(t *testing.T) {
	sku := SKU{Name: "Trail Mix", Type: SKUTypeWeekly, TargetWeightGrams: 8, Recipes: fullWeek(RecipeLine{IngredientName: "Almonds", Grams: 8})}
	require.NoError(t, sku.Validate())
	assert.True(t, sku.IsComplete())

	delete(sku.Recipes, Sunday)
	err := sku.Validate()
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "recipes.SUN", verr.Fields[0].Field)
	assert.False(t, sku.IsComplete())
}

func TestSKUValidateSingle(t *testing.T) {
	sku := SKU{Name: "Almond Jar", Type: SKUTypeSingle}
	err := sku.Validate()
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	sku.UnitWeightKg = 0.25
	sku.Ingredients = []RecipeLine{{IngredientName: "Almonds", Grams: 250}}
	assert.NoError(t, sku.Validate())
	assert.Equal(t, []PackType{PackSingle}, sku.PackTypes())
	assert.False(t, sku.SupportsPackType(PackWeekly))
}

func TestSKUWeightWarningsDoNotBlockSave(t *testing.T) {
	sku := SKU{Name: "Trail Mix", Type: SKUTypeWeekly, TargetWeightGrams: 10, Recipes: fullWeek(RecipeLine{IngredientName: "Almonds", Grams: 8})}
	require.NoError(t, sku.Validate())
	assert.Len(t, sku.WeightWarnings(), 7)

	sku.FillPercentages()
	assert.InDelta(t, 80, sku.Recipes[Monday][0].Percentage, 1e-9)
}

func TestInvoiceComputeTotals(t *testing.T) {
	inv := Invoice{
		Items: []InvoiceItem{
			{Description: "Day Pack", Quantity: 3, UnitPrice: 33.33},
			{Description: "Month Pack", Quantity: 1, UnitPrice: 500},
		},
		Discount:   50,
		TaxPercent: 5,
	}
	inv.ComputeTotals()

	assert.Equal(t, 99.99, inv.Items[0].Amount)
	assert.Equal(t, 599.99, inv.Subtotal)
	assert.Equal(t, 27.5, inv.TaxAmount)
	assert.Equal(t, 577.49, inv.Total)
}

func TestInvoiceDiscountFloorsAtZero(t *testing.T) {
	inv := Invoice{Items: []InvoiceItem{{Description: "Sample", Quantity: 1, UnitPrice: 10}}, Discount: 25, TaxPercent: 18}
	inv.ComputeTotals()
	assert.Equal(t, 0.0, inv.TaxAmount)
	assert.Equal(t, 0.0, inv.Total)
}

func TestInvoiceValidate(t *testing.T) {
	issue := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	inv := Invoice{IssueDate: issue, DueDate: issue.AddDate(0, 0, -1), TaxPercent: 120}
	err := inv.Validate()
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	fields := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	assert.Equal(t, []string{"customer_id", "items", "tax_percent", "due_date"}, fields)
}

func TestInvoiceStatusTransitions(t *testing.T) {
	assert.True(t, InvoiceDraft.CanTransition(InvoiceIssued))
	assert.True(t, InvoiceIssued.CanTransition(InvoicePaid))
	assert.False(t, InvoicePaid.CanTransition(InvoiceDraft))
	assert.False(t, InvoiceCancelled.CanTransition(InvoiceIssued))
	assert.False(t, InvoiceDraft.CanTransition(InvoicePaid))

	s, ok := ParseInvoiceStatus(" Paid ")
	assert.True(t, ok)
	assert.Equal(t, InvoicePaid, s)
}

func TestParsers(t *testing.T) {
	pt, ok := ParsePackType("Month")
	assert.True(t, ok)
	assert.Equal(t, PackMonthly, pt)

	_, ok = ParsePackType("yearly")
	assert.False(t, ok)

	assert.Equal(t, "sku-1:weekly", PricingStrategyID("sku-1", PackWeekly))
	assert.Equal(t, "2026-04", SalesTargetID(2026, 4))
}

func TestMoney(t *testing.T) {
	assert.Equal(t, 0.3, SumMoney(0.1, 0.2))
	assert.Equal(t, 2.68, RoundMoney(2.675))
}

func TestInventoryIsLow(t *testing.T) {
	r := InventoryRecord{SKUID: "s", PackType: PackWeekly, Quantity: 5, ReorderLevel: 5}
	assert.True(t, r.IsLow())
	r.Quantity = -1
	assert.Error(t, r.Validate())
}
