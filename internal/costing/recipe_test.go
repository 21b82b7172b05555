package costing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ponna-create/wkly-nuts-sub000/internal/domain"
)

func TestUnitConversion(t *testing.T) {
	kg := domain.Ingredient{QuantityAvailable: 2, Unit: domain.UnitKg, PricePerUnit: 600}
	assert.InDelta(t, 0.6, PricePerGram(kg), 1e-12)
	assert.InDelta(t, 2000, AvailableGrams(kg), 1e-12)

	grams := domain.Ingredient{QuantityAvailable: 250, Unit: domain.UnitGrams, PricePerUnit: 0.9}
	assert.InDelta(t, 0.9, PricePerGram(grams), 1e-12)
	assert.InDelta(t, 250, AvailableGrams(grams), 1e-12)

	// pieces are costed as if they were grams
	pieces := domain.Ingredient{QuantityAvailable: 40, Unit: domain.UnitPieces, PricePerUnit: 3}
	assert.InDelta(t, 3, PricePerGram(pieces), 1e-12)
	assert.InDelta(t, 40, AvailableGrams(pieces), 1e-12)
}

func TestCostPerUnit(t *testing.T) {
	lines := []domain.RecipeLine{line("Almonds", 5, 0.5), line("Cashews", 3, 0.7)}

	uc := CostPerUnit(lines, nil)
	assert.InDelta(t, 8, uc.TotalGrams, 1e-12)
	assert.InDelta(t, 4.6, uc.TotalCost, 1e-9)

	uc = CostPerUnit(lines, VendorPrices{Vendor: abcTraders()})
	assert.InDelta(t, 5*0.6+3*0.8, uc.TotalCost, 1e-9)

	uc = CostPerUnit(lines, VendorPrices{Vendor: vendor("v-x", "Almonds Only", kgIngredient("Almond", 10, 1000))})
	assert.InDelta(t, 5.0, uc.TotalCost, 1e-9, "cashews are not carried and cost nothing")
}

func TestWeeklyToMonthlyScalingIsExact(t *testing.T) {
	for _, sku := range []domain.SKU{fullWeek(), dayPack()} {
		wc := WeeklyPackCost(sku, SnapshotPrices)
		assert.Equal(t, 7, wc.WeeklyPack.Sachets)
		assert.Equal(t, 28, wc.MonthlyPack.Sachets)
		assert.Equal(t, wc.WeeklyPack.TotalGrams*4, wc.MonthlyPack.TotalGrams)
		assert.Equal(t, wc.WeeklyPack.RawMaterialCost*4, wc.MonthlyPack.RawMaterialCost)
	}

	wc := WeeklyPackCost(fullWeek(), SnapshotPrices)
	assert.InDelta(t, 210, wc.WeeklyPack.TotalGrams, 1e-9)
	assert.InDelta(t, 7*(20*0.6+10*0.25), wc.WeeklyPack.RawMaterialCost, 1e-9)
	assert.InDelta(t, 14.5, wc.Days[domain.Friday].TotalCost, 1e-9)
}

func TestSingleUnitCost(t *testing.T) {
	su := SingleUnitCost(trailMix(), SnapshotPrices)
	assert.Equal(t, 0.5, su.UnitWeightKg)
	assert.InDelta(t, 500, su.TotalGrams, 1e-9)
	assert.InDelta(t, 200*0.6+300*0.2, su.RawMaterialCost, 1e-9)
}

func TestSnapshotDoesNotMutateInput(t *testing.T) {
	sku := fullWeek()
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	out := Snapshot(sku, SnapshotPrices, at)
	assert.Nil(t, sku.WeeklyPack)
	assert.Nil(t, sku.CostsComputedAt)
	require.NotNil(t, out.WeeklyPack)
	require.NotNil(t, out.MonthlyPack)
	assert.Nil(t, out.SingleUnit)
	assert.Equal(t, at, *out.CostsComputedAt)

	cost, ok := RawMaterialCost(out, domain.PackMonthly)
	require.True(t, ok)
	assert.Equal(t, out.WeeklyPack.RawMaterialCost*4, cost)

	_, ok = RawMaterialCost(out, domain.PackSingle)
	assert.False(t, ok)

	single := Snapshot(trailMix(), SnapshotPrices, at)
	require.NotNil(t, single.SingleUnit)
	assert.Nil(t, single.WeeklyPack)
}

func TestSnapshotStaysStaleUntilRecomputed(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	v := abcTraders()
	saved := Snapshot(dayPack(), VendorPrices{Vendor: v}, at)
	before := saved.WeeklyPack.RawMaterialCost

	v.Ingredients[0].PricePerUnit = 1200
	cost, _ := RawMaterialCost(saved, domain.PackWeekly)
	assert.Equal(t, before, cost, "price changes do not reach an existing snapshot")

	refreshed := Snapshot(saved, VendorPrices{Vendor: v}, at.Add(time.Hour))
	assert.Greater(t, refreshed.WeeklyPack.RawMaterialCost, before)
}

func TestRefreshLinePrices(t *testing.T) {
	abc := abcTraders()
	sku := domain.SKU{
		Type: domain.SKUTypeSingle, UnitWeightKg: 0.01,
		Ingredients: []domain.RecipeLine{
			{IngredientName: "Almonds", Grams: 5, VendorID: abc.ID, PricePerGram: 0.4},
			{IngredientName: "Cashews", Grams: 3, VendorID: abc.ID},
			{IngredientName: "Saffron", Grams: 1, VendorID: abc.ID, PricePerGram: 2},
			{IngredientName: "Dates", Grams: 1, PricePerGram: 0.25},
		},
	}

	missing := RefreshLinePrices(sku, []domain.Vendor{abc}, RefreshMissing)
	assert.Equal(t, 0.4, missing.Ingredients[0].PricePerGram)
	assert.InDelta(t, 0.8, missing.Ingredients[1].PricePerGram, 1e-9)
	assert.Equal(t, abc.Name, missing.Ingredients[1].VendorName)

	all := RefreshLinePrices(sku, []domain.Vendor{abc}, RefreshAll)
	assert.InDelta(t, 0.6, all.Ingredients[0].PricePerGram, 1e-9)
	assert.Equal(t, 2.0, all.Ingredients[2].PricePerGram, "vendor no longer carries it")
	assert.Equal(t, 0.25, all.Ingredients[3].PricePerGram)

	assert.Equal(t, 0.4, sku.Ingredients[0].PricePerGram, "input is not mutated")
	assert.Zero(t, sku.Ingredients[1].PricePerGram)
}
