package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ponna-create/wkly-nuts-sub000/internal/domain"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/repository"
)

func TestCatalogVendorLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	v := abcVendor()
	v.ID = "client-sent"
	require.NoError(t, f.svc.Catalog.CreateVendor(ctx, v))
	assert.NotEqual(t, "client-sent", v.ID)
	assert.Equal(t, domain.UnitKg, v.Ingredients[1].Unit, "unit spelling is normalized")
	for _, ing := range v.Ingredients {
		assert.NotEmpty(t, ing.ID)
	}
	assert.Equal(t, 1, f.plans.invalidated)

	stored, err := f.svc.Catalog.GetVendor(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "ABC Traders", stored.Name)

	stored.Ingredients[0].PricePerUnit = 650
	require.NoError(t, f.svc.Catalog.UpdateVendor(ctx, v.ID, stored))
	again, err := f.svc.Catalog.GetVendor(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, 650.0, again.Ingredients[0].PricePerUnit)
	assert.Equal(t, v.CreatedAt, again.CreatedAt)

	require.NoError(t, f.svc.Catalog.DeleteVendor(ctx, v.ID))
	_, err = f.svc.Catalog.GetVendor(ctx, v.ID)
	assert.True(t, repository.IsNotFound(err))
	assert.Equal(t, 3, f.plans.invalidated)
}

func TestCatalogRejectsVendorWithoutIngredients(t *testing.T) {
	f := newFixture(t)
	err := f.svc.Catalog.CreateVendor(context.Background(), &domain.Vendor{Name: "Empty"})
	assert.True(t, domain.IsValidation(err))

	err = f.svc.Catalog.UpdateVendor(context.Background(), "missing", abcVendor())
	assert.True(t, repository.IsNotFound(err))
}

func TestImportVendorsMergesByName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	existing := abcVendor()
	require.NoError(t, f.svc.Catalog.CreateVendor(ctx, existing))

	result, err := f.svc.Catalog.ImportVendors(ctx, []domain.Vendor{
		{Name: "abc traders", Ingredients: []domain.Ingredient{
			{Name: "Almonds", QuantityAvailable: 100, Unit: domain.UnitKg, PricePerUnit: 580, Quality: 5},
			{Name: "Dates", QuantityAvailable: 40, Unit: domain.UnitKg, PricePerUnit: 250, Quality: 3},
		}},
		{Name: "Nut House", Ingredients: []domain.Ingredient{
			{Name: "Walnuts", QuantityAvailable: 20, Unit: domain.UnitKg, PricePerUnit: 900, Quality: 4},
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"ABC Traders"}, result.Updated)
	assert.Equal(t, []string{"Nut House"}, result.Created)

	merged, err := f.svc.Catalog.GetVendor(ctx, existing.ID)
	require.NoError(t, err)
	require.Len(t, merged.Ingredients, 3)
	assert.Equal(t, existing.Ingredients[0].ID, merged.Ingredients[0].ID)
	assert.Equal(t, 580.0, merged.Ingredients[0].PricePerUnit)

	all, err := f.svc.Catalog.ListVendors(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
