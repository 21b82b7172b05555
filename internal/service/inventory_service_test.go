package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ponna-create/wkly-nuts-sub000/internal/domain"
)

func TestInventoryAdjustAndLowStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, sku := f.seed(t)

	rec := &domain.InventoryRecord{SKUID: sku.ID, PackType: domain.PackWeekly, Quantity: 5, ReorderLevel: 10}
	require.NoError(t, f.svc.Inventory.Create(ctx, rec))
	assert.Equal(t, "Trail Mix", rec.SKUName)

	low, err := f.svc.Inventory.LowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 1)

	rec2, err := f.svc.Inventory.Adjust(ctx, rec.ID, 20)
	require.NoError(t, err)
	assert.Equal(t, 25, rec2.Quantity)

	_, err = f.svc.Inventory.Adjust(ctx, rec.ID, -30)
	assert.True(t, domain.IsValidation(err))
	stored, err := f.svc.Inventory.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, stored.Quantity)

	low, err = f.svc.Inventory.LowStock(ctx)
	require.NoError(t, err)
	assert.Empty(t, low)

	stored.ReorderLevel = 30
	require.NoError(t, f.svc.Inventory.Update(ctx, rec.ID, stored))
	low, err = f.svc.Inventory.LowStock(ctx)
	require.NoError(t, err)
	assert.Len(t, low, 1)
}

func TestInventoryValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, sku := f.seed(t)

	err := f.svc.Inventory.Create(ctx, &domain.InventoryRecord{SKUID: sku.ID, PackType: domain.PackSingle, Quantity: 1})
	assert.True(t, domain.IsValidation(err))

	err = f.svc.Inventory.Create(ctx, &domain.InventoryRecord{SKUID: "missing", PackType: domain.PackWeekly})
	assert.True(t, domain.IsValidation(err))

	err = f.svc.Inventory.Create(ctx, &domain.InventoryRecord{SKUID: sku.ID, PackType: domain.PackWeekly, Quantity: -1})
	assert.True(t, domain.IsValidation(err))
}
