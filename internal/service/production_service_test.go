package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ponna-create/wkly-nuts-sub000/internal/costing"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/domain"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/export"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/repository"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/storage"
)

func TestPlanAutoVendorAndCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v, sku := f.seed(t)

	in := PlanInput{SKUID: sku.ID, TargetQuantity: 10, PackType: domain.PackWeekly}
	plan, err := f.svc.Production.Plan(ctx, in)
	require.NoError(t, err)
	require.Len(t, plan.Requirements, 2)

	almonds := plan.Requirements[0]
	assert.Equal(t, "Almonds", almonds.IngredientName)
	assert.InDelta(t, 350, almonds.TotalGrams, 1e-9)
	assert.InDelta(t, 210, almonds.TotalCost, 1e-9)
	assert.Equal(t, v.ID, almonds.VendorID)
	assert.False(t, almonds.HasShortage)
	assert.InDelta(t, 378, plan.Summary.TotalCost, 1e-9)
	assert.Equal(t, 70, plan.Summary.TotalSachets)
	assert.Equal(t, 1, f.plans.sets)

	_, err = f.svc.Production.Plan(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 1, f.plans.hits)

	// a catalog change drops cached plans
	require.NoError(t, f.svc.Catalog.UpdateVendor(ctx, v.ID, v))
	_, err = f.svc.Production.Plan(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 1, f.plans.hits)
	assert.Equal(t, 2, f.plans.sets)
}

func TestPlanErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, sku := f.seed(t)

	_, err := f.svc.Production.Plan(ctx, PlanInput{TargetQuantity: 1})
	assert.True(t, domain.IsValidation(err))

	_, err = f.svc.Production.Plan(ctx, PlanInput{SKUID: sku.ID})
	assert.True(t, domain.IsValidation(err))

	_, err = f.svc.Production.Plan(ctx, PlanInput{SKUID: "missing", TargetQuantity: 1})
	assert.True(t, repository.IsNotFound(err))

	_, err = f.svc.Production.Plan(ctx, PlanInput{SKUID: sku.ID, TargetQuantity: 1, VendorID: "nobody"})
	assert.True(t, repository.IsNotFound(err))
}

func TestPurchaseListAndCompare(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v, sku := f.seed(t)

	_, list, err := f.svc.Production.PurchaseList(ctx, PlanInput{SKUID: sku.ID, TargetQuantity: 2, PackType: domain.PackMonthly, VendorID: v.ID}, costing.PurchaseFullOrder)
	require.NoError(t, err)
	require.Len(t, list.Orders, 1)
	// 5g x 28 sachets x 2 packs = 280g of almonds -> 1kg
	assert.Equal(t, 1.0, list.Orders[0].Items[0].PurchaseKg)
	require.NotNil(t, list.Orders[0].Capacity)

	cov, err := f.svc.Production.CompareVendors(ctx, sku.ID)
	require.NoError(t, err)
	require.Len(t, cov, 1)
	assert.Equal(t, 2, cov[0].Supplied)
}

func TestExportAndPublish(t *testing.T) {
	repos := repository.NewSet(repository.NewMemoryStore())
	dir, err := storage.NewDirStorage(t.TempDir())
	require.NoError(t, err)
	svc := New(repos, nil, dir, testBusiness)
	svc.Production.now = func() time.Time { return time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC) }

	f := &fixture{repos: repos, plans: newMemPlanCache(), svc: svc}
	_, sku := f.seed(t)
	ctx := context.Background()
	in := PlanInput{SKUID: sku.ID, TargetQuantity: 10, PackType: domain.PackWeekly}

	report, err := svc.Production.Export(ctx, in, "csv", costing.PurchaseFullOrder)
	require.NoError(t, err)
	assert.Equal(t, "requirements_trail-mix_weekly_10_20260401_090000.csv", report.Name)
	rows, err := csv.NewReader(bytes.NewReader(report.Data)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, export.PlanHeader, rows[0])
	assert.Len(t, rows, 3)

	_, err = svc.Production.Export(ctx, in, "pdf", costing.PurchaseFullOrder)
	assert.True(t, domain.IsValidation(err))

	key, err := svc.Production.Publish(ctx, in, "xlsx", costing.PurchaseShortageOnly)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "2026/04/"))
	assert.True(t, strings.HasSuffix(key, ".xlsx"))

	objs, err := dir.ListObjects(ctx, "2026/04")
	require.NoError(t, err)
	assert.Len(t, objs, 1)
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "trail-mix-no-2", slug("  Trail Mix (No. 2) "))
	assert.Equal(t, "", slug("!!"))
}
