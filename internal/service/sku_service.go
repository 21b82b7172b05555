package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/Ponna-create/wkly-nuts-sub000/internal/cache"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/costing"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/domain"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/repository"
)

// SKUResult is a saved SKU with the weight mismatches found while saving it.
type SKUResult struct {
	SKU      *domain.SKU `json:"sku"`
	Warnings []string    `json:"warnings"`
}

// SKUService manages product definitions. Cached pack totals are computed when a SKU
// is saved or recalculated and are never refreshed behind the caller's back.
type SKUService struct {
	skus    *repository.SKURepository
	vendors *repository.VendorRepository
	plans   cache.PlanCache
	now     func() time.Time
}

func NewSKUService(skus *repository.SKURepository, vendors *repository.VendorRepository, plans cache.PlanCache) *SKUService {
	if plans == nil {
		plans = cache.NewNoopPlanCache()
	}
	return &SKUService{skus: skus, vendors: vendors, plans: plans, now: func() time.Time { return time.Now().UTC() }}
}

func (s *SKUService) List(ctx context.Context) ([]*domain.SKU, error) {
	return s.skus.List(ctx)
}

func (s *SKUService) Get(ctx context.Context, id string) (*domain.SKU, error) {
	return s.skus.Get(ctx, id)
}

func (s *SKUService) Create(ctx context.Context, sku *domain.SKU) (*SKUResult, error) {
	sku.ID = ""
	return s.save(ctx, sku)
}

func (s *SKUService) Update(ctx context.Context, id string, sku *domain.SKU) (*SKUResult, error) {
	existing, err := s.skus.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	sku.ID = existing.ID
	sku.CreatedAt = existing.CreatedAt
	return s.save(ctx, sku)
}

func (s *SKUService) Delete(ctx context.Context, id string) error {
	if err := s.skus.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidatePlans(ctx)
	return nil
}

// Recalculate re-captures every line's price from its vendor's current catalog and
// recomputes the cached pack totals.
func (s *SKUService) Recalculate(ctx context.Context, id string) (*SKUResult, error) {
	sku, vendors, err := loadSKUAndVendors(ctx, s.skus, s.vendors, id)
	if err != nil {
		return nil, err
	}
	refreshed := costing.RefreshLinePrices(*sku, vendors, costing.RefreshAll)
	return s.persist(ctx, &refreshed)
}

func (s *SKUService) save(ctx context.Context, sku *domain.SKU) (*SKUResult, error) {
	sku.Name = strings.TrimSpace(sku.Name)
	if err := sku.Validate(); err != nil {
		return nil, err
	}

	vendors, err := s.vendors.List(ctx)
	if err != nil {
		return nil, err
	}
	filled := costing.RefreshLinePrices(*sku, derefVendors(vendors), costing.RefreshMissing)
	return s.persist(ctx, &filled)
}

func (s *SKUService) persist(ctx context.Context, sku *domain.SKU) (*SKUResult, error) {
	sku.FillPercentages()
	snap := costing.Snapshot(*sku, costing.SnapshotPrices, s.now())
	if err := s.skus.Save(ctx, &snap); err != nil {
		return nil, fmt.Errorf("failed to save sku %s: %w", snap.Name, err)
	}
	s.invalidatePlans(ctx)

	warnings := snap.WeightWarnings()
	if warnings == nil {
		warnings = []string{}
	}
	return &SKUResult{SKU: &snap, Warnings: warnings}, nil
}

func (s *SKUService) invalidatePlans(ctx context.Context) {
	if err := s.plans.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("sku: plan cache invalidation failed")
	}
}

// loadSKUAndVendors fetches a SKU and the whole vendor catalog concurrently.
func loadSKUAndVendors(ctx context.Context, skus *repository.SKURepository, vendors *repository.VendorRepository, skuID string) (*domain.SKU, []domain.Vendor, error) {
	var (
		sku  *domain.SKU
		list []*domain.Vendor
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sku, err = skus.Get(gctx, skuID)
		if err != nil {
			return fmt.Errorf("sku %s: %w", skuID, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		list, err = vendors.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return sku, derefVendors(list), nil
}

func derefVendors(list []*domain.Vendor) []domain.Vendor {
	out := make([]domain.Vendor, 0, len(list))
	for _, v := range list {
		out = append(out, *v)
	}
	return out
}
