package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Ponna-create/wkly-nuts-sub000/internal/cache"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/domain"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/importer"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/repository"
)

// CatalogService manages vendors and their ingredient catalogs.
type CatalogService struct {
	vendors *repository.VendorRepository
	plans   cache.PlanCache
}

func NewCatalogService(vendors *repository.VendorRepository, plans cache.PlanCache) *CatalogService {
	if plans == nil {
		plans = cache.NewNoopPlanCache()
	}
	return &CatalogService{vendors: vendors, plans: plans}
}

func (s *CatalogService) ListVendors(ctx context.Context) ([]*domain.Vendor, error) {
	return s.vendors.List(ctx)
}

func (s *CatalogService) GetVendor(ctx context.Context, id string) (*domain.Vendor, error) {
	return s.vendors.Get(ctx, id)
}

// CreateVendor stores a new vendor. Any identifier sent by the caller is replaced.
func (s *CatalogService) CreateVendor(ctx context.Context, v *domain.Vendor) error {
	v.ID = ""
	return s.save(ctx, v)
}

// UpdateVendor replaces an existing vendor.
func (s *CatalogService) UpdateVendor(ctx context.Context, id string, v *domain.Vendor) error {
	existing, err := s.vendors.Get(ctx, id)
	if err != nil {
		return err
	}
	v.ID = existing.ID
	v.CreatedAt = existing.CreatedAt
	return s.save(ctx, v)
}

func (s *CatalogService) DeleteVendor(ctx context.Context, id string) error {
	if err := s.vendors.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidatePlans(ctx)
	return nil
}

func (s *CatalogService) save(ctx context.Context, v *domain.Vendor) error {
	normalizeVendor(v)
	if err := v.Validate(); err != nil {
		return err
	}
	if err := s.vendors.Save(ctx, v); err != nil {
		return fmt.Errorf("failed to save vendor %s: %w", v.Name, err)
	}
	s.invalidatePlans(ctx)
	return nil
}

// ImportResult reports what an import did per vendor name.
type ImportResult struct {
	Created []string `json:"created"`
	Updated []string `json:"updated"`
}

// ImportVendors merges parsed catalogs into the stored vendors. Vendors are matched
// by case-insensitive name; unknown vendors are created.
func (s *CatalogService) ImportVendors(ctx context.Context, incoming []domain.Vendor) (ImportResult, error) {
	result := ImportResult{Created: []string{}, Updated: []string{}}

	existing, err := s.vendors.List(ctx)
	if err != nil {
		return result, err
	}
	byName := make(map[string]*domain.Vendor, len(existing))
	for _, v := range existing {
		byName[strings.ToLower(strings.TrimSpace(v.Name))] = v
	}

	for _, in := range incoming {
		key := strings.ToLower(strings.TrimSpace(in.Name))
		if current, ok := byName[key]; ok {
			merged := importer.Merge(*current, in)
			if err := s.save(ctx, &merged); err != nil {
				return result, err
			}
			byName[key] = &merged
			result.Updated = append(result.Updated, merged.Name)
			continue
		}
		v := in
		v.ID = ""
		if err := s.save(ctx, &v); err != nil {
			return result, err
		}
		byName[key] = &v
		result.Created = append(result.Created, v.Name)
	}
	return result, nil
}

func (s *CatalogService) invalidatePlans(ctx context.Context) {
	if err := s.plans.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("catalog: plan cache invalidation failed")
	}
}

func normalizeVendor(v *domain.Vendor) {
	v.Name = strings.TrimSpace(v.Name)
	for i := range v.Ingredients {
		ing := &v.Ingredients[i]
		ing.Name = strings.TrimSpace(ing.Name)
		if unit, ok := domain.ParseUnit(string(ing.Unit)); ok {
			ing.Unit = unit
		}
		if ing.ID == "" {
			ing.ID = uuid.NewString()
		}
	}
}
