package service

import (
	"context"
	"fmt"

	"github.com/Ponna-create/wkly-nuts-sub000/internal/costing"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/domain"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/repository"
)

// PricingService previews and stores one pricing strategy per SKU and pack type.
type PricingService struct {
	strategies *repository.PricingStrategyRepository
	skus       *repository.SKURepository
}

func NewPricingService(strategies *repository.PricingStrategyRepository, skus *repository.SKURepository) *PricingService {
	return &PricingService{strategies: strategies, skus: skus}
}

func (s *PricingService) List(ctx context.Context) ([]*domain.PricingStrategy, error) {
	return s.strategies.List(ctx)
}

func (s *PricingService) Get(ctx context.Context, skuID string, pt domain.PackType) (*domain.PricingStrategy, error) {
	return s.strategies.Get(ctx, domain.PricingStrategyID(skuID, pt))
}

// Defaults returns the calculator input to start from: the saved strategy when there is
// one, otherwise a margin-mode input whose raw material cost is the SKU's cached cost.
func (s *PricingService) Defaults(ctx context.Context, skuID string, pt domain.PackType) (costing.StrategyInput, error) {
	sku, err := s.skuFor(ctx, skuID, pt)
	if err != nil {
		return costing.StrategyInput{}, err
	}

	saved, err := s.Get(ctx, skuID, pt)
	switch {
	case err == nil:
		return costing.StrategyInput{
			SKUID:         saved.SKUID,
			SKUName:       sku.Name,
			PackType:      saved.PackType,
			Mode:          saved.Mode,
			Costs:         saved.Costs,
			MarginPercent: saved.ProfitMargin,
			SellingPrice:  saved.SellingPrice,
		}, nil
	case !repository.IsNotFound(err):
		return costing.StrategyInput{}, err
	}

	raw, _ := costing.RawMaterialCost(*sku, pt)
	return costing.StrategyInput{
		SKUID:    sku.ID,
		SKUName:  sku.Name,
		PackType: pt,
		Mode:     domain.PricingModeMargin,
		Costs:    domain.CostComponents{RawMaterial: domain.RoundMoney(raw)},
	}, nil
}

// Preview computes a strategy without saving it.
func (s *PricingService) Preview(ctx context.Context, in costing.StrategyInput) (*domain.PricingStrategy, error) {
	ps, err := costing.BuildStrategy(in)
	if err != nil {
		return nil, err
	}
	sku, err := s.skuFor(ctx, in.SKUID, in.PackType)
	if err != nil {
		return nil, err
	}
	ps.SKUName = sku.Name
	return &ps, nil
}

// Save computes and stores a strategy, replacing the previous one for the same SKU and pack type.
func (s *PricingService) Save(ctx context.Context, in costing.StrategyInput) (*domain.PricingStrategy, error) {
	ps, err := s.Preview(ctx, in)
	if err != nil {
		return nil, err
	}
	if existing, err := s.strategies.Get(ctx, ps.ID); err == nil {
		ps.CreatedAt = existing.CreatedAt
	} else if !repository.IsNotFound(err) {
		return nil, err
	}
	if err := s.strategies.Save(ctx, ps); err != nil {
		return nil, fmt.Errorf("failed to save pricing strategy %s: %w", ps.ID, err)
	}
	return ps, nil
}

func (s *PricingService) Delete(ctx context.Context, skuID string, pt domain.PackType) error {
	return s.strategies.Delete(ctx, domain.PricingStrategyID(skuID, pt))
}

func (s *PricingService) skuFor(ctx context.Context, skuID string, pt domain.PackType) (*domain.SKU, error) {
	if skuID == "" {
		return nil, domain.NewValidationError("sku_id", "sku is required")
	}
	sku, err := s.skus.Get(ctx, skuID)
	if err != nil {
		return nil, fmt.Errorf("sku %s: %w", skuID, err)
	}
	if !sku.SupportsPackType(pt) {
		return nil, domain.NewValidationError("pack_type", fmt.Sprintf("%s sku cannot be sold as %q", sku.Type, pt))
	}
	return sku, nil
}
