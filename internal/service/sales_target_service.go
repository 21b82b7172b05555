package service

import (
	"context"
	"fmt"

	"github.com/Ponna-create/wkly-nuts-sub000/internal/costing"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/domain"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/repository"
)

// SalesTargetService keeps one sales target per month.
type SalesTargetService struct {
	targets    *repository.SalesTargetRepository
	strategies *repository.PricingStrategyRepository
	skus       *repository.SKURepository
}

func NewSalesTargetService(targets *repository.SalesTargetRepository, strategies *repository.PricingStrategyRepository, skus *repository.SKURepository) *SalesTargetService {
	return &SalesTargetService{targets: targets, strategies: strategies, skus: skus}
}

func (s *SalesTargetService) List(ctx context.Context) ([]*domain.SalesTarget, error) {
	return s.targets.List(ctx)
}

func (s *SalesTargetService) Get(ctx context.Context, year, month int) (*domain.SalesTarget, error) {
	return s.targets.Get(ctx, domain.SalesTargetID(year, month))
}

// Save stores the target of t.Year/t.Month. Each row's price and cost are
// snapshotted from the saved pricing strategy of its SKU and pack type; rows without a
// strategy keep the figures sent by the caller.
func (s *SalesTargetService) Save(ctx context.Context, t *domain.SalesTarget) (*domain.SalesTarget, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	t.ID = domain.SalesTargetID(t.Year, t.Month)

	for i := range t.Rows {
		row := &t.Rows[i]
		sku, err := s.skus.Get(ctx, row.SKUID)
		if err != nil {
			if repository.IsNotFound(err) {
				return nil, domain.NewValidationError(fmt.Sprintf("rows[%d].sku_id", i), "sku does not exist")
			}
			return nil, err
		}
		if row.PackType == "" {
			row.PackType = sku.PackTypes()[0]
		}
		if !sku.SupportsPackType(row.PackType) {
			return nil, domain.NewValidationError(fmt.Sprintf("rows[%d].pack_type", i), fmt.Sprintf("%s sku cannot be sold as %q", sku.Type, row.PackType))
		}
		row.SKUName = sku.Name

		ps, err := s.strategies.Get(ctx, domain.PricingStrategyID(row.SKUID, row.PackType))
		switch {
		case err == nil:
			row.SellingPrice = ps.SellingPrice
			row.CostPerUnit = ps.TotalCost
		case !repository.IsNotFound(err):
			return nil, err
		}
	}

	projected := costing.ProjectSalesTarget(*t)
	if existing, err := s.targets.Get(ctx, projected.ID); err == nil {
		projected.CreatedAt = existing.CreatedAt
	} else if !repository.IsNotFound(err) {
		return nil, err
	}
	if err := s.targets.Save(ctx, &projected); err != nil {
		return nil, fmt.Errorf("failed to save sales target %s: %w", projected.ID, err)
	}
	return &projected, nil
}

func (s *SalesTargetService) Delete(ctx context.Context, year, month int) error {
	return s.targets.Delete(ctx, domain.SalesTargetID(year, month))
}
