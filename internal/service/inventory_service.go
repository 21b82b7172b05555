package service

import (
	"context"
	"fmt"

	"github.com/Ponna-create/wkly-nuts-sub000/internal/domain"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/repository"
)

// InventoryService tracks finished-goods stock per SKU and pack type.
type InventoryService struct {
	records *repository.InventoryRepository
	skus    *repository.SKURepository
}

func NewInventoryService(records *repository.InventoryRepository, skus *repository.SKURepository) *InventoryService {
	return &InventoryService{records: records, skus: skus}
}

func (s *InventoryService) List(ctx context.Context) ([]*domain.InventoryRecord, error) {
	return s.records.List(ctx)
}

func (s *InventoryService) Get(ctx context.Context, id string) (*domain.InventoryRecord, error) {
	return s.records.Get(ctx, id)
}

func (s *InventoryService) Create(ctx context.Context, r *domain.InventoryRecord) error {
	r.ID = ""
	return s.save(ctx, r)
}

func (s *InventoryService) Update(ctx context.Context, id string, r *domain.InventoryRecord) error {
	existing, err := s.records.Get(ctx, id)
	if err != nil {
		return err
	}
	r.ID = existing.ID
	r.CreatedAt = existing.CreatedAt
	return s.save(ctx, r)
}

func (s *InventoryService) Delete(ctx context.Context, id string) error {
	return s.records.Delete(ctx, id)
}

// Adjust adds delta (negative to consume) to a record's quantity. Stock never goes below zero.
func (s *InventoryService) Adjust(ctx context.Context, id string, delta int) (*domain.InventoryRecord, error) {
	r, err := s.records.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Quantity+delta < 0 {
		return nil, domain.NewValidationError("delta", fmt.Sprintf("cannot remove %d, only %d in stock", -delta, r.Quantity))
	}
	r.Quantity += delta
	if err := s.records.Save(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// LowStock lists the records at or below their reorder level.
func (s *InventoryService) LowStock(ctx context.Context) ([]*domain.InventoryRecord, error) {
	all, err := s.records.List(ctx)
	if err != nil {
		return nil, err
	}
	low := make([]*domain.InventoryRecord, 0)
	for _, r := range all {
		if r.IsLow() {
			low = append(low, r)
		}
	}
	return low, nil
}

func (s *InventoryService) save(ctx context.Context, r *domain.InventoryRecord) error {
	if err := r.Validate(); err != nil {
		return err
	}
	sku, err := s.skus.Get(ctx, r.SKUID)
	if err != nil {
		if repository.IsNotFound(err) {
			return domain.NewValidationError("sku_id", "sku does not exist")
		}
		return err
	}
	if !sku.SupportsPackType(r.PackType) {
		return domain.NewValidationError("pack_type", fmt.Sprintf("%s sku cannot be stocked as %q", sku.Type, r.PackType))
	}
	r.SKUName = sku.Name
	return s.records.Save(ctx, r)
}
