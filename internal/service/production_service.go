package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Ponna-create/wkly-nuts-sub000/internal/cache"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/costing"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/domain"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/export"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/repository"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/storage"
)

// PlanInput is one production planning request. An empty VendorID lets the planner
// pick a vendor per ingredient.
type PlanInput struct {
	SKUID          string          `json:"sku_id" form:"sku_id"`
	TargetQuantity int             `json:"target_quantity" form:"target_quantity"`
	PackType       domain.PackType `json:"pack_type" form:"pack_type"`
	VendorID       string          `json:"vendor_id" form:"vendor_id"`
}

// Report formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Report is a rendered export.
type Report struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
}

// ProductionService plans production runs and renders their requirement reports.
type ProductionService struct {
	skus    *repository.SKURepository
	vendors *repository.VendorRepository
	plans   cache.PlanCache
	store   storage.ObjectStorage
	now     func() time.Time
}

func NewProductionService(skus *repository.SKURepository, vendors *repository.VendorRepository, plans cache.PlanCache, store storage.ObjectStorage) *ProductionService {
	if plans == nil {
		plans = cache.NewNoopPlanCache()
	}
	return &ProductionService{
		skus:    skus,
		vendors: vendors,
		plans:   plans,
		store:   store,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Plan computes the requirement plan of a request, served from the plan cache when possible.
func (s *ProductionService) Plan(ctx context.Context, in PlanInput) (*costing.ProductionPlan, error) {
	if strings.TrimSpace(in.SKUID) == "" {
		return nil, domain.NewValidationError("sku_id", "sku is required")
	}
	if in.TargetQuantity <= 0 {
		return nil, domain.NewValidationError("target_quantity", "target quantity must be greater than zero")
	}

	key := cache.PlanKey{SKUID: in.SKUID, TargetQuantity: in.TargetQuantity, PackType: in.PackType, VendorID: in.VendorID}
	if plan, ok, err := s.plans.GetPlan(ctx, key); err == nil && ok {
		return plan, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("production: cache get plan failed")
	}

	sku, vendors, err := loadSKUAndVendors(ctx, s.skus, s.vendors, in.SKUID)
	if err != nil {
		return nil, err
	}

	req := costing.PlanRequest{
		SKU:            *sku,
		TargetQuantity: in.TargetQuantity,
		PackType:       in.PackType,
		Vendors:        vendors,
	}
	if in.VendorID != "" {
		v, ok := findVendor(vendors, in.VendorID)
		if !ok {
			return nil, fmt.Errorf("vendor %s: %w", in.VendorID, repository.ErrNotFound)
		}
		req.Vendor = &v
	}

	plan := costing.Plan(req)
	if err := s.plans.SetPlan(ctx, key, &plan); err != nil {
		log.Warn().Err(err).Msg("production: cache set plan failed")
	}
	return &plan, nil
}

// PurchaseList plans the request and turns it into per-vendor purchase orders.
func (s *ProductionService) PurchaseList(ctx context.Context, in PlanInput, mode costing.PurchaseMode) (*costing.ProductionPlan, *costing.PurchaseList, error) {
	plan, err := s.Plan(ctx, in)
	if err != nil {
		return nil, nil, err
	}
	list := costing.BuildPurchaseList(*plan, mode)
	return plan, &list, nil
}

// CompareVendors ranks every vendor by how much of the SKU's recipe it can supply.
func (s *ProductionService) CompareVendors(ctx context.Context, skuID string) ([]costing.VendorCoverage, error) {
	if strings.TrimSpace(skuID) == "" {
		return nil, domain.NewValidationError("sku_id", "sku is required")
	}
	sku, vendors, err := loadSKUAndVendors(ctx, s.skus, s.vendors, skuID)
	if err != nil {
		return nil, err
	}
	return costing.CompareVendors(*sku, vendors), nil
}

// Export renders the plan of a request as CSV (requirements only) or XLSX
// (summary, requirements, day breakdown and purchase orders).
func (s *ProductionService) Export(ctx context.Context, in PlanInput, format string, mode costing.PurchaseMode) (*Report, error) {
	plan, list, err := s.PurchaseList(ctx, in, mode)
	if err != nil {
		return nil, err
	}
	return renderReport(*plan, *list, format, s.now())
}

// Publish exports a plan and uploads it to object storage, returning the object key.
func (s *ProductionService) Publish(ctx context.Context, in PlanInput, format string, mode costing.PurchaseMode) (string, error) {
	if s.store == nil {
		return "", fmt.Errorf("object storage is not configured")
	}
	report, err := s.Export(ctx, in, format, mode)
	if err != nil {
		return "", err
	}
	key := s.now().Format("2006/01/") + report.Name
	if err := s.store.UploadObject(ctx, key, report.Data, report.ContentType); err != nil {
		return "", err
	}
	return key, nil
}

func renderReport(plan costing.ProductionPlan, list costing.PurchaseList, format string, at time.Time) (*Report, error) {
	base := fmt.Sprintf("requirements_%s_%s_%d_%s", slug(plan.SKUName), plan.PackType, plan.TargetQuantity, at.Format("20060102_150405"))

	switch strings.ToLower(format) {
	case "", FormatCSV:
		var buf bytes.Buffer
		if err := export.WritePlanCSV(&buf, plan); err != nil {
			return nil, err
		}
		return &Report{Name: base + ".csv", ContentType: "text/csv", Data: buf.Bytes()}, nil
	case FormatXLSX:
		data, err := export.PlanWorkbook(plan, list)
		if err != nil {
			return nil, err
		}
		return &Report{
			Name:        base + ".xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        data,
		}, nil
	}
	return nil, domain.NewValidationError("format", fmt.Sprintf("unsupported export format %q", format))
}

func findVendor(vendors []domain.Vendor, id string) (domain.Vendor, bool) {
	for _, v := range vendors {
		if v.ID == id {
			return v, true
		}
	}
	return domain.Vendor{}, false
}

func slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
