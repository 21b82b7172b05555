package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/Ponna-create/wkly-nuts-sub000/internal/config"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/costing"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/domain"
)

const (
	planKeyPrefix = "plan"
	scanBatchSize = 100
)

// PlanKey identifies one planning request.
type PlanKey struct {
	SKUID          string
	TargetQuantity int
	PackType       domain.PackType
	VendorID       string
}

// PlanCache stores computed production plans. Entries are dropped whenever a
// vendor or SKU changes, so a hit always equals a fresh computation.
type PlanCache interface {
	GetPlan(ctx context.Context, key PlanKey) (*costing.ProductionPlan, bool, error)
	SetPlan(ctx context.Context, key PlanKey, plan *costing.ProductionPlan) error
	InvalidateAll(ctx context.Context) error
}

type redisPlanCache struct {
	store *jsonStore
}

type noopPlanCache struct{}

func NewPlanCache(cfg config.CacheConfig) (PlanCache, error) {
	if !cfg.Enabled {
		return &noopPlanCache{}, nil
	}

	store, err := dialJSONStore(cfg)
	if err != nil {
		return nil, err
	}
	return &redisPlanCache{store: store}, nil
}

func NewNoopPlanCache() PlanCache {
	return &noopPlanCache{}
}

func (c *redisPlanCache) GetPlan(ctx context.Context, key PlanKey) (*costing.ProductionPlan, bool, error) {
	var plan costing.ProductionPlan
	ok, err := c.store.get(ctx, buildPlanKey(key), &plan)
	if err != nil || !ok {
		return nil, false, err
	}
	return &plan, true, nil
}

func (c *redisPlanCache) SetPlan(ctx context.Context, key PlanKey, plan *costing.ProductionPlan) error {
	return c.store.set(ctx, buildPlanKey(key), plan)
}

func (c *redisPlanCache) InvalidateAll(ctx context.Context) error {
	return c.store.purge(ctx, planKeyPrefix+":")
}

func (n *noopPlanCache) GetPlan(ctx context.Context, key PlanKey) (*costing.ProductionPlan, bool, error) {
	return nil, false, nil
}

func (n *noopPlanCache) SetPlan(ctx context.Context, key PlanKey, plan *costing.ProductionPlan) error {
	return nil
}

func (n *noopPlanCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildPlanKey(key PlanKey) string {
	vendor := key.VendorID
	if vendor == "" {
		vendor = "auto"
	}
	parts := []string{
		"sku=" + key.SKUID,
		"qty=" + strconv.Itoa(key.TargetQuantity),
		"pack=" + strings.ToLower(string(key.PackType)),
		"vendor=" + vendor,
	}

	raw := strings.Join(parts, "|")
	hash := sha1.Sum([]byte(raw))
	return fmt.Sprintf("%s:%s", planKeyPrefix, hex.EncodeToString(hash[:]))
}
