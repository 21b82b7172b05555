package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ponna-create/wkly-nuts-sub000/internal/config"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/costing"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/domain"
)

func TestBuildPlanKey(t *testing.T) {
	base := PlanKey{SKUID: "sku-1", TargetQuantity: 10, PackType: domain.PackWeekly}

	k := buildPlanKey(base)
	assert.True(t, strings.HasPrefix(k, "plan:"))
	assert.Len(t, k, len("plan:")+40)
	assert.Equal(t, k, buildPlanKey(base))

	auto := base
	auto.VendorID = "auto"
	assert.Equal(t, k, buildPlanKey(auto), "empty vendor means auto selection")

	for _, other := range []PlanKey{
		{SKUID: "sku-2", TargetQuantity: 10, PackType: domain.PackWeekly},
		{SKUID: "sku-1", TargetQuantity: 11, PackType: domain.PackWeekly},
		{SKUID: "sku-1", TargetQuantity: 10, PackType: domain.PackMonthly},
		{SKUID: "sku-1", TargetQuantity: 10, PackType: domain.PackWeekly, VendorID: "v-abc"},
	} {
		assert.NotEqual(t, k, buildPlanKey(other))
	}
}

func TestDisabledCacheIsNoop(t *testing.T) {
	ctx := context.Background()
	c, err := NewPlanCache(config.CacheConfig{Enabled: false})
	require.NoError(t, err)

	key := PlanKey{SKUID: "sku-1", TargetQuantity: 1, PackType: domain.PackWeekly}
	require.NoError(t, c.SetPlan(ctx, key, &costing.ProductionPlan{SKUID: "sku-1"}))

	plan, ok, err := c.GetPlan(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, plan)
	assert.NoError(t, c.InvalidateAll(ctx))
}

func TestBuildRedisOptions(t *testing.T) {
	opts, err := redisOptions(config.CacheConfig{RedisPassword: "secret", RedisDB: 2})
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:6379", opts.Addr)
	assert.Equal(t, 2, opts.DB)

	opts, err = redisOptions(config.CacheConfig{RedisURL: "redis://:pw@cache.internal:6380/1"})
	require.NoError(t, err)
	assert.Equal(t, "cache.internal:6380", opts.Addr)
	assert.Equal(t, 1, opts.DB)

	_, err = redisOptions(config.CacheConfig{RedisURL: "http://nope"})
	assert.Error(t, err)
}

func TestPlanTTL(t *testing.T) {
	assert.Equal(t, defaultPlanTTL, planTTL(config.CacheConfig{}))
	assert.Equal(t, 90*time.Second, planTTL(config.CacheConfig{PlanTTLSeconds: 90}))
}
