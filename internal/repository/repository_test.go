package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ponna-create/wkly-nuts-sub000/internal/domain"
)

func TestRepositorySaveAssignsIDAndStamps(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	clock := created
	repo := NewRepository[domain.Customer](NewMemoryStore(), Customers).
		WithClock(func() time.Time { return clock })

	c := &domain.Customer{Name: "Cafe Aroma"}
	require.NoError(t, repo.Save(ctx, c))
	require.NotEmpty(t, c.ID)
	assert.Equal(t, created, c.CreatedAt)

	clock = created.Add(time.Hour)
	c.Phone = "98450 00000"
	require.NoError(t, repo.Save(ctx, c))

	got, err := repo.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got.CreatedAt)
	assert.Equal(t, clock, got.UpdatedAt)
	assert.Equal(t, "98450 00000", got.Phone)
}

func TestRepositoryKeepsExplicitID(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository[domain.SalesTarget](NewMemoryStore(), SalesTargets)

	st := &domain.SalesTarget{ID: domain.SalesTargetID(2026, 4), Month: 4, Year: 2026}
	require.NoError(t, repo.Save(ctx, st))
	assert.Equal(t, "2026-04", st.ID)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 4, all[0].Month)
}

func TestRepositoryNotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository[domain.Vendor](NewMemoryStore(), Vendors)

	_, err := repo.Get(ctx, "nope")
	assert.True(t, IsNotFound(err))
	assert.True(t, IsNotFound(repo.Delete(ctx, "nope")))

	ok, err := repo.Exists(ctx, "nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStoreCopiesDocuments(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	doc := []byte(`{"a":1}`)
	require.NoError(t, s.Put(ctx, Vendors, "x", doc))
	doc[2] = 'b'

	got, err := s.Get(ctx, Vendors, "x")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))
}
