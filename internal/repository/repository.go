package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Entity is implemented by every persisted domain record.
type Entity interface {
	GetID() string
	SetID(id string)
	Touch(now time.Time)
}

// Repository is a typed view of one collection of a DocumentStore.
type Repository[T any, PT interface {
	*T
	Entity
}] struct {
	store DocumentStore
	coll  Collection
	now   func() time.Time
}

func NewRepository[T any, PT interface {
	*T
	Entity
}](store DocumentStore, coll Collection) *Repository[T, PT] {
	return &Repository[T, PT]{store: store, coll: coll, now: func() time.Time { return time.Now().UTC() }}
}

// WithClock replaces the timestamp source.
func (r *Repository[T, PT]) WithClock(now func() time.Time) *Repository[T, PT] {
	r.now = now
	return r
}

func (r *Repository[T, PT]) Get(ctx context.Context, id string) (*T, error) {
	raw, err := r.store.Get(ctx, r.coll, id)
	if err != nil {
		return nil, err
	}
	v := new(T)
	if err := json.Unmarshal(raw, v); err != nil {
		return nil, fmt.Errorf("failed to decode %s %s: %w", r.coll, id, err)
	}
	return v, nil
}

func (r *Repository[T, PT]) List(ctx context.Context) ([]*T, error) {
	raws, err := r.store.List(ctx, r.coll)
	if err != nil {
		return nil, err
	}
	out := make([]*T, 0, len(raws))
	for _, raw := range raws {
		v := new(T)
		if err := json.Unmarshal(raw, v); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", r.coll, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// Save assigns an identifier when the record has none, stamps it and replaces the
// stored document.
func (r *Repository[T, PT]) Save(ctx context.Context, v *T) error {
	e := PT(v)
	if e.GetID() == "" {
		e.SetID(uuid.NewString())
	}
	e.Touch(r.now())

	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s %s: %w", r.coll, e.GetID(), err)
	}
	return r.store.Put(ctx, r.coll, e.GetID(), raw)
}

func (r *Repository[T, PT]) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, r.coll, id)
}

// Exists reports whether a record with id is stored.
func (r *Repository[T, PT]) Exists(ctx context.Context, id string) (bool, error) {
	_, err := r.store.Get(ctx, r.coll, id)
	switch {
	case err == nil:
		return true, nil
	case IsNotFound(err):
		return false, nil
	}
	return false, err
}

// IsNotFound reports whether err carries ErrNotFound.
func IsNotFound(err error) bool {
	return err != nil && errors.Is(err, ErrNotFound)
}
