// internal/repository/store.go
package repository

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a record does not exist in its collection.
var ErrNotFound = errors.New("record not found")

// Collection names one kind of persisted entity.
type Collection string

const (
	Vendors           Collection = "vendors"
	SKUs              Collection = "skus"
	PricingStrategies Collection = "pricing_strategies"
	SalesTargets      Collection = "sales_targets"
	Customers         Collection = "customers"
	Invoices          Collection = "invoices"
	Inventory         Collection = "inventory"
)

// Collections lists every collection a backend has to provide.
var Collections = []Collection{Vendors, SKUs, PricingStrategies, SalesTargets, Customers, Invoices, Inventory}

// DocumentStore persists JSON documents by collection and identifier. Put replaces
// the whole document; List returns documents ordered by identifier.
type DocumentStore interface {
	Get(ctx context.Context, c Collection, id string) ([]byte, error)
	List(ctx context.Context, c Collection) ([][]byte, error)
	Put(ctx context.Context, c Collection, id string, doc []byte) error
	Delete(ctx context.Context, c Collection, id string) error
	Ping(ctx context.Context) error
	Close() error
}
