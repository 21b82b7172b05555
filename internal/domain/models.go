// internal/domain/models.go
package domain

import (
	"fmt"
	"strings"
	"time"
)

// Unit is the unit a vendor ingredient's quantity and price are declared in.
type Unit string

const (
	UnitKg     Unit = "kg"
	UnitGrams  Unit = "grams"
	UnitPieces Unit = "pieces"
)

// ParseUnit normalizes common spellings of the supported units.
func ParseUnit(value string) (Unit, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "kg", "kgs", "kilogram", "kilograms":
		return UnitKg, true
	case "g", "gm", "gms", "gram", "grams":
		return UnitGrams, true
	case "pc", "pcs", "piece", "pieces":
		return UnitPieces, true
	}
	return "", false
}

// Ingredient is a vendor-owned catalog entry.
type Ingredient struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	QuantityAvailable float64 `json:"quantity_available"`
	Unit              Unit    `json:"unit"`
	PricePerUnit      float64 `json:"price_per_unit"`
	Quality           int     `json:"quality"`
	Notes             string  `json:"notes,omitempty"`
}

// Vendor supplies ingredients. Ingredients are owned by the vendor and go with it.
type Vendor struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Phone       string       `json:"phone"`
	Location    string       `json:"location"`
	Email       string       `json:"email,omitempty"`
	Ingredients []Ingredient `json:"ingredients"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func (v *Vendor) GetID() string { return v.ID }
func (v *Vendor) SetID(id string) { v.ID = id }
func (v *Vendor) Touch(now time.Time) { touch(&v.CreatedAt, &v.UpdatedAt, now) }

// Validate checks the save-time invariants of a vendor.
func (v *Vendor) Validate() error {
	verr := &ValidationError{}
	if strings.TrimSpace(v.Name) == "" {
		verr.Add("name", "vendor name is required")
	}
	if len(v.Ingredients) == 0 {
		verr.Add("ingredients", "vendor must have at least one ingredient")
	}
	for i, ing := range v.Ingredients {
		field := fmt.Sprintf("ingredients[%d]", i)
		if strings.TrimSpace(ing.Name) == "" {
			verr.Add(field+".name", "ingredient name is required")
		}
		if _, ok := ParseUnit(string(ing.Unit)); !ok {
			verr.Add(field+".unit", fmt.Sprintf("unsupported unit %q", ing.Unit))
		}
		if ing.QuantityAvailable < 0 {
			verr.Add(field+".quantity_available", "quantity cannot be negative")
		}
		if ing.PricePerUnit < 0 {
			verr.Add(field+".price_per_unit", "price cannot be negative")
		}
		if ing.Quality < 1 || ing.Quality > 5 {
			verr.Add(field+".quality", "quality must be between 1 and 5")
		}
	}
	return verr.OrNil()
}

// Customer buys finished products.
type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address,omitempty"`
	GSTIN     string    `json:"gstin,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Customer) GetID() string { return c.ID }
func (c *Customer) SetID(id string) { c.ID = id }
func (c *Customer) Touch(now time.Time) { touch(&c.CreatedAt, &c.UpdatedAt, now) }

func (c *Customer) Validate() error {
	verr := &ValidationError{}
	if strings.TrimSpace(c.Name) == "" {
		verr.Add("name", "customer name is required")
	}
	return verr.OrNil()
}

// InventoryRecord is the finished-goods stock of one SKU in one pack type.
type InventoryRecord struct {
	ID           string    `json:"id"`
	SKUID        string    `json:"sku_id"`
	SKUName      string    `json:"sku_name"`
	PackType     PackType  `json:"pack_type"`
	Quantity     int       `json:"quantity"`
	ReorderLevel int       `json:"reorder_level"`
	Location     string    `json:"location,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (r *InventoryRecord) GetID() string { return r.ID }
func (r *InventoryRecord) SetID(id string) { r.ID = id }
func (r *InventoryRecord) Touch(now time.Time) { touch(&r.CreatedAt, &r.UpdatedAt, now) }

// IsLow reports whether the stock is at or below its reorder level.
func (r *InventoryRecord) IsLow() bool {
	return r.Quantity <= r.ReorderLevel
}

func (r *InventoryRecord) Validate() error {
	verr := &ValidationError{}
	if strings.TrimSpace(r.SKUID) == "" {
		verr.Add("sku_id", "sku is required")
	}
	if _, ok := ParsePackType(string(r.PackType)); !ok {
		verr.Add("pack_type", fmt.Sprintf("unsupported pack type %q", r.PackType))
	}
	if r.Quantity < 0 {
		verr.Add("quantity", "quantity cannot be negative")
	}
	if r.ReorderLevel < 0 {
		verr.Add("reorder_level", "reorder level cannot be negative")
	}
	return verr.OrNil()
}

func touch(createdAt, updatedAt *time.Time, now time.Time) {
	if createdAt.IsZero() {
		*createdAt = now
	}
	*updatedAt = now
}
