// Package importer reads vendor ingredient catalogs exported from spreadsheets.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Ponna-create/wkly-nuts-sub000/internal/domain"
)

// Catalog columns. Headers are matched case-insensitively against headerAliases.
const (
	colVendor     = "vendor"
	colPhone      = "phone"
	colLocation   = "location"
	colIngredient = "ingredient"
	colQuantity   = "quantity"
	colUnit       = "unit"
	colPrice      = "price"
	colQuality    = "quality"
	colNotes      = "notes"
)

const defaultQuality = 3

var headerAliases = map[string]string{
	"vendor":             colVendor,
	"vendor name":        colVendor,
	"supplier":           colVendor,
	"supplier name":      colVendor,
	"phone":              colPhone,
	"contact":            colPhone,
	"location":           colLocation,
	"city":               colLocation,
	"ingredient":         colIngredient,
	"ingredient name":    colIngredient,
	"item":               colIngredient,
	"quantity":           colQuantity,
	"quantity available": colQuantity,
	"qty":                colQuantity,
	"stock":              colQuantity,
	"unit":               colUnit,
	"price":              colPrice,
	"price per unit":     colPrice,
	"rate":               colPrice,
	"quality":            colQuality,
	"rating":             colQuality,
	"notes":              colNotes,
	"remarks":            colNotes,
}

var requiredColumns = []string{colVendor, colIngredient, colPrice}

// ErrUnsupportedFormat is returned for files that are neither CSV nor XLSX.
var ErrUnsupportedFormat = errors.New("unsupported catalog format")

// Parse reads a catalog, choosing the format from the file name extension.
func Parse(name string, r io.Reader) ([]domain.Vendor, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return ParseCSV(r)
	case ".xlsx":
		return ParseXLSX(r)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
}

// IsCatalogFile reports whether Parse understands the file name.
func IsCatalogFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".csv" || ext == ".xlsx"
}

// ParseCSV reads a catalog with one row per vendor ingredient.
func ParseCSV(r io.Reader) ([]domain.Vendor, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV catalog: %w", err)
	}
	return parseRecords(records)
}

func parseRecords(records [][]string) ([]domain.Vendor, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}

	// Map header to indices
	colMap := make(map[string]int)
	for i, col := range records[0] {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(col, "\ufeff")))
		if canonical, ok := headerAliases[key]; ok {
			if _, seen := colMap[canonical]; !seen {
				colMap[canonical] = i
			}
		}
	}
	for _, col := range requiredColumns {
		if _, ok := colMap[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	b := newCatalogBuilder()
	for i, record := range records[1:] {
		if blank(record) {
			continue
		}
		if err := b.add(record, colMap); err != nil {
			// i+2: one for the header, one for 1-based numbering
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
	}
	return b.vendors(), nil
}

type catalogBuilder struct {
	order []string
	byKey map[string]*domain.Vendor
}

func newCatalogBuilder() *catalogBuilder {
	return &catalogBuilder{byKey: make(map[string]*domain.Vendor)}
}

func (b *catalogBuilder) add(record []string, colMap map[string]int) error {
	getValue := func(colName string) string {
		if idx, ok := colMap[colName]; ok && idx < len(record) {
			return strings.TrimSpace(record[idx])
		}
		return ""
	}
	getFloat := func(colName string) (float64, error) {
		val := strings.ReplaceAll(getValue(colName), ",", "")
		if val == "" {
			return 0, nil
		}
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s %q", colName, getValue(colName))
		}
		return f, nil
	}

	vendorName := getValue(colVendor)
	if vendorName == "" {
		return fmt.Errorf("vendor is required")
	}
	name := getValue(colIngredient)
	if name == "" {
		return fmt.Errorf("ingredient is required")
	}

	price, err := getFloat(colPrice)
	if err != nil {
		return err
	}
	qty, err := getFloat(colQuantity)
	if err != nil {
		return err
	}

	unit := domain.UnitKg
	if raw := getValue(colUnit); raw != "" {
		parsed, ok := domain.ParseUnit(raw)
		if !ok {
			return fmt.Errorf("unsupported unit %q", raw)
		}
		unit = parsed
	}

	quality := defaultQuality
	if raw := getValue(colQuality); raw != "" {
		// Handle float strings like "4.0"
		q, err := strconv.ParseFloat(raw, 64)
		if err != nil || q < 1 || q > 5 {
			return fmt.Errorf("quality must be between 1 and 5, got %q", raw)
		}
		quality = int(q)
	}

	key := strings.ToLower(vendorName)
	v, ok := b.byKey[key]
	if !ok {
		v = &domain.Vendor{Name: vendorName}
		b.byKey[key] = v
		b.order = append(b.order, key)
	}
	if v.Phone == "" {
		v.Phone = getValue(colPhone)
	}
	if v.Location == "" {
		v.Location = getValue(colLocation)
	}

	upsertIngredient(v, domain.Ingredient{
		Name:              name,
		QuantityAvailable: qty,
		Unit:              unit,
		PricePerUnit:      price,
		Quality:           quality,
		Notes:             getValue(colNotes),
	})
	return nil
}

func (b *catalogBuilder) vendors() []domain.Vendor {
	out := make([]domain.Vendor, 0, len(b.order))
	for _, key := range b.order {
		out = append(out, *b.byKey[key])
	}
	return out
}

// Merge applies an imported catalog to an existing vendor. Ingredients are matched by
// case-insensitive name; matched entries keep their id, new ones are appended and
// ingredients absent from the import are left untouched.
func Merge(existing, incoming domain.Vendor) domain.Vendor {
	merged := existing
	merged.Ingredients = append([]domain.Ingredient(nil), existing.Ingredients...)
	if incoming.Phone != "" {
		merged.Phone = incoming.Phone
	}
	if incoming.Location != "" {
		merged.Location = incoming.Location
	}
	for _, ing := range incoming.Ingredients {
		upsertIngredient(&merged, ing)
	}
	return merged
}

func upsertIngredient(v *domain.Vendor, ing domain.Ingredient) {
	key := strings.ToLower(strings.TrimSpace(ing.Name))
	for i := range v.Ingredients {
		if strings.ToLower(strings.TrimSpace(v.Ingredients[i].Name)) == key {
			ing.ID = v.Ingredients[i].ID
			v.Ingredients[i] = ing
			return
		}
	}
	v.Ingredients = append(v.Ingredients, ing)
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
