package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// RecipeLine is one ingredient of a sachet (weekly SKU) or of a unit (single-unit SKU).
// Vendor and price fields are a snapshot taken when the line was entered.
type RecipeLine struct {
	IngredientName string  `json:"ingredient_name"`
	Grams          float64 `json:"grams"`
	Percentage     float64 `json:"percentage"`
	VendorID       string  `json:"vendor_id,omitempty"`
	VendorName     string  `json:"vendor_name,omitempty"`
	PricePerGram   float64 `json:"price_per_gram"`
}

// PackTotals are the cached totals of a weekly or monthly pack.
type PackTotals struct {
	Sachets         int     `json:"sachets"`
	TotalGrams      float64 `json:"total_grams"`
	RawMaterialCost float64 `json:"raw_material_cost"`
}

// SingleUnitTotals are the cached totals of one single-unit product.
type SingleUnitTotals struct {
	UnitWeightKg    float64 `json:"unit_weight_kg"`
	TotalGrams      float64 `json:"total_grams"`
	RawMaterialCost float64 `json:"raw_material_cost"`
}

// SKU is a product definition. Weekly SKUs carry a recipe per weekday, single-unit
// SKUs a flat ingredient list.
//
// WeeklyPack, MonthlyPack and SingleUnit are snapshots computed when the SKU is saved
// or explicitly recalculated. They are not refreshed when vendor prices change.
type SKU struct {
	ID                string                   `json:"id"`
	Name              string                   `json:"name"`
	Description       string                   `json:"description,omitempty"`
	Type              SKUType                  `json:"sku_type"`
	TargetWeightGrams float64                  `json:"target_weight_grams,omitempty"`
	Recipes           map[Weekday][]RecipeLine `json:"recipes,omitempty"`
	UnitWeightKg      float64                  `json:"unit_weight_kg,omitempty"`
	Ingredients       []RecipeLine             `json:"ingredients,omitempty"`
	WeeklyPack        *PackTotals              `json:"weekly_pack,omitempty"`
	MonthlyPack       *PackTotals              `json:"monthly_pack,omitempty"`
	SingleUnit        *SingleUnitTotals        `json:"single_unit,omitempty"`
	CostsComputedAt   *time.Time               `json:"costs_computed_at,omitempty"`
	CreatedAt         time.Time                `json:"created_at"`
	UpdatedAt         time.Time                `json:"updated_at"`
}

func (s *SKU) GetID() string { return s.ID }
func (s *SKU) SetID(id string) { s.ID = id }
func (s *SKU) Touch(now time.Time) { touch(&s.CreatedAt, &s.UpdatedAt, now) }

// IsWeekly reports whether the SKU is the 7-day sachet variant.
func (s *SKU) IsWeekly() bool {
	return s.Type == SKUTypeWeekly
}

// PackTypes returns the pack types a SKU can be sold and priced in.
func (s *SKU) PackTypes() []PackType {
	if s.IsWeekly() {
		return []PackType{PackWeekly, PackMonthly}
	}
	return []PackType{PackSingle}
}

// SupportsPackType reports whether pt is one of PackTypes.
func (s *SKU) SupportsPackType(pt PackType) bool {
	for _, p := range s.PackTypes() {
		if p == pt {
			return true
		}
	}
	return false
}

// AllLines returns every recipe line, weekdays in order for weekly SKUs.
func (s *SKU) AllLines() []RecipeLine {
	if !s.IsWeekly() {
		return s.Ingredients
	}
	var lines []RecipeLine
	for _, day := range Weekdays {
		lines = append(lines, s.Recipes[day]...)
	}
	return lines
}

// IsComplete reports whether every weekday has at least one recipe line.
func (s *SKU) IsComplete() bool {
	if !s.IsWeekly() {
		return len(s.Ingredients) > 0
	}
	for _, day := range Weekdays {
		if len(s.Recipes[day]) == 0 {
			return false
		}
	}
	return true
}

// FillPercentages recomputes each line's share of the sachet target weight or the unit weight.
func (s *SKU) FillPercentages() {
	if s.IsWeekly() {
		for _, day := range Weekdays {
			lines := s.Recipes[day]
			for i := range lines {
				lines[i].Percentage = percentOf(lines[i].Grams, s.TargetWeightGrams)
			}
		}
		return
	}
	for i := range s.Ingredients {
		s.Ingredients[i].Percentage = percentOf(s.Ingredients[i].Grams, s.UnitWeightKg*1000)
	}
}

// WeightWarnings lists days (or the unit) whose recipe weight does not match the target.
// A mismatch is a soft warning and never blocks a save.
func (s *SKU) WeightWarnings() []string {
	var warnings []string
	if s.IsWeekly() {
		for _, day := range Weekdays {
			total := sumGrams(s.Recipes[day])
			if len(s.Recipes[day]) > 0 && math.Abs(total-s.TargetWeightGrams) > 0.01 {
				warnings = append(warnings, fmt.Sprintf("%s: recipe weighs %.2fg, target is %.2fg", day, total, s.TargetWeightGrams))
			}
		}
		return warnings
	}
	target := s.UnitWeightKg * 1000
	if total := sumGrams(s.Ingredients); len(s.Ingredients) > 0 && math.Abs(total-target) > 0.01 {
		warnings = append(warnings, fmt.Sprintf("unit: recipe weighs %.2fg, target is %.2fg", total, target))
	}
	return warnings
}

// Validate checks the save-time invariants: variant fields and recipe completeness.
func (s *SKU) Validate() error {
	verr := &ValidationError{}
	if strings.TrimSpace(s.Name) == "" {
		verr.Add("name", "sku name is required")
	}

	switch s.Type {
	case SKUTypeWeekly:
		if s.TargetWeightGrams <= 0 {
			verr.Add("target_weight_grams", "target weight per sachet must be greater than zero")
		}
		for _, day := range Weekdays {
			lines := s.Recipes[day]
			if len(lines) == 0 {
				verr.Add("recipes."+string(day), "recipe for "+day.Label()+" has no ingredients")
			}
			validateLines(verr, "recipes."+string(day), lines)
		}
		for day := range s.Recipes {
			if _, ok := ParseWeekday(string(day)); !ok {
				verr.Add("recipes", fmt.Sprintf("unknown weekday %q", day))
			}
		}
	case SKUTypeSingle:
		if s.UnitWeightKg <= 0 {
			verr.Add("unit_weight_kg", "unit weight must be greater than zero")
		}
		if len(s.Ingredients) == 0 {
			verr.Add("ingredients", "single-unit sku needs at least one ingredient")
		}
		validateLines(verr, "ingredients", s.Ingredients)
	default:
		verr.Add("sku_type", fmt.Sprintf("unsupported sku type %q", s.Type))
	}

	return verr.OrNil()
}

func validateLines(verr *ValidationError, prefix string, lines []RecipeLine) {
	for i, line := range lines {
		field := fmt.Sprintf("%s[%d]", prefix, i)
		if strings.TrimSpace(line.IngredientName) == "" {
			verr.Add(field+".ingredient_name", "ingredient name is required")
		}
		if line.Grams <= 0 {
			verr.Add(field+".grams", "grams must be greater than zero")
		}
		if line.PricePerGram < 0 {
			verr.Add(field+".price_per_gram", "price cannot be negative")
		}
	}
}

func sumGrams(lines []RecipeLine) float64 {
	var total float64
	for _, l := range lines {
		total += l.Grams
	}
	return total
}

func percentOf(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return part / whole * 100
}
