package costing

import (
	"time"

	"github.com/Ponna-create/wkly-nuts-sub000/internal/domain"
)

// PriceSource resolves the price per gram used to cost a recipe line.
type PriceSource interface {
	PricePerGram(line domain.RecipeLine) float64
}

type snapshotPrices struct{}

func (snapshotPrices) PricePerGram(line domain.RecipeLine) float64 {
	return line.PricePerGram
}

// SnapshotPrices prices each line with the price captured when the line was entered.
var SnapshotPrices PriceSource = snapshotPrices{}

// VendorPrices prices lines from one vendor's catalog. Lines the vendor does not carry cost nothing.
type VendorPrices struct {
	Vendor domain.Vendor
}

func (v VendorPrices) PricePerGram(line domain.RecipeLine) float64 {
	if ing, ok := FindIngredient(v.Vendor, line.IngredientName); ok {
		return PricePerGram(ing)
	}
	return 0
}

// FindIngredient returns the first catalog entry of a vendor matching name.
func FindIngredient(v domain.Vendor, name string) (domain.Ingredient, bool) {
	for _, ing := range v.Ingredients {
		if Matches(name, ing.Name) {
			return ing, true
		}
	}
	return domain.Ingredient{}, false
}

// UnitCost is the raw-material weight and cost of one sachet or one unit.
type UnitCost struct {
	TotalGrams float64 `json:"total_grams"`
	TotalCost  float64 `json:"total_cost"`
}

// CostPerUnit sums grams and grams × price-per-gram over the lines. Stock is not
// considered: cost assumes unlimited supply.
func CostPerUnit(lines []domain.RecipeLine, src PriceSource) UnitCost {
	if src == nil {
		src = SnapshotPrices
	}
	var uc UnitCost
	for _, line := range lines {
		uc.TotalGrams += line.Grams
		uc.TotalCost += line.Grams * src.PricePerGram(line)
	}
	return uc
}

// WeeklyCost is the costed 7-day recipe of a weekly SKU.
type WeeklyCost struct {
	Days        map[domain.Weekday]UnitCost `json:"days"`
	WeeklyPack  domain.PackTotals           `json:"weekly_pack"`
	MonthlyPack domain.PackTotals           `json:"monthly_pack"`
}

// WeeklyPackCost costs each day's sachet and scales the week to a monthly pack.
// The monthly pack is exactly four weekly packs.
func WeeklyPackCost(sku domain.SKU, src PriceSource) WeeklyCost {
	wc := WeeklyCost{Days: make(map[domain.Weekday]UnitCost, len(domain.Weekdays))}
	wc.WeeklyPack.Sachets = domain.SachetsPerWeek
	for _, day := range domain.Weekdays {
		dc := CostPerUnit(sku.Recipes[day], src)
		wc.Days[day] = dc
		wc.WeeklyPack.TotalGrams += dc.TotalGrams
		wc.WeeklyPack.RawMaterialCost += dc.TotalCost
	}
	wc.MonthlyPack = domain.PackTotals{
		Sachets:         wc.WeeklyPack.Sachets * domain.WeeksPerMonthlyPack,
		TotalGrams:      wc.WeeklyPack.TotalGrams * domain.WeeksPerMonthlyPack,
		RawMaterialCost: wc.WeeklyPack.RawMaterialCost * domain.WeeksPerMonthlyPack,
	}
	return wc
}

// SingleUnitCost costs one unit of a single-unit SKU.
func SingleUnitCost(sku domain.SKU, src PriceSource) domain.SingleUnitTotals {
	uc := CostPerUnit(sku.Ingredients, src)
	return domain.SingleUnitTotals{
		UnitWeightKg:    sku.UnitWeightKg,
		TotalGrams:      uc.TotalGrams,
		RawMaterialCost: uc.TotalCost,
	}
}

// Snapshot returns a copy of sku with its cached pack totals recomputed from src.
// The input is left untouched.
func Snapshot(sku domain.SKU, src PriceSource, at time.Time) domain.SKU {
	out := sku
	out.WeeklyPack, out.MonthlyPack, out.SingleUnit = nil, nil, nil
	if sku.IsWeekly() {
		wc := WeeklyPackCost(sku, src)
		out.WeeklyPack = &wc.WeeklyPack
		out.MonthlyPack = &wc.MonthlyPack
	} else {
		su := SingleUnitCost(sku, src)
		out.SingleUnit = &su
	}
	out.CostsComputedAt = &at
	return out
}

// RawMaterialCost returns the cached raw-material cost of one pack of the given type.
func RawMaterialCost(sku domain.SKU, pt domain.PackType) (float64, bool) {
	switch {
	case pt == domain.PackWeekly && sku.WeeklyPack != nil:
		return sku.WeeklyPack.RawMaterialCost, true
	case pt == domain.PackMonthly && sku.MonthlyPack != nil:
		return sku.MonthlyPack.RawMaterialCost, true
	case pt == domain.PackSingle && sku.SingleUnit != nil:
		return sku.SingleUnit.RawMaterialCost, true
	}
	return 0, false
}

// LinePriceMode selects which recipe lines RefreshLinePrices touches.
type LinePriceMode int

const (
	// RefreshMissing only fills lines that have a vendor but no captured price.
	RefreshMissing LinePriceMode = iota
	// RefreshAll re-captures every line that names a vendor.
	RefreshAll
)

// RefreshLinePrices returns a copy of sku whose recipe lines carry the current price
// per gram of the vendor they name. Lines without a vendor, or whose vendor no longer
// carries the ingredient, keep their captured price.
func RefreshLinePrices(sku domain.SKU, vendors []domain.Vendor, mode LinePriceMode) domain.SKU {
	byID := make(map[string]domain.Vendor, len(vendors))
	for _, v := range vendors {
		byID[v.ID] = v
	}
	refresh := func(lines []domain.RecipeLine) []domain.RecipeLine {
		if lines == nil {
			return nil
		}
		out := make([]domain.RecipeLine, len(lines))
		for i, line := range lines {
			out[i] = line
			if line.VendorID == "" || (mode == RefreshMissing && line.PricePerGram > 0) {
				continue
			}
			v, ok := byID[line.VendorID]
			if !ok {
				continue
			}
			if ing, ok := FindIngredient(v, line.IngredientName); ok {
				out[i].PricePerGram = PricePerGram(ing)
				out[i].VendorName = v.Name
			}
		}
		return out
	}

	out := sku
	out.Ingredients = refresh(sku.Ingredients)
	if sku.Recipes != nil {
		out.Recipes = make(map[domain.Weekday][]domain.RecipeLine, len(sku.Recipes))
		for day, lines := range sku.Recipes {
			out.Recipes[day] = refresh(lines)
		}
	}
	return out
}
