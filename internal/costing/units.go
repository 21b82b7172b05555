package costing

import "github.com/Ponna-create/wkly-nuts-sub000/internal/domain"

// gramsPerUnit converts a catalog unit to grams.
//
// pieces is treated exactly like grams: a piece-priced ingredient gets its per-piece
// price used as a per-gram price. Changing this changes every computed cost that
// involves a piece-priced ingredient.
var gramsPerUnit = map[domain.Unit]float64{
	domain.UnitKg:     1000,
	domain.UnitGrams:  1,
	domain.UnitPieces: 1,
}

func unitFactor(u domain.Unit) float64 {
	if parsed, ok := domain.ParseUnit(string(u)); ok {
		return gramsPerUnit[parsed]
	}
	return 1
}

// PricePerGram is the catalog price of one gram of an ingredient.
func PricePerGram(ing domain.Ingredient) float64 {
	return ing.PricePerUnit / unitFactor(ing.Unit)
}

// AvailableGrams is the catalog stock of an ingredient in grams.
func AvailableGrams(ing domain.Ingredient) float64 {
	return ing.QuantityAvailable * unitFactor(ing.Unit)
}
