package costing

import (
	"sort"

	"github.com/Ponna-create/wkly-nuts-sub000/internal/domain"
)

// VendorCoverage is how much of a SKU's recipe one vendor can supply.
type VendorCoverage struct {
	VendorID       string   `json:"vendor_id"`
	VendorName     string   `json:"vendor_name"`
	Supplied       int      `json:"supplied"`
	Total          int      `json:"total"`
	CoveragePct    float64  `json:"coverage_pct"`
	Missing        []string `json:"missing"`
	EstimatedCost  float64  `json:"estimated_cost"`
	AverageQuality float64  `json:"average_quality"`
}

// CompareVendors ranks vendors by how many distinct recipe ingredients they carry,
// then by the estimated raw-material cost of one pack (weekly) or one unit from the
// ingredients they do carry.
func CompareVendors(sku domain.SKU, vendors []domain.Vendor) []VendorCoverage {
	cons := newConsolidator()
	for _, line := range sku.AllLines() {
		cons.add(line.IngredientName, line.Grams, 0)
	}
	needs := cons.requirements()

	out := make([]VendorCoverage, 0, len(vendors))
	for _, v := range vendors {
		vc := VendorCoverage{VendorID: v.ID, VendorName: v.Name, Total: len(needs), Missing: []string{}}
		var quality float64
		for _, need := range needs {
			ing, ok := FindIngredient(v, need.IngredientName)
			if !ok {
				vc.Missing = append(vc.Missing, need.IngredientName)
				continue
			}
			vc.Supplied++
			vc.EstimatedCost += need.TotalGrams * PricePerGram(ing)
			quality += float64(ing.Quality)
		}
		vc.CoveragePct = safeDiv(float64(vc.Supplied)*100, float64(vc.Total))
		vc.AverageQuality = safeDiv(quality, float64(vc.Supplied))
		out = append(out, vc)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Supplied != out[j].Supplied {
			return out[i].Supplied > out[j].Supplied
		}
		return out[i].EstimatedCost < out[j].EstimatedCost
	})
	return out
}
