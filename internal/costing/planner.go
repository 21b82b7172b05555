package costing

import (
	"github.com/Ponna-create/wkly-nuts-sub000/internal/domain"
)

const (
	// NotAvailableVendor is reported when no vendor carries an ingredient.
	NotAvailableVendor = "N/A"
	notSuppliedSuffix  = " (Not Supplied)"
)

// PlanRequest is the immutable input of one planning run.
type PlanRequest struct {
	SKU            domain.SKU
	TargetQuantity int
	PackType       domain.PackType
	// Vendor restricts pricing and availability to one catalog. Vendors is only
	// scanned when Vendor is nil.
	Vendor  *domain.Vendor
	Vendors []domain.Vendor
}

// DayLine is one recipe line of a day breakdown.
type DayLine struct {
	IngredientName string  `json:"ingredient_name"`
	GramsPerSachet float64 `json:"grams_per_sachet"`
	TotalGrams     float64 `json:"total_grams"`
	PricePerGram   float64 `json:"price_per_gram"`
	PricePerSachet float64 `json:"price_per_sachet"`
	TotalCost      float64 `json:"total_cost"`
}

// DayBreakdown is the production of one weekday across the whole run.
type DayBreakdown struct {
	Day         domain.Weekday `json:"day"`
	Label       string         `json:"label"`
	Lines       []DayLine      `json:"lines"`
	SachetGrams float64        `json:"sachet_grams"`
	SachetCost  float64        `json:"sachet_cost"`
	TotalGrams  float64        `json:"total_grams"`
	TotalCost   float64        `json:"total_cost"`
}

// Requirement is one consolidated ingredient of a plan.
type Requirement struct {
	IngredientName string  `json:"ingredient_name"`
	TotalGrams     float64 `json:"total_grams"`
	TotalKg        float64 `json:"total_kg"`
	AvailableGrams float64 `json:"available_grams"`
	ShortageGrams  float64 `json:"shortage_grams"`
	HasShortage    bool    `json:"has_shortage"`
	PricePerGram   float64 `json:"price_per_gram"`
	TotalCost      float64 `json:"total_cost"`
	VendorID       string  `json:"vendor_id,omitempty"`
	VendorName     string  `json:"vendor_name"`
	Supplied       bool    `json:"supplied"`
}

// PlanSummary aggregates a plan.
type PlanSummary struct {
	TotalCost       float64 `json:"total_cost"`
	TotalGrams      float64 `json:"total_grams"`
	Multiplier      int     `json:"multiplier"`
	TotalSachets    int     `json:"total_sachets"`
	CostPerPack     float64 `json:"cost_per_pack"`
	CostPerSachet   float64 `json:"cost_per_sachet"`
	CostPerUnit     float64 `json:"cost_per_unit"`
	IngredientCount int     `json:"ingredient_count"`
	ShortageCount   int     `json:"shortage_count"`
}

// ProductionPlan is the result of Plan.
type ProductionPlan struct {
	SKUID          string          `json:"sku_id"`
	SKUName        string          `json:"sku_name"`
	SKUType        domain.SKUType  `json:"sku_type"`
	PackType       domain.PackType `json:"pack_type"`
	TargetQuantity int             `json:"target_quantity"`
	VendorID       string          `json:"vendor_id,omitempty"`
	VendorName     string          `json:"vendor_name,omitempty"`
	Days           []DayBreakdown  `json:"days,omitempty"`
	Requirements   []Requirement   `json:"requirements"`
	Summary        PlanSummary     `json:"summary"`
}

// Multiplier converts a target quantity into week-equivalents (weekly SKUs) or units.
func Multiplier(skuType domain.SKUType, pt domain.PackType, qty int) int {
	if qty < 0 {
		return 0
	}
	if skuType == domain.SKUTypeWeekly && pt == domain.PackMonthly {
		return qty * domain.WeeksPerMonthlyPack
	}
	return qty
}

// Plan computes the ingredient requirements, costs and shortages for producing
// TargetQuantity packs or units of a SKU. The request is not modified.
func Plan(req PlanRequest) ProductionPlan {
	sku := req.SKU
	qty := req.TargetQuantity
	if qty < 0 {
		qty = 0
	}
	pt := req.PackType
	switch {
	case !sku.IsWeekly():
		pt = domain.PackSingle
	case pt != domain.PackMonthly:
		pt = domain.PackWeekly
	}
	mult := Multiplier(sku.Type, pt, qty)

	plan := ProductionPlan{
		SKUID:          sku.ID,
		SKUName:        sku.Name,
		SKUType:        sku.Type,
		PackType:       pt,
		TargetQuantity: qty,
	}
	if req.Vendor != nil {
		plan.VendorID = req.Vendor.ID
		plan.VendorName = req.Vendor.Name
	}

	// 1. Day breakdown and consolidation
	cons := newConsolidator()
	if sku.IsWeekly() {
		for _, day := range domain.Weekdays {
			db := DayBreakdown{Day: day, Label: day.Label()}
			for _, line := range sku.Recipes[day] {
				total := line.Grams * float64(mult)
				db.Lines = append(db.Lines, DayLine{
					IngredientName: line.IngredientName,
					GramsPerSachet: line.Grams,
					TotalGrams:     total,
					PricePerGram:   line.PricePerGram,
				})
				cons.add(line.IngredientName, total, total*line.PricePerGram)
			}
			plan.Days = append(plan.Days, db)
		}
	} else {
		for _, line := range sku.Ingredients {
			total := line.Grams * float64(mult)
			cons.add(line.IngredientName, total, total*line.PricePerGram)
		}
	}

	// 2. Price and availability per ingredient
	reqs := cons.requirements()
	for i := range reqs {
		if req.Vendor != nil {
			resolveFromVendor(&reqs[i], *req.Vendor)
		} else {
			resolveFromAll(&reqs[i], req.Vendors)
		}
		r := &reqs[i]
		r.ShortageGrams = nonNegative(r.TotalGrams - r.AvailableGrams)
		r.HasShortage = r.TotalGrams > r.AvailableGrams
	}
	plan.Requirements = reqs

	// 3. Day lines display the resolved price
	prices := make(map[string]float64, len(reqs))
	for _, r := range reqs {
		prices[nameKey(r.IngredientName)] = r.PricePerGram
	}
	for d := range plan.Days {
		day := &plan.Days[d]
		for l := range day.Lines {
			line := &day.Lines[l]
			line.PricePerGram = prices[nameKey(line.IngredientName)]
			line.PricePerSachet = line.GramsPerSachet * line.PricePerGram
			line.TotalCost = line.TotalGrams * line.PricePerGram
			day.SachetGrams += line.GramsPerSachet
			day.SachetCost += line.PricePerSachet
			day.TotalGrams += line.TotalGrams
			day.TotalCost += line.TotalCost
		}
	}

	plan.Summary = summarize(plan, mult)
	return plan
}

func summarize(plan ProductionPlan, mult int) PlanSummary {
	s := PlanSummary{
		Multiplier:      mult,
		IngredientCount: len(plan.Requirements),
	}
	for _, r := range plan.Requirements {
		s.TotalCost += r.TotalCost
		s.TotalGrams += r.TotalGrams
		if r.HasShortage {
			s.ShortageCount++
		}
	}
	if plan.SKUType == domain.SKUTypeWeekly {
		s.TotalSachets = mult * domain.SachetsPerWeek
		s.CostPerPack = safeDiv(s.TotalCost, float64(plan.TargetQuantity))
		s.CostPerSachet = safeDiv(s.TotalCost, float64(s.TotalSachets))
	} else {
		s.CostPerUnit = safeDiv(s.TotalCost, float64(plan.TargetQuantity))
	}
	return s
}

func resolveFromVendor(r *Requirement, v domain.Vendor) {
	r.VendorID = v.ID
	ing, ok := FindIngredient(v, r.IngredientName)
	if !ok {
		r.VendorName = v.Name + notSuppliedSuffix
		r.PricePerGram = 0
		r.TotalCost = 0
		r.AvailableGrams = 0
		return
	}
	r.VendorName = v.Name
	r.Supplied = true
	r.PricePerGram = PricePerGram(ing)
	r.TotalCost = r.TotalGrams * r.PricePerGram
	r.AvailableGrams = AvailableGrams(ing)
}

type candidate struct {
	vendor    domain.Vendor
	price     float64
	available float64
}

// resolveFromAll recommends the cheapest vendor with enough stock, or the vendor
// with the most stock when nobody can cover the requirement. Ties keep the vendor
// listed first. When no vendor carries the ingredient, the recipe snapshot cost stays.
func resolveFromAll(r *Requirement, vendors []domain.Vendor) {
	var cands []candidate
	for _, v := range vendors {
		if ing, ok := FindIngredient(v, r.IngredientName); ok {
			cands = append(cands, candidate{vendor: v, price: PricePerGram(ing), available: AvailableGrams(ing)})
		}
	}
	if len(cands) == 0 {
		r.VendorName = NotAvailableVendor
		r.AvailableGrams = 0
		r.PricePerGram = safeDiv(r.TotalCost, r.TotalGrams)
		return
	}

	var best *candidate
	for i := range cands {
		c := &cands[i]
		if c.available < r.TotalGrams {
			continue
		}
		if best == nil || c.price < best.price {
			best = c
		}
	}
	if best == nil {
		for i := range cands {
			c := &cands[i]
			if best == nil || c.available > best.available {
				best = c
			}
		}
	}

	r.VendorID = best.vendor.ID
	r.VendorName = best.vendor.Name
	r.Supplied = true
	r.PricePerGram = best.price
	r.AvailableGrams = best.available
	r.TotalCost = r.TotalGrams * best.price
}

// consolidator merges recipe lines by ingredient name, keeping first-seen order.
type consolidator struct {
	index map[string]int
	items []Requirement
}

func newConsolidator() *consolidator {
	return &consolidator{index: make(map[string]int)}
}

func (c *consolidator) add(name string, grams, cost float64) {
	key := nameKey(name)
	i, ok := c.index[key]
	if !ok {
		i = len(c.items)
		c.index[key] = i
		c.items = append(c.items, Requirement{IngredientName: name})
	}
	c.items[i].TotalGrams += grams
	c.items[i].TotalCost += cost
}

func (c *consolidator) requirements() []Requirement {
	out := make([]Requirement, len(c.items))
	for i, r := range c.items {
		r.TotalKg = r.TotalGrams / 1000
		out[i] = r
	}
	return out
}

func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
