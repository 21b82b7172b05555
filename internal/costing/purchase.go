package costing

import (
	"math"
	"strings"

	"github.com/Ponna-create/wkly-nuts-sub000/internal/domain"
)

// PurchaseMode selects which requirements go on a purchase list.
type PurchaseMode string

const (
	PurchaseFullOrder    PurchaseMode = "full"
	PurchaseShortageOnly PurchaseMode = "shortage"
)

// ParsePurchaseMode accepts "full" or "shortage" (case-insensitive). Empty means full.
func ParsePurchaseMode(s string) (PurchaseMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "full", "full_order":
		return PurchaseFullOrder, true
	case "shortage", "shortage_only":
		return PurchaseShortageOnly, true
	}
	return "", false
}

// PurchaseItem is one ingredient to buy from a vendor.
type PurchaseItem struct {
	IngredientName string  `json:"ingredient_name"`
	RequiredKg     float64 `json:"required_kg"`
	PurchaseKg     float64 `json:"purchase_kg"`
	PricePerKg     float64 `json:"price_per_kg"`
	EstimatedCost  float64 `json:"estimated_cost"`
}

// Capacity is what a vendor order could produce, driven by its limiting ingredient.
type Capacity struct {
	LimitingIngredient string  `json:"limiting_ingredient"`
	LimitingRatio      float64 `json:"limiting_ratio"`
	SupportedQuantity  int     `json:"supported_quantity"`
	AdditionalQuantity int     `json:"additional_quantity"`
	WeeklyPacks        int     `json:"weekly_packs,omitempty"`
	MonthlyPacks       int     `json:"monthly_packs,omitempty"`
	Units              int     `json:"units,omitempty"`
}

// VendorOrder groups the purchase items of one recommended vendor.
type VendorOrder struct {
	VendorID      string         `json:"vendor_id,omitempty"`
	VendorName    string         `json:"vendor_name"`
	Items         []PurchaseItem `json:"items"`
	TotalKg       float64        `json:"total_kg"`
	EstimatedCost float64        `json:"estimated_cost"`
	Capacity      *Capacity      `json:"capacity,omitempty"`
}

// PurchaseList is a vendor-grouped order derived from a ProductionPlan.
type PurchaseList struct {
	Mode           PurchaseMode    `json:"mode"`
	SKUID          string          `json:"sku_id"`
	SKUName        string          `json:"sku_name"`
	PackType       domain.PackType `json:"pack_type"`
	TargetQuantity int             `json:"target_quantity"`
	Orders         []VendorOrder   `json:"orders"`
	TotalKg        float64         `json:"total_kg"`
	EstimatedCost  float64         `json:"estimated_cost"`
}

// PurchaseKg rounds a requirement up to whole kilograms. Vendors sell whole-kg packs only.
func PurchaseKg(requiredKg float64) float64 {
	if requiredKg <= 0 {
		return 0
	}
	return math.Ceil(requiredKg)
}

// BuildPurchaseList groups plan requirements by recommended vendor. Full mode orders
// every requirement and reports capacity per vendor; shortage mode only orders the
// missing quantity of short ingredients.
func BuildPurchaseList(plan ProductionPlan, mode PurchaseMode) PurchaseList {
	if mode != PurchaseShortageOnly {
		mode = PurchaseFullOrder
	}
	pl := PurchaseList{
		Mode:           mode,
		SKUID:          plan.SKUID,
		SKUName:        plan.SKUName,
		PackType:       plan.PackType,
		TargetQuantity: plan.TargetQuantity,
	}

	index := make(map[string]int)
	for _, r := range plan.Requirements {
		basis := r.TotalGrams
		if mode == PurchaseShortageOnly {
			if r.ShortageGrams <= 0 {
				continue
			}
			basis = r.ShortageGrams
		}
		if basis <= 0 {
			continue
		}

		requiredKg := basis / 1000
		item := PurchaseItem{
			IngredientName: r.IngredientName,
			RequiredKg:     requiredKg,
			PurchaseKg:     PurchaseKg(requiredKg),
			PricePerKg:     r.PricePerGram * 1000,
		}
		item.EstimatedCost = item.PurchaseKg * item.PricePerKg

		key := r.VendorID + "|" + r.VendorName
		i, ok := index[key]
		if !ok {
			i = len(pl.Orders)
			index[key] = i
			pl.Orders = append(pl.Orders, VendorOrder{VendorID: r.VendorID, VendorName: r.VendorName})
		}
		order := &pl.Orders[i]
		order.Items = append(order.Items, item)
		order.TotalKg += item.PurchaseKg
		order.EstimatedCost += item.EstimatedCost
	}

	for i := range pl.Orders {
		order := &pl.Orders[i]
		if mode == PurchaseFullOrder {
			order.Capacity = OrderCapacity(*order, plan.SKUType, plan.PackType, plan.TargetQuantity)
		}
		pl.TotalKg += order.TotalKg
		pl.EstimatedCost += order.EstimatedCost
	}
	return pl
}

// capacityEpsilon absorbs float noise in purchased/required ratios before flooring.
const capacityEpsilon = 1e-9

// OrderCapacity finds the ingredient whose purchased/required ratio is smallest and
// scales the current target by it. It returns nil when nothing in the order is required.
func OrderCapacity(order VendorOrder, skuType domain.SKUType, pt domain.PackType, target int) *Capacity {
	var c *Capacity
	for _, item := range order.Items {
		if item.RequiredKg <= 0 {
			continue
		}
		ratio := item.PurchaseKg / item.RequiredKg
		if c == nil || ratio < c.LimitingRatio {
			c = &Capacity{LimitingIngredient: item.IngredientName, LimitingRatio: ratio}
		}
	}
	if c == nil {
		return nil
	}

	c.SupportedQuantity = int(math.Floor(c.LimitingRatio*float64(target) + capacityEpsilon))
	if c.SupportedQuantity > target {
		c.AdditionalQuantity = c.SupportedQuantity - target
	}
	switch {
	case skuType != domain.SKUTypeWeekly:
		c.Units = c.SupportedQuantity
	case pt == domain.PackMonthly:
		c.MonthlyPacks = c.SupportedQuantity
		c.WeeklyPacks = c.SupportedQuantity * domain.WeeksPerMonthlyPack
	default:
		c.WeeklyPacks = c.SupportedQuantity
		c.MonthlyPacks = c.SupportedQuantity / domain.WeeksPerMonthlyPack
	}
	return c
}
