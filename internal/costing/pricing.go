package costing

import (
	"github.com/Ponna-create/wkly-nuts-sub000/internal/domain"
)

// PriceFromMargin returns the selling price giving marginPercent on top of totalCost.
func PriceFromMargin(totalCost, marginPercent float64) float64 {
	return totalCost * (1 + marginPercent/100)
}

// MarginResult is the profit of an entered selling price.
type MarginResult struct {
	Profit        float64 `json:"profit"`
	MarginPercent float64 `json:"margin_percent"`
}

// MarginFromPrice returns the profit and margin of sellingPrice. Margin is zero when
// there is no cost to relate the profit to. Negative profit is a valid result.
func MarginFromPrice(totalCost, sellingPrice float64) MarginResult {
	profit := sellingPrice - totalCost
	var margin float64
	if totalCost > 0 {
		margin = profit / totalCost * 100
	}
	return MarginResult{Profit: profit, MarginPercent: margin}
}

// StrategyInput is one save of the pricing calculator. MarginPercent is read in margin
// mode, SellingPrice in price mode.
type StrategyInput struct {
	SKUID         string                `json:"sku_id"`
	SKUName       string                `json:"sku_name"`
	PackType      domain.PackType       `json:"pack_type"`
	Mode          domain.PricingMode    `json:"mode"`
	Costs         domain.CostComponents `json:"costs"`
	MarginPercent float64               `json:"margin_percent"`
	SellingPrice  float64               `json:"selling_price"`
}

// BuildStrategy computes the persisted figures of a pricing strategy for the active mode.
func BuildStrategy(in StrategyInput) (domain.PricingStrategy, error) {
	if err := validateStrategyInput(in); err != nil {
		return domain.PricingStrategy{}, err
	}

	total := in.Costs.Total()
	ps := domain.PricingStrategy{
		ID:        domain.PricingStrategyID(in.SKUID, in.PackType),
		SKUID:     in.SKUID,
		SKUName:   in.SKUName,
		PackType:  in.PackType,
		Mode:      in.Mode,
		Costs:     in.Costs,
		TotalCost: total,
	}

	switch in.Mode {
	case domain.PricingModeMargin:
		price := PriceFromMargin(total, in.MarginPercent)
		ps.SellingPrice = domain.RoundMoney(price)
		ps.ProfitAmount = domain.RoundMoney(price - total)
		ps.ProfitMargin = in.MarginPercent
	case domain.PricingModePrice:
		r := MarginFromPrice(total, in.SellingPrice)
		ps.SellingPrice = domain.RoundMoney(in.SellingPrice)
		ps.ProfitAmount = domain.RoundMoney(r.Profit)
		ps.ProfitMargin = domain.RoundMoney(r.MarginPercent)
	}
	return ps, nil
}

func validateStrategyInput(in StrategyInput) error {
	verr := &domain.ValidationError{}
	if in.SKUID == "" {
		verr.Add("sku_id", "sku is required")
	}
	switch in.PackType {
	case domain.PackWeekly, domain.PackMonthly, domain.PackSingle:
	default:
		verr.Add("pack_type", "pack type must be weekly, monthly or single")
	}
	switch in.Mode {
	case domain.PricingModeMargin:
		if in.MarginPercent < 0 || in.MarginPercent > 100 {
			verr.Add("margin_percent", "margin must be between 0 and 100")
		}
	case domain.PricingModePrice:
		if in.SellingPrice < 0 {
			verr.Add("selling_price", "selling price cannot be negative")
		}
	default:
		verr.Add("mode", "mode must be margin or price")
	}

	c := in.Costs
	components := []struct {
		field string
		value float64
	}{
		{"costs.raw_material", c.RawMaterial},
		{"costs.packaging", c.Packaging},
		{"costs.box", c.Box},
		{"costs.operating", c.Operating},
		{"costs.marketing", c.Marketing},
		{"costs.shipping", c.Shipping},
		{"costs.other", c.Other},
	}
	for _, comp := range components {
		if comp.value < 0 {
			verr.Add(comp.field, "cost cannot be negative")
		}
	}
	return verr.OrNil()
}
