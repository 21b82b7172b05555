package domain

import "time"

// PricingMode is the direction a pricing strategy was calculated in.
type PricingMode string

const (
	// PricingModeMargin derives the selling price from a margin percentage.
	PricingModeMargin PricingMode = "margin"
	// PricingModePrice derives profit and margin from an entered selling price.
	PricingModePrice PricingMode = "price"
)

// CostComponents are the itemized per-pack costs of a pricing strategy.
type CostComponents struct {
	RawMaterial float64 `json:"raw_material"`
	Packaging   float64 `json:"packaging"`
	Box         float64 `json:"box"`
	Operating   float64 `json:"operating"`
	Marketing   float64 `json:"marketing"`
	Shipping    float64 `json:"shipping"`
	Other       float64 `json:"other"`
}

// Total sums the components.
func (c CostComponents) Total() float64 {
	return SumMoney(c.RawMaterial, c.Packaging, c.Box, c.Operating, c.Marketing, c.Shipping, c.Other)
}

// PricingStrategy is the saved price of one SKU in one pack type.
type PricingStrategy struct {
	ID           string         `json:"id"`
	SKUID        string         `json:"sku_id"`
	SKUName      string         `json:"sku_name"`
	PackType     PackType       `json:"pack_type"`
	Mode         PricingMode    `json:"mode"`
	Costs        CostComponents `json:"costs"`
	TotalCost    float64        `json:"total_cost"`
	ProfitMargin float64        `json:"profit_margin"`
	ProfitAmount float64        `json:"profit_amount"`
	SellingPrice float64        `json:"selling_price"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func (p *PricingStrategy) GetID() string { return p.ID }
func (p *PricingStrategy) SetID(id string) { p.ID = id }
func (p *PricingStrategy) Touch(now time.Time) { touch(&p.CreatedAt, &p.UpdatedAt, now) }

// PricingStrategyID is the identifier of the strategy for a (SKU, pack type) pair.
func PricingStrategyID(skuID string, pt PackType) string {
	return skuID + ":" + string(pt)
}
