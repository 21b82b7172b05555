package domain

import (
	"fmt"
	"strings"
	"time"
)

// SalesTargetRow is the target for one SKU in one pack type. Price, cost and profit per
// unit are snapshotted from the pricing strategy when the target is saved.
type SalesTargetRow struct {
	SKUID            string   `json:"sku_id"`
	SKUName          string   `json:"sku_name"`
	PackType         PackType `json:"pack_type"`
	TargetUnits      int      `json:"target_units"`
	SellingPrice     float64  `json:"selling_price"`
	CostPerUnit      float64  `json:"cost_per_unit"`
	ProfitPerUnit    float64  `json:"profit_per_unit"`
	ProjectedRevenue float64  `json:"projected_revenue"`
	ProjectedProfit  float64  `json:"projected_profit"`
}

// FixedCosts are the monthly overheads used for break-even analysis.
type FixedCosts struct {
	Rent      float64 `json:"rent"`
	Salaries  float64 `json:"salaries"`
	Utilities float64 `json:"utilities"`
	Other     float64 `json:"other"`
}

func (f FixedCosts) Total() float64 {
	return SumMoney(f.Rent, f.Salaries, f.Utilities, f.Other)
}

// SalesTargetSummary holds the projected month.
type SalesTargetSummary struct {
	TotalUnits       int     `json:"total_units"`
	TotalRevenue     float64 `json:"total_revenue"`
	TotalCost        float64 `json:"total_cost"`
	GrossProfit      float64 `json:"gross_profit"`
	FixedCostsTotal  float64 `json:"fixed_costs_total"`
	NetProfit        float64 `json:"net_profit"`
	BreakEvenUnits   int     `json:"break_even_units"`
	ProfitPerUnitAvg float64 `json:"profit_per_unit_avg"`
}

// SalesTarget is the plan for one month of one year.
type SalesTarget struct {
	ID         string             `json:"id"`
	Month      int                `json:"month"`
	Year       int                `json:"year"`
	Rows       []SalesTargetRow   `json:"rows"`
	FixedCosts FixedCosts         `json:"fixed_costs"`
	Summary    SalesTargetSummary `json:"summary"`
	Notes      string             `json:"notes,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

func (t *SalesTarget) GetID() string { return t.ID }
func (t *SalesTarget) SetID(id string) { t.ID = id }
func (t *SalesTarget) Touch(now time.Time) { touch(&t.CreatedAt, &t.UpdatedAt, now) }

// SalesTargetID is the identifier of the target for a month.
func SalesTargetID(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

func (t *SalesTarget) Validate() error {
	verr := &ValidationError{}
	if t.Month < 1 || t.Month > 12 {
		verr.Add("month", "month must be between 1 and 12")
	}
	if t.Year < 2000 || t.Year > 9999 {
		verr.Add("year", "year is out of range")
	}
	seen := make(map[string]struct{})
	for i, row := range t.Rows {
		field := fmt.Sprintf("rows[%d]", i)
		if strings.TrimSpace(row.SKUID) == "" {
			verr.Add(field+".sku_id", "sku is required")
		}
		if row.TargetUnits < 0 {
			verr.Add(field+".target_units", "target units cannot be negative")
		}
		key := row.SKUID + "|" + string(row.PackType)
		if _, dup := seen[key]; dup {
			verr.Add(field, "duplicate sku and pack type")
		}
		seen[key] = struct{}{}
	}
	f := t.FixedCosts
	if f.Rent < 0 || f.Salaries < 0 || f.Utilities < 0 || f.Other < 0 {
		verr.Add("fixed_costs", "fixed costs cannot be negative")
	}
	return verr.OrNil()
}
