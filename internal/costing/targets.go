package costing

import (
	"math"

	"github.com/Ponna-create/wkly-nuts-sub000/internal/domain"
)

// ProjectSalesTarget fills the projected revenue and profit of every row and the
// month summary. Break-even is the number of units, at the average profit per unit,
// needed to cover fixed costs; it is zero when units make no profit.
func ProjectSalesTarget(t domain.SalesTarget) domain.SalesTarget {
	out := t
	out.Rows = make([]domain.SalesTargetRow, len(t.Rows))

	var s domain.SalesTargetSummary
	for i, row := range t.Rows {
		units := float64(row.TargetUnits)
		row.ProfitPerUnit = domain.RoundMoney(row.SellingPrice - row.CostPerUnit)
		row.ProjectedRevenue = domain.RoundMoney(units * row.SellingPrice)
		row.ProjectedProfit = domain.RoundMoney(units * row.ProfitPerUnit)
		out.Rows[i] = row

		s.TotalUnits += row.TargetUnits
		s.TotalRevenue = domain.SumMoney(s.TotalRevenue, row.ProjectedRevenue)
		s.TotalCost = domain.SumMoney(s.TotalCost, units*row.CostPerUnit)
		s.GrossProfit = domain.SumMoney(s.GrossProfit, row.ProjectedProfit)
	}

	s.FixedCostsTotal = t.FixedCosts.Total()
	s.NetProfit = domain.SumMoney(s.GrossProfit, -s.FixedCostsTotal)
	if s.TotalUnits > 0 {
		s.ProfitPerUnitAvg = domain.RoundMoney(s.GrossProfit / float64(s.TotalUnits))
	}
	if s.GrossProfit > 0 && s.FixedCostsTotal > 0 {
		s.BreakEvenUnits = int(math.Ceil(s.FixedCostsTotal * float64(s.TotalUnits) / s.GrossProfit))
	}
	out.Summary = s
	return out
}
