package domain

import "github.com/shopspring/decimal"

// RoundMoney rounds a currency amount half away from zero to 2 decimals.
func RoundMoney(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// SumMoney adds amounts in decimal arithmetic and rounds the result to 2 decimals.
func SumMoney(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	f, _ := total.Round(2).Float64()
	return f
}
