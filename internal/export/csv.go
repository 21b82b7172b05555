package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/Ponna-create/wkly-nuts-sub000/internal/costing"
)

// PlanHeader is the column layout of a requirements export.
var PlanHeader = []string{"Ingredient", "Total Grams", "Total Kg", "Available (g)", "Shortage (g)", "Cost/Gram", "Total Cost", "Vendor"}

// PurchaseHeader is the column layout of a purchase list export.
var PurchaseHeader = []string{"Vendor", "Ingredient", "Required Kg", "Purchase Kg", "Price/Kg", "Estimated Cost"}

func planRow(r costing.Requirement) []string {
	return []string{
		r.IngredientName,
		formatFloat(r.TotalGrams, 2),
		formatFloat(r.TotalKg, 3),
		formatFloat(r.AvailableGrams, 2),
		formatFloat(r.ShortageGrams, 2),
		formatFloat(r.PricePerGram, 4),
		formatFloat(r.TotalCost, 2),
		r.VendorName,
	}
}

func purchaseRow(vendor string, item costing.PurchaseItem) []string {
	return []string{
		vendor,
		item.IngredientName,
		formatFloat(item.RequiredKg, 3),
		formatFloat(item.PurchaseKg, 0),
		formatFloat(item.PricePerKg, 2),
		formatFloat(item.EstimatedCost, 2),
	}
}

// WritePlanCSV writes one flat row per consolidated ingredient.
func WritePlanCSV(w io.Writer, plan costing.ProductionPlan) error {
	writer := csv.NewWriter(w)

	// Write header
	if err := writer.Write(PlanHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	// Write data
	for _, r := range plan.Requirements {
		if err := writer.Write(planRow(r)); err != nil {
			return fmt.Errorf("failed to write csv row for %s: %w", r.IngredientName, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WritePurchaseCSV writes one row per vendor item.
func WritePurchaseCSV(w io.Writer, list costing.PurchaseList) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(PurchaseHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, order := range list.Orders {
		for _, item := range order.Items {
			if err := writer.Write(purchaseRow(order.VendorName, item)); err != nil {
				return fmt.Errorf("failed to write csv row for %s: %w", item.IngredientName, err)
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatFloat(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

func round(v float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}
