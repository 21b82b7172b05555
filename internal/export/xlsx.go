package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Ponna-create/wkly-nuts-sub000/internal/costing"
)

const (
	requirementsSheet = "Requirements"
	daysSheet         = "Day Breakdown"
	purchaseSheet     = "Purchase Orders"
	summarySheet      = "Summary"
)

// PlanWorkbook renders a plan and its purchase list as an XLSX workbook.
func PlanWorkbook(plan costing.ProductionPlan, list costing.PurchaseList) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("failed to name summary sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	s := plan.Summary
	summary := [][]interface{}{
		{"SKU", plan.SKUName},
		{"Pack Type", string(plan.PackType)},
		{"Target Quantity", plan.TargetQuantity},
		{"Vendor", vendorLabel(plan)},
		{"Total Raw Material Cost", round(s.TotalCost, 2)},
		{"Total Grams", round(s.TotalGrams, 2)},
		{"Cost per Pack", round(s.CostPerPack, 2)},
		{"Cost per Sachet", round(s.CostPerSachet, 4)},
		{"Cost per Unit", round(s.CostPerUnit, 2)},
		{"Ingredients Short", s.ShortageCount},
	}
	if err := writeRows(f, summarySheet, summary); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(summarySheet, "A1", fmt.Sprintf("A%d", len(summary)), bold); err != nil {
		return nil, fmt.Errorf("failed to style summary: %w", err)
	}
	_ = f.SetColWidth(summarySheet, "A", "A", 26)

	reqRows := [][]interface{}{toRow(PlanHeader)}
	for _, r := range plan.Requirements {
		reqRows = append(reqRows, []interface{}{
			r.IngredientName, round(r.TotalGrams, 2), round(r.TotalKg, 3), round(r.AvailableGrams, 2),
			round(r.ShortageGrams, 2), round(r.PricePerGram, 4), round(r.TotalCost, 2), r.VendorName,
		})
	}
	if err := addSheet(f, requirementsSheet, reqRows, bold); err != nil {
		return nil, err
	}

	if len(plan.Days) > 0 {
		dayRows := [][]interface{}{{"Day", "Ingredient", "Grams/Sachet", "Total Grams", "Price/Sachet", "Total Cost"}}
		for _, d := range plan.Days {
			for _, l := range d.Lines {
				dayRows = append(dayRows, []interface{}{
					d.Label, l.IngredientName, round(l.GramsPerSachet, 2), round(l.TotalGrams, 2),
					round(l.PricePerSachet, 4), round(l.TotalCost, 2),
				})
			}
		}
		if err := addSheet(f, daysSheet, dayRows, bold); err != nil {
			return nil, err
		}
	}

	poRows := [][]interface{}{toRow(PurchaseHeader)}
	for _, order := range list.Orders {
		for _, item := range order.Items {
			poRows = append(poRows, []interface{}{
				order.VendorName, item.IngredientName, round(item.RequiredKg, 3), item.PurchaseKg,
				round(item.PricePerKg, 2), round(item.EstimatedCost, 2),
			})
		}
	}
	if err := addSheet(f, purchaseSheet, poRows, bold); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func addSheet(f *excelize.File, name string, rows [][]interface{}, headerStyle int) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", name, err)
	}
	if err := writeRows(f, name, rows); err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(name, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", name, err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		row := row
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", i+1, sheet, err)
		}
	}
	return nil
}

func toRow(header []string) []interface{} {
	out := make([]interface{}, len(header))
	for i, h := range header {
		out[i] = h
	}
	return out
}

func vendorLabel(plan costing.ProductionPlan) string {
	if plan.VendorName == "" {
		return "Auto (best available)"
	}
	return plan.VendorName
}
