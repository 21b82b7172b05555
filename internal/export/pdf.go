package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/Ponna-create/wkly-nuts-sub000/internal/domain"
)

// Letterhead is the seller block printed on invoices.
type Letterhead struct {
	Name           string
	Address        string
	Phone          string
	Email          string
	GSTIN          string
	CurrencySymbol string
}

// InvoicePDF renders a plain one-table invoice.
func InvoicePDF(inv domain.Invoice, head Letterhead) ([]byte, error) {
	cur := head.CurrencySymbol
	if cur == "" {
		cur = "Rs."
	}
	money := func(v float64) string { return cur + " " + formatFloat(v, 2) }

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice "+inv.Number, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(120, 8, head.Name)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(70, 8, "INVOICE", "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, l := range []string{head.Address, head.Phone, head.Email} {
		if strings.TrimSpace(l) != "" {
			pdf.CellFormat(0, 5, l, "", 1, "L", false, 0, "")
		}
	}
	if head.GSTIN != "" {
		pdf.CellFormat(0, 5, "GSTIN: "+head.GSTIN, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(95, 6, "Bill to: "+inv.CustomerName, "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 6, "Invoice #: "+inv.Number, "", 1, "R", false, 0, "")
	pdf.CellFormat(95, 6, "Status: "+strings.ToUpper(string(inv.Status)), "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 6, "Date: "+inv.IssueDate.Format("02 Jan 2006"), "", 1, "R", false, 0, "")
	if !inv.DueDate.IsZero() {
		pdf.CellFormat(0, 6, "Due: "+inv.DueDate.Format("02 Jan 2006"), "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	widths := []float64{80, 25, 20, 30, 35}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range []string{"Item", "Pack", "Qty", "Unit Price", "Amount"} {
		align := "L"
		if i >= 2 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 7, h, "1", 0, align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range inv.Items {
		pdf.CellFormat(widths[0], 7, item.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, string(item.PackType), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 7, fmt.Sprintf("%d", item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 7, money(item.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 7, money(item.Amount), "1", 1, "R", false, 0, "")
	}

	totals := [][2]string{
		{"Subtotal", money(inv.Subtotal)},
		{"Discount", money(inv.Discount)},
		{fmt.Sprintf("Tax (%s%%)", formatFloat(inv.TaxPercent, 2)), money(inv.TaxAmount)},
		{"Total", money(inv.Total)},
	}
	for i, t := range totals {
		if i == len(totals)-1 {
			pdf.SetFont("Helvetica", "B", 11)
		}
		pdf.CellFormat(widths[0]+widths[1]+widths[2]+widths[3], 7, t[0], "", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 7, t[1], "", 1, "R", false, 0, "")
	}

	if inv.Notes != "" {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(0, 5, inv.Notes, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice %s: %w", inv.Number, err)
	}
	return buf.Bytes(), nil
}
