package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceItem is one billed line.
type InvoiceItem struct {
	SKUID       string   `json:"sku_id,omitempty"`
	Description string   `json:"description"`
	PackType    PackType `json:"pack_type,omitempty"`
	Quantity    int      `json:"quantity"`
	UnitPrice   float64  `json:"unit_price"`
	Amount      float64  `json:"amount"`
}

// Invoice bills a customer.
type Invoice struct {
	ID           string        `json:"id"`
	Number       string        `json:"number"`
	CustomerID   string        `json:"customer_id"`
	CustomerName string        `json:"customer_name"`
	IssueDate    time.Time     `json:"issue_date"`
	DueDate      time.Time     `json:"due_date"`
	Items        []InvoiceItem `json:"items"`
	Subtotal     float64       `json:"subtotal"`
	Discount     float64       `json:"discount"`
	TaxPercent   float64       `json:"tax_percent"`
	TaxAmount    float64       `json:"tax_amount"`
	Total        float64       `json:"total"`
	Status       InvoiceStatus `json:"status"`
	Notes        string        `json:"notes,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

func (i *Invoice) GetID() string { return i.ID }
func (i *Invoice) SetID(id string) { i.ID = id }
func (i *Invoice) Touch(now time.Time) { touch(&i.CreatedAt, &i.UpdatedAt, now) }

func (i *Invoice) Validate() error {
	verr := &ValidationError{}
	if strings.TrimSpace(i.CustomerID) == "" {
		verr.Add("customer_id", "customer is required")
	}
	if len(i.Items) == 0 {
		verr.Add("items", "invoice needs at least one item")
	}
	for idx, item := range i.Items {
		field := fmt.Sprintf("items[%d]", idx)
		if item.Quantity <= 0 {
			verr.Add(field+".quantity", "quantity must be greater than zero")
		}
		if item.UnitPrice < 0 {
			verr.Add(field+".unit_price", "unit price cannot be negative")
		}
		if strings.TrimSpace(item.Description) == "" && strings.TrimSpace(item.SKUID) == "" {
			verr.Add(field, "item needs a sku or a description")
		}
	}
	if i.Discount < 0 {
		verr.Add("discount", "discount cannot be negative")
	}
	if i.TaxPercent < 0 || i.TaxPercent > 100 {
		verr.Add("tax_percent", "tax percent must be between 0 and 100")
	}
	if !i.DueDate.IsZero() && !i.IssueDate.IsZero() && i.DueDate.Before(i.IssueDate) {
		verr.Add("due_date", "due date is before the issue date")
	}
	return verr.OrNil()
}

// ComputeTotals fills line amounts, subtotal, tax and total in decimal arithmetic.
// Tax is charged on the subtotal after discount.
func (i *Invoice) ComputeTotals() {
	hundred := decimal.NewFromInt(100)
	subtotal := decimal.Zero
	for idx := range i.Items {
		item := &i.Items[idx]
		amount := decimal.NewFromFloat(item.UnitPrice).Mul(decimal.NewFromInt(int64(item.Quantity))).Round(2)
		item.Amount, _ = amount.Float64()
		subtotal = subtotal.Add(amount)
	}

	discount := decimal.NewFromFloat(i.Discount).Round(2)
	taxable := subtotal.Sub(discount)
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}
	tax := taxable.Mul(decimal.NewFromFloat(i.TaxPercent)).Div(hundred).Round(2)

	i.Subtotal, _ = subtotal.Float64()
	i.TaxAmount, _ = tax.Float64()
	i.Total, _ = taxable.Add(tax).Float64()
}
