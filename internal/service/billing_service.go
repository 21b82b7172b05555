package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Ponna-create/wkly-nuts-sub000/internal/config"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/domain"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/export"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/repository"
)

// BillingService manages customers and their invoices.
type BillingService struct {
	customers  *repository.CustomerRepository
	invoices   *repository.InvoiceRepository
	strategies *repository.PricingStrategyRepository
	skus       *repository.SKURepository
	business   config.BusinessConfig
	now        func() time.Time

	// serializes invoice numbering
	mu sync.Mutex
}

func NewBillingService(repos *repository.Set, business config.BusinessConfig) *BillingService {
	if business.InvoicePrefix == "" {
		business.InvoicePrefix = "INV"
	}
	return &BillingService{
		customers:  repos.Customers,
		invoices:   repos.Invoices,
		strategies: repos.PricingStrategies,
		skus:       repos.SKUs,
		business:   business,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *BillingService) ListCustomers(ctx context.Context) ([]*domain.Customer, error) {
	return s.customers.List(ctx)
}

func (s *BillingService) GetCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	return s.customers.Get(ctx, id)
}

func (s *BillingService) CreateCustomer(ctx context.Context, c *domain.Customer) error {
	c.ID = ""
	c.Name = strings.TrimSpace(c.Name)
	if err := c.Validate(); err != nil {
		return err
	}
	return s.customers.Save(ctx, c)
}

func (s *BillingService) UpdateCustomer(ctx context.Context, id string, c *domain.Customer) error {
	existing, err := s.customers.Get(ctx, id)
	if err != nil {
		return err
	}
	c.ID = existing.ID
	c.CreatedAt = existing.CreatedAt
	c.Name = strings.TrimSpace(c.Name)
	if err := c.Validate(); err != nil {
		return err
	}
	return s.customers.Save(ctx, c)
}

func (s *BillingService) DeleteCustomer(ctx context.Context, id string) error {
	return s.customers.Delete(ctx, id)
}

func (s *BillingService) ListInvoices(ctx context.Context) ([]*domain.Invoice, error) {
	return s.invoices.List(ctx)
}

func (s *BillingService) GetInvoice(ctx context.Context, id string) (*domain.Invoice, error) {
	return s.invoices.Get(ctx, id)
}

// CreateInvoice numbers, prices and totals a new draft invoice.
func (s *BillingService) CreateInvoice(ctx context.Context, inv *domain.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv.ID = ""
	inv.Status = domain.InvoiceDraft
	if inv.IssueDate.IsZero() {
		inv.IssueDate = s.now()
	}
	if err := s.prepare(ctx, inv); err != nil {
		return err
	}

	number, err := s.nextNumber(ctx, inv.IssueDate.Year())
	if err != nil {
		return err
	}
	inv.Number = number
	return s.invoices.Save(ctx, inv)
}

// UpdateInvoice replaces the content of a draft invoice. Number and status are kept.
func (s *BillingService) UpdateInvoice(ctx context.Context, id string, inv *domain.Invoice) error {
	existing, err := s.invoices.Get(ctx, id)
	if err != nil {
		return err
	}
	if existing.Status != domain.InvoiceDraft {
		return domain.NewValidationError("status", fmt.Sprintf("only draft invoices can be edited, invoice is %s", existing.Status))
	}
	inv.ID = existing.ID
	inv.Number = existing.Number
	inv.Status = existing.Status
	inv.CreatedAt = existing.CreatedAt
	if inv.IssueDate.IsZero() {
		inv.IssueDate = existing.IssueDate
	}
	if err := s.prepare(ctx, inv); err != nil {
		return err
	}
	return s.invoices.Save(ctx, inv)
}

// DeleteInvoice removes a draft or cancelled invoice.
func (s *BillingService) DeleteInvoice(ctx context.Context, id string) error {
	existing, err := s.invoices.Get(ctx, id)
	if err != nil {
		return err
	}
	if existing.Status != domain.InvoiceDraft && existing.Status != domain.InvoiceCancelled {
		return domain.NewValidationError("status", fmt.Sprintf("%s invoices cannot be deleted", existing.Status))
	}
	return s.invoices.Delete(ctx, id)
}

// SetStatus moves an invoice along draft -> issued -> paid, or to cancelled.
func (s *BillingService) SetStatus(ctx context.Context, id string, to domain.InvoiceStatus) (*domain.Invoice, error) {
	inv, err := s.invoices.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !inv.Status.CanTransition(to) {
		return nil, domain.NewValidationError("status", fmt.Sprintf("cannot move invoice from %s to %s", inv.Status, to))
	}
	inv.Status = to
	if err := s.invoices.Save(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// InvoicePDF renders an invoice on the business letterhead.
func (s *BillingService) InvoicePDF(ctx context.Context, id string) (*Report, error) {
	inv, err := s.invoices.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := export.InvoicePDF(*inv, export.Letterhead{
		Name:           s.business.Name,
		Address:        s.business.Address,
		Phone:          s.business.Phone,
		Email:          s.business.Email,
		GSTIN:          s.business.GSTIN,
		CurrencySymbol: s.business.CurrencySymbol,
	})
	if err != nil {
		return nil, err
	}
	return &Report{Name: inv.Number + ".pdf", ContentType: "application/pdf", Data: data}, nil
}

// prepare resolves the customer, prices SKU lines without a price from their pricing
// strategy, fills defaults and computes totals.
func (s *BillingService) prepare(ctx context.Context, inv *domain.Invoice) error {
	if err := inv.Validate(); err != nil {
		return err
	}

	customer, err := s.customers.Get(ctx, inv.CustomerID)
	if err != nil {
		if repository.IsNotFound(err) {
			return domain.NewValidationError("customer_id", "customer does not exist")
		}
		return err
	}
	inv.CustomerName = customer.Name

	for i := range inv.Items {
		if err := s.priceItem(ctx, i, &inv.Items[i]); err != nil {
			return err
		}
	}

	if inv.DueDate.IsZero() {
		inv.DueDate = inv.IssueDate.AddDate(0, 0, s.business.PaymentTermsDays)
	}
	if inv.TaxPercent == 0 {
		inv.TaxPercent = s.business.DefaultTaxPercent
	}

	inv.ComputeTotals()
	if inv.Discount > inv.Subtotal {
		return domain.NewValidationError("discount", "discount exceeds the subtotal")
	}
	return nil
}

func (s *BillingService) priceItem(ctx context.Context, idx int, item *domain.InvoiceItem) error {
	if item.SKUID == "" {
		return nil
	}
	field := fmt.Sprintf("items[%d]", idx)

	sku, err := s.skus.Get(ctx, item.SKUID)
	if err != nil {
		if repository.IsNotFound(err) {
			return domain.NewValidationError(field+".sku_id", "sku does not exist")
		}
		return err
	}
	if item.PackType == "" {
		item.PackType = sku.PackTypes()[0]
	}
	if !sku.SupportsPackType(item.PackType) {
		return domain.NewValidationError(field+".pack_type", fmt.Sprintf("%s sku cannot be sold as %q", sku.Type, item.PackType))
	}
	if strings.TrimSpace(item.Description) == "" {
		item.Description = fmt.Sprintf("%s (%s)", sku.Name, item.PackType)
	}
	if item.UnitPrice > 0 {
		return nil
	}

	ps, err := s.strategies.Get(ctx, domain.PricingStrategyID(item.SKUID, item.PackType))
	if err != nil {
		if repository.IsNotFound(err) {
			return domain.NewValidationError(field+".unit_price", "no price given and no pricing strategy saved for "+sku.Name)
		}
		return err
	}
	item.UnitPrice = ps.SellingPrice
	return nil
}

// nextNumber returns PREFIX-YYYY-NNNN, one past the highest number issued that year.
func (s *BillingService) nextNumber(ctx context.Context, year int) (string, error) {
	invoices, err := s.invoices.List(ctx)
	if err != nil {
		return "", err
	}
	prefix := fmt.Sprintf("%s-%04d-", s.business.InvoicePrefix, year)
	highest := 0
	for _, inv := range invoices {
		if !strings.HasPrefix(inv.Number, prefix) {
			continue
		}
		if n, err := strconv.Atoi(strings.TrimPrefix(inv.Number, prefix)); err == nil && n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("%s%04d", prefix, highest+1), nil
}
