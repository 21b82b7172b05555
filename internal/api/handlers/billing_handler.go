package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ponna-create/wkly-nuts-sub000/internal/domain"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/service"
)

type BillingHandler struct {
	service *service.BillingService
}

func NewBillingHandler(service *service.BillingService) *BillingHandler {
	return &BillingHandler{service: service}
}

func (h *BillingHandler) ListCustomers(c *gin.Context) {
	customers, err := h.service.ListCustomers(c.Request.Context())
	if err != nil {
		respondError(c, "failed to fetch customers", err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (h *BillingHandler) GetCustomer(c *gin.Context) {
	customer, err := h.service.GetCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "failed to fetch customer", err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *BillingHandler) CreateCustomer(c *gin.Context) {
	var customer domain.Customer
	if !bindJSON(c, &customer) {
		return
	}
	if err := h.service.CreateCustomer(c.Request.Context(), &customer); err != nil {
		respondError(c, "failed to create customer", err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (h *BillingHandler) UpdateCustomer(c *gin.Context) {
	var customer domain.Customer
	if !bindJSON(c, &customer) {
		return
	}
	if err := h.service.UpdateCustomer(c.Request.Context(), c.Param("id"), &customer); err != nil {
		respondError(c, "failed to update customer", err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *BillingHandler) DeleteCustomer(c *gin.Context) {
	if err := h.service.DeleteCustomer(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "failed to delete customer", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BillingHandler) ListInvoices(c *gin.Context) {
	invoices, err := h.service.ListInvoices(c.Request.Context())
	if err != nil {
		respondError(c, "failed to fetch invoices", err)
		return
	}
	c.JSON(http.StatusOK, invoices)
}

func (h *BillingHandler) GetInvoice(c *gin.Context) {
	invoice, err := h.service.GetInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "failed to fetch invoice", err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func (h *BillingHandler) CreateInvoice(c *gin.Context) {
	var invoice domain.Invoice
	if !bindJSON(c, &invoice) {
		return
	}
	if err := h.service.CreateInvoice(c.Request.Context(), &invoice); err != nil {
		respondError(c, "failed to create invoice", err)
		return
	}
	c.JSON(http.StatusCreated, invoice)
}

func (h *BillingHandler) UpdateInvoice(c *gin.Context) {
	var invoice domain.Invoice
	if !bindJSON(c, &invoice) {
		return
	}
	if err := h.service.UpdateInvoice(c.Request.Context(), c.Param("id"), &invoice); err != nil {
		respondError(c, "failed to update invoice", err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func (h *BillingHandler) DeleteInvoice(c *gin.Context) {
	if err := h.service.DeleteInvoice(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "failed to delete invoice", err)
		return
	}
	c.Status(http.StatusNoContent)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *BillingHandler) SetInvoiceStatus(c *gin.Context) {
	var req statusRequest
	if !bindJSON(c, &req) {
		return
	}
	status, ok := domain.ParseInvoiceStatus(req.Status)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status value", "details": fmt.Sprintf("unknown status %q", req.Status)})
		return
	}
	invoice, err := h.service.SetStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		respondError(c, "failed to update invoice status", err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func (h *BillingHandler) InvoicePDF(c *gin.Context) {
	report, err := h.service.InvoicePDF(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "failed to render invoice", err)
		return
	}
	sendReport(c, report)
}
