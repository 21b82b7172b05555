package domain

import "strings"

// Weekday is the fixed day code a weekly recipe is keyed by.
type Weekday string

const (
	Monday    Weekday = "MON"
	Tuesday   Weekday = "TUE"
	Wednesday Weekday = "WED"
	Thursday  Weekday = "THU"
	Friday    Weekday = "FRI"
	Saturday  Weekday = "SAT"
	Sunday    Weekday = "SUN"
)

// Weekdays lists the day codes in recipe order.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var weekdayLabels = map[Weekday]string{
	Monday:    "Monday",
	Tuesday:   "Tuesday",
	Wednesday: "Wednesday",
	Thursday:  "Thursday",
	Friday:    "Friday",
	Saturday:  "Saturday",
	Sunday:    "Sunday",
}

// Label returns a human-readable name for the day code.
func (d Weekday) Label() string {
	if label, ok := weekdayLabels[d]; ok {
		return label
	}
	return string(d)
}

// ParseWeekday returns the day code for a code or label (case-insensitive).
func ParseWeekday(value string) (Weekday, bool) {
	v := strings.ToUpper(strings.TrimSpace(value))
	for _, d := range Weekdays {
		if v == string(d) || v == strings.ToUpper(weekdayLabels[d]) {
			return d, true
		}
	}
	return "", false
}

// SKUType tags the two product variants.
type SKUType string

const (
	SKUTypeWeekly SKUType = "weekly"
	SKUTypeSingle SKUType = "single"
)

// PackType selects the bundle a quantity or a price refers to.
type PackType string

const (
	PackWeekly  PackType = "weekly"
	PackMonthly PackType = "monthly"
	PackSingle  PackType = "single"
)

// WeeksPerMonthlyPack is the number of week-equivalents in a monthly pack.
const WeeksPerMonthlyPack = 4

// SachetsPerWeek is the number of sachets (one per day) in a weekly pack.
const SachetsPerWeek = 7

var packTypeCodes = map[string]PackType{
	"weekly":  PackWeekly,
	"week":    PackWeekly,
	"monthly": PackMonthly,
	"month":   PackMonthly,
	"single":  PackSingle,
	"unit":    PackSingle,
}

// ParsePackType returns the pack type for a label (case-insensitive).
func ParsePackType(label string) (PackType, bool) {
	pt, ok := packTypeCodes[strings.ToLower(strings.TrimSpace(label))]
	return pt, ok
}

// InvoiceStatus tracks the lifecycle of an invoice.
type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "draft"
	InvoiceIssued    InvoiceStatus = "issued"
	InvoicePaid      InvoiceStatus = "paid"
	InvoiceCancelled InvoiceStatus = "cancelled"
)

var invoiceTransitions = map[InvoiceStatus][]InvoiceStatus{
	InvoiceDraft:  {InvoiceIssued, InvoiceCancelled},
	InvoiceIssued: {InvoicePaid, InvoiceCancelled},
}

// CanTransition reports whether an invoice may move from one status to another.
func (s InvoiceStatus) CanTransition(to InvoiceStatus) bool {
	for _, next := range invoiceTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// ParseInvoiceStatus returns the status for a label (case-insensitive).
func ParseInvoiceStatus(label string) (InvoiceStatus, bool) {
	switch s := InvoiceStatus(strings.ToLower(strings.TrimSpace(label))); s {
	case InvoiceDraft, InvoiceIssued, InvoicePaid, InvoiceCancelled:
		return s, true
	}
	return "", false
}
