package draft

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of an invoice.
type Status string

const (
	StatusDraft   Status = "draft"
	StatusSent    Status = "sent"
	StatusPaid    Status = "paid"
	StatusOverdue Status = "overdue"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusPaid, StatusOverdue:
		return true
	}
	return false
}

func (s Status) String() string { return string(s) }

// Label returns the display form of the status ("draft" -> "Draft").
func (s Status) Label() string {
	v := string(s)
	if v == "" {
		return ""
	}
	return strings.ToUpper(v[:1]) + v[1:]
}

// LineItem is one row of an invoice. LineTotal is always derived,
// never taken from input.
type LineItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

func (it LineItem) LineTotal() decimal.Decimal {
	return it.Quantity.Mul(it.UnitPrice)
}

// Draft is the canonical in-memory invoice representation. It is built either
// from request input (JSON or form-encoded) or from a persisted invoice row,
// so the renderer always consumes one shape regardless of origin.
type Draft struct {
	InvoiceNumber  string          `json:"invoice_number"`
	InvoiceDate    string          `json:"invoice_date"`
	DueDate        string          `json:"due_date"`
	Status         Status          `json:"status"`
	Currency       string          `json:"currency"`
	TaxRate        decimal.Decimal `json:"tax_rate"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	PaymentTerms   string          `json:"payment_terms"`
	Notes          string          `json:"notes"`
	Items          []LineItem      `json:"items"`
}

// BusinessSnapshot is a business identity captured for one render/save.
// ProfileID references a stored profile ("" if none was posted),
// PhotoDataURL is an explicit per-request upload and always wins for the logo,
// LogoURL is the resolved logo reference (data URL, absolute URL or media path).
type BusinessSnapshot struct {
	ProfileID    string `json:"id,omitempty"`
	Name         string `json:"business_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	ZipCode      string `json:"zip_code,omitempty"`
	Country      string `json:"country,omitempty"`
	PhotoDataURL string `json:"photo_data_url,omitempty"`
	LogoURL      string `json:"logo_url,omitempty"`
}

// Empty reports whether the snapshot carries no usable identity at all.
func (b *BusinessSnapshot) Empty() bool {
	if b == nil {
		return true
	}
	return b.ProfileID == "" && b.Name == "" && b.Email == "" && b.Phone == "" &&
		b.Address == "" && b.PhotoDataURL == "" && b.LogoURL == ""
}

// ClientRef is either a reference to a stored client (ID set) or an ad-hoc
// identity used only for rendering.
type ClientRef struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Totals holds the computed monetary figures of a draft.
type Totals struct {
	Subtotal  decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
}

// ComputeTotals derives subtotal, tax and total from the line items.
// All arithmetic is decimal so typical currency values sum without drift.
// The total is not clamped: a discount larger than subtotal+tax yields a
// negative figure that callers display as-is.
func ComputeTotals(items []LineItem, taxRate, discount decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.LineTotal())
	}
	// taxRate is a percentage; Shift(-2) keeps the math exact.
	tax := subtotal.Mul(taxRate.Shift(-2))
	return Totals{
		Subtotal:  subtotal,
		TaxAmount: tax,
		Total:     subtotal.Add(tax).Sub(discount),
	}
}
