package pdfgen

import (
	"bytes"
	_ "embed"
	"html/template"
	"strings"

	"invoicer-backend/draft"
	"invoicer-backend/utils"
)

//go:embed invoice_pdf.html
var invoiceTemplateSrc string

var invoiceTemplate = template.Must(template.New("invoice_pdf").Parse(invoiceTemplateSrc))

// RenderInput is everything the document template consumes. The same shape is
// used whether the draft came from request input or from a persisted invoice.
type RenderInput struct {
	Draft    *draft.Draft
	Totals   draft.Totals
	Business *draft.BusinessSnapshot
	Client   *draft.ClientRef
	// BaseURL is the request origin used to absolutize relative logo
	// references; downstream PDF backends cannot resolve relative paths.
	BaseURL string
}

type invoiceView struct {
	InvoiceNumber  string
	InvoiceDate    string
	DueDate        string
	StatusLabel    string
	Currency       string
	Items          []itemView
	Subtotal       string
	TaxRate        string
	TaxAmount      string
	DiscountAmount string
	HasDiscount    bool
	Total          string
	PaymentTerms   string
	Notes          string
}

type itemView struct {
	Description string
	Quantity    string
	UnitPrice   string
	LineTotal   string
}

type businessView struct {
	Name     string
	Email    string
	Phone    string
	Address  string
	CityLine string
	LogoURL  string
}

// RenderHTML renders the draft into the document template. Formatting only;
// totals arrive precomputed.
func RenderHTML(in RenderInput) ([]byte, error) {
	d := in.Draft

	inv := invoiceView{
		InvoiceNumber:  d.InvoiceNumber,
		InvoiceDate:    d.InvoiceDate,
		DueDate:        d.DueDate,
		StatusLabel:    d.Status.Label(),
		Currency:       d.Currency,
		Subtotal:       utils.FormatAmount(in.Totals.Subtotal),
		TaxRate:        utils.FormatQuantity(d.TaxRate),
		TaxAmount:      utils.FormatAmount(in.Totals.TaxAmount),
		DiscountAmount: utils.FormatAmount(d.DiscountAmount),
		HasDiscount:    d.DiscountAmount.IsPositive(),
		Total:          utils.FormatAmount(in.Totals.Total),
		PaymentTerms:   d.PaymentTerms,
		Notes:          d.Notes,
	}
	if inv.InvoiceNumber == "" {
		inv.InvoiceNumber = "PREVIEW"
	}
	for _, it := range d.Items {
		inv.Items = append(inv.Items, itemView{
			Description: it.Description,
			Quantity:    utils.FormatQuantity(it.Quantity),
			UnitPrice:   utils.FormatAmount(it.UnitPrice),
			LineTotal:   utils.FormatAmount(it.LineTotal()),
		})
	}

	data := struct {
		Invoice  invoiceView
		Business *businessView
		Client   *draft.ClientRef
	}{Invoice: inv}

	if in.Business != nil && !in.Business.Empty() {
		data.Business = &businessView{
			Name:     in.Business.Name,
			Email:    in.Business.Email,
			Phone:    in.Business.Phone,
			Address:  in.Business.Address,
			CityLine: cityLine(in.Business),
			LogoURL:  AbsoluteURL(in.Business.LogoURL, in.BaseURL),
		}
	}
	if in.Client != nil && in.Client.Name != "" {
		data.Client = in.Client
	}

	var buf bytes.Buffer
	if err := invoiceTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// AbsoluteURL rewrites a relative reference against baseURL. Absolute URLs
// and embedded data URLs pass through untouched.
func AbsoluteURL(u, baseURL string) string {
	if u == "" || baseURL == "" {
		return u
	}
	if strings.HasPrefix(u, "data:") || strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	return strings.TrimSuffix(baseURL, "/") + "/" + strings.TrimPrefix(u, "/")
}

func cityLine(b *draft.BusinessSnapshot) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{b.City, b.State, b.ZipCode, b.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
