package draft

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromForm_Items(t *testing.T) {
	t.Parallel()
	r := require.New(t)

	d, _, _ := FromForm(map[string]string{
		"item-0-description": "Widget",
		"item-0-quantity":    "2",
		"item-0-unit_price":  "9.99",
		"item-1-description": "Gadget",
		"item-1-quantity":    "1",
		"item-1-unit_price":  "19.99",
	})

	r.Len(d.Items, 2)
	r.Equal("Widget", d.Items[0].Description)
	r.Equal("Gadget", d.Items[1].Description)
	r.Equal("19.98", d.Items[0].LineTotal().String())
	r.Equal("19.99", d.Items[1].LineTotal().String())

	totals := ComputeTotals(d.Items, d.TaxRate, d.DiscountAmount)
	r.Equal("39.97", totals.Subtotal.String())
}

func TestFromForm_ItemAliasesAndOrder(t *testing.T) {
	t.Parallel()
	r := require.New(t)

	// indexes arrive unordered and use legacy field names
	d, _, _ := FromForm(map[string]string{
		"form-2-desc":  "Third",
		"form-2-qty":   "3",
		"form-2-price": "1",
		"form-0-desc":  "First",
		"form-0-qty":   "1",
		"form-0-price": "5",
		"form-1-desc":  "Second",
		"form-1-qty":   "2",
		"form-1-price": "2.50",
	})

	r.Len(d.Items, 3)
	r.Equal([]string{"First", "Second", "Third"},
		[]string{d.Items[0].Description, d.Items[1].Description, d.Items[2].Description})
}

func TestFromForm_BareDescriptionKeys(t *testing.T) {
	t.Parallel()
	r := require.New(t)

	d, _, _ := FromForm(map[string]string{
		"description-0":     "Standalone",
		"item-0-quantity":   "2",
		"item-0-unit_price": "4",
	})

	r.Len(d.Items, 1)
	r.Equal("Standalone", d.Items[0].Description)
	r.Equal("8", d.Items[0].LineTotal().String())
}

func TestFromForm_UnparsableNumbersDefaultToZero(t *testing.T) {
	t.Parallel()
	r := require.New(t)

	d, _, _ := FromForm(map[string]string{
		"item-0-description": "Broken",
		"item-0-quantity":    "two",
		"item-0-unit_price":  "9.99",
	})

	r.Len(d.Items, 1)
	r.True(d.Items[0].Quantity.IsZero())
	r.True(d.Items[0].LineTotal().IsZero())
}

func TestFromForm_AliasFallback(t *testing.T) {
	t.Parallel()
	r := require.New(t)

	d, business, client := FromForm(map[string]string{
		"id_invoice_number":     "INV-00042", // legacy key only
		"id_tax_rate":           "8.25",
		"id_client_name":        "Acme Inc",
		"id_business_name_text": "My Studio",
		"business":              "7",
	})

	r.Equal("INV-00042", d.InvoiceNumber)
	r.Equal("8.25", d.TaxRate.String())
	r.Equal("Acme Inc", client.Name)
	r.Equal("My Studio", business.Name)
	r.Equal("7", business.ProfileID)
}

func TestFromForm_CanonicalKeyWinsOverAlias(t *testing.T) {
	t.Parallel()
	r := require.New(t)

	d, _, _ := FromForm(map[string]string{
		"invoice_number":    "INV-1",
		"id_invoice_number": "INV-legacy",
	})
	r.Equal("INV-1", d.InvoiceNumber)
}

func TestFromForm_Defaults(t *testing.T) {
	t.Parallel()
	r := require.New(t)

	d, business, _ := FromForm(map[string]string{})

	r.Equal("USD", d.Currency)
	r.Equal(StatusDraft, d.Status)
	r.True(d.TaxRate.IsZero())
	r.True(d.DiscountAmount.IsZero())
	r.Empty(d.Items)
	r.True(business.Empty())
}

func TestFromJSON(t *testing.T) {
	t.Parallel()
	r := require.New(t)

	body := []byte(`{
		"invoice_number": "INV-00007",
		"invoice_date": "2026-08-01",
		"due_date": "2026-08-31",
		"status": "sent",
		"currency": "eur",
		"tax_rate": "20",
		"discount_amount": 5,
		"notes": "thanks",
		"items": [
			{"description": "Consulting", "quantity": 2, "unit_price": "150.00"},
			{"description": "Review", "quantity": "1", "unit_price": 120}
		],
		"client": {"id": 3, "name": "Acme", "email": "billing@acme.test"},
		"business": {"id": "9", "business_name": "Studio", "photo_data_url": "data:image/png;base64,AAAA"}
	}`)

	d, business, client, err := FromJSON(body)
	r.NoError(err)

	r.Equal("INV-00007", d.InvoiceNumber)
	r.Equal(StatusSent, d.Status)
	r.Equal("EUR", d.Currency)
	r.Equal("20", d.TaxRate.String())
	r.Equal("5", d.DiscountAmount.String())
	r.Len(d.Items, 2)
	r.Equal("300", d.Items[0].LineTotal().String())

	r.Equal("3", client.ID)
	r.Equal("Acme", client.Name)
	r.Equal("9", business.ProfileID)
	r.Equal("Studio", business.Name)
	r.Equal("data:image/png;base64,AAAA", business.PhotoDataURL)
}

func TestFromJSON_Malformed(t *testing.T) {
	t.Parallel()

	_, _, _, err := FromJSON([]byte(`{"invoice_number": `))
	require.ErrorIs(t, err, ErrMalformedInput)
}

func TestFromJSON_MissingOptionalFieldsDefault(t *testing.T) {
	t.Parallel()
	r := require.New(t)

	d, business, client, err := FromJSON([]byte(`{}`))
	r.NoError(err)
	r.Equal("USD", d.Currency)
	r.Equal(StatusDraft, d.Status)
	r.Nil(business)
	r.Nil(client)
}

func TestParseDecimalDefault(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		in            string
		want          string
		wantDefaulted bool
	}{
		{"9.99", "9.99", false},
		{" 10 ", "10", false},
		{"", "0", true},
		{"abc", "0", true},
		{"1,5", "0", true},
	} {
		got, defaulted := ParseDecimalDefault(tt.in)
		require.Equal(t, tt.want, got.String(), "input %q", tt.in)
		require.Equal(t, tt.wantDefaulted, defaulted, "input %q", tt.in)
	}
}

func TestStatusLabel(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Draft", StatusDraft.Label())
	require.Equal(t, "Overdue", StatusOverdue.Label())
	require.False(t, Status("archived").IsValid())
}
