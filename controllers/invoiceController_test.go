package controllers

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"invoicer-backend/draft"
	"invoicer-backend/models"
)

func TestApplyDraft_RecomputesStoredTotals(t *testing.T) {
	t.Parallel()
	r := require.New(t)

	d := &draft.Draft{
		InvoiceNumber: "INV-7",
		InvoiceDate:   "2024-03-01",
		DueDate:       "2024-03-15",
		Status:        draft.StatusSent,
		Currency:      "USD",
		TaxRate:       decimal.NewFromInt(10),
		Items: []draft.LineItem{
			{Description: "Widget", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.RequireFromString("9.99")},
		},
	}
	totals := draft.ComputeTotals(d.Items, d.TaxRate, d.DiscountAmount)

	var inv models.Invoice
	applyDraft(&inv, d, totals)

	r.Equal("INV-7", inv.InvoiceNumber)
	r.Equal("sent", inv.Status)
	r.NotNil(inv.InvoiceDate)
	r.Equal("2024-03-01", dateString(inv.InvoiceDate))
	r.Equal("2024-03-15", dateString(inv.DueDate))
	r.True(inv.Subtotal.Equal(decimal.RequireFromString("19.98")))
	r.True(inv.TaxAmount.Equal(decimal.RequireFromString("2.00")))
	r.True(inv.TotalAmount.Equal(decimal.RequireFromString("21.98")))
	r.Len(inv.Items, 1)
	r.True(inv.Items[0].LineTotal.Equal(decimal.RequireFromString("19.98")))
}

func TestApplyDraft_UnparsableDatesStayNil(t *testing.T) {
	t.Parallel()

	d := &draft.Draft{InvoiceDate: "not-a-date", Status: draft.StatusDraft, Currency: "USD"}
	var inv models.Invoice
	applyDraft(&inv, d, draft.ComputeTotals(nil, d.TaxRate, d.DiscountAmount))

	require.Nil(t, inv.InvoiceDate)
	require.Nil(t, inv.DueDate)
	require.Equal(t, "", dateString(inv.InvoiceDate))
}

func TestDraftFromInvoice_RoundTrip(t *testing.T) {
	t.Parallel()
	r := require.New(t)

	d := &draft.Draft{
		InvoiceNumber:  "INV-9",
		InvoiceDate:    "2024-04-02",
		DueDate:        "2024-04-30",
		Status:         draft.StatusPaid,
		Currency:       "EUR",
		TaxRate:        decimal.NewFromInt(19),
		DiscountAmount: decimal.RequireFromString("1.50"),
		PaymentTerms:   "Net 30",
		Notes:          "thanks",
		Items: []draft.LineItem{
			{Description: "Consulting", Quantity: decimal.RequireFromString("1.5"), UnitPrice: decimal.NewFromInt(100)},
		},
	}

	var inv models.Invoice
	applyDraft(&inv, d, draft.ComputeTotals(d.Items, d.TaxRate, d.DiscountAmount))
	back := draftFromInvoice(&inv)

	r.Equal(d.InvoiceNumber, back.InvoiceNumber)
	r.Equal(d.InvoiceDate, back.InvoiceDate)
	r.Equal(d.DueDate, back.DueDate)
	r.Equal(d.Status, back.Status)
	r.Equal(d.Currency, back.Currency)
	r.Equal(d.PaymentTerms, back.PaymentTerms)
	r.Len(back.Items, 1)
	r.True(back.Items[0].Quantity.Equal(d.Items[0].Quantity))
	r.True(back.Items[0].UnitPrice.Equal(d.Items[0].UnitPrice))

	// recomputing from the rebuilt draft reproduces the stored totals
	again := draft.ComputeTotals(back.Items, back.TaxRate, back.DiscountAmount)
	r.True(again.Total.Round(2).Equal(inv.TotalAmount))
}

func TestSafeFilenamePart(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"", "draft"},
		{"INV-001", "INV-001"},
		{"INV 001/2024", "INV_001_2024"},
		{"a\"b", "a_b"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, safeFilenamePart(tc.in))
	}
}
