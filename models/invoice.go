package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"invoicer-backend/draft"
)

// Invoice is the persisted state of a commercial document. Totals are stored
// but always recomputed from the items on save; they are never trusted from
// input. BusinessSnapshot freezes the business identity at save time so the
// rendered document stays stable even if the canonical BusinessProfile
// changes later.
type Invoice struct {
	Id            uint    `json:"id" gorm:"primaryKey"`
	UserId        string  `json:"-" gorm:"index;not null"`
	InvoiceNumber string  `json:"invoice_number" gorm:"index"`
	CId           *uint   `json:"-"`
	Client        *Client `json:"client,omitempty" gorm:"foreignKey:CId;references:Id"`

	InvoiceDate *datatypes.Date `json:"invoice_date"`
	DueDate     *datatypes.Date `json:"due_date"`
	Status      string          `json:"status" gorm:"type:varchar(20);default:'draft'"`
	Currency    string          `json:"currency" gorm:"type:varchar(3);default:'USD'"`

	Items          []InvoiceItem   `json:"items" gorm:"foreignKey:InvoiceId;constraint:OnDelete:CASCADE"`
	TaxRate        decimal.Decimal `json:"tax_rate" gorm:"type:numeric(5,2)"`
	DiscountAmount decimal.Decimal `json:"discount_amount" gorm:"type:numeric(12,2)"`
	Subtotal       decimal.Decimal `json:"subtotal" gorm:"type:numeric(12,2)"`
	TaxAmount      decimal.Decimal `json:"tax_amount" gorm:"type:numeric(12,2)"`
	TotalAmount    decimal.Decimal `json:"total_amount" gorm:"type:numeric(12,2)"`

	PaymentTerms string `json:"payment_terms"`
	Notes        string `json:"notes"`

	// Business identity frozen at save time, as a jsonb draft.BusinessSnapshot.
	BusinessSnapshot datatypes.JSON `json:"business_snapshot,omitempty" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
}

type InvoiceItem struct {
	Id          uint            `json:"id" gorm:"primaryKey"`
	InvoiceId   uint            `json:"-" gorm:"index"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity" gorm:"type:numeric(12,3)"`
	UnitPrice   decimal.Decimal `json:"unit_price" gorm:"type:numeric(12,2)"`
	LineTotal   decimal.Decimal `json:"line_total" gorm:"type:numeric(12,2)"`
}

// SavedSnapshot decodes the invoice's frozen business snapshot, or nil when
// none was saved.
func (inv *Invoice) SavedSnapshot() *draft.BusinessSnapshot {
	if len(inv.BusinessSnapshot) == 0 {
		return nil
	}
	var snap draft.BusinessSnapshot
	if err := json.Unmarshal(inv.BusinessSnapshot, &snap); err != nil {
		return nil
	}
	if snap.Empty() {
		return nil
	}
	return &snap
}

// SetSnapshot freezes the given business snapshot onto the invoice.
func (inv *Invoice) SetSnapshot(snap *draft.BusinessSnapshot) error {
	if snap == nil || snap.Empty() {
		inv.BusinessSnapshot = nil
		return nil
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	inv.BusinessSnapshot = datatypes.JSON(raw)
	return nil
}
