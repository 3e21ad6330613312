package controllers

import (
	"strings"
	"time"

	"invoicer-backend/database"
	"invoicer-backend/draft"
	"invoicer-backend/models"
	"invoicer-backend/snapshot"
	"invoicer-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// parseDraftRequest normalizes either body shape (JSON or form-encoded) into
// the draft plus unresolved business/client fragments.
func parseDraftRequest(c *fiber.Ctx) (*draft.Draft, *draft.BusinessSnapshot, *draft.ClientRef, error) {
	ct := strings.ToLower(c.Get(fiber.HeaderContentType))
	if strings.Contains(ct, fiber.MIMEApplicationJSON) {
		return draft.FromJSON(c.Body())
	}

	var data map[string]string
	if err := c.BodyParser(&data); err != nil {
		return nil, nil, nil, fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	d, biz, client := draft.FromForm(data)
	return d, biz, client, nil
}

func parseDate(s string) *datatypes.Date {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	d := datatypes.Date(t)
	return &d
}

func dateString(d *datatypes.Date) string {
	if d == nil {
		return ""
	}
	return time.Time(*d).Format("2006-01-02")
}

// applyDraft copies draft fields and recomputed totals onto the model. Totals
// posted by the caller are ignored.
func applyDraft(inv *models.Invoice, d *draft.Draft, totals draft.Totals) {
	inv.InvoiceNumber = d.InvoiceNumber
	inv.InvoiceDate = parseDate(d.InvoiceDate)
	inv.DueDate = parseDate(d.DueDate)
	inv.Status = string(d.Status)
	inv.Currency = d.Currency
	inv.TaxRate = d.TaxRate
	inv.DiscountAmount = d.DiscountAmount
	inv.PaymentTerms = d.PaymentTerms
	inv.Notes = d.Notes
	inv.Subtotal = utils.Round2(totals.Subtotal)
	inv.TaxAmount = utils.Round2(totals.TaxAmount)
	inv.TotalAmount = utils.Round2(totals.Total)

	inv.Items = inv.Items[:0]
	for _, it := range d.Items {
		inv.Items = append(inv.Items, models.InvoiceItem{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			LineTotal:   utils.Round2(it.LineTotal()),
		})
	}
}

// draftFromInvoice rebuilds the renderable draft from a persisted invoice.
func draftFromInvoice(inv *models.Invoice) *draft.Draft {
	d := &draft.Draft{
		InvoiceNumber:  inv.InvoiceNumber,
		InvoiceDate:    dateString(inv.InvoiceDate),
		DueDate:        dateString(inv.DueDate),
		Status:         draft.Status(inv.Status),
		Currency:       inv.Currency,
		TaxRate:        inv.TaxRate,
		DiscountAmount: inv.DiscountAmount,
		PaymentTerms:   inv.PaymentTerms,
		Notes:          inv.Notes,
	}
	for _, it := range inv.Items {
		d.Items = append(d.Items, draft.LineItem{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	return d
}

func CreateInvoice(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	d, postedBiz, postedClient, err := parseDraftRequest(c)
	if err != nil {
		return err
	}
	totals := draft.ComputeTotals(d.Items, d.TaxRate, d.DiscountAmount)

	db := database.FromCtx(c)
	resolver := snapshot.New(db)

	_, client, err := resolver.ResolveClient(userID, postedClient, true)
	if err != nil {
		return err
	}

	inv := models.Invoice{UserId: userID}
	applyDraft(&inv, d, totals)
	if client != nil {
		inv.CId = &client.Id
	}

	biz, err := resolver.ResolveBusiness(userID, postedBiz, nil, true)
	if err != nil {
		return err
	}
	if err := inv.SetSnapshot(biz); err != nil {
		return err
	}

	if err := db.Create(&inv).Error; err != nil {
		return err
	}

	db.Preload("Client").Preload("Items").First(&inv, inv.Id)
	return c.Status(fiber.StatusCreated).JSON(inv)
}

func UpdateInvoice(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	db := database.FromCtx(c)

	var inv models.Invoice
	if err := db.Preload("Items").
		Where("id = ? AND user_id = ?", c.Params("id"), userID).
		First(&inv).Error; err != nil {
		return err
	}

	d, postedBiz, postedClient, err := parseDraftRequest(c)
	if err != nil {
		return err
	}
	totals := draft.ComputeTotals(d.Items, d.TaxRate, d.DiscountAmount)

	resolver := snapshot.New(db)

	_, client, err := resolver.ResolveClient(userID, postedClient, true)
	if err != nil {
		return err
	}

	biz, err := resolver.ResolveBusiness(userID, postedBiz, &inv, true)
	if err != nil {
		return err
	}

	// Replace line items wholesale; partial item edits are not a thing.
	if err := db.Where("invoice_id = ?", inv.Id).Delete(&models.InvoiceItem{}).Error; err != nil {
		return err
	}

	applyDraft(&inv, d, totals)
	if client != nil {
		inv.CId = &client.Id
	}
	if err := inv.SetSnapshot(biz); err != nil {
		return err
	}

	if err := db.Session(&gorm.Session{FullSaveAssociations: true}).Save(&inv).Error; err != nil {
		return err
	}

	db.Preload("Client").Preload("Items").First(&inv, inv.Id)
	return c.JSON(inv)
}

func GetInvoices(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	db := database.FromCtx(c).
		Where("user_id = ?", userID).
		Preload("Client").
		Preload("Items")

	if status := strings.TrimSpace(c.Query("status")); status != "" {
		db = db.Where("status = ?", strings.ToLower(status))
	}
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		like := "%" + q + "%"
		db = db.Where(
			"invoice_number ILIKE ? OR c_id IN (?)",
			like,
			database.FromCtx(c).Model(&models.Client{}).Select("id").
				Where("user_id = ? AND name ILIKE ?", userID, like),
		)
	}

	var invoices []models.Invoice
	if err := db.Order("created_at DESC").Find(&invoices).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"invoices": invoices,
		"message":  "success",
	})
}

func GetInvoice(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	var inv models.Invoice
	if err := database.FromCtx(c).
		Preload("Client").Preload("Items").
		Where("id = ? AND user_id = ?", c.Params("id"), userID).
		First(&inv).Error; err != nil {
		return err
	}
	return c.JSON(inv)
}

func DeleteInvoice(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	db := database.FromCtx(c)

	var inv models.Invoice
	if err := db.Where("id = ? AND user_id = ?", c.Params("id"), userID).First(&inv).Error; err != nil {
		return err
	}
	if err := db.Where("invoice_id = ?", inv.Id).Delete(&models.InvoiceItem{}).Error; err != nil {
		return err
	}
	if err := db.Delete(&inv).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "success"})
}
