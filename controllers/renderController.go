package controllers

import (
	"invoicer-backend/config"
	"invoicer-backend/database"
	"invoicer-backend/draft"
	"invoicer-backend/mailer"
	"invoicer-backend/models"
	"invoicer-backend/pdfgen"
	"invoicer-backend/snapshot"

	"github.com/gofiber/fiber/v2"
)

var (
	appCfg          config.Config
	pdfCascade      *pdfgen.Cascade
	externalBackend *pdfgen.WkhtmltopdfBackend
	invoiceMailer   *mailer.Mailer
)

// Init wires the rendering and delivery backends. Call once at startup,
// before routes are served.
func Init(cfg config.Config) {
	appCfg = cfg
	externalBackend = pdfgen.NewWkhtmltopdfBackend(cfg.WkhtmltopdfCmd)
	pdfCascade = pdfgen.NewCascade(pdfgen.NewGompdfBackend(), externalBackend)
	invoiceMailer = mailer.New(cfg)
}

// requestBaseURL is the absolute origin used to absolutize asset references.
// PUBLIC_BASE_URL wins when the app sits behind a proxy.
func requestBaseURL(c *fiber.Ctx) string {
	if appCfg.PublicBaseURL != "" {
		return appCfg.PublicBaseURL
	}
	return c.BaseURL()
}

// PreviewInvoice renders a draft from request input without touching any
// stored invoice, profile, or client. Nothing is persisted on this path.
func PreviewInvoice(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	d, postedBiz, postedClient, err := parseDraftRequest(c)
	if err != nil {
		return err
	}
	totals := draft.ComputeTotals(d.Items, d.TaxRate, d.DiscountAmount)

	resolver := snapshot.New(database.FromCtx(c))

	client, _, err := resolver.ResolveClient(userID, postedClient, false)
	if err != nil {
		return err
	}
	biz, err := resolver.ResolveBusiness(userID, postedBiz, nil, false)
	if err != nil {
		return err
	}

	htmlDoc, err := pdfgen.RenderHTML(pdfgen.RenderInput{
		Draft:    d,
		Totals:   totals,
		Business: biz,
		Client:   client,
		BaseURL:  requestBaseURL(c),
	})
	if err != nil {
		return err
	}

	if c.Query("format") == "pdf" {
		res := pdfCascade.Run(c.UserContext(), htmlDoc, requestBaseURL(c), "invoice_preview")
		return sendRendered(c, res, true)
	}

	c.Set(fiber.HeaderContentType, pdfgen.MIMEHTML)
	return c.Send(htmlDoc)
}

// GeneratePDF renders a persisted invoice through the backend cascade.
// ?format=pdf forces a download; the default serves the document inline.
func GeneratePDF(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	db := database.FromCtx(c)

	var inv models.Invoice
	if err := db.Preload("Client").Preload("Items").
		Where("id = ? AND user_id = ?", c.Params("id"), userID).
		First(&inv).Error; err != nil {
		return err
	}

	res, err := renderInvoice(c, &inv)
	if err != nil {
		return err
	}
	return sendRendered(c, res, c.Query("format") == "pdf")
}

// renderInvoice runs the full pipeline for a persisted invoice: rebuild the
// draft, resolve the business snapshot read-only, render HTML, cascade.
func renderInvoice(c *fiber.Ctx, inv *models.Invoice) (pdfgen.RenderResult, error) {
	d := draftFromInvoice(inv)
	totals := draft.ComputeTotals(d.Items, d.TaxRate, d.DiscountAmount)

	resolver := snapshot.New(database.FromCtx(c))
	biz, err := resolver.ResolveBusiness(inv.UserId, nil, inv, false)
	if err != nil {
		return pdfgen.RenderResult{}, err
	}

	var client *draft.ClientRef
	if inv.Client != nil {
		client = &draft.ClientRef{
			Name:    inv.Client.Name,
			Email:   inv.Client.Email,
			Phone:   inv.Client.Phone,
			Address: inv.Client.Address,
		}
	}

	base := requestBaseURL(c)
	htmlDoc, err := pdfgen.RenderHTML(pdfgen.RenderInput{
		Draft:    d,
		Totals:   totals,
		Business: biz,
		Client:   client,
		BaseURL:  base,
	})
	if err != nil {
		return pdfgen.RenderResult{}, err
	}

	return pdfCascade.Run(c.UserContext(), htmlDoc, base, "invoice_"+safeFilenamePart(inv.InvoiceNumber)), nil
}

func sendRendered(c *fiber.Ctx, res pdfgen.RenderResult, download bool) error {
	c.Set(fiber.HeaderContentType, res.MIME)
	disposition := "inline"
	if download {
		disposition = "attachment"
	}
	c.Set(fiber.HeaderContentDisposition, disposition+`; filename="`+res.Filename+`"`)
	return c.Send(res.Content)
}

func safeFilenamePart(s string) string {
	if s == "" {
		return "draft"
	}
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}

// PDFStatus reports backend availability without rendering anything.
func PDFStatus(c *fiber.Ctx) error {
	return c.JSON(pdfgen.Probe(externalBackend))
}

// EmailInvoice renders the invoice and mails it to the stored client address.
// The attachment is a PDF when a backend succeeded, otherwise the HTML
// document; delivery never silently drops the invoice content.
func EmailInvoice(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	db := database.FromCtx(c)

	var inv models.Invoice
	if err := db.Preload("Client").Preload("Items").
		Where("id = ? AND user_id = ?", c.Params("id"), userID).
		First(&inv).Error; err != nil {
		return err
	}

	if inv.Client == nil || inv.Client.Email == "" {
		return fiber.NewError(fiber.StatusBadRequest, "client does not have an email address")
	}

	var data map[string]string
	_ = c.BodyParser(&data)

	subject := data["subject"]
	if subject == "" {
		subject = "Invoice " + inv.InvoiceNumber
	}
	message := data["message"]
	if message == "" {
		message = "Please find your invoice attached."
	}

	res, err := renderInvoice(c, &inv)
	if err != nil {
		return err
	}
	if err := invoiceMailer.SendInvoice(inv.Client.Email, subject, message, res); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":  "success",
		"attached": res.Filename,
	})
}
