// Package mailer delivers rendered invoices over SMTP.
package mailer

import (
	"crypto/tls"
	"errors"
	"fmt"
	"io"

	"gopkg.in/gomail.v2"

	"invoicer-backend/config"
	"invoicer-backend/pdfgen"
)

// ErrDelivery wraps SMTP failures so the HTTP layer can map them to an
// upstream-failure response instead of a generic 500.
var ErrDelivery = errors.New("email delivery failed")

type Mailer struct {
	cfg    config.Config
	dialer *gomail.Dialer
}

func New(cfg config.Config) *Mailer {
	dialer := gomail.NewDialer(cfg.MailerHost, cfg.MailerPort, cfg.MailerLogin, cfg.MailerPassword)
	dialer.TLSConfig = &tls.Config{
		ServerName: cfg.MailerHost,
		MinVersion: tls.VersionTLS12,
	}
	return &Mailer{cfg: cfg, dialer: dialer}
}

// SendInvoice emails the rendered document as an attachment. The attachment
// keeps whatever the render cascade produced: a PDF when a backend succeeded,
// otherwise the HTML document. The body is plain text.
func (m *Mailer) SendInvoice(to, subject, body string, doc pdfgen.RenderResult) error {
	msg := gomail.NewMessage(
		gomail.SetCharset("UTF-8"),
		gomail.SetEncoding(gomail.Base64),
	)

	msg.SetAddressHeader("From", m.cfg.MailerFrom, m.cfg.MailerFromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	msg.Attach(doc.Filename,
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(doc.Content)
			return err
		}),
		gomail.SetHeader(map[string][]string{"Content-Type": {doc.MIME}}),
	)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	return nil
}
