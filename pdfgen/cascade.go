// Package pdfgen renders an invoice draft to HTML and converts it to PDF
// through an ordered cascade of backends, falling back to the HTML itself
// (with a diagnostic panel) when no backend succeeds.
package pdfgen

import (
	"context"
	"fmt"
	"html"
	"strings"
)

const (
	MIMEPDF  = "application/pdf"
	MIMEHTML = "text/html"
)

// Backend converts rendered HTML to PDF bytes. baseURL is the absolute origin
// used to resolve relative asset references.
type Backend interface {
	Name() string
	Render(ctx context.Context, htmlDoc []byte, baseURL string) ([]byte, error)
}

// BackendError records why one backend could not produce output. Unavailable
// distinguishes "could not run at all" from "ran but failed". Backend errors
// are never fatal to the overall request; the cascade proceeds.
type BackendError struct {
	Backend     string
	Unavailable bool
	Err         error
}

func (e *BackendError) Error() string {
	if e.Unavailable {
		return fmt.Sprintf("%s unavailable: %v", e.Backend, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Backend, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// RenderResult is the tagged outcome of one rendering request: PDF bytes, or
// HTML bytes with an optional diagnostic. Created fresh per request, never
// cached.
type RenderResult struct {
	Content    []byte
	MIME       string
	Filename   string
	Diagnostic string
}

func (r RenderResult) IsPDF() bool { return r.MIME == MIMEPDF }

type Cascade struct {
	backends []Backend
}

func NewCascade(backends ...Backend) *Cascade {
	return &Cascade{backends: backends}
}

// Run attempts each backend in order and stops at the first success. There is
// no retry of a failed backend within one render. When every backend fails,
// the rendered HTML itself is returned, prefixed with a visible panel that
// summarizes every failure; that panel is the operator's only signal for
// misconfiguration and is never dropped.
func (c *Cascade) Run(ctx context.Context, htmlDoc []byte, baseURL, filenameBase string) RenderResult {
	var failures []string

	for _, b := range c.backends {
		pdf, err := b.Render(ctx, htmlDoc, baseURL)
		if err != nil {
			failures = append(failures, err.Error())
			continue
		}
		return RenderResult{
			Content:  pdf,
			MIME:     MIMEPDF,
			Filename: filenameBase + ".pdf",
		}
	}

	diagnostic := buildDiagnostic(failures)
	body := append([]byte(diagnosticPanel(diagnostic)), htmlDoc...)
	return RenderResult{
		Content:    body,
		MIME:       MIMEHTML,
		Filename:   filenameBase + ".html",
		Diagnostic: diagnostic,
	}
}

func buildDiagnostic(failures []string) string {
	lines := []string{"PDF generation is currently unavailable."}
	lines = append(lines, failures...)
	lines = append(lines, "To enable PDF downloads, install wkhtmltopdf and add it to PATH or set WKHTMLTOPDF_CMD.")
	return strings.Join(lines, "\n")
}

func diagnosticPanel(diagnostic string) string {
	var b strings.Builder
	b.WriteString(`<div class="alert alert-warning" style="margin:12px;">`)
	for i, line := range strings.Split(diagnostic, "\n") {
		if i > 0 {
			b.WriteString("<br/>")
		}
		b.WriteString(html.EscapeString(line))
	}
	b.WriteString(`</div>`)
	return b.String()
}
