package pdfgen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrToolNotFound means wkhtmltopdf could not be located via the configured
// path, PATH, or the well-known install locations.
var ErrToolNotFound = errors.New("wkhtmltopdf not found on PATH or common locations")

// defaultCandidates are the well-known install paths probed after the
// configured path and PATH lookup.
var defaultCandidates = []string{
	`C:\Program Files\wkhtmltopdf\bin\wkhtmltopdf.exe`,
	`C:\Program Files (x86)\wkhtmltopdf\bin\wkhtmltopdf.exe`,
	"/usr/local/bin/wkhtmltopdf",
	"/usr/bin/wkhtmltopdf",
}

// WkhtmltopdfBackend shells out to the wkhtmltopdf binary. It has no
// knowledge of the serving application's routing, so relative asset
// references are rewritten to absolute URLs before invocation.
type WkhtmltopdfBackend struct {
	// ConfiguredPath, when set, is tried before any lookup.
	ConfiguredPath string
	// Candidates is the ordered list of fallback locations; the well-known
	// defaults are injected by NewWkhtmltopdfBackend and can be replaced in
	// tests.
	Candidates []string
	// Timeout bounds one external invocation.
	Timeout time.Duration
	// LookPath resolves a bare command name; exec.LookPath unless injected.
	LookPath func(string) (string, error)
	// TempDir receives the per-invocation HTML/PDF scratch files.
	TempDir string
}

func NewWkhtmltopdfBackend(configuredPath string) *WkhtmltopdfBackend {
	return &WkhtmltopdfBackend{
		ConfiguredPath: configuredPath,
		Candidates:     defaultCandidates,
		Timeout:        60 * time.Second,
		LookPath:       exec.LookPath,
		TempDir:        os.TempDir(),
	}
}

func (b *WkhtmltopdfBackend) Name() string { return "wkhtmltopdf" }

// Locate finds the tool by, in order: the configured path, a PATH lookup,
// then the well-known install locations.
func (b *WkhtmltopdfBackend) Locate() (string, error) {
	if b.ConfiguredPath != "" {
		if isExecutableFile(b.ConfiguredPath) {
			return b.ConfiguredPath, nil
		}
		if found, err := b.LookPath(b.ConfiguredPath); err == nil {
			return found, nil
		}
	}
	if found, err := b.LookPath("wkhtmltopdf"); err == nil {
		return found, nil
	}
	for _, cand := range b.Candidates {
		if isExecutableFile(cand) {
			return cand, nil
		}
	}
	return "", ErrToolNotFound
}

func (b *WkhtmltopdfBackend) Render(ctx context.Context, htmlDoc []byte, baseURL string) ([]byte, error) {
	tool, err := b.Locate()
	if err != nil {
		return nil, &BackendError{Backend: b.Name(), Unavailable: true, Err: err}
	}

	rewritten := RewriteRelativeURLs(htmlDoc, baseURL)

	// Unique names: multiple renders may run concurrently on one host.
	tmpHTML := filepath.Join(b.TempDir, "invoice-"+uuid.NewString()+".html")
	tmpPDF := tmpHTML + ".pdf"
	if err := os.WriteFile(tmpHTML, rewritten, 0o600); err != nil {
		return nil, &BackendError{Backend: b.Name(), Err: fmt.Errorf("write temp html: %w", err)}
	}
	// Cleanup on every exit path, including timeout.
	defer os.Remove(tmpHTML)
	defer os.Remove(tmpPDF)

	ctx, cancel := context.WithTimeout(ctx, b.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, tool, "--enable-local-file-access", tmpHTML, tmpPDF)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		reason := strings.TrimSpace(stderr.String())
		if reason == "" {
			reason = err.Error()
		}
		return nil, &BackendError{Backend: b.Name(), Err: errors.New(reason)}
	}

	pdf, err := os.ReadFile(tmpPDF)
	if err != nil {
		return nil, &BackendError{Backend: b.Name(), Err: fmt.Errorf("read produced pdf: %w", err)}
	}
	return pdf, nil
}

// Version reports the tool's version string for diagnostics, without
// rendering anything.
func (b *WkhtmltopdfBackend) Version() (string, error) {
	tool, err := b.Locate()
	if err != nil {
		return "", err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	out, err := exec.CommandContext(ctx, tool, "--version").CombinedOutput()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// RewriteRelativeURLs rewrites root-relative asset references (src, href and
// CSS url()) to absolute URLs under baseURL, covering both quote styles.
func RewriteRelativeURLs(htmlDoc []byte, baseURL string) []byte {
	base := strings.TrimSuffix(baseURL, "/") + "/"
	replacer := strings.NewReplacer(
		`src="/`, `src="`+base,
		`src='/`, `src='`+base,
		`href="/`, `href="`+base,
		`href='/`, `href='`+base,
		`url('/`, `url('`+base,
		`url("/`, `url("`+base,
	)
	return []byte(replacer.Replace(string(htmlDoc)))
}

func isExecutableFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
