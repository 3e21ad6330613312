package pdfgen

import (
	"bytes"
	"context"
	"fmt"

	"github.com/gompdf/gompdf"
)

// primaryVersion is the pinned gompdf module version, reported by the
// diagnostic endpoint.
const primaryVersion = "v0.1.0"

// GompdfBackend is the in-process HTML→PDF engine and the first backend in
// the cascade.
type GompdfBackend struct {
	opts gompdf.Options
}

func NewGompdfBackend() *GompdfBackend {
	opts := gompdf.DefaultOptions()
	opts.RenderBackgrounds = true
	opts.RenderBorders = true
	return &GompdfBackend{opts: opts}
}

func (b *GompdfBackend) Name() string { return "gompdf" }

// Render converts the document in-process. The engine walks arbitrary input
// HTML, so panics are recovered and reported as a backend failure rather than
// taking down the request.
func (b *GompdfBackend) Render(ctx context.Context, htmlDoc []byte, baseURL string) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = &BackendError{Backend: b.Name(), Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, &BackendError{Backend: b.Name(), Unavailable: true, Err: err}
	}

	var buf bytes.Buffer
	conv := gompdf.NewWithOptions(b.opts)
	if err := conv.Convert(string(htmlDoc), &buf); err != nil {
		return nil, &BackendError{Backend: b.Name(), Err: err}
	}
	return buf.Bytes(), nil
}
