package pdfgen

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRewriteRelativeURLs(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			"src double quote",
			`<img src="/media/logo.png"/>`,
			`<img src="http://host/media/logo.png"/>`,
		},
		{
			"src single quote",
			`<img src='/media/logo.png'/>`,
			`<img src='http://host/media/logo.png'/>`,
		},
		{
			"href",
			`<link href="/static/style.css"/>`,
			`<link href="http://host/static/style.css"/>`,
		},
		{
			"css url",
			`body { background: url('/static/bg.png'); }`,
			`body { background: url('http://host/static/bg.png'); }`,
		},
		{
			"absolute url untouched",
			`<img src="https://cdn/x.png"/>`,
			`<img src="https://cdn/x.png"/>`,
		},
		{
			"data url untouched",
			`<img src="data:image/png;base64,AAA"/>`,
			`<img src="data:image/png;base64,AAA"/>`,
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := RewriteRelativeURLs([]byte(tc.in), "http://host")
			require.Equal(t, tc.want, string(got))
		})
	}
}

func TestRewriteRelativeURLs_BaseTrailingSlash(t *testing.T) {
	t.Parallel()

	got := RewriteRelativeURLs([]byte(`<img src="/x.png"/>`), "http://host/")
	require.Equal(t, `<img src="http://host/x.png"/>`, string(got))
}

func TestLocate_NotFound(t *testing.T) {
	t.Parallel()

	b := NewWkhtmltopdfBackend("")
	b.Candidates = nil
	b.LookPath = func(string) (string, error) { return "", errors.New("not in PATH") }

	_, err := b.Locate()
	require.ErrorIs(t, err, ErrToolNotFound)
}

func TestLocate_ConfiguredPathPreferred(t *testing.T) {
	t.Parallel()
	r := require.New(t)

	b := NewWkhtmltopdfBackend("wkhtmltopdf-custom")
	b.Candidates = nil
	b.LookPath = func(name string) (string, error) {
		if name == "wkhtmltopdf-custom" {
			return "/opt/bin/wkhtmltopdf-custom", nil
		}
		return "", errors.New("not in PATH")
	}

	path, err := b.Locate()
	r.NoError(err)
	r.Equal("/opt/bin/wkhtmltopdf-custom", path)
}

func TestLocate_FallsBackToPathLookup(t *testing.T) {
	t.Parallel()
	r := require.New(t)

	b := NewWkhtmltopdfBackend("")
	b.Candidates = nil
	b.LookPath = func(name string) (string, error) {
		if name == "wkhtmltopdf" {
			return "/usr/bin/wkhtmltopdf", nil
		}
		return "", errors.New("not in PATH")
	}

	path, err := b.Locate()
	r.NoError(err)
	r.Equal("/usr/bin/wkhtmltopdf", path)
}

// fakeTool writes a shell script standing in for the external binary. The
// script receives (--enable-local-file-access, in.html, out.pdf).
func fakeTool(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script tool stand-in")
	}
	path := filepath.Join(t.TempDir(), "wkhtmltopdf-fake")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755))
	return path
}

func tempBackend(t *testing.T, script string) (*WkhtmltopdfBackend, string) {
	t.Helper()
	b := NewWkhtmltopdfBackend(fakeTool(t, script))
	b.Candidates = nil
	b.TempDir = t.TempDir()
	return b, b.TempDir
}

func requireEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries, "scratch files must be removed on every exit path")
}

func TestRender_Success_CleansTempFiles(t *testing.T) {
	t.Parallel()
	r := require.New(t)

	b, dir := tempBackend(t, `printf '%%PDF-1.7 fake' > "$3"`)

	pdf, err := b.Render(context.Background(), []byte("<html><body>x</body></html>"), "http://host")
	r.NoError(err)
	r.Equal("%PDF-1.7 fake", string(pdf))
	requireEmptyDir(t, dir)
}

func TestRender_ToolFailure_CleansTempFiles(t *testing.T) {
	t.Parallel()
	r := require.New(t)

	b, dir := tempBackend(t, `echo "ContentNotFound" >&2; exit 1`)

	_, err := b.Render(context.Background(), []byte("<html></html>"), "http://host")
	r.Error(err)

	var be *BackendError
	r.ErrorAs(err, &be)
	r.False(be.Unavailable)
	r.Contains(be.Err.Error(), "ContentNotFound")
	requireEmptyDir(t, dir)
}

func TestRender_Timeout_CleansTempFiles(t *testing.T) {
	t.Parallel()
	r := require.New(t)

	b, dir := tempBackend(t, `sleep 5`)
	b.Timeout = 100 * time.Millisecond

	_, err := b.Render(context.Background(), []byte("<html></html>"), "http://host")
	r.Error(err)
	requireEmptyDir(t, dir)
}

func TestRender_RewritesRelativeURLsInTempHTML(t *testing.T) {
	t.Parallel()
	r := require.New(t)

	// the script copies its input back out, exposing what the tool was given
	b, dir := tempBackend(t, `cp "$2" "$3"`)

	out, err := b.Render(context.Background(), []byte(`<img src="/media/x.png"/>`), "http://host")
	r.NoError(err)
	r.Equal(`<img src="http://host/media/x.png"/>`, string(out))
	requireEmptyDir(t, dir)
}

func TestRender_UnavailableToolReportsBackendError(t *testing.T) {
	t.Parallel()
	r := require.New(t)

	b := NewWkhtmltopdfBackend("")
	b.Candidates = nil
	b.LookPath = func(string) (string, error) { return "", errors.New("not in PATH") }

	_, err := b.Render(context.Background(), []byte("<html></html>"), "http://host")
	r.Error(err)

	var be *BackendError
	r.ErrorAs(err, &be)
	r.True(be.Unavailable)
	r.ErrorIs(err, ErrToolNotFound)
}
