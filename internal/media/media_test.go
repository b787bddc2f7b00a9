package media

import (
	"errors"
	"testing"

	"github.com/GrumpyCockatiel/miniserver/internal/shared"
)

func TestResolve(t *testing.T) {
	tc := []struct {
		name   string
		ext    string
		mime   string
		isText bool
	}{
		{name: "with leading dot", ext: ".html", mime: "text/html", isText: true},
		{name: "without leading dot", ext: "css", mime: "text/css", isText: true},
		{name: "mixed case", ext: ".JSON", mime: "application/json", isText: true},
		{name: "json is text", ext: "json", mime: "application/json", isText: true},
		{name: "xml is text", ext: "xml", mime: "application/xml", isText: true},
		{name: "svg is text", ext: "svg", mime: "image/svg+xml", isText: true},
		{name: "png is binary", ext: "png", mime: "image/png", isText: false},
		{name: "icon is binary", ext: ".ico", mime: "image/x-icon", isText: false},
		{name: "markdown maps to html", ext: ".md", mime: "text/html", isText: true},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.ext)
			if err != nil {
				t.Fatalf("Resolve(%q) failed: %v", tt.ext, err)
			}
			if got.MIME != tt.mime {
				t.Errorf("Resolve(%q).MIME = %q, want %q", tt.ext, got.MIME, tt.mime)
			}
			if got.IsText != tt.isText {
				t.Errorf("Resolve(%q).IsText = %v, want %v", tt.ext, got.IsText, tt.isText)
			}
		})
	}

	t.Run("unknown extension", func(t *testing.T) {
		if _, err := Resolve(".exe"); !errors.Is(err, shared.ErrUnsupportedExtension) {
			t.Errorf("expected ErrUnsupportedExtension, got %v", err)
		}
	})

	t.Run("blank extension", func(t *testing.T) {
		if _, err := Resolve(""); !errors.Is(err, shared.ErrUnsupportedExtension) {
			t.Errorf("expected ErrUnsupportedExtension, got %v", err)
		}
	})
}

func TestContentType(t *testing.T) {
	tc := []struct {
		name string
		ext  string
		want string
	}{
		{name: "text gets charset", ext: "html", want: "text/html; charset=utf-8"},
		{name: "json gets charset", ext: ".json", want: "application/json; charset=utf-8"},
		{name: "binary has no charset", ext: "png", want: "image/png"},
		{name: "unknown falls back to default", ext: "zzz", want: "text/html; charset=utf-8"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContentType(tt.ext); got != tt.want {
				t.Errorf("ContentType(%q) = %q, want %q", tt.ext, got, tt.want)
			}
		})
	}
}

func TestSupported(t *testing.T) {
	if !Supported(".md") {
		t.Error("expected .md to be supported")
	}
	if Supported(".exe") {
		t.Error("expected .exe to be unsupported")
	}
}

func TestIsMarkdown(t *testing.T) {
	for _, ext := range []string{".md", "md", ".markdown", ".MD"} {
		if !IsMarkdown(ext) {
			t.Errorf("expected %q to be a markdown variant", ext)
		}
	}
	if IsMarkdown(".html") {
		t.Error("expected .html not to be a markdown variant")
	}
}
