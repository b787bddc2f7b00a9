// package media maps file extensions to media types for the content pipeline.
//
// The table is the serve allow list: an extension missing from it means the
// file may not be served at all, not that a generic default applies.
package media

import (
	"fmt"
	"strings"
	"sync"

	"github.com/GrumpyCockatiel/miniserver/internal/shared"
)

// Type describes a resolvable media type: the MIME string and whether the
// payload is text. Text types carry a utf-8 charset suffix on the wire.
type Type struct {
	MIME   string
	IsText bool
}

// DefaultMIME is used when formatting a content type for an extension that is
// somehow absent from the table.
const DefaultMIME = "text/html"

// mimes is the allow list. Markdown variants resolve to text/html because
// they are always served converted, never raw.
var mimes = map[string]string{
	"html":     "text/html",
	"htm":      "text/html",
	"css":      "text/css",
	"js":       "text/javascript",
	"json":     "application/json",
	"xml":      "application/xml",
	"txt":      "text/plain",
	"csv":      "text/csv",
	"md":       "text/html",
	"markdown": "text/html",
	"png":      "image/png",
	"jpg":      "image/jpeg",
	"jpeg":     "image/jpeg",
	"gif":      "image/gif",
	"svg":      "image/svg+xml",
	"webp":     "image/webp",
	"ico":      "image/x-icon",
}

var (
	once  sync.Once
	table map[string]Type
)

// load builds the table on first use; it is read-only afterwards.
func load() map[string]Type {
	once.Do(func() {
		table = make(map[string]Type, len(mimes))
		for ext, m := range mimes {
			table[ext] = Type{MIME: m, IsText: textual(m)}
		}
	})
	return table
}

// textual reports whether a media type is served as text: anything under
// text/ plus the JSON and XML application types.
func textual(mime string) bool {
	return strings.HasPrefix(mime, "text/") ||
		mime == "application/json" ||
		mime == "application/xml" ||
		strings.HasSuffix(mime, "+xml")
}

// Normalize strips a leading dot and lowercases an extension.
func Normalize(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}

// Resolve looks up a file extension, with or without its leading dot.
// Unknown extensions fail with [shared.ErrUnsupportedExtension].
func Resolve(ext string) (Type, error) {
	t, ok := load()[Normalize(ext)]
	if !ok {
		return Type{}, fmt.Errorf("%w: %q", shared.ErrUnsupportedExtension, ext)
	}
	return t, nil
}

// Supported reports whether the extension is in the allow list.
func Supported(ext string) bool {
	_, err := Resolve(ext)
	return err == nil
}

// IsMarkdown reports whether the extension names a Markdown variant.
func IsMarkdown(ext string) bool {
	n := Normalize(ext)
	return n == "md" || n == "markdown"
}

// ContentType formats the Content-Type header value for an already-validated
// extension, appending the utf-8 charset for text types. Falls back to
// [DefaultMIME] when the extension is absent from the table.
func ContentType(ext string) string {
	t, err := Resolve(ext)
	if err != nil {
		t = Type{MIME: DefaultMIME, IsText: true}
	}
	if t.IsText {
		return t.MIME + "; charset=utf-8"
	}
	return t.MIME
}
