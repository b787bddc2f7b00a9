// package content resolves URL paths to files under a root folder and turns
// them into fully buffered response bodies.
//
// Resolution joins the URL path onto the root verbatim: no traversal
// sanitization is applied, so the package must only be pointed at roots whose
// contents are safe to expose on the loopback interface.
package content

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/GrumpyCockatiel/miniserver/internal/media"
	"github.com/GrumpyCockatiel/miniserver/internal/shared"
)

// Converter turns a Markdown document into an HTML fragment.
type Converter func(string) string

// DefaultHomeDocument is served when the request path is blank.
const DefaultHomeDocument = "index.html"

// Unsupported is the default Converter, a stub for builds that did not inject
// a real Markdown renderer.
func Unsupported(string) string {
	return "<p>Markdown rendering is not supported by this build.</p>"
}

// shell is the minimal HTML page every generated body is wrapped in.
const shell = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8" />
<title>$TITLE$</title>
<style>
body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 2rem; color: #333; }
</style>
</head>
<body>
$BODY$
</body>
</html>
`

// Resolve maps a request path to a filesystem path under root. A blank
// remainder (a request for "/") substitutes home, or [DefaultHomeDocument]
// when home is empty.
func Resolve(urlPath, root, home string) string {
	rel := strings.TrimLeft(strings.TrimSpace(urlPath), "/")
	if rel == "" {
		if home == "" {
			home = DefaultHomeDocument
		}
		rel = home
	}
	return filepath.Join(root, rel)
}

// Page wraps an HTML fragment in the standard shell, substituting the title
// and body tokens. A blank body becomes a non-breaking space so the page
// still renders.
func Page(title, body string) string {
	body = strings.TrimSpace(body)
	if body == "" {
		body = "&nbsp;"
	}
	page := strings.ReplaceAll(shell, "$TITLE$", title)
	return strings.ReplaceAll(page, "$BODY$", body)
}

// Load reads the file at path into a buffered body plus its formatted content
// type. Markdown variants are converted with convert and wrapped once in the
// page shell; every other allowed extension is returned as raw bytes. Missing
// files and extensions outside the allow list both fail with
// [shared.ErrNotFound] so the caller can answer 404.
func Load(path string, convert Converter) ([]byte, string, error) {
	ext := filepath.Ext(path)
	if !media.Supported(ext) {
		return nil, "", fmt.Errorf("%w: extension %q is not servable", shared.ErrNotFound, ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %s", shared.ErrNotFound, path)
	}

	if media.IsMarkdown(ext) {
		if convert == nil {
			convert = Unsupported
		}
		title := strings.TrimSuffix(filepath.Base(path), ext)
		page := Page(title, convert(string(data)))
		return []byte(page), media.ContentType(ext), nil
	}

	return data, media.ContentType(ext), nil
}
