package server

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/GrumpyCockatiel/miniserver/internal/content"
	"github.com/GrumpyCockatiel/miniserver/internal/logs"
	"github.com/GrumpyCockatiel/miniserver/internal/media"
	"github.com/GrumpyCockatiel/miniserver/internal/shared"
)

// Reserved and seeded paths.
const (
	pathShutdown = "/shutdown"
	pathFavicon  = "/favicon.ico"
	pathSig      = "/sig"
	pathTest     = "/test"
)

// write sends a fully buffered body with its content type and length.
func write(ex *Exchange, code int, ctype string, body []byte) {
	h := ex.Writer.Header()
	h.Set("Content-Type", ctype)
	h.Set("Content-Length", strconv.Itoa(len(body)))
	ex.Writer.WriteHeader(code)
	ex.Writer.Write(body)
}

// WriteStatus answers with only a status code: zero content length, no body.
func WriteStatus(ex *Exchange, code int) {
	ex.Writer.Header().Set("Content-Length", "0")
	ex.Writer.WriteHeader(code)
}

// WriteError is the error helper used by the loop and by route handlers.
// Error responses never carry a body.
func WriteError(ex *Exchange, code int) {
	WriteStatus(ex, code)
}

// WritePage wraps body in the standard HTML shell and sends it as text/html.
func WritePage(ex *Exchange, title, body string) {
	page := content.Page(title, body)
	write(ex, http.StatusOK, media.ContentType("html"), []byte(page))
}

// WriteJSON answers 200 with the given JSON text verbatim, or 204 with an
// empty body when the text is blank. The content type is application/json in
// both cases.
func WriteJSON(ex *Exchange, body string) {
	ctype := media.ContentType("json")
	if strings.TrimSpace(body) == "" {
		ex.Writer.Header().Set("Content-Type", ctype)
		ex.Writer.Header().Set("Content-Length", "0")
		ex.Writer.WriteHeader(http.StatusNoContent)
		return
	}
	write(ex, http.StatusOK, ctype, []byte(body))
}

// handleSig reports the server signature: name, version, and UTC timestamp.
func (s *Server) handleSig(ex *Exchange) error {
	body := fmt.Sprintf("%s v%s (%s)", shared.Name, shared.Version, time.Now().UTC().Format(time.RFC3339))
	WritePage(ex, shared.Name, body)
	return nil
}

// handleTest echoes the values of the echo query parameter joined by single
// spaces, or the path plus the current UTC time when the parameter is absent.
func (s *Server) handleTest(ex *Exchange) error {
	values := ex.Request.URL.Query()["echo"]

	var body string
	if len(values) > 0 {
		body = strings.Join(values, " ")
	} else {
		body = fmt.Sprintf("%s %s", pathTest, time.Now().UTC().Format(time.RFC3339))
	}

	WritePage(ex, "test", body)
	return nil
}

// handleFavicon serves <root>/favicon.ico, or 404 when no root is configured
// or the icon is missing. Serving the icon does not require ServeFiles.
func (s *Server) handleFavicon(ex *Exchange) {
	if s.config.Root == "" {
		logs.Errorf(logSource, "[%s] favicon requested with no root folder", ex.ID)
		WriteError(ex, http.StatusNotFound)
		return
	}

	data, err := os.ReadFile(filepath.Join(s.config.Root, "favicon.ico"))
	if err != nil {
		logs.Errorf(logSource, "[%s] favicon: %v", ex.ID, err)
		WriteError(ex, http.StatusNotFound)
		return
	}

	write(ex, http.StatusOK, media.ContentType("ico"), data)
}
