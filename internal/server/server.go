package server

import (
	"errors"
	"net/http"

	"github.com/GrumpyCockatiel/miniserver/internal/content"
	"github.com/GrumpyCockatiel/miniserver/internal/logs"
	"github.com/GrumpyCockatiel/miniserver/internal/shared"
)

// Run result codes.
const (
	CodeStartupFailed = -1
	CodeStopped       = 0
)

// Port bounds. Configured ports outside the range are clamped, not rejected.
const (
	MinPort = 1024
	MaxPort = 65535
)

const logSource = "server"

// Config is the programmatic configuration surface for a Server.
type Config struct {
	// Port is clamped to [MinPort, MaxPort] at construction.
	Port int

	// Root is the static content folder. When empty, file serving is
	// force-disabled regardless of ServeFiles.
	Root string

	// ServeFiles enables static file resolution for paths no route matches.
	ServeFiles bool

	// HomeDocument is served for the bare "/" path.
	HomeDocument string

	// Convert renders Markdown to HTML fragments. Defaults to the
	// [content.Unsupported] stub.
	Convert content.Converter
}

// Server owns the route table and the sequential accept loop.
//
// Requests are handled strictly one at a time: the next exchange is not
// accepted until the current handler returns. Registering routes while the
// loop runs requires external synchronization by the caller.
type Server struct {
	config   Config
	routes   *Routes
	listener Listener
	running  bool
}

// New builds a Server from cfg, clamping the port and seeding the built-in
// diagnostic routes. The /shutdown and /favicon.ico paths are dispatched
// ahead of the route table and cannot be shadowed by registration.
func New(cfg Config) *Server {
	if cfg.Port < MinPort {
		cfg.Port = MinPort
	}
	if cfg.Port > MaxPort {
		cfg.Port = MaxPort
	}
	if cfg.Root == "" {
		cfg.ServeFiles = false
	}
	if cfg.HomeDocument == "" {
		cfg.HomeDocument = content.DefaultHomeDocument
	}
	if cfg.Convert == nil {
		cfg.Convert = content.Unsupported
	}

	s := &Server{config: cfg, routes: NewRoutes(), listener: NewNetListener(cfg.Port)}
	s.routes.Register(pathSig, s.handleSig)
	s.routes.Register(pathTest, s.handleTest)
	return s
}

// WithListener replaces the transport, for embedding and tests.
func (s *Server) WithListener(l Listener) *Server {
	s.listener = l
	return s
}

// Register binds a handler in the route table. See [Routes.Register].
func (s *Server) Register(path string, handler Handler) bool {
	return s.routes.Register(path, handler)
}

// Port returns the clamped port the server binds.
func (s *Server) Port() int {
	return s.config.Port
}

// Run binds the listener and drives the accept loop until a cooperative
// shutdown. Returns [CodeStartupFailed] when the socket cannot be opened (the
// loop is never entered) and [CodeStopped] after a normal shutdown.
func (s *Server) Run() int {
	if err := s.listener.Start(); err != nil {
		logs.Errorf(logSource, "startup failed: %v", err)
		return CodeStartupFailed
	}

	logs.Infof(logSource, "listening on 127.0.0.1:%d", s.config.Port)

	s.running = true
	for s.running {
		ex, err := s.listener.Accept()
		if err != nil {
			// Listener torn down externally, equivalent to a stop flag.
			if !errors.Is(err, shared.ErrListenerClosed) {
				logs.Errorf(logSource, "accept failed: %v", err)
			}
			break
		}

		s.dispatch(ex)
		ex.Close()
	}

	s.listener.Stop()
	logs.Infof(logSource, "stopped")
	return CodeStopped
}

// Stop tears down the listener so the loop observes shutdown at its next
// accept. Cooperative only: an in-flight request still runs to completion.
func (s *Server) Stop() {
	s.listener.Stop()
}

// dispatch answers one exchange by strict precedence: shutdown, favicon,
// route table, static files, 404. Failures are contained here so one bad
// request never ends the loop.
func (s *Server) dispatch(ex *Exchange) {
	defer func() {
		if r := recover(); r != nil {
			logs.Errorf(logSource, "[%s] handler panic: %v", ex.ID, r)
			WriteError(ex, http.StatusInternalServerError)
		}
	}()

	path := ex.Path()

	switch path {
	case pathShutdown:
		// The triggering request gets a bare 200 before the loop winds down.
		s.running = false
		logs.Infof(logSource, "[%s] shutdown requested", ex.ID)
		WriteStatus(ex, http.StatusOK)
		return
	case pathFavicon:
		s.handleFavicon(ex)
		return
	}

	if h, ok := s.routes.Lookup(path); ok {
		if err := h(ex); err != nil {
			logs.Errorf(logSource, "[%s] handler failed on %s: %v", ex.ID, path, err)
			WriteError(ex, http.StatusInternalServerError)
		}
		return
	}

	if s.config.ServeFiles {
		s.serveStatic(ex, path)
		return
	}

	logs.Errorf(logSource, "[%s] no route for %s", ex.ID, ex.Request.URL.Path)
	WriteError(ex, http.StatusNotFound)
}

// serveStatic resolves path under the root folder and writes the file.
func (s *Server) serveStatic(ex *Exchange, path string) {
	fsPath := content.Resolve(path, s.config.Root, s.config.HomeDocument)

	body, ctype, err := content.Load(fsPath, s.config.Convert)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			logs.Errorf(logSource, "[%s] %v", ex.ID, err)
			WriteError(ex, http.StatusNotFound)
			return
		}
		logs.Errorf(logSource, "[%s] serving %s: %v", ex.ID, fsPath, err)
		WriteError(ex, http.StatusInternalServerError)
		return
	}

	write(ex, http.StatusOK, ctype, body)
}
