// Package authflow captures an OAuth2 authorization code on the loopback
// server and exchanges it for a token.
//
// A [Flow] registers the provider's redirect path as a route, runs the accept
// loop, opens the system browser to the consent page, and delivers exactly
// one [Result] when the provider redirects back.
package authflow

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"golang.org/x/oauth2"

	"github.com/GrumpyCockatiel/miniserver/internal/logs"
	"github.com/GrumpyCockatiel/miniserver/internal/server"
	"github.com/GrumpyCockatiel/miniserver/internal/shared"
)

const logSource = "authflow"

// Result carries the outcome of one authorization flow.
type Result struct {
	Token *oauth2.Token
	err   error
}

func (r Result) Error() error {
	return r.err
}

// Flow runs a single authorization-code round trip on a [server.Server].
type Flow struct {
	config *oauth2.Config
	state  string
	srv    *server.Server

	results chan Result
	once    sync.Once

	// callbackHit guards against replayed redirects; dispatch is serialized
	// by the accept loop, so no lock is needed.
	callbackHit bool
}

// New builds a Flow for config. The state token should be random per flow;
// when blank, a generated id is used.
func New(cfg *oauth2.Config, state string, srv *server.Server) *Flow {
	if state == "" {
		state = shared.GenerateID()
	}
	return &Flow{config: cfg, state: state, srv: srv, results: make(chan Result, 1)}
}

// AuthURL returns the provider consent URL carrying this flow's state.
func (f *Flow) AuthURL() string {
	return f.config.AuthCodeURL(f.state)
}

// CallbackPath returns the local path the provider redirects back to, derived
// from the configured redirect URL.
func (f *Flow) CallbackPath() string {
	if u, err := url.Parse(f.config.RedirectURL); err == nil && u.Path != "" {
		return u.Path
	}
	return "/callback"
}

// Results exposes the result channel for embedders driving the server loop
// themselves. Exactly one Result is delivered, then the channel closes.
func (f *Flow) Results() <-chan Result {
	return f.results
}

// Register binds the callback route on the flow's server.
func (f *Flow) Register() bool {
	return f.srv.Register(f.CallbackPath(), f.handleCallback)
}

// Run drives the whole flow: it registers the callback, starts the server
// loop, opens the browser, and blocks until the flow completes or ctx is
// done. The server is stopped before Run returns.
func (f *Flow) Run(ctx context.Context) (*oauth2.Token, error) {
	if !f.Register() {
		return nil, fmt.Errorf("%w: cannot register callback route %q", shared.ErrInvalidInput, f.CallbackPath())
	}

	codes := make(chan int, 1)
	go func() { codes <- f.srv.Run() }()

	if err := shared.OpenBrowser(f.AuthURL()); err != nil {
		// The consent URL is still usable manually; surface it and keep waiting.
		logs.Errorf(logSource, "browser launch failed (%v); open %s manually", err, f.AuthURL())
	}

	select {
	case res := <-f.results:
		f.srv.Stop()
		<-codes
		if res.err != nil {
			return nil, res.err
		}
		return res.Token, nil

	case code := <-codes:
		if code == server.CodeStartupFailed {
			return nil, fmt.Errorf("%w: callback server did not start", shared.ErrStartupUnsupported)
		}
		return nil, fmt.Errorf("%w: server stopped before the provider redirected", shared.ErrAuthFailed)

	case <-ctx.Done():
		f.srv.Stop()
		<-codes
		return nil, fmt.Errorf("%w: %v", shared.ErrAuthFailed, ctx.Err())
	}
}

// handleCallback answers the provider redirect. Only the first callback is
// processed; replays get 400.
func (f *Flow) handleCallback(ex *server.Exchange) error {
	if f.callbackHit {
		server.WriteError(ex, http.StatusBadRequest)
		return nil
	}
	f.callbackHit = true

	q := ex.Request.URL.Query()

	if q.Get("state") != f.state {
		f.deliver(Result{err: fmt.Errorf("%w", shared.ErrStateMismatch)})
		server.WriteError(ex, http.StatusBadRequest)
		return nil
	}

	code := q.Get("code")
	if code == "" {
		f.deliver(Result{err: fmt.Errorf("%w: %s: %s", shared.ErrAuthFailed, q.Get("error"), q.Get("error_description"))})
		server.WriteError(ex, http.StatusBadRequest)
		return nil
	}

	token, err := f.config.Exchange(context.Background(), code)
	if err != nil {
		f.deliver(Result{err: fmt.Errorf("%w: token exchange: %v", shared.ErrAuthFailed, err)})
		server.WriteError(ex, http.StatusInternalServerError)
		return nil
	}

	f.deliver(Result{Token: token})
	server.WritePage(ex, "Authorization Successful",
		"<h1>Authorization successful</h1><p>You can close this window and return to the terminal.</p>")
	return nil
}

// deliver sends the result exactly once and closes the channel.
func (f *Flow) deliver(res Result) {
	f.once.Do(func() {
		f.results <- res
		close(f.results)
	})
}
