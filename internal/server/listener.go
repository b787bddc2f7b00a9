package server

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/GrumpyCockatiel/miniserver/internal/shared"
)

// Exchange pairs one parsed request with its response writer. The accept loop
// owns an Exchange from Accept until Close; Close releases the transport
// goroutine waiting to finish the response.
type Exchange struct {
	Request *http.Request
	Writer  http.ResponseWriter

	// ID correlates the log lines emitted while this request is in flight.
	ID string

	once sync.Once
	done chan struct{}
}

// NewExchange builds an Exchange for a request/response pair. Custom
// [Listener] implementations use this to hand requests to the accept loop.
func NewExchange(w http.ResponseWriter, r *http.Request) *Exchange {
	return &Exchange{Request: r, Writer: w, ID: shared.ShortID(), done: make(chan struct{})}
}

// Path returns the lowercased request path used for dispatch.
func (ex *Exchange) Path() string {
	return strings.ToLower(ex.Request.URL.Path)
}

// Close completes the exchange. Idempotent.
func (ex *Exchange) Close() {
	ex.once.Do(func() { close(ex.done) })
}

// Done is closed when the accept loop has finished with the exchange.
func (ex *Exchange) Done() <-chan struct{} {
	return ex.done
}

// Listener is the platform capability that accepts connections and parses
// HTTP. Start binds the socket, Accept blocks until the next request/response
// pair is available, and Stop unbinds. Implementations deliver at most one
// in-flight Exchange at a time.
type Listener interface {
	Start() error
	Accept() (*Exchange, error)
	Stop() error
}

// netListener implements Listener on net/http. Handler goroutines park on an
// unbuffered channel, so requests reach the accept loop strictly one at a
// time even though the transport accepts connections concurrently.
type netListener struct {
	addr string
	ln   net.Listener
	srv  *http.Server

	exchanges chan *Exchange
	closed    chan struct{}
	stopOnce  sync.Once
}

// NewNetListener binds the loopback interface on port. A single TCP bind
// serves both the localhost name and the literal loopback address.
func NewNetListener(port int) Listener {
	return newNetListener(fmt.Sprintf("127.0.0.1:%d", port))
}

func newNetListener(addr string) *netListener {
	return &netListener{
		addr:      addr,
		exchanges: make(chan *Exchange),
		closed:    make(chan struct{}),
	}
}

// Start opens the listening socket. Failure is wrapped in
// [shared.ErrStartupUnsupported] so the loop can abort before starting.
func (l *netListener) Start() error {
	ln, err := net.Listen("tcp", l.addr)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrStartupUnsupported, err)
	}

	l.ln = ln
	l.srv = &http.Server{Handler: http.HandlerFunc(l.bridge)}
	go l.srv.Serve(ln)
	return nil
}

// bridge hands the request to the accept loop and holds the transport
// goroutine until the loop closes the exchange.
func (l *netListener) bridge(w http.ResponseWriter, r *http.Request) {
	ex := NewExchange(w, r)
	select {
	case l.exchanges <- ex:
		<-ex.done
	case <-l.closed:
		w.WriteHeader(http.StatusServiceUnavailable)
	}
}

// Accept blocks until the next exchange, or fails with
// [shared.ErrListenerClosed] after Stop.
func (l *netListener) Accept() (*Exchange, error) {
	select {
	case ex := <-l.exchanges:
		return ex, nil
	case <-l.closed:
		return nil, shared.ErrListenerClosed
	}
}

// Stop unbinds the socket and releases any parked transport goroutines.
// Idempotent.
func (l *netListener) Stop() error {
	var err error
	l.stopOnce.Do(func() {
		close(l.closed)
		if l.srv != nil {
			err = l.srv.Close()
		}
	})
	return err
}
