// package testing contains shared testing utilities
package testing

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/GrumpyCockatiel/miniserver/internal/server"
	"github.com/GrumpyCockatiel/miniserver/internal/shared"
)

// MockListener is a test double for [server.Listener] that feeds hand-built
// exchanges to an accept loop.
type MockListener struct {
	StartErr  error
	Exchanges chan *server.Exchange
	Stopped   bool

	once sync.Once
}

// NewMockListener creates a MockListener ready to pass to
// [server.Server.WithListener].
func NewMockListener() *MockListener {
	return &MockListener{Exchanges: make(chan *server.Exchange)}
}

func (l *MockListener) Start() error {
	return l.StartErr
}

func (l *MockListener) Accept() (*server.Exchange, error) {
	ex, ok := <-l.Exchanges
	if !ok {
		return nil, shared.ErrListenerClosed
	}
	return ex, nil
}

func (l *MockListener) Stop() error {
	l.once.Do(func() {
		l.Stopped = true
		close(l.Exchanges)
	})
	return nil
}

// Send dispatches one request through the loop and returns the recorder once
// the exchange completes.
func (l *MockListener) Send(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	ex := server.NewExchange(rec, req)
	l.Exchanges <- ex
	<-ex.Done()
	return rec
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}
