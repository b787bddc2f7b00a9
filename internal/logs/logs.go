// package logs implements the process-wide diagnostic hook the server emits
// events through.
//
// The default state has no subscribers, so events are dropped until the
// embedding application attaches one. Subscribers are invoked synchronously
// in registration order and every subscriber sees every non-blank message.
package logs

import (
	"fmt"
	"strings"
	"sync"
)

// Level classifies a hook event.
type Level string

const (
	Info  Level = "Info"
	Error Level = "Error"
)

// Subscriber receives every non-blank event published to the hook.
type Subscriber func(source, message string, level Level)

var (
	mu   sync.Mutex
	subs []Subscriber
)

// Subscribe attaches fn to the hook. Safe to call from the embedding
// application while a server loop is running.
func Subscribe(fn Subscriber) {
	if fn == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	subs = append(subs, fn)
}

// Reset detaches all subscribers, restoring the default no-op state.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	subs = nil
}

// Publish dispatches an event to every subscriber. Blank and whitespace-only
// messages are suppressed before dispatch.
func Publish(source, message string, level Level) {
	if strings.TrimSpace(message) == "" {
		return
	}

	mu.Lock()
	fns := make([]Subscriber, len(subs))
	copy(fns, subs)
	mu.Unlock()

	for _, fn := range fns {
		fn(source, message, level)
	}
}

// Infof publishes a formatted Info event.
func Infof(source, format string, args ...any) {
	Publish(source, fmt.Sprintf(format, args...), Info)
}

// Errorf publishes a formatted Error event.
func Errorf(source, format string, args ...any) {
	Publish(source, fmt.Sprintf(format, args...), Error)
}
