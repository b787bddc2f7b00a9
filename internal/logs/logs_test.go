package logs

import (
	"fmt"
	"testing"
)

func TestHook(t *testing.T) {
	t.Cleanup(Reset)

	t.Run("fan out in registration order", func(t *testing.T) {
		Reset()
		var seen []string
		Subscribe(func(source, message string, level Level) {
			seen = append(seen, fmt.Sprintf("first:%s:%s:%s", source, message, level))
		})
		Subscribe(func(source, message string, level Level) {
			seen = append(seen, fmt.Sprintf("second:%s:%s:%s", source, message, level))
		})

		Publish("server", "hello", Info)

		if len(seen) != 2 {
			t.Fatalf("expected 2 deliveries, got %d", len(seen))
		}
		if seen[0] != "first:server:hello:Info" {
			t.Errorf("unexpected first delivery: %s", seen[0])
		}
		if seen[1] != "second:server:hello:Info" {
			t.Errorf("unexpected second delivery: %s", seen[1])
		}
	})

	t.Run("blank messages are suppressed", func(t *testing.T) {
		Reset()
		calls := 0
		Subscribe(func(source, message string, level Level) { calls++ })

		Publish("server", "", Info)
		Publish("server", "   \t\n", Error)

		if calls != 0 {
			t.Errorf("expected no deliveries for blank messages, got %d", calls)
		}
	})

	t.Run("nil subscriber is ignored", func(t *testing.T) {
		Reset()
		Subscribe(nil)
		Publish("server", "still fine", Info)
	})

	t.Run("reset restores the no-op default", func(t *testing.T) {
		Reset()
		calls := 0
		Subscribe(func(source, message string, level Level) { calls++ })
		Reset()

		Publish("server", "dropped", Error)

		if calls != 0 {
			t.Errorf("expected no deliveries after Reset, got %d", calls)
		}
	})

	t.Run("formatted helpers publish with level", func(t *testing.T) {
		Reset()
		var gotMessage string
		var gotLevel Level
		Subscribe(func(source, message string, level Level) {
			gotMessage = message
			gotLevel = level
		})

		Errorf("server", "failed after %d tries", 3)

		if gotMessage != "failed after 3 tries" {
			t.Errorf("unexpected message: %s", gotMessage)
		}
		if gotLevel != Error {
			t.Errorf("expected Error level, got %s", gotLevel)
		}
	})
}
