package server

import "strings"

// Handler answers one dispatched request. A non-nil error is caught at the
// loop boundary and converted to a 500 response.
type Handler func(ex *Exchange) error

// Routes maps normalized paths to handlers.
//
// Mutation is not synchronized: registering routes from another goroutine
// while a loop is dispatching requires external synchronization by the
// caller.
type Routes struct {
	entries map[string]Handler
}

// NewRoutes creates an empty route table.
func NewRoutes() *Routes {
	return &Routes{entries: make(map[string]Handler)}
}

// Normalize trims a path, lowercases it, and forces a single leading slash.
func Normalize(path string) string {
	p := strings.ToLower(strings.TrimSpace(path))
	return "/" + strings.TrimLeft(p, "/")
}

// Register binds handler to the normalized path, replacing any existing
// binding in place. Returns false for a blank path or nil handler.
func (rt *Routes) Register(path string, handler Handler) bool {
	if strings.TrimSpace(path) == "" || handler == nil {
		return false
	}
	rt.entries[Normalize(path)] = handler
	return true
}

// Lookup finds the handler bound to an already-normalized path.
func (rt *Routes) Lookup(path string) (Handler, bool) {
	h, ok := rt.entries[path]
	return h, ok
}

// Len reports the number of registered routes.
func (rt *Routes) Len() int {
	return len(rt.entries)
}
