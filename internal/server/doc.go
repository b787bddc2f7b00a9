// Package server implements a loopback-only HTTP server meant to be embedded
// inside another application, primarily to intercept a redirect callback and
// secondarily to serve a small static or Markdown site from a local folder.
//
// # Dispatch
//
// The [Server.Run] loop accepts one request at a time and answers it by
// strict precedence: the reserved /shutdown path, the reserved /favicon.ico
// path, the route table, static files under the configured root, then 404.
//
// Reserved paths are dispatched before the route table is consulted, so user
// registrations for them are accepted but never reached.
//
// # Concurrency
//
// Handling is fully serialized: request N+1 is not dispatched until request
// N's handler returns, and the only suspension point is the block awaiting
// the next exchange. This is a deliberate constraint, not an oversight; the
// server's niche (a localhost callback catcher) makes a single worker
// sufficient. Callers registering routes while the loop runs must supply
// their own synchronization.
//
// # Failure containment
//
// Handler errors and panics are caught at the loop boundary, published to the
// [logs] hook, and converted to a 500 response. A failure in one request
// never terminates the loop.
//
// # Listener
//
// The [Listener] interface is the platform capability that accepts
// connections and parses HTTP. The net/http-backed implementation serializes
// transport goroutines through an unbuffered channel; custom implementations
// hand requests to the loop with [NewExchange] and wait on [Exchange.Done].
package server
