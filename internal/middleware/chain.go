// Package middleware provides the HTTP stages every request passes through
// before reaching a product handler: request IDs, panic recovery, metrics,
// request logging, JSON body decoding, token auth and presence validation.
package middleware

import "net/http"

// Middleware wraps an http.Handler with additional behavior.
type Middleware func(http.Handler) http.Handler

// Chain composes middleware in the order given. The first middleware
// in the list is the outermost (runs first on request, last on response).
//
//	Chain(handler, Logging(l), Auth(h, s), Require(msg, "name"))
//	// Request order:  logging → auth → require → handler
//	// Response order: handler → require → auth → logging
func Chain(h http.Handler, mw ...Middleware) http.Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return h
}
