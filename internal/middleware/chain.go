// Package middleware regroupe les middlewares HTTP de l'API.
package middleware

import "net/http"

// Middleware enveloppe un handler
type Middleware func(http.Handler) http.Handler

// Chain compose les middlewares, le premier est le plus externe
func Chain(mws ...Middleware) Middleware {
	return func(final http.Handler) http.Handler {
		for i := len(mws) - 1; i >= 0; i-- {
			final = mws[i](final)
		}
		return final
	}
}
