package middleware

import (
	"net/http"

	"github.com/menezmethod/vitrina/internal/apierror"
	"github.com/menezmethod/vitrina/internal/auth"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

// Auth returns middleware that requires the named header to carry the
// shared secret. Other requests receive a 401 and never reach next.
func Auth(header string, secret *auth.Secret) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := secret.Validate(r.Header.Get(header)); err != nil {
				authRejections.Inc()
				apierror.Write(w, apierror.Unauthorized(apierror.MsgUnauthorized))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
