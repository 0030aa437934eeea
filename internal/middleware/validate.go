package middleware

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/menezmethod/vitrina/internal/apierror"
)

var validate = validator.New()

// Require returns middleware that rejects requests whose JSON body lacks a
// truthy value for any of fields. null, false, 0, "" and missing keys are
// not truthy; arrays and objects are, even when empty. It reads the body
// stored by JSONBody, so it must run after it.
func Require(message string, fields ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body := BodyFromContext(r.Context())
			for _, f := range fields {
				if err := validate.Var(body[f], "required"); err != nil {
					validationRejections.Inc()
					apierror.Write(w, apierror.InvalidRequest(message))
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
