package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/menezmethod/vitrina/internal/apierror"
)

const bodyContextKey contextKey = "json_body"

var errTrailingData = errors.New("unexpected data after top-level value")

// JSONBody returns middleware that decodes an application/json request body
// into a JSON object and stores it in the request context. Requests without
// a JSON content type, or with an empty body, get an empty object. Malformed
// JSON is rejected with a 400 and bodies over maxBytes with a 413.
func JSONBody(maxBytes int64) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body := map[string]any{}

			if isJSON(r.Header.Get("Content-Type")) && r.Body != nil {
				if err := decodeBody(http.MaxBytesReader(w, r.Body, maxBytes), &body); err != nil {
					var tooLarge *http.MaxBytesError
					if errors.As(err, &tooLarge) {
						apierror.Write(w, apierror.TooLarge())
						return
					}
					apierror.Write(w, apierror.InvalidRequest("Invalid JSON in request body: "+err.Error()))
					return
				}
				if body == nil {
					// A literal null decodes to a nil map.
					body = map[string]any{}
				}
			}

			ctx := context.WithValue(r.Context(), bodyContextKey, body)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BodyFromContext returns the decoded JSON object stored by JSONBody, or an
// empty map if there is none.
func BodyFromContext(ctx context.Context) map[string]any {
	body, ok := ctx.Value(bodyContextKey).(map[string]any)
	if !ok || body == nil {
		return map[string]any{}
	}
	return body
}

// decodeBody decodes exactly one JSON value from rd into body. An empty
// stream leaves body untouched; anything after the value is an error.
func decodeBody(rd io.Reader, body *map[string]any) error {
	dec := json.NewDecoder(rd)
	if err := dec.Decode(body); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return err
		}
		return errTrailingData
	}
	return nil
}

func isJSON(contentType string) bool {
	if contentType == "" {
		return false
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == "application/json"
}
