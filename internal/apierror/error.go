// Package apierror provides the API's error type, the JSON error envelope
// and the terminal stage that turns handler errors into responses.
//
// Every failure the API reports has the shape
//
//	{"success": false, "message": "..."}
package apierror

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// Messages shared between the middleware and handlers.
const (
	MsgNotFound     = "Product not found"
	MsgUnauthorized = "Unauthorized - missing or invalid token"
	MsgRequired     = "Name and price are required"
	MsgServer       = "Server Error"
)

// Error is an API error carrying the HTTP status to respond with.
type Error struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// envelope is the failure response body.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Write sends an Error as a JSON HTTP response.
func Write(w http.ResponseWriter, err *Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Status)

	if encErr := json.NewEncoder(w).Encode(envelope{Success: false, Message: err.Message}); encErr != nil {
		slog.Error("failed to encode error response", "err", encErr)
	}
}

// From classifies err. An *Error anywhere in the chain is returned as is;
// anything else becomes a 500 carrying err's message.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		if e.Status == 0 {
			return &Error{Status: http.StatusInternalServerError, Message: messageOr(e.Message)}
		}
		return e
	}
	if err == nil {
		return Internal(MsgServer)
	}
	return Internal(messageOr(err.Error()))
}

func messageOr(msg string) string {
	if msg == "" {
		return MsgServer
	}
	return msg
}

// HandlerFunc is an HTTP handler that reports failure by returning an error
// instead of writing it.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Handle adapts fn to http.Handler. Any error fn returns is logged and
// written as the JSON error envelope.
func Handle(logger *slog.Logger, fn HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}
		e := From(err)
		logger.Error("request failed",
			"err", err,
			"status", e.Status,
			"method", r.Method,
			"path", r.URL.Path,
		)
		Write(w, e)
	})
}

// NotFound returns a 404 error.
func NotFound(msg string) *Error {
	return &Error{Status: http.StatusNotFound, Message: msg}
}

// Unauthorized returns a 401 error.
func Unauthorized(msg string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: msg}
}

// InvalidRequest returns a 400 error for malformed or incomplete requests.
func InvalidRequest(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: msg}
}

// TooLarge returns a 413 error for request bodies over the configured limit.
func TooLarge() *Error {
	return &Error{Status: http.StatusRequestEntityTooLarge, Message: "request entity too large"}
}

// Internal returns a 500 error for unexpected server failures.
func Internal(msg string) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: msg}
}
