// Package auth checks the shared-secret token that guards mutating routes.
//
// There is one token for every client. It is not issued, does not expire
// and identifies nobody; holding it is the whole of authorization.
package auth

import (
	"crypto/subtle"
	"errors"
	"strings"
)

// ErrInvalidToken is returned when a token does not match the secret.
var ErrInvalidToken = errors.New("invalid token")

// Secret validates tokens against a single shared value.
type Secret struct {
	token []byte
}

// NewSecret creates a Secret. Surrounding whitespace is trimmed; an empty
// token is rejected so a misconfigured server cannot accept every request.
func NewSecret(token string) (*Secret, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errors.New("auth token must not be empty")
	}
	return &Secret{token: []byte(token)}, nil
}

// Validate checks whether token equals the secret.
func (s *Secret) Validate(token string) error {
	if token == "" || subtle.ConstantTimeCompare([]byte(token), s.token) != 1 {
		return ErrInvalidToken
	}
	return nil
}
