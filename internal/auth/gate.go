// Package auth implements the shared-secret gate guarding the HTTP API.
//
// There is a single global secret and no per-key identity, rate limiting, or
// lockout. This mirrors the original deployment model; the only hardening
// added is a constant-time comparison.
package auth

import (
	"crypto/subtle"
	"errors"
)

// ErrInvalidKey is returned for any credential that does not match the
// configured secret, including an absent one.
var ErrInvalidKey = errors.New("invalid API key")

// Gate validates caller-supplied API keys.
type Gate struct {
	secret []byte
}

func NewGate(secret string) *Gate {
	return &Gate{secret: []byte(secret)}
}

// Authorize admits the request iff supplied exactly equals the configured
// secret. An empty supplied value (missing parameter) is always rejected.
func (g *Gate) Authorize(supplied string) error {
	if len(g.secret) == 0 {
		// Refuse everything rather than run open when no secret is configured.
		return ErrInvalidKey
	}
	if subtle.ConstantTimeCompare([]byte(supplied), g.secret) != 1 {
		return ErrInvalidKey
	}
	return nil
}
