// Package jwt implements generation and parsing of the HS256 tokens used
// by the administrative API.
//
// Maker is the interface handed to the auth service; MakerImpl is the
// concrete implementation holding the signing secret and token TTL.
package jwt

import (
	"time"
)

// Maker describes token generation and parsing for admin sessions.
type Maker interface {
	// GenerateToken issues a signed token for the given admin email.
	GenerateToken(email string) (string, error)
	// ParseToken validates a token and returns its claims.
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl implements Maker with a shared secret and a token TTL.
type MakerImpl struct {
	secretKey string
	tokenTTL  time.Duration
}

// NewJWTMaker builds a MakerImpl from the signing secret and TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
