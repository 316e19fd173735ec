package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are carried by access tokens issued to client applications.
// The client username travels in the registered "sub" claim.
type Claims struct {
	Type string `json:"type"`
	jwt.RegisteredClaims
}

// TokenService issues and validates bearer tokens.
type TokenService interface {
	// GenerateAccessToken signs a token for the given subject.
	GenerateAccessToken(subject string) (string, error)

	// ValidateToken parses and verifies a token string.
	ValidateToken(tokenString string) (*Claims, error)

	// AccessTokenDuration returns how long issued tokens stay valid.
	AccessTokenDuration() time.Duration
}
