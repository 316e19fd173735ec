// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"exposure/config"
	"exposure/internal/domain/service"
	"exposure/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const accessTokenType = "access"

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret    []byte        // Secret key for signing access tokens.
	accessTTL time.Duration // Time-to-live for access tokens.
	issuer    string
	now       func() time.Time
}

// NewJWTService is the constructor for jwtService.
// Auth is optional: without an auth section a service with a random secret is
// returned so that handlers can be wired unconditionally.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.Auth == nil || !cfg.Auth.Enabled {
		return newJWTService(uuid.NewString(), time.Hour, cfg.Env.ServiceName), nil
	}
	if cfg.Auth.Secret == "" {
		return nil, errors.New("auth secret must be provided when auth is enabled")
	}

	return newJWTService(cfg.Auth.Secret, cfg.Auth.TokenTTL, cfg.Env.ServiceName), nil
}

func newJWTService(secret string, ttl time.Duration, issuer string) *jwtService {
	return &jwtService{
		secret:    []byte(secret),
		accessTTL: ttl,
		issuer:    issuer,
		now:       time.Now,
	}
}

// GenerateAccessToken creates a signed HS256 access token for subject.
func (s *jwtService) GenerateAccessToken(subject string) (string, error) {
	now := s.now()
	claims := &service.Claims{
		Type: accessTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "sign access token")
	}

	return signed, nil
}

// ValidateToken checks the signature, expiry and type of tokenString.
func (s *jwtService) ValidateToken(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, errors.Wrap(err, "parse access token")
	}
	if claims.Type != accessTokenType {
		return nil, errors.Errorf("unexpected token type %q", claims.Type)
	}

	return claims, nil
}

// AccessTokenDuration returns the configured duration for access tokens.
func (s *jwtService) AccessTokenDuration() time.Duration {
	return s.accessTTL
}
