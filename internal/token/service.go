// Package token mints and verifies the HS256 access tokens handed to the
// session clients.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mbongo-pay/mbongo_pay/internal/identity"
)

// ErrInvalidToken covers every verification failure: bad signature, expired,
// malformed claims.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the token payload. TokenVersion lets logout invalidate tokens
// that are otherwise still within their lifetime.
type Claims struct {
	UserType     string `json:"userType,omitempty"`
	TokenVersion int    `json:"ver"`
	jwt.RegisteredClaims
}

// Service signs and verifies access tokens.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService builds a token service for the given signing secret and lifetime.
func NewService(secret string, ttl time.Duration) *Service {
	return &Service{secret: []byte(secret), ttl: ttl}
}

// Issue signs an access token for the user.
func (s *Service) Issue(user identity.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserType:     user.UserType,
		TokenVersion: user.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// TTL reports the configured token lifetime.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Verify parses and validates a token string and returns its claims.
func (s *Service) Verify(tokenStr string) (Claims, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return Claims{}, ErrInvalidToken
	}
	if claims.Subject == "" {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}
