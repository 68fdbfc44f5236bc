// Package auth issues and verifies operator bearer tokens and hashes passwords.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// tokenAudience scopes tokens to the records API.
const tokenAudience = "donorbase-api"

// ErrInvalidToken is returned for any token that does not verify.
var ErrInvalidToken = errors.New("invalid token")

// JWTManager signs HS256 access tokens carrying the operator id and role.
type JWTManager struct {
	secret    []byte
	issuer    string
	accessTTL time.Duration
	now       func() time.Time
	parser    *jwt.Parser
}

// NewJWTManager expects a secret of at least 32 bytes; config validation
// enforces that before the manager is built.
func NewJWTManager(secret string, issuer string, accessTTL time.Duration) *JWTManager {
	m := &JWTManager{
		secret:    []byte(secret),
		issuer:    issuer,
		accessTTL: accessTTL,
		now:       time.Now,
	}
	m.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithAudience(tokenAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return m.now() }),
	)
	return m
}

type operatorClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role,omitempty"`
}

// GenerateAccessToken returns the signed token and its expiry.
func (m *JWTManager) GenerateAccessToken(userID uuid.UUID, role string) (string, time.Time, error) {
	issued := m.now()
	expires := issued.Add(m.accessTTL)

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, operatorClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID.String(),
			Issuer:    m.issuer,
			Audience:  jwt.ClaimStrings{tokenAudience},
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
		Role: role,
	}).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("auth.GenerateAccessToken: %w", err)
	}
	return signed, expires, nil
}

// ValidateAccessToken verifies signature, issuer, audience and expiry and
// returns the operator id and role. Every failure wraps ErrInvalidToken.
func (m *JWTManager) ValidateAccessToken(raw string) (uuid.UUID, string, error) {
	if raw == "" {
		return uuid.Nil, "", fmt.Errorf("%w: empty", ErrInvalidToken)
	}

	var claims operatorClaims
	if _, err := m.parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	}); err != nil {
		return uuid.Nil, "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("%w: subject: %w", ErrInvalidToken, err)
	}
	return userID, claims.Role, nil
}
