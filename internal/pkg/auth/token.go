// Package auth issues and verifies the signed bearer tokens that carry a
// user's identity between requests. Tokens are HS256-signed JWTs holding the
// user id and role; everything else about the user stays in the database.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/user"
)

var (
	ErrSecretIsRequired = errors.New("token secret is required")

	// ErrTokenInvalid covers expired, malformed and badly signed tokens
	// alike; the caller only needs to know the bearer is not authenticated.
	ErrTokenInvalid = errors.New("token is invalid")
)

// Identity is the authenticated caller extracted from a verified token.
type Identity struct {
	UserID kernel.UUID
	Role   user.Role
}

type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies bearer tokens with a shared HS256 secret.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates a token manager. The secret must not be empty; the
// ttl bounds how long an issued token stays valid.
func NewTokenManager(secret string, ttl time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, ErrSecretIsRequired
	}

	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
	}, nil
}

// Issue creates a signed token for the given user.
func (m *TokenManager) Issue(userID kernel.UUID, role user.Role) (string, error) {
	if err := userID.Validate(); err != nil {
		return "", err
	}
	if err := role.Validate(); err != nil {
		return "", err
	}

	now := time.Now().UTC()
	claims := tokenClaims{
		Role: role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Parse verifies a token and extracts the caller's identity.
// Returns ErrTokenInvalid for anything that is not a currently valid token
// signed with this manager's secret.
func (m *TokenManager) Parse(tokenString string) (Identity, error) {
	var claims tokenClaims

	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, ErrTokenInvalid
	}

	userID, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return Identity{}, ErrTokenInvalid
	}

	role, err := user.RoleFromString(claims.Role)
	if err != nil {
		return Identity{}, ErrTokenInvalid
	}

	return Identity{
		UserID: userID,
		Role:   role,
	}, nil
}
