package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token errors, distinguished so the transport can report why a caller was
// rejected without leaking anything else.
var (
	ErrMissingToken = errors.New("token is missing")
	ErrExpiredToken = errors.New("token has expired")
	ErrInvalidToken = errors.New("invalid token")
)

// Claims defines the JWT claims structure.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Manager signs and verifies bearer tokens with a shared secret. The secret
// is injected at construction; it is loaded once at startup and never
// rotated at runtime.
type Manager struct {
	secret   []byte
	validity time.Duration
}

// NewManager creates a Manager issuing tokens valid for the given duration.
func NewManager(secret string, validity time.Duration) *Manager {
	return &Manager{secret: []byte(secret), validity: validity}
}

// Generate creates a new signed token for a user id.
func (m *Manager) Generate(userID string) (string, error) {
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.validity)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Resolve verifies a token string and returns the user id it encodes.
func (m *Manager) Resolve(tokenStr string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", ErrInvalidToken
	}
	if !token.Valid {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}
