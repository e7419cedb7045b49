package auth

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionNotFound    = errors.New("session not found")
)

// TokenKeyPrefix namespaces session tokens in the cache.
const TokenKeyPrefix = "auth_"

// Credentials are the email/password pair presented on connect.
type Credentials struct {
	Email    string
	Password string
}

// Session is an issued token bound to a user.
type Session struct {
	Token  string    `json:"token"`
	UserID uuid.UUID `json:"-"`
}

// TokenKey returns the cache key that stores token's owner.
func TokenKey(token string) string {
	return TokenKeyPrefix + token
}
