package ports

import (
	"context"

	"github.com/avatarctic/status-service/internal/core/domain/auth"
	"github.com/avatarctic/status-service/internal/core/domain/user"
)

// AuthService issues and resolves cache-backed session tokens.
type AuthService interface {
	Connect(ctx context.Context, creds auth.Credentials) (*auth.Session, error)
	Disconnect(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, token string) (*user.User, error)
}
