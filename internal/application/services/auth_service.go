package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avatarctic/status-service/internal/core/domain/auth"
	"github.com/avatarctic/status-service/internal/core/domain/user"
	"github.com/avatarctic/status-service/internal/core/ports"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// AuthService keeps session tokens in the cache; the database only holds credentials.
type AuthService struct {
	userRepo   ports.UserRepository
	cache      ports.Cache
	sessionTTL time.Duration
	logger     *logrus.Logger
}

func NewAuthService(userRepo ports.UserRepository, cache ports.Cache, sessionTTL time.Duration, logger *logrus.Logger) ports.AuthService {
	return &AuthService{userRepo: userRepo, cache: cache, sessionTTL: sessionTTL, logger: logger}
}

func (s *AuthService) Connect(ctx context.Context, creds auth.Credentials) (*auth.Session, error) {
	if creds.Email == "" || creds.Password == "" {
		return nil, auth.ErrInvalidCredentials
	}

	found, err := s.userRepo.GetByEmail(ctx, creds.Email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, auth.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, auth.ErrInvalidCredentials
	}

	token := uuid.NewString()
	if err := s.cache.Set(ctx, auth.TokenKey(token), found.ID.String(), s.sessionTTL); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"user_id": found.ID}).Info("session started")
	}

	return &auth.Session{Token: token, UserID: found.ID}, nil
}

func (s *AuthService) Disconnect(ctx context.Context, token string) error {
	userID, err := s.resolve(ctx, token)
	if err != nil {
		return err
	}
	if err := s.cache.Delete(ctx, auth.TokenKey(token)); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"user_id": userID}).Info("session ended")
	}
	return nil
}

func (s *AuthService) CurrentUser(ctx context.Context, token string) (*user.User, error) {
	userID, err := s.resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, auth.ErrSessionNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *AuthService) resolve(ctx context.Context, token string) (uuid.UUID, error) {
	if token == "" {
		return uuid.Nil, auth.ErrSessionNotFound
	}
	raw, ok, err := s.cache.Get(ctx, auth.TokenKey(token))
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to read session: %w", err)
	}
	if !ok {
		return uuid.Nil, auth.ErrSessionNotFound
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, auth.ErrSessionNotFound
	}
	return id, nil
}
