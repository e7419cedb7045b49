package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	impl "github.com/avatarctic/status-service/internal/application/services"
	"github.com/avatarctic/status-service/internal/core/domain/auth"
	"github.com/avatarctic/status-service/internal/core/domain/user"
	"github.com/avatarctic/status-service/internal/core/ports"
	tmocks "github.com/avatarctic/status-service/test/mocks"
)

func newUserRepoWith(t *testing.T, email, password string) (*tmocks.UserRepositoryMock, *user.User) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &user.User{ID: uuid.New(), Email: email, PasswordHash: string(hash)}
	repo := &tmocks.UserRepositoryMock{
		GetByEmailFn: func(ctx context.Context, e string) (*user.User, error) {
			if e == email {
				return u, nil
			}
			return nil, user.ErrNotFound
		},
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*user.User, error) {
			if id == u.ID {
				return u, nil
			}
			return nil, user.ErrNotFound
		},
	}
	return repo, u
}

func TestConnect_StoresTokenWithTTL(t *testing.T) {
	repo, u := newUserRepoWith(t, "bob@dylan.com", "toto1234!")
	cache := tmocks.NewCacheMock()
	svc := impl.NewAuthService(repo, cache, 24*time.Hour, nil)

	sess, err := svc.Connect(context.Background(), auth.Credentials{Email: "bob@dylan.com", Password: "toto1234!"})
	require.NoError(t, err)
	require.NotEmpty(t, sess.Token)

	key := auth.TokenKey(sess.Token)
	require.Equal(t, u.ID.String(), cache.Data[key])
	require.Equal(t, 24*time.Hour, cache.TTLs[key])
}

func TestConnect_BadCredentials(t *testing.T) {
	repo, _ := newUserRepoWith(t, "bob@dylan.com", "toto1234!")
	svc := impl.NewAuthService(repo, tmocks.NewCacheMock(), time.Hour, nil)

	_, err := svc.Connect(context.Background(), auth.Credentials{Email: "bob@dylan.com", Password: "wrong"})
	require.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = svc.Connect(context.Background(), auth.Credentials{Email: "nobody@x.com", Password: "toto1234!"})
	require.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestConnect_CacheDownFailsFast(t *testing.T) {
	repo, _ := newUserRepoWith(t, "bob@dylan.com", "toto1234!")
	cache := tmocks.NewCacheMock()
	cache.Alive = false
	svc := impl.NewAuthService(repo, cache, time.Hour, nil)

	_, err := svc.Connect(context.Background(), auth.Credentials{Email: "bob@dylan.com", Password: "toto1234!"})
	require.ErrorIs(t, err, ports.ErrNotConnected)
	require.Zero(t, cache.Calls)
}

func TestCurrentUserAndDisconnect(t *testing.T) {
	repo, u := newUserRepoWith(t, "bob@dylan.com", "toto1234!")
	cache := tmocks.NewCacheMock()
	svc := impl.NewAuthService(repo, cache, time.Hour, nil)
	ctx := context.Background()

	sess, err := svc.Connect(ctx, auth.Credentials{Email: "bob@dylan.com", Password: "toto1234!"})
	require.NoError(t, err)

	me, err := svc.CurrentUser(ctx, sess.Token)
	require.NoError(t, err)
	require.Equal(t, u.ID, me.ID)

	require.NoError(t, svc.Disconnect(ctx, sess.Token))
	require.Equal(t, []string{auth.TokenKey(sess.Token)}, cache.Deleted)

	_, err = svc.CurrentUser(ctx, sess.Token)
	require.ErrorIs(t, err, auth.ErrSessionNotFound)

	err = svc.Disconnect(ctx, sess.Token)
	require.ErrorIs(t, err, auth.ErrSessionNotFound)
}

func TestCurrentUser_EmptyToken(t *testing.T) {
	svc := impl.NewAuthService(&tmocks.UserRepositoryMock{}, tmocks.NewCacheMock(), time.Hour, nil)

	_, err := svc.CurrentUser(context.Background(), "")
	require.ErrorIs(t, err, auth.ErrSessionNotFound)
}
