package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	impl "github.com/avatarctic/status-service/internal/application/services"
	"github.com/avatarctic/status-service/internal/core/domain/user"
	tmocks "github.com/avatarctic/status-service/test/mocks"
)

func TestCreateUser_MissingFields(t *testing.T) {
	svc := impl.NewUserService(&tmocks.UserRepositoryMock{}, nil)

	_, err := svc.CreateUser(context.Background(), &user.CreateUserRequest{Password: "x"})
	require.ErrorIs(t, err, user.ErrMissingEmail)

	_, err = svc.CreateUser(context.Background(), &user.CreateUserRequest{Email: "a@b.com"})
	require.ErrorIs(t, err, user.ErrMissingPassword)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	ur := &tmocks.UserRepositoryMock{GetByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
		return &user.User{Email: email}, nil
	}}
	svc := impl.NewUserService(ur, nil)

	_, err := svc.CreateUser(context.Background(), &user.CreateUserRequest{Email: "a@b.com", Password: "toto1234!"})
	require.ErrorIs(t, err, user.ErrAlreadyExists)
}

func TestCreateUser_LookupFailure(t *testing.T) {
	ur := &tmocks.UserRepositoryMock{GetByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
		return nil, errors.New("db down")
	}}
	svc := impl.NewUserService(ur, nil)

	_, err := svc.CreateUser(context.Background(), &user.CreateUserRequest{Email: "a@b.com", Password: "toto1234!"})
	require.Error(t, err)
	require.NotErrorIs(t, err, user.ErrAlreadyExists)
}

func TestCreateUser_Success(t *testing.T) {
	var stored *user.User
	ur := &tmocks.UserRepositoryMock{CreateFn: func(ctx context.Context, u *user.User) error {
		stored = u
		return nil
	}}
	svc := impl.NewUserService(ur, logrus.New())

	u, err := svc.CreateUser(context.Background(), &user.CreateUserRequest{Email: "ok@x.com", Password: "toto1234!"})
	require.NoError(t, err)
	require.Equal(t, "ok@x.com", u.Email)
	require.Same(t, stored, u)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("toto1234!")))
}
