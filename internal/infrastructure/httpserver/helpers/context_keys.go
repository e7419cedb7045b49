package helpers

import (
	"github.com/labstack/echo/v4"

	"github.com/avatarctic/status-service/internal/core/domain/user"
)

type ctxKey string

const (
	keyCurrentUser  ctxKey = "current_user"
	keySessionToken ctxKey = "session_token"
)

func SetCurrentUser(c echo.Context, u *user.User) { c.Set(string(keyCurrentUser), u) }
func GetCurrentUserRaw(c echo.Context) (*user.User, bool) {
	v := c.Get(string(keyCurrentUser))
	u, ok := v.(*user.User)
	return u, ok
}

func SetSessionToken(c echo.Context, token string) { c.Set(string(keySessionToken), token) }
func GetSessionTokenRaw(c echo.Context) (string, bool) {
	v := c.Get(string(keySessionToken))
	s, ok := v.(string)
	return s, ok
}
