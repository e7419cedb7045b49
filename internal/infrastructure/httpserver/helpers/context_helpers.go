package helpers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/avatarctic/status-service/internal/core/domain/auth"
	"github.com/avatarctic/status-service/internal/core/domain/user"
)

// TokenHeader carries the session token issued by /connect.
const TokenHeader = "X-Token"

func GetTokenFromHeader(c echo.Context) (string, error) {
	token := strings.TrimSpace(c.Request().Header.Get(TokenHeader))
	if token == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	return token, nil
}

// GetCredentialsFromBasicAuth reads the email/password pair from an Authorization: Basic header.
func GetCredentialsFromBasicAuth(c echo.Context) (auth.Credentials, error) {
	email, password, ok := c.Request().BasicAuth()
	if !ok || email == "" {
		return auth.Credentials{}, echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	return auth.Credentials{Email: email, Password: password}, nil
}

// GetCurrentUserFromContext returns the acting user set by the token middleware
func GetCurrentUserFromContext(c echo.Context) (*user.User, error) {
	u, ok := GetCurrentUserRaw(c)
	if !ok || u == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	return u, nil
}

func GetSessionTokenFromContext(c echo.Context) (string, error) {
	s, ok := GetSessionTokenRaw(c)
	if !ok || s == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	return s, nil
}
