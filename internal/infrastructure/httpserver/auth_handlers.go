package httpserver

import (
	"errors"
	"net/http"

	"github.com/avatarctic/status-service/internal/core/domain/auth"
	"github.com/avatarctic/status-service/internal/core/ports"
	"github.com/avatarctic/status-service/internal/infrastructure/httpserver/helpers"
	"github.com/labstack/echo/v4"
)

// connect exchanges Basic credentials for a session token.
func (s *Server) connect(c echo.Context) error {
	creds, err := helpers.GetCredentialsFromBasicAuth(c)
	if err != nil {
		return err
	}

	sess, err := s.authSvc.Connect(c.Request().Context(), creds)
	if err != nil {
		return sessionError(err)
	}

	return c.JSON(http.StatusOK, sess)
}

func (s *Server) disconnect(c echo.Context) error {
	token, err := helpers.GetSessionTokenFromContext(c)
	if err != nil {
		return err
	}

	if err := s.authSvc.Disconnect(c.Request().Context(), token); err != nil {
		return sessionError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func sessionError(err error) error {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrSessionNotFound):
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, ports.ErrNotConnected):
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Cache unavailable").SetInternal(err)
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, internalServerError).SetInternal(err)
	}
}
