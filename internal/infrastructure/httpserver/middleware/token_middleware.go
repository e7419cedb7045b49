package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/status-service/internal/core/domain/auth"
	"github.com/avatarctic/status-service/internal/core/ports"
	"github.com/avatarctic/status-service/internal/infrastructure/httpserver/helpers"
)

type TokenMiddleware struct {
	authService ports.AuthService
	logger      *logrus.Logger
}

func NewTokenMiddleware(authService ports.AuthService, logger *logrus.Logger) *TokenMiddleware {
	return &TokenMiddleware{authService: authService, logger: logger}
}

// RequireToken resolves the X-Token header to a user and stores both on the context.
func (m *TokenMiddleware) RequireToken() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := helpers.GetTokenFromHeader(c)
			if err != nil {
				return err
			}

			u, err := m.authService.CurrentUser(c.Request().Context(), token)
			if err != nil {
				switch {
				case errors.Is(err, auth.ErrSessionNotFound):
					return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
				case errors.Is(err, ports.ErrNotConnected):
					return echo.NewHTTPError(http.StatusServiceUnavailable, "Cache unavailable")
				}
				if m.logger != nil {
					m.logger.WithFields(logrus.Fields{"ip": c.RealIP(), "path": c.Request().URL.Path}).WithError(err).Error("token resolution failed")
				}
				return echo.NewHTTPError(http.StatusInternalServerError, "Internal Server Error").SetInternal(err)
			}

			helpers.SetCurrentUser(c, u)
			helpers.SetSessionToken(c, token)

			if m.logger != nil {
				m.logger.WithFields(logrus.Fields{"user_id": u.ID}).Debug("session token validated")
			}

			return next(c)
		}
	}
}
