package httpserver

import (
	"errors"
	"net/http"

	"github.com/avatarctic/status-service/internal/core/domain/user"
	"github.com/avatarctic/status-service/internal/infrastructure/httpserver/helpers"
	"github.com/labstack/echo/v4"
)

func (s *Server) createUser(c echo.Context) error {
	var req user.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	u, err := s.userService.CreateUser(c.Request().Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrMissingEmail):
			return echo.NewHTTPError(http.StatusBadRequest, "Missing email")
		case errors.Is(err, user.ErrMissingPassword):
			return echo.NewHTTPError(http.StatusBadRequest, "Missing password")
		case errors.Is(err, user.ErrAlreadyExists):
			return echo.NewHTTPError(http.StatusBadRequest, "Already exist")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, internalServerError).SetInternal(err)
	}

	return c.JSON(http.StatusCreated, u.Public())
}

func (s *Server) getMe(c echo.Context) error {
	u, err := helpers.GetCurrentUserFromContext(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u.Public())
}
