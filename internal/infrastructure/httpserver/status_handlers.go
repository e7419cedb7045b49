package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// getStatus reports cache and database liveness.
func (s *Server) getStatus(c echo.Context) error {
	st, err := s.statusSvc.GetStatus(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, internalServerError).SetInternal(err)
	}
	return c.JSON(http.StatusOK, st)
}

// getStats reports the user and file counts.
func (s *Server) getStats(c echo.Context) error {
	stats, err := s.statusSvc.GetStats(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, internalServerError).SetInternal(err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (s *Server) getReport(c echo.Context) error {
	report, err := s.statusSvc.GetReport(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, internalServerError).SetInternal(err)
	}
	return c.JSON(http.StatusOK, report)
}
