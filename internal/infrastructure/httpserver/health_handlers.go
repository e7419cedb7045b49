package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/avatarctic/status-service/internal/core/ports"
)

const healthCheckTimeout = 2 * time.Second

// dependencyHealth is one dependency's entry in the /health report.
type dependencyHealth struct {
	Status string `json:"status"`
	State  string `json:"state,omitempty"`
	Error  string `json:"error,omitempty"`
}

type healthReport struct {
	Status       string                      `json:"status"`
	Service      string                      `json:"service"`
	Timestamp    string                      `json:"timestamp"`
	Dependencies map[string]dependencyHealth `json:"dependencies"`
}

// healthCheck runs every checker. Any failing dependency makes the service
// degraded and the response 503.
func (s *Server) healthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	report := healthReport{
		Status:       "healthy",
		Service:      "status-service",
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		Dependencies: make(map[string]dependencyHealth, len(s.healthCheckers)),
	}

	for _, hc := range s.healthCheckers {
		if hc == nil {
			continue
		}
		dep := dependencyHealth{Status: "healthy"}
		if err := hc.Check(ctx); err != nil {
			dep.Status = "unhealthy"
			dep.Error = err.Error()
			report.Status = "degraded"
		}
		if sr, ok := hc.(ports.StateReporter); ok {
			dep.State = sr.State()
		}
		report.Dependencies[hc.Name()] = dep
	}

	code := http.StatusOK
	if report.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, report)
}
