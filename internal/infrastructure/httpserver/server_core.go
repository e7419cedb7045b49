package httpserver

import (
	"time"

	"github.com/avatarctic/status-service/internal/core/ports"
	customMiddleware "github.com/avatarctic/status-service/internal/infrastructure/httpserver/middleware"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	TLSCertFile  string
	TLSKeyFile   string
	Environment  string
}

type ServerDeps struct {
	StatusService  ports.StatusService
	AuthService    ports.AuthService
	UserService    ports.UserService
	HealthCheckers []ports.HealthChecker
}

type Server struct {
	echo           *echo.Echo
	config         *ServerConfig
	logger         *logrus.Logger
	statusSvc      ports.StatusService
	authSvc        ports.AuthService
	userService    ports.UserService
	middleware     *customMiddleware.MiddlewareCollection
	healthCheckers []ports.HealthChecker
}

func NewServer(serverConfig *ServerConfig, logger *logrus.Logger, deps ServerDeps) *Server {
	e := echo.New()
	e.HideBanner = true

	server := &Server{
		echo:           e,
		config:         serverConfig,
		logger:         logger,
		statusSvc:      deps.StatusService,
		authSvc:        deps.AuthService,
		userService:    deps.UserService,
		healthCheckers: deps.HealthCheckers,
		middleware: customMiddleware.NewMiddlewareCollection(
			deps.AuthService,
			logger,
			requestsTotal,
			requestDuration,
		),
	}

	e.HTTPErrorHandler = server.errorHandler

	server.setupMiddleware()
	server.setupRoutes()

	return server
}
