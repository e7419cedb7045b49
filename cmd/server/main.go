package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/avatarctic/status-service/configs"
	"github.com/avatarctic/status-service/internal/application/services"
	"github.com/avatarctic/status-service/internal/core/ports"
	"github.com/avatarctic/status-service/internal/infrastructure/db"
	"github.com/avatarctic/status-service/internal/infrastructure/health"
	"github.com/avatarctic/status-service/internal/infrastructure/httpserver"
	"github.com/avatarctic/status-service/internal/infrastructure/redis"
	"github.com/avatarctic/status-service/internal/infrastructure/repositories"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Setup logger
	logger := newLogger(&cfg.Log)

	// run owns every resource; exiting only after it returns lets its defers close them.
	if err := run(cfg, logger); err != nil {
		logger.WithError(err).Error("Server exited with error")
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *logrus.Logger) error {
	logger.Info("Starting status service...")

	database, err := db.NewDatabaseWithConfig(&cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer database.Close()

	if database.IsAlive(context.Background()) {
		logger.Info("Connected to database successfully")
		if cfg.Database.RunMigrations {
			if err := database.Migrate(cfg.Database.MigrationsPath); err != nil {
				logger.Warn("Failed to run migrations:", err)
			}
		}
	} else {
		logger.Warn("Database is not reachable; /status will report it as down")
	}

	// The cache owns its connection; closing it stops the probe and releases the client.
	cache := redis.NewRedisCache(redis.NewRedisClient(&cfg.Redis, logger), cfg.Redis.KeyPrefix, logger)
	defer cache.Close()

	if cache.IsAlive() {
		logger.Info("Connected to Redis successfully")
	} else {
		logger.Warn("Redis is not reachable; operations will fail fast until it is")
	}

	userRepo := repositories.NewUserRepository(database, logger)
	var statsRepo ports.StatsRepository = repositories.NewStatsRepository(database, logger)
	if cfg.Redis.StatsTTL > 0 {
		statsRepo = repositories.NewCachingStatsRepository(statsRepo, cache, cfg.Redis.StatsTTL, logger)
	}

	statusService := services.NewStatusService(cache, database, statsRepo, logger)
	userService := services.NewUserService(userRepo, logger)
	authService := services.NewAuthService(userRepo, cache, cfg.Session.TTL, logger)

	hcSlice := []ports.HealthChecker{health.NewDBHealthChecker(database), health.NewCacheHealthChecker(cache)}

	serverConfig := &httpserver.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		TLSCertFile:  cfg.Server.TLSCertFile,
		TLSKeyFile:   cfg.Server.TLSKeyFile,
		Environment:  cfg.Server.Environment,
	}

	deps := httpserver.ServerDeps{
		StatusService:  statusService,
		AuthService:    authService,
		UserService:    userService,
		HealthCheckers: hcSlice,
	}

	server := httpserver.NewServer(serverConfig, logger, deps)

	// Wait for interrupt signal or a server failure
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	return serve(server, quit, 10*time.Second, logger)
}

// httpServer is the part of *httpserver.Server that serve drives.
type httpServer interface {
	Start() error
	Shutdown(ctx context.Context) error
	Addr() string
}

// serve runs the server until a signal arrives on quit or Start fails, and
// returns instead of exiting so the caller's deferred teardown still runs.
func serve(server httpServer, quit <-chan os.Signal, shutdownTimeout time.Duration, logger *logrus.Logger) error {
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	logger.Infof("Server started on %s", server.Addr())

	select {
	case <-quit:
		logger.Info("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		logger.Info("Server exited")
		return nil
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		logger.Info("Server exited")
		return nil
	}
}

func newLogger(cfg *config.LogConfig) *logrus.Logger {
	logger := logrus.New()
	if cfg.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(level)
	}
	return logger
}
