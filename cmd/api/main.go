package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"motorent/internal/api"
	"motorent/internal/config"
	"motorent/internal/database"
	"motorent/internal/events"
	"motorent/internal/export"
	"motorent/internal/logging"
	"motorent/internal/metrics"
	"motorent/internal/models"
	"motorent/internal/repository"
	"motorent/internal/service"
	"motorent/internal/worker"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func(c io.Closer) { _ = c.Close() })(closer)
	}

	db, err := database.New(cfg.Database.Path, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessionRepo := initSessionRepository(ctx, cfg, logger)
	sessions := service.NewSessionService(sessionRepo, time.Duration(cfg.Sessions.TTLSeconds)*time.Second)

	eventBus := events.NewBus(logger)
	events.LoggingSubscriber(eventBus, logger)

	rentalService := service.NewRentalService(db, eventBus, logger, cfg.Rental.MaxRentalDays, cfg.Rental.MaxAdvanceDays)
	carService := service.NewCarService(db, eventBus, logger)
	userService := service.NewUserService(db, eventBus, logger)
	exporter := export.NewExporter(rentalService, carService, userService, cfg.Exports.Path, logger)

	if err := bootstrapAdmin(ctx, cfg, db, userService, logger); err != nil {
		return err
	}

	metrics.Register()
	if cfg.Monitoring.PrometheusEnabled {
		go servePrometheus(cfg.Monitoring.PrometheusPort, logger)
	}

	if cfg.Backup.Enabled {
		backupService := database.NewBackupService(cfg.Database.Path, cfg.Backup, logger)
		go backupService.Start(ctx)
	}

	sweepInterval, err := time.ParseDuration(cfg.Rental.SweepInterval)
	if err != nil {
		logger.Warn().Err(err).Str("interval", cfg.Rental.SweepInterval).Msg("bad sweep interval, using 1h")
		sweepInterval = time.Hour
	}
	sweeper := worker.NewSweeper(rentalService, db, sweepInterval, logger)
	go sweeper.Start(ctx)

	server := api.NewServer(cfg, logger, rentalService, carService, userService, sessions, exporter)
	go func() {
		if err := server.Start(); err != nil {
			logger.Error().Err(err).Msg("HTTP server error")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func loadConfigAndLogger() (*config.Config, *zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, err
	}

	logger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, logger, closer, nil
}

// initSessionRepository prefers redis and degrades to the in-memory
// store when it is not configured or unreachable.
func initSessionRepository(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) *repository.FailoverSessionRepository {
	ttl := time.Duration(cfg.Sessions.TTLSeconds) * time.Second
	fallback := repository.NewMemorySessionRepository(ttl)

	client := repository.NewRedisClient(cfg.Redis)
	primary := repository.NewRedisSessionRepository(client, ttl)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := repository.Ping(pingCtx, client); err != nil {
		logger.Warn().Err(err).Str("address", cfg.Redis.Address).Msg("redis unavailable, sessions start in memory")
	} else {
		logger.Info().Str("address", cfg.Redis.Address).Msg("redis connected")
	}

	return repository.NewFailoverSessionRepository(primary, fallback, logger)
}

// bootstrapAdmin ensures the configured admin account exists so a
// fresh deployment is administrable.
func bootstrapAdmin(ctx context.Context, cfg *config.Config, db *database.DB, users *service.UserService, logger *zerolog.Logger) error {
	if cfg.Bootstrap.AdminEmail == "" {
		return nil
	}

	if _, err := db.GetUserByEmail(ctx, cfg.Bootstrap.AdminEmail); err == nil {
		return nil
	} else if !errors.Is(err, database.ErrNotFound) {
		return err
	}

	name := cfg.Bootstrap.AdminName
	if name == "" {
		name = "Administrator"
	}
	user, err := users.Register(ctx, name, cfg.Bootstrap.AdminEmail, cfg.Bootstrap.AdminPassword, "")
	if err != nil {
		return fmt.Errorf("failed to bootstrap admin: %w", err)
	}
	if err := db.UpdateUserRole(ctx, user.ID, models.RoleAdmin); err != nil {
		return fmt.Errorf("failed to promote bootstrap admin: %w", err)
	}

	logger.Info().Str("email", user.Email).Msg("bootstrap admin created")
	return nil
}

func servePrometheus(port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	addr := fmt.Sprintf(":%d", port)
	logger.Info().Str("addr", addr).Msg("prometheus metrics listening")
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error().Err(err).Msg("prometheus server error")
	}
}
