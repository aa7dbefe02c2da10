package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdg-garage/canteen-api/internal/auth"
	"github.com/gdg-garage/canteen-api/internal/booking"
	"github.com/gdg-garage/canteen-api/internal/config"
	"github.com/gdg-garage/canteen-api/internal/database"
	"github.com/gdg-garage/canteen-api/internal/handlers"
	"github.com/gdg-garage/canteen-api/internal/lib/logger/logging"
	"github.com/gdg-garage/canteen-api/internal/lib/logger/sl"
	"github.com/gdg-garage/canteen-api/internal/metrics"
	"github.com/gdg-garage/canteen-api/internal/notifier"
	"github.com/gdg-garage/canteen-api/internal/storage/memory"
	"github.com/go-chi/chi/v5"
)

func main() {
	// Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := logging.New(os.Stdout, logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	logger.Info("starting application", slog.String("env", cfg.Env), slog.String("storage", cfg.Storage))

	if cfg.JWTSecret == "" {
		logger.Warn("JWT_SECRET is empty, tokens are signed with an empty key")
	}

	loc, err := cfg.Location()
	if err != nil {
		logger.Error("invalid timezone", sl.Err(err))
		os.Exit(1)
	}

	store, err := openStore(cfg)
	if err != nil {
		logger.Error("failed to open storage", sl.Err(err))
		os.Exit(1)
	}

	service := booking.New(logger, store, booking.WithLocation(loc))

	var discordNotifier notifier.Notifier
	session, err := notifier.NewDiscordSession(cfg.DiscordBotToken)
	if err != nil {
		logger.Info("Discord notifier not initialized", sl.Err(err))
	} else {
		discordNotifier = notifier.NewDiscordNotifier(session, cfg.DiscordNotificationsChannelID)
	}

	var m *metrics.Metrics
	if cfg.EnableMetrics {
		m = metrics.New()
	}

	authHandler := auth.NewAuthHandler(cfg, service)
	h := handlers.Handlers{
		Auth:        authHandler,
		Student:     handlers.NewStudentHandler(logger, service, authHandler),
		Canteen:     handlers.NewCanteenHandler(logger, service, authHandler, discordNotifier, m),
		Reservation: handlers.NewReservationHandler(logger, service, discordNotifier, m),
	}
	if m != nil {
		h.Metrics = m.Handler()
	}

	// Initialize Router
	r := chi.NewRouter()
	handlers.RegisterRoutes(r, h)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting server", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to start server", sl.Err(err))
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)

	sign := <-stop
	logger.Info("stopping application", slog.String("signal", sign.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("failed to stop server", sl.Err(err))
		return
	}
	logger.Info("application stopped")
}

func openStore(cfg *config.Config) (booking.Store, error) {
	if cfg.Storage == config.StorageSQLite {
		db, err := database.Connect(cfg)
		if err != nil {
			return nil, err
		}
		return database.NewStore(db), nil
	}
	return memory.New(), nil
}
