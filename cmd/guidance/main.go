package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/digital-guidance/guidance-api/internal/app"
	"github.com/digital-guidance/guidance-api/internal/auth"
	"github.com/digital-guidance/guidance-api/internal/carousel"
	"github.com/digital-guidance/guidance-api/internal/feedback"
	"github.com/digital-guidance/guidance-api/internal/observability"
	"github.com/digital-guidance/guidance-api/internal/platform/db"
	"github.com/digital-guidance/guidance-api/internal/services"
	"github.com/digital-guidance/guidance-api/internal/users"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN, db.PoolOptions{MaxConns: cfg.PGMaxConns, MaxConnIdleTime: 5 * time.Minute})
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	metrics := observability.NewMetrics()

	codec, err := auth.NewTokenCodec([]byte(cfg.JWTSecret))
	if err != nil {
		logger.Error("token codec", slog.Any("error", err))
		os.Exit(1)
	}
	identityStore := auth.NewIdentityStore(dbpool, cfg.AuthLookupTimeout)
	resolver := auth.NewResolver(codec, identityStore, logger, metrics)
	gate := auth.Gate{Logger: logger, Recorder: metrics}

	servicesHandler := services.NewHandler(logger, services.NewCatalog(services.NewRepository(dbpool)))
	feedbackHandler := feedback.NewHandler(logger, feedback.NewService(feedback.NewRepository(dbpool)))
	carouselHandler := carousel.NewHandler(logger, carousel.NewService(carousel.NewRepository(dbpool)))
	usersHandler := users.NewHandler(logger, users.NewService(users.NewRepository(dbpool), cfg.HashCost))

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		Resolver:        resolver,
		Gate:            gate,
		Metrics:         metrics,
		AuthHandler:     auth.NewHandler(logger),
		ServicesHandler: servicesHandler,
		FeedbackHandler: feedbackHandler,
		CarouselHandler: carouselHandler,
		UsersHandler:    usersHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
