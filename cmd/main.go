package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"

	"github.com/matchday-app/championship-engine/cache"
	"github.com/matchday-app/championship-engine/config"
	"github.com/matchday-app/championship-engine/db"
	"github.com/matchday-app/championship-engine/docstore"
	"github.com/matchday-app/championship-engine/fixtures"
	"github.com/matchday-app/championship-engine/handlers"
	"github.com/matchday-app/championship-engine/reconcile"
	"github.com/matchday-app/championship-engine/repositories"
	api "github.com/matchday-app/championship-engine/routes"
	"github.com/matchday-app/championship-engine/services"
	"github.com/matchday-app/championship-engine/storage"
)

// mirrorRefreshInterval is how often the local cache mirror is refreshed for
// every owner this process has served.
const mirrorRefreshInterval = 60 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		}
	}()
	logger.Info("database connection established")

	store := docstore.NewPostgresStore(dbConn)

	kv, err := cache.NewFileCache(cfg.CachePath)
	if err != nil {
		logger.Error("failed to open local cache", slog.Any("error", err))
		os.Exit(1)
	}
	reconciler := reconcile.NewReconciler(store, kv, logger)

	uploader, err := storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	})
	if err != nil {
		logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("Cloudflare R2 uploader initialized")

	hub := fixtures.NewHub(logger)
	go hub.Run()

	champRepo := repositories.NewDocstoreChampionshipRepository(store, reconciler)
	userRepo := repositories.NewDocstoreUserRepository(store)
	logger.Info("repositories initialized")

	authService := services.NewAuthService(userRepo)
	championshipService := services.NewChampionshipService(champRepo)
	rosterService := services.NewRosterService(champRepo, uploader)
	scheduleService := services.NewScheduleService(champRepo, hub, logger)
	matchService := services.NewMatchService(champRepo, hub)
	standingsService := services.NewStandingsService(champRepo)
	logger.Info("services initialized")

	// Background mirror refresh: keeps the offline fallback snapshot fresh for
	// every owner served since startup.
	go func() {
		ticker := time.NewTicker(mirrorRefreshInterval)
		defer ticker.Stop()
		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if !reconciler.Online(ctx) {
				cancel()
				continue
			}
			for _, owner := range reconciler.KnownOwners() {
				// List mirrors into the cache as a side effect.
				if _, err := champRepo.List(ctx, owner); err != nil {
					logger.Warn("mirror refresh failed",
						slog.String("owner_id", owner), slog.Any("error", err))
				}
			}
			cancel()
		}
	}()

	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecretKey)
	championshipHandler := handlers.NewChampionshipHandler(championshipService)
	teamHandler := handlers.NewTeamHandler(rosterService)
	matchHandler := handlers.NewMatchHandler(scheduleService, matchService)
	standingsHandler := handlers.NewStandingsHandler(standingsService)
	webSocketHandler := handlers.NewWebSocketHandler(hub, logger)

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		cfg.JWTSecretKey,
		authHandler,
		championshipHandler,
		teamHandler,
		matchHandler,
		standingsHandler,
		webSocketHandler,
	)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
}
