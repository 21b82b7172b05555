// cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Ponna-create/wkly-nuts-sub000/internal/api"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/cache"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/config"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/drive"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/repository"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/repository/backend"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/scheduler"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/service"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/storage"
	"github.com/Ponna-create/wkly-nuts-sub000/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	level := cfg.Server.LogLevel
	if level == "" {
		level = "info"
		if cfg.Server.Mode == "debug" {
			level = "debug"
		}
	}
	logger.SetLevel(level)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		logger.UseJSON(os.Stdout)
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Initialize document store
	store, err := backend.Open(ctx, cfg)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to open document store")
	}
	defer store.Close()

	plans, err := cache.NewPlanCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Plan cache unavailable, continuing without it")
		plans = cache.NewNoopPlanCache()
	}

	reports, err := storage.Open(ctx, cfg.ObjectStorage, filepath.Join(cfg.App.DataDir, "reports"))
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to open report storage")
	}

	// Initialize services
	repos := repository.NewSet(store)
	services := service.New(repos, plans, reports, cfg.Business)

	var fetcher *drive.CatalogFetcher
	if cfg.Drive.CredentialsFile != "" {
		driveService, err := drive.NewServiceFromFile(ctx, cfg.Drive.CredentialsFile)
		if err != nil {
			logger.Log.Warn().Err(err).Msg("Google Drive disabled")
		} else {
			fetcher = drive.NewCatalogFetcher(driveService, cfg.Drive.FolderID)
		}
	}

	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched, err = scheduler.NewScheduler(cfg.Scheduler, services.SalesTargets, services.Production)
		if err != nil {
			logger.Log.Fatal().Err(err).Msg("Failed to configure scheduler")
		}
		if err := sched.Start(); err != nil {
			logger.Log.Fatal().Err(err).Msg("Failed to start scheduler")
		}
	}

	// Initialize HTTP server
	router := api.NewRouter(api.Dependencies{Services: services, Drive: fetcher, Store: store}, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Str("store", cfg.Store.Backend).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if sched != nil {
		sched.Stop(shutdownCtx)
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
