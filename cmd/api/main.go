package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/pedidosfiliais/backend-go/internal/api"
	"github.com/pedidosfiliais/backend-go/internal/cache"
	"github.com/pedidosfiliais/backend-go/internal/config"
	"github.com/pedidosfiliais/backend-go/internal/repository"
	"github.com/pedidosfiliais/backend-go/internal/repository/demo"
	"github.com/pedidosfiliais/backend-go/internal/repository/postgres"
	"github.com/pedidosfiliais/backend-go/internal/service"
	"github.com/pedidosfiliais/backend-go/pkg/logger"
)

func main() {
	// Load environment variables from .env file if it exists
	_ = godotenv.Load()

	cfg := config.Load()

	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// The demonstration dataset is always wired as the fallback gateway; it
	// becomes the primary one when the store is unreachable at startup.
	demoProvider := demo.NewProvider()
	fallback := demoProvider.Gateway()

	gateway := fallback
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("database unreachable, serving demonstration data only")
	} else {
		defer db.Close()
		gateway = repository.Gateway{
			Branches: postgres.NewBranchRepository(db),
			Products: postgres.NewProductRepository(db),
			Orders:   postgres.NewOrderRepository(db),
		}
	}

	reportCache, err := cache.NewReportCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("report cache unavailable, continuing without it")
		reportCache = cache.NewNoopReportCache()
	}

	services := &api.Services{
		Orders:  service.NewOrderService(gateway, fallback, reportCache),
		Reports: service.NewReportService(gateway, fallback, reportCache, cfg.Report),
		Catalog: service.NewCatalogService(gateway, fallback, reportCache),
	}

	router := api.NewRouter(services, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
