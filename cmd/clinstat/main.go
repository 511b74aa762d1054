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

	"github.com/clinstat-erp/clinstat/internal/app"
	"github.com/clinstat-erp/clinstat/internal/catalog"
	"github.com/clinstat-erp/clinstat/internal/inventory"
	"github.com/clinstat-erp/clinstat/internal/platform/cache"
	"github.com/clinstat-erp/clinstat/internal/platform/db"
	"github.com/clinstat-erp/clinstat/internal/reporting"
	reportinghttp "github.com/clinstat-erp/clinstat/internal/reporting/http"
	"github.com/clinstat-erp/clinstat/internal/users"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, catalog cache disabled", slog.Any("error", err))
		redisClient = nil
	}
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
	}

	var catalogCache *catalog.Cache
	if redisClient != nil {
		catalogCache = catalog.NewCache(redisClient, cfg.CatalogCacheTTL)
	}
	catalogService := catalog.NewService(catalog.NewRepository(pool), catalogCache)

	userRepo := users.NewRepository(pool)
	stockService := inventory.NewService(inventory.NewRepository(pool), logger)

	base, err := reporting.ParseCommissionBase(cfg.CommissionBase)
	if err != nil {
		logger.Error("commission base", slog.Any("error", err))
		os.Exit(1)
	}

	reportService := reporting.NewService(
		reporting.NewPGRepository(pool),
		catalogService,
		userRepo,
		stockService,
		base,
		logger,
	)
	reportHandler := reportinghttp.NewHandler(logger, reportService, nil)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		ReportingHandler: reportHandler,
		Pool:             pool,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("server listening", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
