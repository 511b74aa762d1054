package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/clinstat-erp/clinstat/internal/app"
	"github.com/clinstat-erp/clinstat/internal/catalog"
	"github.com/clinstat-erp/clinstat/internal/inventory"
	"github.com/clinstat-erp/clinstat/internal/platform/cache"
	"github.com/clinstat-erp/clinstat/internal/platform/db"
	"github.com/clinstat-erp/clinstat/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
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
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() { _ = redisClient.Close() }()

	catalogService := catalog.NewService(
		catalog.NewRepository(pool),
		catalog.NewCache(redisClient, cfg.CatalogCacheTTL),
	)
	stockService := inventory.NewService(inventory.NewRepository(pool), logger)

	nightlySnapshot, err := jobs.NewStockSnapshotTask(jobs.StockSnapshotPayload{})
	if err != nil {
		logger.Error("snapshot task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskCatalogBump, Handler: jobs.HandleCatalogBumpTask(catalogService)},
			{Type: jobs.TaskStockSnapshot, Handler: jobs.HandleStockSnapshotTask(stockService)},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "0 2 * * *", Task: nightlySnapshot},
		},
	})
	if err != nil {
		logger.Error("worker setup", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("worker started")
	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker stopped")
}
