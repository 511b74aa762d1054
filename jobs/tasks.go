package jobs

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskCatalogBump invalidates the versioned catalog cache after a
	// catalog mutation, so reports keep pricing against the live catalog.
	TaskCatalogBump = "catalog:bump"
	// TaskStockSnapshot materialises opening-stock snapshots used by the
	// stock-final column of financial reports.
	TaskStockSnapshot = "stock:snapshot"
)

// StockSnapshotPayload carries the snapshot generation date.
type StockSnapshotPayload struct {
	AsOf time.Time `json:"as_of"`
}

// NewCatalogBumpTask constructs a cache invalidation task.
func NewCatalogBumpTask() *asynq.Task {
	return asynq.NewTask(TaskCatalogBump, nil)
}

// NewStockSnapshotTask constructs a snapshot refresh task.
func NewStockSnapshotTask(payload StockSnapshotPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskStockSnapshot, data), nil
}

// CatalogInvalidator bumps the catalog cache version.
type CatalogInvalidator interface {
	Invalidate(ctx context.Context) error
}

// StockRefresher materialises a snapshot generation.
type StockRefresher interface {
	Refresh(ctx context.Context, asOf time.Time) error
}

// HandleCatalogBumpTask processes TaskCatalogBump tasks.
func HandleCatalogBumpTask(catalogs CatalogInvalidator) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		return catalogs.Invalidate(ctx)
	}
}

// HandleStockSnapshotTask processes TaskStockSnapshot tasks.
func HandleStockSnapshotTask(stock StockRefresher) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload StockSnapshotPayload
		if len(t.Payload()) > 0 {
			if err := json.Unmarshal(t.Payload(), &payload); err != nil {
				return asynq.SkipRetry
			}
		}
		if payload.AsOf.IsZero() {
			payload.AsOf = time.Now().UTC().Truncate(24 * time.Hour)
		}
		return stock.Refresh(ctx, payload.AsOf)
	}
}
