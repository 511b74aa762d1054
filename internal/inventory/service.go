package inventory

import (
	"context"
	"log/slog"
	"time"
)

// SnapshotStore abstracts snapshot persistence for the service.
type SnapshotStore interface {
	OpeningStock(ctx context.Context, produitIDs []int64, cliniqueIDs []int64, asOf time.Time) (map[int64]int, error)
	RefreshSnapshots(ctx context.Context, asOf time.Time) (int64, error)
}

// Service exposes opening-stock reads to the reporting engine.
type Service struct {
	store  SnapshotStore
	logger *slog.Logger
}

// NewService constructs the inventory service.
func NewService(store SnapshotStore, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// OpeningStock resolves opening quantities as of the report start date.
// Products without a snapshot default to zero so the report still renders;
// the resulting negative stock-final signals the gap upstream.
func (s *Service) OpeningStock(ctx context.Context, produitIDs []int64, cliniqueIDs []int64, asOf time.Time) (map[int64]int, error) {
	if len(produitIDs) == 0 {
		return map[int64]int{}, nil
	}
	stock, err := s.store.OpeningStock(ctx, produitIDs, cliniqueIDs, asOf)
	if err != nil {
		return nil, err
	}
	for _, id := range produitIDs {
		if _, ok := stock[id]; !ok {
			if s.logger != nil {
				s.logger.Warn("opening stock missing, defaulting to zero",
					slog.Int64("produit_id", id), slog.Time("as_of", asOf))
			}
			stock[id] = 0
		}
	}
	return stock, nil
}

// Refresh materialises a new snapshot generation.
func (s *Service) Refresh(ctx context.Context, asOf time.Time) error {
	n, err := s.store.RefreshSnapshots(ctx, asOf)
	if err != nil {
		return err
	}
	if s.logger != nil {
		s.logger.Info("stock snapshots refreshed", slog.Int64("rows", n), slog.Time("as_of", asOf))
	}
	return nil
}
