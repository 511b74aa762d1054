package inventory

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists inventory snapshots in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// OpeningStock returns the on-hand quantity per product as of the given date,
// scoped to the selected clinics. Products without a snapshot are absent from
// the result map.
func (r *Repository) OpeningStock(ctx context.Context, produitIDs []int64, cliniqueIDs []int64, asOf time.Time) (map[int64]int, error) {
	rows, err := r.pool.Query(ctx, `
SELECT DISTINCT ON (produit_id) produit_id, SUM(qty) OVER (PARTITION BY produit_id, as_of)
FROM stock_snapshots
WHERE produit_id = ANY($1) AND clinique_id = ANY($2) AND as_of <= $3
ORDER BY produit_id, as_of DESC`, produitIDs, cliniqueIDs, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stock := make(map[int64]int)
	for rows.Next() {
		var produitID int64
		var qty int
		if err := rows.Scan(&produitID, &qty); err != nil {
			return nil, err
		}
		stock[produitID] = qty
	}
	return stock, rows.Err()
}

// RefreshSnapshots materialises current stock levels into stock_snapshots.
// Invoked by the background worker.
func (r *Repository) RefreshSnapshots(ctx context.Context, asOf time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
INSERT INTO stock_snapshots (produit_id, clinique_id, qty, as_of)
SELECT produit_id, clinique_id, qty, $1 FROM stock_levels
ON CONFLICT (produit_id, clinique_id, as_of) DO UPDATE SET qty = EXCLUDED.qty`, asOf)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
