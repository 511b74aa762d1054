package users

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const userColumns = `id, nom, prenom, contact, clinique_id, prescripteur, is_active`

// ListByCliniques returns all active users attached to the given clinics.
func (r *Repository) ListByCliniques(ctx context.Context, cliniqueIDs []int64) ([]User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users WHERE clinique_id = ANY($1) AND is_active ORDER BY id`, cliniqueIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUsers(rows)
}

// ListPrescripteurs returns the prescriber-capable users of the given clinics.
func (r *Repository) ListPrescripteurs(ctx context.Context, cliniqueIDs []int64) ([]User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users WHERE clinique_id = ANY($1) AND is_active AND prescripteur ORDER BY id`, cliniqueIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUsers(rows)
}

type pgxRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanUsers(rows pgxRows) ([]User, error) {
	var out []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Nom, &u.Prenom, &u.Contact, &u.CliniqueID, &u.Prescripteur, &u.IsActive); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
