package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository reads catalog tables from PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListProduits returns all products in declaration order.
func (r *Repository) ListProduits(ctx context.Context) ([]Produit, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, libelle, type, prix_unitaire, position FROM produits ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("catalog: list produits: %w", err)
	}
	defer rows.Close()
	var produits []Produit
	for rows.Next() {
		var p Produit
		if err := rows.Scan(&p.ID, &p.Libelle, &p.Type, &p.PrixUnitaire, &p.Position); err != nil {
			return nil, err
		}
		produits = append(produits, p)
	}
	return produits, rows.Err()
}

// ListPrestations returns all prestations in declaration order.
func (r *Repository) ListPrestations(ctx context.Context) ([]Prestation, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, libelle, prix_unitaire, position FROM prestations ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("catalog: list prestations: %w", err)
	}
	defer rows.Close()
	var prestations []Prestation
	for rows.Next() {
		var p Prestation
		if err := rows.Scan(&p.ID, &p.Libelle, &p.PrixUnitaire, &p.Position); err != nil {
			return nil, err
		}
		prestations = append(prestations, p)
	}
	return prestations, rows.Err()
}

// ListExamens returns all exam definitions in declaration order.
func (r *Repository) ListExamens(ctx context.Context) ([]Examen, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, libelle, prix_unitaire, commission_percent, commission_fixe, position FROM examens ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("catalog: list examens: %w", err)
	}
	defer rows.Close()
	var examens []Examen
	for rows.Next() {
		var e Examen
		if err := rows.Scan(&e.ID, &e.Libelle, &e.PrixUnitaire, &e.CommissionPercent, &e.CommissionFixe, &e.Position); err != nil {
			return nil, err
		}
		examens = append(examens, e)
	}
	return examens, rows.Err()
}

// ListEchographies returns all ultrasound definitions in declaration order.
func (r *Repository) ListEchographies(ctx context.Context) ([]Echographie, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, libelle, prix_unitaire, commission_percent, commission_fixe, position FROM echographies ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("catalog: list echographies: %w", err)
	}
	defer rows.Close()
	var echographies []Echographie
	for rows.Next() {
		var e Echographie
		if err := rows.Scan(&e.ID, &e.Libelle, &e.PrixUnitaire, &e.CommissionPercent, &e.CommissionFixe, &e.Position); err != nil {
			return nil, err
		}
		echographies = append(echographies, e)
	}
	return echographies, rows.Err()
}

// ListCliniques returns all clinics.
func (r *Repository) ListCliniques(ctx context.Context) ([]Clinique, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, nom FROM cliniques ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("catalog: list cliniques: %w", err)
	}
	defer rows.Close()
	var cliniques []Clinique
	for rows.Next() {
		var c Clinique
		if err := rows.Scan(&c.ID, &c.Nom); err != nil {
			return nil, err
		}
		cliniques = append(cliniques, c)
	}
	return cliniques, rows.Err()
}
