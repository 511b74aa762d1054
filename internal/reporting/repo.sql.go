package reporting

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PGRepository provides PostgreSQL backed record fetches.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewPGRepository constructs a repository.
func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// ProduitLines returns product invoice lines inside the filter window.
func (r *PGRepository) ProduitLines(ctx context.Context, f ResolvedFilter) ([]ProduitLine, error) {
	rows, err := r.pool.Query(ctx, `
SELECT produit_id, visite_id, client_id, clinique_id, quantite, prix_facture, remise_percent, date_facture
FROM factures_produits
WHERE clinique_id = ANY($1) AND date_facture BETWEEN $2 AND $3
ORDER BY date_facture, visite_id`, f.CliniqueIDs, f.DateDebut, f.DateFin)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var lines []ProduitLine
	for rows.Next() {
		var l ProduitLine
		if err := rows.Scan(&l.ProduitID, &l.VisiteID, &l.ClientID, &l.CliniqueID, &l.Quantite, &l.PrixFacture, &l.RemisePercent, &l.Date); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// PrestationLines returns prestation invoice lines inside the filter window.
func (r *PGRepository) PrestationLines(ctx context.Context, f ResolvedFilter) ([]PrestationLine, error) {
	rows, err := r.pool.Query(ctx, `
SELECT prestation_id, visite_id, client_id, clinique_id, quantite, prix_facture, remise_percent, date_facture
FROM factures_prestations
WHERE clinique_id = ANY($1) AND date_facture BETWEEN $2 AND $3
ORDER BY date_facture, visite_id`, f.CliniqueIDs, f.DateDebut, f.DateFin)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var lines []PrestationLine
	for rows.Next() {
		var l PrestationLine
		if err := rows.Scan(&l.PrestationID, &l.VisiteID, &l.ClientID, &l.CliniqueID, &l.Quantite, &l.PrixFacture, &l.RemisePercent, &l.Date); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// ExamenLines returns lab-exam invoice lines inside the filter window.
func (r *PGRepository) ExamenLines(ctx context.Context, f ResolvedFilter) ([]ExamenLine, error) {
	rows, err := r.pool.Query(ctx, `
SELECT examen_id, visite_id, client_id, clinique_id, quantite, prix_facture, remise_percent, sous_traite, date_facture
FROM factures_examens
WHERE clinique_id = ANY($1) AND date_facture BETWEEN $2 AND $3
ORDER BY date_facture, visite_id`, f.CliniqueIDs, f.DateDebut, f.DateFin)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var lines []ExamenLine
	for rows.Next() {
		var l ExamenLine
		if err := rows.Scan(&l.ExamenID, &l.VisiteID, &l.ClientID, &l.CliniqueID, &l.Quantite, &l.PrixFacture, &l.RemisePercent, &l.SousTraite, &l.Date); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// EchographieLines returns ultrasound invoice lines inside the filter window.
func (r *PGRepository) EchographieLines(ctx context.Context, f ResolvedFilter) ([]EchographieLine, error) {
	rows, err := r.pool.Query(ctx, `
SELECT echographie_id, visite_id, client_id, clinique_id, quantite, prix_facture, remise_percent, date_facture
FROM factures_echographies
WHERE clinique_id = ANY($1) AND date_facture BETWEEN $2 AND $3
ORDER BY date_facture, visite_id`, f.CliniqueIDs, f.DateDebut, f.DateFin)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var lines []EchographieLine
	for rows.Next() {
		var l EchographieLine
		if err := rows.Scan(&l.EchographieID, &l.VisiteID, &l.ClientID, &l.CliniqueID, &l.Quantite, &l.PrixFacture, &l.RemisePercent, &l.Date); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// Visites returns client encounters inside the filter window.
func (r *PGRepository) Visites(ctx context.Context, f ResolvedFilter) ([]Visite, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, client_id, clinique_id, COALESCE(activite_id, 0), COALESCE(lieu_id, 0), COALESCE(prescripteur_id, 0), date_visite
FROM visites
WHERE clinique_id = ANY($1) AND date_visite BETWEEN $2 AND $3
ORDER BY date_visite, id`, f.CliniqueIDs, f.DateDebut, f.DateFin)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var visites []Visite
	for rows.Next() {
		var v Visite
		if err := rows.Scan(&v.ID, &v.ClientID, &v.CliniqueID, &v.ActiviteID, &v.LieuID, &v.PrescripteurID, &v.Date); err != nil {
			return nil, err
		}
		visites = append(visites, v)
	}
	return visites, rows.Err()
}

// Clients resolves demographic records for the given ids.
func (r *PGRepository) Clients(ctx context.Context, clientIDs []int64) (map[int64]Client, error) {
	clients := make(map[int64]Client, len(clientIDs))
	if len(clientIDs) == 0 {
		return clients, nil
	}
	rows, err := r.pool.Query(ctx, `
SELECT id, nom, date_naissance, protegee FROM clients WHERE id = ANY($1)`, clientIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var c Client
		if err := rows.Scan(&c.ID, &c.Nom, &c.DateNaissance, &c.Protegee); err != nil {
			return nil, err
		}
		clients[c.ID] = c
	}
	return clients, rows.Err()
}
