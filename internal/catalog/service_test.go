package catalog

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type mockReader struct {
	produits      []Produit
	produitCalls  int
	examens       []Examen
	cliniques     []Clinique
	cliniqueCalls int
}

func (m *mockReader) ListProduits(ctx context.Context) ([]Produit, error) {
	m.produitCalls++
	return m.produits, nil
}

func (m *mockReader) ListPrestations(ctx context.Context) ([]Prestation, error) {
	return nil, nil
}

func (m *mockReader) ListExamens(ctx context.Context) ([]Examen, error) {
	return m.examens, nil
}

func (m *mockReader) ListEchographies(ctx context.Context) ([]Echographie, error) {
	return nil, nil
}

func (m *mockReader) ListCliniques(ctx context.Context) ([]Clinique, error) {
	m.cliniqueCalls++
	return m.cliniques, nil
}

func newTestService(t *testing.T, repo Reader) (*Service, func()) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewCache(client, time.Minute)
	svc := NewService(repo, cache)
	return svc, func() {
		_ = client.Close()
		mr.Close()
	}
}

func TestSnapshotCaches(t *testing.T) {
	repo := &mockReader{
		produits: []Produit{
			{ID: 1, Libelle: "Paracétamol", Type: ProductTypeMedicament, PrixUnitaire: 500, Position: 1},
			{ID: 2, Libelle: "Préservatif", Type: ProductTypeContraceptif, PrixUnitaire: 100, Position: 2},
		},
		examens: []Examen{
			{ID: 10, Libelle: "Glycémie", PrixUnitaire: 2000, CommissionPercent: 15, Position: 1},
		},
	}
	svc, cleanup := newTestService(t, repo)
	defer cleanup()

	ctx := context.Background()
	snap, err := svc.Snapshot(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snap.Produits) != 2 {
		t.Fatalf("expected 2 produits got %d", len(snap.Produits))
	}
	if repo.produitCalls != 1 {
		t.Fatalf("expected 1 repo call, got %d", repo.produitCalls)
	}

	// Second call should hit cache.
	snap, err = svc.Snapshot(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.produitCalls != 1 {
		t.Fatalf("expected cached result, repo called %d times", repo.produitCalls)
	}

	// A catalog mutation bumps the version and forces a reload.
	if err := svc.Invalidate(ctx); err != nil {
		t.Fatalf("invalidate failed: %v", err)
	}
	repo.produits[0].PrixUnitaire = 600
	snap, err = svc.Snapshot(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Produits[0].PrixUnitaire != 600 {
		t.Fatalf("expected refreshed price 600 got %v", snap.Produits[0].PrixUnitaire)
	}
	if repo.produitCalls != 2 {
		t.Fatalf("expected repo to refresh, calls %d", repo.produitCalls)
	}
}

func TestSnapshotLookups(t *testing.T) {
	snap := &Snapshot{
		Produits: []Produit{{ID: 1, Libelle: "Coton", Type: ProductTypeConsommable}},
		Examens:  []Examen{{ID: 4, Libelle: "NFS"}},
	}
	if _, ok := snap.ProduitByID(1); !ok {
		t.Fatalf("expected produit 1")
	}
	if _, ok := snap.ProduitByID(99); ok {
		t.Fatalf("unexpected produit 99")
	}
	if _, ok := snap.ExamenByID(4); !ok {
		t.Fatalf("expected examen 4")
	}
}

func TestWithoutCache(t *testing.T) {
	repo := &mockReader{cliniques: []Clinique{{ID: 1, Nom: "Clinique Centrale"}}}
	svc := NewService(repo, nil)
	cliniques, err := svc.Cliniques(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cliniques) != 1 || cliniques[0].Nom != "Clinique Centrale" {
		t.Fatalf("unexpected cliniques %#v", cliniques)
	}
}
