package catalog

import (
	"context"
)

// Reader exposes the catalog queries the service relies on.
type Reader interface {
	ListProduits(ctx context.Context) ([]Produit, error)
	ListPrestations(ctx context.Context) ([]Prestation, error)
	ListExamens(ctx context.Context) ([]Examen, error)
	ListEchographies(ctx context.Context) ([]Echographie, error)
	ListCliniques(ctx context.Context) ([]Clinique, error)
}

// Service coordinates catalog reads with the versioned cache.
type Service struct {
	repo  Reader
	cache *Cache
}

// NewService wires a Reader with a Cache helper.
func NewService(repo Reader, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// Snapshot returns the full catalog in declaration order.
func (s *Service) Snapshot(ctx context.Context) (*Snapshot, error) {
	loader := func(ctx context.Context) (interface{}, error) {
		produits, err := s.repo.ListProduits(ctx)
		if err != nil {
			return nil, err
		}
		prestations, err := s.repo.ListPrestations(ctx)
		if err != nil {
			return nil, err
		}
		examens, err := s.repo.ListExamens(ctx)
		if err != nil {
			return nil, err
		}
		echographies, err := s.repo.ListEchographies(ctx)
		if err != nil {
			return nil, err
		}
		return &Snapshot{
			Produits:     produits,
			Prestations:  prestations,
			Examens:      examens,
			Echographies: echographies,
		}, nil
	}

	if s.cache == nil {
		value, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		return value.(*Snapshot), nil
	}

	key, err := s.cache.BuildKey(ctx, "catalog", "snapshot")
	if err != nil {
		return nil, err
	}
	var snapshot Snapshot
	if err := s.cache.FetchJSON(ctx, key, &snapshot, loader); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// Cliniques returns all clinics.
func (s *Service) Cliniques(ctx context.Context) ([]Clinique, error) {
	loader := func(ctx context.Context) (interface{}, error) {
		return s.repo.ListCliniques(ctx)
	}
	if s.cache == nil {
		value, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		return value.([]Clinique), nil
	}
	key, err := s.cache.BuildKey(ctx, "catalog", "cliniques")
	if err != nil {
		return nil, err
	}
	var cliniques []Clinique
	if err := s.cache.FetchJSON(ctx, key, &cliniques, loader); err != nil {
		return nil, err
	}
	return cliniques, nil
}

// Invalidate bumps the cache version after a catalog mutation.
func (s *Service) Invalidate(ctx context.Context) error {
	return s.cache.Bump(ctx)
}
