package reporting

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/clinstat-erp/clinstat/internal/catalog"
	"github.com/clinstat-erp/clinstat/internal/users"
)

// Repository fetches the raw transaction rows for one resolved filter.
type Repository interface {
	ProduitLines(ctx context.Context, f ResolvedFilter) ([]ProduitLine, error)
	PrestationLines(ctx context.Context, f ResolvedFilter) ([]PrestationLine, error)
	ExamenLines(ctx context.Context, f ResolvedFilter) ([]ExamenLine, error)
	EchographieLines(ctx context.Context, f ResolvedFilter) ([]EchographieLine, error)
	Visites(ctx context.Context, f ResolvedFilter) ([]Visite, error)
	Clients(ctx context.Context, clientIDs []int64) (map[int64]Client, error)
}

// CatalogProvider supplies the catalog snapshot priced at report time.
type CatalogProvider interface {
	Snapshot(ctx context.Context) (*catalog.Snapshot, error)
}

// UserDirectory supplies the two user lists backing prescriber resolution.
type UserDirectory interface {
	ListPrescripteurs(ctx context.Context, cliniqueIDs []int64) ([]users.User, error)
	ListByCliniques(ctx context.Context, cliniqueIDs []int64) ([]users.User, error)
}

// StockProvider supplies opening stock as of the report start date.
type StockProvider interface {
	OpeningStock(ctx context.Context, produitIDs []int64, cliniqueIDs []int64, asOf time.Time) (map[int64]int, error)
}

// Service orchestrates one report generation: resolve, fetch, group,
// calculate, reconcile. It holds no state across requests; resubmission
// always recomputes from source rows.
type Service struct {
	repo     Repository
	catalogs CatalogProvider
	users    UserDirectory
	stock    StockProvider
	base     CommissionBase
	logger   *slog.Logger
	now      func() time.Time
}

// NewService wires the engine collaborators.
func NewService(repo Repository, catalogs CatalogProvider, directory UserDirectory, stock StockProvider, base CommissionBase, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		catalogs: catalogs,
		users:    directory,
		stock:    stock,
		base:     base,
		logger:   logger,
		now:      time.Now,
	}
}

// WithNow overrides the service clock for testing.
func (s *Service) WithNow(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

// Generate runs the full pipeline for one submitted form.
func (s *Service) Generate(ctx context.Context, req Request) (*Report, error) {
	f, err := ResolveFilter(req)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Rapport:     req.Rapport,
		DateDebut:   req.DateDebut,
		DateFin:     req.DateFin,
		GeneratedAt: s.now(),
	}
	if f.Empty {
		// Inverted range matches nothing; no fetch is issued.
		s.attachEmptySections(report)
		return report, nil
	}

	data, err := s.fetch(ctx, f, req.Rapport)
	if err != nil {
		return nil, fmt.Errorf("reporting: fetch: %w", err)
	}
	s.applyActivityFilter(f, data)

	if req.Rapport.Financial() {
		report.Financier = s.buildFinancial(ctx, f, data)
	}
	if !req.Rapport.Financial() || req.Rapport == ReportValidation {
		table := DefaultBrackets
		if req.Rapport.SIG() {
			table = SIGBrackets
		}
		report.Statistique = BuildStatisticalReport(data.visites, data.clients, table)
	}
	return report, nil
}

type fetchedData struct {
	produits      []ProduitLine
	prestations   []PrestationLine
	examens       []ExamenLine
	echographies  []EchographieLine
	visites       []Visite
	visitesByID   map[int64]Visite
	clients       map[int64]Client
	snapshot      *catalog.Snapshot
	prescripteurs []users.User
	tousUsers     []users.User
}

// fetch issues the independent read-only record fetches concurrently. All of
// them are scoped by the resolved filter; any failure aborts the report as a
// single generation error (the UI offers retry, the engine never does).
func (s *Service) fetch(ctx context.Context, f ResolvedFilter, rapport ReportType) (*fetchedData, error) {
	data := &fetchedData{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		data.visites, err = s.repo.Visites(gctx, f)
		return err
	})
	g.Go(func() error {
		var err error
		data.snapshot, err = s.catalogs.Snapshot(gctx)
		return err
	})
	if rapport.Financial() {
		g.Go(func() error {
			var err error
			data.produits, err = s.repo.ProduitLines(gctx, f)
			return err
		})
		g.Go(func() error {
			var err error
			data.prestations, err = s.repo.PrestationLines(gctx, f)
			return err
		})
		g.Go(func() error {
			var err error
			data.examens, err = s.repo.ExamenLines(gctx, f)
			return err
		})
		g.Go(func() error {
			var err error
			data.echographies, err = s.repo.EchographieLines(gctx, f)
			return err
		})
		g.Go(func() error {
			var err error
			data.prescripteurs, err = s.users.ListPrescripteurs(gctx, f.CliniqueIDs)
			return err
		})
		g.Go(func() error {
			var err error
			data.tousUsers, err = s.users.ListByCliniques(gctx, f.CliniqueIDs)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	data.visitesByID = make(map[int64]Visite, len(data.visites))
	clientIDs := make([]int64, 0, len(data.visites))
	seen := make(map[int64]bool, len(data.visites))
	for _, v := range data.visites {
		data.visitesByID[v.ID] = v
		if !seen[v.ClientID] {
			seen[v.ClientID] = true
			clientIDs = append(clientIDs, v.ClientID)
		}
	}
	clients, err := s.repo.Clients(ctx, clientIDs)
	if err != nil {
		return nil, err
	}
	data.clients = clients
	return data, nil
}

// applyActivityFilter narrows fetched rows to visits matching the activity
// and venue dimension. Repository queries already scope by clinic and date.
func (s *Service) applyActivityFilter(f ResolvedFilter, data *fetchedData) {
	if !f.HasActivityFilter() {
		return
	}

	matching := make(map[int64]bool, len(data.visites))
	visites := data.visites[:0]
	for _, v := range data.visites {
		if f.MatchesVisite(v) {
			matching[v.ID] = true
			visites = append(visites, v)
		}
	}
	data.visites = visites

	produits := data.produits[:0]
	for _, line := range data.produits {
		if matching[line.VisiteID] {
			produits = append(produits, line)
		}
	}
	data.produits = produits

	prestations := data.prestations[:0]
	for _, line := range data.prestations {
		if matching[line.VisiteID] {
			prestations = append(prestations, line)
		}
	}
	data.prestations = prestations

	examens := data.examens[:0]
	for _, line := range data.examens {
		if matching[line.VisiteID] {
			examens = append(examens, line)
		}
	}
	data.examens = examens

	echographies := data.echographies[:0]
	for _, line := range data.echographies {
		if matching[line.VisiteID] {
			echographies = append(echographies, line)
		}
	}
	data.echographies = echographies
}

func (s *Service) buildFinancial(ctx context.Context, f ResolvedFilter, data *fetchedData) *FinancialReport {
	produitGroups, droppedProduits := GroupProduits(data.produits, data.snapshot)
	prestationGroups, droppedPrestations := GroupPrestations(data.prestations, data.snapshot)
	examenGroups, droppedExamens := GroupExamens(data.examens, data.snapshot)
	echoGroups, droppedEchos := GroupEchographies(data.echographies, data.snapshot)
	s.logDropped(droppedProduits, droppedPrestations, droppedExamens, droppedEchos)

	if s.stock != nil && len(produitGroups) > 0 {
		produitIDs := make([]int64, len(produitGroups))
		for i, grp := range produitGroups {
			produitIDs[i] = grp.ProduitID
		}
		opening, err := s.stock.OpeningStock(ctx, produitIDs, f.CliniqueIDs, f.DateDebut)
		if err != nil {
			// Stock-final is informational; the financial figures stand.
			if s.logger != nil {
				s.logger.Warn("opening stock unavailable", slog.Any("error", err))
			}
		} else {
			ApplyStockFinal(produitGroups, opening)
		}
	}

	resolver := NewIdentityResolver(data.prescripteurs, data.tousUsers)
	return BuildFinancialReport(FinancialInputs{
		Produits:                produitGroups,
		Prestations:             prestationGroups,
		Examens:                 examenGroups,
		Echographies:            echoGroups,
		CommissionsExamens:      BuildExamCommissions(data.examens, data.visitesByID, data.clients, data.snapshot, resolver, s.base),
		CommissionsEchographies: BuildEchoCommissions(data.echographies, data.visitesByID, data.clients, data.snapshot, resolver, s.base),
	})
}

func (s *Service) logDropped(batches ...[]DroppedLine) {
	if s.logger == nil {
		return
	}
	for _, batch := range batches {
		for _, d := range batch {
			s.logger.Warn("invoice line references unknown catalog item",
				slog.String("category", d.Category),
				slog.Int64("catalog_id", d.CatalogID),
				slog.Int64("visite_id", d.VisiteID))
		}
	}
}

func (s *Service) attachEmptySections(report *Report) {
	if report.Rapport.Financial() {
		report.Financier = BuildFinancialReport(FinancialInputs{})
	}
	if !report.Rapport.Financial() || report.Rapport == ReportValidation {
		table := DefaultBrackets
		if report.Rapport.SIG() {
			table = SIGBrackets
		}
		report.Statistique = BuildStatisticalReport(nil, nil, table)
	}
}
