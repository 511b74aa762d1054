package reporting

import (
	"time"

	"github.com/clinstat-erp/clinstat/internal/catalog"
)

// ReportType discriminates the report kinds exposed by the portal form.
type ReportType string

const (
	ReportPlanning        ReportType = "planning"
	ReportGynecologique   ReportType = "gynecologique"
	ReportObstetrique     ReportType = "obstetrique"
	ReportIST             ReportType = "ist"
	ReportAutre           ReportType = "autre"
	ReportMedecine        ReportType = "medecine"
	ReportPediatrie       ReportType = "pediatrie"
	ReportSAA             ReportType = "saa"
	ReportDepistageVIH    ReportType = "depistage_vih"
	ReportPECVIH          ReportType = "pec_vih"
	ReportLaboratoire     ReportType = "laboratoire"
	ReportSIGMedecine     ReportType = "sig_medecine"
	ReportSIGObstetrique  ReportType = "sig_obstetrique"
	ReportSIGAccouchement ReportType = "sig_accouchement"
	ReportValidation      ReportType = "validation"
)

// Valid reports whether the tag is a known report type.
func (t ReportType) Valid() bool {
	switch t {
	case ReportPlanning, ReportGynecologique, ReportObstetrique, ReportIST,
		ReportAutre, ReportMedecine, ReportPediatrie, ReportSAA,
		ReportDepistageVIH, ReportPECVIH, ReportLaboratoire,
		ReportSIGMedecine, ReportSIGObstetrique, ReportSIGAccouchement,
		ReportValidation:
		return true
	}
	return false
}

// SIG reports use the finer SIG age-bracket table.
func (t ReportType) SIG() bool {
	switch t {
	case ReportSIGMedecine, ReportSIGObstetrique, ReportSIGAccouchement:
		return true
	}
	return false
}

// Financial reports carry the grouped invoice tables, totals and commissions.
// The remaining types are statistical (age-bracket counts).
func (t ReportType) Financial() bool {
	return t == ReportLaboratoire || t == ReportValidation
}

// Request is the inbound contract submitted by the report form.
type Request struct {
	DateDebut   time.Time
	DateFin     time.Time
	Rapport     ReportType
	CliniqueIDs []int64
	Activites   []ActivityRef
}

// Visite links a client encounter to a clinic, an optional activity/venue and
// the prescribing user. LieuID and PrescripteurID are zero when absent.
type Visite struct {
	ID             int64
	ClientID       int64
	CliniqueID     int64
	ActiviteID     int64
	LieuID         int64
	PrescripteurID int64
	Date           time.Time
}

// Client carries the demographic fields the engine needs.
type Client struct {
	ID            int64
	Nom           string
	DateNaissance time.Time
	Protegee      bool
}

// ProduitLine is a product invoice line.
type ProduitLine struct {
	ProduitID     int64
	VisiteID      int64
	ClientID      int64
	CliniqueID    int64
	Quantite      int
	PrixFacture   float64
	RemisePercent float64
	Date          time.Time
}

// PrestationLine is a medical-act invoice line.
type PrestationLine struct {
	PrestationID  int64
	VisiteID      int64
	ClientID      int64
	CliniqueID    int64
	Quantite      int
	PrixFacture   float64
	RemisePercent float64
	Date          time.Time
}

// ExamenLine is a lab-exam invoice line. SousTraite marks subcontracted exams,
// which group and account separately from in-house ones.
type ExamenLine struct {
	ExamenID      int64
	VisiteID      int64
	ClientID      int64
	CliniqueID    int64
	Quantite      int
	PrixFacture   float64
	RemisePercent float64
	SousTraite    bool
	Date          time.Time
}

// EchographieLine is an ultrasound invoice line.
type EchographieLine struct {
	EchographieID int64
	VisiteID      int64
	ClientID      int64
	CliniqueID    int64
	Quantite      int
	PrixFacture   float64
	RemisePercent float64
	Date          time.Time
}

// ProduitGroup is one aggregated product row of the financial report.
// StockFinal is opening stock minus in-window quantity sold; a negative value
// is a valid output signalling an upstream inventory discrepancy.
type ProduitGroup struct {
	ProduitID    int64
	Libelle      string
	Type         catalog.ProductType
	PrixUnitaire float64
	Quantite     int
	Montant      float64
	StockFinal   int
}

// PrestationGroup is one aggregated prestation row.
type PrestationGroup struct {
	PrestationID int64
	Libelle      string
	PrixUnitaire float64
	Quantite     int
	Montant      float64
}

// ExamGroupKey identifies an exam group. Lines with the same libelle but a
// different discount or subcontracting status never merge.
type ExamGroupKey struct {
	Libelle       string
	RemisePercent float64
	SousTraite    bool
}

// ExamenGroup is one aggregated exam row.
type ExamenGroup struct {
	Key          ExamGroupKey
	Libelle      string
	PrixUnitaire float64
	Quantite     int
	Montant      float64
}

// EchoGroupKey identifies an ultrasound group.
type EchoGroupKey struct {
	Libelle       string
	RemisePercent float64
}

// EchographieGroup is one aggregated ultrasound row.
type EchographieGroup struct {
	Key          EchoGroupKey
	Libelle      string
	PrixUnitaire float64
	Quantite     int
	Montant      float64
}

// DroppedLine records an invoice line excluded because its catalog reference
// could not be resolved.
type DroppedLine struct {
	Category  string
	CatalogID int64
	VisiteID  int64
}

// CommissionDetail is one row of the per-invoice commission view. Prescripteur
// is empty when the prescriber could not be resolved against either user list;
// such rows stay in the detail view but are excluded from the total view.
type CommissionDetail struct {
	DateVisite   time.Time
	Prescripteur string
	Client       string
	Commission   float64
}

// CommissionTotal is one row of the per-prescriber commission view.
type CommissionTotal struct {
	Prescripteur      string
	Contact           string
	NombreCommissions int
	Total             float64
}

// CommissionReport pairs the two commission views for one source category.
type CommissionReport struct {
	Details []CommissionDetail
	Totals  []CommissionTotal
}

// FinancialReport is the reconciled financial output handed to the renderer.
// Category totals are accumulated as the sum of their group amounts, so the
// reconciliation invariant holds by construction.
type FinancialReport struct {
	Produits          []ProduitGroup
	TotalProduits     float64
	Prestations       []PrestationGroup
	TotalPrestations  float64
	Examens           []ExamenGroup
	TotalExamens      float64
	Echographies      []EchographieGroup
	TotalEchographies float64
	RecetteTotale     float64

	CommissionsExamens      CommissionReport
	CommissionsEchographies CommissionReport
}

// StatRow counts encounters inside one age bracket.
type StatRow struct {
	Bracket   AgeBracket
	Label     string
	Visites   int
	Clients   int
	Protegees int
}

// StatisticalReport groups encounter counts by age bracket.
// HorsTranche counts visits whose client age exceeds every bracket.
type StatisticalReport struct {
	Rows          []StatRow
	HorsTranche   int
	TotalVisites  int
	TotalClients  int
	TotalProteges int
}

// Report is the engine output for one submitted form.
type Report struct {
	Rapport     ReportType
	DateDebut   time.Time
	DateFin     time.Time
	GeneratedAt time.Time
	Financier   *FinancialReport   `json:",omitempty"`
	Statistique *StatisticalReport `json:",omitempty"`
}
