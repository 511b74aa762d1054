package reporting

import (
	"testing"
)

// The worked end-to-end arithmetic: one product line (qty 3, catalog price
// 500), one exam line ("Glycémie", price 2000, 10% discount, commission 15%
// pre-discount) must yield 1500 + 1800 = 3300 with a 300 commission.
func TestFinancialReportWorkedExample(t *testing.T) {
	snap := testSnapshot()
	visites, clients, resolver := commissionFixture()

	produitLines := []ProduitLine{{ProduitID: 2, VisiteID: 1, ClientID: 10, Quantite: 3}}
	examenLines := []ExamenLine{{ExamenID: 1, VisiteID: 1, ClientID: 10, Quantite: 1, RemisePercent: 10}}

	produitGroups, _ := GroupProduits(produitLines, snap)
	examenGroups, _ := GroupExamens(examenLines, snap)

	report := BuildFinancialReport(FinancialInputs{
		Produits:           produitGroups,
		Examens:            examenGroups,
		CommissionsExamens: BuildExamCommissions(examenLines, visites, clients, snap, resolver, CommissionPreDiscount),
	})

	if len(report.Produits) != 1 {
		t.Fatalf("expected 1 product group")
	}
	grp := report.Produits[0]
	if grp.PrixUnitaire != 500 || grp.Quantite != 3 || grp.Montant != 1500 {
		t.Fatalf("unexpected product group %#v", grp)
	}

	exam := report.Examens[0]
	if exam.Libelle != "Glycémie (10%)" || exam.PrixUnitaire != 2000 || exam.Quantite != 1 || exam.Montant != 1800 {
		t.Fatalf("unexpected exam group %#v", exam)
	}

	if report.TotalProduits != 1500 || report.TotalExamens != 1800 {
		t.Fatalf("unexpected category totals %v / %v", report.TotalProduits, report.TotalExamens)
	}
	if report.RecetteTotale != 3300 {
		t.Fatalf("expected revenue 3300 got %v", report.RecetteTotale)
	}

	details := report.CommissionsExamens.Details
	if len(details) != 1 || details[0].Commission != 300 {
		t.Fatalf("expected one 300 commission, got %#v", details)
	}
}

func TestFinancialTotalsAreSumOfGroups(t *testing.T) {
	report := BuildFinancialReport(FinancialInputs{
		Produits: []ProduitGroup{
			{Montant: 100.5},
			{Montant: 200.25},
		},
		Prestations: []PrestationGroup{{Montant: 50}},
		Examens: []ExamenGroup{
			{Montant: 10},
			{Montant: 20},
		},
		Echographies: []EchographieGroup{{Montant: 5}},
	})

	if report.TotalProduits != 300.75 {
		t.Fatalf("unexpected product total %v", report.TotalProduits)
	}
	if report.TotalPrestations != 50 || report.TotalExamens != 30 || report.TotalEchographies != 5 {
		t.Fatalf("unexpected totals: %#v", report)
	}
	want := report.TotalProduits + report.TotalPrestations + report.TotalExamens + report.TotalEchographies
	if report.RecetteTotale != want {
		t.Fatalf("revenue %v is not the sum of category totals %v", report.RecetteTotale, want)
	}
}

func TestFinancialReportEmpty(t *testing.T) {
	report := BuildFinancialReport(FinancialInputs{})
	if report.RecetteTotale != 0 {
		t.Fatalf("empty report must have zero revenue")
	}
	if len(report.Produits) != 0 || len(report.Examens) != 0 {
		t.Fatalf("empty report must have no groups")
	}
}
