package reporting

import (
	"testing"
	"time"

	"github.com/clinstat-erp/clinstat/internal/catalog"
	"github.com/clinstat-erp/clinstat/internal/users"
)

func commissionFixture() (map[int64]Visite, map[int64]Client, *IdentityResolver) {
	visites := map[int64]Visite{
		1: {ID: 1, ClientID: 10, PrescripteurID: 100, Date: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)},
		2: {ID: 2, ClientID: 11, PrescripteurID: 101, Date: time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC)},
		3: {ID: 3, ClientID: 12, PrescripteurID: 0, Date: time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC)},
		4: {ID: 4, ClientID: 13, PrescripteurID: 999, Date: time.Date(2026, 1, 8, 0, 0, 0, 0, time.UTC)},
	}
	clients := map[int64]Client{
		10: {ID: 10, Nom: "Diallo"},
		11: {ID: 11, Nom: "Traoré"},
		12: {ID: 12, Nom: "Koné"},
		13: {ID: 13, Nom: "Cissé"},
	}
	resolver := NewIdentityResolver(
		[]users.User{{ID: 100, Nom: "Dr", Prenom: "Kanté", Contact: "77 000 001", Prescripteur: true}},
		[]users.User{
			{ID: 100, Nom: "Dr", Prenom: "Kanté", Contact: "77 000 001"},
			{ID: 101, Nom: "Sow", Prenom: "Awa", Contact: "77 000 002"},
		},
	)
	return visites, clients, resolver
}

func TestExamCommissionsConsistency(t *testing.T) {
	snap := testSnapshot()
	visites, clients, resolver := commissionFixture()
	lines := []ExamenLine{
		{ExamenID: 1, VisiteID: 1, ClientID: 10, Quantite: 1},
		{ExamenID: 2, VisiteID: 1, ClientID: 10, Quantite: 1},
		{ExamenID: 1, VisiteID: 2, ClientID: 11, Quantite: 2},
		{ExamenID: 1, VisiteID: 3, ClientID: 12, Quantite: 1}, // no prescriber, not eligible
	}

	report := BuildExamCommissions(lines, visites, clients, snap, resolver, CommissionPreDiscount)
	if len(report.Details) != 3 {
		t.Fatalf("expected 3 detail rows got %d", len(report.Details))
	}
	if len(report.Totals) != 2 {
		t.Fatalf("expected 2 total rows got %d", len(report.Totals))
	}

	var detailSum, totalSum float64
	for _, d := range report.Details {
		detailSum += d.Commission
	}
	for _, tot := range report.Totals {
		totalSum += tot.Total
	}
	if detailSum != totalSum {
		t.Fatalf("commission totals diverge from details: %v vs %v", totalSum, detailSum)
	}

	// 15% of 2000 + 10% of 3500
	if report.Totals[0].Prescripteur != "Dr Kanté" || report.Totals[0].Total != 650 {
		t.Fatalf("unexpected first total %#v", report.Totals[0])
	}
	if report.Totals[0].NombreCommissions != 2 {
		t.Fatalf("unexpected commission count %d", report.Totals[0].NombreCommissions)
	}
	// Second tier fallback: user 101 is not prescriber-capable but resolves
	// through the all-users list.
	if report.Totals[1].Prescripteur != "Sow Awa" || report.Totals[1].Contact != "77 000 002" {
		t.Fatalf("two-tier fallback failed: %#v", report.Totals[1])
	}
	if report.Totals[1].Total != 600 {
		t.Fatalf("unexpected second total %v", report.Totals[1].Total)
	}
}

func TestUnresolvedPrescriberKeptInDetailsOnly(t *testing.T) {
	snap := testSnapshot()
	visites, clients, resolver := commissionFixture()
	lines := []ExamenLine{
		{ExamenID: 1, VisiteID: 4, ClientID: 13, Quantite: 1}, // prescriber 999 unknown
	}

	report := BuildExamCommissions(lines, visites, clients, snap, resolver, CommissionPreDiscount)
	if len(report.Details) != 1 {
		t.Fatalf("detail completeness takes priority: got %d rows", len(report.Details))
	}
	if report.Details[0].Prescripteur != "" {
		t.Fatalf("expected empty prescriber name, got %q", report.Details[0].Prescripteur)
	}
	if report.Details[0].Client != "Cissé" {
		t.Fatalf("unexpected client %q", report.Details[0].Client)
	}
	if len(report.Totals) != 0 {
		t.Fatalf("unresolved identity must be excluded from totals: %#v", report.Totals)
	}
}

func TestCommissionBase(t *testing.T) {
	snap := testSnapshot()
	visites, clients, resolver := commissionFixture()
	lines := []ExamenLine{
		{ExamenID: 1, VisiteID: 1, ClientID: 10, Quantite: 1, RemisePercent: 10},
	}

	pre := BuildExamCommissions(lines, visites, clients, snap, resolver, CommissionPreDiscount)
	if pre.Details[0].Commission != 300 {
		t.Fatalf("pre-discount commission: want 300 got %v", pre.Details[0].Commission)
	}

	post := BuildExamCommissions(lines, visites, clients, snap, resolver, CommissionPostDiscount)
	if post.Details[0].Commission != 270 {
		t.Fatalf("post-discount commission: want 270 got %v", post.Details[0].Commission)
	}
}

func TestFixedCommissionTakesPrecedence(t *testing.T) {
	snap := testSnapshot()
	snap.Examens = append(snap.Examens, catalogExamenFixed())
	visites, clients, resolver := commissionFixture()
	lines := []ExamenLine{
		{ExamenID: 9, VisiteID: 1, ClientID: 10, Quantite: 2},
	}
	report := BuildExamCommissions(lines, visites, clients, snap, resolver, CommissionPreDiscount)
	if report.Details[0].Commission != 500 {
		t.Fatalf("fixed commission: want 500 got %v", report.Details[0].Commission)
	}
}

func TestEchoCommissions(t *testing.T) {
	snap := testSnapshot()
	visites, clients, resolver := commissionFixture()
	lines := []EchographieLine{
		{EchographieID: 1, VisiteID: 2, ClientID: 11, Quantite: 1},
	}
	report := BuildEchoCommissions(lines, visites, clients, snap, resolver, CommissionPreDiscount)
	if len(report.Details) != 1 || report.Details[0].Commission != 500 {
		t.Fatalf("unexpected echo commissions %#v", report.Details)
	}
	if report.Details[0].DateVisite != visites[2].Date {
		t.Fatalf("detail must carry the visit date")
	}
}

func TestParseCommissionBase(t *testing.T) {
	base, err := ParseCommissionBase("")
	if err != nil || base != CommissionPreDiscount {
		t.Fatalf("default base: got %v %v", base, err)
	}
	if _, err := ParseCommissionBase("moitie"); err == nil {
		t.Fatalf("expected error for unknown base")
	}
}

func catalogExamenFixed() catalog.Examen {
	return catalog.Examen{ID: 9, Libelle: "Widal", PrixUnitaire: 1500, CommissionPercent: 15, CommissionFixe: 250, Position: 9}
}
