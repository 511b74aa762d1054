package reporting

import (
	"testing"
	"time"
)

func TestStatisticalReportBuckets(t *testing.T) {
	date := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	clients := map[int64]Client{
		1: {ID: 1, Nom: "A", DateNaissance: date.AddDate(-17, 0, 0)},                 // 16 -> 15-19
		2: {ID: 2, Nom: "B", DateNaissance: date.AddDate(-22, 0, 0), Protegee: true}, // 21 -> 20-24
		3: {ID: 3, Nom: "C", DateNaissance: date.AddDate(-30, 0, 0)},                 // 29 -> 25-49
	}
	visites := []Visite{
		{ID: 1, ClientID: 1, Date: date},
		{ID: 2, ClientID: 1, Date: date.AddDate(0, 0, 3)}, // repeat visit, same bracket
		{ID: 3, ClientID: 2, Date: date},
		{ID: 4, ClientID: 3, Date: date},
		{ID: 5, ClientID: 99, Date: date}, // unknown client is skipped
	}

	report := BuildStatisticalReport(visites, clients, DefaultBrackets)

	if report.TotalVisites != 4 {
		t.Fatalf("expected 4 visits got %d", report.TotalVisites)
	}
	if report.TotalClients != 3 {
		t.Fatalf("expected 3 distinct clients got %d", report.TotalClients)
	}
	if report.TotalProteges != 1 {
		t.Fatalf("expected 1 protected client got %d", report.TotalProteges)
	}

	byLabel := make(map[string]StatRow)
	for _, row := range report.Rows {
		byLabel[row.Label] = row
	}
	if row := byLabel["15-19"]; row.Visites != 2 || row.Clients != 1 {
		t.Fatalf("unexpected 15-19 row %#v", row)
	}
	if row := byLabel["20-24"]; row.Visites != 1 || row.Protegees != 1 {
		t.Fatalf("unexpected 20-24 row %#v", row)
	}
}

// Ages are taken at visit date, so the same visit set produces the same
// brackets no matter when the report is generated.
func TestStatisticalReportUsesVisitDateAge(t *testing.T) {
	clients := map[int64]Client{
		1: {ID: 1, DateNaissance: time.Date(2006, 6, 2, 0, 0, 0, 0, time.UTC)},
	}
	visites := []Visite{
		{ID: 1, ClientID: 1, Date: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)}, // 19 at visit
	}
	report := BuildStatisticalReport(visites, clients, DefaultBrackets)
	for _, row := range report.Rows {
		if row.Label == "15-19" && row.Visites != 1 {
			t.Fatalf("expected visit in 15-19, got %#v", report.Rows)
		}
		if row.Label == "20-24" && row.Visites != 0 {
			t.Fatalf("visit leaked into 20-24")
		}
	}
}

func TestStatisticalReportHorsTranche(t *testing.T) {
	table, err := NewBracketTable([]AgeBracket{{Min: 0, Max: 9}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	clients := map[int64]Client{
		1: {ID: 1, DateNaissance: time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	visites := []Visite{{ID: 1, ClientID: 1, Date: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}}

	report := BuildStatisticalReport(visites, clients, table)
	if report.HorsTranche != 1 {
		t.Fatalf("expected 1 out-of-bracket visit got %d", report.HorsTranche)
	}
	if report.Rows[0].Visites != 0 {
		t.Fatalf("out-of-bracket visit leaked into a row")
	}
}
