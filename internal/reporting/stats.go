package reporting

// BuildStatisticalReport groups encounter counts by age bracket. Ages are
// taken at the visit date, so re-running a period's report later never
// migrates a client between brackets. Each client counts once per bracket for
// the client column even across repeat visits.
func BuildStatisticalReport(visites []Visite, clients map[int64]Client, table BracketTable) *StatisticalReport {
	report := &StatisticalReport{Rows: make([]StatRow, len(table))}
	for i, bracket := range table {
		report.Rows[i] = StatRow{Bracket: bracket, Label: bracket.Label()}
	}

	seenClients := make(map[int64]map[int64]bool, len(table)+1)
	bracketClients := func(idx int64) map[int64]bool {
		m, ok := seenClients[idx]
		if !ok {
			m = make(map[int64]bool)
			seenClients[idx] = m
		}
		return m
	}

	for _, visite := range visites {
		client, ok := clients[visite.ClientID]
		if !ok {
			continue
		}
		age := AgeAt(client.DateNaissance, visite.Date)
		idx, classified := table.Classify(age)
		if !classified {
			report.HorsTranche++
			report.TotalVisites++
			continue
		}

		row := &report.Rows[idx]
		row.Visites++
		report.TotalVisites++

		seen := bracketClients(int64(idx))
		if !seen[client.ID] {
			seen[client.ID] = true
			row.Clients++
			report.TotalClients++
			if client.Protegee {
				row.Protegees++
				report.TotalProteges++
			}
		}
	}
	return report
}
