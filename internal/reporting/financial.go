package reporting

// FinancialInputs collects the grouped categories and commission views for
// assembly.
type FinancialInputs struct {
	Produits                []ProduitGroup
	Prestations             []PrestationGroup
	Examens                 []ExamenGroup
	Echographies            []EchographieGroup
	CommissionsExamens      CommissionReport
	CommissionsEchographies CommissionReport
}

// BuildFinancialReport assembles the reconciled financial output. Each
// category total is the arithmetic sum of that category's group amounts, and
// the overall revenue is the sum of the category totals; the reconciliation
// invariant is therefore structural, not checked after the fact.
func BuildFinancialReport(in FinancialInputs) *FinancialReport {
	report := &FinancialReport{
		Produits:                in.Produits,
		Prestations:             in.Prestations,
		Examens:                 in.Examens,
		Echographies:            in.Echographies,
		CommissionsExamens:      in.CommissionsExamens,
		CommissionsEchographies: in.CommissionsEchographies,
	}

	for _, grp := range in.Produits {
		report.TotalProduits += grp.Montant
	}
	for _, grp := range in.Prestations {
		report.TotalPrestations += grp.Montant
	}
	for _, grp := range in.Examens {
		report.TotalExamens += grp.Montant
	}
	for _, grp := range in.Echographies {
		report.TotalEchographies += grp.Montant
	}

	report.RecetteTotale = report.TotalProduits + report.TotalPrestations +
		report.TotalExamens + report.TotalEchographies
	return report
}
