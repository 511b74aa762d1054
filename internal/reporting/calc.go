package reporting

import (
	"fmt"
	"strconv"
	"strings"
)

// LineAmount computes the amount of an invoice line from the current catalog
// unit price, net of discount when one is present.
func LineAmount(prixUnitaire float64, quantite int, remisePercent float64) float64 {
	amount := prixUnitaire * float64(quantite)
	if remisePercent > 0 {
		amount *= 1 - remisePercent/100
	}
	return amount
}

// DiscountLabel appends the discount to the libelle when one applies,
// e.g. "Glycémie (10%)".
func DiscountLabel(libelle string, remisePercent float64) string {
	if remisePercent <= 0 {
		return libelle
	}
	remise := strconv.FormatFloat(remisePercent, 'f', -1, 64)
	return fmt.Sprintf("%s (%s%%)", libelle, remise)
}

// ApplyStockFinal fills the stock-final column of product groups:
// opening stock minus the quantity sold inside the filtered window.
// The value is informational and never clamped; a negative figure signals an
// upstream inventory discrepancy.
func ApplyStockFinal(groups []ProduitGroup, opening map[int64]int) {
	for i := range groups {
		groups[i].StockFinal = opening[groups[i].ProduitID] - groups[i].Quantite
	}
}

// CommissionBase selects the invoice amount commissions are computed on.
type CommissionBase string

const (
	// CommissionPreDiscount applies the commission rule to the gross amount.
	CommissionPreDiscount CommissionBase = "pre_discount"
	// CommissionPostDiscount applies the rule to the discounted amount.
	CommissionPostDiscount CommissionBase = "post_discount"
)

// ParseCommissionBase validates a configured base, defaulting to pre-discount.
func ParseCommissionBase(s string) (CommissionBase, error) {
	switch CommissionBase(strings.TrimSpace(s)) {
	case "", CommissionPreDiscount:
		return CommissionPreDiscount, nil
	case CommissionPostDiscount:
		return CommissionPostDiscount, nil
	}
	return "", fmt.Errorf("reporting: unknown commission base %q", s)
}

// commissionAmount applies a category commission rule to one invoice line.
// A fixed amount takes precedence over a percentage.
func commissionAmount(prixUnitaire float64, quantite int, remisePercent float64, percent, fixe float64, base CommissionBase) float64 {
	if fixe > 0 {
		return fixe * float64(quantite)
	}
	montant := prixUnitaire * float64(quantite)
	if base == CommissionPostDiscount && remisePercent > 0 {
		montant *= 1 - remisePercent/100
	}
	return montant * percent / 100
}
