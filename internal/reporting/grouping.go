package reporting

import (
	"github.com/clinstat-erp/clinstat/internal/catalog"
)

// GroupProduits partitions product lines into one aggregate row per catalog
// item, ordered by catalog declaration order. Lines referencing an unknown
// catalog id are returned as dropped rather than aborting the report.
func GroupProduits(lines []ProduitLine, snap *catalog.Snapshot) ([]ProduitGroup, []DroppedLine) {
	byProduit := make(map[int64]*ProduitGroup)
	var dropped []DroppedLine

	for _, line := range lines {
		produit, ok := snap.ProduitByID(line.ProduitID)
		if !ok {
			dropped = append(dropped, DroppedLine{Category: "produit", CatalogID: line.ProduitID, VisiteID: line.VisiteID})
			continue
		}
		grp, ok := byProduit[produit.ID]
		if !ok {
			grp = &ProduitGroup{
				ProduitID:    produit.ID,
				Libelle:      produit.Libelle,
				Type:         produit.Type,
				PrixUnitaire: produit.PrixUnitaire,
			}
			byProduit[produit.ID] = grp
		}
		grp.Quantite += line.Quantite
		grp.Montant += LineAmount(produit.PrixUnitaire, line.Quantite, line.RemisePercent)
	}

	// Catalog declaration order.
	groups := make([]ProduitGroup, 0, len(byProduit))
	for _, produit := range snap.Produits {
		if grp, ok := byProduit[produit.ID]; ok {
			groups = append(groups, *grp)
		}
	}
	return groups, dropped
}

// GroupPrestations partitions prestation lines per catalog item, ordered by
// catalog declaration order.
func GroupPrestations(lines []PrestationLine, snap *catalog.Snapshot) ([]PrestationGroup, []DroppedLine) {
	byPrestation := make(map[int64]*PrestationGroup)
	var dropped []DroppedLine

	for _, line := range lines {
		prestation, ok := snap.PrestationByID(line.PrestationID)
		if !ok {
			dropped = append(dropped, DroppedLine{Category: "prestation", CatalogID: line.PrestationID, VisiteID: line.VisiteID})
			continue
		}
		grp, ok := byPrestation[prestation.ID]
		if !ok {
			grp = &PrestationGroup{
				PrestationID: prestation.ID,
				Libelle:      prestation.Libelle,
				PrixUnitaire: prestation.PrixUnitaire,
			}
			byPrestation[prestation.ID] = grp
		}
		grp.Quantite += line.Quantite
		grp.Montant += LineAmount(prestation.PrixUnitaire, line.Quantite, line.RemisePercent)
	}

	groups := make([]PrestationGroup, 0, len(byPrestation))
	for _, prestation := range snap.Prestations {
		if grp, ok := byPrestation[prestation.ID]; ok {
			groups = append(groups, *grp)
		}
	}
	return groups, dropped
}

// GroupExamens partitions exam lines by (libelle, discount, subcontracted),
// in first-seen order among matching lines. Lines for the same exam at
// different discount levels or subcontracting status never merge.
func GroupExamens(lines []ExamenLine, snap *catalog.Snapshot) ([]ExamenGroup, []DroppedLine) {
	byKey := make(map[ExamGroupKey]*ExamenGroup)
	var order []ExamGroupKey
	var dropped []DroppedLine

	for _, line := range lines {
		examen, ok := snap.ExamenByID(line.ExamenID)
		if !ok {
			dropped = append(dropped, DroppedLine{Category: "examen", CatalogID: line.ExamenID, VisiteID: line.VisiteID})
			continue
		}
		key := ExamGroupKey{Libelle: examen.Libelle, RemisePercent: line.RemisePercent, SousTraite: line.SousTraite}
		grp, ok := byKey[key]
		if !ok {
			grp = &ExamenGroup{
				Key:          key,
				Libelle:      DiscountLabel(examen.Libelle, line.RemisePercent),
				PrixUnitaire: examen.PrixUnitaire,
			}
			byKey[key] = grp
			order = append(order, key)
		}
		grp.Quantite += line.Quantite
		grp.Montant += LineAmount(examen.PrixUnitaire, line.Quantite, line.RemisePercent)
	}

	groups := make([]ExamenGroup, 0, len(order))
	for _, key := range order {
		groups = append(groups, *byKey[key])
	}
	return groups, dropped
}

// GroupEchographies partitions ultrasound lines by (libelle, discount), in
// first-seen order among matching lines.
func GroupEchographies(lines []EchographieLine, snap *catalog.Snapshot) ([]EchographieGroup, []DroppedLine) {
	byKey := make(map[EchoGroupKey]*EchographieGroup)
	var order []EchoGroupKey
	var dropped []DroppedLine

	for _, line := range lines {
		echo, ok := snap.EchographieByID(line.EchographieID)
		if !ok {
			dropped = append(dropped, DroppedLine{Category: "echographie", CatalogID: line.EchographieID, VisiteID: line.VisiteID})
			continue
		}
		key := EchoGroupKey{Libelle: echo.Libelle, RemisePercent: line.RemisePercent}
		grp, ok := byKey[key]
		if !ok {
			grp = &EchographieGroup{
				Key:          key,
				Libelle:      DiscountLabel(echo.Libelle, line.RemisePercent),
				PrixUnitaire: echo.PrixUnitaire,
			}
			byKey[key] = grp
			order = append(order, key)
		}
		grp.Quantite += line.Quantite
		grp.Montant += LineAmount(echo.PrixUnitaire, line.Quantite, line.RemisePercent)
	}

	groups := make([]EchographieGroup, 0, len(order))
	for _, key := range order {
		groups = append(groups, *byKey[key])
	}
	return groups, dropped
}
