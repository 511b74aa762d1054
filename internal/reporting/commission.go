package reporting

import (
	"github.com/clinstat-erp/clinstat/internal/catalog"
	"github.com/clinstat-erp/clinstat/internal/users"
)

// Identity is the outcome of prescriber name resolution. Unresolved
// identities keep their detail rows but are excluded from the total view.
type Identity struct {
	UserID   int64
	Name     string
	Contact  string
	Resolved bool
}

// IdentityResolver applies the two-tier prescriber lookup: the
// prescriber-capable users of the clinic set first, then all users of the
// clinic set, then unresolved.
type IdentityResolver struct {
	prescripteurs map[int64]users.User
	tous          map[int64]users.User
}

// NewIdentityResolver indexes both user lists.
func NewIdentityResolver(prescripteurs, tous []users.User) *IdentityResolver {
	r := &IdentityResolver{
		prescripteurs: make(map[int64]users.User, len(prescripteurs)),
		tous:          make(map[int64]users.User, len(tous)),
	}
	for _, u := range prescripteurs {
		r.prescripteurs[u.ID] = u
	}
	for _, u := range tous {
		r.tous[u.ID] = u
	}
	return r
}

// Resolve maps a prescriber id to an identity.
func (r *IdentityResolver) Resolve(userID int64) Identity {
	if u, ok := r.prescripteurs[userID]; ok {
		return Identity{UserID: userID, Name: u.DisplayName(), Contact: u.Contact, Resolved: true}
	}
	if u, ok := r.tous[userID]; ok {
		return Identity{UserID: userID, Name: u.DisplayName(), Contact: u.Contact, Resolved: true}
	}
	return Identity{UserID: userID}
}

type commissionEntry struct {
	visiteID      int64
	clientID      int64
	quantite      int
	prixUnitaire  float64
	remisePercent float64
	percent       float64
	fixe          float64
}

// BuildExamCommissions emits the commission detail and total views for lab
// exam invoices. Only lines whose visit carries a prescriber id qualify.
func BuildExamCommissions(lines []ExamenLine, visites map[int64]Visite, clients map[int64]Client, snap *catalog.Snapshot, resolver *IdentityResolver, base CommissionBase) CommissionReport {
	entries := make([]commissionEntry, 0, len(lines))
	for _, line := range lines {
		examen, ok := snap.ExamenByID(line.ExamenID)
		if !ok {
			continue
		}
		entries = append(entries, commissionEntry{
			visiteID:      line.VisiteID,
			clientID:      line.ClientID,
			quantite:      line.Quantite,
			prixUnitaire:  examen.PrixUnitaire,
			remisePercent: line.RemisePercent,
			percent:       examen.CommissionPercent,
			fixe:          examen.CommissionFixe,
		})
	}
	return buildCommissions(entries, visites, clients, resolver, base)
}

// BuildEchoCommissions emits the commission detail and total views for
// ultrasound invoices.
func BuildEchoCommissions(lines []EchographieLine, visites map[int64]Visite, clients map[int64]Client, snap *catalog.Snapshot, resolver *IdentityResolver, base CommissionBase) CommissionReport {
	entries := make([]commissionEntry, 0, len(lines))
	for _, line := range lines {
		echo, ok := snap.EchographieByID(line.EchographieID)
		if !ok {
			continue
		}
		entries = append(entries, commissionEntry{
			visiteID:      line.VisiteID,
			clientID:      line.ClientID,
			quantite:      line.Quantite,
			prixUnitaire:  echo.PrixUnitaire,
			remisePercent: line.RemisePercent,
			percent:       echo.CommissionPercent,
			fixe:          echo.CommissionFixe,
		})
	}
	return buildCommissions(entries, visites, clients, resolver, base)
}

// buildCommissions derives both views from one pass over the qualifying
// entries. Totals accumulate from the same detail rows they summarize, so the
// consistency invariant holds by construction. Unresolved prescribers stay in
// the detail view with an empty name and are skipped by the total view.
func buildCommissions(entries []commissionEntry, visites map[int64]Visite, clients map[int64]Client, resolver *IdentityResolver, base CommissionBase) CommissionReport {
	var report CommissionReport
	totalsByUser := make(map[int64]*CommissionTotal)
	var order []int64

	for _, entry := range entries {
		visite, ok := visites[entry.visiteID]
		if !ok || visite.PrescripteurID == 0 {
			continue
		}
		identity := resolver.Resolve(visite.PrescripteurID)
		clientName := ""
		if client, ok := clients[entry.clientID]; ok {
			clientName = client.Nom
		}
		commission := commissionAmount(entry.prixUnitaire, entry.quantite, entry.remisePercent, entry.percent, entry.fixe, base)

		report.Details = append(report.Details, CommissionDetail{
			DateVisite:   visite.Date,
			Prescripteur: identity.Name,
			Client:       clientName,
			Commission:   commission,
		})

		if !identity.Resolved {
			continue
		}
		total, ok := totalsByUser[identity.UserID]
		if !ok {
			total = &CommissionTotal{Prescripteur: identity.Name, Contact: identity.Contact}
			totalsByUser[identity.UserID] = total
			order = append(order, identity.UserID)
		}
		total.NombreCommissions++
		total.Total += commission
	}

	for _, userID := range order {
		report.Totals = append(report.Totals, *totalsByUser[userID])
	}
	return report
}
