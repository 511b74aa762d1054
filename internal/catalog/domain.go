package catalog

// ProductType partitions products into report sections.
type ProductType string

const (
	// ProductTypeContraceptif covers family-planning products.
	ProductTypeContraceptif ProductType = "CONTRACEPTIF"
	// ProductTypeMedicament covers pharmacy products.
	ProductTypeMedicament ProductType = "MEDICAMENTS"
	// ProductTypeConsommable covers consumables.
	ProductTypeConsommable ProductType = "CONSOMMABLES"
)

// Produit is a sellable product with its current unit price.
type Produit struct {
	ID           int64
	Libelle      string
	Type         ProductType
	PrixUnitaire float64
	Position     int
}

// Prestation is a billable medical act.
type Prestation struct {
	ID           int64
	Libelle      string
	PrixUnitaire float64
	Position     int
}

// Examen is a lab exam definition carrying its commission rule.
type Examen struct {
	ID                int64
	Libelle           string
	PrixUnitaire      float64
	CommissionPercent float64
	CommissionFixe    float64
	Position          int
}

// Echographie is an ultrasound definition carrying its commission rule.
type Echographie struct {
	ID                int64
	Libelle           string
	PrixUnitaire      float64
	CommissionPercent float64
	CommissionFixe    float64
	Position          int
}

// Clinique identifies a clinic.
type Clinique struct {
	ID  int64
	Nom string
}

// Snapshot bundles all catalog tables in declaration order. Reports always
// price against the snapshot taken at generation time, never against the
// price frozen into an invoice line.
type Snapshot struct {
	Produits     []Produit
	Prestations  []Prestation
	Examens      []Examen
	Echographies []Echographie
}

// ProduitByID returns the product for id.
func (s *Snapshot) ProduitByID(id int64) (Produit, bool) {
	for _, p := range s.Produits {
		if p.ID == id {
			return p, true
		}
	}
	return Produit{}, false
}

// PrestationByID returns the prestation for id.
func (s *Snapshot) PrestationByID(id int64) (Prestation, bool) {
	for _, p := range s.Prestations {
		if p.ID == id {
			return p, true
		}
	}
	return Prestation{}, false
}

// ExamenByID returns the exam definition for id.
func (s *Snapshot) ExamenByID(id int64) (Examen, bool) {
	for _, e := range s.Examens {
		if e.ID == id {
			return e, true
		}
	}
	return Examen{}, false
}

// EchographieByID returns the ultrasound definition for id.
func (s *Snapshot) EchographieByID(id int64) (Echographie, bool) {
	for _, e := range s.Echographies {
		if e.ID == id {
			return e, true
		}
	}
	return Echographie{}, false
}
