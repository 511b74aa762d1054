package users

import "strings"

// User represents a portal user account. Prescripteur marks the prescriber
// capability used for commission attribution.
type User struct {
	ID           int64
	Nom          string
	Prenom       string
	Contact      string
	CliniqueID   int64
	Prescripteur bool
	IsActive     bool
}

// DisplayName returns the name rendered in commission tables.
func (u User) DisplayName() string {
	return strings.TrimSpace(u.Nom + " " + u.Prenom)
}
