package reporting

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Caller input errors, surfaced as form validation messages.
var (
	ErrNoClinics         = errors.New("reporting: clinic selection required")
	ErrUnknownReportType = errors.New("reporting: unknown report type")
)

// ActivityRef is an activity filter entry. LieuID is zero for a bare activity
// id, which matches any venue including none.
type ActivityRef struct {
	ActiviteID int64
	LieuID     int64
}

// ParseActivityRef decodes the form encoding: "7" or "7>12".
func ParseActivityRef(s string) (ActivityRef, error) {
	s = strings.TrimSpace(s)
	activitePart, lieuPart, composite := strings.Cut(s, ">")
	activiteID, err := strconv.ParseInt(activitePart, 10, 64)
	if err != nil {
		return ActivityRef{}, fmt.Errorf("reporting: bad activity ref %q: %w", s, err)
	}
	ref := ActivityRef{ActiviteID: activiteID}
	if composite {
		lieuID, err := strconv.ParseInt(lieuPart, 10, 64)
		if err != nil {
			return ActivityRef{}, fmt.Errorf("reporting: bad venue in activity ref %q: %w", s, err)
		}
		ref.LieuID = lieuID
	}
	return ref, nil
}

// ResolvedFilter is the normalized filter handed to the record fetches.
// Empty marks a filter defined to match nothing (inverted date range); no
// fetch is issued for it and a zero-valued report is returned.
type ResolvedFilter struct {
	DateDebut   time.Time
	DateFin     time.Time
	CliniqueIDs []int64
	Activites   []ActivityRef
	Empty       bool
}

// ResolveFilter normalizes the request into the concrete id sets the fetches
// need. An empty clinic selection is a caller error; an inverted date range is
// defined to match nothing rather than raising.
func ResolveFilter(req Request) (ResolvedFilter, error) {
	if !req.Rapport.Valid() {
		return ResolvedFilter{}, fmt.Errorf("%w: %q", ErrUnknownReportType, req.Rapport)
	}
	if len(req.CliniqueIDs) == 0 {
		return ResolvedFilter{}, ErrNoClinics
	}

	f := ResolvedFilter{
		DateDebut:   req.DateDebut,
		DateFin:     req.DateFin,
		CliniqueIDs: append([]int64(nil), req.CliniqueIDs...),
		Activites:   append([]ActivityRef(nil), req.Activites...),
	}
	if req.DateDebut.After(req.DateFin) {
		f.Empty = true
	}
	return f, nil
}

// HasActivityFilter reports whether an activity filter is in effect.
func (f ResolvedFilter) HasActivityFilter() bool {
	return len(f.Activites) > 0
}

// MatchesVisite applies the activity/venue dimension to a visit. With no
// activity filter every visit of the selected clinics qualifies. A composite
// entry requires both components to match; a bare activity id matches any
// venue.
func (f ResolvedFilter) MatchesVisite(v Visite) bool {
	if !f.HasActivityFilter() {
		return true
	}
	for _, ref := range f.Activites {
		if ref.ActiviteID != v.ActiviteID {
			continue
		}
		if ref.LieuID == 0 || ref.LieuID == v.LieuID {
			return true
		}
	}
	return false
}
