package reporting

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// AgeBracket is an inclusive [Min, Max] age range in completed years.
type AgeBracket struct {
	Min int
	Max int
}

// Label renders the bracket the way report tables print it.
func (b AgeBracket) Label() string {
	return fmt.Sprintf("%d-%d", b.Min, b.Max)
}

// Contains reports whether the age falls inside the bracket.
func (b AgeBracket) Contains(age int) bool {
	return age >= b.Min && age <= b.Max
}

// BracketTable is an ordered, non-overlapping list of age brackets.
type BracketTable []AgeBracket

// ErrOverlappingBrackets rejects a malformed caller-supplied bracket table.
var ErrOverlappingBrackets = errors.New("reporting: overlapping age brackets")

// NewBracketTable validates and orders a caller-supplied bracket list.
func NewBracketTable(brackets []AgeBracket) (BracketTable, error) {
	table := append(BracketTable(nil), brackets...)
	sort.Slice(table, func(i, j int) bool { return table[i].Min < table[j].Min })
	for i, b := range table {
		if b.Max < b.Min {
			return nil, fmt.Errorf("reporting: inverted age bracket %s", b.Label())
		}
		if i > 0 && b.Min <= table[i-1].Max {
			return nil, fmt.Errorf("%w: %s and %s", ErrOverlappingBrackets, table[i-1].Label(), b.Label())
		}
	}
	return table, nil
}

// Classify places an age into the first bracket containing it, scanning in
// ascending Min order. ok is false when the age exceeds every bracket.
func (t BracketTable) Classify(age int) (int, bool) {
	for i, b := range t {
		if b.Contains(age) {
			return i, true
		}
	}
	return 0, false
}

// AgeAt returns the age in completed years at the reference date.
func AgeAt(birth, ref time.Time) int {
	if ref.Before(birth) {
		return 0
	}
	return int(ref.Sub(birth).Hours() / 24 / 365.25)
}

// DefaultBrackets is the standard statistical bracket table.
var DefaultBrackets = BracketTable{
	{Min: 0, Max: 9},
	{Min: 10, Max: 14},
	{Min: 15, Max: 19},
	{Min: 20, Max: 24},
	{Min: 25, Max: 49},
	{Min: 50, Max: 120},
}

// SIGBrackets is the finer table used by the SIG report variants.
var SIGBrackets = BracketTable{
	{Min: 0, Max: 4},
	{Min: 5, Max: 9},
	{Min: 10, Max: 14},
	{Min: 15, Max: 19},
	{Min: 20, Max: 24},
	{Min: 25, Max: 29},
	{Min: 30, Max: 34},
	{Min: 35, Max: 49},
	{Min: 50, Max: 120},
}
