package reporting

import (
	"testing"
	"time"
)

func TestAgeAt(t *testing.T) {
	birth := time.Date(2000, 3, 15, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		ref  time.Time
		want int
	}{
		{time.Date(2000, 3, 15, 0, 0, 0, 0, time.UTC), 0},
		{time.Date(2010, 3, 14, 0, 0, 0, 0, time.UTC), 9},
		{time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), 26},
		{time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC), 0},
	}
	for _, tc := range cases {
		if got := AgeAt(birth, tc.ref); got != tc.want {
			t.Fatalf("AgeAt(%v) = %d, want %d", tc.ref, got, tc.want)
		}
	}
}

func TestClassifyExclusive(t *testing.T) {
	table := DefaultBrackets
	for age := 0; age <= 120; age++ {
		matches := 0
		for _, b := range table {
			if b.Contains(age) {
				matches++
			}
		}
		if matches > 1 {
			t.Fatalf("age %d matches %d brackets", age, matches)
		}
		idx, ok := table.Classify(age)
		if matches == 0 && ok {
			t.Fatalf("age %d classified into %d with no containing bracket", age, idx)
		}
		if matches == 1 && !ok {
			t.Fatalf("age %d not classified", age)
		}
	}
}

func TestClassifyBeyondAllBrackets(t *testing.T) {
	table, err := NewBracketTable([]AgeBracket{{Min: 0, Max: 9}, {Min: 10, Max: 19}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := table.Classify(20); ok {
		t.Fatalf("expected no bracket for age 20")
	}
}

func TestNewBracketTableRejectsOverlap(t *testing.T) {
	_, err := NewBracketTable([]AgeBracket{{Min: 0, Max: 10}, {Min: 10, Max: 19}})
	if err == nil {
		t.Fatalf("expected overlap error")
	}
	_, err = NewBracketTable([]AgeBracket{{Min: 5, Max: 4}})
	if err == nil {
		t.Fatalf("expected inverted bracket error")
	}
}

func TestNewBracketTableOrders(t *testing.T) {
	table, err := NewBracketTable([]AgeBracket{{Min: 10, Max: 19}, {Min: 0, Max: 9}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table[0].Min != 0 {
		t.Fatalf("table not ordered ascending: %#v", table)
	}
	idx, ok := table.Classify(5)
	if !ok || idx != 0 {
		t.Fatalf("expected first bracket, got %d ok=%v", idx, ok)
	}
}
