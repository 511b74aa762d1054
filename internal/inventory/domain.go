package inventory

import (
	"errors"
	"time"
)

// StockSnapshot records the on-hand quantity of a product at a point in time.
// Snapshots are produced by the nightly refresh job and are the source for
// opening-stock figures in financial reports.
type StockSnapshot struct {
	ProduitID  int64
	CliniqueID int64
	Qty        int
	AsOf       time.Time
}

// Movement models a stock movement applied after a snapshot.
type Movement struct {
	ProduitID  int64
	CliniqueID int64
	Qty        int
	MovedAt    time.Time
}

// ErrSnapshotMissing indicates no snapshot exists at or before the requested date.
// Callers treat the opening stock as zero, which surfaces as a negative
// stock-final in the report rather than hiding the gap.
var ErrSnapshotMissing = errors.New("inventory: snapshot missing")
