// Package flatlog implements the global flat-file persistence path that runs
// alongside the relational store: a single shared zone file holding only the
// most recently saved zone list system-wide, and a single append-only count
// ledger. Neither file carries a video association, and neither is protected
// by a lock; concurrent writers may interleave. That weak consistency is the
// preserved legacy behavior, not an oversight to fix.
package flatlog

// Point is one corner coordinate of a zone as stored in the flat zone file.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ZoneRecord is the flat-file shape of one zone.
type ZoneRecord struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	TopLeft     Point  `json:"topleft"`
	TopRight    Point  `json:"topright"`
	BottomLeft  Point  `json:"bottomleft"`
	BottomRight Point  `json:"bottomright"`
}

// CountRow is one occupancy observation as appended to the flat ledger.
type CountRow struct {
	TS      float64
	ZoneID  string
	Label   string
	Current int
	Peak    int
}

// ZoneStore persists the single system-wide zone list. Every write replaces
// the whole file regardless of which video the zones belong to.
type ZoneStore interface {
	// WriteAll overwrites the stored list with the given zones.
	WriteAll(zones []ZoneRecord) error
	// ReadRaw returns the file's raw bytes, or os.ErrNotExist if never written.
	ReadRaw() ([]byte, error)
}

// CountLog persists the global occupancy ledger. Appends only grow the file;
// a header row is written exactly once, when the file does not yet exist.
type CountLog interface {
	Append(rows []CountRow) error
	// ReadRaw returns the file's raw bytes, or os.ErrNotExist if never written.
	ReadRaw() ([]byte, error)
}
