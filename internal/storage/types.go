package storage

import "time"

// Entry represents a single logged dose. It is the only persisted entity;
// everything else in the application is derived from the entry collection.
type Entry struct {
	ID        string
	Substance string
	Notes     string
	Feelings  []string
	Dosage    string
	Timestamp time.Time
}

// ListQuery defines filters for the windowed entry listing.
type ListQuery struct {
	Substance string
	Since     time.Time
	Limit     int
	Offset    int
}

// Stats holds aggregate statistics about the journal database.
type Stats struct {
	TotalEntries       int64
	DistinctSubstances int64
	OldestEntry        time.Time
	NewestEntry        time.Time
	SchemaVersion      int
	TopSubstances      []SubstanceCount
}

// SubstanceCount pairs a substance with its entry count.
type SubstanceCount struct {
	Substance string
	Count     int64
}

// SnapshotCheck is the result of validating an import candidate before it
// replaces the live database.
type SnapshotCheck struct {
	Compatible bool
	Reason     string
}
