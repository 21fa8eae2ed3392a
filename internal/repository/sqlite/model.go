package sqlite

import "time"

// Project represents a row in the projects table.
type Project struct {
	ID       int64
	Name     string
	Position int
}

// TimeEntry represents a row in the time_entries table.
// DurationMS is persisted alongside the bounds so exports and reports never
// have to recompute it; the service layer keeps it equal to end minus start.
type TimeEntry struct {
	ID          int64
	ProjectID   int64
	StartTime   time.Time
	EndTime     time.Time
	DurationMS  int64
	Description string
	Position    int64
}
