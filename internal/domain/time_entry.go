package domain

import (
	"time"
)

// TimeEntry represents one recorded interval of work attributed to a project.
// DurationMS is derived: it must always equal End minus Start in milliseconds.
// Entries with Start == End (duration 0) are valid manual placeholders.
type TimeEntry struct {
	ID          int64
	ProjectID   int64
	Start       time.Time
	End         time.Time
	DurationMS  int64
	Description string
	Order       int64
}

// NewTimeEntry creates a completed TimeEntry for the given project.
// The duration is computed from the bounds.
func NewTimeEntry(projectID int64, start, end time.Time) TimeEntry {
	return TimeEntry{
		ProjectID:  projectID,
		Start:      start,
		End:        end,
		DurationMS: end.Sub(start).Milliseconds(),
	}
}

// NewManualEntry creates a zero-duration placeholder entry seeded with the
// given instant for both bounds.
func NewManualEntry(projectID int64, now time.Time) TimeEntry {
	return TimeEntry{
		ProjectID: projectID,
		Start:     now,
		End:       now,
	}
}

// Recalculate restores the duration invariant after an edit to Start or End.
func (te *TimeEntry) Recalculate() {
	te.DurationMS = te.End.Sub(te.Start).Milliseconds()
}

// Duration returns the recorded duration.
func (te TimeEntry) Duration() time.Duration {
	return time.Duration(te.DurationMS) * time.Millisecond
}

// Overlaps reports whether any part of the entry's interval intersects the
// range [rangeStart, rangeEnd]. An entry is included if its start falls within
// the range, its end falls within the range, or it fully spans the range.
func (te TimeEntry) Overlaps(rangeStart, rangeEnd time.Time) bool {
	startInRange := !te.Start.Before(rangeStart) && !te.Start.After(rangeEnd)
	endInRange := !te.End.Before(rangeStart) && !te.End.After(rangeEnd)
	spansRange := !te.Start.After(rangeStart) && !te.End.Before(rangeEnd)
	return startInRange || endInRange || spansRange
}

// IsValid checks if the time entry has valid data.
func (te TimeEntry) IsValid() bool {
	if te.ProjectID <= 0 {
		return false
	}
	if te.Start.IsZero() || te.End.IsZero() {
		return false
	}
	if te.End.Before(te.Start) {
		return false
	}
	return te.DurationMS == te.End.Sub(te.Start).Milliseconds()
}
