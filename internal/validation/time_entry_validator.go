package validation

import (
	"time"

	"tito/internal/domain"
)

// TimeEntryValidator provides validation for TimeEntry-related operations
type TimeEntryValidator struct {
	validator *Validator
}

// NewTimeEntryValidator creates a new time entry validator
func NewTimeEntryValidator() *TimeEntryValidator {
	return &TimeEntryValidator{
		validator: NewValidator(),
	}
}

// ValidateTimeEntryForCreation validates a time entry for creation
func (tev *TimeEntryValidator) ValidateTimeEntryForCreation(projectID int64, start, end time.Time) error {
	validationError := NewValidationError()

	if !tev.validator.IsValidID(projectID) {
		validationError.AddInvalidValueError("project_id", projectID, "must be a positive integer")
	}

	if start.IsZero() {
		validationError.AddRequiredError("start")
	}
	if end.IsZero() {
		validationError.AddRequiredError("end")
	}

	if !start.IsZero() && !end.IsZero() {
		if !tev.validator.IsValidTimeOrder(start, end) {
			validationError.AddInvalidRangeError("time_range", map[string]time.Time{
				"start": start,
				"end":   end,
			}, "end time must not be before start time")
		} else if !tev.validator.IsValidDuration(end.Sub(start)) {
			validationError.AddInvalidValueError("duration", end.Sub(start), "exceeds the maximum entry duration")
		}
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidateTimeEntryForUpdate validates a time entry after a bounds edit
func (tev *TimeEntryValidator) ValidateTimeEntryForUpdate(id int64, projectID int64, start, end time.Time) error {
	validationError := NewValidationError()

	if !tev.validator.IsValidID(id) {
		validationError.AddInvalidValueError("time_entry_id", id, "must be a positive integer")
	}

	if entryErr := tev.ValidateTimeEntryForCreation(projectID, start, end); entryErr != nil {
		if entryValidationErr, ok := entryErr.(*ValidationError); ok {
			validationError.Errors = append(validationError.Errors, entryValidationErr.Errors...)
		}
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidateTimeEntry validates a domain.TimeEntry object, including the
// derived-duration invariant.
func (tev *TimeEntryValidator) ValidateTimeEntry(entry domain.TimeEntry) error {
	validationError := NewValidationError()

	if !entry.IsValid() {
		validationError.AddInvalidValueError("time_entry", entry.ID, "fails basic validation")
	}

	if entryErr := tev.ValidateTimeEntryForCreation(entry.ProjectID, entry.Start, entry.End); entryErr != nil {
		if entryValidationErr, ok := entryErr.(*ValidationError); ok {
			validationError.Errors = append(validationError.Errors, entryValidationErr.Errors...)
		}
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidateTimeEntryID validates a time entry ID
func (tev *TimeEntryValidator) ValidateTimeEntryID(id int64) error {
	if !tev.validator.IsValidID(id) {
		validationError := NewValidationError()
		validationError.AddInvalidValueError("time_entry_id", id, "must be a positive integer")
		return validationError
	}
	return nil
}
