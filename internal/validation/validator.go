package validation

import (
	"strings"
	"time"

	"tito/internal/config"
)

// Validator provides common validation utilities
type Validator struct {
	config *config.Config
}

// NewValidator creates a new validator instance using default limits
func NewValidator() *Validator {
	return &Validator{config: nil}
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{config: cfg}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks if a string length is within the specified range
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := len(strings.TrimSpace(s))
	return length >= min && length <= max
}

// IsValidProjectNameLength checks if a project name length is within configured limits
func (v *Validator) IsValidProjectNameLength(name string) bool {
	return v.IsValidStringLength(name, v.projectNameMinLength(), v.projectNameMaxLength())
}

// IsValidID checks if a record ID is valid (positive)
func (v *Validator) IsValidID(id int64) bool {
	return id > 0
}

// IsValidTimeOrder checks that end does not precede start. Equal values are
// allowed; zero-duration placeholder entries are valid.
func (v *Validator) IsValidTimeOrder(start, end time.Time) bool {
	return !end.Before(start)
}

// IsReasonableDate checks if a date is within reasonable bounds
func (v *Validator) IsReasonableDate(t time.Time) bool {
	now := time.Now()
	tenYearsAgo := now.AddDate(-10, 0, 0)
	oneYearFromNow := now.AddDate(1, 0, 0)

	return t.After(tenYearsAgo) && t.Before(oneYearFromNow)
}

// IsValidDuration checks if a duration is within configured bounds.
// Zero is allowed for manual placeholder entries.
func (v *Validator) IsValidDuration(duration time.Duration) bool {
	return duration >= 0 && duration <= v.maxDuration()
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

func (v *Validator) projectNameMinLength() int {
	if v.config != nil {
		return v.config.Validation.ProjectNameMinLength
	}
	return 1
}

func (v *Validator) projectNameMaxLength() int {
	if v.config != nil {
		return v.config.Validation.ProjectNameMaxLength
	}
	return 255
}

func (v *Validator) maxDuration() time.Duration {
	if v.config != nil {
		return v.config.Validation.MaxDuration
	}
	return 7 * 24 * time.Hour
}
