package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tito/internal/domain"
)

func TestTimeEntryValidator_ValidateTimeEntryForCreation(t *testing.T) {
	start := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		projectID   int64
		start       time.Time
		end         time.Time
		expectError bool
	}{
		{
			name:      "should accept a normal entry",
			projectID: 1,
			start:     start,
			end:       start.Add(time.Hour),
		},
		{
			name:      "should accept a zero-duration entry",
			projectID: 1,
			start:     start,
			end:       start,
		},
		{
			name:        "should reject a missing project id",
			projectID:   0,
			start:       start,
			end:         start.Add(time.Hour),
			expectError: true,
		},
		{
			name:        "should reject end before start",
			projectID:   1,
			start:       start,
			end:         start.Add(-time.Minute),
			expectError: true,
		},
		{
			name:        "should reject a zero start time",
			projectID:   1,
			start:       time.Time{},
			end:         start,
			expectError: true,
		},
		{
			name:        "should reject a duration over the limit",
			projectID:   1,
			start:       start,
			end:         start.Add(8 * 24 * time.Hour),
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := NewTimeEntryValidator()

			err := validator.ValidateTimeEntryForCreation(tt.projectID, tt.start, tt.end)

			if tt.expectError {
				assert.Error(t, err)
				assert.True(t, IsValidationError(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTimeEntryValidator_ValidateTimeEntry(t *testing.T) {
	start := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

	t.Run("should accept an entry with a consistent duration", func(t *testing.T) {
		validator := NewTimeEntryValidator()
		entry := domain.NewTimeEntry(1, start, start.Add(time.Hour))
		entry.ID = 1

		assert.NoError(t, validator.ValidateTimeEntry(entry))
	})

	t.Run("should reject an entry whose duration drifted from its bounds", func(t *testing.T) {
		validator := NewTimeEntryValidator()
		entry := domain.NewTimeEntry(1, start, start.Add(time.Hour))
		entry.ID = 1
		entry.DurationMS = 12345

		assert.Error(t, validator.ValidateTimeEntry(entry))
	})
}

func TestTimeEntryValidator_ValidateTimeEntryID(t *testing.T) {
	validator := NewTimeEntryValidator()

	assert.NoError(t, validator.ValidateTimeEntryID(10))
	assert.Error(t, validator.ValidateTimeEntryID(0))
}
