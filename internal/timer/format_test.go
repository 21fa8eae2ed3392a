package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		expected string
	}{
		{
			name:     "should format zero",
			duration: 0,
			expected: "00:00:00",
		},
		{
			name:     "should format seconds",
			duration: 42 * time.Second,
			expected: "00:00:42",
		},
		{
			name:     "should format minutes and seconds",
			duration: 5*time.Minute + 3*time.Second,
			expected: "00:05:03",
		},
		{
			name:     "should format hours past 24",
			duration: 26*time.Hour + 30*time.Minute,
			expected: "26:30:00",
		},
		{
			name:     "should truncate sub-second precision",
			duration: 1999 * time.Millisecond,
			expected: "00:00:01",
		},
		{
			name:     "should clamp negative durations to zero",
			duration: -time.Minute,
			expected: "00:00:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatElapsed(tt.duration))
		})
	}
}

func TestFormatElapsedMS(t *testing.T) {
	assert.Equal(t, "00:00:02", FormatElapsedMS(2000))
	assert.Equal(t, "01:00:00", FormatElapsedMS(3600000))
}
