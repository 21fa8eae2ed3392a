package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		name        string
		arg         string
		expected    int64
		expectError bool
	}{
		{
			name:     "should parse a positive id",
			arg:      "42",
			expected: 42,
		},
		{
			name:        "should reject zero",
			arg:         "0",
			expectError: true,
		},
		{
			name:        "should reject negative ids",
			arg:         "-3",
			expectError: true,
		},
		{
			name:        "should reject non-numeric input",
			arg:         "abc",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := parseID("id", tt.arg)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, id)
			}
		})
	}
}

func TestParseTimeArg(t *testing.T) {
	tests := []struct {
		name     string
		arg      string
		expected time.Time
	}{
		{
			name:     "should parse a bare date",
			arg:      "2024-01-15",
			expected: time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local),
		},
		{
			name:     "should parse date and minutes",
			arg:      "2024-01-15 09:30",
			expected: time.Date(2024, 1, 15, 9, 30, 0, 0, time.Local),
		},
		{
			name:     "should parse date and seconds",
			arg:      "2024-01-15 09:30:45",
			expected: time.Date(2024, 1, 15, 9, 30, 45, 0, time.Local),
		},
		{
			name:     "should parse RFC3339",
			arg:      "2024-01-15T09:30:00Z",
			expected: time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := parseTimeArg("start", tt.arg)
			require.NoError(t, err)
			assert.True(t, parsed.Equal(tt.expected), "got %v, want %v", parsed, tt.expected)
		})
	}
}

func TestParseTimeArg_RejectsGarbage(t *testing.T) {
	_, err := parseTimeArg("start", "yesterday-ish")
	assert.Error(t, err)
}

func TestResolveRange_Presets(t *testing.T) {
	now := time.Date(2024, 1, 17, 14, 30, 0, 0, time.UTC) // a Wednesday

	tests := []struct {
		name          string
		preset        string
		expectedStart time.Time
		expectedEnd   time.Time
	}{
		{
			name:          "should resolve today",
			preset:        "today",
			expectedStart: time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC),
			expectedEnd:   time.Date(2024, 1, 18, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond),
		},
		{
			name:          "should resolve the Sunday-starting week",
			preset:        "week",
			expectedStart: time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC),
			expectedEnd:   time.Date(2024, 1, 21, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond),
		},
		{
			name:          "should resolve the calendar month",
			preset:        "month",
			expectedStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			expectedEnd:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond),
		},
		{
			name:          "should resolve the last seven days",
			preset:        "7d",
			expectedStart: time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC),
			expectedEnd:   time.Date(2024, 1, 18, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := resolveRange(tt.preset, "", "", now)
			require.NoError(t, err)
			assert.True(t, start.Equal(tt.expectedStart), "start: got %v, want %v", start, tt.expectedStart)
			assert.True(t, end.Equal(tt.expectedEnd), "end: got %v, want %v", end, tt.expectedEnd)
		})
	}
}

func TestResolveRange_UnknownPreset(t *testing.T) {
	_, _, err := resolveRange("fortnight", "", "", time.Now())
	assert.Error(t, err)
}

func TestResolveRange_FromTo(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local)

	start, end, err := resolveRange("", "2024-01-01", "2024-01-31", now)
	require.NoError(t, err)
	assert.True(t, start.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)))
	// A bare --to date covers its whole day.
	wantEnd := time.Date(2024, 2, 1, 0, 0, 0, 0, time.Local).Add(-time.Nanosecond)
	assert.True(t, end.Equal(wantEnd), "got %v, want %v", end, wantEnd)
}

func TestResolveRange_BareFromRunsToNow(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local)

	start, end, err := resolveRange("", "2024-02-01", "", now)
	require.NoError(t, err)
	assert.True(t, start.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.Local)))
	assert.True(t, end.Equal(now))
}

func TestResolveRange_ToWithTimeKeepsIt(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local)

	_, end, err := resolveRange("", "", "2024-01-31 18:30", now)
	require.NoError(t, err)
	assert.True(t, end.Equal(time.Date(2024, 1, 31, 18, 30, 0, 0, time.Local)))
}
