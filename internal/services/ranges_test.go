package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRangeToday(t *testing.T) {
	now := time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC)

	start, end := RangeToday(now)

	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond), end)
}

func TestRangeThisWeek(t *testing.T) {
	// 2024-01-17 is a Wednesday; the week starts on Sunday the 14th.
	now := time.Date(2024, 1, 17, 14, 30, 0, 0, time.UTC)

	start, end := RangeThisWeek(now)

	assert.Equal(t, time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 1, 21, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond), end)
}

func TestRangeThisWeek_OnASunday(t *testing.T) {
	now := time.Date(2024, 1, 14, 8, 0, 0, 0, time.UTC)

	start, _ := RangeThisWeek(now)

	assert.Equal(t, time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC), start, "a Sunday starts its own week")
}

func TestRangeThisMonth(t *testing.T) {
	now := time.Date(2024, 2, 15, 14, 30, 0, 0, time.UTC)

	start, end := RangeThisMonth(now)

	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond), end)
}

func TestRangeLastNDays(t *testing.T) {
	now := time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC)

	start, end := RangeLastNDays(now, 7)

	// Seven calendar days including today.
	assert.Equal(t, time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond), end)
}
