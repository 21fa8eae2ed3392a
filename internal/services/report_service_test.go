package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tito/internal/domain"
	"tito/internal/repository/sqlite"
)

func newReportService(t *testing.T) (ReportService, sqlite.Repository) {
	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return NewReportService(repo), repo
}

func makeEntry(projectID int64, start time.Time, duration time.Duration) *domain.TimeEntry {
	entry := domain.NewTimeEntry(projectID, start, start.Add(duration))
	return &entry
}

func TestReportService_TotalsByProject(t *testing.T) {
	service, _ := newReportService(t)

	base := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	entries := []*domain.TimeEntry{
		makeEntry(1, base, time.Hour),
		makeEntry(1, base.Add(2*time.Hour), 30*time.Minute),
		makeEntry(2, base, 15*time.Minute),
	}

	totals := service.TotalsByProject(entries)

	assert.Equal(t, int64(5400000), totals[1])
	assert.Equal(t, int64(900000), totals[2])
	assert.Len(t, totals, 2)
}

func TestReportService_FilterByDateRange(t *testing.T) {
	service, _ := newReportService(t)

	dayStart := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1).Add(-time.Nanosecond)

	inside := makeEntry(1, dayStart.Add(9*time.Hour), time.Hour)
	startsBefore := makeEntry(1, dayStart.Add(-time.Hour), 2*time.Hour)
	endsAfter := makeEntry(1, dayStart.Add(23*time.Hour), 2*time.Hour)
	spanning := makeEntry(1, dayStart.Add(-24*time.Hour), 72*time.Hour)
	dayBefore := makeEntry(1, dayStart.Add(-10*time.Hour), time.Hour)
	dayAfter := makeEntry(1, dayEnd.Add(10*time.Hour), time.Hour)

	all := []*domain.TimeEntry{inside, startsBefore, endsAfter, spanning, dayBefore, dayAfter}
	filtered := service.FilterByDateRange(all, dayStart, dayEnd)

	require.Len(t, filtered, 4)
	assert.Contains(t, filtered, inside)
	assert.Contains(t, filtered, startsBefore)
	assert.Contains(t, filtered, endsAfter)
	assert.Contains(t, filtered, spanning)
	assert.NotContains(t, filtered, dayBefore)
	assert.NotContains(t, filtered, dayAfter)
}

func TestReportService_FilterByDateRange_KeepsFullDuration(t *testing.T) {
	service, _ := newReportService(t)

	// 23:00 Jan 15 to 01:00 Jan 16: the entry belongs to both days, whole.
	start := time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC)
	entry := makeEntry(1, start, 2*time.Hour)

	jan15 := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	jan16 := jan15.AddDate(0, 0, 1)

	day15 := service.FilterByDateRange([]*domain.TimeEntry{entry}, jan15, jan16.Add(-time.Nanosecond))
	day16 := service.FilterByDateRange([]*domain.TimeEntry{entry}, jan16, jan16.AddDate(0, 0, 1).Add(-time.Nanosecond))

	require.Len(t, day15, 1)
	require.Len(t, day16, 1)
	assert.Equal(t, int64(7200000), day15[0].DurationMS, "no clipping at midnight")
	assert.Equal(t, int64(7200000), day16[0].DurationMS)
}

func TestReportService_GenerateWeeklyReport(t *testing.T) {
	service, _ := newReportService(t)

	// 2024-01-07 is a Sunday.
	week1 := time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)  // Monday of week 1
	week2 := time.Date(2024, 1, 16, 9, 0, 0, 0, time.UTC) // Tuesday of week 2
	entries := []*domain.TimeEntry{
		makeEntry(1, week1, time.Hour),
		makeEntry(1, week1.Add(24*time.Hour), 30*time.Minute),
		makeEntry(2, week2, 2*time.Hour),
	}

	rangeStart := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	rangeEnd := time.Date(2024, 1, 20, 23, 59, 59, 0, time.UTC)

	buckets := service.GenerateWeeklyReport(entries, rangeStart, rangeEnd)

	require.Len(t, buckets, 2)
	assert.Equal(t, "2024-01-07 - 2024-01-13", buckets[0].Label)
	assert.Equal(t, "2024-01-14 - 2024-01-20", buckets[1].Label)
	assert.Equal(t, int64(5400000), buckets[0].TotalMS)
	assert.Len(t, buckets[0].Entries, 2)
	assert.Equal(t, int64(7200000), buckets[1].TotalMS)
}

func TestReportService_GenerateWeeklyReport_BoundarySpanCountsInBoth(t *testing.T) {
	service, _ := newReportService(t)

	// Saturday 23:00 to Sunday 01:00 straddles the week boundary.
	start := time.Date(2024, 1, 13, 23, 0, 0, 0, time.UTC)
	entries := []*domain.TimeEntry{makeEntry(1, start, 2*time.Hour)}

	rangeStart := time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)
	rangeEnd := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)

	buckets := service.GenerateWeeklyReport(entries, rangeStart, rangeEnd)

	require.Len(t, buckets, 2)
	assert.Equal(t, int64(7200000), buckets[0].TotalMS, "full duration in the first week")
	assert.Equal(t, int64(7200000), buckets[1].TotalMS, "and again in the second")
}

func TestReportService_GenerateWeeklyReport_EmptyWeeksIncluded(t *testing.T) {
	service, _ := newReportService(t)

	rangeStart := time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)
	rangeEnd := time.Date(2024, 1, 27, 0, 0, 0, 0, time.UTC)

	buckets := service.GenerateWeeklyReport(nil, rangeStart, rangeEnd)

	require.Len(t, buckets, 3)
	for _, bucket := range buckets {
		assert.Zero(t, bucket.TotalMS)
		assert.Empty(t, bucket.Entries)
	}
}

func TestReportService_GenerateMonthlyReport(t *testing.T) {
	service, _ := newReportService(t)

	entries := []*domain.TimeEntry{
		makeEntry(1, time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC), time.Hour),
		makeEntry(1, time.Date(2024, 2, 5, 9, 0, 0, 0, time.UTC), 2*time.Hour),
	}

	rangeStart := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rangeEnd := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)

	buckets := service.GenerateMonthlyReport(entries, rangeStart, rangeEnd)

	require.Len(t, buckets, 2)
	assert.Equal(t, "January 2024", buckets[0].Label)
	assert.Equal(t, "February 2024", buckets[1].Label)
	assert.Equal(t, int64(3600000), buckets[0].TotalMS)
	assert.Equal(t, int64(7200000), buckets[1].TotalMS)
}

func TestReportService_ProjectTotals(t *testing.T) {
	service, repo := newReportService(t)
	ctx := context.Background()

	first := &sqlite.Project{Name: "First", Position: 0}
	second := &sqlite.Project{Name: "Second", Position: 1}
	idle := &sqlite.Project{Name: "Idle", Position: 2}
	require.NoError(t, repo.CreateProject(ctx, first))
	require.NoError(t, repo.CreateProject(ctx, second))
	require.NoError(t, repo.CreateProject(ctx, idle))

	base := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	for _, seed := range []struct {
		projectID int64
		duration  time.Duration
	}{
		{first.ID, 90 * time.Minute},
		{second.ID, 30 * time.Minute},
		{first.ID, 30 * time.Minute},
	} {
		entry := &sqlite.TimeEntry{
			ProjectID:  seed.projectID,
			StartTime:  base,
			EndTime:    base.Add(seed.duration),
			DurationMS: seed.duration.Milliseconds(),
		}
		require.NoError(t, repo.CreateTimeEntry(ctx, entry))
	}

	totals, err := service.ProjectTotals(ctx)
	require.NoError(t, err)

	require.Len(t, totals, 2, "projects without entries are skipped")
	assert.Equal(t, "First", totals[0].Project.Name)
	assert.Equal(t, int64(7200000), totals[0].TotalMS)
	assert.InDelta(t, 2.0, totals[0].Hours, 0.0001)
	assert.Equal(t, "Second", totals[1].Project.Name)
	assert.Equal(t, int64(1800000), totals[1].TotalMS)
	assert.InDelta(t, 0.5, totals[1].Hours, 0.0001)
}
