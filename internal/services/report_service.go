package services

import (
	"context"
	"fmt"
	"time"

	"tito/internal/domain"
	"tito/internal/repository/sqlite"
)

// reportServiceImpl implements the ReportService interface
type reportServiceImpl struct {
	repo   sqlite.Repository
	mapper *domain.Mapper
}

// NewReportService creates a new ReportService instance
func NewReportService(repo sqlite.Repository) ReportService {
	return &reportServiceImpl{
		repo:   repo,
		mapper: domain.NewMapper(),
	}
}

// TotalsByProject sums entry durations grouped by project id.
func (r *reportServiceImpl) TotalsByProject(entries []*domain.TimeEntry) map[int64]int64 {
	totals := make(map[int64]int64)
	for _, entry := range entries {
		totals[entry.ProjectID] += entry.DurationMS
	}
	return totals
}

// FilterByDateRange keeps entries overlapping [rangeStart, rangeEnd]. An
// entry is included when its start falls within the range, its end falls
// within the range, or it fully spans the range. The full entry duration
// stays attached; nothing is clipped to the range.
func (r *reportServiceImpl) FilterByDateRange(entries []*domain.TimeEntry, rangeStart, rangeEnd time.Time) []*domain.TimeEntry {
	filtered := make([]*domain.TimeEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.Overlaps(rangeStart, rangeEnd) {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}

// GenerateWeeklyReport partitions [rangeStart, rangeEnd] into Sunday-starting
// week buckets and sums the full duration of every overlapping entry per
// bucket. An entry spanning a week boundary is counted whole in both weeks,
// so the sum across buckets can exceed the plain total.
func (r *reportServiceImpl) GenerateWeeklyReport(entries []*domain.TimeEntry, rangeStart, rangeEnd time.Time) []PeriodBucket {
	var buckets []PeriodBucket

	weekStart := startOfWeek(rangeStart)
	for !weekStart.After(rangeEnd) {
		nextWeek := weekStart.AddDate(0, 0, 7)
		bucketEnd := nextWeek.Add(-time.Nanosecond)
		label := fmt.Sprintf("%s - %s",
			weekStart.Format("2006-01-02"),
			weekStart.AddDate(0, 0, 6).Format("2006-01-02"))

		buckets = append(buckets, r.makeBucket(entries, label, weekStart, bucketEnd))
		weekStart = nextWeek
	}

	return buckets
}

// GenerateMonthlyReport is the calendar-month counterpart of the weekly
// report, labelled like "January 2024".
func (r *reportServiceImpl) GenerateMonthlyReport(entries []*domain.TimeEntry, rangeStart, rangeEnd time.Time) []PeriodBucket {
	var buckets []PeriodBucket

	monthStart := startOfMonth(rangeStart)
	for !monthStart.After(rangeEnd) {
		nextMonth := monthStart.AddDate(0, 1, 0)
		bucketEnd := nextMonth.Add(-time.Nanosecond)
		label := monthStart.Format("January 2006")

		buckets = append(buckets, r.makeBucket(entries, label, monthStart, bucketEnd))
		monthStart = nextMonth
	}

	return buckets
}

// ProjectTotals fetches everything and joins totals with project metadata,
// ordered by project display order. Projects without entries are skipped,
// matching the chart behavior.
func (r *reportServiceImpl) ProjectTotals(ctx context.Context) ([]ProjectTotal, error) {
	dbEntries, err := r.repo.ListTimeEntries(ctx)
	if err != nil {
		return nil, err
	}
	dbProjects, err := r.repo.ListProjects(ctx)
	if err != nil {
		return nil, err
	}

	entries := r.mapper.TimeEntry.FromDatabaseSlice(dbEntries)
	totals := r.TotalsByProject(entries)

	// ListProjects already sorts by display order.
	result := make([]ProjectTotal, 0, len(dbProjects))
	for _, dbProject := range dbProjects {
		totalMS, ok := totals[dbProject.ID]
		if !ok {
			continue
		}
		project := r.mapper.Project.FromDatabase(*dbProject)
		result = append(result, ProjectTotal{
			Project: &project,
			TotalMS: totalMS,
			Hours:   float64(totalMS) / float64(time.Hour.Milliseconds()),
		})
	}
	return result, nil
}

// makeBucket selects overlapping entries for one period and sums their full
// durations.
func (r *reportServiceImpl) makeBucket(entries []*domain.TimeEntry, label string, start, end time.Time) PeriodBucket {
	bucket := PeriodBucket{
		Label: label,
		Start: start,
		End:   end,
	}
	for _, entry := range entries {
		if entry.Overlaps(start, end) {
			bucket.Entries = append(bucket.Entries, entry)
			bucket.TotalMS += entry.DurationMS
		}
	}
	return bucket
}

// startOfWeek returns midnight of the Sunday on or before t.
func startOfWeek(t time.Time) time.Time {
	day := startOfDay(t)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// startOfMonth returns midnight of the first day of t's month.
func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// startOfDay returns midnight of t's calendar day.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
