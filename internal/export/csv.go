package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"tito/internal/domain"
	"tito/internal/services"
	"tito/internal/timer"
)

// Row pairs a time entry with its project name for flat exports.
type Row struct {
	Project string
	Entry   *domain.TimeEntry
}

// WriteEntriesCSV writes one record per time entry with an RFC-style header
// row. Durations are rendered as HH:MM:SS.
func WriteEntriesCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Project", "Description", "Start", "End", "Duration"}); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.Project,
			row.Entry.Description,
			row.Entry.Start.Format("2006-01-02 15:04:05"),
			row.Entry.End.Format("2006-01-02 15:04:05"),
			timer.FormatElapsedMS(row.Entry.DurationMS),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTotalsCSV writes one record per project with its accumulated time.
func WriteTotalsCSV(w io.Writer, totals []services.ProjectTotal) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Project", "Total", "Hours"}); err != nil {
		return err
	}
	for _, total := range totals {
		record := []string{
			total.Project.Name,
			timer.FormatElapsedMS(total.TotalMS),
			strconv.FormatFloat(total.Hours, 'f', 2, 64),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteBucketsCSV writes one record per period bucket.
func WriteBucketsCSV(w io.Writer, buckets []services.PeriodBucket) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Period", "Entries", "Total"}); err != nil {
		return err
	}
	for _, bucket := range buckets {
		record := []string{
			bucket.Label,
			strconv.Itoa(len(bucket.Entries)),
			timer.FormatElapsedMS(bucket.TotalMS),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
