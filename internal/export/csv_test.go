package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tito/internal/domain"
	"tito/internal/services"
)

func sampleRows() []Row {
	start := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	first := domain.NewTimeEntry(1, start, start.Add(90*time.Minute))
	first.Description = "morning work"
	second := domain.NewTimeEntry(2, start.Add(3*time.Hour), start.Add(3*time.Hour+15*time.Minute))

	return []Row{
		{Project: "Research", Entry: &first},
		{Project: "Admin", Entry: &second},
	}
}

func TestWriteEntriesCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteEntriesCSV(&buf, sampleRows()))

	out := buf.String()
	assert.Contains(t, out, "Project,Description,Start,End,Duration\n")
	assert.Contains(t, out, "Research,morning work,2024-01-15 09:00:00,2024-01-15 10:30:00,01:30:00\n")
	assert.Contains(t, out, "Admin,,2024-01-15 12:00:00,2024-01-15 12:15:00,00:15:00\n")
}

func TestWriteEntriesCSV_QuotesCommasInDescriptions(t *testing.T) {
	start := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	entry := domain.NewTimeEntry(1, start, start.Add(time.Hour))
	entry.Description = "calls, emails"

	var buf bytes.Buffer
	require.NoError(t, WriteEntriesCSV(&buf, []Row{{Project: "Admin", Entry: &entry}}))

	assert.Contains(t, buf.String(), `"calls, emails"`)
}

func TestWriteEntriesCSV_EmptyWritesHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteEntriesCSV(&buf, nil))

	assert.Equal(t, "Project,Description,Start,End,Duration\n", buf.String())
}

func TestWriteTotalsCSV(t *testing.T) {
	totals := []services.ProjectTotal{
		{
			Project: &domain.Project{ID: 1, Name: "Research"},
			TotalMS: 5400000,
			Hours:   1.5,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTotalsCSV(&buf, totals))

	out := buf.String()
	assert.Contains(t, out, "Project,Total,Hours\n")
	assert.Contains(t, out, "Research,01:30:00,1.50\n")
}

func TestWriteBucketsCSV(t *testing.T) {
	start := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	entry := domain.NewTimeEntry(1, start, start.Add(time.Hour))

	buckets := []services.PeriodBucket{
		{
			Label:   "2024-01-14 - 2024-01-20",
			Entries: []*domain.TimeEntry{&entry},
			TotalMS: 3600000,
		},
		{
			Label: "2024-01-21 - 2024-01-27",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteBucketsCSV(&buf, buckets))

	out := buf.String()
	assert.Contains(t, out, "Period,Entries,Total\n")
	assert.Contains(t, out, "2024-01-14 - 2024-01-20,1,01:00:00\n")
	assert.Contains(t, out, "2024-01-21 - 2024-01-27,0,00:00:00\n")
}
