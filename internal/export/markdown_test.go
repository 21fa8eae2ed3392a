package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tito/internal/domain"
	"tito/internal/services"
)

func TestBuildEntriesMarkdown(t *testing.T) {
	out := BuildEntriesMarkdown("Time entries", sampleRows())

	assert.True(t, strings.HasPrefix(out, "# Time entries\n"))
	assert.Contains(t, out, "| Project | Description | Start | End | Duration |")
	assert.Contains(t, out, "| Research | morning work | 2024-01-15 09:00 | 2024-01-15 10:30 | 01:30:00 |")
	assert.Contains(t, out, "**Total: 01:45:00**")
}

func TestBuildEntriesMarkdown_EscapesPipes(t *testing.T) {
	start := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	entry := domain.NewTimeEntry(1, start, start.Add(time.Hour))
	entry.Description = "a|b"

	out := BuildEntriesMarkdown("Entries", []Row{{Project: "P", Entry: &entry}})

	assert.Contains(t, out, `a\|b`)
}

func TestBuildReportMarkdown(t *testing.T) {
	start := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	entry := domain.NewTimeEntry(1, start, start.Add(time.Hour))
	entry.Description = "sprint work"

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
	names := map[int64]string{1: "Research"}

	out := BuildReportMarkdown("Weekly report", buckets, names)

	assert.True(t, strings.HasPrefix(out, "# Weekly report\n"))
	assert.Contains(t, out, "## 2024-01-14 - 2024-01-20")
	assert.Contains(t, out, "| Research | sprint work | 01:00:00 |")
	assert.Contains(t, out, "Subtotal: 01:00:00")
	assert.Contains(t, out, "## 2024-01-21 - 2024-01-27")
	assert.Contains(t, out, "No entries.")
}

func TestBuildTotalsMarkdown(t *testing.T) {
	totals := []services.ProjectTotal{
		{
			Project: &domain.Project{ID: 1, Name: "Research"},
			TotalMS: 5400000,
			Hours:   1.5,
		},
		{
			Project: &domain.Project{ID: 2, Name: "Admin"},
			TotalMS: 1800000,
			Hours:   0.5,
		},
	}

	out := BuildTotalsMarkdown("Totals", totals)

	assert.Contains(t, out, "| Research | 01:30:00 | 1.50 |")
	assert.Contains(t, out, "| Admin | 00:30:00 | 0.50 |")
	assert.Contains(t, out, "**Total: 02:00:00**")
}
