package export

import (
	"fmt"
	"strings"

	"tito/internal/services"
	"tito/internal/timer"
)

// BuildEntriesMarkdown renders time entries as a Markdown table.
func BuildEntriesMarkdown(title string, rows []Row) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)
	sb.WriteString("| Project | Description | Start | End | Duration |\n")
	sb.WriteString("| --- | --- | --- | --- | --- |\n")

	var totalMS int64
	for _, row := range rows {
		fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s |\n",
			escapeMarkdown(row.Project),
			escapeMarkdown(row.Entry.Description),
			row.Entry.Start.Format("2006-01-02 15:04"),
			row.Entry.End.Format("2006-01-02 15:04"),
			timer.FormatElapsedMS(row.Entry.DurationMS))
		totalMS += row.Entry.DurationMS
	}

	fmt.Fprintf(&sb, "\n**Total: %s**\n", timer.FormatElapsedMS(totalMS))
	return sb.String()
}

// BuildReportMarkdown renders period buckets as a Markdown document with one
// section per bucket.
func BuildReportMarkdown(title string, buckets []services.PeriodBucket, projectNames map[int64]string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n", title)

	for _, bucket := range buckets {
		fmt.Fprintf(&sb, "\n## %s\n\n", bucket.Label)
		if len(bucket.Entries) == 0 {
			sb.WriteString("No entries.\n")
			continue
		}
		sb.WriteString("| Project | Description | Duration |\n")
		sb.WriteString("| --- | --- | --- |\n")
		for _, entry := range bucket.Entries {
			fmt.Fprintf(&sb, "| %s | %s | %s |\n",
				escapeMarkdown(projectNames[entry.ProjectID]),
				escapeMarkdown(entry.Description),
				timer.FormatElapsedMS(entry.DurationMS))
		}
		fmt.Fprintf(&sb, "\nSubtotal: %s\n", timer.FormatElapsedMS(bucket.TotalMS))
	}

	return sb.String()
}

// BuildTotalsMarkdown renders per-project totals as a Markdown table.
func BuildTotalsMarkdown(title string, totals []services.ProjectTotal) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)
	sb.WriteString("| Project | Total | Hours |\n")
	sb.WriteString("| --- | --- | --- |\n")

	var totalMS int64
	for _, total := range totals {
		fmt.Fprintf(&sb, "| %s | %s | %.2f |\n",
			escapeMarkdown(total.Project.Name),
			timer.FormatElapsedMS(total.TotalMS),
			total.Hours)
		totalMS += total.TotalMS
	}

	fmt.Fprintf(&sb, "\n**Total: %s**\n", timer.FormatElapsedMS(totalMS))
	return sb.String()
}

// escapeMarkdown keeps pipes inside user text from breaking table cells.
func escapeMarkdown(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
