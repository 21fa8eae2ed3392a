package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"tito/internal/domain"
	"tito/internal/services"
	"tito/internal/timer"
)

// newReportCommand builds the report command group.
func newReportCommand(r *RootCommand) *cobra.Command {
	handler := &ReportCommand{app: r.app, errorHandler: NewErrorHandler()}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Aggregate tracked time",
		Long: `Aggregate tracked time per project and per period.

Date filtering is by overlap: an entry crossing a range boundary is
counted in full on both sides.

Range flags (shared by all report commands):
  --range today|week|month|7d|30d   Quick presets
  --from / --to                     Explicit bounds, e.g. --from 2024-01-01`,
	}

	totalsCmd := &cobra.Command{
		Use:   "totals",
		Short: "Total time per project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return handler.Totals(ctx, rangeFlags(cmd))
		},
	}

	weeklyCmd := &cobra.Command{
		Use:   "weekly",
		Short: "Weekly buckets (weeks start on Sunday)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return handler.Weekly(ctx, rangeFlags(cmd))
		},
	}

	monthlyCmd := &cobra.Command{
		Use:   "monthly",
		Short: "Calendar month buckets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return handler.Monthly(ctx, rangeFlags(cmd))
		},
	}

	for _, sub := range []*cobra.Command{totalsCmd, weeklyCmd, monthlyCmd} {
		sub.Flags().String("range", "", "Quick range preset: today, week, month, 7d, 30d")
		sub.Flags().String("from", "", "Range start, e.g. 2024-01-01")
		sub.Flags().String("to", "", "Range end, e.g. 2024-01-31")
		cmd.AddCommand(sub)
	}

	return cmd
}

// reportRange carries the raw range flags of a report invocation.
type reportRange struct {
	preset string
	from   string
	to     string
}

func rangeFlags(cmd *cobra.Command) reportRange {
	preset, _ := cmd.Flags().GetString("range")
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	return reportRange{preset: preset, from: from, to: to}
}

func (rr reportRange) isSet() bool {
	return rr.preset != "" || rr.from != "" || rr.to != ""
}

// ReportCommand handles the report command group
type ReportCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// Totals prints total tracked time per project, optionally restricted to a
// date range.
func (c *ReportCommand) Totals(ctx context.Context, rr reportRange) error {
	if !rr.isSet() {
		totals, err := c.app.reports.ProjectTotals(ctx)
		if err != nil {
			return c.errorHandler.Handle("generate totals", err)
		}
		c.printTotals(totals)
		return nil
	}

	entries, projects, err := c.fetchAll(ctx)
	if err != nil {
		return c.errorHandler.Handle("generate totals", err)
	}
	start, end, err := resolveRange(rr.preset, rr.from, rr.to, time.Now())
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	filtered := c.app.reports.FilterByDateRange(entries, start, end)
	byProject := c.app.reports.TotalsByProject(filtered)

	totals := make([]services.ProjectTotal, 0, len(projects))
	for _, project := range projects {
		totalMS, ok := byProject[project.ID]
		if !ok {
			continue
		}
		totals = append(totals, services.ProjectTotal{
			Project: project,
			TotalMS: totalMS,
			Hours:   float64(totalMS) / float64(time.Hour.Milliseconds()),
		})
	}
	c.printTotals(totals)
	return nil
}

// Weekly prints Sunday-starting week buckets over the selected range.
func (c *ReportCommand) Weekly(ctx context.Context, rr reportRange) error {
	entries, start, end, ok, err := c.rangeAndEntries(ctx, rr)
	if err != nil || !ok {
		return err
	}
	buckets := c.app.reports.GenerateWeeklyReport(entries, start, end)
	c.printBuckets(buckets)
	return nil
}

// Monthly prints calendar month buckets over the selected range.
func (c *ReportCommand) Monthly(ctx context.Context, rr reportRange) error {
	entries, start, end, ok, err := c.rangeAndEntries(ctx, rr)
	if err != nil || !ok {
		return err
	}
	buckets := c.app.reports.GenerateMonthlyReport(entries, start, end)
	c.printBuckets(buckets)
	return nil
}

// rangeAndEntries loads everything and resolves the effective range. With no
// range flags the report spans all recorded entries.
func (c *ReportCommand) rangeAndEntries(ctx context.Context, rr reportRange) ([]*domain.TimeEntry, time.Time, time.Time, bool, error) {
	entries, _, err := c.fetchAll(ctx)
	if err != nil {
		return nil, time.Time{}, time.Time{}, false, c.errorHandler.Handle("generate report", err)
	}

	if !rr.isSet() {
		start, end, ok := spanOfEntries(entries)
		if !ok {
			fmt.Println("No entries yet")
			return nil, time.Time{}, time.Time{}, false, nil
		}
		return entries, start, end, true, nil
	}

	start, end, err := resolveRange(rr.preset, rr.from, rr.to, time.Now())
	if err != nil {
		return nil, time.Time{}, time.Time{}, false, c.errorHandler.HandleSimple(err)
	}
	return entries, start, end, true, nil
}

// fetchAll loads all entries and projects as domain models.
func (c *ReportCommand) fetchAll(ctx context.Context) ([]*domain.TimeEntry, []*domain.Project, error) {
	dbEntries, err := c.app.repo.ListTimeEntries(ctx)
	if err != nil {
		return nil, nil, err
	}
	projects, err := c.app.projects.ListProjects(ctx)
	if err != nil {
		return nil, nil, err
	}
	mapper := domain.NewMapper()
	return mapper.TimeEntry.FromDatabaseSlice(dbEntries), projects, nil
}

func (c *ReportCommand) printTotals(totals []services.ProjectTotal) {
	if len(totals) == 0 {
		fmt.Println("No tracked time yet")
		return
	}
	var grandTotal int64
	rows := make([][]string, 0, len(totals))
	for _, total := range totals {
		grandTotal += total.TotalMS
		rows = append(rows, []string{
			total.Project.Name,
			timer.FormatElapsedMS(total.TotalMS),
			fmt.Sprintf("%.2f", total.Hours),
		})
	}
	renderTable(os.Stdout, []string{"Project", "Total", "Hours"}, rows)
	fmt.Printf("\nTotal: %s\n", timer.FormatElapsedMS(grandTotal))
}

func (c *ReportCommand) printBuckets(buckets []services.PeriodBucket) {
	if len(buckets) == 0 {
		return
	}
	rows := make([][]string, 0, len(buckets))
	for _, bucket := range buckets {
		rows = append(rows, []string{
			bucket.Label,
			fmt.Sprintf("%d", len(bucket.Entries)),
			timer.FormatElapsedMS(bucket.TotalMS),
		})
	}
	renderTable(os.Stdout, []string{"Period", "Entries", "Total"}, rows)
}

// spanOfEntries returns the earliest start and latest end over all entries.
func spanOfEntries(entries []*domain.TimeEntry) (time.Time, time.Time, bool) {
	if len(entries) == 0 {
		return time.Time{}, time.Time{}, false
	}
	start, end := entries[0].Start, entries[0].End
	for _, entry := range entries[1:] {
		if entry.Start.Before(start) {
			start = entry.Start
		}
		if entry.End.After(end) {
			end = entry.End
		}
	}
	return start, end, true
}
