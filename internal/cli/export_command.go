package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"tito/internal/domain"
	"tito/internal/errors"
	"tito/internal/export"
	"tito/internal/services"
)

// newExportCommand builds the export command group.
func newExportCommand(r *RootCommand) *cobra.Command {
	handler := &ExportCommand{app: r.app, errorHandler: NewErrorHandler()}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export entries and reports",
		Long: `Export time entries and reports to CSV, Markdown or PDF.

CSV and Markdown go to stdout unless --out is given; PDF always needs
--out. Entries can be restricted to one project and to a date range.

Examples:
  tito export csv > all.csv
  tito export csv --project 2 --range month
  tito export markdown --group week --out report.md
  tito export pdf --out report.pdf --range 30d`,
	}

	csvCmd := &cobra.Command{
		Use:   "csv",
		Short: "Export as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return handler.CSV(ctx, exportFlags(cmd))
		},
	}

	markdownCmd := &cobra.Command{
		Use:   "markdown",
		Short: "Export as Markdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return handler.Markdown(ctx, exportFlags(cmd))
		},
	}

	pdfCmd := &cobra.Command{
		Use:   "pdf",
		Short: "Export as PDF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return handler.PDF(ctx, exportFlags(cmd))
		},
	}

	for _, sub := range []*cobra.Command{csvCmd, markdownCmd, pdfCmd} {
		sub.Flags().Int64("project", 0, "Restrict to one project id")
		sub.Flags().String("range", "", "Quick range preset: today, week, month, 7d, 30d")
		sub.Flags().String("from", "", "Range start, e.g. 2024-01-01")
		sub.Flags().String("to", "", "Range end, e.g. 2024-01-31")
		sub.Flags().String("out", "", "Output file")
		if sub != pdfCmd {
			sub.Flags().Bool("totals", false, "Export per-project totals instead of entries")
			sub.Flags().String("group", "", "Bucket entries by period: week or month")
		}
		cmd.AddCommand(sub)
	}

	return cmd
}

// exportOptions carries the flags of one export invocation.
type exportOptions struct {
	projectID int64
	rr        reportRange
	out       string
	totals    bool
	group     string
}

func exportFlags(cmd *cobra.Command) exportOptions {
	projectID, _ := cmd.Flags().GetInt64("project")
	out, _ := cmd.Flags().GetString("out")
	totals, _ := cmd.Flags().GetBool("totals")
	group, _ := cmd.Flags().GetString("group")
	return exportOptions{
		projectID: projectID,
		rr:        rangeFlags(cmd),
		out:       out,
		totals:    totals,
		group:     group,
	}
}

// ExportCommand handles the export command group
type ExportCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// CSV exports entries, totals or period buckets as CSV.
func (c *ExportCommand) CSV(ctx context.Context, opts exportOptions) error {
	w, closeFn, err := c.openOutput(opts.out)
	if err != nil {
		return c.errorHandler.Handle("export csv", err)
	}
	defer closeFn()

	if opts.totals {
		totals, err := c.app.reports.ProjectTotals(ctx)
		if err != nil {
			return c.errorHandler.Handle("export csv", err)
		}
		return export.WriteTotalsCSV(w, totals)
	}

	rows, entries, _, err := c.collect(ctx, opts)
	if err != nil {
		return err
	}
	if opts.group != "" {
		buckets, err := c.bucketize(entries, opts)
		if err != nil {
			return c.errorHandler.HandleSimple(err)
		}
		return export.WriteBucketsCSV(w, buckets)
	}
	return export.WriteEntriesCSV(w, rows)
}

// Markdown exports entries, totals or period buckets as Markdown.
func (c *ExportCommand) Markdown(ctx context.Context, opts exportOptions) error {
	w, closeFn, err := c.openOutput(opts.out)
	if err != nil {
		return c.errorHandler.Handle("export markdown", err)
	}
	defer closeFn()

	if opts.totals {
		totals, err := c.app.reports.ProjectTotals(ctx)
		if err != nil {
			return c.errorHandler.Handle("export markdown", err)
		}
		_, err = io.WriteString(w, export.BuildTotalsMarkdown("Time per Project", totals))
		return err
	}

	rows, entries, names, err := c.collect(ctx, opts)
	if err != nil {
		return err
	}
	if opts.group != "" {
		buckets, err := c.bucketize(entries, opts)
		if err != nil {
			return c.errorHandler.HandleSimple(err)
		}
		_, err = io.WriteString(w, export.BuildReportMarkdown("Time Report", buckets, names))
		return err
	}
	_, err = io.WriteString(w, export.BuildEntriesMarkdown("Time Entries", rows))
	return err
}

// PDF exports entries as a PDF report.
func (c *ExportCommand) PDF(ctx context.Context, opts exportOptions) error {
	if opts.out == "" {
		return c.errorHandler.HandleSimple(errors.NewInvalidInputError("out", "", "pdf export needs --out"))
	}

	rows, _, _, err := c.collect(ctx, opts)
	if err != nil {
		return err
	}

	var start, end time.Time
	if opts.rr.isSet() {
		start, end, err = resolveRange(opts.rr.preset, opts.rr.from, opts.rr.to, time.Now())
		if err != nil {
			return c.errorHandler.HandleSimple(err)
		}
	}

	path := c.outputPath(opts.out)
	if err := export.GeneratePDF(path, "Time Report", rows, start, end); err != nil {
		return c.errorHandler.Handle("export pdf", err)
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

// collect loads entries per the options, filters by range and joins project
// names.
func (c *ExportCommand) collect(ctx context.Context, opts exportOptions) ([]export.Row, []*domain.TimeEntry, map[int64]string, error) {
	projects, err := c.app.projects.ListProjects(ctx)
	if err != nil {
		return nil, nil, nil, c.errorHandler.Handle("export", err)
	}
	names := make(map[int64]string, len(projects))
	for _, p := range projects {
		names[p.ID] = p.Name
	}

	var entries []*domain.TimeEntry
	if opts.projectID > 0 {
		entries, err = c.app.entries.ListForProject(ctx, opts.projectID)
	} else {
		entries, err = c.allEntries(ctx)
	}
	if err != nil {
		return nil, nil, nil, c.errorHandler.Handle("export", err)
	}

	if opts.rr.isSet() {
		start, end, rerr := resolveRange(opts.rr.preset, opts.rr.from, opts.rr.to, time.Now())
		if rerr != nil {
			return nil, nil, nil, c.errorHandler.HandleSimple(rerr)
		}
		entries = c.app.reports.FilterByDateRange(entries, start, end)
	}

	rows := make([]export.Row, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, export.Row{Project: names[entry.ProjectID], Entry: entry})
	}
	return rows, entries, names, nil
}

func (c *ExportCommand) allEntries(ctx context.Context) ([]*domain.TimeEntry, error) {
	dbEntries, err := c.app.repo.ListTimeEntries(ctx)
	if err != nil {
		return nil, err
	}
	return domain.NewMapper().TimeEntry.FromDatabaseSlice(dbEntries), nil
}

// bucketize groups the entries by the requested period over their full span.
func (c *ExportCommand) bucketize(entries []*domain.TimeEntry, opts exportOptions) ([]services.PeriodBucket, error) {
	start, end, ok := spanOfEntries(entries)
	if !ok {
		return nil, nil
	}
	if opts.rr.isSet() {
		var err error
		start, end, err = resolveRange(opts.rr.preset, opts.rr.from, opts.rr.to, time.Now())
		if err != nil {
			return nil, err
		}
	}
	switch opts.group {
	case "week":
		return c.app.reports.GenerateWeeklyReport(entries, start, end), nil
	case "month":
		return c.app.reports.GenerateMonthlyReport(entries, start, end), nil
	default:
		return nil, errors.NewInvalidInputError("group", opts.group, "must be week or month")
	}
}

// openOutput returns the export writer: stdout by default, a file under the
// configured output directory when --out is given.
func (c *ExportCommand) openOutput(out string) (io.Writer, func(), error) {
	if out == "" {
		return os.Stdout, func() {}, nil
	}
	path := c.outputPath(out)
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

// outputPath resolves a relative --out against the configured output dir.
func (c *ExportCommand) outputPath(out string) string {
	if filepath.IsAbs(out) || c.app.config.Export.OutputDir == "" {
		return out
	}
	return filepath.Join(c.app.config.Export.OutputDir, out)
}
