package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tito/internal/config"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	app    *App
	config *config.Config
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(app *App, cfg *config.Config) *RootCommand {
	root := &RootCommand{
		app:    app,
		config: cfg,
	}

	root.cmd = &cobra.Command{
		Use:   "tito",
		Short: "A command-line time tracking application",
		Long: `TiTo is a command-line application for tracking time spent on projects.

FEATURES:
  • Track time against named projects with a start/pause/stop timer
  • Add, edit, reorder and delete time entries by hand
  • Aggregate totals per project and per week or month
  • Export reports to CSV, Markdown and PDF
  • Back up and restore the full database as JSON
  • Fully configurable via environment variables and command-line flags

EXAMPLES:
  tito project add "Website redesign"      # Create a project
  tito track                               # Run the interactive timer
  tito entry list 1                        # List a project's entries
  tito report totals                       # Time per project
  tito report weekly --range month         # Weekly buckets for this month
  tito export csv --project 1 > out.csv    # Export entries to CSV
  tito backup export > tito.json           # Full JSON backup

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > defaults

  Database Configuration:
    TITO_DB_DIR                            Database directory (default: ~/.tito)
    TITO_DB_FILENAME                       Database filename (default: tito.db)
    TITO_DB_QUERY_TIMEOUT                  Query timeout (default: 10s)
    TITO_DB_WRITE_TIMEOUT                  Write timeout (default: 5s)

  Display Configuration:
    TITO_TIME_DISPLAY_FORMAT               Time format (default: 2006-01-02 15:04:05)
    TITO_DISPLAY_ENTRIES_PER_PAGE          Entries per page (default: 10)
    TITO_DISPLAY_SORT_NEWEST               Newest entries first (default: true)
    TITO_DISPLAY_DATE_ONLY                 Show date only (default: false)

  Validation Configuration:
    TITO_VALIDATION_PROJECT_NAME_MIN       Min project name length (default: 1)
    TITO_VALIDATION_PROJECT_NAME_MAX       Max project name length (default: 255)
    TITO_VALIDATION_MAX_DURATION           Max time entry duration (default: 168h)

  Application Configuration:
    TITO_APP_TIMEOUT                       Application timeout (default: 60s)
    TITO_APP_VERBOSE                       Enable verbose output (default: false)

  Export Configuration:
    TITO_EXPORT_DEFAULT_FORMAT             Default export format (default: csv)
    TITO_EXPORT_OUTPUT_DIR                 Export output directory (default: .)

GETTING HELP:
  tito [command] --help                    # Get help for any specific command
  tito completion bash                     # Generate bash completion script`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.getConfigFromFlags()
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("db-dir", "", "Database directory (overrides TITO_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides TITO_DB_FILENAME)")
	flags.Duration("db-query-timeout", 0, "Database query timeout (overrides TITO_DB_QUERY_TIMEOUT)")
	flags.Duration("db-write-timeout", 0, "Database write timeout (overrides TITO_DB_WRITE_TIMEOUT)")

	flags.String("time-format", "", "Time display format (overrides TITO_TIME_DISPLAY_FORMAT)")
	flags.Int("entries-per-page", 0, "Entries per page (overrides TITO_DISPLAY_ENTRIES_PER_PAGE)")
	flags.Bool("oldest-first", false, "Show oldest entries first (overrides TITO_DISPLAY_SORT_NEWEST)")
	flags.Bool("date-only", false, "Show date only in displays (overrides TITO_DISPLAY_DATE_ONLY)")

	flags.Duration("max-duration", 0, "Maximum time entry duration (overrides TITO_VALIDATION_MAX_DURATION)")

	flags.Duration("app-timeout", 0, "Application timeout (overrides TITO_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides TITO_APP_VERBOSE)")

	flags.String("export-format", "", "Default export format (overrides TITO_EXPORT_DEFAULT_FORMAT)")
	flags.String("output-dir", "", "Export output directory (overrides TITO_EXPORT_OUTPUT_DIR)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	r.cmd.AddCommand(
		newProjectCommand(r),
		newEntryCommand(r),
		newReportCommand(r),
		newExportCommand(r),
		newBackupCommand(r),
		newTrackCommand(r),
		newClearCommand(r),
	)
}

// commandContext returns a context bounded by the configured app timeout.
func (r *RootCommand) commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), r.getAppTimeout())
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil {
		return r.config.Application.Timeout
	}
	return 60 * time.Second
}

// getConfigFromFlags updates the configuration with values from command-line flags
func (r *RootCommand) getConfigFromFlags() error {
	if r.config == nil {
		return fmt.Errorf("configuration not initialized")
	}

	flags := r.cmd.PersistentFlags()

	if dbDir, _ := flags.GetString("db-dir"); dbDir != "" {
		r.config.Database.Dir = dbDir
	}
	if dbFilename, _ := flags.GetString("db-filename"); dbFilename != "" {
		r.config.Database.Filename = dbFilename
	}
	if queryTimeout, _ := flags.GetDuration("db-query-timeout"); queryTimeout > 0 {
		r.config.Database.QueryTimeout = queryTimeout
	}
	if writeTimeout, _ := flags.GetDuration("db-write-timeout"); writeTimeout > 0 {
		r.config.Database.WriteTimeout = writeTimeout
	}

	if timeFormat, _ := flags.GetString("time-format"); timeFormat != "" {
		r.config.Display.TimeFormat = timeFormat
	}
	if entriesPerPage, _ := flags.GetInt("entries-per-page"); entriesPerPage > 0 {
		r.config.Display.EntriesPerPage = entriesPerPage
	}
	if oldestFirst, _ := flags.GetBool("oldest-first"); oldestFirst {
		r.config.Display.SortNewest = false
	}
	if dateOnly, _ := flags.GetBool("date-only"); dateOnly {
		r.config.Display.DateOnly = dateOnly
	}

	if maxDuration, _ := flags.GetDuration("max-duration"); maxDuration > 0 {
		r.config.Validation.MaxDuration = maxDuration
	}

	if appTimeout, _ := flags.GetDuration("app-timeout"); appTimeout > 0 {
		r.config.Application.Timeout = appTimeout
	}
	if verbose, _ := flags.GetBool("verbose"); verbose {
		r.config.Application.Verbose = verbose
	}

	if exportFormat, _ := flags.GetString("export-format"); exportFormat != "" {
		r.config.Export.DefaultFormat = exportFormat
	}
	if outputDir, _ := flags.GetString("output-dir"); outputDir != "" {
		r.config.Export.OutputDir = outputDir
	}

	return nil
}
