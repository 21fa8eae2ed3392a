package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// newBackupCommand builds the backup command group.
func newBackupCommand(r *RootCommand) *cobra.Command {
	handler := &BackupCommand{app: r.app, errorHandler: NewErrorHandler()}

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Back up and restore the full database",
		Long: `Back up the full database to a JSON document, or restore from one.

Restoring replaces everything: all current projects and time entries
are dropped before the backup's records are loaded.`,
	}

	exportCmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Write a JSON backup",
		Long:  "Write a JSON backup to the given file, or to stdout without one.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			file := ""
			if len(args) == 1 {
				file = args[0]
			}
			return handler.Export(ctx, file)
		},
	}

	importCmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Restore from a JSON backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return handler.Import(ctx, args[0])
		},
	}

	cmd.AddCommand(exportCmd, importCmd)
	return cmd
}

// BackupCommand handles the backup command group
type BackupCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// Export writes a full JSON backup.
func (c *BackupCommand) Export(ctx context.Context, file string) error {
	data, err := c.app.backup.Export(ctx)
	if err != nil {
		return c.errorHandler.Handle("export backup", err)
	}
	if file == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(file, data, 0644); err != nil {
		return c.errorHandler.Handle("export backup", err)
	}
	fmt.Printf("Wrote %s\n", file)
	return nil
}

// Import replaces the database with a backup's contents.
func (c *BackupCommand) Import(ctx context.Context, file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return c.errorHandler.Handle("import backup", err)
	}
	if err := c.app.backup.Import(ctx, data); err != nil {
		return c.errorHandler.Handle("import backup", err)
	}
	fmt.Println("Backup imported")
	return nil
}
