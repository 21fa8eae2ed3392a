package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"tito/internal/repository/sqlite"
)

// newClearCommand builds the wipe-everything command.
func newClearCommand(r *RootCommand) *cobra.Command {
	handler := &ClearCommand{app: r.app, errorHandler: NewErrorHandler()}

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all projects and time entries",
		Long: `Delete every project and every time entry.

This operation cannot be undone. It requires the --force flag.
Take a backup first with: tito backup export`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			force, _ := cmd.Flags().GetBool("force")
			return handler.Clear(ctx, force)
		},
	}
	cmd.Flags().Bool("force", false, "Confirm deleting everything")
	return cmd
}

// ClearCommand handles the clear command
type ClearCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// Clear wipes the entire store.
func (c *ClearCommand) Clear(ctx context.Context, force bool) error {
	if !force {
		fmt.Println("Refusing to delete everything without --force")
		return nil
	}
	c.app.timer.Reset()
	if err := c.app.repo.ReplaceAll(ctx, []*sqlite.Project{}, []*sqlite.TimeEntry{}); err != nil {
		return c.errorHandler.Handle("clear data", err)
	}
	fmt.Println("All projects and time entries deleted")
	return nil
}
