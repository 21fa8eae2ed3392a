package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tito/internal/domain"
	"tito/internal/services"
	"tito/internal/timer"
)

// newEntryCommand builds the time entry command group.
func newEntryCommand(r *RootCommand) *cobra.Command {
	handler := &EntryCommand{app: r.app, errorHandler: NewErrorHandler()}

	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Manage time entries",
		Long:  "Add, edit, reorder and delete time entries by hand.",
	}

	addCmd := &cobra.Command{
		Use:   "add [project-id]",
		Short: "Add a blank time entry",
		Long: `Add a zero-duration entry to a project, stamped with the current
time. Edit the bounds afterwards with "tito entry edit".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return handler.Add(ctx, args[0])
		},
	}

	editCmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Edit a time entry's bounds or description",
		Long: `Edit a time entry. Duration always tracks the start and end bounds
and cannot be set directly.

Examples:
  tito entry edit 5 --start "2024-01-15 09:00" --end "2024-01-15 10:30"
  tito entry edit 5 --description "Sprint planning"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			start, _ := cmd.Flags().GetString("start")
			end, _ := cmd.Flags().GetString("end")
			description, _ := cmd.Flags().GetString("description")
			descriptionSet := cmd.Flags().Changed("description")
			return handler.Edit(ctx, args[0], start, end, description, descriptionSet)
		},
	}
	editCmd.Flags().String("start", "", "New start time")
	editCmd.Flags().String("end", "", "New end time")
	editCmd.Flags().String("description", "", "New description")

	describeCmd := &cobra.Command{
		Use:   "describe [id] [text]",
		Short: "Set a time entry's description",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return handler.Describe(ctx, args[0], strings.Join(args[1:], " "))
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a time entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return handler.Delete(ctx, args[0])
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear [project-id]",
		Short: "Delete all time entries of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return handler.Clear(ctx, args[0])
		},
	}

	listCmd := &cobra.Command{
		Use:   "list [project-id]",
		Short: "List a project's time entries",
		Long: `List a project's time entries one page at a time, sorted
chronologically. The page is clamped into the valid range.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			page, _ := cmd.Flags().GetInt("page")
			all, _ := cmd.Flags().GetBool("all")
			return handler.List(ctx, args[0], page, all)
		},
	}
	listCmd.Flags().Int("page", 1, "Page to show")
	listCmd.Flags().Bool("all", false, "Show all entries on one page")

	reorderCmd := &cobra.Command{
		Use:   "reorder [project-id] [entry-id...]",
		Short: "Reorder a project's time entries",
		Long: `Assign display order from the given entry id sequence. Entries not
listed keep their prior order; ids outside the project are ignored.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return handler.Reorder(ctx, args[0], args[1:])
		},
	}

	sortCmd := &cobra.Command{
		Use:   "sort [project-id]",
		Short: "Sort a project's entries chronologically and persist the order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			oldest, _ := cmd.Flags().GetBool("oldest")
			return handler.Sort(ctx, args[0], oldest)
		},
	}
	sortCmd.Flags().Bool("oldest", false, "Sort oldest first instead of newest first")

	cmd.AddCommand(addCmd, editCmd, describeCmd, deleteCmd, clearCmd, listCmd, reorderCmd, sortCmd)
	return cmd
}

// EntryCommand handles the entry command group
type EntryCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// Add creates a zero-duration entry on the given project.
func (c *EntryCommand) Add(ctx context.Context, projectArg string) error {
	projectID, err := parseID("project", projectArg)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}
	entry, err := c.app.entries.CreateManual(ctx, projectID, c.app.sortDirection())
	if err != nil {
		return c.errorHandler.Handle("add entry", err)
	}
	fmt.Printf("Added entry %d to project %d\n", entry.ID, entry.ProjectID)
	return nil
}

// Edit patches an entry's bounds or description.
func (c *EntryCommand) Edit(ctx context.Context, idArg, startArg, endArg, description string, descriptionSet bool) error {
	id, err := parseID("entry", idArg)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	var patch services.EntryPatch
	if startArg != "" {
		start, err := parseTimeArg("start", startArg)
		if err != nil {
			return c.errorHandler.HandleSimple(err)
		}
		patch.Start = &start
	}
	if endArg != "" {
		end, err := parseTimeArg("end", endArg)
		if err != nil {
			return c.errorHandler.HandleSimple(err)
		}
		patch.End = &end
	}
	if descriptionSet {
		patch.Description = &description
	}
	if patch.Start == nil && patch.End == nil && patch.Description == nil {
		fmt.Println("Nothing to change")
		return nil
	}

	entry, err := c.app.entries.Update(ctx, id, patch)
	if err != nil {
		return c.errorHandler.Handle("edit entry", err)
	}
	fmt.Printf("Updated entry %d (%s)\n", entry.ID, timer.FormatElapsedMS(entry.DurationMS))
	return nil
}

// Describe sets an entry's description without touching its timing fields.
func (c *EntryCommand) Describe(ctx context.Context, idArg, text string) error {
	id, err := parseID("entry", idArg)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}
	if err := c.app.entries.UpdateDescription(ctx, id, text); err != nil {
		return c.errorHandler.Handle("describe entry", err)
	}
	fmt.Printf("Updated description of entry %d\n", id)
	return nil
}

// Delete removes a single entry.
func (c *EntryCommand) Delete(ctx context.Context, idArg string) error {
	id, err := parseID("entry", idArg)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}
	if err := c.app.entries.Delete(ctx, id); err != nil {
		return c.errorHandler.Handle("delete entry", err)
	}
	fmt.Printf("Deleted entry %d\n", id)
	return nil
}

// Clear removes every entry of a project.
func (c *EntryCommand) Clear(ctx context.Context, projectArg string) error {
	projectID, err := parseID("project", projectArg)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}
	if err := c.app.entries.DeleteAllForProject(ctx, projectID); err != nil {
		return c.errorHandler.Handle("clear entries", err)
	}
	fmt.Printf("Deleted all entries of project %d\n", projectID)
	return nil
}

// List prints one page of a project's entries.
func (c *EntryCommand) List(ctx context.Context, projectArg string, page int, all bool) error {
	projectID, err := parseID("project", projectArg)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	pageSize := c.app.config.Display.EntriesPerPage
	if all {
		pageSize = 0
	}
	result, err := c.app.entries.ListPage(ctx, projectID, page, pageSize, c.app.sortDirection())
	if err != nil {
		return c.errorHandler.Handle("list entries", err)
	}
	if len(result.Entries) == 0 {
		fmt.Println("No entries yet")
		return nil
	}

	rows := make([][]string, 0, len(result.Entries))
	for _, entry := range result.Entries {
		rows = append(rows, c.entryRow(entry))
	}
	renderTable(os.Stdout, []string{"ID", "Start", "End", "Duration", "Description"}, rows)
	if result.TotalPages > 1 {
		fmt.Printf("\nPage %d of %d\n", result.CurrentPage, result.TotalPages)
	}
	return nil
}

// Reorder persists a new display order for a project's entries.
func (c *EntryCommand) Reorder(ctx context.Context, projectArg string, entryArgs []string) error {
	projectID, err := parseID("project", projectArg)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}
	ids := make([]int64, 0, len(entryArgs))
	for _, arg := range entryArgs {
		id, err := parseID("entry", arg)
		if err != nil {
			return c.errorHandler.HandleSimple(err)
		}
		ids = append(ids, id)
	}
	if err := c.app.entries.Reorder(ctx, projectID, ids); err != nil {
		return c.errorHandler.Handle("reorder entries", err)
	}
	fmt.Println("Entries reordered")
	return nil
}

// Sort re-sorts a project's entries chronologically and persists the order.
func (c *EntryCommand) Sort(ctx context.Context, projectArg string, oldestFirst bool) error {
	projectID, err := parseID("project", projectArg)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}
	direction := services.SortNewestFirst
	if oldestFirst {
		direction = services.SortOldestFirst
	}
	entries, err := c.app.entries.SortByStart(ctx, projectID, direction)
	if err != nil {
		return c.errorHandler.Handle("sort entries", err)
	}
	fmt.Printf("Sorted %d entries %s first\n", len(entries), direction)
	return nil
}

// entryRow formats one entry for the table renderer.
func (c *EntryCommand) entryRow(entry *domain.TimeEntry) []string {
	format := c.app.config.Display.TimeFormat
	if c.app.config.Display.DateOnly {
		format = "2006-01-02"
	}
	return []string{
		fmt.Sprintf("%d", entry.ID),
		entry.Start.Format(format),
		entry.End.Format(format),
		timer.FormatElapsedMS(entry.DurationMS),
		entry.Description,
	}
}
