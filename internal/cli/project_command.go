package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// newProjectCommand builds the project lifecycle command group.
func newProjectCommand(r *RootCommand) *cobra.Command {
	handler := &ProjectCommand{app: r.app, errorHandler: NewErrorHandler()}

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
		Long:  "Create, rename, reorder and delete projects.",
	}

	addCmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Create a new project",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return handler.Add(ctx, strings.Join(args, " "))
		},
	}

	renameCmd := &cobra.Command{
		Use:   "rename [id] [new name]",
		Short: "Rename a project",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return handler.Rename(ctx, args[0], strings.Join(args[1:], " "))
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a project and all its time entries",
		Long: `Delete a project and all its associated time entries.

This operation cannot be undone. A running timer attached to the
project is discarded.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return handler.Delete(ctx, args[0])
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List projects in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return handler.List(ctx)
		},
	}

	reorderCmd := &cobra.Command{
		Use:   "reorder [id...]",
		Short: "Reorder projects",
		Long: `Assign display order from the given id sequence.

Ids not listed keep their prior order; unknown ids are ignored.

Example:
  tito project reorder 3 1 2`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			return handler.Reorder(ctx, args)
		},
	}

	cmd.AddCommand(addCmd, renameCmd, deleteCmd, listCmd, reorderCmd)
	return cmd
}

// ProjectCommand handles the project command group
type ProjectCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// Add creates a new project.
func (c *ProjectCommand) Add(ctx context.Context, name string) error {
	project, err := c.app.projects.CreateProject(ctx, name)
	if err != nil {
		return c.errorHandler.Handle("create project", err)
	}
	fmt.Printf("Created project %d: %s\n", project.ID, project.Name)
	return nil
}

// Rename changes a project's name, keeping its id.
func (c *ProjectCommand) Rename(ctx context.Context, idArg, name string) error {
	id, err := parseID("project", idArg)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}
	project, err := c.app.projects.RenameProject(ctx, id, name)
	if err != nil {
		return c.errorHandler.Handle("rename project", err)
	}
	fmt.Printf("Renamed project %d to: %s\n", project.ID, project.Name)
	return nil
}

// Delete removes a project and cascades to its entries.
func (c *ProjectCommand) Delete(ctx context.Context, idArg string) error {
	id, err := parseID("project", idArg)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}
	if err := c.app.projects.DeleteProject(ctx, id); err != nil {
		return c.errorHandler.Handle("delete project", err)
	}
	fmt.Printf("Deleted project %d and its time entries\n", id)
	return nil
}

// List prints all projects in display order.
func (c *ProjectCommand) List(ctx context.Context) error {
	projects, err := c.app.projects.ListProjects(ctx)
	if err != nil {
		return c.errorHandler.Handle("list projects", err)
	}
	if len(projects) == 0 {
		fmt.Println("No projects yet. Create one with: tito project add \"name\"")
		return nil
	}

	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{fmt.Sprintf("%d", p.ID), p.Name})
	}
	renderTable(os.Stdout, []string{"ID", "Name"}, rows)
	return nil
}

// Reorder persists a new display order from the id sequence.
func (c *ProjectCommand) Reorder(ctx context.Context, args []string) error {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := parseID("project", arg)
		if err != nil {
			return c.errorHandler.HandleSimple(err)
		}
		ids = append(ids, id)
	}
	if err := c.app.projects.ReorderProjects(ctx, ids); err != nil {
		return c.errorHandler.Handle("reorder projects", err)
	}
	fmt.Println("Projects reordered")
	return nil
}
