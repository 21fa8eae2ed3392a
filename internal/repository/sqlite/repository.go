package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"tito/internal/errors"
	"tito/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Repository defines the interface for database operations.
// It is the persistence port consumed by the services: insert, fetch-by-id,
// fetch-all, update, delete per collection, plus the secondary-key lookup of
// time entries by project.
type Repository interface {
	// Project operations
	CreateProject(ctx context.Context, project *Project) error
	GetProject(ctx context.Context, id int64) (*Project, error)
	ListProjects(ctx context.Context) ([]*Project, error)
	CountProjects(ctx context.Context) (int, error)
	UpdateProject(ctx context.Context, project *Project) error
	DeleteProject(ctx context.Context, id int64) error

	// Time entry operations
	CreateTimeEntry(ctx context.Context, entry *TimeEntry) error
	GetTimeEntry(ctx context.Context, id int64) (*TimeEntry, error)
	ListTimeEntries(ctx context.Context) ([]*TimeEntry, error)
	ListTimeEntriesByProject(ctx context.Context, projectID int64) ([]*TimeEntry, error)
	UpdateTimeEntry(ctx context.Context, entry *TimeEntry) error
	DeleteTimeEntry(ctx context.Context, id int64) error
	DeleteTimeEntriesByProject(ctx context.Context, projectID int64) error

	// ReplaceAll clears both collections and inserts the given records,
	// preserving their identifiers. Used by bulk import.
	ReplaceAll(ctx context.Context, projects []*Project, entries []*TimeEntry) error

	// Utility
	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db *sql.DB
}

// New creates a new SQLite repository instance
func New(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}

	// Run migrations
	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// CreateProject creates a new project. A violated uniqueness constraint on the
// project name is surfaced as a duplicate-name error.
func (r *SQLiteRepository) CreateProject(ctx context.Context, project *Project) error {
	query := `INSERT INTO projects (name, position) VALUES (?, ?)`

	id, err := ExecuteWithLastInsertID(ctx, r.db, query, project.Name, project.Position)
	if err != nil {
		if isUniqueNameViolation(err) {
			return errors.NewDuplicateNameError(project.Name)
		}
		return err
	}

	project.ID = id
	return nil
}

// GetProject retrieves a project by ID
func (r *SQLiteRepository) GetProject(ctx context.Context, id int64) (*Project, error) {
	query := `SELECT id, name, position FROM projects WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanProject, "project", fmt.Sprintf("%d", id), id)
}

// ListProjects retrieves all projects ordered by display position
func (r *SQLiteRepository) ListProjects(ctx context.Context) ([]*Project, error) {
	query := `SELECT id, name, position FROM projects ORDER BY position ASC, id ASC`
	return QueryMultiple(ctx, r.db, query, ScanProjects, "projects")
}

// CountProjects returns the number of projects
func (r *SQLiteRepository) CountProjects(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects`).Scan(&count)
	if err != nil {
		return 0, HandleDatabaseError("count projects", err)
	}
	return count, nil
}

// UpdateProject updates an existing project
func (r *SQLiteRepository) UpdateProject(ctx context.Context, project *Project) error {
	query := `UPDATE projects SET name = ?, position = ? WHERE id = ?`
	err := ExecuteWithRowsAffected(ctx, r.db, query, "project", fmt.Sprintf("%d", project.ID), project.Name, project.Position, project.ID)
	if err != nil && isUniqueNameViolation(err) {
		return errors.NewDuplicateNameError(project.Name)
	}
	return err
}

// DeleteProject deletes a project by ID
func (r *SQLiteRepository) DeleteProject(ctx context.Context, id int64) error {
	query := `DELETE FROM projects WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "project", fmt.Sprintf("%d", id), id)
}

// CreateTimeEntry creates a new time entry
func (r *SQLiteRepository) CreateTimeEntry(ctx context.Context, entry *TimeEntry) error {
	query := `
	INSERT INTO time_entries (project_id, start_time, end_time, duration_ms, description, position)
	VALUES (?, ?, ?, ?, ?, ?)`

	id, err := ExecuteWithLastInsertID(ctx, r.db, query,
		entry.ProjectID,
		FormatTimeForDB(entry.StartTime),
		FormatTimeForDB(entry.EndTime),
		entry.DurationMS,
		entry.Description,
		entry.Position,
	)
	if err != nil {
		return err
	}

	entry.ID = id
	return nil
}

// GetTimeEntry retrieves a time entry by ID
func (r *SQLiteRepository) GetTimeEntry(ctx context.Context, id int64) (*TimeEntry, error) {
	query := `
	SELECT id, project_id, start_time, end_time, duration_ms, description, position
	FROM time_entries
	WHERE id = ?`

	return QuerySingle(ctx, r.db, query, ScanTimeEntry, "time entry", fmt.Sprintf("%d", id), id)
}

// ListTimeEntries retrieves all time entries
func (r *SQLiteRepository) ListTimeEntries(ctx context.Context) ([]*TimeEntry, error) {
	query := `
	SELECT id, project_id, start_time, end_time, duration_ms, description, position
	FROM time_entries
	ORDER BY start_time ASC, id ASC`

	return QueryMultiple(ctx, r.db, query, ScanTimeEntries, "time entries")
}

// ListTimeEntriesByProject retrieves all time entries for one project
func (r *SQLiteRepository) ListTimeEntriesByProject(ctx context.Context, projectID int64) ([]*TimeEntry, error) {
	query := `
	SELECT id, project_id, start_time, end_time, duration_ms, description, position
	FROM time_entries
	WHERE project_id = ?
	ORDER BY start_time ASC, id ASC`

	return QueryMultiple(ctx, r.db, query, ScanTimeEntries, "time entries", projectID)
}

// UpdateTimeEntry updates an existing time entry
func (r *SQLiteRepository) UpdateTimeEntry(ctx context.Context, entry *TimeEntry) error {
	query := `
	UPDATE time_entries
	SET project_id = ?, start_time = ?, end_time = ?, duration_ms = ?, description = ?, position = ?
	WHERE id = ?`

	return ExecuteWithRowsAffected(ctx, r.db, query, "time entry", fmt.Sprintf("%d", entry.ID),
		entry.ProjectID,
		FormatTimeForDB(entry.StartTime),
		FormatTimeForDB(entry.EndTime),
		entry.DurationMS,
		entry.Description,
		entry.Position,
		entry.ID,
	)
}

// DeleteTimeEntry deletes a time entry by ID
func (r *SQLiteRepository) DeleteTimeEntry(ctx context.Context, id int64) error {
	query := `DELETE FROM time_entries WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "time entry", fmt.Sprintf("%d", id), id)
}

// DeleteTimeEntriesByProject deletes every time entry for the given project.
// Deleting zero rows is not an error; the cascade may run against a project
// that never accumulated entries.
func (r *SQLiteRepository) DeleteTimeEntriesByProject(ctx context.Context, projectID int64) error {
	query := `DELETE FROM time_entries WHERE project_id = ?`
	if _, err := r.db.ExecContext(ctx, query, projectID); err != nil {
		return HandleDatabaseError("delete time entries by project", err)
	}
	return nil
}

// ReplaceAll clears both collections and inserts the given records inside one
// transaction, preserving record identifiers from the source document.
func (r *SQLiteRepository) ReplaceAll(ctx context.Context, projects []*Project, entries []*TimeEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return HandleDatabaseError("begin import transaction", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM time_entries`); err != nil {
		tx.Rollback()
		return HandleDatabaseError("clear time entries", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM projects`); err != nil {
		tx.Rollback()
		return HandleDatabaseError("clear projects", err)
	}

	for _, project := range projects {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO projects (id, name, position) VALUES (?, ?, ?)`,
			project.ID, project.Name, project.Position)
		if err != nil {
			tx.Rollback()
			return HandleDatabaseError("insert imported project", err)
		}
	}

	for _, entry := range entries {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO time_entries (id, project_id, start_time, end_time, duration_ms, description, position)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			entry.ID, entry.ProjectID,
			FormatTimeForDB(entry.StartTime), FormatTimeForDB(entry.EndTime),
			entry.DurationMS, entry.Description, entry.Position)
		if err != nil {
			tx.Rollback()
			return HandleDatabaseError("insert imported time entry", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return HandleDatabaseError("commit import transaction", err)
	}
	return nil
}

// isUniqueNameViolation reports whether err is the driver's UNIQUE constraint
// failure on the project name column. modernc.org/sqlite exposes no sentinel
// error for constraint violations, so the message text is inspected.
func isUniqueNameViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed: projects.name")
}
