package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tito/internal/errors"
)

func setupRepository(t *testing.T) *SQLiteRepository {
	repo, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func mustCreateProject(t *testing.T, repo *SQLiteRepository, name string, position int) *Project {
	project := &Project{Name: name, Position: position}
	require.NoError(t, repo.CreateProject(context.Background(), project))
	require.Greater(t, project.ID, int64(0))
	return project
}

func mustCreateEntry(t *testing.T, repo *SQLiteRepository, projectID int64, start, end time.Time) *TimeEntry {
	entry := &TimeEntry{
		ProjectID:  projectID,
		StartTime:  start,
		EndTime:    end,
		DurationMS: end.Sub(start).Milliseconds(),
	}
	require.NoError(t, repo.CreateTimeEntry(context.Background(), entry))
	return entry
}

func TestSQLiteRepository_CreateProject(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	project := mustCreateProject(t, repo, "Research", 0)

	fetched, err := repo.GetProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, "Research", fetched.Name)
	assert.Equal(t, 0, fetched.Position)
}

func TestSQLiteRepository_CreateProject_DuplicateName(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	mustCreateProject(t, repo, "Research", 0)

	err := repo.CreateProject(ctx, &Project{Name: "Research", Position: 1})
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeDuplicate))
}

func TestSQLiteRepository_GetProject_NotFound(t *testing.T) {
	repo := setupRepository(t)

	_, err := repo.GetProject(context.Background(), 999)
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestSQLiteRepository_ListProjects_OrderedByPosition(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	mustCreateProject(t, repo, "Third", 2)
	mustCreateProject(t, repo, "First", 0)
	mustCreateProject(t, repo, "Second", 1)

	projects, err := repo.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 3)
	assert.Equal(t, "First", projects[0].Name)
	assert.Equal(t, "Second", projects[1].Name)
	assert.Equal(t, "Third", projects[2].Name)
}

func TestSQLiteRepository_CountProjects(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	count, err := repo.CountProjects(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	mustCreateProject(t, repo, "One", 0)
	mustCreateProject(t, repo, "Two", 1)

	count, err = repo.CountProjects(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestSQLiteRepository_UpdateProject(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	project := mustCreateProject(t, repo, "Old", 0)
	project.Name = "New"
	project.Position = 5

	require.NoError(t, repo.UpdateProject(ctx, project))

	fetched, err := repo.GetProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", fetched.Name)
	assert.Equal(t, 5, fetched.Position)
}

func TestSQLiteRepository_DeleteProject(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	project := mustCreateProject(t, repo, "Doomed", 0)
	require.NoError(t, repo.DeleteProject(ctx, project.ID))

	_, err := repo.GetProject(ctx, project.ID)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))

	err = repo.DeleteProject(ctx, project.ID)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestSQLiteRepository_TimeEntryRoundTrip(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	project := mustCreateProject(t, repo, "Research", 0)
	start := time.Date(2024, 1, 15, 9, 30, 15, 250_000_000, time.UTC)
	end := start.Add(95 * time.Minute)

	entry := &TimeEntry{
		ProjectID:   project.ID,
		StartTime:   start,
		EndTime:     end,
		DurationMS:  end.Sub(start).Milliseconds(),
		Description: "Morning focus block",
		Position:    3,
	}
	require.NoError(t, repo.CreateTimeEntry(ctx, entry))

	fetched, err := repo.GetTimeEntry(ctx, entry.ID)
	require.NoError(t, err)
	assert.True(t, fetched.StartTime.Equal(start), "start time should survive the round trip")
	assert.True(t, fetched.EndTime.Equal(end), "end time should survive the round trip")
	assert.Equal(t, entry.DurationMS, fetched.DurationMS)
	assert.Equal(t, "Morning focus block", fetched.Description)
	assert.Equal(t, int64(3), fetched.Position)
}

func TestSQLiteRepository_ListTimeEntriesByProject(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	projectA := mustCreateProject(t, repo, "A", 0)
	projectB := mustCreateProject(t, repo, "B", 1)
	base := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

	mustCreateEntry(t, repo, projectA.ID, base.Add(2*time.Hour), base.Add(3*time.Hour))
	mustCreateEntry(t, repo, projectA.ID, base, base.Add(time.Hour))
	mustCreateEntry(t, repo, projectB.ID, base, base.Add(time.Hour))

	entries, err := repo.ListTimeEntriesByProject(ctx, projectA.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	// Ordered chronologically by start time.
	assert.True(t, entries[0].StartTime.Before(entries[1].StartTime))
	for _, entry := range entries {
		assert.Equal(t, projectA.ID, entry.ProjectID)
	}
}

func TestSQLiteRepository_DeleteTimeEntriesByProject(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	project := mustCreateProject(t, repo, "A", 0)
	base := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	mustCreateEntry(t, repo, project.ID, base, base.Add(time.Hour))
	mustCreateEntry(t, repo, project.ID, base.Add(time.Hour), base.Add(2*time.Hour))

	require.NoError(t, repo.DeleteTimeEntriesByProject(ctx, project.ID))

	entries, err := repo.ListTimeEntriesByProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// Deleting zero rows is fine; the cascade may hit an entry-less project.
	assert.NoError(t, repo.DeleteTimeEntriesByProject(ctx, project.ID))
}

func TestSQLiteRepository_ReplaceAll(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	old := mustCreateProject(t, repo, "Old", 0)
	base := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	mustCreateEntry(t, repo, old.ID, base, base.Add(time.Hour))

	imported := []*Project{
		{ID: 10, Name: "Imported A", Position: 0},
		{ID: 20, Name: "Imported B", Position: 1},
	}
	importedEntries := []*TimeEntry{
		{ID: 100, ProjectID: 10, StartTime: base, EndTime: base.Add(time.Hour), DurationMS: 3600000},
	}

	require.NoError(t, repo.ReplaceAll(ctx, imported, importedEntries))

	projects, err := repo.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, int64(10), projects[0].ID)
	assert.Equal(t, int64(20), projects[1].ID)

	entries, err := repo.ListTimeEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(100), entries[0].ID)
	assert.Equal(t, int64(10), entries[0].ProjectID)
}

func TestSQLiteRepository_ReplaceAll_Empty(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	mustCreateProject(t, repo, "Old", 0)
	require.NoError(t, repo.ReplaceAll(ctx, nil, nil))

	count, err := repo.CountProjects(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestNew_MigrationsAreIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "tito.db")

	repo, err := New(dbPath)
	require.NoError(t, err)
	mustCreateProject(t, repo, "Persisted", 0)
	require.NoError(t, repo.Close())

	// Reopening the same file must not re-apply migrations or lose data.
	repo, err = New(dbPath)
	require.NoError(t, err)
	defer repo.Close()

	count, err := repo.CountProjects(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
