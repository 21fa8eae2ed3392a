package export

import (
	"context"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tito/internal/errors"
	"tito/internal/repository/sqlite"
)

func setupBackupService(t *testing.T) (*BackupService, sqlite.Repository) {
	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return NewBackupService(repo), repo
}

func TestBackupService_Export_EmptyStore(t *testing.T) {
	service, _ := setupBackupService(t)

	data, err := service.Export(context.Background())
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, sonic.Unmarshal(data, &doc))
	assert.Contains(t, doc, "projects", "both keys present even when empty")
	assert.Contains(t, doc, "timeEntries")
	assert.Empty(t, doc["projects"])
	assert.Empty(t, doc["timeEntries"])
}

func TestBackupService_RoundTrip(t *testing.T) {
	source, sourceRepo := setupBackupService(t)
	ctx := context.Background()

	project := &sqlite.Project{Name: "Research", Position: 0}
	require.NoError(t, sourceRepo.CreateProject(ctx, project))

	start := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	entry := &sqlite.TimeEntry{
		ProjectID:   project.ID,
		StartTime:   start,
		EndTime:     start.Add(90 * time.Minute),
		DurationMS:  5400000,
		Description: "reading papers",
		Position:    3,
	}
	require.NoError(t, sourceRepo.CreateTimeEntry(ctx, entry))

	data, err := source.Export(ctx)
	require.NoError(t, err)

	target, targetRepo := setupBackupService(t)
	require.NoError(t, target.Import(ctx, data))

	projects, err := targetRepo.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, project.ID, projects[0].ID, "ids survive the round trip")
	assert.Equal(t, "Research", projects[0].Name)

	entries, err := targetRepo.ListTimeEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entry.ID, entries[0].ID)
	assert.True(t, entries[0].StartTime.Equal(start))
	assert.Equal(t, int64(5400000), entries[0].DurationMS)
	assert.Equal(t, "reading papers", entries[0].Description)
	assert.Equal(t, int64(3), entries[0].Position)
}

func TestBackupService_Import_ReplacesExistingData(t *testing.T) {
	service, repo := setupBackupService(t)
	ctx := context.Background()

	stale := &sqlite.Project{Name: "Stale"}
	require.NoError(t, repo.CreateProject(ctx, stale))
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.CreateTimeEntry(ctx, &sqlite.TimeEntry{
		ProjectID:  stale.ID,
		StartTime:  start,
		EndTime:    start.Add(time.Hour),
		DurationMS: 3600000,
	}))

	backup := `{
		"projects": [{"id": 42, "name": "Imported", "order": 0}],
		"timeEntries": []
	}`
	require.NoError(t, service.Import(ctx, []byte(backup)))

	projects, err := repo.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1, "import wipes everything not in the document")
	assert.Equal(t, int64(42), projects[0].ID)
	assert.Equal(t, "Imported", projects[0].Name)

	entries, err := repo.ListTimeEntries(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestBackupService_Import_RejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "should reject invalid JSON",
			data: `{"projects": [`,
		},
		{
			name: "should reject a document without projects",
			data: `{"timeEntries": []}`,
		},
		{
			name: "should reject a document without timeEntries",
			data: `{"projects": []}`,
		},
		{
			name: "should reject a JSON array",
			data: `[]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := setupBackupService(t)
			ctx := context.Background()

			existing := &sqlite.Project{Name: "Keep me"}
			require.NoError(t, repo.CreateProject(ctx, existing))

			err := service.Import(ctx, []byte(tt.data))
			require.Error(t, err)
			assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidFormat))

			projects, listErr := repo.ListProjects(ctx)
			require.NoError(t, listErr)
			assert.Len(t, projects, 1, "a rejected import must leave the store untouched")
		})
	}
}
