package export

import (
	"context"
	"time"

	"github.com/bytedance/sonic"

	"tito/internal/domain"
	"tito/internal/errors"
	"tito/internal/repository/sqlite"
)

// backupDocument is the wire form of a full backup. Both keys are always
// present on export, even when empty.
type backupDocument struct {
	Projects    []backupProject `json:"projects"`
	TimeEntries []backupEntry   `json:"timeEntries"`
}

type backupProject struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Order int    `json:"order"`
}

type backupEntry struct {
	ID          int64     `json:"id"`
	ProjectID   int64     `json:"projectId"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	Duration    int64     `json:"duration"`
	Description string    `json:"description"`
	Order       int64     `json:"order"`
}

// BackupService serializes the whole store to JSON and restores it again.
type BackupService struct {
	repo   sqlite.Repository
	mapper *domain.Mapper
}

// NewBackupService creates a new BackupService instance.
func NewBackupService(repo sqlite.Repository) *BackupService {
	return &BackupService{
		repo:   repo,
		mapper: domain.NewMapper(),
	}
}

// Export snapshots every project and time entry as an indented JSON document.
func (b *BackupService) Export(ctx context.Context) ([]byte, error) {
	dbProjects, err := b.repo.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	dbEntries, err := b.repo.ListTimeEntries(ctx)
	if err != nil {
		return nil, err
	}

	doc := backupDocument{
		Projects:    make([]backupProject, 0, len(dbProjects)),
		TimeEntries: make([]backupEntry, 0, len(dbEntries)),
	}
	for _, p := range dbProjects {
		doc.Projects = append(doc.Projects, backupProject{
			ID:    p.ID,
			Name:  p.Name,
			Order: p.Position,
		})
	}
	for _, e := range dbEntries {
		doc.TimeEntries = append(doc.TimeEntries, backupEntry{
			ID:          e.ID,
			ProjectID:   e.ProjectID,
			StartTime:   e.StartTime,
			EndTime:     e.EndTime,
			Duration:    e.DurationMS,
			Description: e.Description,
			Order:       e.Position,
		})
	}

	data, err := sonic.ConfigStd.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrorTypeInvalidFormat, "failed to serialize backup")
	}
	return data, nil
}

// Import replaces the entire store with the contents of a backup document.
// The document must carry both the "projects" and "timeEntries" keys; record
// contents are taken as-is, ids included.
func (b *BackupService) Import(ctx context.Context, data []byte) error {
	var probe map[string]interface{}
	if err := sonic.Unmarshal(data, &probe); err != nil {
		return errors.NewInvalidFormatError("backup is not valid JSON", err)
	}
	if _, ok := probe["projects"]; !ok {
		return errors.NewInvalidFormatError("backup is missing the projects key", nil)
	}
	if _, ok := probe["timeEntries"]; !ok {
		return errors.NewInvalidFormatError("backup is missing the timeEntries key", nil)
	}

	var doc backupDocument
	if err := sonic.Unmarshal(data, &doc); err != nil {
		return errors.NewInvalidFormatError("backup does not match the expected layout", err)
	}

	projects := make([]*sqlite.Project, 0, len(doc.Projects))
	for _, p := range doc.Projects {
		projects = append(projects, &sqlite.Project{
			ID:       p.ID,
			Name:     p.Name,
			Position: p.Order,
		})
	}
	entries := make([]*sqlite.TimeEntry, 0, len(doc.TimeEntries))
	for _, e := range doc.TimeEntries {
		entries = append(entries, &sqlite.TimeEntry{
			ID:          e.ID,
			ProjectID:   e.ProjectID,
			StartTime:   e.StartTime,
			EndTime:     e.EndTime,
			DurationMS:  e.Duration,
			Description: e.Description,
			Position:    e.Order,
		})
	}

	return b.repo.ReplaceAll(ctx, projects, entries)
}
