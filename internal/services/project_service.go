package services

import (
	"context"

	"tito/internal/domain"
	"tito/internal/repository/sqlite"
	"tito/internal/validation"
)

// projectServiceImpl implements the ProjectService interface
type projectServiceImpl struct {
	repo             sqlite.Repository
	mapper           *domain.Mapper
	projectValidator *validation.ProjectValidator
	timerGuard       TimerGuard
}

// NewProjectService creates a new ProjectService instance. The timer guard may
// be nil when no timer is wired (reporting-only callers).
func NewProjectService(repo sqlite.Repository, timerGuard TimerGuard) ProjectService {
	return &projectServiceImpl{
		repo:             repo,
		mapper:           domain.NewMapper(),
		projectValidator: validation.NewProjectValidator(),
		timerGuard:       timerGuard,
	}
}

// CreateProject creates a project with the given name. The display order
// defaults to the number of existing projects at creation time.
func (p *projectServiceImpl) CreateProject(ctx context.Context, name string) (*domain.Project, error) {
	cleanedName, err := p.projectValidator.GetValidProjectName(name)
	if err != nil {
		return nil, err
	}

	count, err := p.repo.CountProjects(ctx)
	if err != nil {
		return nil, err
	}

	dbProject := &sqlite.Project{Name: cleanedName, Position: count}
	if err := p.repo.CreateProject(ctx, dbProject); err != nil {
		return nil, err
	}

	domainProject := p.mapper.Project.FromDatabase(*dbProject)
	return &domainProject, nil
}

// GetProject retrieves a project by id.
func (p *projectServiceImpl) GetProject(ctx context.Context, id int64) (*domain.Project, error) {
	if err := p.projectValidator.ValidateProjectID(id); err != nil {
		return nil, err
	}

	dbProject, err := p.repo.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}

	domainProject := p.mapper.Project.FromDatabase(*dbProject)
	return &domainProject, nil
}

// ListProjects retrieves all projects sorted by display order.
func (p *projectServiceImpl) ListProjects(ctx context.Context) ([]*domain.Project, error) {
	dbProjects, err := p.repo.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	return p.mapper.Project.FromDatabaseSlice(dbProjects), nil
}

// RenameProject mutates the project name in place. Uniqueness is not
// re-checked at this layer; only creation enforces it.
func (p *projectServiceImpl) RenameProject(ctx context.Context, id int64, name string) (*domain.Project, error) {
	if err := p.projectValidator.ValidateProjectForRename(id, name); err != nil {
		return nil, err
	}

	cleanedName, err := p.projectValidator.GetValidProjectName(name)
	if err != nil {
		return nil, err
	}

	dbProject, err := p.repo.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}

	dbProject.Name = cleanedName
	if err := p.repo.UpdateProject(ctx, dbProject); err != nil {
		return nil, err
	}

	domainProject := p.mapper.Project.FromDatabase(*dbProject)
	return &domainProject, nil
}

// DeleteProject removes the project, cascades to its entries, and forces the
// timer to reset without committing when it is attached to this project.
func (p *projectServiceImpl) DeleteProject(ctx context.Context, id int64) error {
	if err := p.projectValidator.ValidateProjectID(id); err != nil {
		return err
	}

	if _, err := p.repo.GetProject(ctx, id); err != nil {
		return err
	}

	// The timer must never commit an entry against a project that is going
	// away. Reset first so a concurrent stop observes the project gone.
	if p.timerGuard != nil {
		p.timerGuard.ForceResetIfAttached(id)
	}

	if err := p.repo.DeleteTimeEntriesByProject(ctx, id); err != nil {
		return err
	}

	return p.repo.DeleteProject(ctx, id)
}

// ReorderProjects assigns display order from the index of each id in the
// given list. Unknown ids are ignored; projects missing from the list keep
// their prior order. Persistence is best effort per item.
func (p *projectServiceImpl) ReorderProjects(ctx context.Context, idsInNewOrder []int64) error {
	dbProjects, err := p.repo.ListProjects(ctx)
	if err != nil {
		return err
	}

	byID := make(map[int64]*sqlite.Project, len(dbProjects))
	for _, dbProject := range dbProjects {
		byID[dbProject.ID] = dbProject
	}

	var firstErr error
	for index, id := range idsInNewOrder {
		dbProject, ok := byID[id]
		if !ok {
			continue
		}
		dbProject.Position = index
		if err := p.repo.UpdateProject(ctx, dbProject); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
