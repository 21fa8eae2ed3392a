package cli

import (
	"tito/internal/config"
	"tito/internal/export"
	"tito/internal/repository/sqlite"
	"tito/internal/services"
	"tito/internal/timer"
)

// App bundles the service layer behind the command handlers.
type App struct {
	config   *config.Config
	repo     sqlite.Repository
	projects services.ProjectService
	entries  services.EntryService
	reports  services.ReportService
	backup   *export.BackupService
	timer    *timer.Timer
}

// NewApp wires an App on top of an already opened repository.
func NewApp(cfg *config.Config, repo sqlite.Repository) *App {
	app := &App{
		config:  cfg,
		repo:    repo,
		entries: services.NewEntryService(repo),
		reports: services.NewReportService(repo),
		backup:  export.NewBackupService(repo),
	}
	// The project service needs the timer to evict it when the attached
	// project is deleted, and the timer needs the project and entry services
	// to validate and commit runs. The guard indirection breaks the cycle.
	guard := &lateTimerGuard{}
	app.projects = services.NewProjectService(repo, guard)
	app.timer = timer.New(app.projects, app.entries)
	guard.timer = app.timer
	return app
}

// lateTimerGuard forwards to a timer that is wired after construction.
type lateTimerGuard struct {
	timer *timer.Timer
}

func (g *lateTimerGuard) ForceResetIfAttached(projectID int64) bool {
	if g.timer == nil {
		return false
	}
	return g.timer.ForceResetIfAttached(projectID)
}

// NewAppWithDefaultRepository opens the configured database and wires an App
// around it. Used for production.
func NewAppWithDefaultRepository(cfg *config.Config) (*App, error) {
	repo, err := config.CreateRepository(cfg)
	if err != nil {
		return nil, err
	}
	return NewApp(cfg, repo), nil
}

// Close releases the underlying repository.
func (a *App) Close() error {
	return a.repo.Close()
}

// sortDirection maps the configured display preference to a sort direction.
func (a *App) sortDirection() services.SortDirection {
	if a.config.Display.SortNewest {
		return services.SortNewestFirst
	}
	return services.SortOldestFirst
}
