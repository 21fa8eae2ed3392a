package timer

import (
	"context"
	"sync"
	"time"

	"tito/internal/domain"
	"tito/internal/errors"
)

// tickInterval is the cadence of the advisory display refresh.
const tickInterval = time.Second

// ProjectResolver resolves a project by id. Used by Stop to re-validate that
// the attached project still exists before committing the run.
type ProjectResolver interface {
	GetProject(ctx context.Context, id int64) (*domain.Project, error)
}

// EntryCommitter persists the entry produced by a completed timer run.
type EntryCommitter interface {
	CreateFromTimer(ctx context.Context, projectID int64, start, end time.Time) (*domain.TimeEntry, error)
}

// DisplayState is an observational snapshot of the timer for the UI shell.
type DisplayState struct {
	ElapsedMS         int64
	IsRunning         bool
	IsPaused          bool
	AttachedProjectID int64
}

// StopResult is the outcome of a Stop call. Vanished means the attached
// project was deleted mid-run and the run's data was intentionally discarded;
// Entry is the persisted record otherwise.
type StopResult struct {
	Entry    *domain.TimeEntry
	Vanished bool
}

// Timer is the start/pause/resume/stop state machine for one in-progress run.
//
// The attached project id is captured at start and frozen for the duration of
// the run: the caller's notion of "currently selected project" may change
// freely without affecting which project the eventual entry is attributed to.
// Elapsed time is conserved across pause/resume by moving the logical start
// instant backward on resume.
type Timer struct {
	mu sync.Mutex

	running      bool
	paused       bool
	startInstant time.Time
	elapsed      time.Duration
	projectID    int64

	projects ProjectResolver
	entries  EntryCommitter

	// now is replaceable in tests
	now func() time.Time

	// onTick, when set, receives a display snapshot every tick while the
	// timer is running and unpaused. Purely advisory; never touches storage.
	onTick   func(DisplayState)
	stopTick chan struct{}
}

// New creates an idle Timer wired to the given collaborators.
func New(projects ProjectResolver, entries EntryCommitter) *Timer {
	return &Timer{
		projects: projects,
		entries:  entries,
		now:      time.Now,
	}
}

// SetNowFunc replaces the timer's clock. Intended for tests.
func (t *Timer) SetNowFunc(now func() time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.now = now
}

// SetOnTick registers the display-refresh callback.
func (t *Timer) SetOnTick(fn func(DisplayState)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onTick = fn
}

// Start begins a new run attributed to the given project. It fails when no
// project is selected or when a run is already in progress.
func (t *Timer) Start(project *domain.Project) error {
	if project == nil {
		return errors.NewValidationError("no project is selected; select a project before starting the timer", nil)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return errors.NewValidationError("a timer is already running", nil)
	}

	t.running = true
	t.paused = false
	t.startInstant = t.now()
	t.elapsed = 0
	t.projectID = project.ID
	t.startTickLocked()
	return nil
}

// Pause freezes the elapsed time of the current run.
func (t *Timer) Pause() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running {
		return errors.NewValidationError("no timer is currently running", nil)
	}
	if t.paused {
		return errors.NewValidationError("the timer is already paused", nil)
	}

	t.elapsed = t.now().Sub(t.startInstant)
	t.paused = true
	t.haltTickLocked()
	return nil
}

// Resume continues a paused run. The logical start instant is moved backward
// by the already-elapsed time so the run continues where it left off.
func (t *Timer) Resume() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running {
		return errors.NewValidationError("no timer is currently running", nil)
	}
	if !t.paused {
		return errors.NewValidationError("the timer is not paused", nil)
	}

	t.startInstant = t.now().Add(-t.elapsed)
	t.paused = false
	t.startTickLocked()
	return nil
}

// TogglePlayPause dispatches to Start, Resume or Pause depending on the
// current state. The selected project is only consulted when idle.
func (t *Timer) TogglePlayPause(selected *domain.Project) error {
	t.mu.Lock()
	running, paused := t.running, t.paused
	t.mu.Unlock()

	switch {
	case !running:
		return t.Start(selected)
	case paused:
		return t.Resume()
	default:
		return t.Pause()
	}
}

// Stop ends the current run. The attached project is re-validated: if it was
// deleted mid-run the result reports Vanished and no entry is created.
// On persistence failure the timer is reset anyway so it cannot get stuck;
// the attempted entry is lost.
func (t *Timer) Stop(ctx context.Context) (*StopResult, error) {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return nil, errors.NewValidationError("no timer is currently running", nil)
	}

	stopInstant := t.now()
	startInstant := t.startInstant
	projectID := t.projectID

	t.running = false
	t.paused = false
	t.haltTickLocked()
	t.mu.Unlock()

	// Re-check that the attached project still exists; it may have been
	// deleted while the run was in progress.
	_, err := t.projects.GetProject(ctx, projectID)
	if err != nil {
		t.Reset()
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return &StopResult{Vanished: true}, nil
		}
		return nil, err
	}

	entry, err := t.entries.CreateFromTimer(ctx, projectID, startInstant, stopInstant)
	if err != nil {
		// Forced reset: the user must restart manually, there is no retry.
		t.Reset()
		return nil, err
	}

	t.Reset()
	return &StopResult{Entry: entry}, nil
}

// Reset unconditionally clears all timer fields and returns to idle.
// It never writes to storage.
func (t *Timer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.running = false
	t.paused = false
	t.startInstant = time.Time{}
	t.elapsed = 0
	t.projectID = 0
	t.haltTickLocked()
}

// ForceResetIfAttached resets the timer when it is attached to the given
// project. Called by the project lifecycle on delete so a running timer does
// not commit an entry against a project that no longer exists. Reports
// whether a reset happened.
func (t *Timer) ForceResetIfAttached(projectID int64) bool {
	t.mu.Lock()
	attached := t.running && t.projectID == projectID
	t.mu.Unlock()

	if attached {
		t.Reset()
	}
	return attached
}

// DisplayState returns an observational snapshot. While running and unpaused
// the elapsed time is recomputed from the clock, so callers between ticks
// still see current values.
func (t *Timer) DisplayState() DisplayState {
	t.mu.Lock()
	defer t.mu.Unlock()

	elapsed := t.elapsed
	if t.running && !t.paused {
		elapsed = t.now().Sub(t.startInstant)
	}

	return DisplayState{
		ElapsedMS:         elapsed.Milliseconds(),
		IsRunning:         t.running,
		IsPaused:          t.paused,
		AttachedProjectID: t.projectID,
	}
}

// startTickLocked launches the 1 Hz display-refresh goroutine.
// Caller must hold t.mu.
func (t *Timer) startTickLocked() {
	t.haltTickLocked()
	stop := make(chan struct{})
	t.stopTick = stop

	go func() {
		ticker := time.NewTicker(tickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				t.mu.Lock()
				if !t.running || t.paused {
					t.mu.Unlock()
					continue
				}
				t.elapsed = t.now().Sub(t.startInstant)
				snapshot := DisplayState{
					ElapsedMS:         t.elapsed.Milliseconds(),
					IsRunning:         true,
					IsPaused:          false,
					AttachedProjectID: t.projectID,
				}
				onTick := t.onTick
				t.mu.Unlock()

				if onTick != nil {
					onTick(snapshot)
				}
			}
		}
	}()
}

// haltTickLocked cancels the pending display-refresh goroutine, if any.
// Caller must hold t.mu.
func (t *Timer) haltTickLocked() {
	if t.stopTick != nil {
		close(t.stopTick)
		t.stopTick = nil
	}
}
