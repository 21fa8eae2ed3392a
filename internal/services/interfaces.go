package services

import (
	"context"
	"time"

	"tito/internal/domain"
)

// SortDirection selects the chronological display order of an entry list.
type SortDirection string

const (
	SortNewestFirst SortDirection = "newest"
	SortOldestFirst SortDirection = "oldest"
)

// EntryPatch describes a partial update to a time entry. Nil fields are left
// untouched. Duration is never independently settable: any change to the
// bounds recomputes it.
type EntryPatch struct {
	Start       *time.Time
	End         *time.Time
	Description *string
}

// Page is one page of a project's chronologically sorted entry list.
type Page struct {
	Entries     []*domain.TimeEntry `json:"entries"`
	TotalPages  int                 `json:"total_pages"`
	CurrentPage int                 `json:"current_page"`
}

// PeriodBucket is one week or month of a generated report. TotalMS counts the
// full duration of every overlapping entry, not clipped to the bucket bounds.
type PeriodBucket struct {
	Label   string              `json:"label"`
	Start   time.Time           `json:"start"`
	End     time.Time           `json:"end"`
	TotalMS int64               `json:"total_ms"`
	Entries []*domain.TimeEntry `json:"entries"`
}

// ProjectTotal is one project's aggregate, joined with its name for display.
type ProjectTotal struct {
	Project *domain.Project `json:"project"`
	TotalMS int64           `json:"total_ms"`
	Hours   float64         `json:"hours"`
}

// TimerGuard is the slice of the timer the project lifecycle needs: forcing a
// reset when the attached project is deleted.
type TimerGuard interface {
	ForceResetIfAttached(projectID int64) bool
}

// ProjectService handles the project lifecycle.
type ProjectService interface {
	// CreateProject creates a project with the given name. The display order
	// defaults to the current project count.
	CreateProject(ctx context.Context, name string) (*domain.Project, error)
	GetProject(ctx context.Context, id int64) (*domain.Project, error)
	ListProjects(ctx context.Context) ([]*domain.Project, error)

	// RenameProject mutates the name in place, preserving the id.
	RenameProject(ctx context.Context, id int64, name string) (*domain.Project, error)

	// DeleteProject removes the project, cascades to every entry referencing
	// it, and forces the timer to reset when it is attached to this project.
	DeleteProject(ctx context.Context, id int64) error

	// ReorderProjects assigns display order from the index of each id in the
	// given list. Unknown ids are ignored; projects missing from the list
	// keep their prior order.
	ReorderProjects(ctx context.Context, idsInNewOrder []int64) error
}

// EntryService handles CRUD, ordering and pagination over time entries.
type EntryService interface {
	// CreateFromTimer persists the entry produced by a completed timer run.
	CreateFromTimer(ctx context.Context, projectID int64, start, end time.Time) (*domain.TimeEntry, error)

	// CreateManual creates a zero-duration placeholder entry seeded with the
	// current instant for both bounds. The order field is seeded so the new
	// entry surfaces at the visible end of the list for the given direction.
	CreateManual(ctx context.Context, projectID int64, direction SortDirection) (*domain.TimeEntry, error)

	GetEntry(ctx context.Context, id int64) (*domain.TimeEntry, error)
	ListForProject(ctx context.Context, projectID int64) ([]*domain.TimeEntry, error)

	// Update applies a patch. Any change to start or end recomputes duration.
	Update(ctx context.Context, id int64, patch EntryPatch) (*domain.TimeEntry, error)

	// UpdateDescription is the narrow update that never touches timing fields.
	UpdateDescription(ctx context.Context, id int64, text string) error

	Delete(ctx context.Context, id int64) error
	DeleteAllForProject(ctx context.Context, projectID int64) error

	// Reorder assigns order from the index of each id in the given list.
	// Ids outside the project's entry set are ignored; entries missing from
	// the list keep their prior order.
	Reorder(ctx context.Context, projectID int64, idsInNewOrder []int64) error

	// SortByStart re-sorts the project's entries chronologically in the given
	// direction and persists the resulting order values. This is the explicit
	// user-invoked sort, distinct from the ambient sorted rendering.
	SortByStart(ctx context.Context, projectID int64, direction SortDirection) ([]*domain.TimeEntry, error)

	// ListPage returns one page of the project's chronologically sorted
	// entries. The requested page is clamped into the valid range; a
	// non-positive pageSize means a single page holding everything.
	ListPage(ctx context.Context, projectID int64, page, pageSize int, direction SortDirection) (*Page, error)
}

// ReportService handles aggregation and reporting.
type ReportService interface {
	// TotalsByProject sums durations grouped by project id. Pure function;
	// output carries no ordering.
	TotalsByProject(entries []*domain.TimeEntry) map[int64]int64

	// FilterByDateRange keeps entries that overlap [rangeStart, rangeEnd].
	// Inclusion is overlap, not containment: an entry spanning midnight shows
	// up in both adjacent day ranges with its full duration.
	FilterByDateRange(entries []*domain.TimeEntry, rangeStart, rangeEnd time.Time) []*domain.TimeEntry

	// GenerateWeeklyReport partitions the range into Sunday-starting week
	// buckets. Each bucket counts the full duration of every overlapping
	// entry, so bucket sums can exceed the plain total for entries spanning
	// a boundary.
	GenerateWeeklyReport(entries []*domain.TimeEntry, rangeStart, rangeEnd time.Time) []PeriodBucket

	// GenerateMonthlyReport is the calendar-month counterpart.
	GenerateMonthlyReport(entries []*domain.TimeEntry, rangeStart, rangeEnd time.Time) []PeriodBucket

	// ProjectTotals fetches all entries and returns per-project aggregates
	// sorted by project display order. This is the chart data path.
	ProjectTotals(ctx context.Context) ([]ProjectTotal, error)
}
