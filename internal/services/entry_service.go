package services

import (
	"context"
	"math"
	"sort"
	"time"

	"tito/internal/domain"
	"tito/internal/repository/sqlite"
	"tito/internal/validation"
)

// entryServiceImpl implements the EntryService interface
type entryServiceImpl struct {
	repo               sqlite.Repository
	mapper             *domain.Mapper
	timeEntryValidator *validation.TimeEntryValidator

	// now is replaceable in tests
	now func() time.Time
}

// NewEntryService creates a new EntryService instance
func NewEntryService(repo sqlite.Repository) EntryService {
	return &entryServiceImpl{
		repo:               repo,
		mapper:             domain.NewMapper(),
		timeEntryValidator: validation.NewTimeEntryValidator(),
		now:                time.Now,
	}
}

// CreateFromTimer persists the entry produced by a completed timer run with an
// empty description.
func (e *entryServiceImpl) CreateFromTimer(ctx context.Context, projectID int64, start, end time.Time) (*domain.TimeEntry, error) {
	if err := e.timeEntryValidator.ValidateTimeEntryForCreation(projectID, start, end); err != nil {
		return nil, err
	}

	entry := domain.NewTimeEntry(projectID, start, end)
	dbEntry := e.mapper.TimeEntry.ToDatabase(entry)
	if err := e.repo.CreateTimeEntry(ctx, &dbEntry); err != nil {
		return nil, err
	}

	created := e.mapper.TimeEntry.FromDatabase(dbEntry)
	return &created, nil
}

// CreateManual creates a zero-duration placeholder entry seeded with the
// current instant for both bounds. The order seed puts the entry at the
// visible end of the list for the given sort direction.
func (e *entryServiceImpl) CreateManual(ctx context.Context, projectID int64, direction SortDirection) (*domain.TimeEntry, error) {
	now := e.now()
	if err := e.timeEntryValidator.ValidateTimeEntryForCreation(projectID, now, now); err != nil {
		return nil, err
	}

	entry := domain.NewManualEntry(projectID, now)
	if direction == SortNewestFirst {
		entry.Order = -1
	} else {
		entry.Order = math.MaxInt64
	}

	dbEntry := e.mapper.TimeEntry.ToDatabase(entry)
	if err := e.repo.CreateTimeEntry(ctx, &dbEntry); err != nil {
		return nil, err
	}

	created := e.mapper.TimeEntry.FromDatabase(dbEntry)
	return &created, nil
}

// GetEntry retrieves a time entry by id.
func (e *entryServiceImpl) GetEntry(ctx context.Context, id int64) (*domain.TimeEntry, error) {
	if err := e.timeEntryValidator.ValidateTimeEntryID(id); err != nil {
		return nil, err
	}

	dbEntry, err := e.repo.GetTimeEntry(ctx, id)
	if err != nil {
		return nil, err
	}

	entry := e.mapper.TimeEntry.FromDatabase(*dbEntry)
	return &entry, nil
}

// ListForProject retrieves all entries for one project, chronological by
// start time.
func (e *entryServiceImpl) ListForProject(ctx context.Context, projectID int64) ([]*domain.TimeEntry, error) {
	dbEntries, err := e.repo.ListTimeEntriesByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return e.mapper.TimeEntry.FromDatabaseSlice(dbEntries), nil
}

// Update applies a patch to an entry. Whenever the patch touches start or
// end, the duration is recomputed from the resulting bounds; a duration can
// never be set independently.
func (e *entryServiceImpl) Update(ctx context.Context, id int64, patch EntryPatch) (*domain.TimeEntry, error) {
	if err := e.timeEntryValidator.ValidateTimeEntryID(id); err != nil {
		return nil, err
	}

	dbEntry, err := e.repo.GetTimeEntry(ctx, id)
	if err != nil {
		return nil, err
	}

	entry := e.mapper.TimeEntry.FromDatabase(*dbEntry)

	boundsChanged := false
	if patch.Start != nil {
		entry.Start = *patch.Start
		boundsChanged = true
	}
	if patch.End != nil {
		entry.End = *patch.End
		boundsChanged = true
	}
	if patch.Description != nil {
		entry.Description = *patch.Description
	}

	if boundsChanged {
		entry.Recalculate()
		if err := e.timeEntryValidator.ValidateTimeEntryForUpdate(id, entry.ProjectID, entry.Start, entry.End); err != nil {
			return nil, err
		}
	}

	updated := e.mapper.TimeEntry.ToDatabase(entry)
	if err := e.repo.UpdateTimeEntry(ctx, &updated); err != nil {
		return nil, err
	}

	result := e.mapper.TimeEntry.FromDatabase(updated)
	return &result, nil
}

// UpdateDescription is the narrow update that never touches timing fields.
func (e *entryServiceImpl) UpdateDescription(ctx context.Context, id int64, text string) error {
	if err := e.timeEntryValidator.ValidateTimeEntryID(id); err != nil {
		return err
	}

	dbEntry, err := e.repo.GetTimeEntry(ctx, id)
	if err != nil {
		return err
	}

	dbEntry.Description = text
	return e.repo.UpdateTimeEntry(ctx, dbEntry)
}

// Delete removes one entry.
func (e *entryServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := e.timeEntryValidator.ValidateTimeEntryID(id); err != nil {
		return err
	}
	return e.repo.DeleteTimeEntry(ctx, id)
}

// DeleteAllForProject removes every entry for the given project.
func (e *entryServiceImpl) DeleteAllForProject(ctx context.Context, projectID int64) error {
	return e.repo.DeleteTimeEntriesByProject(ctx, projectID)
}

// Reorder assigns order from the index of each id in the given list. Ids
// outside the project's entry set are ignored; entries missing from the list
// keep their prior order. Persistence is best effort per item: one failed
// write does not block the rest, and the first failure is reported.
func (e *entryServiceImpl) Reorder(ctx context.Context, projectID int64, idsInNewOrder []int64) error {
	dbEntries, err := e.repo.ListTimeEntriesByProject(ctx, projectID)
	if err != nil {
		return err
	}

	byID := make(map[int64]*sqlite.TimeEntry, len(dbEntries))
	for _, dbEntry := range dbEntries {
		byID[dbEntry.ID] = dbEntry
	}

	var firstErr error
	for index, id := range idsInNewOrder {
		dbEntry, ok := byID[id]
		if !ok {
			continue
		}
		dbEntry.Position = int64(index)
		if err := e.repo.UpdateTimeEntry(ctx, dbEntry); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// SortByStart re-sorts the project's entries by start time in the given
// direction and persists the resulting order values.
func (e *entryServiceImpl) SortByStart(ctx context.Context, projectID int64, direction SortDirection) ([]*domain.TimeEntry, error) {
	dbEntries, err := e.repo.ListTimeEntriesByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	entries := e.mapper.TimeEntry.FromDatabaseSlice(dbEntries)
	sortEntriesByStart(entries, direction)

	var firstErr error
	for index, entry := range entries {
		entry.Order = int64(index)
		updated := e.mapper.TimeEntry.ToDatabase(*entry)
		if err := e.repo.UpdateTimeEntry(ctx, &updated); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return entries, nil
}

// ListPage returns one page of the project's entries sorted chronologically
// in the given direction. The requested page is clamped into [1, totalPages];
// a non-positive pageSize returns everything as a single page.
func (e *entryServiceImpl) ListPage(ctx context.Context, projectID int64, page, pageSize int, direction SortDirection) (*Page, error) {
	entries, err := e.ListForProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	sortEntriesByStart(entries, direction)

	totalPages, currentPage := clampPage(len(entries), page, pageSize)
	lo, hi := pageBounds(len(entries), currentPage, pageSize)

	return &Page{
		Entries:     entries[lo:hi],
		TotalPages:  totalPages,
		CurrentPage: currentPage,
	}, nil
}

// sortEntriesByStart sorts in place by start time, id as tiebreaker so equal
// timestamps keep a stable order.
func sortEntriesByStart(entries []*domain.TimeEntry, direction SortDirection) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Start.Equal(entries[j].Start) {
			return entries[i].ID < entries[j].ID
		}
		if direction == SortNewestFirst {
			return entries[i].Start.After(entries[j].Start)
		}
		return entries[i].Start.Before(entries[j].Start)
	})
}

// clampPage computes the page count and clamps the requested page into
// [1, totalPages]. An empty list still has one (empty) page.
func clampPage(count, page, pageSize int) (totalPages, currentPage int) {
	if pageSize <= 0 || count == 0 {
		return 1, 1
	}
	totalPages = (count + pageSize - 1) / pageSize
	currentPage = page
	if currentPage < 1 {
		currentPage = 1
	}
	if currentPage > totalPages {
		currentPage = totalPages
	}
	return totalPages, currentPage
}

// pageBounds computes the slice bounds for the given page.
func pageBounds(count, currentPage, pageSize int) (lo, hi int) {
	if pageSize <= 0 {
		return 0, count
	}
	lo = (currentPage - 1) * pageSize
	if lo > count {
		lo = count
	}
	hi = lo + pageSize
	if hi > count {
		hi = count
	}
	return lo, hi
}
