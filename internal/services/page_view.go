package services

// PageView owns the caller-facing pagination state for one project's entry
// list: the page size (or "all" mode) and the current page. Mutations to the
// underlying list feed back through the After* methods so the view never
// leaves the user on an empty page beyond page 1.
type PageView struct {
	entriesPerPage int // <= 0 means "all" mode
	currentPage    int
}

// NewPageView creates a view on page 1 with the given page size.
func NewPageView(entriesPerPage int) *PageView {
	return &PageView{
		entriesPerPage: entriesPerPage,
		currentPage:    1,
	}
}

// EntriesPerPage returns the configured page size; non-positive means all.
func (v *PageView) EntriesPerPage() int {
	return v.entriesPerPage
}

// CurrentPage returns the page the view is on.
func (v *PageView) CurrentPage() int {
	return v.currentPage
}

// SetEntriesPerPage changes the page size and resets to page 1.
func (v *PageView) SetEntriesPerPage(entriesPerPage int) {
	v.entriesPerPage = entriesPerPage
	v.currentPage = 1
}

// SetPage moves to the requested page, clamped against the given entry count.
func (v *PageView) SetPage(page, count int) {
	_, v.currentPage = clampPage(count, page, v.entriesPerPage)
}

// AfterInsert resets to page 1 after an entry is added.
func (v *PageView) AfterInsert() {
	v.currentPage = 1
}

// AfterDelete self-heals the view after a deletion: when the current page no
// longer exists for the remaining count and it is not the first page, the
// view steps back one page instead of showing an empty page.
func (v *PageView) AfterDelete(remainingCount int) {
	totalPages, _ := clampPage(remainingCount, v.currentPage, v.entriesPerPage)
	if v.currentPage > totalPages && v.currentPage > 1 {
		v.currentPage--
	}
}

// AfterProjectSwitch resets to page 1 when the view targets a new project.
func (v *PageView) AfterProjectSwitch() {
	v.currentPage = 1
}
