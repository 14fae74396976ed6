package listview

import (
	"time"

	"github.com/pulsedash/pulsedash/internal/models"
)

// View holds the table state for one dashboard session: the canonical
// fetched set plus the current search term, filter criteria, sort config and
// page. Transforms compose in a fixed order: filter -> search -> sort ->
// paginate. Changing the set, term or criteria snaps back to page 1;
// changing only the sort does not.
type View struct {
	users    []models.PublicUser
	term     string
	criteria Criteria
	sortKey  SortKey
	sortDir  SortDirection
	page     int

	// now is a test seam for the recency filter.
	now func() time.Time
}

func NewView() *View {
	return &View{page: 1, now: time.Now}
}

// SetUsers replaces the canonical fetched set (a fresh fetch) and resets the
// page.
func (v *View) SetUsers(users []models.PublicUser) {
	v.users = append([]models.PublicUser(nil), users...)
	v.page = 1
}

// SetSearch updates the search term and resets the page.
func (v *View) SetSearch(term string) {
	v.term = term
	v.page = 1
}

// SetFilter applies one filter-dialog submission and resets the page.
func (v *View) SetFilter(c Criteria) {
	v.criteria = c
	v.page = 1
}

// ClearFilter resets every criterion to its unconstrained default, leaving
// the search term in place.
func (v *View) ClearFilter() {
	v.SetFilter(Criteria{})
}

// ToggleSort cycles the direction for key (ascending -> descending -> none)
// or starts ascending on a new key. The current page is deliberately kept.
func (v *View) ToggleSort(key SortKey) {
	if v.sortKey != key {
		v.sortKey = key
		v.sortDir = SortAscending
		return
	}
	switch v.sortDir {
	case SortAscending:
		v.sortDir = SortDescending
	case SortDescending:
		v.sortDir = SortNone
	default:
		v.sortDir = SortAscending
	}
}

// SetSort sets an explicit sort config, for callers that are not clicking
// through a header (the export CLI flag, for instance).
func (v *View) SetSort(key SortKey, dir SortDirection) {
	v.sortKey = key
	v.sortDir = dir
}

// SetPage clamps and moves to a one-based page of the current filtered set.
func (v *View) SetPage(page int) {
	total := TotalPages(len(v.Filtered()))
	if page < 1 {
		page = 1
	}
	if page > total {
		page = total
	}
	v.page = page
}

func (v *View) Page() int                    { return v.page }
func (v *View) Sort() (SortKey, SortDirection) { return v.sortKey, v.sortDir }

// Filtered is the filter+search subset in base order, before sorting.
func (v *View) Filtered() []models.PublicUser {
	return Search(v.term, Filter(v.criteria, v.now(), v.users))
}

// Ordered is the full filtered view after sorting: what an export consumes.
func (v *View) Ordered() []models.PublicUser {
	return Sort(v.sortKey, v.sortDir, v.Filtered())
}

// Rows is the slice of Ordered shown on the current page.
func (v *View) Rows() []models.PublicUser {
	return Paginate(v.page, v.Ordered())
}

// PageLinks is the visible pagination window for the current state.
func (v *View) PageLinks() []int {
	return PageWindow(v.page, TotalPages(len(v.Filtered())))
}

// HasPrev reports whether a previous page exists (first/previous links are
// disabled on page 1).
func (v *View) HasPrev() bool { return v.page > 1 }

// HasNext reports whether a further page exists.
func (v *View) HasNext() bool { return v.page < TotalPages(len(v.Filtered())) }
