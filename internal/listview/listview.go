// Package listview implements the client-side table engine: search, filter,
// sort and pagination over the user set fetched once per dashboard view.
// Every transform is pure; the canonical fetched slice is never mutated.
package listview

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pulsedash/pulsedash/internal/models"
)

// SortKey names a sortable column.
type SortKey string

const (
	KeyName     SortKey = "name"
	KeyType     SortKey = "type"
	KeyCountry  SortKey = "country"
	KeySignedUp SortKey = "signedUp"
	KeyEmail    SortKey = "email"
	KeyRole     SortKey = "role"
	KeyUserID   SortKey = "userId"
)

// SortDirection cycles none -> ascending -> descending -> none.
type SortDirection int

const (
	SortNone SortDirection = iota
	SortAscending
	SortDescending
)

// Filter dialog sentinel values meaning "no restriction".
const (
	RoleAll        = "All"
	TypeAny        = "Any"
	SignedUpAny    = "Any status"
	LocationAny    = "Any location"
	SignedUpYear   = "1 year ago"
	SignedUpSixMos = "6 months ago"
)

// Criteria is one filter-dialog submission. Zero values and the Any/All
// sentinels both mean unrestricted.
type Criteria struct {
	Role     string
	Type     string
	SignedUp string
	Location string
}

// IsZero reports whether no field restricts the set.
func (c Criteria) IsZero() bool {
	return (c.Role == "" || c.Role == RoleAll) &&
		(c.Type == "" || c.Type == TypeAny) &&
		(c.SignedUp == "" || c.SignedUp == SignedUpAny) &&
		(c.Location == "" || c.Location == LocationAny)
}

// Match evaluates the conjunction of all active fields against one user.
// Role and type compare case-insensitively: the dialog capitalizes values
// while the store keeps lowercase enums.
func (c Criteria) Match(u models.PublicUser, now time.Time) bool {
	if c.Role != "" && c.Role != RoleAll && !strings.EqualFold(string(u.Role), c.Role) {
		return false
	}
	if c.Type != "" && c.Type != TypeAny && !strings.EqualFold(string(u.Type), c.Type) {
		return false
	}
	switch c.SignedUp {
	case SignedUpYear:
		if u.SignedUpOrCreated().After(now.Add(-365 * 24 * time.Hour)) {
			return false
		}
	case SignedUpSixMos:
		if u.SignedUpOrCreated().After(now.AddDate(0, -6, 0)) {
			return false
		}
	}
	if c.Location != "" && c.Location != LocationAny && u.Country != c.Location {
		return false
	}
	return true
}

// Filter keeps users matching every active criterion.
func Filter(c Criteria, now time.Time, users []models.PublicUser) []models.PublicUser {
	if c.IsZero() {
		return append([]models.PublicUser(nil), users...)
	}
	out := make([]models.PublicUser, 0, len(users))
	for _, u := range users {
		if c.Match(u, now) {
			out = append(out, u)
		}
	}
	return out
}

// Search keeps users whose name, email or user id contains term,
// case-insensitively. A blank term keeps everything.
func Search(term string, users []models.PublicUser) []models.PublicUser {
	term = strings.TrimSpace(term)
	if term == "" {
		return append([]models.PublicUser(nil), users...)
	}
	needle := strings.ToLower(term)
	out := make([]models.PublicUser, 0, len(users))
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Name), needle) ||
			strings.Contains(strings.ToLower(u.Email), needle) ||
			strings.Contains(u.UserID, term) {
			out = append(out, u)
		}
	}
	return out
}

// Sort returns a sorted copy of users. SortNone returns the input order
// unchanged, which is how toggling a header three times restores the
// pre-sort order. The sort is stable so equal keys keep their base order.
func Sort(key SortKey, dir SortDirection, users []models.PublicUser) []models.PublicUser {
	out := append([]models.PublicUser(nil), users...)
	if key == "" || dir == SortNone {
		return out
	}
	less := lessFunc(key)
	sort.SliceStable(out, func(i, j int) bool {
		if dir == SortDescending {
			i, j = j, i
		}
		return less(out[i], out[j])
	})
	return out
}

func lessFunc(key SortKey) func(a, b models.PublicUser) bool {
	switch key {
	case KeyUserID:
		// numeric compare; non-numeric ids sort as 0
		return func(a, b models.PublicUser) bool {
			return displayIDNum(a.UserID) < displayIDNum(b.UserID)
		}
	case KeySignedUp:
		return func(a, b models.PublicUser) bool {
			return a.SignedUpOrCreated().Before(b.SignedUpOrCreated())
		}
	default:
		return func(a, b models.PublicUser) bool {
			return strings.ToLower(stringKey(key, a)) < strings.ToLower(stringKey(key, b))
		}
	}
}

func displayIDNum(id string) int {
	n, err := strconv.Atoi(id)
	if err != nil {
		return 0
	}
	return n
}

func stringKey(key SortKey, u models.PublicUser) string {
	switch key {
	case KeyName:
		return u.Name
	case KeyType:
		return string(u.Type)
	case KeyCountry:
		return u.Country
	case KeyEmail:
		return u.Email
	case KeyRole:
		return string(u.Role)
	}
	return ""
}

// PageSize is the fixed number of rows per displayed page.
const PageSize = 10

// Paginate slices out the one-based page. An out-of-range page yields an
// empty slice rather than a panic.
func Paginate(page int, users []models.PublicUser) []models.PublicUser {
	if page < 1 {
		page = 1
	}
	start := (page - 1) * PageSize
	if start >= len(users) {
		return []models.PublicUser{}
	}
	end := start + PageSize
	if end > len(users) {
		end = len(users)
	}
	return append([]models.PublicUser(nil), users[start:end]...)
}

// TotalPages for n rows; zero rows still render one empty page.
func TotalPages(n int) int {
	if n <= 0 {
		return 1
	}
	return (n + PageSize - 1) / PageSize
}

// PageWindow returns at most three page numbers anchored so the current page
// stays visible: pages 1-2 show the head of the range, later pages center
// themselves.
func PageWindow(current, total int) []int {
	out := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		var n int
		if current <= 2 {
			n = i + 1
		} else {
			n = current - 1 + i
		}
		if n >= 1 && n <= total {
			out = append(out, n)
		}
	}
	return out
}
