// Package export projects the currently filtered user view into the four
// download formats the dashboard offers. Every formatter takes the full
// filtered row set (never just the visible page) and uses one fixed column
// order.
package export

import (
	"fmt"
	"strings"

	"github.com/pulsedash/pulsedash/internal/models"
)

// Columns is the fixed export column order shared by every format.
var Columns = []string{"Name", "Type", "Country", "Signed Up", "Email", "Role", "User ID"}

// Row projects one user into the export columns, applying the documented
// display fallbacks for optional fields.
func Row(u models.PublicUser) []string {
	return []string{
		u.Name,
		u.TypeOrDefault(),
		u.Country,
		formatDate(u),
		u.Email,
		u.RoleOrDefault(),
		u.UserID,
	}
}

func formatDate(u models.PublicUser) string {
	t := u.SignedUpOrCreated()
	if t.IsZero() {
		return ""
	}
	// M/D/YYYY, no leading zeros
	return t.Format("1/2/2006")
}

// ClipboardText renders the compact "name, email, role" lines used by the
// copy-to-clipboard action.
func ClipboardText(users []models.PublicUser) string {
	lines := make([]string, 0, len(users))
	for _, u := range users {
		lines = append(lines, fmt.Sprintf("%s, %s, %s", u.Name, u.Email, u.RoleOrDefault()))
	}
	return strings.Join(lines, "\n")
}
