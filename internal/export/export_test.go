package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/pulsedash/pulsedash/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleUsers() []models.PublicUser {
	return []models.PublicUser{
		{
			Name:     "Amanda Harvey",
			Email:    "amanda@site.com",
			Role:     models.RoleEmployee,
			Type:     models.TypeUnassigned,
			Country:  "United Kingdom",
			SignedUp: time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC),
			UserID:   "67989",
		},
		{
			Name:     "Anne Richard",
			Email:    "anne@site.com",
			Role:     models.RoleEmployee,
			Type:     models.TypeSubscription,
			Country:  "United States",
			SignedUp: time.Date(2024, 11, 21, 0, 0, 0, 0, time.UTC),
			UserID:   "67326",
		},
	}
}

func TestCSV(t *testing.T) {
	out, err := CSV(sampleUsers())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Name,Type,Country,Signed Up,Email,Role,User ID", lines[0])
	assert.Equal(t, "Amanda Harvey,Unassigned,United Kingdom,3/7/2025,amanda@site.com,employee,67989", lines[1])
	assert.Equal(t, "Anne Richard,Subscription,United States,11/21/2024,anne@site.com,employee,67326", lines[2])
}

func TestCSV_Empty(t *testing.T) {
	out, err := CSV(nil)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	require.Len(t, lines, 1)
	assert.Equal(t, "Name,Type,Country,Signed Up,Email,Role,User ID", lines[0])
}

func TestRow_Fallbacks(t *testing.T) {
	u := models.PublicUser{
		Name:      "Blank Bob",
		Email:     "bob@site.com",
		CreatedAt: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
	}
	row := Row(u)
	require.Len(t, row, len(Columns))
	assert.Equal(t, "Unassigned", row[1])
	// falls back to the creation date when no explicit signup date exists
	assert.Equal(t, "1/2/2025", row[3])
	assert.Equal(t, "Employee", row[5])
}

func TestClipboardText(t *testing.T) {
	got := ClipboardText(sampleUsers())
	want := "Amanda Harvey, amanda@site.com, employee\n" +
		"Anne Richard, anne@site.com, employee"
	assert.Equal(t, want, got)

	assert.Equal(t, "", ClipboardText(nil))
}

func TestExcel(t *testing.T) {
	out, err := Excel(sampleUsers())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Users")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Columns, rows[0])
	assert.Equal(t, "Amanda Harvey", rows[1][0])
	assert.Equal(t, "67326", rows[2][6])
}

func TestPDF(t *testing.T) {
	out, err := PDF(sampleUsers())
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
