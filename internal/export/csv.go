package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/pulsedash/pulsedash/internal/models"
)

// CSV renders header plus one line per user with standard quoting.
func CSV(users []models.PublicUser) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(Columns); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, u := range users {
		if err := w.Write(Row(u)); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
