// internal/app/system/csvutil/roster.go
package csvutil

import (
	"encoding/csv"
	"io"
	"time"

	"github.com/dalemusser/cyberhub/internal/domain/models"
)

// rosterHeader is the column layout of the member roster export.
var rosterHeader = []string{"Name", "Email", "Role", "Department", "Joined"}

// WriteMemberRoster writes an organization's members as CSV, one row per
// user, with a header row. Timestamps are formatted as dates in UTC.
func WriteMemberRoster(w io.Writer, members []models.User) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(rosterHeader); err != nil {
		return err
	}
	for _, m := range members {
		joined := ""
		if !m.CreatedAt.IsZero() {
			joined = m.CreatedAt.UTC().Format(time.DateOnly)
		}
		row := []string{m.DisplayName, m.Email, m.Role, m.Department, joined}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
