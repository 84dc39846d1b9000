package csvutil_test

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/cyberhub/internal/app/system/csvutil"
	"github.com/dalemusser/cyberhub/internal/domain/models"
)

func TestWriteMemberRoster(t *testing.T) {
	members := []models.User{
		{
			DisplayName: "Dana Kim",
			Email:       "dana@example.com",
			Role:        "coordinator",
			CreatedAt:   time.Date(2026, 3, 2, 15, 4, 5, 0, time.UTC),
		},
		{
			DisplayName: "Ray \"Radar\" Ito",
			Email:       "ray@example.com",
			Role:        "participant",
			Department:  "Facilities, North",
		},
	}

	var sb strings.Builder
	if err := csvutil.WriteMemberRoster(&sb, members); err != nil {
		t.Fatalf("WriteMemberRoster: %v", err)
	}

	rows, err := csv.NewReader(strings.NewReader(sb.String())).ReadAll()
	if err != nil {
		t.Fatalf("re-read CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(rows))
	}
	if rows[0][0] != "Name" || rows[0][4] != "Joined" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][4] != "2026-03-02" {
		t.Errorf("joined = %q, want 2026-03-02", rows[1][4])
	}
	if rows[2][0] != `Ray "Radar" Ito` {
		t.Errorf("quoted name survived round trip wrong: %q", rows[2][0])
	}
	if rows[2][3] != "Facilities, North" {
		t.Errorf("comma in department mangled: %q", rows[2][3])
	}
	if rows[2][4] != "" {
		t.Errorf("zero CreatedAt should produce empty joined, got %q", rows[2][4])
	}
}

func TestWriteMemberRoster_Empty(t *testing.T) {
	var sb strings.Builder
	if err := csvutil.WriteMemberRoster(&sb, nil); err != nil {
		t.Fatalf("WriteMemberRoster: %v", err)
	}
	if got := strings.TrimSpace(sb.String()); got != "Name,Email,Role,Department,Joined" {
		t.Errorf("empty roster = %q", got)
	}
}
