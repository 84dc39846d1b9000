package readiness_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	uierrors "github.com/dalemusser/cyberhub/internal/app/features/errors"
	"github.com/dalemusser/cyberhub/internal/app/features/readiness"
	readinessstore "github.com/dalemusser/cyberhub/internal/app/store/readiness"
	"github.com/dalemusser/cyberhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestScore(t *testing.T) {
	all := map[string]bool{}
	for _, item := range readiness.Checklist {
		all[item.Key] = true
	}
	if got := readiness.Score(all); got != 100 {
		t.Errorf("Score(all) = %d, want 100", got)
	}
	if got := readiness.Score(nil); got != 0 {
		t.Errorf("Score(nil) = %d, want 0", got)
	}

	half := map[string]bool{
		"program_adopted":    true,
		"employee_training":  true,
		"ir_plan_documented": true,
	}
	if got := readiness.Score(half); got != 50 {
		t.Errorf("Score(half) = %d, want 50", got)
	}

	// Keys from a retired checklist version never inflate the score.
	stale := map[string]bool{"old_item": true}
	if got := readiness.Score(stale); got != 0 {
		t.Errorf("Score(stale) = %d, want 0", got)
	}
}

func TestHandleSubmit_RecordsAttestation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	store := readinessstore.New(db)
	h := readiness.NewHandler(store, uierrors.NewErrorLogger(logger), logger)

	orgID := primitive.NewObjectID()
	user := testutil.CoordinatorUser(orgID)

	form := url.Values{
		"item_program_adopted":      {"on"},
		"item_employee_training":    {"on"},
		"item_backup_recovery_plan": {"on"},
		"notes":                     {"  Training vendor picked, rollout in June.  "},
	}
	req := httptest.NewRequest("POST", "/readiness", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = testutil.WithUser(req, user)
	rec := httptest.NewRecorder()
	h.HandleSubmit(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want %d (body: %s)", rec.Code, http.StatusSeeOther, rec.Body.String())
	}

	ctx, cancel := testutil.TestContext()
	defer cancel()

	latest, err := store.LatestForOrg(ctx, orgID)
	if err != nil {
		t.Fatalf("LatestForOrg: %v", err)
	}
	if latest.ReadinessPct != 50 {
		t.Errorf("readiness_pct = %d, want 50", latest.ReadinessPct)
	}
	if !latest.Checked["program_adopted"] || latest.Checked["ir_plan_documented"] {
		t.Errorf("checked map wrong: %v", latest.Checked)
	}
	if latest.ChecklistVersion != readiness.ChecklistVersion {
		t.Errorf("checklist_version = %d", latest.ChecklistVersion)
	}
	if latest.Notes != "Training vendor picked, rollout in June." {
		t.Errorf("notes = %q", latest.Notes)
	}
	if latest.CreatedBy != user.UID {
		t.Errorf("created_by = %q, want %q", latest.CreatedBy, user.UID)
	}
}

func TestHandleSubmit_LatestWinsOverHistory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	store := readinessstore.New(db)
	h := readiness.NewHandler(store, uierrors.NewErrorLogger(logger), logger)

	orgID := primitive.NewObjectID()
	user := testutil.CoordinatorUser(orgID)

	submit := func(form url.Values) {
		t.Helper()
		req := httptest.NewRequest("POST", "/readiness", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req = testutil.WithUser(req, user)
		rec := httptest.NewRecorder()
		h.HandleSubmit(rec, req)
		if rec.Code != http.StatusSeeOther {
			t.Fatalf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
		}
	}

	submit(url.Values{"item_program_adopted": {"on"}})
	submit(url.Values{
		"item_program_adopted":              {"on"},
		"item_employee_training":            {"on"},
		"item_ir_plan_documented":           {"on"},
		"item_incident_reporting_procedure": {"on"},
		"item_ransomware_response_policy":   {"on"},
		"item_backup_recovery_plan":         {"on"},
	})

	ctx, cancel := testutil.TestContext()
	defer cancel()

	latest, err := store.LatestForOrg(ctx, orgID)
	if err != nil {
		t.Fatalf("LatestForOrg: %v", err)
	}
	if latest.ReadinessPct != 100 {
		t.Errorf("latest readiness_pct = %d, want 100", latest.ReadinessPct)
	}

	history, err := store.HistoryForOrg(ctx, orgID, 10)
	if err != nil {
		t.Fatalf("HistoryForOrg: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history length = %d, want 2", len(history))
	}
	if history[0].ReadinessPct != 100 || history[1].ReadinessPct != 16 {
		t.Errorf("history scores = %d, %d; want 100, 16", history[0].ReadinessPct, history[1].ReadinessPct)
	}
}
