package authgoogle

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/cyberhub/internal/app/system/auth"
	"github.com/dalemusser/cyberhub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T, clientID, clientSecret string) *Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)
	sessionMgr, err := auth.NewSessionManager("test-session-key-for-testing-only", "test-session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	return NewHandler(db, sessionMgr, clientID, clientSecret, "http://localhost:8080", zap.NewNop())
}

func TestServeLogin_NotConfigured(t *testing.T) {
	h := newTestHandler(t, "", "")

	req := httptest.NewRequest("GET", "/auth/google", nil)
	rec := httptest.NewRecorder()
	h.ServeLogin(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/login?error=google_not_configured" {
		t.Errorf("Location: got %q", loc)
	}
}

func TestServeLogin_RedirectsToGoogle(t *testing.T) {
	h := newTestHandler(t, "client-id", "client-secret")

	req := httptest.NewRequest("GET", "/auth/google?return=/news", nil)
	rec := httptest.NewRecorder()
	h.ServeLogin(rec, req)

	if rec.Code != http.StatusTemporaryRedirect {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusTemporaryRedirect)
	}
	loc := rec.Header().Get("Location")
	if !strings.HasPrefix(loc, "https://accounts.google.com/") {
		t.Errorf("Location: got %q, want Google consent URL", loc)
	}
	if !strings.Contains(loc, "state=") {
		t.Errorf("Location missing state parameter: %q", loc)
	}
}

func TestServeCallback_RejectsUnknownState(t *testing.T) {
	h := newTestHandler(t, "client-id", "client-secret")

	req := httptest.NewRequest("GET", "/auth/google/callback?state=forged&code=abc", nil)
	rec := httptest.NewRecorder()
	h.ServeCallback(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/login?error=invalid_state" {
		t.Errorf("Location: got %q", loc)
	}
}

func TestServeCallback_MissingState(t *testing.T) {
	h := newTestHandler(t, "client-id", "client-secret")

	req := httptest.NewRequest("GET", "/auth/google/callback", nil)
	rec := httptest.NewRecorder()
	h.ServeCallback(rec, req)

	if loc := rec.Header().Get("Location"); loc != "/login?error=invalid_state" {
		t.Errorf("Location: got %q", loc)
	}
}
