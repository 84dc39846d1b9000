package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/cyberhub/internal/app/system/auth"
	"go.uber.org/zap"
)

func newManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	mgr, err := auth.NewSessionManager("test-session-key-for-testing-only", "test-session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	return mgr
}

func TestNewSessionManager_RequiresKeyAndName(t *testing.T) {
	logger := zap.NewNop()
	if _, err := auth.NewSessionManager("", "name", "", false, logger); err == nil {
		t.Error("expected error for empty session key")
	}
	if _, err := auth.NewSessionManager("key", "", "", false, logger); err == nil {
		t.Error("expected error for empty session name")
	}
}

func TestSignInThenLoadSessionUser(t *testing.T) {
	mgr := newManager(t)

	// Sign in and capture the cookie.
	signInReq := httptest.NewRequest("POST", "/login", nil)
	signInRec := httptest.NewRecorder()
	err := mgr.SignIn(signInRec, signInReq, &auth.SessionUser{
		ID:    "652f1a2b3c4d5e6f70818283",
		UID:   "idp-uid-1",
		Name:  "Pat Example",
		Email: "pat@example.com",
		Role:  "coordinator",
	})
	if err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}

	cookies := signInRec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected session cookie to be set")
	}

	// Replay the cookie through the middleware.
	var got *auth.SessionUser
	handler := mgr.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.CurrentUser(r)
	}))

	req := httptest.NewRequest("GET", "/", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got == nil {
		t.Fatal("expected user in context after LoadSessionUser")
	}
	if got.UID != "idp-uid-1" || got.Role != "coordinator" || got.Email != "pat@example.com" {
		t.Errorf("unexpected session user: %+v", got)
	}
}

func TestRequireSignedIn_RedirectsAnonymousHTML(t *testing.T) {
	mgr := newManager(t)

	handler := mgr.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached")
	}))

	req := httptest.NewRequest("GET", "/account", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/login?return=%2Faccount" {
		t.Errorf("Location: got %q", loc)
	}
}

func TestRequireSignedIn_API401(t *testing.T) {
	mgr := newManager(t)

	handler := mgr.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached")
	}))

	req := httptest.NewRequest("GET", "/api/user", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRequireRole(t *testing.T) {
	mgr := newManager(t)

	var reached bool
	handler := mgr.RequireRole("coordinator")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	}))

	// Wrong role is forbidden.
	req := auth.WithTestUser(httptest.NewRequest("GET", "/organization", nil),
		&auth.SessionUser{ID: "652f1a2b3c4d5e6f70818283", Role: "participant"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if reached {
		t.Error("participant should not reach coordinator-only handler")
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusForbidden)
	}

	// Matching role passes, case-insensitively.
	req = auth.WithTestUser(httptest.NewRequest("GET", "/organization", nil),
		&auth.SessionUser{ID: "652f1a2b3c4d5e6f70818283", Role: "Coordinator"})
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if !reached {
		t.Error("coordinator should reach coordinator-only handler")
	}
}
