package login_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	uierrors "github.com/dalemusser/cyberhub/internal/app/features/errors"
	"github.com/dalemusser/cyberhub/internal/app/features/login"
	userstore "github.com/dalemusser/cyberhub/internal/app/store/users"
	"github.com/dalemusser/cyberhub/internal/app/system/auth"
	"github.com/dalemusser/cyberhub/internal/app/system/ratelimit"
	"github.com/dalemusser/cyberhub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newTestHandler(t *testing.T) (*login.Handler, *testutil.Fixtures, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	errLog := uierrors.NewErrorLogger(logger)

	sessionMgr, err := auth.NewSessionManager("test-session-key-for-testing-only", "test-session", "", false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}

	handler := login.NewHandler(db, sessionMgr, errLog, false, logger)
	fixtures := testutil.NewFixtures(t, db)
	return handler, fixtures, db
}

func postLogin(t *testing.T, handler *login.Handler, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.HandleLoginPost(rec, req)
	return rec
}

func TestHandleLoginPost_ExistingUser(t *testing.T) {
	handler, fixtures, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Harbor CU", "AB23CD")
	fixtures.CreateCoordinator(ctx, "Dana Kim", "dana@example.com", org.ID)

	rec := postLogin(t, handler, url.Values{"email": {"dana@example.com"}})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("Location: got %q, want %q", loc, "/")
	}

	cookies := rec.Result().Cookies()
	found := false
	for _, c := range cookies {
		if c.Name == "test-session" {
			found = true
		}
	}
	if !found {
		t.Error("expected session cookie to be set")
	}
}

func TestHandleLoginPost_NewUserGoesToOnboarding(t *testing.T) {
	handler, _, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	rec := postLogin(t, handler, url.Values{"email": {"Fresh@Example.com"}})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/onboarding" {
		t.Errorf("Location: got %q, want %q", loc, "/onboarding")
	}

	// The account was provisioned with a folded email.
	u, err := userstore.New(db).GetByEmailCI(ctx, "fresh@example.com")
	if err != nil {
		t.Fatalf("provisioned user not found: %v", err)
	}
	if u.OnboardingComplete {
		t.Error("fresh user should not be marked onboarded")
	}
}

func TestHandleLoginPost_ReturnURL(t *testing.T) {
	handler, fixtures, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Harbor CU", "AB23CD")
	fixtures.CreateParticipant(ctx, "Ray Ito", "ray@example.com", org.ID)

	rec := postLogin(t, handler, url.Values{
		"email":  {"ray@example.com"},
		"return": {"/training"},
	})

	if loc := rec.Header().Get("Location"); loc != "/training" {
		t.Errorf("Location: got %q, want %q", loc, "/training")
	}

	// Off-site return URLs are ignored.
	rec = postLogin(t, handler, url.Values{
		"email":  {"ray@example.com"},
		"return": {"//evil.example/phish"},
	})
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("Location with off-site return: got %q, want %q", loc, "/")
	}
}

func TestHandleLoginPost_WrongPassword(t *testing.T) {
	handler, fixtures, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	org := fixtures.CreateOrganization(ctx, "Harbor CU", "AB23CD")
	u := fixtures.CreateParticipant(ctx, "Ray Ito", "ray@example.com", org.ID)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	if err := userstore.New(db).SetPasswordHash(ctx, u.UID, hash); err != nil {
		t.Fatalf("SetPasswordHash: %v", err)
	}

	rec := postLogin(t, handler, url.Values{
		"email":    {"ray@example.com"},
		"password": {"wrong"},
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("wrong password: got status %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}

	rec = postLogin(t, handler, url.Values{
		"email":    {"ray@example.com"},
		"password": {"correct horse"},
	})
	if rec.Code != http.StatusSeeOther {
		t.Errorf("right password: got status %d, want %d", rec.Code, http.StatusSeeOther)
	}
}

func TestHandleLoginPost_MissingEmail(t *testing.T) {
	handler, _, _ := newTestHandler(t)

	rec := postLogin(t, handler, url.Values{})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("got status %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
}

func TestHandleLoginPost_RateLimited(t *testing.T) {
	handler, _, _ := newTestHandler(t)
	handler.Limiter = ratelimit.NewLoginLimiterWithConfig(100, time.Minute, 2, time.Minute)

	form := url.Values{"email": {"ray@example.com"}, "password": {"wrong"}}
	postLogin(t, handler, form)
	postLogin(t, handler, form)

	rec := postLogin(t, handler, form)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("third attempt: got status %d, want %d", rec.Code, http.StatusTooManyRequests)
	}

	// A different account is unaffected.
	rec = postLogin(t, handler, url.Values{"email": {"dana@example.com"}})
	if rec.Code == http.StatusTooManyRequests {
		t.Error("unrelated account was rate limited")
	}
}
