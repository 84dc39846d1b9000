package news_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	uierrors "github.com/dalemusser/cyberhub/internal/app/features/errors"
	newsfeature "github.com/dalemusser/cyberhub/internal/app/features/news"
	feednews "github.com/dalemusser/cyberhub/internal/app/news"
	newsstore "github.com/dalemusser/cyberhub/internal/app/store/news"
	"github.com/dalemusser/cyberhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func feedBody(links ...string) string {
	items := ""
	for i, link := range links {
		items += fmt.Sprintf(`<item><title>Story %d</title><link>%s</link>
			<pubDate>Mon, 26 May 2025 09:30:00 -0400</pubDate></item>`, i, link)
	}
	return `<?xml version="1.0"?><rss version="2.0"><channel><title>Test Feed</title>` + items + `</channel></rss>`
}

func TestHandleRefresh_PullsFeedsAndRedirects(t *testing.T) {
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, feedBody("https://example.com/a", "https://example.com/b"))
	}))
	defer srv.Close()

	store := newsstore.New(db, logger)
	ingestor := feednews.NewIngestor(store, []feednews.Source{{Name: "Test Feed", URL: srv.URL}},
		feednews.DefaultPerFeedLimit, feednews.DefaultCooldown, logger)
	h := newsfeature.NewHandler(store, ingestor, uierrors.NewErrorLogger(logger), logger)

	req := httptest.NewRequest("POST", "/news/refresh", nil)
	req = testutil.WithUser(req, testutil.CoordinatorUser(primitive.NewObjectID()))
	rec := httptest.NewRecorder()
	h.HandleRefresh(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want %d (body: %s)", rec.Code, http.StatusSeeOther, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "/news?notice=refreshed" {
		t.Errorf("Location: got %q", loc)
	}

	ctx, cancel := testutil.TestContext()
	defer cancel()

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 2 {
		t.Errorf("stored items = %d, want 2", count)
	}

	last, ok, err := store.LastRun(ctx)
	if err != nil || !ok {
		t.Fatalf("LastRun: ok=%v err=%v", ok, err)
	}
	if time.Since(last) > time.Minute {
		t.Errorf("refresh marker too old: %v", last)
	}
}

func TestHandleRefresh_BypassesCooldown(t *testing.T) {
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, feedBody("https://example.com/only"))
	}))
	defer srv.Close()

	store := newsstore.New(db, logger)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// A fresh marker would normally suppress the scheduled run.
	if err := store.MarkRan(ctx, time.Now().UTC().Add(-time.Hour)); err != nil {
		t.Fatalf("MarkRan: %v", err)
	}

	ingestor := feednews.NewIngestor(store, []feednews.Source{{Name: "Test Feed", URL: srv.URL}},
		feednews.DefaultPerFeedLimit, feednews.DefaultCooldown, logger)
	h := newsfeature.NewHandler(store, ingestor, uierrors.NewErrorLogger(logger), logger)

	req := httptest.NewRequest("POST", "/news/refresh", nil)
	req = testutil.WithUser(req, testutil.CoordinatorUser(primitive.NewObjectID()))
	rec := httptest.NewRecorder()
	h.HandleRefresh(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}
	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 1 {
		t.Errorf("stored items = %d, want 1", count)
	}
}
