// internal/app/features/news/handler.go
package news

import (
	"context"
	"net/http"
	"time"

	uierrors "github.com/dalemusser/cyberhub/internal/app/features/errors"
	feednews "github.com/dalemusser/cyberhub/internal/app/news"
	newsstore "github.com/dalemusser/cyberhub/internal/app/store/news"
	"github.com/dalemusser/cyberhub/internal/app/system/authz"
	"github.com/dalemusser/cyberhub/internal/app/system/timeouts"
	"github.com/dalemusser/cyberhub/internal/app/system/viewdata"
	"github.com/dalemusser/cyberhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

const listLimit = 10

// Handler serves the curated cyber news page and the coordinator-initiated
// manual refresh.
type Handler struct {
	Store    *newsstore.Store
	Ingestor *feednews.Ingestor
	ErrLog   *uierrors.ErrorLogger
	Log      *zap.Logger
}

func NewHandler(store *newsstore.Store, ingestor *feednews.Ingestor, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Store: store, Ingestor: ingestor, ErrLog: errLog, Log: logger}
}

type newsViewData struct {
	viewdata.BaseVM
	Items         []models.NewsItem
	LastRefreshed time.Time
	HasRefreshed  bool
	CanRefresh    bool
	Notice        string
}

// ServeList renders the most recent stories across all feeds.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	items, err := h.Store.ListRecent(ctx, listLimit)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list news failed", err, "We could not load the news feed.", "/")
		return
	}
	last, ok, err := h.Store.LastRun(ctx)
	if err != nil {
		h.Log.Warn("load news refresh marker failed", zap.Error(err))
	}

	templates.Render(w, r, "news", newsViewData{
		BaseVM:        viewdata.NewBaseVM(r, "Cyber News", "/"),
		Items:         items,
		LastRefreshed: last,
		HasRefreshed:  ok,
		CanRefresh:    authz.IsCoordinator(r),
		Notice:        r.URL.Query().Get("notice"),
	})
}

// HandleRefresh lets a coordinator pull the feeds immediately, bypassing the
// weekly cooldown.
func (h *Handler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Batch())
	defer cancel()

	if err := h.Ingestor.ForceRefresh(ctx); err != nil {
		h.ErrLog.LogServerError(w, r, "manual news refresh failed", err,
			"The refresh did not complete. Please try again in a moment.", "/news")
		return
	}
	http.Redirect(w, r, "/news?notice=refreshed", http.StatusSeeOther)
}
