package home

import (
	"context"
	"html/template"
	"net/http"

	newsstore "github.com/dalemusser/cyberhub/internal/app/store/news"
	organizationstore "github.com/dalemusser/cyberhub/internal/app/store/organizations"
	"github.com/dalemusser/cyberhub/internal/app/system/auth"
	"github.com/dalemusser/cyberhub/internal/app/system/authz"
	"github.com/dalemusser/cyberhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/cyberhub/internal/app/system/timeouts"
	"github.com/dalemusser/cyberhub/internal/app/system/viewdata"
	"github.com/dalemusser/cyberhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const newsPanelSize = 10

// Handler serves the landing page, which doubles as the signed-in dashboard
// with the organization banner and the cyber news panel.
type Handler struct {
	Orgs *organizationstore.Store
	News *newsstore.Store
	Log  *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Orgs: organizationstore.New(db),
		News: newsstore.New(db, logger),
		Log:  logger,
	}
}

type homeViewData struct {
	viewdata.BaseVM
	Banner        template.HTML
	News          []models.NewsItem
	IsCoordinator bool
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET / – landing / dashboard                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	u, signedIn := auth.CurrentUser(r)

	// Signed-in users who have not finished onboarding go straight there.
	if signedIn && u.OrganizationID == "" {
		http.Redirect(w, r, "/onboarding", http.StatusSeeOther)
		return
	}

	data := homeViewData{
		BaseVM:        viewdata.NewBaseVM(r, "Welcome", "/"),
		IsCoordinator: authz.IsCoordinator(r),
	}

	if signedIn {
		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
		defer cancel()

		if orgID := authz.UserOrgID(r); !orgID.IsZero() {
			org, err := h.Orgs.GetByID(ctx, orgID)
			switch {
			case err == nil:
				// Sanitized again at render time; the stored value is already clean.
				data.Banner = htmlsanitize.SanitizeHTML(org.BannerMessage)
			default:
				h.Log.Warn("load org for home failed", zap.Error(err), zap.String("org_id", orgID.Hex()))
			}
		}

		items, err := h.News.ListRecent(ctx, newsPanelSize)
		if err != nil {
			h.Log.Warn("load news panel failed", zap.Error(err))
		} else {
			data.News = items
		}
	}

	templates.Render(w, r, "home", data)
}
