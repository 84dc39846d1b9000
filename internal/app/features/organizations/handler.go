// internal/app/features/organizations/handler.go
package organizations

import (
	"context"
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/cyberhub/internal/app/features/errors"
	"github.com/dalemusser/cyberhub/internal/app/membership"
	organizationstore "github.com/dalemusser/cyberhub/internal/app/store/organizations"
	userstore "github.com/dalemusser/cyberhub/internal/app/store/users"
	"github.com/dalemusser/cyberhub/internal/app/system/auth"
	"github.com/dalemusser/cyberhub/internal/app/system/authz"
	"github.com/dalemusser/cyberhub/internal/app/system/csvutil"
	"github.com/dalemusser/cyberhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/cyberhub/internal/app/system/limits"
	"github.com/dalemusser/cyberhub/internal/app/system/timeouts"
	"github.com/dalemusser/cyberhub/internal/app/system/viewdata"
	"github.com/dalemusser/cyberhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the coordinator's organization console: the current join
// code, members, and the announcement banner.
type Handler struct {
	Membership *membership.Service
	Orgs       *organizationstore.Store
	Users      *userstore.Store
	ErrLog     *uierrors.ErrorLogger
	Log        *zap.Logger
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Membership: membership.NewService(db, logger),
		Orgs:       organizationstore.New(db),
		Users:      userstore.New(db),
		ErrLog:     errLog,
		Log:        logger,
	}
}

type orgViewData struct {
	viewdata.BaseVM
	Org         models.Organization
	TypeLabel   string
	MemberCount int64
	Members     []models.User
	Notice      string
}

func orgTypeLabel(t string) string {
	switch t {
	case models.OrgTypeSmallBusiness:
		return "Small business"
	case models.OrgTypeLocalGov:
		return "Local government"
	case models.OrgTypeEducation:
		return "Education"
	}
	return t
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /organization                                                           |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	orgID := authz.UserOrgID(r)
	if orgID.IsZero() {
		http.Redirect(w, r, "/onboarding", http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	org, err := h.Membership.OrganizationByID(ctx, orgID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load organization failed", err, "We could not load your organization.", "/")
		return
	}

	members, err := h.Users.ListByOrg(ctx, orgID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load members failed", err, "We could not load your organization.", "/")
		return
	}

	templates.Render(w, r, "organization", orgViewData{
		BaseVM:      viewdata.NewBaseVM(r, org.Name, "/"),
		Org:         org,
		TypeLabel:   orgTypeLabel(org.Type),
		MemberCount: int64(len(members)),
		Members:     members,
		Notice:      r.URL.Query().Get("notice"),
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /organization/members.csv – roster export                               |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeMemberExport(w http.ResponseWriter, r *http.Request) {
	orgID := authz.UserOrgID(r)
	if orgID.IsZero() {
		http.Redirect(w, r, "/onboarding", http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	members, err := h.Users.ListByOrg(ctx, orgID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "export members failed", err, "We could not export your roster.", "/organization")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="members.csv"`)
	if err := csvutil.WriteMemberRoster(w, members); err != nil {
		h.Log.Error("write member roster failed", zap.Error(err), zap.String("org_id", orgID.Hex()))
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /organization/code – regenerate the join code                          |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleRegenerateCode(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)
	orgID := authz.UserOrgID(r)
	if orgID.IsZero() {
		http.Redirect(w, r, "/onboarding", http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	newCode, err := h.Membership.RegenerateJoinCode(ctx, orgID, user.UID)
	if err != nil {
		if errors.Is(err, membership.ErrGenerationExhausted) {
			http.Redirect(w, r, "/organization?notice=code_retry", http.StatusSeeOther)
			return
		}
		h.ErrLog.LogServerError(w, r, "regenerate join code failed", err,
			"We could not issue a new join code. Please try again.", "/organization")
		return
	}

	// Keep the coordinator's own denormalized profile copy current.
	if err := h.Users.SetJoinCode(ctx, user.UID, newCode); err != nil {
		h.Log.Warn("update profile join code failed", zap.Error(err), zap.String("uid", user.UID))
	}

	http.Redirect(w, r, "/organization?notice=code_rotated", http.StatusSeeOther)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /organization/banner – update the announcement banner                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleSetBanner(w http.ResponseWriter, r *http.Request) {
	orgID := authz.UserOrgID(r)
	if orgID.IsZero() {
		http.Redirect(w, r, "/onboarding", http.StatusSeeOther)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxBannerFormSize)
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse banner form failed", err, "Invalid form data.", "/organization")
		return
	}

	// Coordinator-authored HTML is sanitized before it ever reaches storage.
	message := htmlsanitize.Sanitize(r.FormValue("message"))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Orgs.SetBanner(ctx, orgID, message); err != nil {
		h.ErrLog.LogServerError(w, r, "set banner failed", err,
			"We could not save the banner. Please try again.", "/organization")
		return
	}

	http.Redirect(w, r, "/organization?notice=banner_saved", http.StatusSeeOther)
}
