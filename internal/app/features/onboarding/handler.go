// internal/app/features/onboarding/handler.go
package onboarding

import (
	"context"
	"errors"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/cyberhub/internal/app/features/errors"
	"github.com/dalemusser/cyberhub/internal/app/membership"
	userstore "github.com/dalemusser/cyberhub/internal/app/store/users"
	"github.com/dalemusser/cyberhub/internal/app/system/auth"
	"github.com/dalemusser/cyberhub/internal/app/system/timeouts"
	"github.com/dalemusser/cyberhub/internal/app/system/viewdata"
	"github.com/dalemusser/cyberhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the one-time onboarding flow. Coordinators create an
// organization and receive its join code; participants redeem a code to
// join an existing one. Either way the resolved organization summary is
// written onto the profile and the session is refreshed.
type Handler struct {
	Membership *membership.Service
	Users      *userstore.Store
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
	Log        *zap.Logger
}

func NewHandler(db *mongo.Database, sessionMgr *auth.SessionManager, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Membership: membership.NewService(db, logger),
		Users:      userstore.New(db),
		SessionMgr: sessionMgr,
		ErrLog:     errLog,
		Log:        logger,
	}
}

type formData struct {
	viewdata.BaseVM
	Error string

	Name          string
	Role          string
	Department    string
	OrgName       string
	OrgType       string
	EmployeeRange string
	InviteCode    string

	OrgTypes       []orgTypeOption
	EmployeeRanges []string
}

type orgTypeOption struct {
	Value string
	Label string
}

func orgTypeOptions() []orgTypeOption {
	return []orgTypeOption{
		{Value: models.OrgTypeSmallBusiness, Label: "Small business"},
		{Value: models.OrgTypeLocalGov, Label: "Local government"},
		{Value: models.OrgTypeEducation, Label: "Education"},
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /onboarding                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeForm(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login?return=%2Fonboarding", http.StatusSeeOther)
		return
	}
	if u.OrganizationID != "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	// Invite links carry the code as ?code= so participants land prefilled.
	h.renderForm(w, r, formData{
		Name:       u.Name,
		InviteCode: r.URL.Query().Get("code"),
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /onboarding                                                            |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	sessionUser, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login?return=%2Fonboarding", http.StatusSeeOther)
		return
	}
	if sessionUser.OrganizationID != "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse onboarding form failed", err, "Invalid form data.", "/onboarding")
		return
	}

	form := formData{
		Name:          strings.TrimSpace(r.FormValue("name")),
		Role:          strings.TrimSpace(r.FormValue("role")),
		Department:    strings.TrimSpace(r.FormValue("department")),
		OrgName:       r.FormValue("org_name"),
		OrgType:       r.FormValue("org_type"),
		EmployeeRange: r.FormValue("employee_range"),
		InviteCode:    r.FormValue("invite_code"),
	}

	if form.Role != models.RoleCoordinator && form.Role != models.RoleParticipant {
		form.Error = "Please select a role."
		h.renderForm(w, r, form)
		return
	}
	if form.Name == "" {
		form.Error = "Please enter your name."
		h.renderForm(w, r, form)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	// The session check above can be stale (signed in before onboarding in
	// another tab), so the stored profile is the authority. Onboarding runs
	// once; role and organization are not self-serviceable afterwards.
	stored, err := h.Users.GetByUID(ctx, sessionUser.UID)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		h.ErrLog.LogServerError(w, r, "onboarding profile lookup failed", err,
			"Something went wrong saving your info. Please try again.", "/onboarding")
		return
	}
	if stored.OnboardingComplete || stored.OrganizationID != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	var summary models.OrganizationSummary
	switch form.Role {
	case models.RoleCoordinator:
		var res membership.CreateOrganizationResult
		res, err = h.Membership.CreateOrganization(ctx, membership.CreateOrganizationInput{
			Name:          form.OrgName,
			Type:          form.OrgType,
			EmployeeRange: form.EmployeeRange,
			CreatedBy:     sessionUser.UID,
		})
		summary = res.Summary
	case models.RoleParticipant:
		summary, err = h.Membership.RedeemJoinCode(ctx, form.InviteCode)
	}
	if err != nil {
		if msg, ok := userMessageFor(err); ok {
			form.Error = msg
			h.renderForm(w, r, form)
			return
		}
		h.ErrLog.LogServerError(w, r, "onboarding failed", err,
			"Something went wrong saving your info. Please try again.", "/onboarding")
		return
	}

	user, err := h.Users.CompleteOnboarding(ctx, sessionUser.UID, userstore.ProfileUpdate{
		DisplayName:  form.Name,
		Role:         form.Role,
		Organization: summary,
		Department:   form.Department,
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "complete onboarding failed", err,
			"Something went wrong saving your info. Please try again.", "/onboarding")
		return
	}

	// Refresh the session so the new role and organization take effect now.
	su := &auth.SessionUser{
		ID:               user.ID.Hex(),
		UID:              user.UID,
		Name:             user.DisplayName,
		Email:            user.Email,
		Role:             user.Role,
		OrganizationName: user.OrganizationName,
	}
	if user.OrganizationID != nil {
		su.OrganizationID = user.OrganizationID.Hex()
	}
	if err := h.SessionMgr.SignIn(w, r, su); err != nil {
		h.ErrLog.LogServerError(w, r, "session refresh failed", err,
			"Something went wrong saving your info. Please try again.", "/onboarding")
		return
	}

	h.Log.Info("onboarding complete",
		zap.String("uid", user.UID),
		zap.String("role", user.Role))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// userMessageFor maps membership failures a user can fix to form copy.
// Infrastructure errors return ok=false and render the generic error path.
func userMessageFor(err error) (string, bool) {
	var merr *membership.Error
	if !errors.As(err, &merr) {
		return "", false
	}
	switch merr.Code {
	case membership.CodeInviteCodeRequired:
		return "Please enter an invite code.", true
	case membership.CodeOrgNameRequired:
		return "Please enter your organization name.", true
	case membership.CodeOrgTypeRequired:
		return "Please select an organization type.", true
	case membership.CodeOrgNotFound:
		return "That invite code wasn’t recognized.", true
	case membership.CodeInviteInactive:
		return "That invite code is no longer active. Ask your coordinator for the current one.", true
	case membership.CodeGenerationExhausted:
		return "We couldn’t set up your organization just now. Please try again.", true
	}
	return "Something went wrong saving your info. Please try again.", true
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, form formData) {
	if form.Error != "" {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}
	form.BaseVM = viewdata.NewBaseVM(r, "Get started", "/")
	form.OrgTypes = orgTypeOptions()
	form.EmployeeRanges = models.EmployeeRanges
	templates.Render(w, r, "onboarding", form)
}
