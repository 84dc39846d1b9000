// internal/app/features/login/handler.go
package login

import (
	"context"
	"errors"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/cyberhub/internal/app/features/errors"
	userstore "github.com/dalemusser/cyberhub/internal/app/store/users"
	"github.com/dalemusser/cyberhub/internal/app/system/auth"
	"github.com/dalemusser/cyberhub/internal/app/system/normalize"
	"github.com/dalemusser/cyberhub/internal/app/system/ratelimit"
	"github.com/dalemusser/cyberhub/internal/app/system/timeouts"
	"github.com/dalemusser/cyberhub/internal/app/system/viewdata"
	"github.com/dalemusser/cyberhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Handler serves the email sign-in flow. Accounts either authenticate with
// a password (if one is set) or are provisioned on first sign-in, the same
// way the Google flow provisions them.
type Handler struct {
	Users         *userstore.Store
	SessionMgr    *auth.SessionManager
	ErrLog        *uierrors.ErrorLogger
	Limiter       *ratelimit.LoginLimiter
	GoogleEnabled bool
	Log           *zap.Logger
}

func NewHandler(db *mongo.Database, sessionMgr *auth.SessionManager, errLog *uierrors.ErrorLogger, googleEnabled bool, logger *zap.Logger) *Handler {
	return &Handler{
		Users:         userstore.New(db),
		SessionMgr:    sessionMgr,
		ErrLog:        errLog,
		Limiter:       ratelimit.NewLoginLimiter(),
		GoogleEnabled: googleEnabled,
		Log:           logger,
	}
}

type loginFormData struct {
	viewdata.BaseVM
	Error         string
	Email         string
	ReturnURL     string
	GoogleEnabled bool
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /login                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "login", loginFormData{
		BaseVM:        viewdata.NewBaseVM(r, "Sign in", "/"),
		ReturnURL:     r.URL.Query().Get("return"),
		GoogleEnabled: h.GoogleEnabled,
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /login                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse login form failed", err, "Invalid form data.", "/login")
		return
	}

	email := normalize.Email(r.FormValue("email"))
	password := r.FormValue("password")
	ret := r.FormValue("return")

	if email == "" {
		h.renderFormWithError(w, r, "Please enter your email address.", email, ret)
		return
	}

	if allowed, reason := h.Limiter.Check(r, email); !allowed {
		h.Log.Warn("login rate limited", zap.String("email", email), zap.String("ip", ratelimit.ClientIP(r)))
		w.WriteHeader(http.StatusTooManyRequests)
		templates.Render(w, r, "login", loginFormData{
			BaseVM:        viewdata.NewBaseVM(r, "Sign in", "/"),
			Error:         reason,
			Email:         email,
			ReturnURL:     ret,
			GoogleEnabled: h.GoogleEnabled,
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByEmailCI(ctx, email)
	switch {
	case err == nil:
		// Accounts with a password must present it.
		if len(user.PasswordHash) > 0 {
			if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
				h.renderFormWithError(w, r, "That password is not correct.", email, ret)
				return
			}
		}
	case errors.Is(err, mongo.ErrNoDocuments):
		// First visit: provision the account. The uid is derived from the
		// email since this flow has no external identity provider.
		user, err = h.Users.EnsureFromIdentity(ctx, "email:"+email, email, "")
		if err != nil {
			h.ErrLog.LogServerError(w, r, "provision user failed", err, "We could not sign you in. Please try again.", "/login")
			return
		}
	default:
		h.ErrLog.LogServerError(w, r, "user lookup failed", err, "We could not sign you in. Please try again.", "/login")
		return
	}

	if err := h.SessionMgr.SignIn(w, r, sessionUserFor(user)); err != nil {
		h.ErrLog.LogServerError(w, r, "session sign-in failed", err, "We could not sign you in. Please try again.", "/login")
		return
	}

	h.Limiter.ResetEmail(email)
	h.Log.Info("user signed in", zap.String("uid", user.UID))
	http.Redirect(w, r, postLoginTarget(user, ret), http.StatusSeeOther)
}

func (h *Handler) renderFormWithError(w http.ResponseWriter, r *http.Request, msg, email, ret string) {
	w.WriteHeader(http.StatusUnprocessableEntity)
	templates.Render(w, r, "login", loginFormData{
		BaseVM:        viewdata.NewBaseVM(r, "Sign in", "/"),
		Error:         msg,
		Email:         email,
		ReturnURL:     ret,
		GoogleEnabled: h.GoogleEnabled,
	})
}

// sessionUserFor builds the session payload for a user document.
func sessionUserFor(u models.User) *auth.SessionUser {
	su := &auth.SessionUser{
		ID:    u.ID.Hex(),
		UID:   u.UID,
		Name:  u.DisplayName,
		Email: u.Email,
		Role:  u.Role,
	}
	if u.OrganizationID != nil {
		su.OrganizationID = u.OrganizationID.Hex()
		su.OrganizationName = u.OrganizationName
	}
	return su
}

// postLoginTarget sends users who have not completed onboarding there, and
// everyone else to the requested return URL or the landing page. Only
// same-site paths are honored.
func postLoginTarget(u models.User, ret string) string {
	if !u.OnboardingComplete || u.OrganizationID == nil {
		return "/onboarding"
	}
	if strings.HasPrefix(ret, "/") && !strings.HasPrefix(ret, "//") {
		return ret
	}
	return "/"
}
