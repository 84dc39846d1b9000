// internal/app/features/account/handler.go
package account

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/cyberhub/internal/app/features/errors"
	userstore "github.com/dalemusser/cyberhub/internal/app/store/users"
	"github.com/dalemusser/cyberhub/internal/app/system/auth"
	"github.com/dalemusser/cyberhub/internal/app/system/timeouts"
	"github.com/dalemusser/cyberhub/internal/app/system/viewdata"
	"github.com/dalemusser/cyberhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// Handler serves the signed-in user's account page and password changes.
type Handler struct {
	Users  *userstore.Store
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(users *userstore.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Users: users, ErrLog: errLog, Log: logger}
}

type accountViewData struct {
	viewdata.BaseVM
	User        models.User
	HasPassword bool
	AuthMethod  string
	Error       string
	Notice      string
}

// ServeProfile shows the account page.
func (h *Handler) ServeProfile(w http.ResponseWriter, r *http.Request) {
	h.renderProfile(w, r, "", r.URL.Query().Get("notice"), 0)
}

// HandleChangePassword sets or rotates the user's password.
func (h *Handler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse password form failed", err, "Invalid form data.", "/account")
		return
	}

	current := r.FormValue("current_password")
	next := r.FormValue("new_password")
	confirm := r.FormValue("confirm_password")

	if len(next) < minPasswordLength {
		h.renderProfile(w, r, "Passwords must be at least 8 characters.", "", http.StatusUnprocessableEntity)
		return
	}
	if next != confirm {
		h.renderProfile(w, r, "The new passwords do not match.", "", http.StatusUnprocessableEntity)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	stored, err := h.Users.GetByUID(ctx, user.UID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load account failed", err, "We could not load your account.", "/account")
		return
	}

	// A user who already has a password must prove they know it.
	if len(stored.PasswordHash) > 0 {
		if bcrypt.CompareHashAndPassword(stored.PasswordHash, []byte(current)) != nil {
			h.renderProfile(w, r, "Your current password was not correct.", "", http.StatusUnprocessableEntity)
			return
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "hash password failed", err, "We could not update your password.", "/account")
		return
	}
	if err := h.Users.SetPasswordHash(ctx, user.UID, hash); err != nil {
		h.ErrLog.LogServerError(w, r, "store password failed", err, "We could not update your password.", "/account")
		return
	}

	http.Redirect(w, r, "/account?notice=password_updated", http.StatusSeeOther)
}

func (h *Handler) renderProfile(w http.ResponseWriter, r *http.Request, errMsg, notice string, status int) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login?return=%2Faccount", http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	stored, err := h.Users.GetByUID(ctx, user.UID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load account failed", err, "We could not load your account.", "/")
		return
	}

	if status != 0 {
		w.WriteHeader(status)
	}
	templates.Render(w, r, "account", accountViewData{
		BaseVM:      viewdata.NewBaseVM(r, "Your Account", "/"),
		User:        stored,
		HasPassword: len(stored.PasswordHash) > 0,
		AuthMethod:  stored.AuthMethod,
		Error:       errMsg,
		Notice:      notice,
	})
}
