// internal/app/features/account/routes.go
package account

import (
	_ "github.com/dalemusser/cyberhub/internal/app/features/account/views"
	"github.com/dalemusser/cyberhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sessionMgr *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sessionMgr.RequireSignedIn)
	r.Get("/", h.ServeProfile)
	r.Post("/password", h.HandleChangePassword)
	return r
}
