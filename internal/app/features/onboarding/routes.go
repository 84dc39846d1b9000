// internal/app/features/onboarding/routes.go
package onboarding

import (
	_ "github.com/dalemusser/cyberhub/internal/app/features/onboarding/views"
	"github.com/dalemusser/cyberhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sessionMgr *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sessionMgr.RequireSignedIn)
	r.Get("/", h.ServeForm)
	r.Post("/", h.HandleSubmit)
	return r
}
