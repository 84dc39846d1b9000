// internal/app/features/readiness/routes.go
package readiness

import (
	_ "github.com/dalemusser/cyberhub/internal/app/features/readiness/views"
	"github.com/dalemusser/cyberhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sessionMgr *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sessionMgr.RequireRole("coordinator"))
	r.Get("/", h.ServeChecklist)
	r.Post("/", h.HandleSubmit)
	return r
}
