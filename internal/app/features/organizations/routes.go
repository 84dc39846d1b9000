// internal/app/features/organizations/routes.go
package organizations

import (
	_ "github.com/dalemusser/cyberhub/internal/app/features/organizations/views"
	"github.com/dalemusser/cyberhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sessionMgr *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sessionMgr.RequireRole("coordinator"))
	r.Get("/", h.ServeView)
	r.Get("/members.csv", h.ServeMemberExport)
	r.Post("/code", h.HandleRegenerateCode)
	r.Post("/banner", h.HandleSetBanner)
	return r
}
