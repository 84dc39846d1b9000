// internal/app/features/news/routes.go
package news

import (
	_ "github.com/dalemusser/cyberhub/internal/app/features/news/views"
	"github.com/dalemusser/cyberhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sessionMgr *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sessionMgr.RequireSignedIn)
	r.Get("/", h.ServeList)
	r.With(sessionMgr.RequireRole("coordinator")).Post("/refresh", h.HandleRefresh)
	return r
}
