// internal/app/features/training/routes.go
package training

import (
	_ "github.com/dalemusser/cyberhub/internal/app/features/training/views"
	"github.com/dalemusser/cyberhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sessionMgr *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sessionMgr.RequireSignedIn)
	r.Get("/", h.ServeCatalog)
	r.Get("/{moduleID}", h.ServeModule)
	r.Post("/{moduleID}", h.HandleQuiz)
	return r
}
