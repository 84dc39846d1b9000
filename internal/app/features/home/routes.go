package home

import (
	_ "github.com/dalemusser/cyberhub/internal/app/features/home/views"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeRoot)
	return r
}
