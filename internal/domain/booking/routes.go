package booking

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns booking routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Post("/{id}/cancel", h.Cancel)

	return r
}
