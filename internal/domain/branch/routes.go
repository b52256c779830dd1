package branch

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns branch routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/{id}/settings", h.GetSettings)

	return r
}
