package availability

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns availability routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/check", h.Check)

	return r
}
