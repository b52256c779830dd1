package pricing

import "github.com/go-chi/chi/v5"

// Routes returns pricing routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/deposit", h.Deposit)
	return r
}
