package branch

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/playzone/playzone-api/internal/pkg/response"
)

// Handler handles branch configuration HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates branch handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetSettings returns a branch's configuration
// GET /branches/{id}/settings
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	branchID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid branch ID")
		return
	}

	settings, err := h.service.Settings(r.Context(), branchID)
	if err != nil {
		switch {
		case errors.Is(err, ErrSettingsNotFound):
			response.NotFound(w, "Branch settings not found")
		case errors.Is(err, ErrInvalidSettings):
			response.Error(w, http.StatusUnprocessableEntity, "INVALID_SETTINGS", "Branch configuration is malformed")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, ToSettingsResponse(settings))
}
