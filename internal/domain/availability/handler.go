package availability

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/playzone/playzone-api/internal/domain/branch"
	"github.com/playzone/playzone-api/internal/pkg/response"
	"github.com/playzone/playzone-api/internal/pkg/validator"
)

// Handler handles availability HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates availability handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Check runs an availability check
// POST /availability/check
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	var req CheckRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	branchID, err := uuid.Parse(req.BranchID)
	if err != nil {
		response.BadRequest(w, "Invalid branch ID")
		return
	}

	result, err := h.service.Check(r.Context(), CheckParams{
		BranchID:       branchID,
		Date:           req.Date,
		Time:           req.Time,
		Participants:   req.Participants,
		Type:           BookingType(req.Type),
		GameArea:       GameArea(req.GameArea),
		NumberOfGames:  req.NumberOfGames,
		EventType:      EventType(req.EventType),
		AllocationMode: AllocationMode(req.AllocationMode),
	})
	if err != nil {
		if errors.Is(err, branch.ErrSettingsNotFound) {
			response.NotFound(w, "Branch settings not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, ToCheckResponse(result))
}
