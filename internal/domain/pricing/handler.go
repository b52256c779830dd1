package pricing

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/playzone/playzone-api/internal/domain/availability"
	"github.com/playzone/playzone-api/internal/domain/branch"
	"github.com/playzone/playzone-api/internal/pkg/response"
	"github.com/playzone/playzone-api/internal/pkg/validator"
)

// Handler handles pricing HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates pricing handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Deposit quotes the deposit for a booking
// POST /pricing/deposit
func (h *Handler) Deposit(w http.ResponseWriter, r *http.Request) {
	var req DepositRequest
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

	params := QuoteParams{
		BranchID:      branchID,
		Type:          availability.BookingType(req.BookingType),
		Participants:  req.Participants,
		NumberOfGames: req.NumberOfGames,
	}
	if req.EventRoomID != "" {
		roomID, err := uuid.Parse(req.EventRoomID)
		if err != nil {
			response.BadRequest(w, "Invalid event room ID")
			return
		}
		params.EventRoomID = &roomID
	}

	quote, err := h.service.Deposit(r.Context(), params)
	if err != nil {
		switch {
		case errors.Is(err, branch.ErrSettingsNotFound):
			response.NotFound(w, "Branch settings not found")
		case errors.Is(err, ErrNoEventRoom):
			response.BadRequest(w, "No event room fits the party size")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, quote)
}
