package booking

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/playzone/playzone-api/internal/domain/availability"
	"github.com/playzone/playzone-api/internal/domain/branch"
	"github.com/playzone/playzone-api/internal/pkg/response"
	"github.com/playzone/playzone-api/internal/pkg/validator"
)

// Handler handles booking HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates booking handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create commits a booking
// POST /bookings
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
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

	result, err := h.service.Create(r.Context(), CreateParams{
		BranchID:          branchID,
		Date:              req.Date,
		Time:              req.Time,
		Participants:      req.Participants,
		Type:              availability.BookingType(req.Type),
		GameArea:          availability.GameArea(req.GameArea),
		NumberOfGames:     req.NumberOfGames,
		EventType:         availability.EventType(req.EventType),
		AllocationMode:    availability.AllocationMode(req.AllocationMode),
		CustomerFirstName: req.CustomerFirstName,
		CustomerLastName:  req.CustomerLastName,
		CustomerPhone:     req.CustomerPhone,
		CustomerEmail:     req.CustomerEmail,
		Notes:             req.Notes,
	})
	if err != nil {
		if errors.Is(err, branch.ErrSettingsNotFound) {
			response.NotFound(w, "Branch settings not found")
			return
		}
		response.InternalError(w)
		return
	}

	if result.Booking == nil {
		if result.Decision.Reason == availability.ReasonInvalidRequest {
			response.BadRequest(w, result.Decision.Message)
			return
		}
		response.JSON(w, http.StatusConflict, ToRefusedResponse(result.Decision))
		return
	}

	response.Created(w, ToBookingResponse(result.Booking, result.Sessions))
}

// Get returns one booking
// GET /bookings/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	b, sessions, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Booking not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, ToBookingResponse(b, sessions))
}

// Cancel cancels a booking
// POST /bookings/{id}/cancel
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	if err := h.service.Cancel(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFound(w, "Booking not found")
		case errors.Is(err, ErrAlreadyCancelled):
			response.Conflict(w, "Booking is already cancelled")
		case errors.Is(err, ErrNotCancellable):
			response.Conflict(w, "Booking can no longer be cancelled")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]string{"message": "Booking cancelled"})
}
