package booking

import (
	"time"

	"github.com/playzone/playzone-api/internal/domain/availability"
)

// CreateBookingRequest is the wire form of a booking commit
type CreateBookingRequest struct {
	BranchID          string `json:"branch_id" validate:"required,uuid"`
	Date              string `json:"date" validate:"required"`
	Time              string `json:"time" validate:"required"`
	Participants      int    `json:"participants" validate:"required,gt=0"`
	Type              string `json:"type" validate:"required,booking_type"`
	GameArea          string `json:"game_area" validate:"omitempty,game_area"`
	NumberOfGames     int    `json:"number_of_games" validate:"omitempty,gte=1,lte=12"`
	EventType         string `json:"event_type" validate:"omitempty,event_type"`
	AllocationMode    string `json:"allocation_mode" validate:"omitempty,oneof=auto small large maxi"`
	CustomerFirstName string `json:"customer_first_name" validate:"required,max=100"`
	CustomerLastName  string `json:"customer_last_name" validate:"required,max=100"`
	CustomerPhone     string `json:"customer_phone" validate:"required,max=32"`
	CustomerEmail     string `json:"customer_email" validate:"omitempty,email"`
	Notes             string `json:"notes" validate:"omitempty,max=500"`
}

// SessionResponse is one game session on the wire
type SessionResponse struct {
	GameArea           string    `json:"game_area"`
	LaserRoomID        *string   `json:"laser_room_id,omitempty"`
	StartDatetime      time.Time `json:"start_datetime"`
	EndDatetime        time.Time `json:"end_datetime"`
	SessionOrder       int       `json:"session_order"`
	PauseBeforeMinutes int       `json:"pause_before_minutes"`
}

// BookingResponse is a booking on the wire
type BookingResponse struct {
	ID                string            `json:"id"`
	BranchID          string            `json:"branch_id"`
	Type              string            `json:"type"`
	Status            Status            `json:"status"`
	ParticipantsCount int               `json:"participants_count"`
	StartDatetime     time.Time         `json:"start_datetime"`
	EndDatetime       time.Time         `json:"end_datetime"`
	EventRoomID       *string           `json:"event_room_id,omitempty"`
	Sessions          []SessionResponse `json:"sessions"`
}

// RefusedResponse reports why a commit was refused
type RefusedResponse struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason"`
	Message   string `json:"message"`
}

// ToBookingResponse converts a booking and its sessions to wire form
func ToBookingResponse(b *Booking, sessions []GameSession) *BookingResponse {
	resp := &BookingResponse{
		ID:                b.ID.String(),
		BranchID:          b.BranchID.String(),
		Type:              b.Type,
		Status:            b.Status,
		ParticipantsCount: b.ParticipantsCount,
		StartDatetime:     b.StartDatetime,
		EndDatetime:       b.EndDatetime,
		Sessions:          make([]SessionResponse, 0, len(sessions)),
	}
	if b.EventRoomID.Valid {
		id := b.EventRoomID.UUID.String()
		resp.EventRoomID = &id
	}
	for _, s := range sessions {
		session := SessionResponse{
			GameArea:           s.GameArea,
			StartDatetime:      s.StartDatetime,
			EndDatetime:        s.EndDatetime,
			SessionOrder:       s.SessionOrder,
			PauseBeforeMinutes: s.PauseBeforeMinutes,
		}
		if s.LaserRoomID.Valid {
			id := s.LaserRoomID.UUID.String()
			session.LaserRoomID = &id
		}
		resp.Sessions = append(resp.Sessions, session)
	}
	return resp
}

// ToRefusedResponse converts an engine refusal to wire form
func ToRefusedResponse(d availability.Decision) *RefusedResponse {
	return &RefusedResponse{
		Available: false,
		Reason:    string(d.Reason),
		Message:   d.Message,
	}
}
