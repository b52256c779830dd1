package availability

import (
	"time"
)

// CheckRequest is the wire form of one availability question
type CheckRequest struct {
	BranchID       string `json:"branch_id" validate:"required,uuid"`
	Date           string `json:"date" validate:"required"`
	Time           string `json:"time" validate:"required"`
	Participants   int    `json:"participants" validate:"required,gt=0"`
	Type           string `json:"type" validate:"required,booking_type"`
	GameArea       string `json:"game_area" validate:"omitempty,game_area"`
	NumberOfGames  int    `json:"number_of_games" validate:"omitempty,gte=1,lte=12"`
	EventType      string `json:"event_type" validate:"omitempty,event_type"`
	AllocationMode string `json:"allocation_mode" validate:"omitempty,oneof=auto small large maxi"`
}

// CheckResponse is the wire form of a decision
type CheckResponse struct {
	Available        bool              `json:"available"`
	Reason           string            `json:"reason,omitempty"`
	Message          string            `json:"message,omitempty"`
	StartDatetime    *time.Time        `json:"start_datetime,omitempty"`
	EndDatetime      *time.Time        `json:"end_datetime,omitempty"`
	LaserAllocations []LaserAllocation `json:"laser_allocations,omitempty"`
	EventRoomID      *string           `json:"event_room_id,omitempty"`
	Alternatives     *Alternatives     `json:"alternatives,omitempty"`
}

// ToCheckResponse converts a service result to its wire form
func ToCheckResponse(result *Result) *CheckResponse {
	resp := &CheckResponse{
		Available:        result.Available,
		Reason:           string(result.Reason),
		Message:          result.Message,
		LaserAllocations: result.LaserAllocations,
		Alternatives:     result.Alternatives,
	}
	if !result.Window.IsZero() {
		start, end := result.Window.Start, result.Window.End
		resp.StartDatetime = &start
		resp.EndDatetime = &end
	}
	if result.EventRoomID != nil {
		id := result.EventRoomID.String()
		resp.EventRoomID = &id
	}
	return resp
}
