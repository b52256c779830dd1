package pricing

// DepositRequest is the payload for a deposit quote
type DepositRequest struct {
	BranchID      string `json:"branch_id" validate:"required,uuid"`
	BookingType   string `json:"booking_type" validate:"required,booking_type"`
	Participants  int    `json:"participants" validate:"required,min=1"`
	NumberOfGames int    `json:"number_of_games,omitempty" validate:"omitempty,min=1,max=10"`
	EventRoomID   string `json:"event_room_id,omitempty" validate:"omitempty,uuid"`
}
