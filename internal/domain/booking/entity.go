package booking

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of a booking
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
)

// Booking is a persisted reservation. Cancelled bookings contribute
// zero occupancy to every resource.
type Booking struct {
	ID                uuid.UUID      `db:"id" json:"id"`
	BranchID          uuid.UUID      `db:"branch_id" json:"branch_id"`
	Type              string         `db:"type" json:"type"`
	Status            Status         `db:"status" json:"status"`
	ParticipantsCount int            `db:"participants_count" json:"participants_count"`
	StartDatetime     time.Time      `db:"start_datetime" json:"start_datetime"`
	EndDatetime       time.Time      `db:"end_datetime" json:"end_datetime"`
	EventRoomID       uuid.NullUUID  `db:"event_room_id" json:"event_room_id,omitempty"`
	CustomerFirstName string         `db:"customer_first_name" json:"customer_first_name"`
	CustomerLastName  string         `db:"customer_last_name" json:"customer_last_name"`
	CustomerPhone     string         `db:"customer_phone" json:"customer_phone"`
	CustomerEmail     sql.NullString `db:"customer_email" json:"customer_email,omitempty"`
	Notes             sql.NullString `db:"notes" json:"notes,omitempty"`
	CreatedAt         time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at" json:"updated_at"`
}

// IsActive returns true unless the booking has been cancelled
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// GameSession is one game of a booking: the unit availability checks
// conflict-test against. Multi-room laser games persist one session per
// room.
type GameSession struct {
	ID                 uuid.UUID     `db:"id" json:"id"`
	BookingID          uuid.UUID     `db:"booking_id" json:"booking_id"`
	GameArea           string        `db:"game_area" json:"game_area"`
	LaserRoomID        uuid.NullUUID `db:"laser_room_id" json:"laser_room_id,omitempty"`
	StartDatetime      time.Time     `db:"start_datetime" json:"start_datetime"`
	EndDatetime        time.Time     `db:"end_datetime" json:"end_datetime"`
	SessionOrder       int           `db:"session_order" json:"session_order"`
	PauseBeforeMinutes int           `db:"pause_before_minutes" json:"pause_before_minutes"`
}
