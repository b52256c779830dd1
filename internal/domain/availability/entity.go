package availability

import (
	"time"

	"github.com/google/uuid"

	"github.com/playzone/playzone-api/internal/domain/branch"
	"github.com/playzone/playzone-api/internal/pkg/timewindow"
)

// BookingType is the top-level shape of a request
type BookingType string

const (
	TypeGame  BookingType = "GAME"
	TypeEvent BookingType = "EVENT"
)

// GameArea identifies which physical resource a game session consumes
type GameArea string

const (
	AreaActive GameArea = "ACTIVE"
	AreaLaser  GameArea = "LASER"
	AreaMix    GameArea = "MIX"
)

// EventType determines which game areas an event's sessions run in
type EventType string

const (
	EventActive EventType = "event_active"
	EventLaser  EventType = "event_laser"
	EventMix    EventType = "event_mix"
)

// AllocationMode lets the admin force a laser room choice instead of
// the automatic smallest-fit assignment
type AllocationMode string

const (
	AllocAuto  AllocationMode = "auto"
	AllocSmall AllocationMode = "small"
	AllocLarge AllocationMode = "large"
	AllocMaxi  AllocationMode = "maxi"
)

// Reason is the closed failure taxonomy. Callers branch on these codes,
// never on message text.
type Reason string

const (
	ReasonClosed           Reason = "closed"
	ReasonOutsideHours     Reason = "outside_hours"
	ReasonCapacityExceeded Reason = "capacity_exceeded"
	ReasonNoLaserRooms     Reason = "no_laser_rooms"
	ReasonNoEventRoom      Reason = "no_event_room"
	ReasonEventRoomBusy    Reason = "event_room_busy"
	ReasonInvalidRequest   Reason = "invalid_request"
)

// Request is one availability question in the venue's local calendar
// terms. Day is midnight of the requested date in the venue timezone;
// Start is the requested time of day.
type Request struct {
	BranchID      uuid.UUID
	Day           time.Time
	Start         timewindow.Clock
	Participants  int
	Type          BookingType
	GameArea      GameArea
	NumberOfGames int
	EventType     EventType

	// AllocationMode defaults to automatic assignment
	AllocationMode AllocationMode

	// ExcludeBookingID removes one booking from the snapshot, for
	// re-checking an existing reservation after edits.
	ExcludeBookingID *uuid.UUID
}

// Session is one game session of an existing booking, the unit the
// checkers conflict-test against.
type Session struct {
	Area        GameArea
	LaserRoomID *uuid.UUID
	Window      timewindow.Window
}

// Booking is an existing non-cancelled reservation in the snapshot. The
// booking's participant count is attributed to whichever of its
// sessions overlap a candidate window.
type Booking struct {
	ID           uuid.UUID
	Participants int
	Type         BookingType
	EventRoomID  *uuid.UUID
	Window       timewindow.Window
	Sessions     []Session
}

// Snapshot is the caller-supplied read-only state the engine decides
// against: the branch's active rooms and every non-cancelled booking
// whose sessions could touch the request. Cancelled bookings must not
// appear here.
type Snapshot struct {
	LaserRooms []branch.LaserRoom
	EventRooms []branch.EventRoom
	Bookings   []Booking
}

// LaserAllocation is the room assignment chosen for one laser game
type LaserAllocation struct {
	Game      int               `json:"game"`
	Window    timewindow.Window `json:"-"`
	RoomIDs   []uuid.UUID       `json:"room_ids"`
	MultiRoom bool              `json:"multi_room"`
}

// Decision is the engine's verdict for one request. It has no persisted
// identity; "unavailable" is an expected outcome, not an error.
type Decision struct {
	Available bool
	Reason    Reason
	Message   string

	// Window is the overall window the request would occupy
	Window timewindow.Window

	// LaserAllocations carries the chosen room set per laser game so
	// the caller can persist the assignment.
	LaserAllocations []LaserAllocation

	// EventRoomID is the conflict-free event room, for EVENT requests
	EventRoomID *uuid.UUID
}

func unavailable(reason Reason, message string) Decision {
	return Decision{Available: false, Reason: reason, Message: message}
}
