package branch

import (
	"time"

	"github.com/google/uuid"

	"github.com/playzone/playzone-api/internal/pkg/timewindow"
)

// DayHours is the open/close interval for one weekday. The branch is
// open for [Open, Close) local time.
type DayHours struct {
	Open  timewindow.Clock
	Close timewindow.Clock
}

// OpeningHours maps weekdays to opening hours. A missing entry means
// the branch is closed that day.
type OpeningHours map[time.Weekday]DayHours

// For returns the hours for a weekday, if the branch opens that day
func (oh OpeningHours) For(day time.Weekday) (DayHours, bool) {
	h, ok := oh[day]
	return h, ok
}

// Settings is the validated per-branch configuration the availability
// engine runs against. It is immutable for the duration of one check.
type Settings struct {
	BranchID     uuid.UUID
	OpeningHours OpeningHours

	GameDurationMinutes  int
	MaxConcurrentPlayers int

	// Scan granularity for the Active floor and the pause inserted
	// between consecutive laser games. Stored per branch; zero values
	// fall back to system defaults at load time.
	SlotStepMinutes       int
	InterGamePauseMinutes int

	LaserEnabled            bool
	LaserTotalVests         int
	LaserSpareVests         int
	LaserExclusiveThreshold int

	EventTotalDurationMinutes int
	EventGameDurationMinutes  int
	EventBufferBeforeMinutes  int
	EventBufferAfterMinutes   int
	EventMinParticipants      int

	GamePricePerPerson float64
	BraceletPrice      float64
	EventPrice15To29   float64
	EventPrice30Plus   float64

	UpdatedAt time.Time
}

// UsableVests returns the vest inventory available for play: total
// minus the spares held back for turnover and maintenance.
func (s *Settings) UsableVests() int {
	return s.LaserTotalVests - s.LaserSpareVests
}

// Validate rejects configuration the engine cannot safely run against.
func (s *Settings) Validate() error {
	if s.GameDurationMinutes <= 0 {
		return ErrInvalidSettings
	}
	if s.MaxConcurrentPlayers <= 0 {
		return ErrInvalidSettings
	}
	if s.SlotStepMinutes <= 0 || s.InterGamePauseMinutes < 0 {
		return ErrInvalidSettings
	}
	if s.LaserEnabled {
		if s.LaserTotalVests <= 0 || s.LaserSpareVests < 0 || s.UsableVests() <= 0 {
			return ErrInvalidSettings
		}
		if s.LaserExclusiveThreshold <= 0 {
			return ErrInvalidSettings
		}
	}
	for _, h := range s.OpeningHours {
		if !h.Open.Before(h.Close) {
			return ErrInvalidSettings
		}
	}
	return nil
}

// LaserRoom is a physical laser-tag room. Allocation considers all
// active rooms of a branch jointly.
type LaserRoom struct {
	ID        uuid.UUID `db:"id"`
	BranchID  uuid.UUID `db:"branch_id"`
	Slug      string    `db:"slug"`
	Name      string    `db:"name"`
	Capacity  int       `db:"capacity"`
	SortOrder int       `db:"sort_order"`
	IsActive  bool      `db:"is_active"`
}

// EventRoom is a room booked wholesale for the duration of an event.
type EventRoom struct {
	ID        uuid.UUID `db:"id"`
	BranchID  uuid.UUID `db:"branch_id"`
	Slug      string    `db:"slug"`
	Name      string    `db:"name"`
	Capacity  int       `db:"capacity"`
	SortOrder int       `db:"sort_order"`
	IsActive  bool      `db:"is_active"`
	Price     float64   `db:"price"`
}
