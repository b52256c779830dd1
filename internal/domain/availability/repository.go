package availability

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/playzone/playzone-api/internal/pkg/timewindow"
)

// Repository loads booking snapshots for the engine
type Repository struct {
	q sqlx.QueryerContext
}

// NewRepository creates a new snapshot repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{q: db}
}

// WithQueryer returns a copy bound to another queryer, typically a
// transaction, so the booking commit can re-read the snapshot inside
// the same transaction that persists the new booking.
func (r *Repository) WithQueryer(q sqlx.QueryerContext) *Repository {
	return &Repository{q: q}
}

type bookingRow struct {
	ID            uuid.UUID  `db:"id"`
	Participants  int        `db:"participants_count"`
	Type          string     `db:"type"`
	EventRoomID   *uuid.UUID `db:"event_room_id"`
	StartDatetime time.Time  `db:"start_datetime"`
	EndDatetime   time.Time  `db:"end_datetime"`
}

type sessionRow struct {
	BookingID     uuid.UUID  `db:"booking_id"`
	GameArea      string     `db:"game_area"`
	LaserRoomID   *uuid.UUID `db:"laser_room_id"`
	StartDatetime time.Time  `db:"start_datetime"`
	EndDatetime   time.Time  `db:"end_datetime"`
}

// Snapshot returns every non-cancelled booking of the branch whose
// reservation window overlaps win, with its game sessions. The caller
// passes a window wide enough to cover everything the request could
// touch.
func (r *Repository) Snapshot(ctx context.Context, branchID uuid.UUID, win timewindow.Window) ([]Booking, error) {
	bookingsQuery := `
		SELECT id, participants_count, type, event_room_id, start_datetime, end_datetime
		FROM bookings
		WHERE branch_id = $1
		  AND status <> 'CANCELLED'
		  AND start_datetime < $3
		  AND end_datetime > $2
		ORDER BY start_datetime
	`
	var rows []bookingRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, bookingsQuery, branchID, win.Start, win.End); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, len(rows))
	byID := make(map[uuid.UUID]*Booking, len(rows))
	bookings := make([]Booking, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
		bookings[i] = Booking{
			ID:           row.ID,
			Participants: row.Participants,
			Type:         BookingType(row.Type),
			EventRoomID:  row.EventRoomID,
			Window:       timewindow.Window{Start: row.StartDatetime, End: row.EndDatetime},
		}
		byID[row.ID] = &bookings[i]
	}

	sessionsQuery := `
		SELECT booking_id, game_area, laser_room_id, start_datetime, end_datetime
		FROM game_sessions
		WHERE booking_id = ANY($1::uuid[])
		ORDER BY booking_id, start_datetime
	`
	var sessions []sessionRow
	if err := sqlx.SelectContext(ctx, r.q, &sessions, sessionsQuery, pq.Array(ids)); err != nil {
		return nil, err
	}
	for _, s := range sessions {
		b, ok := byID[s.BookingID]
		if !ok {
			continue
		}
		b.Sessions = append(b.Sessions, Session{
			Area:        GameArea(s.GameArea),
			LaserRoomID: s.LaserRoomID,
			Window:      timewindow.Window{Start: s.StartDatetime, End: s.EndDatetime},
		})
	}
	return bookings, nil
}
