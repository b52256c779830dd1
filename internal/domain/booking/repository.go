package booking

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository handles booking database operations
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a new booking repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// BeginTx opens a serializable transaction. The commit path re-checks
// availability inside this transaction so two concurrent requests
// cannot both claim the last free capacity.
func (r *Repository) BeginTx(ctx context.Context) (*sqlx.Tx, error) {
	return r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
}

// CreateTx inserts a booking and its game sessions in one transaction
func (r *Repository) CreateTx(ctx context.Context, tx *sqlx.Tx, b *Booking, sessions []GameSession) error {
	bookingQuery := `
		INSERT INTO bookings (
			id, branch_id, type, status, participants_count,
			start_datetime, end_datetime, event_room_id,
			customer_first_name, customer_last_name, customer_phone, customer_email,
			notes, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := tx.ExecContext(ctx, bookingQuery,
		b.ID,
		b.BranchID,
		b.Type,
		b.Status,
		b.ParticipantsCount,
		b.StartDatetime,
		b.EndDatetime,
		b.EventRoomID,
		b.CustomerFirstName,
		b.CustomerLastName,
		b.CustomerPhone,
		b.CustomerEmail,
		b.Notes,
		b.CreatedAt,
		b.UpdatedAt,
	)
	if err != nil {
		return err
	}

	sessionQuery := `
		INSERT INTO game_sessions (
			id, booking_id, game_area, laser_room_id,
			start_datetime, end_datetime, session_order, pause_before_minutes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	for _, s := range sessions {
		if _, err := tx.ExecContext(ctx, sessionQuery,
			s.ID,
			s.BookingID,
			s.GameArea,
			s.LaserRoomID,
			s.StartDatetime,
			s.EndDatetime,
			s.SessionOrder,
			s.PauseBeforeMinutes,
		); err != nil {
			return err
		}
	}
	return nil
}

// GetByID returns a booking with its game sessions
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, []GameSession, error) {
	var b Booking
	err := r.db.GetContext(ctx, &b, `SELECT * FROM bookings WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	var sessions []GameSession
	err = r.db.SelectContext(ctx, &sessions,
		`SELECT * FROM game_sessions WHERE booking_id = $1 ORDER BY session_order`, id)
	if err != nil {
		return nil, nil, err
	}
	return &b, sessions, nil
}

// UpdateStatus sets a booking's status
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
