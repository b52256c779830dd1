package branch

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/playzone/playzone-api/internal/pkg/timewindow"
)

// Defaults are system-wide fallbacks applied when a branch leaves a
// tunable unset.
type Defaults struct {
	SlotStepMinutes       int
	InterGamePauseMinutes int
}

// Repository handles branch configuration database operations
type Repository struct {
	db       *sqlx.DB
	defaults Defaults
}

// NewRepository creates a new branch repository
func NewRepository(db *sqlx.DB, defaults Defaults) *Repository {
	return &Repository{db: db, defaults: defaults}
}

type settingsRow struct {
	BranchID                  uuid.UUID       `db:"branch_id"`
	OpeningHours              json.RawMessage `db:"opening_hours"`
	GameDurationMinutes       int             `db:"game_duration_minutes"`
	MaxConcurrentPlayers      int             `db:"max_concurrent_players"`
	SlotStepMinutes           sql.NullInt64   `db:"slot_step_minutes"`
	InterGamePauseMinutes     sql.NullInt64   `db:"inter_game_pause_minutes"`
	LaserEnabled              sql.NullBool    `db:"laser_enabled"`
	LaserTotalVests           sql.NullInt64   `db:"laser_total_vests"`
	LaserSpareVests           sql.NullInt64   `db:"laser_spare_vests"`
	LaserExclusiveThreshold   sql.NullInt64   `db:"laser_exclusive_threshold"`
	EventTotalDurationMinutes int             `db:"event_total_duration_minutes"`
	EventGameDurationMinutes  int             `db:"event_game_duration_minutes"`
	EventBufferBeforeMinutes  int             `db:"event_buffer_before_minutes"`
	EventBufferAfterMinutes   int             `db:"event_buffer_after_minutes"`
	EventMinParticipants      int             `db:"event_min_participants"`
	GamePricePerPerson        float64         `db:"game_price_per_person"`
	BraceletPrice             float64         `db:"bracelet_price"`
	EventPrice15To29          float64         `db:"event_price_15_29"`
	EventPrice30Plus          float64         `db:"event_price_30_plus"`
	UpdatedAt                 time.Time       `db:"updated_at"`
}

// rawDayHours is the stored JSON shape of one weekday's hours
type rawDayHours struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// GetSettings loads and validates the configuration for one branch
func (r *Repository) GetSettings(ctx context.Context, branchID uuid.UUID) (*Settings, error) {
	query := `
		SELECT branch_id, opening_hours, game_duration_minutes, max_concurrent_players,
		       slot_step_minutes, inter_game_pause_minutes,
		       laser_enabled, laser_total_vests, laser_spare_vests, laser_exclusive_threshold,
		       event_total_duration_minutes, event_game_duration_minutes,
		       event_buffer_before_minutes, event_buffer_after_minutes, event_min_participants,
		       game_price_per_person, bracelet_price, event_price_15_29, event_price_30_plus,
		       updated_at
		FROM branch_settings
		WHERE branch_id = $1
	`
	var row settingsRow
	err := r.db.GetContext(ctx, &row, query, branchID)
	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, err
	}

	settings, err := r.toSettings(&row)
	if err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

func (r *Repository) toSettings(row *settingsRow) (*Settings, error) {
	hours, err := parseOpeningHours(row.OpeningHours)
	if err != nil {
		return nil, err
	}

	s := &Settings{
		BranchID:                  row.BranchID,
		OpeningHours:              hours,
		GameDurationMinutes:       row.GameDurationMinutes,
		MaxConcurrentPlayers:      row.MaxConcurrentPlayers,
		SlotStepMinutes:           int(row.SlotStepMinutes.Int64),
		InterGamePauseMinutes:     int(row.InterGamePauseMinutes.Int64),
		LaserEnabled:              row.LaserEnabled.Bool,
		LaserTotalVests:           int(row.LaserTotalVests.Int64),
		LaserSpareVests:           int(row.LaserSpareVests.Int64),
		LaserExclusiveThreshold:   int(row.LaserExclusiveThreshold.Int64),
		EventTotalDurationMinutes: row.EventTotalDurationMinutes,
		EventGameDurationMinutes:  row.EventGameDurationMinutes,
		EventBufferBeforeMinutes:  row.EventBufferBeforeMinutes,
		EventBufferAfterMinutes:   row.EventBufferAfterMinutes,
		EventMinParticipants:      row.EventMinParticipants,
		GamePricePerPerson:        row.GamePricePerPerson,
		BraceletPrice:             row.BraceletPrice,
		EventPrice15To29:          row.EventPrice15To29,
		EventPrice30Plus:          row.EventPrice30Plus,
		UpdatedAt:                 row.UpdatedAt,
	}

	if s.SlotStepMinutes == 0 {
		s.SlotStepMinutes = r.defaults.SlotStepMinutes
	}
	if !row.InterGamePauseMinutes.Valid {
		s.InterGamePauseMinutes = r.defaults.InterGamePauseMinutes
	}
	return s, nil
}

// parseOpeningHours converts the stored weekday-keyed JSON object into
// the typed schedule, rejecting malformed entries instead of letting
// them propagate into the allocator.
func parseOpeningHours(raw json.RawMessage) (OpeningHours, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return OpeningHours{}, nil
	}

	var byDay map[string]rawDayHours
	if err := json.Unmarshal(raw, &byDay); err != nil {
		return nil, fmt.Errorf("%w: opening_hours: %v", ErrInvalidSettings, err)
	}

	hours := make(OpeningHours, len(byDay))
	for name, raw := range byDay {
		day, ok := weekdayNames[name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown weekday %q", ErrInvalidSettings, name)
		}
		open, err := timewindow.ParseClock(raw.Open)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
		}
		closeAt, err := timewindow.ParseClock(raw.Close)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
		}
		hours[day] = DayHours{Open: open, Close: closeAt}
	}
	return hours, nil
}

// ListLaserRooms returns the active laser rooms of a branch in display order
func (r *Repository) ListLaserRooms(ctx context.Context, branchID uuid.UUID) ([]LaserRoom, error) {
	query := `
		SELECT id, branch_id, slug, name, capacity, sort_order, is_active
		FROM laser_rooms
		WHERE branch_id = $1 AND is_active = true
		ORDER BY sort_order
	`
	var rooms []LaserRoom
	err := r.db.SelectContext(ctx, &rooms, query, branchID)
	return rooms, err
}

// ListEventRooms returns the active event rooms of a branch in display order
func (r *Repository) ListEventRooms(ctx context.Context, branchID uuid.UUID) ([]EventRoom, error) {
	query := `
		SELECT id, branch_id, slug, name, capacity, sort_order, is_active, price
		FROM event_rooms
		WHERE branch_id = $1 AND is_active = true
		ORDER BY sort_order
	`
	var rooms []EventRoom
	err := r.db.SelectContext(ctx, &rooms, query, branchID)
	return rooms, err
}
