package booking

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/playzone/playzone-api/internal/domain/availability"
	"github.com/playzone/playzone-api/internal/domain/branch"
	"github.com/playzone/playzone-api/internal/pkg/timewindow"
)

// BranchSource serves branch configuration and room inventory
type BranchSource interface {
	Settings(ctx context.Context, branchID uuid.UUID) (*branch.Settings, error)
	LaserRooms(ctx context.Context, branchID uuid.UUID) ([]branch.LaserRoom, error)
	EventRooms(ctx context.Context, branchID uuid.UUID) ([]branch.EventRoom, error)
}

// Service commits bookings. The availability engine only decides over a
// snapshot, so the commit path closes the check-then-act race itself:
// requests for one branch are serialized through a per-branch mutex and
// the decision is re-validated inside the same serializable transaction
// that persists the booking.
type Service struct {
	repo      *Repository
	snapshots *availability.Repository
	branches  BranchSource
	engine    *availability.Engine
	loc       *time.Location

	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

// NewService creates a new booking service
func NewService(repo *Repository, snapshots *availability.Repository, branches BranchSource, engine *availability.Engine, loc *time.Location) *Service {
	return &Service{
		repo:      repo,
		snapshots: snapshots,
		branches:  branches,
		engine:    engine,
		loc:       loc,
		locks:     make(map[uuid.UUID]*sync.Mutex),
	}
}

func (s *Service) branchLock(branchID uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[branchID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[branchID] = lock
	}
	return lock
}

// CreateParams describes one booking to commit
type CreateParams struct {
	BranchID          uuid.UUID
	Date              string
	Time              string
	Participants      int
	Type              availability.BookingType
	GameArea          availability.GameArea
	NumberOfGames     int
	EventType         availability.EventType
	AllocationMode    availability.AllocationMode
	CustomerFirstName string
	CustomerLastName  string
	CustomerPhone     string
	CustomerEmail     string
	Notes             string
}

// CreateResult is either a committed booking or the engine's refusal
type CreateResult struct {
	Decision availability.Decision
	Booking  *Booking
	Sessions []GameSession
}

// Create validates and persists a booking atomically
func (s *Service) Create(ctx context.Context, p CreateParams) (*CreateResult, error) {
	day, err := timewindow.ParseDate(p.Date, s.loc)
	if err != nil {
		return refused(availability.ReasonInvalidRequest, "Invalid date format, expected YYYY-MM-DD"), nil
	}
	clock, err := timewindow.ParseClock(p.Time)
	if err != nil {
		return refused(availability.ReasonInvalidRequest, "Invalid time format, expected HH:MM"), nil
	}

	settings, err := s.branches.Settings(ctx, p.BranchID)
	if err != nil {
		return nil, err
	}
	laserRooms, err := s.branches.LaserRooms(ctx, p.BranchID)
	if err != nil {
		return nil, err
	}
	eventRooms, err := s.branches.EventRooms(ctx, p.BranchID)
	if err != nil {
		return nil, err
	}

	req := availability.Request{
		BranchID:       p.BranchID,
		Day:            day,
		Start:          clock,
		Participants:   p.Participants,
		Type:           p.Type,
		GameArea:       p.GameArea,
		NumberOfGames:  p.NumberOfGames,
		EventType:      p.EventType,
		AllocationMode: p.AllocationMode,
	}

	lock := s.branchLock(p.BranchID)
	lock.Lock()
	defer lock.Unlock()

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			log.Error().Err(err).Msg("Booking transaction rollback failed")
		}
	}()

	// Re-read the snapshot inside the transaction: the decision must
	// hold against the state this transaction will commit over.
	snapWindow := timewindow.Window{Start: day.Add(-2 * time.Hour), End: day.Add(26 * time.Hour)}
	bookings, err := s.snapshots.WithQueryer(tx).Snapshot(ctx, p.BranchID, snapWindow)
	if err != nil {
		return nil, err
	}
	snap := availability.Snapshot{
		LaserRooms: laserRooms,
		EventRooms: eventRooms,
		Bookings:   bookings,
	}

	decision := s.engine.Check(req, settings, snap)
	if !decision.Available {
		return &CreateResult{Decision: decision}, nil
	}

	b, sessions := s.compose(p, req, settings, decision)
	if err := s.repo.CreateTx(ctx, tx, b, sessions); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.Info().
		Str("booking_id", b.ID.String()).
		Str("branch_id", b.BranchID.String()).
		Str("type", b.Type).
		Int("participants", b.ParticipantsCount).
		Msg("Booking created")

	return &CreateResult{Decision: decision, Booking: b, Sessions: sessions}, nil
}

// compose materializes the booking and its game sessions from the
// engine's decision and session plan.
func (s *Service) compose(p CreateParams, req availability.Request, settings *branch.Settings, decision availability.Decision) (*Booking, []GameSession) {
	now := time.Now().UTC()
	b := &Booking{
		ID:                uuid.New(),
		BranchID:          p.BranchID,
		Type:              string(p.Type),
		Status:            StatusConfirmed,
		ParticipantsCount: p.Participants,
		StartDatetime:     decision.Window.Start,
		EndDatetime:       decision.Window.End,
		CustomerFirstName: p.CustomerFirstName,
		CustomerLastName:  p.CustomerLastName,
		CustomerPhone:     p.CustomerPhone,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if p.CustomerEmail != "" {
		b.CustomerEmail = sql.NullString{String: p.CustomerEmail, Valid: true}
	}
	if p.Notes != "" {
		b.Notes = sql.NullString{String: p.Notes, Valid: true}
	}
	if decision.EventRoomID != nil {
		b.EventRoomID = uuid.NullUUID{UUID: *decision.EventRoomID, Valid: true}
	}

	laserRooms := make(map[int][]uuid.UUID, len(decision.LaserAllocations))
	for _, alloc := range decision.LaserAllocations {
		laserRooms[alloc.Game] = alloc.RoomIDs
	}

	var sessions []GameSession
	for _, plan := range s.engine.Sessions(req, settings) {
		base := GameSession{
			BookingID:          b.ID,
			GameArea:           string(plan.Area),
			StartDatetime:      plan.Window.Start,
			EndDatetime:        plan.Window.End,
			SessionOrder:       plan.Index,
			PauseBeforeMinutes: plan.PauseBeforeMinutes,
		}
		if plan.Area == availability.AreaLaser {
			// One session row per allocated room: multi-room games
			// block the whole laser area for their window.
			for _, roomID := range laserRooms[plan.Index] {
				session := base
				session.ID = uuid.New()
				session.LaserRoomID = uuid.NullUUID{UUID: roomID, Valid: true}
				sessions = append(sessions, session)
			}
			continue
		}
		session := base
		session.ID = uuid.New()
		sessions = append(sessions, session)
	}
	return b, sessions
}

func refused(reason availability.Reason, message string) *CreateResult {
	return &CreateResult{Decision: availability.Decision{
		Available: false,
		Reason:    reason,
		Message:   message,
	}}
}

// Get returns a booking with its sessions
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Booking, []GameSession, error) {
	return s.repo.GetByID(ctx, id)
}

// Cancel marks a booking cancelled, releasing every resource it held
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) error {
	b, _, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if b.Status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	if !b.CanBeCancelled() {
		return ErrNotCancellable
	}

	if err := s.repo.UpdateStatus(ctx, id, StatusCancelled); err != nil {
		return err
	}

	log.Info().
		Str("booking_id", id.String()).
		Str("branch_id", b.BranchID.String()).
		Msg("Booking cancelled")
	return nil
}
