package availability

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/playzone/playzone-api/internal/domain/branch"
	"github.com/playzone/playzone-api/internal/pkg/timewindow"
)

// SnapshotSource loads bookings overlapping a window
type SnapshotSource interface {
	Snapshot(ctx context.Context, branchID uuid.UUID, win timewindow.Window) ([]Booking, error)
}

// BranchSource serves branch configuration and room inventory
type BranchSource interface {
	Settings(ctx context.Context, branchID uuid.UUID) (*branch.Settings, error)
	LaserRooms(ctx context.Context, branchID uuid.UUID) ([]branch.LaserRoom, error)
	EventRooms(ctx context.Context, branchID uuid.UUID) ([]branch.EventRoom, error)
}

// Service runs availability checks: it assembles the snapshot the pure
// engine needs, runs the decision, and on a resource failure searches
// for nearby alternative slots.
type Service struct {
	engine    *Engine
	snapshots SnapshotSource
	branches  BranchSource
	loc       *time.Location
}

// NewService creates a new availability service
func NewService(engine *Engine, snapshots SnapshotSource, branches BranchSource, loc *time.Location) *Service {
	return &Service{
		engine:    engine,
		snapshots: snapshots,
		branches:  branches,
		loc:       loc,
	}
}

// CheckParams is one availability question in wire terms
type CheckParams struct {
	BranchID         uuid.UUID
	Date             string // YYYY-MM-DD, branch-local
	Time             string // HH:MM, branch-local
	Participants     int
	Type             BookingType
	GameArea         GameArea
	NumberOfGames    int
	EventType        EventType
	AllocationMode   AllocationMode
	ExcludeBookingID *uuid.UUID
}

// Result is a decision plus, on resource failure, nearby alternatives
type Result struct {
	Decision
	Alternatives *Alternatives
}

// Check runs one availability check against a fresh snapshot
func (s *Service) Check(ctx context.Context, p CheckParams) (*Result, error) {
	day, err := timewindow.ParseDate(p.Date, s.loc)
	if err != nil {
		return &Result{Decision: unavailable(ReasonInvalidRequest, "Invalid date format, expected YYYY-MM-DD")}, nil
	}
	clock, err := timewindow.ParseClock(p.Time)
	if err != nil {
		return &Result{Decision: unavailable(ReasonInvalidRequest, "Invalid time format, expected HH:MM")}, nil
	}

	settings, rooms, err := s.loadBranch(ctx, p.BranchID)
	if err != nil {
		if errors.Is(err, branch.ErrInvalidSettings) {
			return &Result{Decision: unavailable(ReasonInvalidRequest, "Branch configuration is invalid")}, nil
		}
		return nil, err
	}

	decision, err := s.decide(ctx, p, settings, rooms, day, clock)
	if err != nil {
		return nil, err
	}

	result := &Result{Decision: decision}
	if !decision.Available && isResourceFailure(decision.Reason) {
		alternatives, err := s.findAlternatives(ctx, p, settings, rooms, day, clock)
		if err != nil {
			// Alternatives are advisory; the decision stands without them
			log.Warn().Err(err).Str("branch_id", p.BranchID.String()).Msg("Alternative slot scan failed")
		} else {
			result.Alternatives = alternatives
		}
	}
	return result, nil
}

// branchRooms bundles the branch's active room inventory
type branchRooms struct {
	laser []branch.LaserRoom
	event []branch.EventRoom
}

func (s *Service) loadBranch(ctx context.Context, branchID uuid.UUID) (*branch.Settings, branchRooms, error) {
	settings, err := s.branches.Settings(ctx, branchID)
	if err != nil {
		return nil, branchRooms{}, err
	}
	laser, err := s.branches.LaserRooms(ctx, branchID)
	if err != nil {
		return nil, branchRooms{}, err
	}
	event, err := s.branches.EventRooms(ctx, branchID)
	if err != nil {
		return nil, branchRooms{}, err
	}
	return settings, branchRooms{laser: laser, event: event}, nil
}

// decide loads the day's snapshot and runs the pure engine once
func (s *Service) decide(ctx context.Context, p CheckParams, settings *branch.Settings, rooms branchRooms, day time.Time, clock timewindow.Clock) (Decision, error) {
	snap, err := s.snapshotForDay(ctx, p.BranchID, rooms, day)
	if err != nil {
		return Decision{}, err
	}

	return s.engine.Check(Request{
		BranchID:         p.BranchID,
		Day:              day,
		Start:            clock,
		Participants:     p.Participants,
		Type:             p.Type,
		GameArea:         p.GameArea,
		NumberOfGames:    p.NumberOfGames,
		EventType:        p.EventType,
		AllocationMode:   p.AllocationMode,
		ExcludeBookingID: p.ExcludeBookingID,
	}, settings, snap), nil
}

// snapshotForDay loads the bookings that could constrain any window of
// the requested local day, with margin for sessions spilling over
// midnight.
func (s *Service) snapshotForDay(ctx context.Context, branchID uuid.UUID, rooms branchRooms, day time.Time) (Snapshot, error) {
	win := timewindow.Window{
		Start: day.Add(-2 * time.Hour),
		End:   day.Add(26 * time.Hour),
	}
	bookings, err := s.snapshots.Snapshot(ctx, branchID, win)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		LaserRooms: rooms.laser,
		EventRooms: rooms.event,
		Bookings:   bookings,
	}, nil
}

func isResourceFailure(r Reason) bool {
	switch r {
	case ReasonCapacityExceeded, ReasonNoLaserRooms, ReasonNoEventRoom, ReasonEventRoomBusy:
		return true
	}
	return false
}
