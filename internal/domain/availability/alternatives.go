package availability

import (
	"context"
	"strings"
	"time"

	"github.com/playzone/playzone-api/internal/domain/branch"
	"github.com/playzone/playzone-api/internal/pkg/timewindow"
)

const (
	// Grids used when scanning the same day for a replacement slot:
	// coarse going backward, fine going forward.
	beforeScanStepMinutes = 30
	afterScanStepMinutes  = 15
)

// AlternativeDay is a feasible slot at the requested time on another
// day of the same week
type AlternativeDay struct {
	Date    string `json:"date"`
	Weekday string `json:"weekday"`
}

// Alternatives are the nearest feasible slots around a rejected request
type Alternatives struct {
	BeforeSlot        *string          `json:"before_slot"`
	AfterSlot         *string          `json:"after_slot"`
	SameTimeOtherDays []AlternativeDay `json:"same_time_other_days"`
}

// findAlternatives searches the requested day backward on a half-hour
// grid and forward on a quarter-hour grid, then probes the same time on
// the other days of the week. Each candidate is a full engine run
// against that day's snapshot.
func (s *Service) findAlternatives(ctx context.Context, p CheckParams, settings *branch.Settings, rooms branchRooms, day time.Time, requested timewindow.Clock) (*Alternatives, error) {
	alternatives := &Alternatives{SameTimeOtherDays: []AlternativeDay{}}

	hours, open := settings.OpeningHours.For(day.Weekday())
	if open {
		snap, err := s.snapshotForDay(ctx, p.BranchID, rooms, day)
		if err != nil {
			return nil, err
		}

		if slot, ok := s.scanDay(p, settings, snap, day, requested, hours, -beforeScanStepMinutes); ok {
			v := slot.String()
			alternatives.BeforeSlot = &v
		}
		if slot, ok := s.scanDay(p, settings, snap, day, requested, hours, afterScanStepMinutes); ok {
			v := slot.String()
			alternatives.AfterSlot = &v
		}
	}

	// Same time, other days of the requested week
	weekStart := day.AddDate(0, 0, -int(day.Weekday()))
	for i := 0; i < 7; i++ {
		candidate := weekStart.AddDate(0, 0, i)
		if candidate.Equal(day) {
			continue
		}
		snap, err := s.snapshotForDay(ctx, p.BranchID, rooms, candidate)
		if err != nil {
			return nil, err
		}
		if s.probe(p, settings, snap, candidate, requested) {
			alternatives.SameTimeOtherDays = append(alternatives.SameTimeOtherDays, AlternativeDay{
				Date:    timewindow.FormatDate(candidate, s.loc),
				Weekday: strings.ToLower(candidate.Weekday().String()),
			})
		}
	}
	return alternatives, nil
}

// scanDay walks a minute grid away from the requested time, within
// opening hours, and returns the first feasible slot.
func (s *Service) scanDay(p CheckParams, settings *branch.Settings, snap Snapshot, day time.Time, requested timewindow.Clock, hours branch.DayHours, stepMinutes int) (timewindow.Clock, bool) {
	step := stepMinutes
	backward := step < 0
	if backward {
		step = -step
	}

	// Align the first candidate to the grid on the search side
	minutes := requested.Minutes()
	if backward {
		minutes = (minutes / step) * step
		if minutes == requested.Minutes() {
			minutes -= step
		}
	} else {
		minutes = ((minutes / step) + 1) * step
	}

	for {
		if backward && minutes < hours.Open.Minutes() {
			return timewindow.Clock{}, false
		}
		if !backward && minutes >= hours.Close.Minutes() {
			return timewindow.Clock{}, false
		}
		candidate := timewindow.Clock{Hour: minutes / 60, Minute: minutes % 60}
		if s.probe(p, settings, snap, day, candidate) {
			return candidate, true
		}
		if backward {
			minutes -= step
		} else {
			minutes += step
		}
	}
}

// probe re-runs the engine for one candidate slot, alternatives off
func (s *Service) probe(p CheckParams, settings *branch.Settings, snap Snapshot, day time.Time, clock timewindow.Clock) bool {
	decision := s.engine.Check(Request{
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
	}, settings, snap)
	return decision.Available
}
