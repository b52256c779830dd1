package availability

import (
	"fmt"
	"time"

	"github.com/playzone/playzone-api/internal/domain/branch"
	"github.com/playzone/playzone-api/internal/pkg/timewindow"
)

// MixPattern decides which area a mixed booking's n-th game runs in
type MixPattern func(gameIndex int) GameArea

// DefaultMixPattern alternates active and laser, starting on the Active
// floor: even-indexed games active, odd-indexed laser. Kept injectable
// because party packages may redefine the alternation.
func DefaultMixPattern(gameIndex int) GameArea {
	if gameIndex%2 == 1 {
		return AreaLaser
	}
	return AreaActive
}

// Engine is the availability orchestrator. It is a pure decision
// function over the caller-supplied snapshot: no I/O, no hidden state,
// safe for any number of concurrent goroutines.
type Engine struct {
	loc *time.Location
	mix MixPattern
}

// NewEngine creates an engine for the venue's timezone. A nil pattern
// falls back to DefaultMixPattern.
func NewEngine(loc *time.Location, mix MixPattern) *Engine {
	if mix == nil {
		mix = DefaultMixPattern
	}
	return &Engine{loc: loc, mix: mix}
}

// Check decides whether the venue can accommodate the request against
// the given settings and booking snapshot.
func (e *Engine) Check(req Request, settings *branch.Settings, snap Snapshot) Decision {
	if reason := validateRequest(&req); reason != "" {
		return unavailable(ReasonInvalidRequest, reason)
	}
	if err := settings.Validate(); err != nil {
		return unavailable(ReasonInvalidRequest, "Branch configuration is invalid")
	}
	if req.Type == TypeEvent && settings.EventMinParticipants > 0 && req.Participants < settings.EventMinParticipants {
		return unavailable(ReasonInvalidRequest,
			fmt.Sprintf("Events require at least %d participants", settings.EventMinParticipants))
	}

	// Opening hours gate runs before any resource checker
	hours, open := settings.OpeningHours.For(req.Day.Weekday())
	if !open {
		return unavailable(ReasonClosed, "Branch is closed on this day")
	}

	games := e.gamePlan(&req, settings)
	total := planDuration(games, &req, settings)

	if req.Start.Before(hours.Open) || !req.Start.Before(hours.Close) ||
		req.Start.Minutes()+total > hours.Close.Minutes() {
		return unavailable(ReasonOutsideHours,
			fmt.Sprintf("Branch is open from %s to %s", hours.Open, hours.Close))
	}

	start := timewindow.ToAbsolute(req.Day, req.Start, e.loc)
	overall := timewindow.New(start, time.Duration(total)*time.Minute)

	switch req.Type {
	case TypeGame:
		return e.checkGame(&req, settings, snap, start, overall, games)
	default:
		return e.checkEvent(&req, settings, snap, start, overall, games)
	}
}

// plannedGame is one game of the request's decomposition
type plannedGame struct {
	Index       int
	Area        GameArea
	OffsetMin   int
	DurationMin int
}

// SessionPlan is one game session the request would book, in absolute
// time. PauseBeforeMinutes is the gap separating it from the previous
// session.
type SessionPlan struct {
	Index              int
	Area               GameArea
	Window             timewindow.Window
	PauseBeforeMinutes int
}

// Sessions returns the absolute session windows a feasible request
// books, so the caller can persist them alongside the allocation the
// decision carries.
func (e *Engine) Sessions(req Request, settings *branch.Settings) []SessionPlan {
	if reason := validateRequest(&req); reason != "" {
		return nil
	}

	start := timewindow.ToAbsolute(req.Day, req.Start, e.loc)
	games := e.gamePlan(&req, settings)

	plans := make([]SessionPlan, len(games))
	prevEnd := 0
	for i, game := range games {
		plans[i] = SessionPlan{
			Index: game.Index,
			Area:  game.Area,
			Window: timewindow.New(start.Add(time.Duration(game.OffsetMin)*time.Minute),
				time.Duration(game.DurationMin)*time.Minute),
			PauseBeforeMinutes: game.OffsetMin - prevEnd,
		}
		prevEnd = game.OffsetMin + game.DurationMin
	}
	return plans
}

// gamePlan decomposes the request into its game sequence. Laser games
// are separated by the inter-game pause for vest turnover; the Active
// floor is continuous, so an active-only booking is one long window.
func (e *Engine) gamePlan(req *Request, settings *branch.Settings) []plannedGame {
	switch req.Type {
	case TypeEvent:
		n := req.NumberOfGames
		duration := settings.EventGameDurationMinutes
		offset := settings.EventBufferBeforeMinutes
		games := make([]plannedGame, n)
		for i := 0; i < n; i++ {
			games[i] = plannedGame{
				Index:       i,
				Area:        e.eventGameArea(req.EventType, i),
				OffsetMin:   offset,
				DurationMin: duration,
			}
			offset += duration + settings.InterGamePauseMinutes
		}
		return games
	default:
		n := req.NumberOfGames
		duration := settings.GameDurationMinutes
		switch req.GameArea {
		case AreaActive:
			return []plannedGame{{Index: 0, Area: AreaActive, OffsetMin: 0, DurationMin: n * duration}}
		case AreaLaser:
			games := make([]plannedGame, n)
			for i := 0; i < n; i++ {
				games[i] = plannedGame{
					Index:       i,
					Area:        AreaLaser,
					OffsetMin:   i * (duration + settings.InterGamePauseMinutes),
					DurationMin: duration,
				}
			}
			return games
		default: // MIX
			games := make([]plannedGame, n)
			for i := 0; i < n; i++ {
				games[i] = plannedGame{
					Index:       i,
					Area:        e.mix(i),
					OffsetMin:   i * (duration + settings.InterGamePauseMinutes),
					DurationMin: duration,
				}
			}
			return games
		}
	}
}

func (e *Engine) eventGameArea(t EventType, gameIndex int) GameArea {
	switch t {
	case EventLaser:
		return AreaLaser
	case EventMix:
		return e.mix(gameIndex)
	default:
		return AreaActive
	}
}

// planDuration is the total minutes the request occupies the venue
func planDuration(games []plannedGame, req *Request, settings *branch.Settings) int {
	if req.Type == TypeEvent {
		// The event room is held for the whole composite window,
		// buffers included, regardless of the game sequence inside.
		return settings.EventTotalDurationMinutes
	}
	if len(games) == 0 {
		return 0
	}
	last := games[len(games)-1]
	return last.OffsetMin + last.DurationMin
}

func (e *Engine) checkGame(req *Request, settings *branch.Settings, snap Snapshot, start time.Time, overall timewindow.Window, games []plannedGame) Decision {
	decision := Decision{Available: true, Window: overall}

	for _, game := range games {
		win := timewindow.New(start.Add(time.Duration(game.OffsetMin)*time.Minute),
			time.Duration(game.DurationMin)*time.Minute)

		switch game.Area {
		case AreaActive:
			result := checkActiveCapacity(win, req.Participants, snap,
				settings.MaxConcurrentPlayers, settings.SlotStepMinutes, req.ExcludeBookingID)
			if !result.OK {
				return unavailable(ReasonCapacityExceeded,
					fmt.Sprintf("Not enough capacity: %d of %d players already on the Active floor",
						result.Occupancy, settings.MaxConcurrentPlayers))
			}
		case AreaLaser:
			alloc, reason := e.allocateLaser(req, settings, snap, win, game.Index)
			if alloc == nil {
				return unavailable(ReasonNoLaserRooms, reason)
			}
			decision.LaserAllocations = append(decision.LaserAllocations, *alloc)
		}
	}
	return decision
}

func (e *Engine) checkEvent(req *Request, settings *branch.Settings, snap Snapshot, start time.Time, overall timewindow.Window, games []plannedGame) Decision {
	roomID, reason := scheduleEventRoom(overall, req.Participants, snap.EventRooms, snap, req.ExcludeBookingID)
	if roomID == nil {
		switch reason {
		case ReasonNoEventRoom:
			return unavailable(ReasonNoEventRoom,
				fmt.Sprintf("No event room can host %d participants", req.Participants))
		default:
			return unavailable(ReasonEventRoomBusy, "All suitable event rooms are reserved at this time")
		}
	}

	// The event's game sessions still consume the shared floor and the
	// laser rooms, so their sub-windows go through the same checkers.
	sub := e.checkGame(req, settings, snap, start, overall, games)
	if !sub.Available {
		return sub
	}

	sub.Window = overall
	sub.EventRoomID = roomID
	return sub
}

func (e *Engine) allocateLaser(req *Request, settings *branch.Settings, snap Snapshot, win timewindow.Window, gameIndex int) (*LaserAllocation, string) {
	if !settings.LaserEnabled {
		return nil, "Laser tag is not offered at this branch"
	}
	alloc := allocateLaserRooms(laserInput{
		Participants: req.Participants,
		Window:       win,
		Rooms:        snap.LaserRooms,
		Threshold:    settings.LaserExclusiveThreshold,
		UsableVests:  settings.UsableVests(),
		Mode:         req.AllocationMode,
		ExcludeID:    req.ExcludeBookingID,
		Snapshot:     snap,
	})
	if alloc == nil {
		return nil, fmt.Sprintf("No laser room available for game %d", gameIndex+1)
	}
	alloc.Game = gameIndex
	return alloc, ""
}

func validateRequest(req *Request) string {
	if req.Participants <= 0 {
		return "Participants count must be positive"
	}
	if req.Day.IsZero() {
		return "Date is required"
	}
	switch req.Type {
	case TypeGame:
		switch req.GameArea {
		case AreaActive, AreaLaser, AreaMix:
		default:
			return "Unknown game area"
		}
		if req.NumberOfGames <= 0 {
			req.NumberOfGames = 1
		}
	case TypeEvent:
		switch req.EventType {
		case EventActive, EventLaser, EventMix:
		default:
			return "Unknown event type"
		}
		if req.NumberOfGames <= 0 {
			req.NumberOfGames = 2
		}
	default:
		return "Unknown booking type"
	}
	switch req.AllocationMode {
	case "", AllocAuto, AllocSmall, AllocLarge, AllocMaxi:
	default:
		return "Unknown allocation mode"
	}
	return ""
}
