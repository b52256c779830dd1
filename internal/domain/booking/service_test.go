package booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/playzone/playzone-api/internal/domain/availability"
	"github.com/playzone/playzone-api/internal/domain/branch"
	"github.com/playzone/playzone-api/internal/pkg/timewindow"
)

func testLoc(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Jerusalem")
	if err != nil {
		t.Skipf("timezone data not available: %v", err)
	}
	return loc
}

func testSettings() *branch.Settings {
	return &branch.Settings{
		OpeningHours: branch.OpeningHours{
			time.Tuesday: {Open: timewindow.Clock{Hour: 10}, Close: timewindow.Clock{Hour: 22}},
		},
		GameDurationMinutes:     30,
		MaxConcurrentPlayers:    20,
		SlotStepMinutes:         15,
		InterGamePauseMinutes:   30,
		LaserEnabled:            true,
		LaserTotalVests:         30,
		LaserSpareVests:         5,
		LaserExclusiveThreshold: 10,
	}
}

func TestCreateRefusesBadInput(t *testing.T) {
	loc := testLoc(t)
	svc := NewService(nil, nil, nil, availability.NewEngine(loc, nil), loc)

	tests := []struct {
		name string
		date string
		time string
	}{
		{"bad date", "01.09.2026", "14:00"},
		{"bad time", "2026-09-01", "2pm"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Create(context.Background(), CreateParams{
				Date:         tt.date,
				Time:         tt.time,
				Participants: 8,
				Type:         availability.TypeGame,
				GameArea:     availability.AreaActive,
			})
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			if result.Booking != nil {
				t.Fatal("nothing must be persisted")
			}
			if result.Decision.Available || result.Decision.Reason != availability.ReasonInvalidRequest {
				t.Fatalf("expected invalid_request, got %+v", result.Decision)
			}
		})
	}
}

func TestComposeMixBooking(t *testing.T) {
	loc := testLoc(t)
	engine := availability.NewEngine(loc, nil)
	svc := NewService(nil, nil, nil, engine, loc)

	day, _ := timewindow.ParseDate("2026-09-01", loc)
	settings := testSettings()
	req := availability.Request{
		BranchID:      uuid.New(),
		Day:           day,
		Start:         timewindow.Clock{Hour: 14},
		Participants:  8,
		Type:          availability.TypeGame,
		GameArea:      availability.AreaMix,
		NumberOfGames: 2,
	}

	roomID := uuid.New()
	decision := engine.Check(req, settings, availability.Snapshot{
		LaserRooms: []branch.LaserRoom{{ID: roomID, Capacity: 10, SortOrder: 1, IsActive: true}},
	})
	if !decision.Available {
		t.Fatalf("fixture decision not available: %+v", decision)
	}

	b, sessions := svc.compose(CreateParams{
		BranchID:          req.BranchID,
		Participants:      8,
		Type:              availability.TypeGame,
		CustomerFirstName: "Noa",
		CustomerLastName:  "Levi",
		CustomerPhone:     "+972-50-0000000",
		Notes:             "birthday",
	}, req, settings, decision)

	if b.Status != StatusConfirmed {
		t.Errorf("status = %q", b.Status)
	}
	if !b.StartDatetime.Equal(decision.Window.Start) || !b.EndDatetime.Equal(decision.Window.End) {
		t.Errorf("booking window %v-%v does not match the decision", b.StartDatetime, b.EndDatetime)
	}
	if !b.Notes.Valid || b.Notes.String != "birthday" {
		t.Errorf("notes = %+v", b.Notes)
	}
	if b.CustomerEmail.Valid {
		t.Error("empty email must stay NULL")
	}

	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	if sessions[0].GameArea != string(availability.AreaActive) || sessions[0].LaserRoomID.Valid {
		t.Errorf("first session: %+v", sessions[0])
	}
	if sessions[1].GameArea != string(availability.AreaLaser) {
		t.Errorf("second session: %+v", sessions[1])
	}
	if !sessions[1].LaserRoomID.Valid || sessions[1].LaserRoomID.UUID != roomID {
		t.Errorf("laser session room = %+v, want the allocated room", sessions[1].LaserRoomID)
	}
	if sessions[1].PauseBeforeMinutes != 30 {
		t.Errorf("pause before second session = %d, want 30", sessions[1].PauseBeforeMinutes)
	}
	for _, session := range sessions {
		if session.BookingID != b.ID {
			t.Errorf("session %d not linked to the booking", session.SessionOrder)
		}
	}
}

func TestComposeMultiRoomLaser(t *testing.T) {
	loc := testLoc(t)
	engine := availability.NewEngine(loc, nil)
	svc := NewService(nil, nil, nil, engine, loc)

	day, _ := timewindow.ParseDate("2026-09-01", loc)
	settings := testSettings()
	req := availability.Request{
		BranchID:      uuid.New(),
		Day:           day,
		Start:         timewindow.Clock{Hour: 14},
		Participants:  25,
		Type:          availability.TypeGame,
		GameArea:      availability.AreaLaser,
		NumberOfGames: 1,
	}

	decision := engine.Check(req, settings, availability.Snapshot{
		LaserRooms: []branch.LaserRoom{
			{ID: uuid.New(), Capacity: 10, SortOrder: 1, IsActive: true},
			{ID: uuid.New(), Capacity: 20, SortOrder: 2, IsActive: true},
		},
	})
	if !decision.Available {
		t.Fatalf("fixture decision not available: %+v", decision)
	}

	_, sessions := svc.compose(CreateParams{
		BranchID:     req.BranchID,
		Participants: 25,
		Type:         availability.TypeGame,
	}, req, settings, decision)

	// One session row per occupied room marks the whole area busy
	if len(sessions) != 2 {
		t.Fatalf("expected one session per room, got %d", len(sessions))
	}
	if sessions[0].SessionOrder != 0 || sessions[1].SessionOrder != 0 {
		t.Error("both rows belong to the same game")
	}
}

func TestBookingLifecycleFlags(t *testing.T) {
	b := &Booking{Status: StatusPending}
	if !b.IsActive() || !b.CanBeCancelled() {
		t.Error("pending bookings are active and cancellable")
	}
	b.Status = StatusConfirmed
	if !b.IsActive() || !b.CanBeCancelled() {
		t.Error("confirmed bookings are active and cancellable")
	}
	b.Status = StatusCancelled
	if b.IsActive() || b.CanBeCancelled() {
		t.Error("cancelled bookings are inert")
	}
}
