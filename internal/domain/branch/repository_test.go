package branch

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/playzone/playzone-api/internal/pkg/timewindow"
)

func TestParseOpeningHours(t *testing.T) {
	raw := json.RawMessage(`{
		"monday":   {"open": "10:00", "close": "22:00"},
		"friday":   {"open": "09:00", "close": "15:30"},
		"saturday": {"open": "20:00", "close": "23:45"}
	}`)

	hours, err := parseOpeningHours(raw)
	if err != nil {
		t.Fatalf("parseOpeningHours: %v", err)
	}
	if len(hours) != 3 {
		t.Fatalf("expected 3 days, got %d", len(hours))
	}

	mon, ok := hours.For(time.Monday)
	if !ok {
		t.Fatal("monday missing")
	}
	if mon.Open != (timewindow.Clock{Hour: 10}) || mon.Close != (timewindow.Clock{Hour: 22}) {
		t.Errorf("monday = %+v", mon)
	}

	if _, ok := hours.For(time.Sunday); ok {
		t.Error("sunday should be closed")
	}
}

func TestParseOpeningHoursEmpty(t *testing.T) {
	for _, raw := range []json.RawMessage{nil, json.RawMessage("null")} {
		hours, err := parseOpeningHours(raw)
		if err != nil {
			t.Fatalf("parseOpeningHours(%q): %v", raw, err)
		}
		if len(hours) != 0 {
			t.Errorf("expected empty schedule for %q", raw)
		}
	}
}

func TestParseOpeningHoursMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `open at ten`},
		{"unknown weekday", `{"funday": {"open": "10:00", "close": "22:00"}}`},
		{"bad open", `{"monday": {"open": "ten", "close": "22:00"}}`},
		{"bad close", `{"monday": {"open": "10:00", "close": "25:00"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseOpeningHours(json.RawMessage(tt.raw))
			if !errors.Is(err, ErrInvalidSettings) {
				t.Fatalf("expected ErrInvalidSettings, got %v", err)
			}
		})
	}
}

func validSettings() *Settings {
	return &Settings{
		OpeningHours: OpeningHours{
			time.Monday: {Open: timewindow.Clock{Hour: 10}, Close: timewindow.Clock{Hour: 22}},
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

func TestSettingsValidate(t *testing.T) {
	if err := validSettings().Validate(); err != nil {
		t.Fatalf("valid settings rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(s *Settings)
	}{
		{"zero game duration", func(s *Settings) { s.GameDurationMinutes = 0 }},
		{"zero max players", func(s *Settings) { s.MaxConcurrentPlayers = 0 }},
		{"zero slot step", func(s *Settings) { s.SlotStepMinutes = 0 }},
		{"negative pause", func(s *Settings) { s.InterGamePauseMinutes = -1 }},
		{"no vests", func(s *Settings) { s.LaserTotalVests = 0 }},
		{"all vests spare", func(s *Settings) { s.LaserSpareVests = 30 }},
		{"zero threshold", func(s *Settings) { s.LaserExclusiveThreshold = 0 }},
		{"inverted hours", func(s *Settings) {
			s.OpeningHours[time.Monday] = DayHours{
				Open:  timewindow.Clock{Hour: 22},
				Close: timewindow.Clock{Hour: 10},
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSettings()
			tt.mutate(s)
			if err := s.Validate(); !errors.Is(err, ErrInvalidSettings) {
				t.Fatalf("expected ErrInvalidSettings, got %v", err)
			}
		})
	}
}

func TestSettingsValidateLaserDisabled(t *testing.T) {
	// With laser off the vest fields may be unset
	s := validSettings()
	s.LaserEnabled = false
	s.LaserTotalVests = 0
	s.LaserExclusiveThreshold = 0
	if err := s.Validate(); err != nil {
		t.Fatalf("laser-off settings rejected: %v", err)
	}
}

func TestUsableVests(t *testing.T) {
	s := &Settings{LaserTotalVests: 30, LaserSpareVests: 5}
	if got := s.UsableVests(); got != 25 {
		t.Errorf("UsableVests = %d, want 25", got)
	}
}

func TestToSettingsDefaults(t *testing.T) {
	repo := NewRepository(nil, Defaults{SlotStepMinutes: 15, InterGamePauseMinutes: 30})

	row := &settingsRow{
		OpeningHours:         json.RawMessage(`{"monday": {"open": "10:00", "close": "22:00"}}`),
		GameDurationMinutes:  30,
		MaxConcurrentPlayers: 20,
	}
	s, err := repo.toSettings(row)
	if err != nil {
		t.Fatalf("toSettings: %v", err)
	}
	if s.SlotStepMinutes != 15 {
		t.Errorf("slot step = %d, want the system default 15", s.SlotStepMinutes)
	}
	if s.InterGamePauseMinutes != 30 {
		t.Errorf("pause = %d, want the system default 30", s.InterGamePauseMinutes)
	}
}
