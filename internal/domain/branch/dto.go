package branch

import (
	"time"
)

// DayHoursResponse is one weekday's opening hours in HH:MM form
type DayHoursResponse struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// SettingsResponse is the public view of a branch's configuration
type SettingsResponse struct {
	BranchID                string                      `json:"branch_id"`
	OpeningHours            map[string]DayHoursResponse `json:"opening_hours"`
	GameDurationMinutes     int                         `json:"game_duration_minutes"`
	MaxConcurrentPlayers    int                         `json:"max_concurrent_players"`
	SlotStepMinutes         int                         `json:"slot_step_minutes"`
	InterGamePauseMinutes   int                         `json:"inter_game_pause_minutes"`
	LaserEnabled            bool                        `json:"laser_enabled"`
	LaserTotalVests         int                         `json:"laser_total_vests"`
	LaserSpareVests         int                         `json:"laser_spare_vests"`
	LaserExclusiveThreshold int                         `json:"laser_exclusive_threshold"`
	EventMinParticipants    int                         `json:"event_min_participants"`
}

var weekdayKeys = map[time.Weekday]string{
	time.Sunday:    "sunday",
	time.Monday:    "monday",
	time.Tuesday:   "tuesday",
	time.Wednesday: "wednesday",
	time.Thursday:  "thursday",
	time.Friday:    "friday",
	time.Saturday:  "saturday",
}

// ToSettingsResponse converts settings to their public representation
func ToSettingsResponse(s *Settings) *SettingsResponse {
	hours := make(map[string]DayHoursResponse, len(s.OpeningHours))
	for day, h := range s.OpeningHours {
		hours[weekdayKeys[day]] = DayHoursResponse{
			Open:  h.Open.String(),
			Close: h.Close.String(),
		}
	}
	return &SettingsResponse{
		BranchID:                s.BranchID.String(),
		OpeningHours:            hours,
		GameDurationMinutes:     s.GameDurationMinutes,
		MaxConcurrentPlayers:    s.MaxConcurrentPlayers,
		SlotStepMinutes:         s.SlotStepMinutes,
		InterGamePauseMinutes:   s.InterGamePauseMinutes,
		LaserEnabled:            s.LaserEnabled,
		LaserTotalVests:         s.LaserTotalVests,
		LaserSpareVests:         s.LaserSpareVests,
		LaserExclusiveThreshold: s.LaserExclusiveThreshold,
		EventMinParticipants:    s.EventMinParticipants,
	}
}
