package availability

import (
	"time"

	"github.com/google/uuid"

	"github.com/playzone/playzone-api/internal/pkg/timewindow"
)

// capacityResult reports where the Active floor scan failed, for the
// human-readable part of the decision.
type capacityResult struct {
	OK        bool
	At        timewindow.Window
	Occupancy int
}

// checkActiveCapacity answers whether participants more players fit on
// the shared Active floor for the whole window. The window is scanned
// in fixed sub-slots because occupancy is not uniform: sessions
// starting or ending mid-window change the instantaneous total.
func checkActiveCapacity(win timewindow.Window, participants int, snap Snapshot, maxPlayers, stepMinutes int, excludeID *uuid.UUID) capacityResult {
	step := time.Duration(stepMinutes) * time.Minute

	for slot := range win.Slice(step) {
		existing := 0
		for _, booking := range snap.Bookings {
			if excludeID != nil && booking.ID == *excludeID {
				continue
			}
			if bookingOccupiesActive(booking, slot) {
				existing += booking.Participants
			}
		}
		if existing+participants > maxPlayers {
			return capacityResult{OK: false, At: slot, Occupancy: existing}
		}
	}
	return capacityResult{OK: true}
}

// bookingOccupiesActive reports whether any of the booking's ACTIVE
// sessions overlap the slot. The booking's full participant count is
// attributed to the slot if so.
func bookingOccupiesActive(b Booking, slot timewindow.Window) bool {
	for _, s := range b.Sessions {
		if s.Area != AreaActive {
			continue
		}
		if s.Window.Overlaps(slot) {
			return true
		}
	}
	return false
}
