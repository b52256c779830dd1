package availability

import (
	"sort"

	"github.com/google/uuid"

	"github.com/playzone/playzone-api/internal/domain/branch"
	"github.com/playzone/playzone-api/internal/pkg/timewindow"
)

// scheduleEventRoom finds one event room with enough capacity and no
// conflicting reservation for the composite event window. The two
// failure modes are distinct: no room is big enough versus every big
// enough room is time-conflicted.
func scheduleEventRoom(win timewindow.Window, participants int, rooms []branch.EventRoom, snap Snapshot, excludeID *uuid.UUID) (*uuid.UUID, Reason) {
	suitable := make([]branch.EventRoom, 0, len(rooms))
	for _, room := range rooms {
		if room.Capacity >= participants {
			suitable = append(suitable, room)
		}
	}
	if len(suitable) == 0 {
		return nil, ReasonNoEventRoom
	}

	// Stable candidate order keeps the choice deterministic
	sort.SliceStable(suitable, func(i, j int) bool {
		return suitable[i].SortOrder < suitable[j].SortOrder
	})

	for _, room := range suitable {
		if !eventRoomBusy(room.ID, win, snap, excludeID) {
			id := room.ID
			return &id, ""
		}
	}
	return nil, ReasonEventRoomBusy
}

// eventRoomBusy reports whether any existing event reservation holds
// the room during the window. An event consumes its room for the whole
// reservation window, setup and teardown included.
func eventRoomBusy(roomID uuid.UUID, win timewindow.Window, snap Snapshot, excludeID *uuid.UUID) bool {
	for _, b := range snap.Bookings {
		if b.Type != TypeEvent || b.EventRoomID == nil || *b.EventRoomID != roomID {
			continue
		}
		if excludeID != nil && b.ID == *excludeID {
			continue
		}
		if b.Window.Overlaps(win) {
			return true
		}
	}
	return false
}
