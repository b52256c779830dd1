package availability

import (
	"sort"

	"github.com/google/uuid"

	"github.com/playzone/playzone-api/internal/domain/branch"
	"github.com/playzone/playzone-api/internal/pkg/timewindow"
)

// laserInput is everything one laser-game allocation decides over
type laserInput struct {
	Participants int
	Window       timewindow.Window
	Rooms        []branch.LaserRoom
	Threshold    int
	UsableVests  int
	Mode         AllocationMode
	ExcludeID    *uuid.UUID
	Snapshot     Snapshot
}

// allocateLaserRooms chooses the room set for one laser game, or
// reports infeasibility by returning nil.
//
// Policy, in order:
//  1. Candidate rooms are sorted by capacity then sort order, so
//     identical inputs always pick identical rooms.
//  2. A reservation already spanning several rooms ("maxi") blocks the
//     whole laser area for its window.
//  3. A group at or above the exclusive threshold makes its room
//     exclusive for its window, and itself requires a fully empty room
//     (or a combination of empty rooms when no single one is big
//     enough). No partial sharing above the threshold even if raw vest
//     capacity exists elsewhere.
//  4. Below the threshold the group shares the smallest room with
//     enough remaining capacity.
//  5. Independently of room fit, the vests committed across all rooms
//     in the window must not exceed the usable inventory.
func allocateLaserRooms(in laserInput) *LaserAllocation {
	if len(in.Rooms) == 0 {
		return nil
	}

	rooms := make([]branch.LaserRoom, len(in.Rooms))
	copy(rooms, in.Rooms)
	sort.SliceStable(rooms, func(i, j int) bool {
		if rooms[i].Capacity != rooms[j].Capacity {
			return rooms[i].Capacity < rooms[j].Capacity
		}
		return rooms[i].SortOrder < rooms[j].SortOrder
	})

	occ := laserOccupancy(in)

	// Vest ceiling: a second, independent limit on top of per-room
	// capacity. Checked first so that no tier can sidestep it.
	if occ.committedVests+in.Participants > in.UsableVests {
		return nil
	}

	if in.Mode != AllocAuto && in.Mode != "" {
		return allocateForced(in, rooms, occ)
	}

	if in.Participants >= in.Threshold {
		return allocateExclusive(in, rooms, occ)
	}
	return allocateShared(in, rooms, occ)
}

// occupancyView is the committed laser state for one window
type occupancyView struct {
	// used maps room id to participants already assigned there
	used map[uuid.UUID]int
	// exclusiveRooms are rooms locked by a threshold-sized group
	exclusiveRooms map[uuid.UUID]bool
	// areaBlocked is set when an overlapping reservation spans rooms
	areaBlocked bool
	// committedVests is the total participants across all rooms
	committedVests int
}

// laserOccupancy folds the snapshot's overlapping LASER sessions into a
// per-room view. Laser occupancy is modeled as constant for the whole
// game, so one evaluation per room per window is enough, unlike the
// continuously-arriving Active floor.
func laserOccupancy(in laserInput) occupancyView {
	occ := occupancyView{
		used:           make(map[uuid.UUID]int),
		exclusiveRooms: make(map[uuid.UUID]bool),
	}

	for _, b := range in.Snapshot.Bookings {
		if in.ExcludeID != nil && b.ID == *in.ExcludeID {
			continue
		}
		roomSet := make(map[uuid.UUID]bool)
		for _, s := range b.Sessions {
			if s.Area != AreaLaser || s.LaserRoomID == nil {
				continue
			}
			if !s.Window.Overlaps(in.Window) {
				continue
			}
			roomSet[*s.LaserRoomID] = true
		}
		if len(roomSet) == 0 {
			continue
		}
		if len(roomSet) > 1 {
			occ.areaBlocked = true
		}
		for roomID := range roomSet {
			occ.used[roomID] += b.Participants
			if b.Participants >= in.Threshold {
				occ.exclusiveRooms[roomID] = true
			}
		}
		occ.committedVests += b.Participants
	}
	return occ
}

// remainingCapacity returns how many players can still join a room in
// the window: zero when the area is blocked by a multi-room
// reservation or the room is held exclusively.
func (occ occupancyView) remainingCapacity(room branch.LaserRoom) int {
	if occ.areaBlocked {
		return 0
	}
	if occ.exclusiveRooms[room.ID] {
		return 0
	}
	return room.Capacity - occ.used[room.ID]
}

func (occ occupancyView) isEmpty(room branch.LaserRoom) bool {
	return occ.remainingCapacity(room) == room.Capacity
}

// allocateForced honors an explicit admin room choice, still subject to
// remaining capacity.
func allocateForced(in laserInput, rooms []branch.LaserRoom, occ occupancyView) *LaserAllocation {
	var chosen []branch.LaserRoom
	switch in.Mode {
	case AllocSmall:
		chosen = rooms[:1]
	case AllocLarge:
		chosen = rooms[len(rooms)-1:]
	case AllocMaxi:
		chosen = rooms
	default:
		return nil
	}

	total := 0
	for _, room := range chosen {
		total += occ.remainingCapacity(room)
	}
	if total < in.Participants {
		return nil
	}
	return newAllocation(in.Window, chosen)
}

// allocateExclusive places a threshold-sized group in a room of its own
func allocateExclusive(in laserInput, rooms []branch.LaserRoom, occ occupancyView) *LaserAllocation {
	// Smallest empty room that fits the whole group
	for _, room := range rooms {
		if occ.isEmpty(room) && room.Capacity >= in.Participants {
			return newAllocation(in.Window, []branch.LaserRoom{room})
		}
	}

	// No single room is big enough: combine empty rooms
	empty := make([]branch.LaserRoom, 0, len(rooms))
	total := 0
	for _, room := range rooms {
		if occ.isEmpty(room) {
			empty = append(empty, room)
			total += room.Capacity
		}
	}
	if total >= in.Participants && len(empty) > 0 {
		return newAllocation(in.Window, empty)
	}
	return nil
}

// allocateShared places a small group in the smallest room it fits into
func allocateShared(in laserInput, rooms []branch.LaserRoom, occ occupancyView) *LaserAllocation {
	for _, room := range rooms {
		if occ.remainingCapacity(room) >= in.Participants {
			return newAllocation(in.Window, []branch.LaserRoom{room})
		}
	}
	return nil
}

func newAllocation(win timewindow.Window, rooms []branch.LaserRoom) *LaserAllocation {
	ids := make([]uuid.UUID, len(rooms))
	for i, room := range rooms {
		ids[i] = room.ID
	}
	return &LaserAllocation{
		Window:    win,
		RoomIDs:   ids,
		MultiRoom: len(ids) > 1,
	}
}
