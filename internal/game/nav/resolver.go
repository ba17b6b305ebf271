// Package nav resolves single-step directional movement across the ship,
// enforcing room boundaries, doors, and locks.
package nav

import (
	"github.com/forgottenship/game/internal/game/world"
)

// Direction is a nautical movement token.
type Direction string

// The four movement directions. Bow increases the row, stern decreases it,
// port decreases the column letter, starboard increases it.
const (
	Bow       Direction = "bow"
	Stern     Direction = "stern"
	Port      Direction = "port"
	Starboard Direction = "starboard"
)

// Directions lists all movement directions.
var Directions = []Direction{Bow, Stern, Port, Starboard}

// Delta returns the one-step column/row offset for the direction.
//
// Postcondition: Returns (dCol, dRow, true) for a known direction, or
// (0, 0, false) otherwise.
func (d Direction) Delta() (int, int, bool) {
	switch d {
	case Bow:
		return 0, 1, true
	case Stern:
		return 0, -1, true
	case Port:
		return -1, 0, true
	case Starboard:
		return 1, 0, true
	default:
		return 0, 0, false
	}
}

// IsValid reports whether d is one of the four movement directions.
func (d Direction) IsValid() bool {
	_, _, ok := d.Delta()
	return ok
}

// Outcome discriminates how a move call ended.
type Outcome int

const (
	// Moved completed every requested step.
	Moved Outcome = iota
	// InvalidDirection rejects an unknown direction token; no movement occurs.
	InvalidDirection
	// NoRoomAtDestination stopped at a tile bordering empty space.
	NoRoomAtDestination
	// NoAccessibleDoor stopped at a wall or a boundary with no door.
	NoAccessibleDoor
	// DoorLocked aborted the whole call at a locked door without the key.
	DoorLocked
)

// String returns the outcome name for logs.
func (o Outcome) String() string {
	switch o {
	case Moved:
		return "moved"
	case InvalidDirection:
		return "invalid_direction"
	case NoRoomAtDestination:
		return "no_room_at_destination"
	case NoAccessibleDoor:
		return "no_accessible_door"
	case DoorLocked:
		return "door_locked"
	default:
		return "unknown"
	}
}

// Result reports where a move call ended up.
type Result struct {
	// Position is the final coordinate; equal to the starting coordinate when
	// Steps is zero.
	Position world.Coordinate
	// Steps counts the committed steps, which may be fewer than requested.
	Steps int
	// Outcome is Moved on full success, or the condition that stopped early.
	Outcome Outcome
	// KeyNeeded names the missing key when Outcome is DoorLocked.
	KeyNeeded string
}

// KeyRing answers key-possession queries during movement. *player.Player
// satisfies it.
type KeyRing interface {
	HasItem(name string) bool
}

// Resolver advances positions one step at a time against a spatial index.
type Resolver struct {
	idx *world.Index
}

// NewResolver creates a Resolver over the given index.
func NewResolver(idx *world.Index) *Resolver {
	return &Resolver{idx: idx}
}

// Move advances from pos up to steps tiles in the given direction.
//
// Each step applies the one-step delta, then:
//   - no room at the candidate tile stops the walk (NoRoomAtDestination);
//   - staying inside the current room commits the step;
//   - crossing a room boundary requires a door joining the two tiles
//     (NoAccessibleDoor otherwise);
//   - a locked crossing without the required key aborts the entire call
//     (DoorLocked): already-committed steps stand, but no further steps are
//     attempted, and the blocked step is never taken.
//
// Movement never teleports past a missing room or a locked door.
//
// Precondition: pos must belong to a room; keys must be non-nil.
// Postcondition: Result.Position belongs to a room; Result.Steps counts the
// committed steps; Outcome is Moved iff every requested step committed.
func (r *Resolver) Move(pos world.Coordinate, dir Direction, steps int, keys KeyRing) Result {
	dCol, dRow, ok := dir.Delta()
	if !ok {
		return Result{Position: pos, Outcome: InvalidDirection}
	}

	res := Result{Position: pos, Outcome: Moved}
	for i := 0; i < steps; i++ {
		candidate, inGrid := res.Position.Offset(dCol, dRow)
		if !inGrid {
			res.Outcome = NoRoomAtDestination
			return res
		}

		from, ok := r.idx.RoomAt(res.Position)
		if !ok {
			res.Outcome = NoRoomAtDestination
			return res
		}
		dest, ok := r.idx.RoomAt(candidate)
		if !ok {
			res.Outcome = NoRoomAtDestination
			return res
		}

		if from == dest {
			res.Position = candidate
			res.Steps++
			continue
		}

		door, ok := r.idx.DoorBetween(res.Position, candidate)
		if !ok {
			res.Outcome = NoAccessibleDoor
			return res
		}

		if locked, key := crossingLock(door, dest); locked && !keys.HasItem(key) {
			res.Outcome = DoorLocked
			res.KeyNeeded = key
			return res
		}

		res.Position = candidate
		res.Steps++
	}

	return res
}

// crossingLock decides whether a door crossing into dest is locked and which
// key opens it. A crossing is locked when the destination room is locked or
// the door itself is; the destination room's key governs either way.
func crossingLock(door world.Door, dest *world.Room) (bool, string) {
	if dest.Locked {
		return true, dest.Key
	}
	if door.Locked {
		return true, dest.Key
	}
	return false, ""
}
