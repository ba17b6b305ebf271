package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/forgottenship/game/internal/game/world"
)

// ring is a KeyRing stub backed by a set of item names.
type ring map[string]bool

func (r ring) HasItem(name string) bool { return r[name] }

// newTestResolver builds a resolver over an open Cargo bay (I5..K8) and a
// locked Bridge (I9..K10) joined by a door at J9/J8.
func newTestResolver(t *testing.T) *Resolver {
	t.Helper()

	cargo := &world.Room{Name: "Cargo Bay", Description: "Stacked containers."}
	for row := 5; row <= 8; row++ {
		for col := byte('I'); col <= 'K'; col++ {
			cargo.Coords = append(cargo.Coords, world.Coord(col, row))
		}
	}

	bridge := &world.Room{
		Name:        "Bridge",
		Description: "Blinking consoles.",
		Locked:      true,
		Key:         "Bridge Key",
		Doors: []world.Door{
			{Label: "to cargo bay", Entry: world.Coord('J', 9), Exit: world.Coord('J', 8)},
		},
	}
	for row := 9; row <= 10; row++ {
		for col := byte('I'); col <= 'K'; col++ {
			bridge.Coords = append(bridge.Coords, world.Coord(col, row))
		}
	}

	deck := &world.Deck{Name: "Test Ship", Rooms: []*world.Room{cargo, bridge}}
	idx, err := world.NewIndex(deck)
	require.NoError(t, err)
	return NewResolver(idx)
}

func TestDirection_IsValid(t *testing.T) {
	for _, d := range Directions {
		assert.True(t, d.IsValid(), "expected %q to be valid", d)
	}
	assert.False(t, Direction("north").IsValid())
	assert.False(t, Direction("").IsValid())
}

func TestMove_InvalidDirection(t *testing.T) {
	r := newTestResolver(t)
	res := r.Move(world.Coord('I', 5), "north", 3, ring{})
	assert.Equal(t, InvalidDirection, res.Outcome)
	assert.Equal(t, 0, res.Steps)
	assert.Equal(t, world.Coord('I', 5), res.Position)
}

func TestMove_WithinRoom(t *testing.T) {
	r := newTestResolver(t)

	res := r.Move(world.Coord('I', 5), Bow, 3, ring{})
	assert.Equal(t, Moved, res.Outcome)
	assert.Equal(t, 3, res.Steps)
	assert.Equal(t, world.Coord('I', 8), res.Position)

	res = r.Move(world.Coord('K', 8), Port, 2, ring{})
	assert.Equal(t, Moved, res.Outcome)
	assert.Equal(t, world.Coord('I', 8), res.Position)

	res = r.Move(world.Coord('I', 8), Starboard, 1, ring{})
	assert.Equal(t, Moved, res.Outcome)
	assert.Equal(t, world.Coord('J', 8), res.Position)

	res = r.Move(world.Coord('J', 8), Stern, 2, ring{})
	assert.Equal(t, Moved, res.Outcome)
	assert.Equal(t, world.Coord('J', 6), res.Position)
}

func TestMove_StopsAtEmptySpace(t *testing.T) {
	r := newTestResolver(t)

	// Two steps port from J5 exits the ship after one step.
	res := r.Move(world.Coord('J', 5), Port, 2, ring{})
	assert.Equal(t, NoRoomAtDestination, res.Outcome)
	assert.Equal(t, 1, res.Steps)
	assert.Equal(t, world.Coord('I', 5), res.Position)
}

func TestMove_WallBetweenRooms(t *testing.T) {
	r := newTestResolver(t)

	// K8 → K9 crosses the boundary with no door.
	res := r.Move(world.Coord('K', 8), Bow, 1, ring{})
	assert.Equal(t, NoAccessibleDoor, res.Outcome)
	assert.Equal(t, 0, res.Steps)
	assert.Equal(t, world.Coord('K', 8), res.Position)
}

func TestMove_LockedDoorWithoutKey(t *testing.T) {
	r := newTestResolver(t)

	// Bow from J6: two steps inside the cargo bay, then the locked door.
	res := r.Move(world.Coord('J', 6), Bow, 5, ring{})
	assert.Equal(t, DoorLocked, res.Outcome)
	assert.Equal(t, "Bridge Key", res.KeyNeeded)
	assert.Equal(t, 2, res.Steps)
	assert.Equal(t, world.Coord('J', 8), res.Position)
}

func TestMove_LockedDoorAtFirstStepLeavesPositionUnchanged(t *testing.T) {
	r := newTestResolver(t)

	res := r.Move(world.Coord('J', 8), Bow, 1, ring{})
	assert.Equal(t, DoorLocked, res.Outcome)
	assert.Equal(t, 0, res.Steps)
	assert.Equal(t, world.Coord('J', 8), res.Position)
}

func TestMove_LockedDoorWithKey(t *testing.T) {
	r := newTestResolver(t)

	res := r.Move(world.Coord('J', 6), Bow, 4, ring{"Bridge Key": true})
	assert.Equal(t, Moved, res.Outcome)
	assert.Equal(t, 4, res.Steps)
	assert.Equal(t, world.Coord('J', 10), res.Position)
}

func TestMove_BackOutThroughDoor(t *testing.T) {
	r := newTestResolver(t)

	// Leaving the locked bridge into the open cargo bay needs no key.
	res := r.Move(world.Coord('J', 9), Stern, 1, ring{})
	assert.Equal(t, Moved, res.Outcome)
	assert.Equal(t, world.Coord('J', 8), res.Position)
}

func TestPropertyMoveNeverLeavesRooms(t *testing.T) {
	r := newTestResolver(t)
	deck := r.idx.Deck()

	rapid.Check(t, func(t *rapid.T) {
		room := deck.Rooms[rapid.IntRange(0, len(deck.Rooms)-1).Draw(t, "room")]
		start := room.Coords[rapid.IntRange(0, len(room.Coords)-1).Draw(t, "tile")]
		dir := Directions[rapid.IntRange(0, len(Directions)-1).Draw(t, "dir")]
		steps := rapid.IntRange(0, 12).Draw(t, "steps")
		keys := ring{}
		if rapid.Bool().Draw(t, "has_key") {
			keys["Bridge Key"] = true
		}

		res := r.Move(start, dir, steps, keys)

		_, ok := r.idx.RoomAt(res.Position)
		assert.True(t, ok, "ended outside any room at %s", res.Position)
		assert.LessOrEqual(t, res.Steps, steps)
		if res.Outcome == Moved {
			assert.Equal(t, steps, res.Steps)
		}
	})
}
