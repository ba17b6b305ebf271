// Package world provides the ship model: decks, rooms, coordinates, doors,
// and secret passages, plus the spatial index and visibility computation.
package world

import (
	"fmt"
	"strconv"
)

// Coordinate bounds. Columns are single letters, rows are positive and bounded.
const (
	MinCol = 'A'
	MaxCol = 'Z'
	MinRow = 1
	MaxRow = 99
)

// Coordinate is a single tile position: a column letter and a row number.
// It is a comparable value type and safe to use as a map key.
type Coordinate struct {
	// Col is the column letter, 'A' through 'Z'.
	Col byte
	// Row is the row number, MinRow through MaxRow.
	Row int
}

// Coord builds a Coordinate from a column letter and row.
//
// Precondition: col and row should be within bounds for a valid coordinate;
// use Valid to check.
func Coord(col byte, row int) Coordinate {
	return Coordinate{Col: col, Row: row}
}

// Valid reports whether the coordinate lies within the ship grid bounds.
func (c Coordinate) Valid() bool {
	return c.Col >= MinCol && c.Col <= MaxCol && c.Row >= MinRow && c.Row <= MaxRow
}

// Offset returns the coordinate shifted by the given column and row deltas.
//
// Postcondition: Returns (coordinate, true) if the result is within bounds,
// or (Coordinate{}, false) if it would leave the grid.
func (c Coordinate) Offset(dCol, dRow int) (Coordinate, bool) {
	shifted := Coordinate{
		Col: byte(int(c.Col) + dCol),
		Row: c.Row + dRow,
	}
	if !shifted.Valid() {
		return Coordinate{}, false
	}
	return shifted, true
}

// String returns the compact text form, e.g. "I5".
func (c Coordinate) String() string {
	return string(c.Col) + strconv.Itoa(c.Row)
}

// ParseCoordinate parses the compact text form ("I5", "T24") used in content
// files.
//
// Postcondition: Returns a valid Coordinate or a non-nil error.
func ParseCoordinate(s string) (Coordinate, error) {
	if len(s) < 2 {
		return Coordinate{}, fmt.Errorf("coordinate %q: want a column letter followed by a row number", s)
	}
	col := s[0]
	row, err := strconv.Atoi(s[1:])
	if err != nil {
		return Coordinate{}, fmt.Errorf("coordinate %q: bad row: %w", s, err)
	}
	c := Coordinate{Col: col, Row: row}
	if !c.Valid() {
		return Coordinate{}, fmt.Errorf("coordinate %q: out of bounds", s)
	}
	return c, nil
}

// Door is a bidirectional transition between two specific coordinates in two
// (possibly equal) rooms. Crossing requires standing exactly at one endpoint
// and stepping to the other.
type Door struct {
	// Label is the human-readable door name, e.g. "to corridor".
	Label string
	// Entry is the coordinate on the owning room's side.
	Entry Coordinate
	// Exit is the coordinate on the far side.
	Exit Coordinate
	// Locked marks a door that is locked independently of its rooms.
	Locked bool
}

// Connects reports whether the door joins the unordered coordinate pair {a, b}.
func (d Door) Connects(a, b Coordinate) bool {
	return (d.Entry == a && d.Exit == b) || (d.Entry == b && d.Exit == a)
}

// SecretPassage is a door-like transition hidden until revealed by an
// external trigger. Unrevealed passages are neither listed nor traversable.
type SecretPassage struct {
	Label string
	Entry Coordinate
	Exit  Coordinate
	// Revealed is flipped by the puzzle collaborator; the world model only
	// stores it.
	Revealed bool
}

// Room is a named region of the ship composed of a fixed coordinate set.
type Room struct {
	// Name uniquely identifies the room.
	Name string
	// Coords is the ordered, non-empty set of tiles the room occupies.
	// No coordinate may appear in another room (partition invariant).
	Coords []Coordinate
	// Locked marks a room that requires Key to enter through any door.
	Locked bool
	// Key is the catalog name of the key item required when Locked is set.
	Key string
	// Description is the free-text room description.
	Description string
	// Doors lists transitions out of this room, in declaration order.
	Doors []Door
	// SecretPassages lists hidden transitions, in declaration order.
	SecretPassages []SecretPassage
}

// Contains reports whether the coordinate belongs to the room's tile set.
func (r *Room) Contains(c Coordinate) bool {
	for _, rc := range r.Coords {
		if rc == c {
			return true
		}
	}
	return false
}

// Deck is the immutable, explicitly constructed world definition. It is
// loaded once at startup and never mutated afterwards; mutable floor storage
// lives in the Index, not here.
type Deck struct {
	// Name is the display name of the ship or deck plan.
	Name string
	// Rooms holds every room in declaration order. The order is load-bearing:
	// door lookups resolve ties by scanning rooms in this order.
	Rooms []*Room
}

// Room returns the room with the given name.
//
// Postcondition: Returns (room, true) if found, or (nil, false) otherwise.
func (d *Deck) Room(name string) (*Room, bool) {
	for _, r := range d.Rooms {
		if r.Name == name {
			return r, true
		}
	}
	return nil, false
}

// Validate checks deck invariants: rooms are named, non-empty, and disjoint;
// every door endpoint resolves to some room's tile set; locked rooms name
// their key; rooms on either side of a locked door name a key.
//
// Postcondition: Returns nil if valid, or an error describing the first
// violation.
func (d *Deck) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("deck name must not be empty")
	}
	if len(d.Rooms) == 0 {
		return fmt.Errorf("deck %q: must contain at least one room", d.Name)
	}

	owner := make(map[Coordinate]string)
	seen := make(map[string]bool)
	for _, room := range d.Rooms {
		if room.Name == "" {
			return fmt.Errorf("deck %q: room with empty name", d.Name)
		}
		if seen[room.Name] {
			return fmt.Errorf("deck %q: duplicate room %q", d.Name, room.Name)
		}
		seen[room.Name] = true
		if len(room.Coords) == 0 {
			return fmt.Errorf("room %q: must occupy at least one coordinate", room.Name)
		}
		if room.Locked && room.Key == "" {
			return fmt.Errorf("room %q: locked rooms must name a key", room.Name)
		}
		for _, c := range room.Coords {
			if !c.Valid() {
				return fmt.Errorf("room %q: coordinate %s out of bounds", room.Name, c)
			}
			if other, taken := owner[c]; taken {
				return fmt.Errorf("coordinate %s claimed by both %q and %q", c, other, room.Name)
			}
			owner[c] = room.Name
		}
	}

	for _, room := range d.Rooms {
		for _, door := range room.Doors {
			entryOwner, ok := owner[door.Entry]
			if !ok {
				return fmt.Errorf("room %q: door %q: entry %s belongs to no room", room.Name, door.Label, door.Entry)
			}
			exitOwner, ok := owner[door.Exit]
			if !ok {
				return fmt.Errorf("room %q: door %q: exit %s belongs to no room", room.Name, door.Label, door.Exit)
			}
			// A locked crossing is opened by the destination room's key, and
			// either endpoint room can be the destination. A keyless side
			// would make the door permanently impassable from the other.
			if door.Locked && entryOwner != exitOwner {
				for _, name := range []string{entryOwner, exitOwner} {
					if r, _ := d.Room(name); r.Key == "" {
						return fmt.Errorf("room %q: locked door %q crosses into room %q, which names no key", room.Name, door.Label, name)
					}
				}
			}
		}
		for _, sp := range room.SecretPassages {
			if _, ok := owner[sp.Entry]; !ok {
				return fmt.Errorf("room %q: secret passage %q: entry %s belongs to no room", room.Name, sp.Label, sp.Entry)
			}
			if _, ok := owner[sp.Exit]; !ok {
				return fmt.Errorf("room %q: secret passage %q: exit %s belongs to no room", room.Name, sp.Label, sp.Exit)
			}
		}
	}

	return nil
}
