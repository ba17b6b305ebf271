package world

import (
	"fmt"
	"sync"
)

// Index provides O(1) coordinate lookup over a validated Deck and an
// adjacency oracle for door crossings. It also exclusively owns the mutable
// per-room compartment lists (floor storage); every other component goes
// through Deposit, Remove, and Compartment rather than holding references.
type Index struct {
	deck  *Deck
	rooms map[Coordinate]*Room

	mu           sync.RWMutex
	compartments map[string][]string // room name → item names on the floor
}

// NewIndex builds an Index from a validated deck.
//
// Precondition: deck must have passed Validate; the coordinate partition
// invariant makes the coordinate→room hash well defined.
// Postcondition: Returns an Index with every room tile indexed.
func NewIndex(deck *Deck) (*Index, error) {
	if err := deck.Validate(); err != nil {
		return nil, fmt.Errorf("indexing deck: %w", err)
	}
	idx := &Index{
		deck:         deck,
		rooms:        make(map[Coordinate]*Room),
		compartments: make(map[string][]string),
	}
	for _, room := range deck.Rooms {
		for _, c := range room.Coords {
			idx.rooms[c] = room
		}
	}
	return idx, nil
}

// Deck returns the indexed deck.
func (x *Index) Deck() *Deck {
	return x.deck
}

// RoomAt returns the room owning the given coordinate.
//
// Postcondition: Returns (room, true) if any room contains the coordinate,
// or (nil, false) otherwise.
func (x *Index) RoomAt(c Coordinate) (*Room, bool) {
	r, ok := x.rooms[c]
	return r, ok
}

// DoorBetween returns the door joining the unordered coordinate pair {a, b}.
// Rooms are scanned in deck declaration order and doors in their declared
// order; when several rooms reference the same pair, the first match wins.
// That order is pinned behavior, not an accident of map iteration.
// Revealed secret passages count as doors; unrevealed ones do not.
//
// Postcondition: Returns (door, true) on a match, or (Door{}, false).
func (x *Index) DoorBetween(a, b Coordinate) (Door, bool) {
	for _, room := range x.deck.Rooms {
		for _, d := range room.Doors {
			if d.Connects(a, b) {
				return d, true
			}
		}
		for _, sp := range room.SecretPassages {
			if sp.Revealed && (Door{Entry: sp.Entry, Exit: sp.Exit}).Connects(a, b) {
				return Door{Label: sp.Label, Entry: sp.Entry, Exit: sp.Exit}, true
			}
		}
	}
	return Door{}, false
}

// RevealPassage marks the named secret passage on the named room as revealed.
// The reveal trigger itself belongs to the puzzle collaborator; this is the
// single mutation entry point it uses.
//
// Postcondition: Returns true if a passage was revealed, false if no such
// room/passage exists.
func (x *Index) RevealPassage(roomName, label string) bool {
	room, ok := x.deck.Room(roomName)
	if !ok {
		return false
	}
	for i := range room.SecretPassages {
		if room.SecretPassages[i].Label == label {
			room.SecretPassages[i].Revealed = true
			return true
		}
	}
	return false
}

// Deposit places an item name into a room's compartment.
//
// Precondition: item must be a catalog name; callers validate it.
// Postcondition: Returns nil and appends the item, or an error for an
// unknown room.
func (x *Index) Deposit(roomName, item string) error {
	if _, ok := x.deck.Room(roomName); !ok {
		return fmt.Errorf("deposit: unknown room %q", roomName)
	}
	x.mu.Lock()
	defer x.mu.Unlock()
	x.compartments[roomName] = append(x.compartments[roomName], item)
	return nil
}

// Remove takes the first occurrence of an item name out of a room's
// compartment.
//
// Postcondition: Returns true and removes the item if present; otherwise
// returns false and leaves the compartment unchanged.
func (x *Index) Remove(roomName, item string) bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	items := x.compartments[roomName]
	for i, name := range items {
		if name == item {
			x.compartments[roomName] = append(items[:i], items[i+1:]...)
			return true
		}
	}
	return false
}

// Compartment returns a snapshot copy of the room's floor items.
//
// Postcondition: Returned slice is a copy; mutations do not affect the index.
func (x *Index) Compartment(roomName string) []string {
	x.mu.RLock()
	defer x.mu.RUnlock()
	items := x.compartments[roomName]
	out := make([]string, len(items))
	copy(out, items)
	return out
}

// Compartments returns a snapshot of every non-empty compartment, for
// persistence.
func (x *Index) Compartments() map[string][]string {
	x.mu.RLock()
	defer x.mu.RUnlock()
	out := make(map[string][]string, len(x.compartments))
	for room, items := range x.compartments {
		if len(items) == 0 {
			continue
		}
		cp := make([]string, len(items))
		copy(cp, items)
		out[room] = cp
	}
	return out
}

// ResetCompartments replaces all floor storage, used when reconciling a
// loaded save document.
func (x *Index) ResetCompartments(byRoom map[string][]string) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.compartments = make(map[string][]string, len(byRoom))
	for room, items := range byRoom {
		cp := make([]string, len(items))
		copy(cp, items)
		x.compartments[room] = cp
	}
}
