// Package placement assigns every catalog item a starting coordinate,
// randomly but never inside the room its key unlocks.
package placement

import (
	"go.uber.org/zap"

	"github.com/forgottenship/game/internal/game/dice"
	"github.com/forgottenship/game/internal/game/inventory"
	"github.com/forgottenship/game/internal/game/world"
)

// Placement maps room name → item name → coordinate. It is generated once
// per fresh settings document and persisted; later runs load it rather than
// regenerate, so already-discovered items never silently move.
type Placement map[string]map[string]world.Coordinate

// Find returns the room and coordinate an item was placed at.
//
// Postcondition: Returns (room, coordinate, true) if placed, or zero values
// and false otherwise.
func (p Placement) Find(item string) (string, world.Coordinate, bool) {
	for room, items := range p {
		if c, ok := items[item]; ok {
			return room, c, true
		}
	}
	return "", world.Coordinate{}, false
}

// Remove deletes an item from the placement, used once the player picks it
// up.
func (p Placement) Remove(item string) {
	for room, items := range p {
		if _, ok := items[item]; ok {
			delete(items, item)
			if len(items) == 0 {
				delete(p, room)
			}
			return
		}
	}
}

// BuildUnlockTable precomputes key item name → unlocked room name from the
// catalog's explicit unlocks declarations. Built once at startup, never per
// placement call.
func BuildUnlockTable(catalog *inventory.Catalog) map[string]string {
	table := make(map[string]string)
	for _, key := range catalog.Keys() {
		if key.Unlocks != "" {
			table[key.Name] = key.Unlocks
		}
	}
	return table
}

// Generate produces a randomized placement of every catalog item.
//
// Rules: only rooms with at least one coordinate are eligible; a key is
// never placed inside the room it unlocks (that would be an unsolvable
// lockout); selection is uniform over eligible rooms, then uniform over that
// room's coordinates, independently per item. An item with no eligible room
// is skipped with a diagnostic, never a fatal error.
//
// Precondition: deck must be validated; src and logger must be non-nil.
// Postcondition: Every placed coordinate belongs to the room it is keyed
// under; no key appears in the room it unlocks.
func Generate(catalog *inventory.Catalog, deck *world.Deck, src dice.Source, logger *zap.Logger) Placement {
	unlocks := BuildUnlockTable(catalog)

	eligible := make([]*world.Room, 0, len(deck.Rooms))
	for _, room := range deck.Rooms {
		if len(room.Coords) > 0 {
			eligible = append(eligible, room)
		}
	}

	placed := make(Placement)
	for _, item := range catalog.Items() {
		forbidden := unlocks[item.Name]

		candidates := make([]*world.Room, 0, len(eligible))
		for _, room := range eligible {
			if room.Name != forbidden {
				candidates = append(candidates, room)
			}
		}
		if len(candidates) == 0 {
			logger.Warn("no eligible room for item, skipping placement",
				zap.String("item", item.Name),
				zap.String("forbidden_room", forbidden),
			)
			continue
		}

		room := candidates[src.Intn(len(candidates))]
		coord := room.Coords[src.Intn(len(room.Coords))]

		if placed[room.Name] == nil {
			placed[room.Name] = make(map[string]world.Coordinate)
		}
		placed[room.Name][item.Name] = coord
	}

	return placed
}
