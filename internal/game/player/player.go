// Package player holds the explorer's mutable state: position, health,
// carried pack, and the coordinate tracking used by the map display.
package player

import (
	"sort"

	"github.com/forgottenship/game/internal/game/inventory"
	"github.com/forgottenship/game/internal/game/world"
)

// MaxHealth is the health ceiling; TakeDamage and RestoreHealth clamp to
// [0, MaxHealth].
const MaxHealth = 100

// DefaultName is the explorer's name when none is configured.
const DefaultName = "Ryan"

// Player is the single explorer. It is constructed fresh at spawn or rebuilt
// from a save document, and mutated only by the movement resolver, the
// persistence loader, and inventory operations.
type Player struct {
	// Name is the explorer's display name.
	Name string
	// Position is the current coordinate.
	Position world.Coordinate
	// Health is the current health in [0, MaxHealth].
	Health int
	// HasFlashlight widens the visibility set when true.
	HasFlashlight bool
	// Pack is the carried inventory.
	Pack *inventory.Pack

	explored  map[world.Coordinate]bool
	doorsSeen map[world.Coordinate]bool
}

// New creates a Player at the given spawn with full health and an empty
// pack.
//
// Precondition: catalog must be non-nil; capacity must be > 0.
func New(name string, spawn world.Coordinate, catalog *inventory.Catalog, capacity int) *Player {
	if name == "" {
		name = DefaultName
	}
	return &Player{
		Name:      name,
		Position:  spawn,
		Health:    MaxHealth,
		Pack:      inventory.NewPack(catalog, capacity),
		explored:  make(map[world.Coordinate]bool),
		doorsSeen: make(map[world.Coordinate]bool),
	}
}

// IsAlive reports whether the player can still act.
func (p *Player) IsAlive() bool {
	return p.Health > 0
}

// HasItem reports whether the named item is in the pack. It satisfies the
// movement resolver's KeyRing.
func (p *Player) HasItem(name string) bool {
	return p.Pack.Has(name)
}

// TakeDamage lowers health by amount, clamped at zero. Dead players take no
// further damage.
//
// Postcondition: Health stays within [0, MaxHealth].
func (p *Player) TakeDamage(amount int) {
	if !p.IsAlive() || amount <= 0 {
		return
	}
	p.Health -= amount
	if p.Health < 0 {
		p.Health = 0
	}
}

// RestoreHealth raises health by amount, clamped at MaxHealth. The dead
// cannot be healed.
//
// Postcondition: Health stays within [0, MaxHealth].
func (p *Player) RestoreHealth(amount int) {
	if !p.IsAlive() || amount <= 0 {
		return
	}
	p.Health += amount
	if p.Health > MaxHealth {
		p.Health = MaxHealth
	}
}

// MarkExplored records a physically occupied coordinate for the map display.
func (p *Player) MarkExplored(c world.Coordinate) {
	p.explored[c] = true
}

// MarkDoor records a door coordinate the player has discovered.
func (p *Player) MarkDoor(c world.Coordinate) {
	p.doorsSeen[c] = true
}

// Explored reports whether the coordinate has been occupied.
func (p *Player) Explored(c world.Coordinate) bool {
	return p.explored[c]
}

// DoorSeen reports whether a door has been discovered at the coordinate.
func (p *Player) DoorSeen(c world.Coordinate) bool {
	return p.doorsSeen[c]
}

// ExploredList returns the explored coordinates in a stable sorted order,
// for persistence.
func (p *Player) ExploredList() []world.Coordinate {
	return sortedCoords(p.explored)
}

// DoorList returns the discovered door coordinates in a stable sorted order,
// for persistence.
func (p *Player) DoorList() []world.Coordinate {
	return sortedCoords(p.doorsSeen)
}

func sortedCoords(set map[world.Coordinate]bool) []world.Coordinate {
	out := make([]world.Coordinate, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Col != out[j].Col {
			return out[i].Col < out[j].Col
		}
		return out[i].Row < out[j].Row
	})
	return out
}
