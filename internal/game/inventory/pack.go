package inventory

import (
	"errors"
	"fmt"
)

// Gameplay-rule violations reported by Pack operations. They are outcomes
// for the caller to render, never used for control flow inside the core,
// and they fire without mutating the pack.
var (
	// ErrUnknownItem rejects a name absent from the catalog.
	ErrUnknownItem = errors.New("unknown item")
	// ErrDuplicateItem rejects adding a name already held.
	ErrDuplicateItem = errors.New("item already held")
	// ErrInventoryFull rejects an add that would exceed carry capacity.
	ErrInventoryFull = errors.New("inventory full")
	// ErrItemNotHeld rejects removing a name that is not held.
	ErrItemNotHeld = errors.New("item not held")
)

// DefaultCapacity is the standard carry capacity in non-key units.
const DefaultCapacity = 5

// Pack is a player's carried inventory: an ordered list of unique catalog
// item names under a capacity limit. Keys are exempt from capacity; NPC
// items cost two units, other items one (see ItemDef.CarryCost).
type Pack struct {
	catalog  *Catalog
	capacity int
	items    []string
}

// NewPack creates a Pack resolving names against the given catalog.
//
// Precondition: catalog must be non-nil; capacity must be > 0.
func NewPack(catalog *Catalog, capacity int) *Pack {
	return &Pack{catalog: catalog, capacity: capacity}
}

// Add places the named item into the pack. It is atomic: on error the pack
// is unchanged.
//
// Postcondition: on success the item is held; otherwise returns
// ErrUnknownItem, ErrDuplicateItem, or ErrInventoryFull.
func (p *Pack) Add(name string) error {
	def, ok := p.catalog.Item(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownItem, name)
	}
	if p.Has(name) {
		return fmt.Errorf("%w: %q", ErrDuplicateItem, name)
	}
	if p.Used()+def.CarryCost() > p.capacity {
		return fmt.Errorf("%w: cannot carry %q (%d of %d used)", ErrInventoryFull, name, p.Used(), p.capacity)
	}
	p.items = append(p.items, name)
	return nil
}

// Remove takes the named item out of the pack.
//
// Postcondition: on success the item is no longer held; returns
// ErrItemNotHeld if it was not held.
func (p *Pack) Remove(name string) error {
	for i, held := range p.items {
		if held == name {
			p.items = append(p.items[:i], p.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrItemNotHeld, name)
}

// Has reports whether the named item is held.
func (p *Pack) Has(name string) bool {
	for _, held := range p.items {
		if held == name {
			return true
		}
	}
	return false
}

// Used returns the occupied capacity units (keys free, NPC items two units,
// others one).
func (p *Pack) Used() int {
	used := 0
	for _, name := range p.items {
		if def, ok := p.catalog.Item(name); ok {
			used += def.CarryCost()
		}
	}
	return used
}

// Capacity returns the capacity limit in non-key units.
func (p *Pack) Capacity() int {
	return p.capacity
}

// Items returns a snapshot copy of held item names in pickup order.
//
// Postcondition: Returned slice is a copy; mutations do not affect the pack.
func (p *Pack) Items() []string {
	out := make([]string, len(p.items))
	copy(out, p.items)
	return out
}

// KeyNames returns the held key-category item names in pickup order.
func (p *Pack) KeyNames() []string {
	var out []string
	for _, name := range p.items {
		if def, ok := p.catalog.Item(name); ok && def.Category == CategoryKey {
			out = append(out, name)
		}
	}
	return out
}
