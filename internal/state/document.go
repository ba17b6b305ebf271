// Package state persists the two on-disk documents: the player save and the
// world settings (item placement plus exploration progress). It is the only
// boundary between the game core and disk, and its loaders are defensive: a
// corrupt file can never prevent a session from starting.
package state

import (
	"encoding/json"
	"fmt"

	"github.com/forgottenship/game/internal/game/placement"
	"github.com/forgottenship/game/internal/game/world"
)

// SaveDocument is the canonical in-memory form of the player save. Item
// entries are plain catalog names; the duck-typed on-disk shapes are
// normalized away at the parse boundary.
type SaveDocument struct {
	Name          string
	Position      world.Coordinate
	Inventory     []string
	RoomItems     map[string][]string
	MagicStorage  map[string][]string
	Health        int
	HasFlashlight bool
	Explored      []world.Coordinate
	Doors         []world.Coordinate
}

// SettingsDocument is the canonical in-memory form of the world settings.
// HasItemPositions records whether the document carried the item_positions
// key at all: a present-but-empty table means every placed item has been
// collected, while an absent one means placement has never been generated.
type SettingsDocument struct {
	HasItemPositions bool
	ItemPositions    placement.Placement
	VisitedCoords    []world.Coordinate
	CompletedTasks   []string
	DialogueFlags    map[string]bool
}

// itemRef normalizes the two historical item-entry shapes, a plain name
// string or a {"name": ...} record, into one name. It always marshals back
// to the plain string form.
type itemRef struct {
	Name string
}

func (r itemRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Name)
}

func (r *itemRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		r.Name = s
		return nil
	}
	var rec struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("item entry: want a name or a record with a name: %w", err)
	}
	if rec.Name == "" {
		return fmt.Errorf("item entry: record has no name")
	}
	r.Name = rec.Name
	return nil
}

// saveJSON is the on-disk shape of the save document. Position and
// inventory are required; pointer fields distinguish absent from empty.
type saveJSON struct {
	Name          string               `json:"name,omitempty"`
	Position      *world.Coordinate    `json:"position"`
	Inventory     *[]itemRef           `json:"inventory"`
	RoomItems     map[string][]itemRef `json:"room_items"`
	MagicStorage  map[string][]itemRef `json:"magic_storage,omitempty"`
	Health        *int                 `json:"health,omitempty"`
	HasFlashlight *bool                `json:"has_flashlight,omitempty"`
	Explored      []world.Coordinate   `json:"explored_coords,omitempty"`
	Doors         []world.Coordinate   `json:"door_coords,omitempty"`
}

// settingsJSON is the on-disk shape of the settings document. Every field is
// optional; absent fields load as empty.
type settingsJSON struct {
	ItemPositions  map[string]map[string]world.Coordinate `json:"item_positions"`
	VisitedCoords  []world.Coordinate                     `json:"visited_coords"`
	CompletedTasks []string                               `json:"completed_tasks"`
	DialogueFlags  map[string]bool                        `json:"dialogue_flags,omitempty"`
}

func refs(names []string) []itemRef {
	out := make([]itemRef, len(names))
	for i, n := range names {
		out[i] = itemRef{Name: n}
	}
	return out
}

func names(entries []itemRef) []string {
	out := make([]string, len(entries))
	for i, r := range entries {
		out[i] = r.Name
	}
	return out
}
