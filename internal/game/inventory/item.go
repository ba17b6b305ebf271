// Package inventory defines the item catalog and the player's carried pack.
package inventory

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Category constants for ItemDef.Category.
const (
	CategoryKey  = "key"
	CategoryTool = "tool"
	CategoryAid  = "aid"
	CategoryNPC  = "npc"
)

// validCategories is the set of valid item categories.
var validCategories = map[string]bool{
	CategoryKey:  true,
	CategoryTool: true,
	CategoryAid:  true,
	CategoryNPC:  true,
}

// ItemDef is an immutable catalog entry. Items are values identified by
// name; "owning" one means its name appears in a pack, compartment, or box.
type ItemDef struct {
	Name        string `yaml:"name"`
	Category    string `yaml:"category"`
	Description string `yaml:"description"`
	// Unlocks names the room this key opens. Only meaningful for keys; the
	// placement generator refuses to place a key inside the room it unlocks.
	Unlocks string `yaml:"unlocks"`
	// Heals is the health restored when an aid item is used.
	Heals int `yaml:"heals"`
}

// Validate checks that the ItemDef satisfies its invariants.
//
// Postcondition: returns nil iff all fields are valid.
func (d *ItemDef) Validate() error {
	var errs []error
	if d.Name == "" {
		errs = append(errs, errors.New("Name must not be empty"))
	}
	if !validCategories[d.Category] {
		errs = append(errs, fmt.Errorf("Category must be one of key, tool, aid, npc; got %q", d.Category))
	}
	if d.Unlocks != "" && d.Category != CategoryKey {
		errs = append(errs, fmt.Errorf("Unlocks is only valid for keys, not %q", d.Category))
	}
	if d.Heals < 0 {
		errs = append(errs, errors.New("Heals must be >= 0"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("item validation failed: %v", errs)
	}
	return nil
}

// CarryCost returns the capacity units the item occupies in a pack. Keys are
// exempt from capacity; NPC-category items (an escorted survivor) take two
// units; everything else takes one.
func (d *ItemDef) CarryCost() int {
	switch d.Category {
	case CategoryKey:
		return 0
	case CategoryNPC:
		return 2
	default:
		return 1
	}
}

// yamlCatalogFile is the top-level YAML structure for catalog files.
type yamlCatalogFile struct {
	Items []ItemDef `yaml:"items"`
}

// LoadItems reads a catalog YAML file, validates every entry, and returns
// the collected slice in declaration order.
//
// Precondition: path is a readable catalog YAML file.
// Postcondition: returns all valid ItemDefs or the first encountered error.
func LoadItems(path string) ([]*ItemDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadItems: cannot read file %q: %w", path, err)
	}
	return LoadItemsFromBytes(data)
}

// LoadItemsFromBytes parses and validates a catalog from YAML bytes.
func LoadItemsFromBytes(data []byte) ([]*ItemDef, error) {
	var file yamlCatalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("LoadItems: cannot parse catalog: %w", err)
	}
	items := make([]*ItemDef, 0, len(file.Items))
	for i := range file.Items {
		d := file.Items[i]
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("LoadItems: invalid item %q: %w", d.Name, err)
		}
		items = append(items, &d)
	}
	return items, nil
}
