package inventory

import "fmt"

// Catalog holds all loaded item definitions indexed by name, preserving
// declaration order for stable listings.
type Catalog struct {
	byName map[string]*ItemDef
	order  []string
}

// NewCatalog returns an empty Catalog.
//
// Postcondition: the internal index is initialised.
func NewCatalog() *Catalog {
	return &Catalog{byName: make(map[string]*ItemDef)}
}

// NewCatalogFromDefs builds a Catalog from the given definitions.
//
// Postcondition: Returns a Catalog with every definition registered, or an
// error on a duplicate name.
func NewCatalogFromDefs(defs []*ItemDef) (*Catalog, error) {
	c := NewCatalog()
	for _, d := range defs {
		if err := c.Register(d); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Register adds d to the catalog.
//
// Precondition: d must not be nil and must have passed Validate.
// Postcondition: Item(d.Name) returns (d, true); returns an error if the
// name is already registered.
func (c *Catalog) Register(d *ItemDef) error {
	if _, exists := c.byName[d.Name]; exists {
		return fmt.Errorf("inventory: Catalog.Register: item %q already registered", d.Name)
	}
	c.byName[d.Name] = d
	c.order = append(c.order, d.Name)
	return nil
}

// Item returns the definition for the given name.
//
// Postcondition: Returns (def, true) if found, or (nil, false) otherwise.
func (c *Catalog) Item(name string) (*ItemDef, bool) {
	d, ok := c.byName[name]
	return d, ok
}

// Items returns every definition in registration order.
//
// Postcondition: Returns a non-nil slice; may be empty.
func (c *Catalog) Items() []*ItemDef {
	out := make([]*ItemDef, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.byName[name])
	}
	return out
}

// Keys returns every key-category definition in registration order.
func (c *Catalog) Keys() []*ItemDef {
	var out []*ItemDef
	for _, name := range c.order {
		if d := c.byName[name]; d.Category == CategoryKey {
			out = append(out, d)
		}
	}
	return out
}

// Len returns the number of registered items.
func (c *Catalog) Len() int {
	return len(c.byName)
}
