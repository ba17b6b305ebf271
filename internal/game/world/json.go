package world

import (
	"encoding/json"
	"fmt"
)

// MarshalJSON encodes the coordinate in the persisted document form:
// a two-element array of column letter and row, e.g. ["I", 5].
func (c Coordinate) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{string(c.Col), c.Row})
}

// UnmarshalJSON decodes the ["I", 5] document form.
//
// Postcondition: On success the coordinate is valid; malformed or
// out-of-bounds pairs produce a non-nil error.
func (c *Coordinate) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("coordinate: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("coordinate: want [column, row], got %d elements", len(pair))
	}
	var col string
	if err := json.Unmarshal(pair[0], &col); err != nil {
		return fmt.Errorf("coordinate column: %w", err)
	}
	var row int
	if err := json.Unmarshal(pair[1], &row); err != nil {
		return fmt.Errorf("coordinate row: %w", err)
	}
	if len(col) != 1 {
		return fmt.Errorf("coordinate column %q: want a single letter", col)
	}
	parsed := Coordinate{Col: col[0], Row: row}
	if !parsed.Valid() {
		return fmt.Errorf("coordinate %s: out of bounds", parsed)
	}
	*c = parsed
	return nil
}
