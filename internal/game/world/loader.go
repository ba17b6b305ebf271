package world

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlDeckFile is the top-level YAML structure for deck plan files.
type yamlDeckFile struct {
	Deck yamlDeck `yaml:"deck"`
}

// yamlDeck is the YAML representation of a deck plan.
type yamlDeck struct {
	Name  string     `yaml:"name"`
	Rooms []yamlRoom `yaml:"rooms"`
}

// yamlRoom is the YAML representation of a room. Coordinates use the compact
// "I5" text form.
type yamlRoom struct {
	Name           string        `yaml:"name"`
	Coords         []string      `yaml:"coords"`
	Locked         bool          `yaml:"locked"`
	Key            string        `yaml:"key"`
	Description    string        `yaml:"description"`
	Doors          []yamlPassage `yaml:"doors"`
	SecretPassages []yamlPassage `yaml:"secret_passages"`
}

// yamlPassage is the YAML representation of a door or secret passage.
type yamlPassage struct {
	Label    string `yaml:"label"`
	Entry    string `yaml:"entry"`
	Exit     string `yaml:"exit"`
	Locked   bool   `yaml:"locked"`
	Revealed bool   `yaml:"revealed"`
}

// LoadDeckFromFile reads and validates a single deck plan YAML file.
//
// Precondition: path must point to a valid YAML deck file.
// Postcondition: Returns a validated Deck or a non-nil error.
func LoadDeckFromFile(path string) (*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading deck file %s: %w", path, err)
	}
	deck, err := LoadDeckFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("loading deck from %s: %w", path, err)
	}
	return deck, nil
}

// LoadDeckFromBytes parses and validates a deck plan from YAML bytes.
//
// Precondition: data must be valid YAML conforming to the deck schema.
// Postcondition: Returns a validated Deck or a non-nil error.
func LoadDeckFromBytes(data []byte) (*Deck, error) {
	var file yamlDeckFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing deck YAML: %w", err)
	}

	deck, err := convertYAMLDeck(file.Deck)
	if err != nil {
		return nil, err
	}
	if err := deck.Validate(); err != nil {
		return nil, fmt.Errorf("validating deck: %w", err)
	}

	return deck, nil
}

// convertYAMLDeck converts the parsed YAML structures into domain types,
// preserving room and door declaration order.
func convertYAMLDeck(yd yamlDeck) (*Deck, error) {
	deck := &Deck{
		Name:  yd.Name,
		Rooms: make([]*Room, 0, len(yd.Rooms)),
	}

	for _, yr := range yd.Rooms {
		room := &Room{
			Name:        yr.Name,
			Locked:      yr.Locked,
			Key:         yr.Key,
			Description: strings.TrimSpace(yr.Description),
		}
		for _, cs := range yr.Coords {
			c, err := ParseCoordinate(cs)
			if err != nil {
				return nil, fmt.Errorf("room %q: %w", yr.Name, err)
			}
			room.Coords = append(room.Coords, c)
		}
		for _, yp := range yr.Doors {
			door, err := convertYAMLPassage(yr.Name, yp)
			if err != nil {
				return nil, err
			}
			room.Doors = append(room.Doors, Door{
				Label:  door.Label,
				Entry:  door.Entry,
				Exit:   door.Exit,
				Locked: yp.Locked,
			})
		}
		for _, yp := range yr.SecretPassages {
			sp, err := convertYAMLPassage(yr.Name, yp)
			if err != nil {
				return nil, err
			}
			room.SecretPassages = append(room.SecretPassages, SecretPassage{
				Label:    sp.Label,
				Entry:    sp.Entry,
				Exit:     sp.Exit,
				Revealed: yp.Revealed,
			})
		}
		deck.Rooms = append(deck.Rooms, room)
	}

	return deck, nil
}

// convertYAMLPassage parses the shared label/entry/exit fields of a door or
// secret passage.
func convertYAMLPassage(roomName string, yp yamlPassage) (Door, error) {
	entry, err := ParseCoordinate(yp.Entry)
	if err != nil {
		return Door{}, fmt.Errorf("room %q: passage %q entry: %w", roomName, yp.Label, err)
	}
	exit, err := ParseCoordinate(yp.Exit)
	if err != nil {
		return Door{}, fmt.Errorf("room %q: passage %q exit: %w", roomName, yp.Label, err)
	}
	return Door{Label: yp.Label, Entry: entry, Exit: exit}, nil
}
