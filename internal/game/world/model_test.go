package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// validTestDeck builds a two-room deck: an open Hold (B2..D3) and a locked
// Galley (E2..F3) joined by a door at E2/D2, with an unrevealed passage
// between B3 and F3.
func validTestDeck() *Deck {
	hold := &Room{
		Name:        "Hold",
		Description: "Crates and netting.",
		Coords: []Coordinate{
			Coord('B', 2), Coord('C', 2), Coord('D', 2),
			Coord('B', 3), Coord('C', 3), Coord('D', 3),
		},
		SecretPassages: []SecretPassage{
			{Label: "to galley", Entry: Coord('B', 3), Exit: Coord('F', 3)},
		},
	}
	galley := &Room{
		Name:        "Galley",
		Description: "Cold stoves.",
		Locked:      true,
		Key:         "Galley Key",
		Coords: []Coordinate{
			Coord('E', 2), Coord('F', 2),
			Coord('E', 3), Coord('F', 3),
		},
		Doors: []Door{
			{Label: "to hold", Entry: Coord('E', 2), Exit: Coord('D', 2)},
		},
	}
	return &Deck{Name: "Test Ship", Rooms: []*Room{hold, galley}}
}

func TestCoordinate_Valid(t *testing.T) {
	assert.True(t, Coord('A', 1).Valid())
	assert.True(t, Coord('Z', 99).Valid())
	assert.False(t, Coord('A', 0).Valid())
	assert.False(t, Coord('A', 100).Valid())
	assert.False(t, Coord('a', 5).Valid())
	assert.False(t, Coord('@', 5).Valid())
}

func TestCoordinate_Offset(t *testing.T) {
	c, ok := Coord('I', 5).Offset(1, 0)
	require.True(t, ok)
	assert.Equal(t, Coord('J', 5), c)

	c, ok = Coord('I', 5).Offset(-1, 2)
	require.True(t, ok)
	assert.Equal(t, Coord('H', 7), c)

	_, ok = Coord('A', 1).Offset(-1, 0)
	assert.False(t, ok)
	_, ok = Coord('A', 1).Offset(0, -1)
	assert.False(t, ok)
	_, ok = Coord('Z', 99).Offset(1, 0)
	assert.False(t, ok)
}

func TestParseCoordinate(t *testing.T) {
	c, err := ParseCoordinate("I5")
	require.NoError(t, err)
	assert.Equal(t, Coord('I', 5), c)

	c, err = ParseCoordinate("T24")
	require.NoError(t, err)
	assert.Equal(t, Coord('T', 24), c)

	for _, bad := range []string{"", "I", "5", "I0", "Ix", "i5", "AA5"} {
		_, err := ParseCoordinate(bad)
		assert.Error(t, err, "expected %q to be rejected", bad)
	}
}

func TestPropertyParseCoordinateRoundTrips(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		col := byte(rapid.IntRange(int(MinCol), int(MaxCol)).Draw(t, "col"))
		row := rapid.IntRange(MinRow, MaxRow).Draw(t, "row")
		c := Coord(col, row)
		parsed, err := ParseCoordinate(c.String())
		assert.NoError(t, err)
		assert.Equal(t, c, parsed)
	})
}

func TestDoor_Connects(t *testing.T) {
	d := Door{Entry: Coord('E', 2), Exit: Coord('D', 2)}
	assert.True(t, d.Connects(Coord('E', 2), Coord('D', 2)))
	assert.True(t, d.Connects(Coord('D', 2), Coord('E', 2)))
	assert.False(t, d.Connects(Coord('E', 2), Coord('E', 3)))
}

func TestRoom_Contains(t *testing.T) {
	deck := validTestDeck()
	hold := deck.Rooms[0]
	assert.True(t, hold.Contains(Coord('B', 2)))
	assert.False(t, hold.Contains(Coord('E', 2)))
}

func TestDeck_Validate_Valid(t *testing.T) {
	assert.NoError(t, validTestDeck().Validate())
}

func TestDeck_Validate_PartitionViolation(t *testing.T) {
	deck := validTestDeck()
	// Claim a Galley tile from the Hold as well.
	deck.Rooms[0].Coords = append(deck.Rooms[0].Coords, Coord('E', 2))
	err := deck.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "claimed by both")
}

func TestDeck_Validate_EmptyRoom(t *testing.T) {
	deck := validTestDeck()
	deck.Rooms[1].Coords = nil
	assert.Error(t, deck.Validate())
}

func TestDeck_Validate_DuplicateRoomName(t *testing.T) {
	deck := validTestDeck()
	deck.Rooms[1].Name = deck.Rooms[0].Name
	// Avoid tripping the partition check first.
	deck.Rooms[1].Coords = []Coordinate{Coord('H', 8)}
	assert.Error(t, deck.Validate())
}

func TestDeck_Validate_LockedRoomWithoutKey(t *testing.T) {
	deck := validTestDeck()
	deck.Rooms[1].Key = ""
	err := deck.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key")
}

func TestDeck_Validate_LockedDoorIntoKeylessRoom(t *testing.T) {
	// The Hold names no key, so a locked door could never be reopened from
	// the Galley side.
	deck := validTestDeck()
	deck.Rooms[1].Doors[0].Locked = true
	err := deck.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "names no key")

	deck.Rooms[0].Key = "Hold Key"
	assert.NoError(t, deck.Validate())
}

func TestDeck_Validate_DanglingDoorEndpoint(t *testing.T) {
	deck := validTestDeck()
	deck.Rooms[1].Doors[0].Exit = Coord('M', 20)
	err := deck.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "belongs to no room")
}

func TestDeck_Room(t *testing.T) {
	deck := validTestDeck()
	r, ok := deck.Room("Galley")
	require.True(t, ok)
	assert.True(t, r.Locked)

	_, ok = deck.Room("Engine Room")
	assert.False(t, ok)
}
