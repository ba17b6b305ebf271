package command

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/forgottenship/game/internal/game/dice"
	"github.com/forgottenship/game/internal/game/inventory"
	"github.com/forgottenship/game/internal/game/session"
	"github.com/forgottenship/game/internal/game/world"
	"github.com/forgottenship/game/internal/state"
)

func handlerDeck(t *testing.T) *world.Deck {
	t.Helper()
	deck := &world.Deck{
		Name: "Test Ship",
		Rooms: []*world.Room{
			{
				Name:        "Cargo Bay",
				Description: "Stacked containers.",
				Coords: []world.Coordinate{
					world.Coord('I', 5), world.Coord('J', 5),
					world.Coord('I', 6), world.Coord('J', 6),
					world.Coord('I', 7), world.Coord('J', 7),
				},
			},
			{
				Name:        "Bridge",
				Description: "Dead consoles.",
				Locked:      true,
				Key:         "Bridge Key",
				Coords:      []world.Coordinate{world.Coord('I', 8), world.Coord('J', 8)},
				Doors: []world.Door{
					{Label: "Bridge Hatch", Entry: world.Coord('I', 8), Exit: world.Coord('I', 7)},
				},
			},
		},
	}
	require.NoError(t, deck.Validate())
	return deck
}

func handlerCatalog(t *testing.T) *inventory.Catalog {
	t.Helper()
	c, err := inventory.NewCatalogFromDefs([]*inventory.ItemDef{
		{Name: "Bridge Key", Category: inventory.CategoryKey, Unlocks: "Bridge"},
		{Name: "Medkit", Category: inventory.CategoryAid, Heals: 50},
	})
	require.NoError(t, err)
	return c
}

func newHandlerSession(t *testing.T) *session.Session {
	t.Helper()
	dir := t.TempDir()
	store := state.NewStore(
		filepath.Join(dir, "savegame.json"),
		filepath.Join(dir, "settings.json"),
		handlerCatalog(t),
		handlerDeck(t),
		zap.NewNop(),
	)
	require.NoError(t, store.WriteSettings(state.SettingsDocument{
		ItemPositions: map[string]map[string]world.Coordinate{
			"Cargo Bay": {"Medkit": world.Coord('J', 5)},
			"Bridge":    {"Bridge Key": world.Coord('J', 8)},
		},
	}))
	s, err := session.New(handlerDeck(t), handlerCatalog(t), store, dice.NewSeededSource(1),
		session.Options{Spawn: world.Coord('I', 5)}, zap.NewNop())
	require.NoError(t, err)
	return s
}

func TestHandleMove_DirectionCommand(t *testing.T) {
	s := newHandlerSession(t)
	out := HandleMove(s, "bow", nil)
	assert.Contains(t, out, "Cargo Bay")
	assert.Equal(t, world.Coord('I', 6), s.Player().Position)
}

func TestHandleMove_GenericWithSteps(t *testing.T) {
	s := newHandlerSession(t)
	out := HandleMove(s, "move", []string{"bow", "2"})
	assert.Contains(t, out, "I7")
	assert.Equal(t, world.Coord('I', 7), s.Player().Position)
}

func TestHandleMove_BadInput(t *testing.T) {
	s := newHandlerSession(t)
	assert.Contains(t, HandleMove(s, "move", nil), "Usage")
	assert.Contains(t, HandleMove(s, "move", []string{"sideways"}), "not a direction")
	assert.Contains(t, HandleMove(s, "bow", []string{"zero"}), "not a step count")
	assert.Contains(t, HandleMove(s, "bow", []string{"0"}), "not a step count")
}

func TestHandleMove_LockedDoorNamesKey(t *testing.T) {
	s := newHandlerSession(t)
	out := HandleMove(s, "bow", []string{"5"})
	assert.Contains(t, out, "locked")
	assert.Contains(t, out, "Bridge Key")
	assert.Equal(t, world.Coord('I', 7), s.Player().Position)
}

func TestHandleMove_PartialWalkNamesCurrentRoom(t *testing.T) {
	// A stopped walk still committed steps, so the player is told where
	// they ended up, not just why they stopped.
	s := newHandlerSession(t)

	out := HandleMove(s, "bow", []string{"5"})
	assert.Contains(t, out, "You take 2 steps.")
	assert.Contains(t, out, "You are in the Cargo Bay.")

	out = HandleMove(s, "starboard", []string{"3"})
	assert.Contains(t, out, "hull beyond")
	assert.Contains(t, out, "You are in the Cargo Bay.")
	assert.Equal(t, world.Coord('J', 7), s.Player().Position)

	// A walk stopped on its first step committed nothing and names no room.
	out = HandleMove(s, "starboard", nil)
	assert.Contains(t, out, "You do not move.")
	assert.NotContains(t, out, "You are in the")
}

func TestHandleLook_ShowsVisibleItems(t *testing.T) {
	s := newHandlerSession(t)
	out := HandleLook(s)
	assert.Contains(t, out, "Cargo Bay")
	assert.Contains(t, out, "Stacked containers.")
	assert.Contains(t, out, "Medkit")
	assert.Contains(t, out, "dark")
}

func TestHandleTakeAndDrop(t *testing.T) {
	s := newHandlerSession(t)
	assert.Contains(t, HandleTake(s, "Medkit"), "You take")
	assert.True(t, s.Player().Pack.Has("Medkit"))

	assert.Contains(t, HandleDrop(s, "Medkit"), "You drop")
	assert.False(t, s.Player().Pack.Has("Medkit"))

	out := HandleTake(s, "Bridge Key")
	assert.Contains(t, out, "not here")
}

func TestHandleStoreAndRetrieve(t *testing.T) {
	s := newHandlerSession(t)
	require.Contains(t, HandleTake(s, "Medkit"), "You take")

	assert.Contains(t, HandleStore(s, []string{"locker", "Medkit"}, "locker Medkit"), "You store")
	assert.False(t, s.Player().Pack.Has("Medkit"))

	assert.Contains(t, HandleRetrieve(s, []string{"locker", "Medkit"}, "locker Medkit"), "You take")
	assert.True(t, s.Player().Pack.Has("Medkit"))

	assert.Contains(t, HandleStore(s, []string{"locker"}, "locker"), "Usage")
}

func TestHandleUse_AidAndDoor(t *testing.T) {
	s := newHandlerSession(t)
	require.Contains(t, HandleTake(s, "Medkit"), "You take")
	s.Player().TakeDamage(60)

	out := HandleUse(s, "Medkit")
	assert.Contains(t, out, "recover")
	assert.Equal(t, 90, s.Player().Health)

	// "use door" away from a door tile reports the error.
	assert.Contains(t, HandleUse(s, "door"), "No door here")
}

func TestHandleDoor_CrossesWithKey(t *testing.T) {
	s := newHandlerSession(t)
	require.NoError(t, s.Player().Pack.Add("Bridge Key"))
	HandleMove(s, "bow", []string{"2"}) // I5 -> I7, the door tile

	out := HandleDoor(s)
	assert.Contains(t, out, "Bridge")
	assert.Equal(t, world.Coord('I', 8), s.Player().Position)
}

func TestHandleMap_MarksPlayerAndExplored(t *testing.T) {
	s := newHandlerSession(t)
	HandleMove(s, "bow", []string{"1"})
	out := HandleMap(s)

	assert.Contains(t, out, "@")
	assert.Contains(t, out, ".")
	lines := strings.Split(out, "\n")
	// Rows render bow-first: 4 rows (8 down to 5), 2 columns wide.
	assert.Len(t, lines, 4)
}

func TestHandleInventoryAndStatus(t *testing.T) {
	s := newHandlerSession(t)
	assert.Contains(t, HandleInventory(s), "You carry nothing")

	require.Contains(t, HandleTake(s, "Medkit"), "You take")
	out := HandleInventory(s)
	assert.Contains(t, out, "Medkit")
	assert.Contains(t, out, "(1/5)")

	st := HandleStatus(s)
	assert.Contains(t, st, "100/100")
	assert.Contains(t, st, "Cargo Bay")
}

func TestHandleSaveAndReset(t *testing.T) {
	s := newHandlerSession(t)
	require.Contains(t, HandleTake(s, "Medkit"), "You take")
	assert.Equal(t, "Game saved.", HandleSave(s))

	assert.Contains(t, HandleReset(s), "resets")
	assert.Empty(t, s.Player().Pack.Items())
	assert.Equal(t, world.Coord('I', 5), s.Player().Position)
}
