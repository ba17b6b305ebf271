package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/forgottenship/game/internal/game/dice"
	"github.com/forgottenship/game/internal/game/inventory"
	"github.com/forgottenship/game/internal/game/player"
	"github.com/forgottenship/game/internal/game/session"
	"github.com/forgottenship/game/internal/game/world"
	"github.com/forgottenship/game/internal/state"
)

func newMainTestSession(t *testing.T, seed func(*state.Store)) *session.Session {
	t.Helper()
	deck := &world.Deck{
		Name: "Test Ship",
		Rooms: []*world.Room{{
			Name:        "Cargo Bay",
			Description: "Crates.",
			Coords: []world.Coordinate{
				world.Coord('I', 5), world.Coord('J', 5),
			},
		}},
	}
	require.NoError(t, deck.Validate())
	catalog, err := inventory.NewCatalogFromDefs([]*inventory.ItemDef{
		{Name: "Medkit", Category: inventory.CategoryAid, Heals: 50},
	})
	require.NoError(t, err)

	dir := t.TempDir()
	store := state.NewStore(
		filepath.Join(dir, "savegame.json"),
		filepath.Join(dir, "settings.json"),
		catalog, deck, zap.NewNop(),
	)
	if seed != nil {
		seed(store)
	}
	sess, err := session.New(deck, catalog, store, dice.NewSeededSource(1),
		session.Options{Spawn: world.Coord('I', 5)}, zap.NewNop())
	require.NoError(t, err)
	return sess
}

func TestDeathNotice_LivingExplorer(t *testing.T) {
	sess := newMainTestSession(t, nil)
	assert.Empty(t, deathNotice(sess, zap.NewNop()))
}

func TestDeathNotice_ResetsDeadSaveBeforeAnyCommand(t *testing.T) {
	// A save document can carry zero health; the restored explorer must be
	// reset before they get to act at all.
	sess := newMainTestSession(t, func(store *state.Store) {
		require.NoError(t, store.WriteSave(state.SaveDocument{
			Position:  world.Coord('J', 5),
			Inventory: []string{},
			Health:    0,
		}))
	})
	require.False(t, sess.Player().IsAlive())

	notice := deathNotice(sess, zap.NewNop())
	assert.NotEmpty(t, notice)
	assert.True(t, sess.Player().IsAlive())
	assert.Equal(t, player.MaxHealth, sess.Player().Health)
	assert.Equal(t, world.Coord('I', 5), sess.Player().Position)
}
