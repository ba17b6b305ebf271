package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testCatalog builds a catalog with one item of each category plus spare
// tools for capacity tests.
func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	defs := []*ItemDef{
		{Name: "Bridge Key", Category: CategoryKey, Unlocks: "Bridge"},
		{Name: "Server Key", Category: CategoryKey, Unlocks: "Server Room"},
		{Name: "Flashlight", Category: CategoryTool},
		{Name: "Knife", Category: CategoryTool},
		{Name: "Repair Tools", Category: CategoryTool},
		{Name: "Ammo", Category: CategoryTool},
		{Name: "Medkit", Category: CategoryAid, Heals: 50},
		{Name: "Navigator Rachel", Category: CategoryNPC},
	}
	c, err := NewCatalogFromDefs(defs)
	require.NoError(t, err)
	return c
}

func TestCatalog_Register_Duplicate(t *testing.T) {
	c := testCatalog(t)
	err := c.Register(&ItemDef{Name: "Medkit", Category: CategoryAid})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestCatalog_Lookup(t *testing.T) {
	c := testCatalog(t)

	d, ok := c.Item("Medkit")
	require.True(t, ok)
	assert.Equal(t, 50, d.Heals)

	_, ok = c.Item("Escape Pod")
	assert.False(t, ok)

	items := c.Items()
	assert.Equal(t, c.Len(), len(items))
	assert.Equal(t, "Bridge Key", items[0].Name, "registration order is stable")

	keys := c.Keys()
	require.Len(t, keys, 2)
	assert.Equal(t, "Server Key", keys[1].Name)
}

func TestPack_AddAndRemove(t *testing.T) {
	p := NewPack(testCatalog(t), DefaultCapacity)

	require.NoError(t, p.Add("Medkit"))
	require.NoError(t, p.Add("Knife"))
	assert.True(t, p.Has("Medkit"))
	assert.Equal(t, 2, p.Used())
	assert.Equal(t, []string{"Medkit", "Knife"}, p.Items())

	require.NoError(t, p.Remove("Medkit"))
	assert.False(t, p.Has("Medkit"))
	assert.ErrorIs(t, p.Remove("Medkit"), ErrItemNotHeld)
}

func TestPack_RejectsUnknownAndDuplicate(t *testing.T) {
	p := NewPack(testCatalog(t), DefaultCapacity)

	assert.ErrorIs(t, p.Add("Escape Pod"), ErrUnknownItem)

	require.NoError(t, p.Add("Knife"))
	assert.ErrorIs(t, p.Add("Knife"), ErrDuplicateItem)
	assert.Equal(t, 1, p.Used())
}

func TestPack_KeysAreCapacityExempt(t *testing.T) {
	p := NewPack(testCatalog(t), 1)

	require.NoError(t, p.Add("Medkit"))
	assert.Equal(t, 1, p.Used())

	require.NoError(t, p.Add("Bridge Key"))
	require.NoError(t, p.Add("Server Key"))
	assert.Equal(t, 1, p.Used())
	assert.Equal(t, []string{"Bridge Key", "Server Key"}, p.KeyNames())
}

func TestPack_NPCCostsTwoUnits(t *testing.T) {
	p := NewPack(testCatalog(t), DefaultCapacity)

	// Fill 4 of 5 units, then the two-unit NPC must not fit.
	for _, name := range []string{"Flashlight", "Knife", "Repair Tools", "Ammo"} {
		require.NoError(t, p.Add(name))
	}
	require.Equal(t, 4, p.Used())

	before := p.Items()
	err := p.Add("Navigator Rachel")
	assert.ErrorIs(t, err, ErrInventoryFull)
	assert.Equal(t, before, p.Items(), "failed add must not mutate the pack")

	// With a unit freed there is room for the NPC.
	require.NoError(t, p.Remove("Ammo"))
	require.NoError(t, p.Add("Navigator Rachel"))
	assert.Equal(t, 5, p.Used())
}
