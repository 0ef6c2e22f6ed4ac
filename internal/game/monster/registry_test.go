package monster_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/localmud/localmud/internal/game/monster"
	"github.com/localmud/localmud/internal/game/world"
)

func koboldTemplate() *monster.Template {
	return &monster.Template{
		ID:      "kobold",
		Name:    "Kobold",
		HitDice: 1,
		HP:      4,
		Armor:   1,
		Attack:  6,
		Damage:  "1d6",
		XP:      25,
		Loot:    []string{"kobold_tooth"},
		Hostile: true,
	}
}

func testRegistry(t *testing.T) *monster.Registry {
	t.Helper()
	lib, err := monster.NewLibrary([]*monster.Template{koboldTemplate()})
	require.NoError(t, err)
	return monster.NewRegistry(lib, zaptest.NewLogger(t))
}

func TestSpawn_CopiesTemplate(t *testing.T) {
	reg := testRegistry(t)

	inst, err := reg.Spawn("kobold", "chapel_0_0_0")
	require.NoError(t, err)
	assert.Equal(t, "kobold", inst.TemplateID)
	assert.Equal(t, 4, inst.CurrentHP)
	assert.Equal(t, 4, inst.MaxHP)
	assert.Equal(t, "chapel_0_0_0", inst.RoomID)
	assert.False(t, inst.CreatedAt.IsZero())
	assert.Contains(t, inst.ID, "kobold-")
}

func TestSpawn_UniqueIDs(t *testing.T) {
	reg := testRegistry(t)

	a, err := reg.Spawn("kobold", "chapel_0_0_0")
	require.NoError(t, err)
	b, err := reg.Spawn("kobold", "chapel_0_0_0")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestSpawn_UnknownTemplate(t *testing.T) {
	reg := testRegistry(t)
	_, err := reg.Spawn("dragon", "chapel_0_0_0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown template")
}

func TestInstancesIn_SpawnOrder(t *testing.T) {
	reg := testRegistry(t)

	a, _ := reg.Spawn("kobold", "chapel_0_0_0")
	b, _ := reg.Spawn("kobold", "chapel_0_0_0")
	c, _ := reg.Spawn("kobold", "chapel_0_0_0")

	got := reg.InstancesIn("chapel_0_0_0")
	require.Len(t, got, 3)
	assert.Equal(t, []string{a.ID, b.ID, c.ID}, []string{got[0].ID, got[1].ID, got[2].ID})

	assert.Empty(t, reg.InstancesIn("elsewhere"))
}

func TestDespawn(t *testing.T) {
	reg := testRegistry(t)

	a, _ := reg.Spawn("kobold", "chapel_0_0_0")
	b, _ := reg.Spawn("kobold", "chapel_0_0_0")

	require.NoError(t, reg.Despawn(a.ID))
	_, ok := reg.Get(a.ID)
	assert.False(t, ok)

	got := reg.InstancesIn("chapel_0_0_0")
	require.Len(t, got, 1)
	assert.Equal(t, b.ID, got[0].ID)

	assert.Error(t, reg.Despawn(a.ID), "double despawn must fail")
}

func TestTemplateEdits_DoNotAffectLiveInstances(t *testing.T) {
	tmpl := koboldTemplate()
	lib, err := monster.NewLibrary([]*monster.Template{tmpl})
	require.NoError(t, err)
	reg := monster.NewRegistry(lib, zaptest.NewLogger(t))

	inst, err := reg.Spawn("kobold", "chapel_0_0_0")
	require.NoError(t, err)

	tmpl.HP = 99
	tmpl.Loot[0] = "crown"

	assert.Equal(t, 4, inst.MaxHP)
	assert.Equal(t, []string{"kobold_tooth"}, inst.Loot)
}

func TestInitRegionSpawns(t *testing.T) {
	reg := testRegistry(t)
	regions := []*world.Region{{
		ID:        "chapel",
		Name:      "The Chapel",
		StartRoom: "chapel_0_0_0",
		Rooms: map[string]*world.Room{
			"chapel_0_0_0": {
				ID: "chapel_0_0_0", Name: "Pedestal Chamber", Description: "x",
				Spawns: []world.SpawnConfig{{Template: "kobold", Count: 2}},
			},
			"chapel_1_0_0": {
				ID: "chapel_1_0_0", Name: "Altar Room", Description: "x",
				Spawns: []world.SpawnConfig{{Template: "ghost", Count: 1}}, // unknown, skipped
			},
		},
	}}

	reg.InitRegionSpawns(regions)
	assert.Len(t, reg.InstancesIn("chapel_0_0_0"), 2)
	assert.Empty(t, reg.InstancesIn("chapel_1_0_0"))
	assert.Equal(t, 2, reg.Count())
}

func TestTemplateValidate(t *testing.T) {
	tmpl := koboldTemplate()
	require.NoError(t, tmpl.Validate())

	bad := koboldTemplate()
	bad.Damage = "6"
	assert.Error(t, bad.Validate())

	bad = koboldTemplate()
	bad.HP = 0
	assert.Error(t, bad.Validate())
}

func TestLoadTemplateFromBytes(t *testing.T) {
	tmpl, err := monster.LoadTemplateFromBytes([]byte(`
id: Kobold
name: Kobold
hit_dice: 1
hp: 4
armor: 1
attack: 6
damage: 1d6
xp: 25
loot: [Kobold Tooth]
hostile: true
abilities:
  strength: 8
  dexterity: 13
`))
	require.NoError(t, err)
	assert.Equal(t, "kobold", tmpl.ID)
	assert.Equal(t, []string{"kobold_tooth"}, tmpl.Loot)
	assert.Equal(t, 13, tmpl.Abilities.Dexterity)
}

func TestHealthDescription(t *testing.T) {
	inst := monster.NewInstance(koboldTemplate(), "chapel_0_0_0")
	assert.Equal(t, "unharmed", inst.HealthDescription())
	inst.ApplyDamage(2)
	assert.Equal(t, "badly wounded", inst.HealthDescription())
	inst.ApplyDamage(99)
	assert.Equal(t, 0, inst.CurrentHP)
	assert.Equal(t, "dead", inst.HealthDescription())
}
