package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const regionYAML = `
region:
  id: Chapel
  name: The Chapel
  start_room: chapel_0_0_0
  rooms:
    - coords: {x: 0, y: 0, z: 0}
      name: Pedestal Chamber
      description: A quiet chamber with a glowing orb resting on a pedestal.
      look_description: Dust motes float in the air.
      items: [Glowing Orb]
      exits:
        east: chapel_1_0_0
      examine_targets:
        pedestal: The pedestal is carved from obsidian.
    - id: chapel_1_0_0
      name: Altar Room
      description: An ancient altar stands in silence.
      exits:
        west: Chapel 0 0 0
      triggers:
        - condition: requires_item
          item: Rusty Key
      spawns:
        - template: Kobold
          count: 2
`

func TestLoadRegionFromBytes(t *testing.T) {
	region, err := LoadRegionFromBytes([]byte(regionYAML))
	require.NoError(t, err)

	assert.Equal(t, "chapel", region.ID)
	assert.Equal(t, "chapel_0_0_0", region.StartRoom)
	require.Len(t, region.Rooms, 2)

	// Coordinate-addressed room collapses to the canonical key.
	pedestal, ok := region.Rooms["chapel_0_0_0"]
	require.True(t, ok)
	assert.Equal(t, []string{"glowing_orb"}, pedestal.Items)
	assert.Equal(t, "chapel_1_0_0", pedestal.Exits[East])
	assert.Equal(t, "Dust motes float in the air.", pedestal.LookDescription)

	altar := region.Rooms["chapel_1_0_0"]
	require.NotNil(t, altar)
	// Free-form exit target is normalized at the load boundary.
	assert.Equal(t, "chapel_0_0_0", altar.Exits[West])
	require.Len(t, altar.Triggers, 1)
	assert.Equal(t, CondRequiresItem, altar.Triggers[0].Condition)
	assert.Equal(t, "rusty_key", altar.Triggers[0].Item)
	require.Len(t, altar.Spawns, 1)
	assert.Equal(t, "kobold", altar.Spawns[0].Template)
	assert.Equal(t, 2, altar.Spawns[0].Count)
	// Rooms with no look_description fall back to the short description.
	assert.Equal(t, altar.Description, altar.LookDescription)
}

func TestLoadRegionFromBytes_MissingAddress(t *testing.T) {
	_, err := LoadRegionFromBytes([]byte(`
region:
  id: broken
  name: Broken
  start_room: a
  rooms:
    - name: No Address
      description: x
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "needs an id or coords")
}

func TestLoadRegionFromBytes_BadDirection(t *testing.T) {
	_, err := LoadRegionFromBytes([]byte(`
region:
  id: broken
  name: Broken
  start_room: a
  rooms:
    - id: a
      name: A
      description: x
      exits:
        sideways: b
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown exit direction")
}

func TestRegionValidate_StartRoomMissing(t *testing.T) {
	region := &Region{
		ID:        "r",
		Name:      "R",
		StartRoom: "missing",
		Rooms: map[string]*Room{
			"a": {ID: "a", Name: "A", Description: "x"},
		},
	}
	err := region.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start_room")
}
