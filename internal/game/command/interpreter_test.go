package command

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/localmud/localmud/internal/game/item"
	"github.com/localmud/localmud/internal/game/monster"
	"github.com/localmud/localmud/internal/game/npc"
	"github.com/localmud/localmud/internal/game/player"
	"github.com/localmud/localmud/internal/game/session"
	"github.com/localmud/localmud/internal/game/world"
	"github.com/localmud/localmud/internal/scripting"
)

// scriptedSource returns preset values from Intn, then zeros.
type scriptedSource struct {
	values []int
	pos    int
}

func (s *scriptedSource) Intn(n int) int {
	if s.pos >= len(s.values) {
		return 0
	}
	v := s.values[s.pos]
	s.pos++
	return v % n
}

func testRegion() *world.Region {
	return &world.Region{
		ID:        "chapel",
		Name:      "The Chapel",
		StartRoom: "chapel_0_0_0",
		Rooms: map[string]*world.Room{
			"chapel_0_0_0": {
				ID:              "chapel_0_0_0",
				RegionID:        "chapel",
				Name:            "Pedestal Chamber",
				Description:     "A quiet chamber.",
				LookDescription: "A quiet chamber. A stone pedestal waits in its center.",
				Exits: map[world.Direction]string{
					world.East:  "chapel_1_0_0",
					world.North: "chapel_0_9_9", // intentionally dangling
					world.South: "chapel_0_2_0",
				},
				Items: []string{"rusty_key", "glowing_orb"},
				ExamineTargets: map[string]string{
					"pedestal": "The pedestal bears a shallow circular recess.",
				},
				Visited: true,
			},
			"chapel_1_0_0": {
				ID:              "chapel_1_0_0",
				RegionID:        "chapel",
				Name:            "Altar Room",
				Description:     "An ancient altar.",
				LookDescription: "An ancient altar crusted with wax.",
				Exits:           map[world.Direction]string{world.West: "chapel_0_0_0"},
				Triggers: []world.Trigger{
					{Condition: world.CondRequiresItem, Item: "rusty_key"},
				},
			},
			"chapel_0_2_0": {
				ID:              "chapel_0_2_0",
				RegionID:        "chapel",
				Name:            "Sanctuary",
				Description:     "A hushed sanctuary.",
				LookDescription: "A hushed sanctuary lined with reliquaries.",
				Exits:           map[world.Direction]string{world.North: "chapel_0_0_0"},
			},
		},
	}
}

type fixture struct {
	in       *Interpreter
	player   *player.Player
	sess     *session.State
	graph    *world.Graph
	monsters *monster.Registry
	src      *scriptedSource
}

// newFixture builds an interpreter over a three-room chapel with a kobold in
// the altar room and Father Ansel in the sanctuary.
func newFixture(t *testing.T, logger *zap.Logger) *fixture {
	t.Helper()
	if logger == nil {
		logger = zaptest.NewLogger(t)
	}

	graph, err := world.NewGraph([]*world.Region{testRegion()}, logger)
	require.NoError(t, err)

	items, err := item.NewRegistry([]*item.Def{
		{
			ID: "rusty_key", Name: "rusty key",
			Description: "A key gnawed by rust.",
			ExamineText: "Deep teeth, old iron. It has opened something important.",
			Use: &item.UseEffect{
				Effect: item.EffectUnlock, Location: "chapel_1_0_0",
				Target: "door", Message: "The lock grinds open.",
			},
		},
		{
			ID: "glowing_orb", Name: "glowing orb",
			Description: "It hums faintly.",
			Use: &item.UseEffect{
				Effect: item.EffectWin, Location: "chapel_0_2_0",
				Message: "Light floods the chapel. The long vigil is over.",
			},
		},
	})
	require.NoError(t, err)

	library, err := monster.NewLibrary([]*monster.Template{
		{
			ID: "kobold", Name: "Kobold", HitDice: 1, HP: 4, Armor: 1,
			Attack: 6, Damage: "1d6", XP: 25, Loot: []string{"kobold_tooth"},
			Hostile: true,
		},
	})
	require.NoError(t, err)
	monsters := monster.NewRegistry(library, logger)
	_, err = monsters.Spawn("kobold", "chapel_1_0_0")
	require.NoError(t, err)

	ansel, err := npc.LoadDefinitionFromBytes([]byte(`
id: father_ansel
name: Father Ansel
aliases: [ansel]
room: chapel_0_2_0
greeting: "Welcome, child."
topics:
  marrow:
    - "The marrow remembers."
`))
	require.NoError(t, err)

	src := &scriptedSource{}
	p := &player.Player{
		Name: "Wren", Background: "gravedigger", Class: "fighter",
		Abilities: player.AbilityScores{
			Strength: 13, Dexterity: 10, Constitution: 14,
			Intelligence: 10, Wisdom: 10, Charisma: 10,
		},
		HP: 8, MaxHP: 8, Gold: 100, Location: "chapel_0_0_0",
	}
	sess := session.New("chapel_0_0_0", "The chapel door closes behind you.")

	in, err := NewInterpreter(Deps{
		Graph:    graph,
		Items:    items,
		Monsters: monsters,
		NPCs: npc.NewResolver(npc.NewRoster([]*npc.Definition{ansel}),
			scripting.NewEvaluator(0, logger), src, logger),
		Player:     p,
		Session:    sess,
		Source:     src,
		Logger:     logger,
		DirtyWords: []string{"damn", "hell"},
	})
	require.NoError(t, err)

	return &fixture{in: in, player: p, sess: sess, graph: graph, monsters: monsters, src: src}
}

func TestExecute_EmptyInput(t *testing.T) {
	f := newFixture(t, nil)
	assert.Equal(t, []string{"No command entered."}, f.in.Execute("   "))
}

func TestExecute_UnknownCommand(t *testing.T) {
	f := newFixture(t, nil)
	assert.Equal(t, []string{"Unknown command."}, f.in.Execute("defenestrate the altar"))
}

func TestExecute_DirtyWordPreemptsDispatch(t *testing.T) {
	f := newFixture(t, nil)

	// The input also holds a valid verb; the filter still wins.
	lines := f.in.Execute("go damn north")
	assert.Equal(t, "Let's try to keep it clean.", lines[0])
	assert.Equal(t, 1, f.player.CurseCount)
	assert.Equal(t, "chapel_0_0_0", f.sess.CurrentRoom)

	f.in.Execute("hell")
	assert.Equal(t, 2, f.player.CurseCount)
}

func TestExecute_DirectionShorthandRewrite(t *testing.T) {
	f := newFixture(t, nil)
	f.player.AddItem("rusty_key")

	lines := f.in.Execute("e")
	require.NotEmpty(t, lines)
	assert.Contains(t, lines[0], "You go east")
	assert.Equal(t, "chapel_1_0_0", f.sess.CurrentRoom)
}

func TestGo_NoExit(t *testing.T) {
	f := newFixture(t, nil)
	assert.Equal(t, []string{"You can't go that way."}, f.in.Execute("go up"))
}

func TestGo_BrokenLinkKeepsPlayerAndLogs(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	f := newFixture(t, zap.New(core))

	lines := f.in.Execute("go north")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "threshold dissolves")
	assert.Equal(t, "chapel_0_0_0", f.sess.CurrentRoom)
	assert.Equal(t, "chapel_0_0_0", f.player.Location)

	entries := logs.FilterMessage("broken room link").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "chapel_0_9_9", entries[0].ContextMap()["target"])
}

func TestGo_LockedWithoutKey(t *testing.T) {
	f := newFixture(t, nil)

	lines := f.in.Execute("go east")
	require.Len(t, lines, 1)
	assert.Equal(t, "The way is locked. You need the rusty key.", lines[0])
	assert.Equal(t, "chapel_0_0_0", f.sess.CurrentRoom)
}

func TestGo_FirstVisitAwardsXPAndDescribes(t *testing.T) {
	f := newFixture(t, nil)

	lines := f.in.Execute("go south")
	require.Len(t, lines, 3)
	assert.Equal(t, "You go south. - Sanctuary", lines[0])
	assert.Equal(t, "You gain 1 XP for discovering Sanctuary.", lines[1])
	assert.Contains(t, lines[2], "reliquaries")
	assert.Equal(t, 1, f.player.XP)

	// Revisit is terse without verbose travel.
	f.in.Execute("go north")
	lines = f.in.Execute("go south")
	require.Len(t, lines, 1)
	assert.Equal(t, 1, f.player.XP)

	f.player.VerboseTravel = true
	f.in.Execute("go north")
	lines = f.in.Execute("go south")
	require.Len(t, lines, 2)
}

func TestLook(t *testing.T) {
	f := newFixture(t, nil)

	lines := f.in.Execute("look")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "stone pedestal")
	assert.Equal(t, "Items here: rusty key, glowing orb", lines[1])
	assert.Equal(t, "Exits: north, south, east", lines[2])
}

func TestLook_ShowsNPCsAndMonsters(t *testing.T) {
	f := newFixture(t, nil)

	f.sess.CurrentRoom = "chapel_0_2_0"
	lines := f.in.Execute("l")
	assert.Contains(t, lines, "You see here: Father Ansel")

	f.sess.CurrentRoom = "chapel_1_0_0"
	lines = f.in.Execute("look")
	assert.Contains(t, lines, "Lurking here: Kobold (unharmed)")
}

func TestExamine_InventoryBeatsRoom(t *testing.T) {
	f := newFixture(t, nil)

	lines := f.in.Execute("examine pedestal")
	assert.Equal(t, []string{"The pedestal bears a shallow circular recess."}, lines)

	f.in.Execute("take rusty key")
	lines = f.in.Execute("x rusty key")
	assert.Equal(t, []string{"Deep teeth, old iron. It has opened something important."}, lines)

	lines = f.in.Execute("examine the void")
	assert.Equal(t, []string{"You see nothing special."}, lines)
}

func TestTakeAndDrop(t *testing.T) {
	f := newFixture(t, nil)

	lines := f.in.Execute("take rusty key")
	assert.Equal(t, []string{"You take the rusty key."}, lines)
	assert.True(t, f.player.HasItem("rusty_key"))

	room, _ := f.graph.Lookup("chapel_0_0_0")
	assert.False(t, room.HasItem("rusty_key"))

	lines = f.in.Execute("take rusty key")
	assert.Equal(t, []string{"That item isn't here."}, lines)

	lines = f.in.Execute("drop rusty key")
	assert.Equal(t, []string{"You drop the rusty key."}, lines)
	assert.False(t, f.player.HasItem("rusty_key"))
	assert.True(t, room.HasItem("rusty_key"))

	lines = f.in.Execute("drop rusty key")
	assert.Equal(t, []string{"You don't have that item."}, lines)
}

func TestUse_LocationGatedEffects(t *testing.T) {
	f := newFixture(t, nil)
	f.in.Execute("take rusty key")
	f.in.Execute("take glowing orb")

	lines := f.in.Execute("use rusty key")
	assert.Equal(t, []string{"You can't use the rusty key here."}, lines)

	f.in.Execute("go east")
	lines = f.in.Execute("use rusty key")
	assert.Equal(t, []string{"The lock grinds open."}, lines)
	room, _ := f.graph.Lookup("chapel_1_0_0")
	assert.True(t, room.Flags["door_unlocked"])

	f.in.Execute("go west")
	f.in.Execute("go south")
	require.False(t, f.in.Won())
	lines = f.in.Execute("use glowing orb")
	assert.Equal(t, []string{"Light floods the chapel. The long vigil is over."}, lines)
	assert.True(t, f.in.Won())

	lines = f.in.Execute("use kobold tooth")
	assert.Equal(t, []string{"You don't have that item."}, lines)
}

func TestInventory(t *testing.T) {
	f := newFixture(t, nil)

	assert.Equal(t, []string{"Your inventory is empty."}, f.in.Execute("inventory"))

	f.in.Execute("take rusty key")
	lines := f.in.Execute("i")
	require.Len(t, lines, 2)
	assert.Equal(t, "You are carrying:", lines[0])
	assert.Equal(t, "- rusty key: A key gnawed by rust.", lines[1])
}

func TestTalk(t *testing.T) {
	f := newFixture(t, nil)

	lines := f.in.Execute("talk")
	assert.Contains(t, lines[0], "Talk to whom?")

	f.in.Execute("go south")
	lines = f.in.Execute("talk to ansel")
	assert.Contains(t, lines[0], "Welcome, child")

	lines = f.in.Execute("talk to ansel about marrow")
	assert.Contains(t, lines[0], "The marrow remembers")

	lines = f.in.Execute("talk to the bones")
	assert.Contains(t, lines[0], "don't see anyone named")
}

func TestAttack_KillAwardsAndDespawns(t *testing.T) {
	f := newFixture(t, nil)
	f.in.Execute("take rusty key")
	f.in.Execute("go east")

	// Roll 11+1=12 damage kills the 4 HP kobold outright.
	f.src.values = []int{11}
	f.src.pos = 0
	lines := f.in.Execute("attack kobold")

	assert.Contains(t, lines, "You have slain Kobold!")
	assert.Contains(t, lines, "You gain 25 XP.")
	assert.Equal(t, 26, f.player.XP) // 25 kill + 1 first-visit
	assert.Empty(t, f.monsters.InstancesIn("chapel_1_0_0"))

	room, _ := f.graph.Lookup("chapel_1_0_0")
	assert.True(t, room.HasItem("kobold_tooth"))
}

func TestAttack_SurvivorRetaliates(t *testing.T) {
	f := newFixture(t, nil)
	f.in.Execute("take rusty key")
	f.in.Execute("go east")

	// Player roll 2 minus armor 1 wounds; kobold rolls 6 against a +1
	// endurance modifier for 5 damage.
	f.src.values = []int{1, 5}
	f.src.pos = 0
	lines := f.in.Execute("attack kobold")

	assert.Contains(t, lines, "Kobold attacks you for 5 damage.")
	assert.Equal(t, 3, f.player.HP)
	require.Len(t, f.monsters.InstancesIn("chapel_1_0_0"), 1)
}

func TestAttack_NoTarget(t *testing.T) {
	f := newFixture(t, nil)
	assert.Equal(t, []string{"No such target here."}, f.in.Execute("attack kobold"))
	assert.Equal(t, []string{"Attack what?"}, f.in.Execute("attack"))
}

func TestCharacterSheet(t *testing.T) {
	f := newFixture(t, nil)
	f.player.CurseCount = 2

	lines := f.in.Execute("character")
	assert.Contains(t, lines, "Name: Wren")
	assert.Contains(t, lines, "HP: 8/8")
	assert.Contains(t, lines, "Gold: 100")
	assert.Contains(t, lines, "  strength: 13 (+1)")
	assert.Contains(t, lines, "  constitution: 14 (+1)")
	assert.Contains(t, lines, "Curses: 2")
}

func TestHelp(t *testing.T) {
	f := newFixture(t, nil)

	lines := f.in.Execute("help")
	assert.Equal(t, "Available commands:", lines[0])
	assert.Contains(t, lines, "- go")
	assert.Contains(t, lines, "- attack")
	assert.Equal(t, "Type HELP [COMMAND] for details.", lines[len(lines)-1])

	lines = f.in.Execute("help go")
	assert.Contains(t, lines[0], "GO [direction]")

	lines = f.in.Execute("help juggle")
	assert.Equal(t, []string{"No detailed help for 'juggle'."}, lines)
}

func TestSystemVerbs(t *testing.T) {
	f := newFixture(t, nil)

	assert.Contains(t, f.in.Execute("about")[0], "LocalMUD")
	assert.Equal(t, []string{"MOTD: The chapel door closes behind you."}, f.in.Execute("motd"))

	f.sess.Append("old line")
	assert.Equal(t, []string{"Screen cleared."}, f.in.Execute("clear"))

	assert.False(t, f.sess.Quitting)
	f.in.Execute("quit")
	assert.True(t, f.sess.Quitting)
}

func TestDebugVerbs(t *testing.T) {
	f := newFixture(t, nil)

	assert.Equal(t, []string{"Debug mode is not enabled."}, f.in.Execute("debug heal"))

	f.player.DebugMode = true
	f.player.HP = 2
	lines := f.in.Execute("debug heal")
	assert.Equal(t, []string{"Player healed to full HP (8/8)."}, lines)

	lines = f.in.Execute("debug givegold 50")
	assert.Equal(t, []string{"Gave 50 gold. Player now has 150 gold."}, lines)
	assert.Equal(t, []string{"Usage: DEBUG GIVEGOLD <amount>"}, f.in.Execute("debug givegold lots"))

	lines = f.in.Execute("debug spawn kobold")
	assert.Equal(t, []string{"Spawned Kobold."}, lines)
	require.Len(t, f.monsters.InstancesIn("chapel_0_0_0"), 1)

	lines = f.in.Execute("debug spawn dragon")
	assert.Equal(t, []string{"Unknown monster template 'dragon'."}, lines)

	lines = f.in.Execute("debug roll 2d4+1")
	assert.Equal(t, []string{"2d4+1 → [1 1] +1 = 3"}, lines)
	assert.Equal(t, []string{"Bad dice expression 'banana'."}, f.in.Execute("debug roll banana"))
	assert.Equal(t, []string{"Usage: DEBUG ROLL <dice>"}, f.in.Execute("debug roll"))

	assert.Equal(t, []string{"Unknown debug action: dance"}, f.in.Execute("debug dance"))
}

func TestExecute_AppendsToSessionLog(t *testing.T) {
	f := newFixture(t, nil)

	f.in.Execute("look")
	f.in.Execute("motd")
	log := strings.Join(f.sess.Lines(), "\n")
	assert.Contains(t, log, "stone pedestal")
	assert.Contains(t, log, "MOTD:")
}
