package command

import (
	"strings"

	"go.uber.org/zap"

	"github.com/localmud/localmud/internal/game/dice"
	"github.com/localmud/localmud/internal/game/item"
	"github.com/localmud/localmud/internal/game/monster"
	"github.com/localmud/localmud/internal/game/npc"
	"github.com/localmud/localmud/internal/game/player"
	"github.com/localmud/localmud/internal/game/session"
	"github.com/localmud/localmud/internal/game/world"
)

// Version is the release identifier shown by the about verb.
const Version = "v0.4.0"

// devNote is shown alongside the version.
const devNote = "Lovingly hand-dug, one room at a time."

// Deps collects everything the interpreter orchestrates.
type Deps struct {
	Graph    *world.Graph
	Items    item.Registry
	Monsters *monster.Registry
	NPCs     *npc.Resolver
	Player   *player.Player
	Session  *session.State
	Source   dice.Source
	Logger   *zap.Logger
	// DirtyWords is the denylist; a hit anywhere in the input pre-empts
	// dispatch entirely.
	DirtyWords []string
}

// Interpreter dispatches player input against the verb table. It is the only
// component that mutates more than one domain object per turn.
type Interpreter struct {
	graph    *world.Graph
	items    item.Registry
	monsters *monster.Registry
	npcs     *npc.Resolver
	player   *player.Player
	sess     *session.State
	roller   *dice.Roller
	logger   *zap.Logger
	registry *Registry
	dirty    map[string]bool
	won      bool
}

// NewInterpreter wires the verb table to its dependencies.
//
// Precondition: every Deps field except DirtyWords must be non-nil.
func NewInterpreter(deps Deps) (*Interpreter, error) {
	registry, err := NewRegistry(BuiltinCommands())
	if err != nil {
		return nil, err
	}
	dirty := make(map[string]bool, len(deps.DirtyWords))
	for _, w := range deps.DirtyWords {
		dirty[strings.ToLower(w)] = true
	}
	return &Interpreter{
		graph:    deps.Graph,
		items:    deps.Items,
		monsters: deps.Monsters,
		npcs:     deps.NPCs,
		player:   deps.Player,
		sess:     deps.Session,
		roller:   dice.NewLoggedRoller(deps.Source, deps.Logger),
		logger:   deps.Logger,
		registry: registry,
		dirty:    dirty,
	}, nil
}

// Won reports whether a win effect has fired this session.
func (in *Interpreter) Won() bool { return in.won }

// Execute runs one full turn: dispatch the input, then roll NPC idle
// ambience for the room the player ended the turn in. Every input produces at
// least one line; arbitrary garbage is answered, never errored.
func (in *Interpreter) Execute(input string) []string {
	in.sess.NextTurn()
	lines := in.dispatch(input, 0)
	if !in.sess.Quitting {
		lines = append(lines, in.npcs.IdleLines(in.sess.CurrentRoom)...)
	}
	in.sess.Append(lines...)
	return lines
}

// dispatch tokenizes and routes one command. depth guards the direction
// shorthand rewrite: "n" becomes "go n" and is re-dispatched exactly once.
func (in *Interpreter) dispatch(input string, depth int) []string {
	tokens := strings.Fields(strings.ToLower(input))

	// The dirty-word filter runs before anything else; a hit never reaches
	// verb dispatch even when the input also holds a valid verb.
	for _, w := range tokens {
		if in.dirty[w] {
			in.player.IncrementCurse()
			in.logger.Debug("denylisted token",
				zap.String("token", w),
				zap.Int("curse_count", in.player.CurseCount))
			return []string{
				"Let's try to keep it clean.",
				"*The narrator sighs and adjusts your character sheet.*",
			}
		}
	}

	if len(tokens) == 0 {
		return []string{"No command entered."}
	}

	verb := tokens[0]
	if _, isDir := world.ParseDirection(verb); isDir && depth == 0 {
		if _, isVerb := in.registry.Resolve(verb); !isVerb {
			return in.dispatch("go "+verb, depth+1)
		}
	}

	cmd, ok := in.registry.Resolve(verb)
	if !ok {
		return []string{"Unknown command."}
	}
	return cmd.Handler(in, tokens[1:])
}

// currentRoom resolves the session's room. The session location always comes
// from the graph, so a miss means corrupted state; the caller gets nil and a
// diagnostic entry is recorded.
func (in *Interpreter) currentRoom() *world.Room {
	room, ok := in.graph.Lookup(in.sess.CurrentRoom)
	if !ok {
		in.logger.Error("session room missing from graph",
			zap.String("room", in.sess.CurrentRoom))
		return nil
	}
	return room
}
