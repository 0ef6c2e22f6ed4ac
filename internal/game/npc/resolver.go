package npc

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/localmud/localmud/internal/game/dice"
	"github.com/localmud/localmud/internal/game/player"
	"github.com/localmud/localmud/internal/scripting"
)

// Resolver turns a talk command into dialogue lines.
type Resolver struct {
	roster    *Roster
	evaluator *scripting.Evaluator
	src       dice.Source
	logger    *zap.Logger
}

// NewResolver creates a Resolver.
//
// Precondition: all arguments must be non-nil.
func NewResolver(roster *Roster, evaluator *scripting.Evaluator, src dice.Source, logger *zap.Logger) *Resolver {
	return &Resolver{roster: roster, evaluator: evaluator, src: src, logger: logger}
}

// Talk resolves a conversation with the named NPC in the player's room.
//
// Resolution order:
//  1. No NPC in the room answers to name: a "no one here" line.
//  2. Triggers, in authored order; the first whose condition evaluates true
//     wins. A malformed condition is logged and treated as false.
//  3. The named topic, picking one reply variant uniformly at random.
//  4. The NPC's fallback replies, when it has any. Fallback covers both an
//     unknown topic and no topic at all.
//  5. The greeting.
//  6. A "nothing to say" line.
//
// Postcondition: always returns a non-empty line; dialogue never errors out
// of the session.
func (r *Resolver) Talk(p *player.Player, roomID, name, topic string) string {
	def := r.roster.Find(roomID, name)
	if def == nil {
		return fmt.Sprintf("You don't see anyone named '%s' here.", name)
	}

	facts := factsFor(p)
	for _, trig := range def.Triggers {
		ok, err := r.evaluator.Eval(trig.Condition, facts)
		if err != nil {
			// Already logged by the evaluator; the trigger is skipped.
			continue
		}
		if ok {
			return r.say(def, trig.Response)
		}
	}

	if topic != "" {
		if variants, found := def.Topics[topic]; found {
			return r.say(def, r.pick(variants))
		}
	}
	if len(def.Fallback) > 0 {
		return r.say(def, r.pick(def.Fallback))
	}

	if def.Greeting != "" {
		return r.say(def, def.Greeting)
	}
	return fmt.Sprintf("%s has nothing to say.", def.Name)
}

// NamesIn returns the display names of the NPCs in roomID, in definition
// order.
func (r *Resolver) NamesIn(roomID string) []string {
	defs := r.roster.InRoom(roomID)
	names := make([]string, 0, len(defs))
	for _, def := range defs {
		names = append(names, def.Name)
	}
	return names
}

// IdleLines rolls each NPC in roomID against its idle chance and returns the
// ambient lines that fired, at most one per NPC.
func (r *Resolver) IdleLines(roomID string) []string {
	var lines []string
	for _, def := range r.roster.InRoom(roomID) {
		if len(def.IdleActions) == 0 || def.IdleChance <= 0 {
			continue
		}
		if r.src.Intn(100) < def.IdleChance {
			lines = append(lines, fmt.Sprintf("%s %s", def.Name, r.pick(def.IdleActions)))
		}
	}
	return lines
}

func (r *Resolver) say(def *Definition, line string) string {
	return fmt.Sprintf("%s says: %q", def.Name, line)
}

// pick returns a uniformly random element of variants.
//
// Precondition: variants is non-empty.
func (r *Resolver) pick(variants []string) string {
	if len(variants) == 1 {
		return variants[0]
	}
	return variants[r.src.Intn(len(variants))]
}

func factsFor(p *player.Player) scripting.Facts {
	return scripting.Facts{
		XP:      p.XP,
		HP:      p.HP,
		MaxHP:   p.MaxHP,
		Gold:    p.Gold,
		Curses:  p.CurseCount,
		HasItem: p.HasItem,
	}
}
