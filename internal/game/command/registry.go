// Package command implements the player-facing verb layer: tokenization, the
// dirty-word filter, the fixed verb table, and the handlers that orchestrate
// the world, item, monster, NPC, and combat components into narration.
package command

import (
	"fmt"
	"strings"
)

// Handler executes one verb. It receives the tokens after the verb and
// returns the narration lines for the turn.
type Handler func(in *Interpreter, args []string) []string

// Command is one entry in the verb table.
type Command struct {
	// Name is the primary verb, lowercase.
	Name string
	// Aliases are alternate spellings ("l" for "look").
	Aliases []string
	// Help is the one-line summary shown by the help listing.
	Help string
	// Detail is the expanded help shown by "help <verb>". Nil means no
	// detailed help exists.
	Detail  []string
	Handler Handler
}

// Registry is the verb table. Dispatch is a map lookup, so adding a verb
// cannot silently fall through to the unknown-command response.
type Registry struct {
	commands []*Command
	byName   map[string]*Command
}

// NewRegistry indexes commands by name and alias.
//
// Postcondition: Returns a Registry or an error on a duplicate name or alias.
func NewRegistry(commands []*Command) (*Registry, error) {
	r := &Registry{
		commands: commands,
		byName:   make(map[string]*Command),
	}
	for _, cmd := range commands {
		for _, name := range append([]string{cmd.Name}, cmd.Aliases...) {
			key := strings.ToLower(name)
			if _, exists := r.byName[key]; exists {
				return nil, fmt.Errorf("duplicate verb %q", key)
			}
			r.byName[key] = cmd
		}
	}
	return r, nil
}

// Resolve looks up a verb by name or alias, case-insensitively.
func (r *Registry) Resolve(name string) (*Command, bool) {
	cmd, ok := r.byName[strings.ToLower(name)]
	return cmd, ok
}

// Names returns the primary verb names in registration order, for the help
// listing.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for _, cmd := range r.commands {
		names = append(names, cmd.Name)
	}
	return names
}

// BuiltinCommands returns the full verb table.
func BuiltinCommands() []*Command {
	return []*Command{
		{
			Name: "go", Help: "Move to another room",
			Detail: []string{
				"GO [direction] - Move to another room (N/S/E/W/U/D).",
				"First discovery grants XP; revisits show the full description only in verbose mode.",
			},
			Handler: cmdGo,
		},
		{
			Name: "look", Aliases: []string{"l"}, Help: "Describe the current room",
			Detail: []string{
				"LOOK - Show this room's description, items, and exits.",
				"L is a shortcut.",
			},
			Handler: cmdLook,
		},
		{Name: "examine", Aliases: []string{"x"}, Help: "Examine an item or feature", Handler: cmdExamine},
		{Name: "take", Aliases: []string{"get"}, Help: "Pick up an item", Handler: cmdTake},
		{Name: "drop", Help: "Drop a carried item", Handler: cmdDrop},
		{Name: "use", Help: "Use a carried item", Handler: cmdUse},
		{Name: "inventory", Aliases: []string{"i"}, Help: "List carried items", Handler: cmdInventory},
		{Name: "talk", Help: "Talk to someone (talk to <name> [about <topic>])", Handler: cmdTalk},
		{Name: "attack", Help: "Attack a monster", Handler: cmdAttack},
		{Name: "character", Aliases: []string{"c"}, Help: "Show the character sheet", Handler: cmdCharacter},
		{Name: "help", Help: "List commands", Handler: cmdHelp},
		{Name: "about", Help: "About this game", Handler: cmdAbout},
		{Name: "motd", Help: "Show the message of the day", Handler: cmdMOTD},
		{Name: "clear", Help: "Clear the screen", Handler: cmdClear},
		{Name: "quit", Aliases: []string{"exit"}, Help: "Leave the game", Handler: cmdQuit},
		{Name: "debug", Help: "Operator-only debug actions", Handler: cmdDebug},
	}
}
