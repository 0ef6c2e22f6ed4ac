// Package npc loads non-player character definitions and resolves dialogue.
// NPCs are pure content: a definition carries its topic table, conditional
// triggers, and idle flavor; the resolver decides which line a conversation
// produces.
package npc

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/localmud/localmud/internal/game/world"
)

// Trigger is a conditional dialogue override. Conditions are Lua boolean
// expressions evaluated against the talking player; a true condition
// short-circuits normal topic lookup.
type Trigger struct {
	Condition string `yaml:"condition"`
	Response  string `yaml:"response"`
}

// Definition is one NPC as authored in content YAML.
type Definition struct {
	ID      string   `yaml:"id"`
	Name    string   `yaml:"name"`
	Aliases []string `yaml:"aliases"`
	RoomID  string   `yaml:"room"`
	// Greeting is spoken when the player talks with no topic.
	Greeting string `yaml:"greeting"`
	// Topics maps a topic word to its reply variants; one is chosen
	// uniformly at random per conversation.
	Topics map[string][]string `yaml:"topics"`
	// Fallback replies cover topics the NPC has no entry for.
	Fallback []string  `yaml:"fallback"`
	Triggers []Trigger `yaml:"triggers"`
	// IdleActions are ambient lines; IdleChance is the percent chance per
	// turn that this NPC emits one.
	IdleActions []string `yaml:"idle_actions"`
	IdleChance  int      `yaml:"idle_chance"`
}

// Validate checks structural integrity of the definition.
func (d *Definition) Validate() error {
	var violations []string
	if d.ID == "" {
		violations = append(violations, "id is required")
	}
	if d.Name == "" {
		violations = append(violations, "name is required")
	}
	if d.RoomID == "" {
		violations = append(violations, "room is required")
	}
	for topic, variants := range d.Topics {
		if len(variants) == 0 {
			violations = append(violations, fmt.Sprintf("topic %q has no reply variants", topic))
		}
	}
	for i, trig := range d.Triggers {
		if trig.Condition == "" {
			violations = append(violations, fmt.Sprintf("trigger %d has no condition", i))
		}
		if trig.Response == "" {
			violations = append(violations, fmt.Sprintf("trigger %d has no response", i))
		}
	}
	if d.IdleChance < 0 || d.IdleChance > 100 {
		violations = append(violations, fmt.Sprintf("idle_chance %d outside 0-100", d.IdleChance))
	}
	if len(violations) > 0 {
		return fmt.Errorf("npc %q invalid: %s", d.ID, strings.Join(violations, "; "))
	}
	return nil
}

// Matches reports whether name refers to this NPC by name or alias,
// case-insensitively. Only exact matches count; "father" does not find
// "Father Ansel" unless listed as an alias.
func (d *Definition) Matches(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	if strings.ToLower(d.Name) == name {
		return true
	}
	for _, alias := range d.Aliases {
		if strings.ToLower(alias) == name {
			return true
		}
	}
	return false
}

// LoadDefinitionFromBytes parses one NPC definition from YAML.
//
// Postcondition: IDs, room references, and topic keys are normalized.
func LoadDefinitionFromBytes(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parsing npc definition: %w", err)
	}
	def.ID = world.NormalizeID(def.ID)
	def.RoomID = world.NormalizeID(def.RoomID)
	if len(def.Topics) > 0 {
		topics := make(map[string][]string, len(def.Topics))
		for topic, variants := range def.Topics {
			topics[strings.ToLower(strings.TrimSpace(topic))] = variants
		}
		def.Topics = topics
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// LoadDefinitions loads every *.yaml file in dir.
func LoadDefinitions(dir string) ([]*Definition, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("listing npc dir %s: %w", dir, err)
	}
	defs := make([]*Definition, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading npc file %s: %w", path, err)
		}
		def, err := LoadDefinitionFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading npc file %s: %w", path, err)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// Roster indexes NPC definitions by room.
type Roster struct {
	byRoom map[string][]*Definition
}

// NewRoster builds a room index over defs, preserving definition order
// within each room.
func NewRoster(defs []*Definition) *Roster {
	r := &Roster{byRoom: make(map[string][]*Definition)}
	for _, def := range defs {
		r.byRoom[def.RoomID] = append(r.byRoom[def.RoomID], def)
	}
	return r
}

// InRoom returns the NPCs present in roomID, in definition order.
func (r *Roster) InRoom(roomID string) []*Definition {
	return r.byRoom[world.NormalizeID(roomID)]
}

// Find looks up an NPC in roomID by name or alias. Returns nil when no NPC
// in the room answers to that name.
func (r *Roster) Find(roomID, name string) *Definition {
	for _, def := range r.InRoom(roomID) {
		if def.Matches(name) {
			return def
		}
	}
	return nil
}
