// Package item provides static item definitions and their use-effect records.
package item

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/localmud/localmud/internal/game/world"
)

// Effect kinds for UseEffect.Effect.
const (
	EffectUnlock = "unlock"
	EffectWin    = "win"
)

// UseEffect describes what happens when an item is used in its required room.
type UseEffect struct {
	// Effect is the effect kind: unlock or win.
	Effect string `yaml:"effect"`
	// Location is the canonical room ID where the item can be used. Using the
	// item anywhere else fails with a "can't use it here" line.
	Location string `yaml:"location"`
	// Target names the thing acted on (e.g. "door"). Informational.
	Target string `yaml:"target"`
	// Message is the success narration.
	Message string `yaml:"message"`
}

// Def defines a portable item loaded from YAML. An item instance is owned by
// exactly one container at a time, a room's floor or the player's inventory;
// moves are remove-then-add, never duplicate-then-delete.
type Def struct {
	ID          string     `yaml:"id"`
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	ExamineText string     `yaml:"examine_text"`
	Use         *UseEffect `yaml:"use"`
}

// Validate checks that the definition satisfies its invariants.
//
// Postcondition: Returns nil iff ID and Name are non-empty and any use effect
// has a known kind and a location.
func (d *Def) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("item: id must not be empty")
	}
	if d.Name == "" {
		return fmt.Errorf("item %q: name must not be empty", d.ID)
	}
	if d.Use != nil {
		switch d.Use.Effect {
		case EffectUnlock, EffectWin:
		default:
			return fmt.Errorf("item %q: unknown use effect %q", d.ID, d.Use.Effect)
		}
		if d.Use.Location == "" {
			return fmt.Errorf("item %q: use effect needs a location", d.ID)
		}
	}
	return nil
}

// Registry indexes item definitions by canonical ID.
type Registry map[string]*Def

// Get returns the definition for an identifier in any accepted representation.
func (r Registry) Get(id string) (*Def, bool) {
	d, ok := r[world.NormalizeID(id)]
	return d, ok
}

// NewRegistry indexes defs by canonical ID.
//
// Postcondition: Returns a Registry or an error on duplicate IDs.
func NewRegistry(defs []*Def) (Registry, error) {
	r := make(Registry, len(defs))
	for _, d := range defs {
		key := world.NormalizeID(d.ID)
		if _, exists := r[key]; exists {
			return nil, fmt.Errorf("duplicate item ID %q", key)
		}
		r[key] = d
	}
	return r, nil
}

// LoadDefFromBytes parses a single item definition from raw YAML bytes. The
// ID and use location are normalized at this boundary.
func LoadDefFromBytes(data []byte) (*Def, error) {
	var d Def
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parsing item YAML: %w", err)
	}
	d.ID = world.NormalizeID(d.ID)
	if d.Use != nil {
		d.Use.Location = world.NormalizeID(d.Use.Location)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// LoadDefs reads all *.yaml files in dir and returns the parsed definitions.
//
// Postcondition: Returns all definitions or an error on the first parse or
// validation failure; on error, the partial result is discarded.
func LoadDefs(dir string) ([]*Def, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading item dir %q: %w", dir, err)
	}

	var defs []*Def
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || (!strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml")) {
			continue
		}
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		d, err := LoadDefFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		defs = append(defs, d)
	}
	return defs, nil
}
