// Package monster provides static monster templates and the live instance
// registry that tracks spawned monsters by room.
package monster

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/localmud/localmud/internal/game/dice"
	"github.com/localmud/localmud/internal/game/world"
)

// Abilities holds a monster's six base ability scores.
type Abilities struct {
	Strength     int `yaml:"strength"`
	Dexterity    int `yaml:"dexterity"`
	Constitution int `yaml:"constitution"`
	Intelligence int `yaml:"intelligence"`
	Wisdom       int `yaml:"wisdom"`
	Charisma     int `yaml:"charisma"`
}

// Template defines a reusable monster archetype loaded from YAML. Templates
// are static; all mutable state lives on instances.
type Template struct {
	ID          string    `yaml:"id"`
	Name        string    `yaml:"name"`
	HitDice     int       `yaml:"hit_dice"`
	HP          int       `yaml:"hp"`
	Armor       int       `yaml:"armor"`
	Attack      int       `yaml:"attack"`
	Damage      string    `yaml:"damage"`
	XP          int       `yaml:"xp"`
	Loot        []string  `yaml:"loot"`
	Abilities   Abilities `yaml:"abilities"`
	Hostile     bool      `yaml:"hostile"`
	Description string    `yaml:"description"`
}

// Validate checks that the template satisfies basic invariants.
//
// Postcondition: Returns nil iff ID and Name are non-empty, HP >= 1,
// Attack >= 1, Armor >= 0, XP >= 0, and Damage (if set) parses as a dice
// expression.
func (t *Template) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("monster template: id must not be empty")
	}
	if t.Name == "" {
		return fmt.Errorf("monster template %q: name must not be empty", t.ID)
	}
	if t.HP < 1 {
		return fmt.Errorf("monster template %q: hp must be >= 1", t.ID)
	}
	if t.Attack < 1 {
		return fmt.Errorf("monster template %q: attack must be >= 1", t.ID)
	}
	if t.Armor < 0 {
		return fmt.Errorf("monster template %q: armor must be >= 0", t.ID)
	}
	if t.XP < 0 {
		return fmt.Errorf("monster template %q: xp must be >= 0", t.ID)
	}
	if t.Damage != "" {
		if _, err := dice.Parse(t.Damage); err != nil {
			return fmt.Errorf("monster template %q: damage: %w", t.ID, err)
		}
	}
	return nil
}

// LoadTemplateFromBytes parses a single monster template from raw YAML bytes.
// The template ID and loot identifiers are normalized at this boundary.
func LoadTemplateFromBytes(data []byte) (*Template, error) {
	var tmpl Template
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("parsing monster template YAML: %w", err)
	}
	tmpl.ID = world.NormalizeID(tmpl.ID)
	for i, id := range tmpl.Loot {
		tmpl.Loot[i] = world.NormalizeID(id)
	}
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// LoadTemplates reads all *.yaml files in dir and returns the parsed templates.
func LoadTemplates(dir string) ([]*Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading monster dir %q: %w", dir, err)
	}

	var templates []*Template
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
		tmpl, err := LoadTemplateFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		templates = append(templates, tmpl)
	}
	return templates, nil
}

// Library indexes monster templates by canonical ID.
type Library map[string]*Template

// NewLibrary indexes templates by ID.
//
// Postcondition: Returns a Library or an error on duplicate IDs.
func NewLibrary(templates []*Template) (Library, error) {
	lib := make(Library, len(templates))
	for _, tmpl := range templates {
		if _, exists := lib[tmpl.ID]; exists {
			return nil, fmt.Errorf("duplicate monster template ID %q", tmpl.ID)
		}
		lib[tmpl.ID] = tmpl
	}
	return lib, nil
}

// Get returns the template for an identifier in any accepted representation.
func (l Library) Get(id string) (*Template, bool) {
	t, ok := l[world.NormalizeID(id)]
	return t, ok
}
