package monster

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Instance is a live monster occupying a room. All template fields are copied
// at spawn time; later template edits never retroactively affect live
// instances.
type Instance struct {
	// ID uniquely identifies this runtime instance: "<template>-<suffix>".
	ID string
	// TemplateID is the source template's canonical ID.
	TemplateID string
	// Name is copied from the template for display and targeting.
	Name string
	// RoomID is the canonical ID of the room this instance occupies.
	RoomID string
	// CurrentHP and MaxHP track the instance's hit points.
	CurrentHP int
	MaxHP     int
	// Armor reduces incoming damage.
	Armor int
	// Attack is the upper bound of the instance's damage roll.
	Attack int
	// XP is the experience awarded when the instance is killed.
	XP int
	// Loot lists item identifiers dropped on death.
	Loot []string
	// Abilities is a copy of the template's base scores.
	Abilities Abilities
	// Hostile reports whether the instance retaliates.
	Hostile bool
	// Description is the examine text.
	Description string
	// CreatedAt is the spawn timestamp.
	CreatedAt time.Time
}

// NewInstance creates a live instance from a template, placed in roomID. The
// instance ID carries a random suffix so two instances of the same template
// never collide.
//
// Precondition: tmpl must be non-nil and validated; roomID must be canonical.
// Postcondition: CurrentHP == MaxHP == tmpl.HP.
func NewInstance(tmpl *Template, roomID string) *Instance {
	return &Instance{
		ID:          fmt.Sprintf("%s-%s", tmpl.ID, uuid.NewString()[:8]),
		TemplateID:  tmpl.ID,
		Name:        tmpl.Name,
		RoomID:      roomID,
		CurrentHP:   tmpl.HP,
		MaxHP:       tmpl.HP,
		Armor:       tmpl.Armor,
		Attack:      tmpl.Attack,
		XP:          tmpl.XP,
		Loot:        append([]string(nil), tmpl.Loot...),
		Abilities:   tmpl.Abilities,
		Hostile:     tmpl.Hostile,
		Description: tmpl.Description,
		CreatedAt:   time.Now(),
	}
}

// ApplyDamage reduces CurrentHP by amount, flooring at zero.
//
// Precondition: amount >= 0.
// Postcondition: CurrentHP >= 0.
func (i *Instance) ApplyDamage(amount int) {
	i.CurrentHP -= amount
	if i.CurrentHP < 0 {
		i.CurrentHP = 0
	}
}

// IsDead reports whether the instance has zero hit points.
func (i *Instance) IsDead() bool { return i.CurrentHP <= 0 }

// HealthDescription returns a visible health state string for examine output.
func (i *Instance) HealthDescription() string {
	if i.CurrentHP <= 0 {
		return "dead"
	}
	pct := float64(i.CurrentHP) / float64(i.MaxHP)
	switch {
	case pct >= 1.0:
		return "unharmed"
	case pct >= 0.60:
		return "lightly wounded"
	case pct >= 0.30:
		return "badly wounded"
	default:
		return "near death"
	}
}
