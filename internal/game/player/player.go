// Package player defines the player record, ability-score math, and the
// inventory and gold operations the rest of the engine calls.
package player

import "github.com/localmud/localmud/internal/game/world"

// Core stat names, in character-sheet display order.
const (
	StatStrength     = "strength"
	StatDexterity    = "dexterity"
	StatConstitution = "constitution"
	StatIntelligence = "intelligence"
	StatWisdom       = "wisdom"
	StatCharisma     = "charisma"
)

// CoreStats lists the six ability names in display order.
var CoreStats = []string{
	StatStrength, StatDexterity, StatConstitution,
	StatIntelligence, StatWisdom, StatCharisma,
}

// AbilityScores holds the six base ability scores (3–18 at creation).
type AbilityScores struct {
	Strength     int `yaml:"strength"`
	Dexterity    int `yaml:"dexterity"`
	Constitution int `yaml:"constitution"`
	Intelligence int `yaml:"intelligence"`
	Wisdom       int `yaml:"wisdom"`
	Charisma     int `yaml:"charisma"`
}

// Score returns the base score for a stat name, or 0 for an unknown name.
func (a AbilityScores) Score(stat string) int {
	switch stat {
	case StatStrength:
		return a.Strength
	case StatDexterity:
		return a.Dexterity
	case StatConstitution:
		return a.Constitution
	case StatIntelligence:
		return a.Intelligence
	case StatWisdom:
		return a.Wisdom
	case StatCharisma:
		return a.Charisma
	default:
		return 0
	}
}

// Modifier returns the classic bounded step-function modifier for a score:
// <=3 → −3; 4–5 → −2; 6–8 → −1; 9–12 → 0; 13–15 → +1; 16–17 → +2; >=18 → +3.
func Modifier(score int) int {
	switch {
	case score <= 3:
		return -3
	case score <= 5:
		return -2
	case score <= 8:
		return -1
	case score <= 12:
		return 0
	case score <= 15:
		return 1
	case score <= 17:
		return 2
	default:
		return 3
	}
}

// Player is the persistent player record.
//
// Invariant: 0 <= HP <= MaxHP. Ability modifiers are never stored; they are
// recomputed from the base score plus temporary modifiers on every read so
// they cannot drift from their source.
type Player struct {
	Name       string        `yaml:"name"`
	Background string        `yaml:"background"`
	Class      string        `yaml:"class"`
	Abilities  AbilityScores `yaml:"abilities"`
	// TempMods holds temporary score adjustments by stat name, added to the
	// base score before the modifier table is applied.
	TempMods map[string]int `yaml:"temp_mods,omitempty"`

	HP    int `yaml:"hp"`
	MaxHP int `yaml:"max_hp"`
	XP    int `yaml:"xp"`
	Gold  int `yaml:"gold"`

	// Inventory is the ordered sequence of item identifiers the player
	// carries. Duplicates are allowed.
	Inventory []string `yaml:"inventory"`
	// Location is the canonical ID of the room the player occupies.
	Location string `yaml:"location"`

	CurseCount    int  `yaml:"curse_count"`
	VerboseTravel bool `yaml:"verbose_travel"`
	DebugMode     bool `yaml:"debug_mode"`
}

// EffectiveScore returns the stat's base score plus any temporary modifier.
func (p *Player) EffectiveScore(stat string) int {
	return p.Abilities.Score(stat) + p.TempMods[stat]
}

// ModifierFor recomputes the display/combat modifier for a stat from its
// current effective score.
func (p *Player) ModifierFor(stat string) int {
	return Modifier(p.EffectiveScore(stat))
}

// Strength returns the effective strength score used for attack rolls.
func (p *Player) Strength() int { return p.EffectiveScore(StatStrength) }

// Endurance returns the effective constitution score used to absorb damage.
func (p *Player) Endurance() int { return p.EffectiveScore(StatConstitution) }

// ApplyDamage reduces HP by amount, flooring at zero.
//
// Precondition: amount >= 0.
// Postcondition: HP >= 0.
func (p *Player) ApplyDamage(amount int) {
	p.HP -= amount
	if p.HP < 0 {
		p.HP = 0
	}
}

// Heal raises HP by amount, clamped to MaxHP. A negative amount is ignored.
func (p *Player) Heal(amount int) {
	if amount < 0 {
		return
	}
	p.HP += amount
	if p.HP > p.MaxHP {
		p.HP = p.MaxHP
	}
}

// HealFull restores HP to MaxHP.
func (p *Player) HealFull() { p.HP = p.MaxHP }

// IsSlain reports whether the player's HP has reached zero.
func (p *Player) IsSlain() bool { return p.HP <= 0 }

// HasItem reports whether the inventory holds the item identifier.
func (p *Player) HasItem(id string) bool {
	id = world.NormalizeID(id)
	for _, it := range p.Inventory {
		if it == id {
			return true
		}
	}
	return false
}

// AddItem appends an item identifier to the inventory.
func (p *Player) AddItem(id string) {
	p.Inventory = append(p.Inventory, world.NormalizeID(id))
}

// RemoveItem removes the first occurrence of id from the inventory.
//
// Postcondition: Returns true iff the item was present and removed.
func (p *Player) RemoveItem(id string) bool {
	id = world.NormalizeID(id)
	for i, it := range p.Inventory {
		if it == id {
			p.Inventory = append(p.Inventory[:i], p.Inventory[i+1:]...)
			return true
		}
	}
	return false
}

// AwardXP adds amount experience points.
func (p *Player) AwardXP(amount int) {
	if amount > 0 {
		p.XP += amount
	}
}

// AddGold credits the wallet. This and SpendGold are the only state shared
// with the side minigames.
func (p *Player) AddGold(amount int) {
	if amount > 0 {
		p.Gold += amount
	}
}

// SpendGold debits the wallet if the balance covers it.
//
// Postcondition: Returns true and debits iff Gold >= amount.
func (p *Player) SpendGold(amount int) bool {
	if amount < 0 || p.Gold < amount {
		return false
	}
	p.Gold -= amount
	return true
}

// IncrementCurse bumps the dirty-word counter by one.
func (p *Player) IncrementCurse() { p.CurseCount++ }
