package player

import (
	"fmt"
	"sort"

	"github.com/localmud/localmud/internal/game/dice"
)

// Class describes a playable class: minimum stat requirements and the hit die
// rolled for starting HP.
type Class struct {
	Name         string
	Description  string
	HitDie       int
	Requirements map[string]int
}

// Classes is the playable class roster.
var Classes = map[string]Class{
	"fighter": {
		Name:         "Fighter",
		Description:  "Strong and brave. Excels in combat.",
		HitDie:       8,
		Requirements: map[string]int{StatStrength: 9},
	},
	"thief": {
		Name:         "Thief",
		Description:  "Quick and cunning. Skilled in stealth and traps.",
		HitDie:       4,
		Requirements: map[string]int{StatDexterity: 9},
	},
	"cleric": {
		Name:         "Cleric",
		Description:  "Wise and faithful. Channels divine power.",
		HitDie:       6,
		Requirements: map[string]int{StatWisdom: 9},
	},
	"magic-user": {
		Name:         "Magic-User",
		Description:  "Intelligent and mysterious. Wields arcane spells.",
		HitDie:       4,
		Requirements: map[string]int{StatIntelligence: 9},
	},
	"dwarf": {
		Name:         "Dwarf",
		Description:  "Sturdy and stoic. Masters of stone and steel.",
		HitDie:       8,
		Requirements: map[string]int{StatConstitution: 9},
	},
	"elf": {
		Name:         "Elf",
		Description:  "Graceful and gifted. Combines sword and spell.",
		HitDie:       6,
		Requirements: map[string]int{StatIntelligence: 9, StatStrength: 9},
	},
	"halfling": {
		Name:         "Halfling",
		Description:  "Small and sneaky. Lucky and light-footed.",
		HitDie:       6,
		Requirements: map[string]int{StatDexterity: 9, StatConstitution: 9},
	},
}

// Backgrounds is the flavor-only background roster.
var Backgrounds = []string{
	"Wandering Spoon Monk",
	"Orb Scholar",
	"Dustborn Acolyte",
	"Chapel Groundskeeper",
	"Unlicensed Curse Broker",
}

// RollStats rolls 3d6 per core stat using src.
//
// Postcondition: every score is in [3, 18].
func RollStats(src dice.Source) AbilityScores {
	expr := dice.MustParse("3d6")
	roll := func() int {
		return dice.Roll(expr, src).Total()
	}
	return AbilityScores{
		Strength:     roll(),
		Dexterity:    roll(),
		Constitution: roll(),
		Intelligence: roll(),
		Wisdom:       roll(),
		Charisma:     roll(),
	}
}

// EligibleClasses returns the class keys whose minimum requirements the given
// scores satisfy, in sorted order.
//
// Postcondition: Returns a non-nil slice (may be empty).
func EligibleClasses(stats AbilityScores) []string {
	eligible := []string{}
	for key, cls := range Classes {
		ok := true
		for stat, minimum := range cls.Requirements {
			if stats.Score(stat) < minimum {
				ok = false
				break
			}
		}
		if ok {
			eligible = append(eligible, key)
		}
	}
	sort.Strings(eligible)
	return eligible
}

// StartingHP computes creation hit points: max(1, 1d<hit die> + CON modifier).
func StartingHP(cls Class, stats AbilityScores, src dice.Source) int {
	hp := dice.RollRange(src, cls.HitDie) + Modifier(stats.Constitution)
	if hp < 1 {
		hp = 1
	}
	return hp
}

// New creates a player from creation inputs. When bonusMaxHP is set, the
// optional +5 max HP setting applies and current HP resets to the new maximum.
//
// Precondition: classKey must name a class in Classes.
func New(name, classKey, background string, stats AbilityScores, src dice.Source, bonusMaxHP bool) (*Player, error) {
	cls, ok := Classes[classKey]
	if !ok {
		return nil, fmt.Errorf("player: unknown class %q", classKey)
	}

	hp := StartingHP(cls, stats, src)
	p := &Player{
		Name:       name,
		Background: background,
		Class:      cls.Name,
		Abilities:  stats,
		HP:         hp,
		MaxHP:      hp,
		Gold:       100,
	}
	if bonusMaxHP {
		p.MaxHP += 5
		p.HP = p.MaxHP
	}
	return p, nil
}
