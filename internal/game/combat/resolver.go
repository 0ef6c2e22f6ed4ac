// Package combat implements the synchronous round resolver: one attack
// command resolves exactly one round, player first. The resolver mutates only
// the combatants it is handed; registry removal and reward distribution are
// the caller's responsibility, which keeps the resolver reusable for damage
// previews that must not touch world state.
package combat

import (
	"fmt"

	"github.com/localmud/localmud/internal/game/dice"
	"github.com/localmud/localmud/internal/game/monster"
	"github.com/localmud/localmud/internal/game/player"
)

// AttackResult records a single resolved attack.
type AttackResult struct {
	// Attacker and Target are display names.
	Attacker string
	Target   string
	// Roll is the raw damage roll before defense.
	Roll int
	// Damage is the applied damage after defense, floored at zero.
	Damage int
	// TargetHP is the target's hit points after the attack.
	TargetHP int
	// Slain is true when the attack reduced the target to zero HP.
	Slain bool
}

// RoundResult records one full combat round.
type RoundResult struct {
	// PlayerHit is the player's opening attack.
	PlayerHit AttackResult
	// MonsterHit is the monster's retaliation; nil when the monster died
	// before it could act.
	MonsterHit *AttackResult
	// Lines is the round narration in display order.
	Lines []string
}

// damage computes max(0, roll − defense). Damage never heals and HP never
// rises from being hit.
func damage(roll, defense int) int {
	d := roll - defense
	if d < 0 {
		return 0
	}
	return d
}

// PlayerAttack resolves the player's attack against m and applies the damage.
// The roll is uniform in [1, strength]; the monster's armor absorbs flat.
//
// Precondition: p, m, and roller must be non-nil.
func PlayerAttack(p *player.Player, m *monster.Instance, roller *dice.Roller) AttackResult {
	roll := roller.RollRange(p.Strength())
	dmg := damage(roll, m.Armor)
	m.ApplyDamage(dmg)
	return AttackResult{
		Attacker: p.Name,
		Target:   m.Name,
		Roll:     roll,
		Damage:   dmg,
		TargetHP: m.CurrentHP,
		Slain:    m.IsDead(),
	}
}

// MonsterAttack resolves m's retaliation against the player and applies the
// damage. The roll is uniform in [1, attack]; the player's endurance modifier
// absorbs flat.
//
// Precondition: p, m, and roller must be non-nil.
func MonsterAttack(m *monster.Instance, p *player.Player, roller *dice.Roller) AttackResult {
	roll := roller.RollRange(m.Attack)
	dmg := damage(roll, player.Modifier(p.Endurance()))
	p.ApplyDamage(dmg)
	return AttackResult{
		Attacker: m.Name,
		Target:   p.Name,
		Roll:     roll,
		Damage:   dmg,
		TargetHP: p.HP,
		Slain:    p.IsSlain(),
	}
}

// ResolveRound executes one round: the player attacks first, unconditionally;
// if and only if the monster survives, it retaliates exactly once. A monster
// reduced to zero HP never gets its swing.
//
// The result carries ready-to-display narration lines. The caller decides
// what a dead monster means: rewards go through AwardKill, removal goes
// through the registry.
func ResolveRound(p *player.Player, m *monster.Instance, roller *dice.Roller) RoundResult {
	res := RoundResult{PlayerHit: PlayerAttack(p, m, roller)}
	res.Lines = append(res.Lines, fmt.Sprintf("You strike %s for %d damage.", m.Name, res.PlayerHit.Damage))

	if res.PlayerHit.Slain {
		res.Lines = append(res.Lines, fmt.Sprintf("You have slain %s!", m.Name))
		return res
	}
	res.Lines = append(res.Lines, fmt.Sprintf("%s has %d HP left.", m.Name, m.CurrentHP))

	hit := MonsterAttack(m, p, roller)
	res.MonsterHit = &hit
	res.Lines = append(res.Lines, fmt.Sprintf("%s attacks you for %d damage.", m.Name, hit.Damage))
	if hit.Slain {
		res.Lines = append(res.Lines, "You have been slain.")
	} else {
		res.Lines = append(res.Lines, fmt.Sprintf("You have %d HP left.", p.HP))
	}
	return res
}

// AwardKill distributes a dead monster's rewards: its experience value goes
// to the player and each loot identifier is handed to placeItem, which the
// caller points at the current room's floor (or anywhere else).
//
// Precondition: m must be dead; the caller confirms death before calling.
// Postcondition: Returns narration lines; removal from the spawn registry is
// not performed here.
func AwardKill(p *player.Player, m *monster.Instance, placeItem func(itemID string)) []string {
	var lines []string
	if m.XP > 0 {
		p.AwardXP(m.XP)
		lines = append(lines, fmt.Sprintf("You gain %d XP.", m.XP))
	}
	if len(m.Loot) == 0 {
		return lines
	}
	for _, itemID := range m.Loot {
		placeItem(itemID)
	}
	lines = append(lines, fmt.Sprintf("The %s's belongings are left behind.", m.Name))
	return lines
}
