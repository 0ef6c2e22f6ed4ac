package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/localmud/localmud/internal/game/player"
)

func cmdCharacter(in *Interpreter, _ []string) []string {
	p := in.player
	lines := []string{
		fmt.Sprintf("Name: %s", p.Name),
		fmt.Sprintf("Background: %s", p.Background),
		fmt.Sprintf("Class: %s", p.Class),
		fmt.Sprintf("HP: %d/%d", p.HP, p.MaxHP),
		fmt.Sprintf("XP: %d", p.XP),
		fmt.Sprintf("Gold: %d", p.Gold),
		"Stats:",
	}
	for _, stat := range player.CoreStats {
		lines = append(lines, fmt.Sprintf("  %s: %d (%+d)", stat, p.EffectiveScore(stat), p.ModifierFor(stat)))
	}
	if p.CurseCount > 0 {
		lines = append(lines, fmt.Sprintf("Curses: %d", p.CurseCount))
	}
	return lines
}

func cmdHelp(in *Interpreter, args []string) []string {
	if len(args) == 0 {
		lines := []string{"Available commands:"}
		for _, name := range in.registry.Names() {
			lines = append(lines, "- "+name)
		}
		lines = append(lines, "Type HELP [COMMAND] for details.")
		return lines
	}
	if cmd, ok := in.registry.Resolve(args[0]); ok && len(cmd.Detail) > 0 {
		return cmd.Detail
	}
	return []string{fmt.Sprintf("No detailed help for '%s'.", args[0])}
}

func cmdAbout(_ *Interpreter, _ []string) []string {
	return []string{"LocalMUD " + Version, devNote}
}

func cmdMOTD(in *Interpreter, _ []string) []string {
	return []string{"MOTD: " + in.sess.MOTD}
}

func cmdClear(in *Interpreter, _ []string) []string {
	in.sess.Clear()
	return []string{"Screen cleared."}
}

func cmdQuit(in *Interpreter, _ []string) []string {
	in.sess.Quitting = true
	return []string{"Farewell."}
}

func cmdDebug(in *Interpreter, args []string) []string {
	if !in.player.DebugMode {
		return []string{"Debug mode is not enabled."}
	}
	if len(args) < 1 {
		return []string{
			"Specify a debug action. Example: DEBUG HEAL",
			"Available commands: HEAL, GIVEGOLD, SPAWN, ROLL",
		}
	}

	switch strings.ToLower(args[0]) {
	case "heal":
		in.player.HealFull()
		return []string{fmt.Sprintf("Player healed to full HP (%d/%d).", in.player.HP, in.player.MaxHP)}

	case "givegold":
		if len(args) < 2 {
			return []string{"Usage: DEBUG GIVEGOLD <amount>"}
		}
		amount, err := strconv.Atoi(args[1])
		if err != nil || amount < 0 {
			return []string{"Usage: DEBUG GIVEGOLD <amount>"}
		}
		in.player.AddGold(amount)
		return []string{fmt.Sprintf("Gave %d gold. Player now has %d gold.", amount, in.player.Gold)}

	case "spawn":
		if len(args) < 2 {
			return []string{"Usage: DEBUG SPAWN <template>"}
		}
		inst, err := in.monsters.Spawn(args[1], in.sess.CurrentRoom)
		if err != nil {
			return []string{fmt.Sprintf("Unknown monster template '%s'.", args[1])}
		}
		return []string{fmt.Sprintf("Spawned %s.", inst.Name)}

	case "roll":
		if len(args) < 2 {
			return []string{"Usage: DEBUG ROLL <dice>"}
		}
		res, err := in.roller.RollExpr(args[1])
		if err != nil {
			return []string{fmt.Sprintf("Bad dice expression '%s'.", args[1])}
		}
		return []string{res.String()}

	default:
		return []string{fmt.Sprintf("Unknown debug action: %s", args[0])}
	}
}
