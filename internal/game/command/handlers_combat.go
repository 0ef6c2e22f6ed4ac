package command

import (
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/localmud/localmud/internal/game/combat"
)

func cmdAttack(in *Interpreter, args []string) []string {
	if len(args) < 1 {
		return []string{"Attack what?"}
	}

	room := in.currentRoom()
	if room == nil {
		return []string{"There is nothing here to fight."}
	}

	target, err := combat.FindTarget(strings.Join(args, " "), in.monsters.InstancesIn(room.ID))
	if errors.Is(err, combat.ErrNoTarget) {
		return []string{"No such target here."}
	}

	res := combat.ResolveRound(in.player, target, in.roller)
	lines := res.Lines

	if target.IsDead() {
		lines = append(lines, combat.AwardKill(in.player, target, room.AddItem)...)
		if err := in.monsters.Despawn(target.ID); err != nil {
			in.logger.Error("despawning dead monster", zap.String("instance", target.ID), zap.Error(err))
		}
	}

	if in.player.IsSlain() {
		lines = append(lines, "Darkness takes you.")
		in.sess.Quitting = true
	}
	return lines
}
