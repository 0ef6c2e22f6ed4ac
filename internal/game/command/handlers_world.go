package command

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/localmud/localmud/internal/game/item"
	"github.com/localmud/localmud/internal/game/world"
)

// displayOrder fixes the direction listing order for exits.
var displayOrder = []world.Direction{
	world.North, world.South, world.East, world.West, world.Up, world.Down,
}

func cmdGo(in *Interpreter, args []string) []string {
	if len(args) < 1 {
		return []string{"Go where?"}
	}
	dir, ok := world.ParseDirection(args[0])
	if !ok {
		return []string{"You can't go that way."}
	}

	res, err := in.graph.Move(in.sess.CurrentRoom, dir, in.player.HasItem)
	if err != nil {
		var broken *world.BrokenLinkError
		var locked *world.LockedError
		switch {
		case errors.Is(err, world.ErrNoExit):
			return []string{"You can't go that way."}
		case errors.As(err, &broken):
			// Already logged by the graph as a data-integrity fault; the
			// player stays where they are.
			return []string{fmt.Sprintf(
				"You step toward the %s, but the threshold dissolves. No room lies that way.", dir)}
		case errors.As(err, &locked):
			return []string{fmt.Sprintf("The way is locked. You need the %s.", in.itemName(locked.Item))}
		default:
			in.logger.Error("movement failed", zap.Error(err))
			return []string{"You can't go that way."}
		}
	}

	in.sess.CurrentRoom = res.Room.ID
	in.player.Location = res.Room.ID

	var lines []string
	if dir.Vertical() {
		lines = append(lines, fmt.Sprintf("You move %s. - %s", strings.ToUpper(string(dir)), res.Room.Name))
	} else {
		lines = append(lines, fmt.Sprintf("You go %s. - %s", dir, res.Room.Name))
	}
	if res.FirstVisit {
		in.player.AwardXP(1)
		lines = append(lines, fmt.Sprintf("You gain 1 XP for discovering %s.", res.Room.Name))
	}
	if res.FirstVisit || in.player.VerboseTravel {
		lines = append(lines, res.Room.LookDescription)
	}
	return lines
}

func cmdLook(in *Interpreter, _ []string) []string {
	room := in.currentRoom()
	if room == nil {
		return []string{"You see nothing but fog."}
	}

	lines := []string{room.LookDescription}

	if len(room.Items) > 0 {
		names := make([]string, 0, len(room.Items))
		for _, id := range room.Items {
			names = append(names, in.itemName(id))
		}
		lines = append(lines, "Items here: "+strings.Join(names, ", "))
	} else {
		lines = append(lines, "There are no items here.")
	}

	if present := in.npcs.NamesIn(room.ID); len(present) > 0 {
		lines = append(lines, "You see here: "+strings.Join(present, ", "))
	}

	if instances := in.monsters.InstancesIn(room.ID); len(instances) > 0 {
		descs := make([]string, 0, len(instances))
		for _, inst := range instances {
			descs = append(descs, fmt.Sprintf("%s (%s)", inst.Name, inst.HealthDescription()))
		}
		lines = append(lines, "Lurking here: "+strings.Join(descs, ", "))
	}

	if len(room.Exits) > 0 {
		var exits []string
		for _, dir := range displayOrder {
			if _, ok := room.Exits[dir]; ok {
				exits = append(exits, string(dir))
			}
		}
		lines = append(lines, "Exits: "+strings.Join(exits, ", "))
	}
	return lines
}

func cmdExamine(in *Interpreter, args []string) []string {
	if len(args) < 1 {
		return []string{"Examine what?"}
	}
	target := strings.Join(args, " ")
	targetID := world.NormalizeID(target)

	// Inventory wins over room features.
	if in.player.HasItem(targetID) {
		if def, ok := in.items.Get(targetID); ok && def.ExamineText != "" {
			return []string{def.ExamineText}
		}
		return []string{fmt.Sprintf("You examine the %s, but find nothing unusual.", in.itemName(targetID))}
	}

	room := in.currentRoom()
	if room != nil {
		if desc, ok := room.ExamineTargets[strings.ToLower(target)]; ok {
			return []string{desc}
		}
	}
	return []string{"You see nothing special."}
}

func cmdTake(in *Interpreter, args []string) []string {
	if len(args) < 1 {
		return []string{"Take what?"}
	}
	room := in.currentRoom()
	want := world.NormalizeID(strings.Join(args, " "))
	if room == nil || !room.RemoveItem(want) {
		return []string{"That item isn't here."}
	}
	in.player.AddItem(want)
	return []string{fmt.Sprintf("You take the %s.", in.itemName(want))}
}

func cmdDrop(in *Interpreter, args []string) []string {
	if len(args) < 1 {
		return []string{"Drop what?"}
	}
	want := world.NormalizeID(strings.Join(args, " "))
	if !in.player.RemoveItem(want) {
		return []string{"You don't have that item."}
	}
	if room := in.currentRoom(); room != nil {
		room.AddItem(want)
	}
	return []string{fmt.Sprintf("You drop the %s.", in.itemName(want))}
}

func cmdUse(in *Interpreter, args []string) []string {
	if len(args) < 1 {
		return []string{"Use what?"}
	}
	want := world.NormalizeID(strings.Join(args, " "))
	if !in.player.HasItem(want) {
		return []string{"You don't have that item."}
	}

	def, ok := in.items.Get(want)
	if !ok || def.Use == nil {
		return []string{fmt.Sprintf("You use the %s, but nothing happens.", in.itemName(want))}
	}
	if def.Use.Location != in.sess.CurrentRoom {
		return []string{fmt.Sprintf("You can't use the %s here.", def.Name)}
	}

	message := def.Use.Message
	if message == "" {
		message = fmt.Sprintf("You use the %s.", def.Name)
	}
	switch def.Use.Effect {
	case item.EffectWin:
		in.won = true
		return []string{message}
	case item.EffectUnlock:
		if room := in.currentRoom(); room != nil {
			room.SetFlag("door_unlocked")
		}
		return []string{message}
	default:
		return []string{fmt.Sprintf("You use the %s, but nothing happens.", def.Name)}
	}
}

func cmdInventory(in *Interpreter, _ []string) []string {
	if len(in.player.Inventory) == 0 {
		return []string{"Your inventory is empty."}
	}
	lines := []string{"You are carrying:"}
	for _, id := range in.player.Inventory {
		desc := ""
		if def, ok := in.items.Get(id); ok {
			desc = def.Description
		}
		lines = append(lines, fmt.Sprintf("- %s: %s", in.itemName(id), desc))
	}
	return lines
}

// itemName resolves an item identifier to its display name, falling back to
// the identifier when the definition is missing.
func (in *Interpreter) itemName(id string) string {
	if def, ok := in.items.Get(id); ok {
		return def.Name
	}
	return id
}
