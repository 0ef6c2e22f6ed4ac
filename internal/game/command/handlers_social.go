package command

import "strings"

func cmdTalk(in *Interpreter, args []string) []string {
	if len(args) < 2 || args[0] != "to" {
		return []string{"Talk to whom? Try: talk to <name> [about <topic>]"}
	}

	parts := args[1:]
	name := strings.Join(parts, " ")
	topic := ""
	for i, tok := range parts {
		if tok == "about" {
			name = strings.Join(parts[:i], " ")
			topic = strings.Join(parts[i+1:], " ")
			break
		}
	}
	if name == "" {
		return []string{"Talk to whom? Try: talk to <name> [about <topic>]"}
	}

	return []string{in.npcs.Talk(in.player, in.sess.CurrentRoom, name, topic)}
}
