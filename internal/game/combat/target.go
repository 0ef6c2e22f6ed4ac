package combat

import (
	"errors"
	"strconv"
	"strings"

	"github.com/localmud/localmud/internal/game/monster"
)

// ErrNoTarget is returned when the requested name matches nothing in the
// room, or when a numbered reference is out of range.
var ErrNoTarget = errors.New("no such target")

// FindTarget resolves a player-typed target name against the monsters in the
// room, which the caller passes in spawn order.
//
// A trailing number disambiguates duplicates: "kobold 2" and "kobold#2" both
// mean the second kobold that appeared in the room. Matching is
// case-insensitive. Exact name matches win; if there are none, the first
// monster whose name contains the query is taken.
//
// Postcondition: Returns ErrNoTarget if nothing matches or the index exceeds
// the number of exact matches; indexes never fall through to substring
// matching.
func FindTarget(query string, instances []*monster.Instance) (*monster.Instance, error) {
	name, ordinal := splitOrdinal(query)
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, ErrNoTarget
	}

	var exact []*monster.Instance
	for _, inst := range instances {
		if strings.ToLower(inst.Name) == name {
			exact = append(exact, inst)
		}
	}
	if ordinal > 0 {
		if ordinal > len(exact) {
			return nil, ErrNoTarget
		}
		return exact[ordinal-1], nil
	}
	if len(exact) > 0 {
		return exact[0], nil
	}

	for _, inst := range instances {
		if strings.Contains(strings.ToLower(inst.Name), name) {
			return inst, nil
		}
	}
	return nil, ErrNoTarget
}

// splitOrdinal separates a trailing positional reference from the target
// name. Both "kobold 2" and "kobold#2" yield ("kobold", 2); a name with no
// trailing number yields (query, 0).
func splitOrdinal(query string) (string, int) {
	q := strings.ReplaceAll(query, "#", " ")
	fields := strings.Fields(q)
	if len(fields) < 2 {
		return q, 0
	}
	last := fields[len(fields)-1]
	n, err := strconv.Atoi(last)
	if err != nil || n <= 0 {
		return q, 0
	}
	return strings.Join(fields[:len(fields)-1], " "), n
}
