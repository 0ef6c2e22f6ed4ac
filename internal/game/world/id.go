package world

import (
	"fmt"
	"strings"
)

// RoomKey builds the canonical room identifier for a coordinate-addressed
// room: "<region>_<x>_<y>_<z>" with the region slug normalized.
//
// Postcondition: NormalizeID(RoomKey(...)) == RoomKey(...).
func RoomKey(region string, x, y, z int) string {
	return fmt.Sprintf("%s_%d_%d_%d", NormalizeID(region), x, y, z)
}

// NormalizeID canonicalizes a free-form room identifier: lower-cased, trimmed,
// with interior whitespace and hyphens collapsed to single underscores.
//
// Every component that keys anything by room (exits, spawn lists, NPC room
// bindings, use-locations) must pass identifiers through here. Looking up a
// raw identifier is how phantom rooms happen.
//
// Postcondition: NormalizeID is idempotent: NormalizeID(NormalizeID(s)) == NormalizeID(s).
func NormalizeID(id string) string {
	s := strings.ToLower(strings.TrimSpace(id))
	s = strings.ReplaceAll(s, "-", " ")
	return strings.Join(strings.Fields(s), "_")
}
