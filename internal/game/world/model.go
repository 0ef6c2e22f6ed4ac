// Package world provides the room graph: the room model, the room-identifier
// normalizer, YAML region loading, and movement resolution.
package world

// Direction is a canonical compass or vertical direction.
type Direction string

// The six directions LocalMUD rooms can connect through.
const (
	North Direction = "north"
	South Direction = "south"
	East  Direction = "east"
	West  Direction = "west"
	Up    Direction = "up"
	Down  Direction = "down"
)

// directionAliases maps accepted direction spellings (shorthand letters and
// full names) to canonical directions.
var directionAliases = map[string]Direction{
	"n": North, "north": North,
	"s": South, "south": South,
	"e": East, "east": East,
	"w": West, "west": West,
	"u": Up, "up": Up,
	"d": Down, "down": Down,
}

// ParseDirection resolves a direction alias ("n", "north") to its canonical
// form.
//
// Postcondition: Returns (direction, true) for a known alias, or ("", false).
func ParseDirection(s string) (Direction, bool) {
	d, ok := directionAliases[s]
	return d, ok
}

// Opposite returns the opposite of a direction, for two-way region wiring.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	case Up:
		return Down
	case Down:
		return Up
	default:
		return ""
	}
}

// Vertical reports whether the direction is up or down; vertical movement
// gets its own narration line.
func (d Direction) Vertical() bool {
	return d == Up || d == Down
}

// Condition kinds for room triggers.
const (
	CondRequiresItem = "requires_item"
	CondHasItem      = "has_item"
)

// Trigger is a declarative condition attached to a room: entry locks
// (requires_item) and arrival effects (has_item + effect).
type Trigger struct {
	// Condition is the trigger kind: requires_item or has_item.
	Condition string
	// Item is the item identifier the condition tests for.
	Item string
	// Effect names what firing the trigger does (e.g. "win"). Empty for locks.
	Effect string
	// Response is the narration shown when the trigger fires. Empty means the
	// engine supplies a default line.
	Response string
}

// SpawnConfig declares how many instances of a monster template populate a
// room at region load.
type SpawnConfig struct {
	// Template is the monster template ID to spawn.
	Template string
	// Count is the number of instances created at region initialization.
	Count int
}

// Room is one location in the world graph. Rooms are built at load time and
// live for the process lifetime; Visited, Items, and Flags mutate during play.
type Room struct {
	// ID is the canonical room identifier (see NormalizeID).
	ID string
	// RegionID identifies the region this room belongs to.
	RegionID string
	// Name is the short display name.
	Name string
	// Description is the brief room description.
	Description string
	// LookDescription is the full description shown on first visit, on look,
	// and on revisits when verbose narration is on.
	LookDescription string
	// Exits maps canonical directions to canonical target room IDs.
	Exits map[Direction]string
	// Items holds the identifiers of items currently on the room floor, in
	// placement order.
	Items []string
	// ExamineTargets maps examinable nouns to their description text.
	ExamineTargets map[string]string
	// Triggers are evaluated in declaration order on entry.
	Triggers []Trigger
	// Spawns lists monster templates that populate this room at region load.
	Spawns []SpawnConfig
	// Flags holds room-local boolean state set by item effects.
	Flags map[string]bool
	// Visited is true once the player has entered this room.
	Visited bool
}

// HasItem reports whether the item identifier is on the room floor.
func (r *Room) HasItem(id string) bool {
	for _, it := range r.Items {
		if it == id {
			return true
		}
	}
	return false
}

// RemoveItem removes the first occurrence of id from the room floor.
//
// Postcondition: Returns true iff the item was present and removed.
func (r *Room) RemoveItem(id string) bool {
	for i, it := range r.Items {
		if it == id {
			r.Items = append(r.Items[:i], r.Items[i+1:]...)
			return true
		}
	}
	return false
}

// AddItem appends id to the room floor.
func (r *Room) AddItem(id string) {
	r.Items = append(r.Items, id)
}

// SetFlag sets a room-local boolean flag.
func (r *Room) SetFlag(name string) {
	if r.Flags == nil {
		r.Flags = make(map[string]bool)
	}
	r.Flags[name] = true
}
