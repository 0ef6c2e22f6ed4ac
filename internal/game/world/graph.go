package world

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrNoExit is returned by Move when the current room has no exit in the
// requested direction. This is a player error, not a data fault.
var ErrNoExit = errors.New("world: no exit that way")

// ErrRoomNotFound is returned by Move when the origin room identifier does
// not resolve.
var ErrRoomNotFound = errors.New("world: room not found")

// BrokenLinkError reports an exit whose target room does not exist in the
// graph. It is a data-integrity fault: the player sees a diegetic message and
// the operator gets a diagnostic log entry.
type BrokenLinkError struct {
	From      string
	Direction Direction
	Target    string
}

func (e *BrokenLinkError) Error() string {
	return fmt.Sprintf("world: exit %s from %q targets unknown room %q", e.Direction, e.From, e.Target)
}

// LockedError reports movement blocked by a requires_item trigger on the
// destination room.
type LockedError struct {
	Item string
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("world: the way is locked, need %q", e.Item)
}

// MoveResult is the outcome of a successful Move.
type MoveResult struct {
	// Room is the destination room.
	Room *Room
	// FirstVisit is true when this Move marked the room visited for the
	// first time.
	FirstVisit bool
}

// Graph is the loaded room graph: every room across all regions, indexed by
// canonical identifier. The engine is single-threaded and turn-based, so the
// graph carries no lock; all mutation happens between input reads.
type Graph struct {
	rooms     map[string]*Room
	startRoom string
	logger    *zap.Logger
}

// NewGraph builds a Graph from loaded regions.
//
// Precondition: regions must contain at least one region; the first region's
// start room becomes the global start room.
// Postcondition: Returns a Graph with every room indexed, or an error on
// duplicate room IDs.
func NewGraph(regions []*Region, logger *zap.Logger) (*Graph, error) {
	g := &Graph{
		rooms:  make(map[string]*Room),
		logger: logger,
	}
	for _, reg := range regions {
		for id, room := range reg.Rooms {
			if existing, ok := g.rooms[id]; ok {
				return nil, fmt.Errorf("duplicate room ID %q: in region %q and %q", id, existing.RegionID, reg.ID)
			}
			g.rooms[id] = room
		}
	}
	if len(regions) > 0 {
		g.startRoom = regions[0].StartRoom
	}
	return g, nil
}

// Lookup returns the room for an identifier in any accepted representation.
//
// Postcondition: Returns (room, true) if found, or (nil, false).
func (g *Graph) Lookup(id string) (*Room, bool) {
	r, ok := g.rooms[NormalizeID(id)]
	return r, ok
}

// StartRoom returns the canonical ID of the global start room.
func (g *Graph) StartRoom() string { return g.startRoom }

// RoomCount returns the total number of rooms in the graph.
func (g *Graph) RoomCount() int { return len(g.rooms) }

// Move resolves movement from a room in a direction. Resolution order:
//
//  1. the origin room must exist (ErrRoomNotFound)
//  2. the origin must have an exit in that direction (ErrNoExit)
//  3. the exit target must exist in the graph; a miss is a data-integrity
//     fault logged for the operator (*BrokenLinkError)
//  4. every requires_item trigger on the destination must be satisfied by
//     hasItem (*LockedError)
//  5. on success the destination is marked visited and the previous visited
//     state decides MoveResult.FirstVisit
//
// hasItem is the caller's inventory predicate; nil means "has nothing".
func (g *Graph) Move(fromID string, dir Direction, hasItem func(string) bool) (MoveResult, error) {
	from, ok := g.rooms[NormalizeID(fromID)]
	if !ok {
		return MoveResult{}, fmt.Errorf("%w: %q", ErrRoomNotFound, fromID)
	}

	target, ok := from.Exits[dir]
	if !ok {
		return MoveResult{}, ErrNoExit
	}

	dest, ok := g.rooms[NormalizeID(target)]
	if !ok {
		linkErr := &BrokenLinkError{From: from.ID, Direction: dir, Target: target}
		g.logger.Error("broken room link",
			zap.String("from", from.ID),
			zap.String("from_name", from.Name),
			zap.String("direction", string(dir)),
			zap.String("target", target),
		)
		return MoveResult{}, linkErr
	}

	for _, trig := range dest.Triggers {
		if trig.Condition != CondRequiresItem {
			continue
		}
		if hasItem == nil || !hasItem(trig.Item) {
			return MoveResult{}, &LockedError{Item: trig.Item}
		}
	}

	first := !dest.Visited
	dest.Visited = true
	return MoveResult{Room: dest, FirstVisit: first}, nil
}

// LinkFault describes one broken exit found by VerifyLinks.
type LinkFault struct {
	From      string
	Direction Direction
	Target    string
}

// VerifyLinks walks every room's exits and reports each exit whose target is
// absent from the graph. Each fault is logged; the sweep is diagnostic-only
// and never blocks startup.
//
// Postcondition: Returns a non-nil slice (may be empty).
func (g *Graph) VerifyLinks() []LinkFault {
	faults := []LinkFault{}
	for _, room := range g.rooms {
		for dir, target := range room.Exits {
			if _, ok := g.rooms[NormalizeID(target)]; !ok {
				faults = append(faults, LinkFault{From: room.ID, Direction: dir, Target: target})
				g.logger.Warn("room link verification fault",
					zap.String("from", room.ID),
					zap.String("from_name", room.Name),
					zap.String("direction", string(dir)),
					zap.String("target", target),
				)
			}
		}
	}
	return faults
}
