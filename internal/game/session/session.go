// Package session holds the per-connection transient state that is never
// persisted: where the player currently stands, the turn counter, and the
// scrollback of lines produced so far.
package session

// State is the mutable state of one play session. The engine is
// single-threaded, so State carries no locking.
type State struct {
	// CurrentRoom is the room the player occupies. The persisted player
	// location is only updated from here on save.
	CurrentRoom string
	// Turn counts executed commands, driving idle ambience rolls.
	Turn int
	// MOTD is shown once at session start.
	MOTD string
	// Quitting is set by the quit command; the outer loop checks it after
	// every dispatch.
	Quitting bool

	log []string
}

// New creates a session positioned at startRoom.
func New(startRoom, motd string) *State {
	return &State{CurrentRoom: startRoom, MOTD: motd}
}

// Append adds lines to the scrollback. Empty calls are no-ops.
func (s *State) Append(lines ...string) {
	s.log = append(s.log, lines...)
}

// Lines returns the scrollback in append order.
func (s *State) Lines() []string {
	return s.log
}

// Clear drops the scrollback. The turn counter and location are untouched.
func (s *State) Clear() {
	s.log = nil
}

// NextTurn advances the turn counter and returns the new value.
func (s *State) NextTurn() int {
	s.Turn++
	return s.Turn
}
