package probe

import "github.com/gzhole/suidprobe/internal/identity"

// State is a node of the probe's state machine.
type State int

const (
	StateStart State = iota
	StateElevated
	StateEscalationFailed
	StateReplacementFailed
	// StateReplaced is never observed by the probe itself: the process
	// image belongs to the shell by then. Only a fake Replacer returns it.
	StateReplaced
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateElevated:
		return "elevated"
	case StateEscalationFailed:
		return "escalation_failed"
	case StateReplacementFailed:
		return "replacement_failed"
	case StateReplaced:
		return "replaced"
	default:
		return "unknown"
	}
}

// Terminal reports whether the probe stops in s.
func (s State) Terminal() bool {
	switch s {
	case StateEscalationFailed, StateReplacementFailed, StateReplaced:
		return true
	}
	return false
}

// Outcome is the result of one escalation attempt. Identity is only
// meaningful when Err is nil.
type Outcome struct {
	Identity identity.Pair
	Err      error
}

func (o Outcome) Succeeded() bool {
	return o.Err == nil
}

// IdentitySource reads the ambient identity of the process.
type IdentitySource interface {
	Current() identity.Pair
}

// Escalator changes the real and effective uid of the whole process.
type Escalator interface {
	Setuid(uid int) error
}

// Replacer replaces the process image. A real implementation only
// returns on failure.
type Replacer interface {
	Exec(path string, argv []string, env []string) error
}

// Event describes one transition of the state machine.
type Event struct {
	State    State
	Identity identity.Pair
	Command  string
	Err      error
}

// Recorder receives events as the probe moves through its states.
type Recorder interface {
	Record(Event)
}
