package probe

import "errors"

// Kind classifies a probe failure.
type Kind int

const (
	// EscalationDenied means the kernel or sandbox rejected the uid change.
	EscalationDenied Kind = iota + 1
	// ReplacementUnavailable means the shell could not be executed.
	ReplacementUnavailable
)

func (k Kind) String() string {
	switch k {
	case EscalationDenied:
		return "EscalationDenied"
	case ReplacementUnavailable:
		return "ReplacementUnavailable"
	default:
		return "Unknown"
	}
}

var (
	ErrEscalationDenied       = errors.New("escalation denied")
	ErrReplacementUnavailable = errors.New("replacement unavailable")

	// ErrPartialEscalation is returned when setuid reported success but
	// the resampled identity is not the requested one.
	ErrPartialEscalation = errors.New("identity not fully changed")
)

// Error is a terminal probe failure. Err carries the OS error verbatim.
type Error struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinels so callers can use errors.Is without
// unpacking the OS error.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrEscalationDenied:
		return e.Kind == EscalationDenied
	case ErrReplacementUnavailable:
		return e.Kind == ReplacementUnavailable
	}
	return false
}
