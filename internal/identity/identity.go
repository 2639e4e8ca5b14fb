// Package identity samples the real and effective user identity of the
// running process.
package identity

import "fmt"

// Superuser is the uid the probe tries to become.
const Superuser uint32 = 0

// Pair is the real and effective uid of the process at one point in time.
type Pair struct {
	Real      uint32 `json:"real_id" yaml:"real_id"`
	Effective uint32 `json:"effective_id" yaml:"effective_id"`
}

// Current returns the identity of the calling process.
func Current() Pair {
	return current()
}

// Is reports whether both the real and effective uid equal uid.
func (p Pair) Is(uid uint32) bool {
	return p.Real == uid && p.Effective == uid
}

// Privileged reports whether the effective uid is the superuser.
func (p Pair) Privileged() bool {
	return p.Effective == Superuser
}

func (p Pair) String() string {
	return fmt.Sprintf("uid=%d euid=%d", p.Real, p.Effective)
}
