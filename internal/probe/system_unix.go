//go:build unix

package probe

import (
	"golang.org/x/sys/unix"

	"github.com/gzhole/suidprobe/internal/identity"
)

// System is the live implementation of the probe's ports.
type System struct{}

func (System) Current() identity.Pair {
	return identity.Current()
}

// Setuid changes the uid of every thread in the process.
func (System) Setuid(uid int) error {
	return unix.Setuid(uid)
}

func (System) Exec(path string, argv []string, env []string) error {
	return unix.Exec(path, argv, env)
}
