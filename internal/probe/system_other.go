//go:build !unix

package probe

import (
	"errors"

	"github.com/gzhole/suidprobe/internal/identity"
)

type System struct{}

func (System) Current() identity.Pair {
	return identity.Current()
}

func (System) Setuid(int) error {
	return errors.ErrUnsupported
}

func (System) Exec(string, []string, []string) error {
	return errors.ErrUnsupported
}
