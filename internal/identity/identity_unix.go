//go:build unix

package identity

import "golang.org/x/sys/unix"

func current() Pair {
	return Pair{
		Real:      uint32(unix.Getuid()),
		Effective: uint32(unix.Geteuid()),
	}
}
