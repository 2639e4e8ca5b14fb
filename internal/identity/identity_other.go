//go:build !unix

package identity

import "os"

// Platforms without uids report -1, which maps to the overflow uid.
func current() Pair {
	return Pair{
		Real:      uint32(os.Getuid()),
		Effective: uint32(os.Geteuid()),
	}
}
