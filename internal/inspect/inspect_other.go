//go:build !linux

package inspect

import (
	"os"

	"github.com/gzhole/suidprobe/internal/identity"
)

// Capabilities and no_new_privs are Linux concepts; elsewhere only the
// identity is reported.
func collectPlatform(env *Environment, _ os.FileInfo) {
	id := identity.Current()
	env.RealID = id.Real
	env.EffectiveID = id.Effective
	env.SavedID = id.Effective
}
