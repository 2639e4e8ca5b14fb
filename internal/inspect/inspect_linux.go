//go:build linux

package inspect

import (
	"os"
	"syscall"

	"golang.org/x/sys/unix"
	"kernel.org/pub/linux/libs/security/libcap/cap"
)

func collectPlatform(env *Environment, info os.FileInfo) {
	ruid, euid, suid := unix.Getresuid()
	env.RealID = uint32(ruid)
	env.EffectiveID = uint32(euid)
	env.SavedID = uint32(suid)

	if nnp, err := unix.PrctlRetInt(unix.PR_GET_NO_NEW_PRIVS, 0, 0, 0, 0); err == nil {
		env.NoNewPrivs = nnp == 1
	}

	proc := cap.GetProc()
	env.Capabilities.Process = proc.String()
	env.Capabilities.SetuidEffective, _ = proc.GetFlag(cap.Effective, cap.SETUID)
	env.Capabilities.SetuidPermitted, _ = proc.GetFlag(cap.Permitted, cap.SETUID)
	env.Capabilities.SetuidBounding, _ = cap.GetBound(cap.SETUID)

	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		env.Executable.Owner = st.Uid
	}

	// A file without the security.capability xattr reports an error.
	if fc, err := cap.GetFile(env.Executable.Path); err == nil {
		env.Executable.FileCapabilities = fc.String()
	}
}
