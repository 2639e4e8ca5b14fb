// Package inspect reports the ambient inputs that decide whether the probe
// can escalate: identity, no_new_privs, capabilities and the permission
// bits of the probe's own executable.
package inspect

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

type Environment struct {
	RealID        uint32       `yaml:"real_id"`
	EffectiveID   uint32       `yaml:"effective_id"`
	SavedID       uint32       `yaml:"saved_id"`
	NoNewPrivs    bool         `yaml:"no_new_privs"`
	Capabilities  Capabilities `yaml:"capabilities"`
	Executable    Executable   `yaml:"executable"`
	StdinTerminal bool         `yaml:"stdin_terminal"`
}

type Capabilities struct {
	// Process is the text form of the process capability sets, "=" when empty.
	Process         string `yaml:"process"`
	SetuidEffective bool   `yaml:"setuid_effective"`
	SetuidPermitted bool   `yaml:"setuid_permitted"`
	SetuidBounding  bool   `yaml:"setuid_bounding"`
}

type Executable struct {
	Path   string `yaml:"path"`
	Owner  uint32 `yaml:"owner"`
	Mode   string `yaml:"mode"`
	Setuid bool   `yaml:"setuid"`
	// FileCapabilities is empty when the file carries none.
	FileCapabilities string `yaml:"file_capabilities,omitempty"`
}

// Collect samples the environment of the current process. exe is the path
// of the probe binary, usually os.Executable().
func Collect(exe string) (*Environment, error) {
	info, err := os.Stat(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to stat executable: %w", err)
	}

	env := &Environment{
		Executable: Executable{
			Path:   exe,
			Mode:   info.Mode().String(),
			Setuid: info.Mode()&os.ModeSetuid != 0,
		},
		StdinTerminal: term.IsTerminal(int(os.Stdin.Fd())),
	}

	collectPlatform(env, info)
	return env, nil
}

// ExpectEscalation reports whether setuid(0) should succeed given what was
// observed: the process is already euid 0, or CAP_SETUID is effective.
func (e *Environment) ExpectEscalation() bool {
	return e.EffectiveID == 0 || e.Capabilities.SetuidEffective
}

// Reasons explains the prediction made by ExpectEscalation.
func (e *Environment) Reasons() []string {
	var reasons []string

	if e.EffectiveID == 0 {
		reasons = append(reasons, "effective uid is already 0")
	}
	if e.Capabilities.SetuidEffective {
		reasons = append(reasons, "CAP_SETUID is in the effective set")
	}
	if e.NoNewPrivs && (e.Executable.Setuid || e.Executable.FileCapabilities != "") {
		reasons = append(reasons, "no_new_privs is set: setuid bit and file capabilities were ignored at exec")
	}
	if !e.Executable.Setuid && e.Executable.FileCapabilities == "" && !e.ExpectEscalation() {
		reasons = append(reasons, "executable has neither the setuid bit nor file capabilities")
	}
	if e.Executable.Setuid && e.Executable.Owner != 0 {
		reasons = append(reasons, fmt.Sprintf("setuid bit grants uid %d, not root", e.Executable.Owner))
	}
	if !e.Capabilities.SetuidBounding {
		reasons = append(reasons, "CAP_SETUID is not in the bounding set")
	}

	return reasons
}

func (e *Environment) YAML() ([]byte, error) {
	return yaml.Marshal(e)
}

func (e *Environment) WriteText(w io.Writer) {
	fmt.Fprintln(w, "─── Identity ──────────────────────────────────────────")
	fmt.Fprintf(w, "  uid=%d euid=%d suid=%d\n", e.RealID, e.EffectiveID, e.SavedID)
	fmt.Fprintf(w, "  no_new_privs: %s\n", yesNo(e.NoNewPrivs))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "─── Capabilities ──────────────────────────────────────")
	fmt.Fprintf(w, "  process: %s\n", e.Capabilities.Process)
	fmt.Fprintf(w, "  CAP_SETUID effective=%s permitted=%s bounding=%s\n",
		yesNo(e.Capabilities.SetuidEffective),
		yesNo(e.Capabilities.SetuidPermitted),
		yesNo(e.Capabilities.SetuidBounding))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "─── Executable ────────────────────────────────────────")
	fmt.Fprintf(w, "  %s (%s, owner %d)\n", e.Executable.Path, e.Executable.Mode, e.Executable.Owner)
	fmt.Fprintf(w, "  setuid bit: %s\n", yesNo(e.Executable.Setuid))
	if e.Executable.FileCapabilities != "" {
		fmt.Fprintf(w, "  file capabilities: %s\n", e.Executable.FileCapabilities)
	} else {
		fmt.Fprintln(w, "  file capabilities: none")
	}
	fmt.Fprintf(w, "  stdin is a terminal: %s\n", yesNo(e.StdinTerminal))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "─── Verdict ───────────────────────────────────────────")
	if e.ExpectEscalation() {
		fmt.Fprintln(w, "  ✅ escalation expected to succeed")
	} else {
		fmt.Fprintln(w, "  ⬚  escalation expected to be denied")
	}
	for _, r := range e.Reasons() {
		fmt.Fprintf(w, "     • %s\n", r)
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
