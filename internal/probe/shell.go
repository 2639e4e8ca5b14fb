package probe

import (
	"path/filepath"
	"strconv"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

const (
	DefaultShell = "/bin/sh"

	// PreservePrivilegesFlag stops sh from resetting the effective uid
	// to the real uid on startup.
	PreservePrivilegesFlag = "-p"
)

// Shell is the interpreter the probe replaces itself with.
type Shell struct {
	Path string
}

// Argv returns the argument vector passed to execve, argv[0] included.
func (s Shell) Argv() []string {
	return []string{filepath.Base(s.Path), PreservePrivilegesFlag}
}

// CommandLine renders the invocation as a POSIX shell command line.
func (s Shell) CommandLine() string {
	words := []string{s.Path, PreservePrivilegesFlag}
	quoted := make([]string, len(words))
	for i, w := range words {
		q, err := syntax.Quote(w, syntax.LangPOSIX)
		if err != nil {
			// Non-printable bytes cannot be quoted in POSIX sh.
			q = strconv.Quote(w)
		}
		quoted[i] = q
	}
	return strings.Join(quoted, " ")
}
