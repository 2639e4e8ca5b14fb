// Package probe attempts to become the superuser and, on success, replaces
// the process with a shell that keeps the elevated effective uid.
//
// The two privileged operations sit behind the Escalator and Replacer
// ports so the state machine can be driven without real privileges.
package probe

import (
	"fmt"
	"io"
	"os"

	"github.com/gzhole/suidprobe/internal/identity"
)

// Options configures a Probe. Zero values select the live system, the
// default shell, os.Stdout and the current environment.
type Options struct {
	Out       io.Writer
	Identity  IdentitySource
	Escalator Escalator
	Replacer  Replacer
	Shell     Shell
	Env       []string
	Recorder  Recorder
}

type Probe struct {
	out   io.Writer
	ids   IdentitySource
	esc   Escalator
	rep   Replacer
	shell Shell
	env   []string
	rec   Recorder
}

func New(opts Options) *Probe {
	p := &Probe{
		out:   opts.Out,
		ids:   opts.Identity,
		esc:   opts.Escalator,
		rep:   opts.Replacer,
		shell: opts.Shell,
		env:   opts.Env,
		rec:   opts.Recorder,
	}

	if p.out == nil {
		p.out = os.Stdout
	}
	if p.ids == nil {
		p.ids = System{}
	}
	if p.esc == nil {
		p.esc = System{}
	}
	if p.rep == nil {
		p.rep = System{}
	}
	if p.shell.Path == "" {
		p.shell.Path = DefaultShell
	}
	if p.env == nil {
		p.env = os.Environ()
	}

	return p
}

// ReportIdentity samples the current real and effective uid.
func (p *Probe) ReportIdentity() identity.Pair {
	return p.ids.Current()
}

// AttemptEscalation asks the kernel to set both the real and effective uid
// to target. It never retries.
func (p *Probe) AttemptEscalation(target uint32) Outcome {
	if err := p.esc.Setuid(int(target)); err != nil {
		return Outcome{Err: &Error{Op: "setuid", Kind: EscalationDenied, Err: err}}
	}

	after := p.ReportIdentity()
	if !after.Is(target) {
		return Outcome{Err: &Error{
			Op:   "setuid",
			Kind: EscalationDenied,
			Err:  fmt.Errorf("%w: have %s, want uid=%d euid=%d", ErrPartialEscalation, after, target, target),
		}}
	}

	return Outcome{Identity: after}
}

// ReplaceWithPrivilegedShell executes the shell with the privilege
// preservation flag. It returns only if execve failed.
func (p *Probe) ReplaceWithPrivilegedShell() error {
	err := p.rep.Exec(p.shell.Path, p.shell.Argv(), p.env)
	if err == nil {
		return nil
	}
	return &Error{Op: "execve " + p.shell.Path, Kind: ReplacementUnavailable, Err: err}
}

// Run drives the probe from Start to a terminal state. The returned error
// is non-nil exactly when the state is EscalationFailed or
// ReplacementFailed.
func (p *Probe) Run() (State, error) {
	before := p.ReportIdentity()
	fmt.Fprintf(p.out, "[*] Before: %s\n", before)
	p.record(Event{State: StateStart, Identity: before})

	outcome := p.AttemptEscalation(identity.Superuser)
	if !outcome.Succeeded() {
		return p.fail(StateEscalationFailed, before, outcome.Err)
	}

	fmt.Fprintf(p.out, "[*] After : %s\n", outcome.Identity)
	p.record(Event{State: StateElevated, Identity: outcome.Identity, Command: p.shell.CommandLine()})

	if err := p.ReplaceWithPrivilegedShell(); err != nil {
		return p.fail(StateReplacementFailed, outcome.Identity, err)
	}

	return StateReplaced, nil
}

func (p *Probe) fail(state State, id identity.Pair, err error) (State, error) {
	fmt.Fprintf(p.out, "[!] %v\n", err)

	ev := Event{State: state, Identity: id, Err: err}
	if state == StateReplacementFailed {
		ev.Command = p.shell.CommandLine()
	}
	p.record(ev)

	return state, err
}

func (p *Probe) record(ev Event) {
	if p.rec != nil {
		p.rec.Record(ev)
	}
}
