package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/gzhole/suidprobe/internal/config"
	"github.com/gzhole/suidprobe/internal/logger"
	"github.com/gzhole/suidprobe/internal/probe"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Ports used by the root command. Tests replace them with fakes.
var (
	identitySource probe.IdentitySource = probe.System{}
	escalator      probe.Escalator      = probe.System{}
	replacer       probe.Replacer       = probe.System{}
)

func probeCommand(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(shellPath, logPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	opts := probe.Options{
		Out:       cmd.OutOrStdout(),
		Identity:  identitySource,
		Escalator: escalator,
		Replacer:  replacer,
		Shell:     probe.Shell{Path: cfg.Shell},
	}

	if cfg.LogPath != "" {
		auditLogger, err := logger.New(cfg.LogPath)
		if err != nil {
			return fmt.Errorf("failed to initialize audit logger: %w", err)
		}
		defer auditLogger.Close()

		opts.Recorder = &auditRecorder{
			log:         auditLogger,
			executable:  cfg.Executable,
			interactive: isInteractive(),
		}
	}

	_, err = probe.New(opts).Run()
	return err
}

func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// auditRecorder writes probe transitions to the audit log. Write failures
// are reported but never change the probe's outcome.
type auditRecorder struct {
	log         *logger.AuditLogger
	executable  string
	interactive bool
}

func (r *auditRecorder) Record(ev probe.Event) {
	event := logger.ProbeEvent{
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		State:       ev.State.String(),
		RealID:      ev.Identity.Real,
		EffectiveID: ev.Identity.Effective,
		Command:     ev.Command,
		Executable:  r.executable,
		Interactive: r.interactive,
	}
	if ev.Err != nil {
		event.Error = ev.Err.Error()
	}

	if err := r.log.Log(event); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to write audit log: %v\n", err)
	}
}
