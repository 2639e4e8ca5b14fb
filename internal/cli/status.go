package cli

import (
	"fmt"
	"os"

	"github.com/gzhole/suidprobe/internal/config"
	"github.com/gzhole/suidprobe/internal/inspect"
	"github.com/gzhole/suidprobe/internal/probe"
	"github.com/spf13/cobra"
)

var statusFormat string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the identity, capabilities and file bits that decide escalation",
	Long: `Report the ambient inputs the probe depends on without attempting
any escalation: real/effective/saved uid, no_new_privs, CAP_SETUID, and the
setuid bit and file capabilities of the suidprobe binary.

  suidprobe status
  suidprobe status --format yaml`,
	Args: cobra.NoArgs,
	RunE: statusCommand,
}

func init() {
	statusCmd.Flags().StringVar(&statusFormat, "format", "text", "Output format: text or yaml")
	rootCmd.AddCommand(statusCmd)
}

func statusCommand(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(shellPath, logPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	env, err := inspect.Collect(cfg.Executable)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	switch statusFormat {
	case "yaml":
		data, err := env.YAML()
		if err != nil {
			return fmt.Errorf("failed to encode status: %w", err)
		}
		_, err = out.Write(data)
		return err

	case "text":
		fmt.Fprintln(out, "═══════════════════════════════════════════════════════")
		fmt.Fprintln(out, "  suidprobe Status")
		fmt.Fprintln(out, "═══════════════════════════════════════════════════════")
		fmt.Fprintln(out)

		shell := probe.Shell{Path: cfg.Shell}
		if _, err := os.Stat(cfg.Shell); err == nil {
			fmt.Fprintf(out, "  Shell:     %s\n", shell.CommandLine())
		} else {
			fmt.Fprintf(out, "  Shell:     %s (missing)\n", shell.CommandLine())
		}
		if cfg.LogPath != "" {
			fmt.Fprintf(out, "  Audit log: %s\n", cfg.LogPath)
		}
		fmt.Fprintln(out)

		env.WriteText(out)
		return nil

	default:
		return fmt.Errorf("unknown format %q (want text or yaml)", statusFormat)
	}
}
