package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/gzhole/suidprobe/internal/probe"
	"github.com/spf13/cobra"
)

var (
	shellPath string
	logPath   string
)

var rootCmd = &cobra.Command{
	Use:   "suidprobe",
	Short: "suidprobe - privilege escalation probe for sandbox testing",
	Long: `suidprobe tries once to become uid 0 and, if that works, replaces itself
with "sh -p" so the shell keeps the elevated effective uid. Run it inside a
container to check whether no-new-privileges, dropped capabilities or a
missing setuid bit stop the escalation.

Output:
  [*] Before: uid=<real> euid=<effective>
  [*] After : uid=<real> euid=<effective>   (escalation succeeded)
  [!] <operation>: <error>                   (exit status 1)`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          probeCommand,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&shellPath, "shell", "", "Absolute path of the shell to execute (default: /bin/sh)")
	rootCmd.PersistentFlags().StringVar(&logPath, "log", "", "Path to JSONL audit log file (default: disabled)")
}

// Execute runs the command tree. Probe failures have already been reported
// on stdout; anything else is printed to stderr here.
func Execute() error {
	err := rootCmd.Execute()
	var perr *probe.Error
	if err != nil && !errors.As(err, &perr) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}
