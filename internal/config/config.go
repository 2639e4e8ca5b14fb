package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gzhole/suidprobe/internal/probe"
)

type Config struct {
	// Shell is the interpreter executed after a successful escalation.
	Shell string
	// LogPath enables the JSONL audit log when non-empty.
	LogPath string
	// Executable is the probe binary whose permission bits are inspected.
	Executable string
}

func Load(shell, logPath string) (*Config, error) {
	cfg := &Config{
		Shell:   probe.DefaultShell,
		LogPath: logPath,
	}

	if shell != "" {
		// execve does not search PATH.
		if !filepath.IsAbs(shell) {
			return nil, fmt.Errorf("shell path must be absolute: %q", shell)
		}
		cfg.Shell = filepath.Clean(shell)
	}

	if cfg.LogPath != "" {
		if err := ensureDir(filepath.Dir(cfg.LogPath)); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	exe, err := os.Executable()
	if err != nil {
		exe = os.Args[0]
	}
	cfg.Executable = exe

	return cfg, nil
}

func ensureDir(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, 0700)
	}
	return nil
}
