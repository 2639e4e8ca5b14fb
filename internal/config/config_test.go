package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gzhole/suidprobe/internal/probe"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Shell != probe.DefaultShell {
		t.Errorf("expected shell %s, got %s", probe.DefaultShell, cfg.Shell)
	}
	if cfg.LogPath != "" {
		t.Errorf("audit log should be disabled by default, got %q", cfg.LogPath)
	}
	if cfg.Executable == "" {
		t.Error("expected executable path to be resolved")
	}
}

func TestLoad_ShellOverride(t *testing.T) {
	cfg, err := Load("/usr/local/bin//dash", "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Shell != "/usr/local/bin/dash" {
		t.Errorf("expected cleaned shell path, got %s", cfg.Shell)
	}
}

func TestLoad_RelativeShellRejected(t *testing.T) {
	if _, err := Load("sh", ""); err == nil {
		t.Error("expected relative shell path to be rejected")
	}
}

func TestLoad_CreatesLogDir(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "nested", "audit.jsonl")

	cfg, err := Load("", logPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LogPath != logPath {
		t.Errorf("expected log path %s, got %s", logPath, cfg.LogPath)
	}

	info, err := os.Stat(filepath.Dir(logPath))
	if err != nil {
		t.Fatalf("log directory not created: %v", err)
	}
	if !info.IsDir() {
		t.Error("expected log directory")
	}
}
