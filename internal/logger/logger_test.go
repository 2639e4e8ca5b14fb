package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestAuditLogger_Log(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test_audit.jsonl")

	logger, err := New(logPath)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	defer func() {
		_ = logger.Close()
	}()

	event := ProbeEvent{
		Timestamp:   "2026-02-02T12:00:00Z",
		State:       "escalation_failed",
		RealID:      1000,
		EffectiveID: 1000,
		Error:       "setuid: operation not permitted",
	}

	if err := logger.Log(event); err != nil {
		t.Fatalf("failed to log event: %v", err)
	}

	_ = logger.Close()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}

	var parsed ProbeEvent
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("failed to parse log line as JSON: %v", err)
	}

	if parsed.State != "escalation_failed" {
		t.Errorf("expected state 'escalation_failed', got '%s'", parsed.State)
	}

	if parsed.Error != "setuid: operation not permitted" {
		t.Errorf("expected error text to be kept verbatim, got '%s'", parsed.Error)
	}
}

func TestAuditLogger_Rotation(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "audit.jsonl")

	// Pre-create the log file already at the rotation limit.
	big := make([]byte, defaultMaxLogBytes)
	if err := os.WriteFile(logPath, big, 0600); err != nil {
		t.Fatalf("failed to seed large log file: %v", err)
	}

	lg, err := New(logPath)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = lg.Close() }()

	event := ProbeEvent{
		Timestamp: "2026-03-01T00:00:00Z",
		State:     "start",
	}
	if err := lg.Log(event); err != nil {
		t.Fatalf("Log after rotation failed: %v", err)
	}

	if _, err := os.Stat(logPath + ".1"); err != nil {
		t.Errorf("expected rotated file %s.1 to exist: %v", logPath, err)
	}

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("fresh log file missing: %v", err)
	}
	if info.Size() >= defaultMaxLogBytes {
		t.Errorf("fresh log file is still %d bytes; expected < %d", info.Size(), defaultMaxLogBytes)
	}
}

func TestAuditLogger_FilePermissions(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "secure_audit.jsonl")

	logger, err := New(logPath)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	_ = logger.Close()

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("failed to stat log file: %v", err)
	}

	perm := info.Mode().Perm()
	if perm != 0600 {
		t.Errorf("expected file permissions 0600, got %04o", perm)
	}
}

func TestRead_SkipsMalformedLines(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "audit.jsonl")
	content := `{"timestamp":"2026-03-01T00:00:00Z","state":"start","real_id":1000,"effective_id":1000}
not json

{"timestamp":"2026-03-01T00:00:00Z","state":"elevated","real_id":0,"effective_id":0,"command":"/bin/sh -p"}
`
	if err := os.WriteFile(logPath, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	events, err := Read(logPath)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[1].State != "elevated" || events[1].Command != "/bin/sh -p" {
		t.Errorf("unexpected second event: %+v", events[1])
	}
}

func TestRead_MissingFile(t *testing.T) {
	events, err := Read(filepath.Join(t.TempDir(), "nope.jsonl"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if len(events) != 0 {
		t.Errorf("expected no events, got %d", len(events))
	}
}
