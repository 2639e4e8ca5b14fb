package logger

import (
	"bufio"
	"encoding/json"
	"os"
	"strings"
	"sync"
)

// defaultMaxLogBytes is the size at which New moves the log aside to ".1".
const defaultMaxLogBytes = 5 * 1024 * 1024

type ProbeEvent struct {
	Timestamp   string `json:"timestamp"`
	State       string `json:"state"`
	RealID      uint32 `json:"real_id"`
	EffectiveID uint32 `json:"effective_id"`
	Command     string `json:"command,omitempty"`
	Error       string `json:"error,omitempty"`
	Executable  string `json:"executable,omitempty"`
	Interactive bool   `json:"interactive"`
}

type AuditLogger struct {
	file *os.File
	mu   sync.Mutex
}

// New opens path for appending. The descriptor is close-on-exec, so it does
// not leak into the shell the probe replaces itself with.
func New(path string) (*AuditLogger, error) {
	if err := rotate(path); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, err
	}

	return &AuditLogger{file: file}, nil
}

func (l *AuditLogger) Log(event ProbeEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	data = append(data, '\n')
	_, err = l.file.Write(data)
	return err
}

func (l *AuditLogger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// Read loads every event in path. A missing file has no events; malformed
// lines are skipped.
func Read(path string) ([]ProbeEvent, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	var events []ProbeEvent
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		var event ProbeEvent
		if err := json.Unmarshal([]byte(line), &event); err != nil {
			continue
		}
		events = append(events, event)
	}
	return events, scanner.Err()
}

func rotate(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if info.Size() < defaultMaxLogBytes {
		return nil
	}
	return os.Rename(path, path+".1")
}
