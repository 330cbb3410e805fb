package audit

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestLoggerCreatesFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "security_audit.log")

	logger, err := NewLogger(logPath)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	defer logger.Close()

	if _, err := os.Stat(logPath); err != nil {
		t.Errorf("Audit log file was not created: %v", err)
	}
}

func TestLoggerLineFormat(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "security_audit.log")

	logger, err := NewLogger(logPath)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	logger.LogEvent(EventValidationFail, "Invalid file type: .sh")
	logger.Close()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read audit log: %v", err)
	}

	line := strings.TrimSpace(string(data))
	parts := strings.SplitN(line, " - ", 3)
	if len(parts) != 3 {
		t.Fatalf("Expected '<timestamp> - <kind> - <detail>', got %q", line)
	}

	if _, err := time.Parse(time.RFC3339, parts[0]); err != nil {
		t.Errorf("Timestamp is not RFC3339: %q", parts[0])
	}
	if parts[1] != EventValidationFail {
		t.Errorf("Expected kind %q, got %q", EventValidationFail, parts[1])
	}
	if parts[2] != "Invalid file type: .sh" {
		t.Errorf("Unexpected detail: %q", parts[2])
	}
}

func TestLoggerAppendsAcrossOpens(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "security_audit.log")

	for i := 0; i < 2; i++ {
		logger, err := NewLogger(logPath)
		if err != nil {
			t.Fatalf("NewLogger failed: %v", err)
		}
		logger.LogEvent(EventContentScan, "Found pattern: eval\\(")
		logger.Close()
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read audit log: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Errorf("Expected 2 lines after two opens, got %d", len(lines))
	}
}

func TestLoggerConcurrentEvents(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "security_audit.log")

	logger, err := NewLogger(logPath)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	const writers = 8
	const perWriter = 25

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				logger.LogEvent(EventContentScan, "Found pattern: socket\\.")
			}
		}()
	}
	wg.Wait()
	logger.Close()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read audit log: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != writers*perWriter {
		t.Fatalf("Expected %d lines, got %d", writers*perWriter, len(lines))
	}

	// No interleaved partial lines: every line parses
	for _, line := range lines {
		if !strings.Contains(line, " - "+EventContentScan+" - ") {
			t.Errorf("Corrupt audit line: %q", line)
		}
	}
}
