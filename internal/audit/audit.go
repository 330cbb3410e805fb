package audit

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"
)

// Audit event kinds
const (
	EventValidationFail = "VALIDATION_FAIL"
	EventContentScan    = "CONTENT_SCAN"
	EventSizeLimit      = "SIZE_LIMIT"
	EventFileCreation   = "FILE_CREATION"
)

// Sink receives security audit events. It is injected wherever events are
// emitted so tests can substitute an in-memory implementation.
type Sink interface {
	LogEvent(kind, detail string)
}

// Logger appends audit events to a shared append-only log file.
// Each event is a single line: <RFC3339 timestamp> - <kind> - <detail>.
// Appends are serialized behind a mutex and issued as one write per line so
// concurrent writers never interleave partial lines.
type Logger struct {
	mu     sync.Mutex
	logger *log.Logger
	file   *os.File
}

// NewLogger opens (creating if absent) the audit log at logPath
func NewLogger(logPath string) (*Logger, error) {
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("could not open audit log: %w", err)
	}

	return &Logger{
		logger: log.New(file, "", 0),
		file:   file,
	}, nil
}

// LogEvent appends a single audit event. Logging is best-effort: write
// failures are not surfaced to the caller.
func (l *Logger) LogEvent(kind, detail string) {
	if l.logger == nil {
		return
	}

	line := fmt.Sprintf("%s - %s - %s",
		time.Now().Format(time.RFC3339),
		kind,
		detail,
	)

	l.mu.Lock()
	l.logger.Println(line)
	l.mu.Unlock()
}

// Close closes the underlying log file
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// MemorySink collects events in memory for tests
type MemorySink struct {
	mu     sync.Mutex
	events []Event
}

// Event is a recorded audit event
type Event struct {
	Kind   string
	Detail string
}

func (s *MemorySink) LogEvent(kind, detail string) {
	s.mu.Lock()
	s.events = append(s.events, Event{Kind: kind, Detail: detail})
	s.mu.Unlock()
}

// Events returns a copy of the recorded events
func (s *MemorySink) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}
