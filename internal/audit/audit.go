// Package audit records environment lifecycle events.
// Events are stored as JSON Lines (JSONL) files, one per environment, and
// outlive the environment they describe.
package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/google/uuid"
)

// EventType classifies a lifecycle event.
type EventType string

const (
	EventCreate EventType = "create"
	EventStart  EventType = "start"
	EventStop   EventType = "stop"
	EventDelete EventType = "delete"
	EventExec   EventType = "exec"
	EventPrune  EventType = "prune"
)

// Outcome of the recorded operation.
const (
	OutcomeOK     = "ok"
	OutcomeFailed = "failed"
)

// Event represents a single audit log entry.
type Event struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Type        EventType `json:"type"`
	Environment string    `json:"environment"`
	Backend     string    `json:"backend,omitempty"`
	Outcome     string    `json:"outcome"`
	Details     string    `json:"details,omitempty"`
	Error       string    `json:"error,omitempty"`
}

// Recorder accepts events. Recording never fails the operation it describes.
type Recorder interface {
	Record(Event)
}

// Logger writes and reads audit events.
// Events are stored in {dir}/{environment}.jsonl.
type Logger struct {
	dir string
}

// NewLogger creates a new audit logger rooted at dir.
func NewLogger(dir string) *Logger {
	return &Logger{dir: dir}
}

// eventPath returns the path to the JSONL event log for an environment.
func (l *Logger) eventPath(name string) (string, error) {
	return securejoin.SecureJoin(l.dir, name+".jsonl")
}

// Log appends an event to the environment's audit log.
func (l *Logger) Log(event Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.Outcome == "" {
		event.Outcome = OutcomeOK
	}

	path, err := l.eventPath(event.Environment)
	if err != nil {
		return fmt.Errorf("invalid audit log path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create audit log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}

	return nil
}

// Record implements Recorder. Write failures are dropped.
func (l *Logger) Record(event Event) {
	_ = l.Log(event)
}

// Result builds an event for an operation outcome.
func Result(eventType EventType, name, backend string, err error) Event {
	e := Event{
		Type:        eventType,
		Environment: name,
		Backend:     backend,
		Outcome:     OutcomeOK,
	}
	if err != nil {
		e.Outcome = OutcomeFailed
		e.Error = err.Error()
	}
	return e
}

// Events reads all events for an environment in chronological order.
func (l *Logger) Events(name string) ([]Event, error) {
	path, err := l.eventPath(name)
	if err != nil {
		return nil, fmt.Errorf("invalid audit log path: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			continue // Skip malformed lines
		}
		events = append(events, event)
	}

	if err := scanner.Err(); err != nil {
		return events, fmt.Errorf("error reading audit log: %w", err)
	}

	return events, nil
}

// Tail returns at most the last n events. n <= 0 returns all of them.
func (l *Logger) Tail(name string, n int) ([]Event, error) {
	events, err := l.Events(name)
	if n > 0 && len(events) > n {
		events = events[len(events)-n:]
	}
	return events, err
}

// Remove deletes the audit log for an environment.
func (l *Logger) Remove(name string) error {
	path, err := l.eventPath(name)
	if err != nil {
		return fmt.Errorf("invalid audit log path: %w", err)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Nop discards every event.
type Nop struct{}

func (Nop) Record(Event) {}

var (
	_ Recorder = (*Logger)(nil)
	_ Recorder = Nop{}
)
