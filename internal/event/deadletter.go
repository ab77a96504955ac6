package event

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/moniyo/financequest/internal/logger"
)

// DeadLetterSchemaVersion is bumped whenever DeadLetterEntry changes shape
const DeadLetterSchemaVersion = "1.0"

// DeadLetterEntry is one line of the dead-letter file
type DeadLetterEntry struct {
	SchemaVersion string    `json:"schema_version"`
	Timestamp     time.Time `json:"timestamp"`
	Event         Event     `json:"event"`
	Attempts      int       `json:"attempts"`
	LastError     string    `json:"last_error,omitempty"`
}

// DeadLetterWriter appends undeliverable events to a JSON lines file
type DeadLetterWriter struct {
	mu     sync.Mutex
	file   *os.File
	enc    *json.Encoder
	now    func() time.Time
	closed bool
}

// NewDeadLetterWriter opens path for appending, creating it when missing
func NewDeadLetterWriter(path string) (*DeadLetterWriter, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, DeadLetterFilePermissions)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", ErrMsgOpenDeadLetter, path, err)
	}
	return &DeadLetterWriter{file: f, enc: json.NewEncoder(f), now: time.Now}, nil
}

// Write appends evt with the number of attempts made and the final error
func (w *DeadLetterWriter) Write(evt Event, attempts int, lastErr error) error {
	entry := DeadLetterEntry{
		SchemaVersion: DeadLetterSchemaVersion,
		Event:         evt,
		Attempts:      attempts,
	}
	if lastErr != nil {
		entry.LastError = lastErr.Error()
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return os.ErrClosed
	}
	entry.Timestamp = w.now().UTC()

	logger.FromContext(context.Background()).Warn(LogMsgEventDeadLettered,
		"event_type", evt.Type,
		"attempts", attempts,
		"error", entry.LastError)

	// Encode terminates each entry with a newline
	return w.enc.Encode(entry)
}

// Close flushes and closes the file. Writes after Close fail with os.ErrClosed.
func (w *DeadLetterWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	syncErr := w.file.Sync()
	if err := w.file.Close(); err != nil {
		return err
	}
	return syncErr
}

// ReadDeadLetters parses a dead-letter stream. Blank lines are skipped and a
// malformed line fails with its line number.
func ReadDeadLetters(r io.Reader) ([]DeadLetterEntry, error) {
	var entries []DeadLetterEntry
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), DeadLetterMaxLineBytes)

	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var entry DeadLetterEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			return entries, fmt.Errorf("%s line %d: %w", ErrMsgParseDeadLetter, line, err)
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return entries, fmt.Errorf("%s: %w", ErrMsgParseDeadLetter, err)
	}
	return entries, nil
}

// DeadLetterSummary aggregates dead-lettered events of one type
type DeadLetterSummary struct {
	Type      Type
	Count     int
	First     time.Time
	Last      time.Time
	LastError string
}

// SummarizeDeadLetters groups entries by event type, most frequent first
func SummarizeDeadLetters(entries []DeadLetterEntry) []DeadLetterSummary {
	byType := make(map[Type]*DeadLetterSummary)
	for _, e := range entries {
		s, ok := byType[e.Event.Type]
		if !ok {
			s = &DeadLetterSummary{Type: e.Event.Type, First: e.Timestamp, Last: e.Timestamp}
			byType[e.Event.Type] = s
		}
		s.Count++
		if e.Timestamp.Before(s.First) {
			s.First = e.Timestamp
		}
		if !e.Timestamp.Before(s.Last) {
			s.Last = e.Timestamp
			s.LastError = e.LastError
		}
	}

	out := make([]DeadLetterSummary, 0, len(byType))
	for _, s := range byType {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Type < out[j].Type
	})
	return out
}
