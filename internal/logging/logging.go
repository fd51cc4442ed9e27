// Package logging provides the injected, bounded log sink the scoring and
// extraction components report through. The sink is owned by the hosting
// process and passed explicitly; there is no process-wide singleton.
package logging

import (
	"log/slog"
	"sync"
	"time"
)

// Level classifies a log entry
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Entry is one structured log record
type Entry struct {
	Time     time.Time      `json:"time"`
	Level    Level          `json:"level"`
	Message  string         `json:"message"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Sink accepts structured log entries. Implementations must be best-effort
// and non-blocking; components never fail because logging failed.
type Sink interface {
	Log(level Level, message string, metadata map[string]any)
}

// Ring is a Sink with bounded retention: it keeps the most recent entries
// and optionally forwards each one to slog.
type Ring struct {
	mu      sync.Mutex
	entries []Entry
	next    int
	full    bool
	forward *slog.Logger // nil when forwarding is disabled
}

// NewRing creates a ring sink retaining the most recent size entries.
func NewRing(size int, forward *slog.Logger) *Ring {
	if size <= 0 {
		size = 256
	}
	return &Ring{
		entries: make([]Entry, size),
		forward: forward,
	}
}

// Log records an entry, evicting the oldest when the ring is full.
func (r *Ring) Log(level Level, message string, metadata map[string]any) {
	e := Entry{
		Time:     time.Now(),
		Level:    level,
		Message:  message,
		Metadata: metadata,
	}

	r.mu.Lock()
	r.entries[r.next] = e
	r.next = (r.next + 1) % len(r.entries)
	if r.next == 0 {
		r.full = true
	}
	r.mu.Unlock()

	if r.forward != nil {
		attrs := make([]any, 0, len(metadata)*2)
		for k, v := range metadata {
			attrs = append(attrs, k, v)
		}
		switch level {
		case LevelDebug:
			r.forward.Debug(message, attrs...)
		case LevelWarn:
			r.forward.Warn(message, attrs...)
		case LevelError:
			r.forward.Error(message, attrs...)
		default:
			r.forward.Info(message, attrs...)
		}
	}
}

// Recent returns the retained entries, oldest first.
func (r *Ring) Recent() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.full {
		out := make([]Entry, r.next)
		copy(out, r.entries[:r.next])
		return out
	}

	out := make([]Entry, 0, len(r.entries))
	out = append(out, r.entries[r.next:]...)
	out = append(out, r.entries[:r.next]...)
	return out
}

// discard is a Sink that drops everything (useful in tests).
type discard struct{}

func (discard) Log(Level, string, map[string]any) {}

// Discard is a Sink that drops all entries.
var Discard Sink = discard{}
