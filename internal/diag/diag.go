// # internal/diag/diag.go
package diag

import (
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Category is a stable diagnostic category id. Diagnostics never affect
// control flow; fatal configuration errors travel as errors instead.
type Category string

const (
	CategoryAttrArgUnresolved    Category = "attr-arg-unresolved"
	CategoryRegistrationName     Category = "registration-name-unresolved"
	CategoryRegistrationAccessor Category = "registration-accessor-missing"
	CategoryMarkupDecode         Category = "markup-decode-failed"
	CategoryRenameRejected       Category = "rename-rejected"
)

// Sink receives structured warnings during analysis.
type Sink interface {
	Warn(cat Category, msg string, args ...any)
}

// LogSink emits warnings through slog, flood-limited per category so a
// degenerate module cannot drown the log.
type LogSink struct {
	run     string
	mu      sync.Mutex
	limits  map[Category]*rate.Limiter
	dropped map[Category]int
}

func NewLogSink(runID string) *LogSink {
	return &LogSink{
		run:     runID,
		limits:  make(map[Category]*rate.Limiter),
		dropped: make(map[Category]int),
	}
}

func (s *LogSink) Warn(cat Category, msg string, args ...any) {
	s.mu.Lock()
	lim, ok := s.limits[cat]
	if !ok {
		lim = rate.NewLimiter(rate.Limit(5), 20)
		s.limits[cat] = lim
	}
	if !lim.AllowN(time.Now(), 1) {
		s.dropped[cat]++
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	kv := append([]any{"category", string(cat), "run", s.run}, args...)
	slog.Warn(msg, kv...)
}

// Dropped reports how many warnings were suppressed for a category.
func (s *LogSink) Dropped(cat Category) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped[cat]
}

// Nop discards all diagnostics.
type Nop struct{}

func (Nop) Warn(Category, string, ...any) {}

// Recorder captures diagnostics for tests.
type Recorder struct {
	mu      sync.Mutex
	Entries []RecordedWarning
}

type RecordedWarning struct {
	Category Category
	Message  string
}

func (r *Recorder) Warn(cat Category, msg string, _ ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Entries = append(r.Entries, RecordedWarning{Category: cat, Message: msg})
}

// Count returns the number of captured warnings in a category.
func (r *Recorder) Count(cat Category) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.Entries {
		if e.Category == cat {
			n++
		}
	}
	return n
}
