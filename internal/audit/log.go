// Package audit records the outcome of every successful send dispatch.
//
// The default store is in-memory and volatile: nothing survives a restart.
// Retention is configurable; maxEntries = 0 keeps every entry for the
// lifetime of the process, which is the original contract. A SQLite-backed
// store is available as an explicit opt-in (audit.dbPath in the config).
package audit

import (
	"context"
	"sync"

	"relaybot/internal/domain"
)

// Log is an append-only, insertion-ordered record of dispatch outcomes.
type Log interface {
	// Append records one outcome. Entries are never mutated or removed.
	Append(ctx context.Context, o domain.Outcome) error
	// Count reports the total number of entries ever appended.
	Count(ctx context.Context) (int, error)
	// Suffix returns the last min(n, retained) entries in insertion order.
	// Non-positive n yields an empty slice.
	Suffix(ctx context.Context, n int) ([]domain.Outcome, error)
	// Latest returns the most recently appended entry, or nil when empty.
	Latest(ctx context.Context) (*domain.Outcome, error)
}

// MemoryLog is the default Log: a mutex-guarded slice. Appends are pure
// in-memory operations, so a single mutex around each method suffices; no
// reader ever observes a partial append.
type MemoryLog struct {
	mu         sync.Mutex
	entries    []domain.Outcome
	total      int
	maxEntries int
}

// NewMemoryLog creates an in-memory log. maxEntries bounds how many entries
// are retained for suffix reads; 0 means unbounded.
func NewMemoryLog(maxEntries int) *MemoryLog {
	return &MemoryLog{maxEntries: maxEntries}
}

func (l *MemoryLog) Append(_ context.Context, o domain.Outcome) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, o)
	l.total++
	if l.maxEntries > 0 && len(l.entries) > l.maxEntries {
		// Drop the oldest entry. Count keeps reporting the lifetime total.
		copy(l.entries, l.entries[1:])
		l.entries = l.entries[:l.maxEntries]
	}
	return nil
}

func (l *MemoryLog) Count(_ context.Context) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.total, nil
}

func (l *MemoryLog) Suffix(_ context.Context, n int) ([]domain.Outcome, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n <= 0 {
		return nil, nil
	}
	if n > len(l.entries) {
		n = len(l.entries)
	}
	out := make([]domain.Outcome, n)
	copy(out, l.entries[len(l.entries)-n:])
	return out, nil
}

func (l *MemoryLog) Latest(_ context.Context) (*domain.Outcome, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.entries) == 0 {
		return nil, nil
	}
	last := l.entries[len(l.entries)-1]
	return &last, nil
}
