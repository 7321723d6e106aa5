package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/gestures/pkg/domain"
)

// Journal implements ports.Journal in memory.
// Safe for concurrent use.
type Journal struct {
	data       map[string][]domain.JournalEntry
	maxEntries int
	mu         sync.RWMutex
}

// Option configures the Journal.
type Option func(*Journal)

// WithMaxEntries keeps only the newest n entries per surface. Zero keeps all.
func WithMaxEntries(n int) Option {
	return func(j *Journal) {
		j.maxEntries = n
	}
}

// NewJournal creates a new in-memory journal.
func NewJournal(opts ...Option) *Journal {
	j := &Journal{
		data: make(map[string][]domain.JournalEntry),
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Append records an entry.
func (j *Journal) Append(ctx context.Context, entry domain.JournalEntry) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	entries := append(j.data[entry.Surface], entry)
	if j.maxEntries > 0 && len(entries) > j.maxEntries {
		entries = append([]domain.JournalEntry(nil), entries[len(entries)-j.maxEntries:]...)
	}
	j.data[entry.Surface] = entries
	return nil
}

// List returns up to limit entries, newest first.
func (j *Journal) List(ctx context.Context, surface string, limit int) ([]domain.JournalEntry, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	entries := j.data[surface]
	n := len(entries)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]domain.JournalEntry, 0, n)
	for i := len(entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, entries[i])
	}
	return out, nil
}

// Clear removes every entry of a surface.
func (j *Journal) Clear(ctx context.Context, surface string) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	delete(j.data, surface)
	return nil
}

// Surfaces returns the surfaces with entries, sorted.
func (j *Journal) Surfaces(ctx context.Context) ([]string, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	surfaces := make([]string, 0, len(j.data))
	for id := range j.data {
		surfaces = append(surfaces, id)
	}
	sort.Strings(surfaces)
	return surfaces, nil
}
