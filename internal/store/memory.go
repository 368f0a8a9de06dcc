package store

import (
	"context"
	"slices"
	"sync"
)

// Memory is an in-process Store, used when Redis is not wanted and in tests.
type Memory struct {
	mu       sync.Mutex
	profiles map[string][]ProfileSnapshot
	progress map[string][]ProgressEntry
}

func NewMemory() *Memory {
	return &Memory{
		profiles: make(map[string][]ProfileSnapshot),
		progress: make(map[string][]ProgressEntry),
	}
}

func (m *Memory) SaveProfile(_ context.Context, userID string, snap ProfileSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snaps := append([]ProfileSnapshot{snap}, m.profiles[userID]...)
	if len(snaps) > maxSnapshots {
		snaps = snaps[:maxSnapshots]
	}
	m.profiles[userID] = snaps
	return nil
}

func (m *Memory) LatestProfile(_ context.Context, userID string) (ProfileSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	snaps := m.profiles[userID]
	if len(snaps) == 0 {
		return ProfileSnapshot{}, ErrNotFound
	}
	return snaps[0], nil
}

func (m *Memory) AppendProgress(_ context.Context, userID string, entry ProgressEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry.Date = entry.Date.UTC()
	entries := append(m.progress[userID], entry)
	slices.SortStableFunc(entries, func(a, b ProgressEntry) int {
		return a.Date.Compare(b.Date)
	})
	m.progress[userID] = entries
	return nil
}

func (m *Memory) ListProgress(_ context.Context, userID string, limit int) ([]ProgressEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := m.progress[userID]
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	out := make([]ProgressEntry, len(entries))
	copy(out, entries)
	return out, nil
}
