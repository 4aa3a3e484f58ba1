// Package storage persists conversation sessions. Store wraps a
// domain.SessionBackend (memory, Redis or SQL) and never lets a backend
// failure reach the conversation: reads degrade to a fresh session and
// writes are logged and dropped.
package storage

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/hammamikhairi/mealbot/internal/domain"
	"github.com/hammamikhairi/mealbot/internal/logger"
)

// Compile-time interface checks.
var (
	_ domain.SessionBackend = (*MemoryBackend)(nil)
	_ domain.Sweeper        = (*MemoryBackend)(nil)
)

type memoryEntry struct {
	data    []byte
	savedAt time.Time
	expires time.Time
}

// MemoryBackend is an in-process backend. Safe for concurrent access.
// Expired entries are hidden on Load and removed by SweepBefore.
type MemoryBackend struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
	log     *logger.Logger
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend(log *logger.Logger) *MemoryBackend {
	return &MemoryBackend{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
		log:     log,
	}
}

// Load returns the stored document or domain.ErrNotFound.
func (m *MemoryBackend) Load(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[key]
	if !ok || (!e.expires.IsZero() && !m.now().Before(e.expires)) {
		return nil, domain.ErrNotFound
	}
	return slices.Clone(e.data), nil
}

// Save stores a copy of data. A non-positive ttl never expires.
func (m *MemoryBackend) Save(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	e := memoryEntry{data: slices.Clone(data), savedAt: now}
	if ttl > 0 {
		e.expires = now.Add(ttl)
	}
	m.entries[key] = e
	return nil
}

// Delete removes key. Missing keys are not an error.
func (m *MemoryBackend) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

// SweepBefore removes entries last saved before cutoff.
func (m *MemoryBackend) SweepBefore(ctx context.Context, cutoff time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for k, e := range m.entries {
		if e.savedAt.Before(cutoff) {
			delete(m.entries, k)
			n++
		}
	}
	if n > 0 {
		m.log.Debug("swept %d expired sessions", n)
	}
	return n, nil
}

// Len returns the number of stored entries, expired or not.
func (m *MemoryBackend) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
