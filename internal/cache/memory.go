package cache

import (
	"context"
	"sync"
	"time"
)

// Compile-time check: Memory implements Store.
var _ Store = (*Memory)(nil)

type entry struct {
	data      []byte
	timestamp time.Time
	ttl       time.Duration
}

func (e entry) expired(now time.Time) bool {
	return now.Sub(e.timestamp) > e.ttl
}

// Memory is an in-process TTL store. Eviction is lazy: an expired entry is
// removed on the Get that observes it, never by a background sweeper. The
// map is unbounded, which is acceptable for the content volumes a single
// CMS serves.
type Memory struct {
	mu    sync.Mutex
	items map[string]entry
	now   func() time.Time
}

// NewMemory creates an empty in-process store.
func NewMemory() *Memory {
	return &Memory{
		items: make(map[string]entry),
		now:   time.Now,
	}
}

// Get returns the cached value, or ErrKeyNotFound for missing and expired
// keys. An expired entry is deleted before returning.
func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.items[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	if e.expired(m.now()) {
		delete(m.items, key)
		return nil, ErrKeyNotFound
	}
	return e.data, nil
}

// Set stores a value. A non-positive ttl falls back to DefaultTTL.
func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.items[key] = entry{data: value, timestamp: m.now(), ttl: ttl}
	return nil
}

// Delete removes a key. Deleting a missing key is not an error.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.items, key)
	return nil
}

// Clear drops every entry.
func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = make(map[string]entry)
	return nil
}

// Ping always succeeds for the in-process store.
func (m *Memory) Ping(_ context.Context) error { return nil }

// Close is a no-op for the in-process store.
func (m *Memory) Close() {}

// Len reports the number of stored entries, including not-yet-evicted
// expired ones. Used by tests.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}
