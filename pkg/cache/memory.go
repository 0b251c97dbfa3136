package cache

import (
	"context"
	"sync"
	"time"
)

type memoryItem struct {
	value    []byte
	expireAt time.Time
}

func (m *memoryItem) expired() bool {
	return !m.expireAt.IsZero() && time.Now().After(m.expireAt)
}

// MemoryStore implements Store with an in-process map. An expiration of
// zero or less means the entry never expires on its own; it lives until
// replaced, deleted or flushed.
type MemoryStore struct {
	mu            sync.RWMutex
	data          map[string]*memoryItem
	cleanupTicker *time.Ticker
	done          chan struct{}
}

// NewMemoryStore creates an in-memory cache store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	cfg := &MemoryConfig{
		CleanupInterval: 5 * time.Minute,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	ms := &MemoryStore{
		data:          make(map[string]*memoryItem),
		cleanupTicker: time.NewTicker(cfg.CleanupInterval),
		done:          make(chan struct{}),
	}

	go ms.cleanupExpired()
	return ms
}

func (ms *MemoryStore) Set(_ context.Context, key string, value []byte, expiration time.Duration) error {
	var expireAt time.Time
	if expiration > 0 {
		expireAt = time.Now().Add(expiration)
	}

	cp := make([]byte, len(value))
	copy(cp, value)

	ms.mu.Lock()
	ms.data[key] = &memoryItem{value: cp, expireAt: expireAt}
	ms.mu.Unlock()
	return nil
}

func (ms *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	ms.mu.RLock()
	item, ok := ms.data[key]
	ms.mu.RUnlock()

	if !ok {
		return nil, ErrCacheMiss
	}
	if item.expired() {
		ms.mu.Lock()
		delete(ms.data, key)
		ms.mu.Unlock()
		return nil, ErrCacheMiss
	}

	cp := make([]byte, len(item.value))
	copy(cp, item.value)
	return cp, nil
}

func (ms *MemoryStore) Delete(_ context.Context, keys ...string) error {
	ms.mu.Lock()
	for _, key := range keys {
		delete(ms.data, key)
	}
	ms.mu.Unlock()
	return nil
}

func (ms *MemoryStore) Flush(_ context.Context) error {
	ms.mu.Lock()
	ms.data = make(map[string]*memoryItem)
	ms.mu.Unlock()
	return nil
}

func (ms *MemoryStore) cleanupExpired() {
	for {
		select {
		case <-ms.done:
			return
		case <-ms.cleanupTicker.C:
			ms.mu.Lock()
			for key, item := range ms.data {
				if item.expired() {
					delete(ms.data, key)
				}
			}
			ms.mu.Unlock()
		}
	}
}

// Close stops the cleanup goroutine.
func (ms *MemoryStore) Close() error {
	ms.cleanupTicker.Stop()
	close(ms.done)
	return nil
}

var _ Store = (*MemoryStore)(nil)
