package caches

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto"
)

// Memory is an in-memory cache based on ristretto. Ristretto has no way
// to iterate over keys so Memory keeps its own index of them for
// DeleteByPrefix. Index entries leave together with evicted or rejected
// items, so the index never outgrows the cache itself.
type Memory struct {
	cache      *ristretto.Cache
	mutex      sync.Mutex
	generation uint64
	index      map[string]memoryIndexEntry
}

type memoryIndexEntry struct {
	generation uint64
	expiresAt  time.Time
}

type memoryEntry struct {
	key        string
	generation uint64
	value      []byte
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	value, ok := m.cache.Get(key)
	if !ok {
		return nil, false, nil
	}

	return copyBytes(value.(memoryEntry).value), true, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}

	// ristretto callbacks run in its processing goroutine and take the
	// mutex. It must never be held across SetWithTTL, Del or Wait.
	m.mutex.Lock()
	m.generation++
	generation := m.generation
	m.index[key] = memoryIndexEntry{
		generation: generation,
		expiresAt:  expiresAt(time.Now(), ttl),
	}
	m.mutex.Unlock()

	entry := memoryEntry{
		key:        key,
		generation: generation,
		value:      copyBytes(value),
	}

	if !m.cache.SetWithTTL(key, entry, 1, ttl) {
		m.forget(key, generation)

		return ErrRejected
	}

	m.cache.Wait()

	return nil
}

func (m *Memory) Delete(_ context.Context, key string) (bool, error) {
	return m.delete(key), nil
}

func (m *Memory) DeleteByPrefix(_ context.Context, prefix string) (bool, error) {
	now := time.Now()
	keys := []string{}

	m.mutex.Lock()

	for key, entry := range m.index {
		switch {
		case strings.HasPrefix(key, prefix):
			keys = append(keys, key)
		case isExpired(entry.expiresAt, now):
			delete(m.index, key)
		}
	}

	m.mutex.Unlock()

	removed := false

	for _, key := range keys {
		removed = m.delete(key) || removed
	}

	return removed, nil
}

func (m *Memory) delete(key string) bool {
	m.mutex.Lock()
	entry, indexed := m.index[key]
	m.mutex.Unlock()

	_, ok := m.cache.Get(key)

	m.cache.Del(key)
	m.cache.Wait()

	if indexed {
		m.forget(key, entry.generation)
	}

	return ok
}

func (m *Memory) forget(key string, generation uint64) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if entry, ok := m.index[key]; ok && entry.generation == generation {
		delete(m.index, key)
	}
}

func (m *Memory) onRemoved(item *ristretto.Item) {
	if entry, ok := item.Value.(memoryEntry); ok {
		m.forget(entry.key, entry.generation)
	}
}

// Close stops background goroutines of ristretto.
func (m *Memory) Close() {
	m.cache.Close()
}

// NewMemory creates a new in-memory cache which keeps at most
// itemsCount entries.
func NewMemory(itemsCount uint) *Memory {
	if itemsCount == 0 {
		itemsCount = 1
	}

	mem := &Memory{
		index: map[string]memoryIndexEntry{},
	}

	cacheConfig := &ristretto.Config{
		MaxCost:            int64(itemsCount),
		NumCounters:        10 * int64(itemsCount),
		Metrics:            false,
		BufferItems:        64,
		IgnoreInternalCost: true,
		OnEvict:            mem.onRemoved,
		OnReject:           mem.onRemoved,
	}

	cache, err := ristretto.NewCache(cacheConfig)
	if err != nil {
		panic(err)
	}

	mem.cache = cache

	return mem
}
