package cache

import "sync"

type Key string

// Cache is a session-scoped memo table. Search sessions own their cache
// instance, so repeated or concurrent runs never share entries.
type Cache[V interface{}] interface {
	Get(key Key) (V, bool)
	Set(key Key, value V)
	Len() int
}

var _ Cache[interface{}] = &MapCache[interface{}]{}

type MapCache[V interface{}] struct {
	cache map[Key]V
	mu    sync.RWMutex
}

func NewMapCache[V interface{}]() *MapCache[V] {
	return &MapCache[V]{
		cache: map[Key]V{},
	}
}

func (m *MapCache[V]) Get(key Key) (V, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.cache[key]
	return value, ok
}

func (m *MapCache[V]) Set(key Key, value V) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache[key] = value
}

func (m *MapCache[V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.cache)
}
