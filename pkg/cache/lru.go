package cache

import (
	"container/list"
	"sync"
)

type entry[K comparable, V any] struct {
	key   K
	value V
}

// LRU is a fixed capacity cache that evicts the least recently used entry.
type LRU[K comparable, V any] struct {
	mu      sync.Mutex
	size    int
	items   map[K]*list.Element
	order   *list.List
	onEvict func(K, V)
}

// NewLRU returns a cache holding at most size entries. It panics when size
// is not positive.
func NewLRU[K comparable, V any](size int) *LRU[K, V] {
	if size <= 0 {
		panic("cache: size must be positive")
	}
	return &LRU[K, V]{
		size:  size,
		items: make(map[K]*list.Element, size),
		order: list.New(),
	}
}

// OnEvict registers fn to run for every entry Put pushes out or Remove and
// Clear drop. fn runs with the cache locked and must not call back into it.
func (c *LRU[K, V]) OnEvict(fn func(K, V)) {
	c.mu.Lock()
	c.onEvict = fn
	c.mu.Unlock()
}

// Get returns the value stored under key.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*entry[K, V]).value, true
}

// Put stores value under key and reports whether it replaced an entry.
func (c *LRU[K, V]) Put(key K, value V) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		el.Value.(*entry[K, V]).value = value
		c.order.MoveToFront(el)
		return true
	}
	c.items[key] = c.order.PushFront(&entry[K, V]{key: key, value: value})
	if c.order.Len() > c.size {
		c.drop(c.order.Back())
	}
	return false
}

// Remove deletes key and reports whether it was present.
func (c *LRU[K, V]) Remove(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if ok {
		c.drop(el)
	}
	return ok
}

// Len is the number of cached entries.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Clear drops every entry.
func (c *LRU[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for c.order.Len() > 0 {
		c.drop(c.order.Back())
	}
}

// drop must be called with mu held.
func (c *LRU[K, V]) drop(el *list.Element) {
	e := c.order.Remove(el).(*entry[K, V])
	delete(c.items, e.key)
	if c.onEvict != nil {
		c.onEvict(e.key, e.value)
	}
}
