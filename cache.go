// A bounded LRU cache built on an arena-backed doubly linked list
package lru

import (
	"fmt"
	"iter"
)

// Don't let a huge capacity translate into a huge up-front map.
const maxPrealloc = 4096

// Cache holds at most Capacity entries and evicts the least recently
// touched one when a new key would overflow it. Get, GetMut and Insert of
// an existing key touch; Peek, Contains, Keys, All and Oldest do not.
//
// The list carries keys from most (front) to least (back) recently
// touched; the bucket maps each key to its cell and value.
//
// A Cache is not safe for concurrent use.
type Cache[K comparable, V any] struct {
	capacity int
	onEvict  func(K, V)
	list     *List[K]
	bucket   *bucket[K, V]
	stats    Stats
	metrics  *collectors
}

// Create a new cache with the specified configuration
// See lru.Configure() for creating a configuration
func New[K comparable, V any](config *Configuration[K, V]) (*Cache[K, V], error) {
	if config.capacity < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, config.capacity)
	}
	c := &Cache[K, V]{
		capacity: config.capacity,
		onEvict:  config.onEvict,
		list:     NewList[K](),
		bucket:   newBucket[K, V](min(config.capacity, maxPrealloc)),
	}
	if config.registerer != nil {
		m, err := newCollectors(config.namespace, config.registerer)
		if err != nil {
			return nil, fmt.Errorf("lru: register metrics: %w", err)
		}
		c.metrics = m
	}
	return c, nil
}

// WithCapacity is New with every other setting left at its default.
func WithCapacity[K comparable, V any](capacity int) (*Cache[K, V], error) {
	return New(Configure[K, V]().Capacity(capacity))
}

func (c *Cache[K, V]) Len() int {
	return c.list.Len()
}

func (c *Cache[K, V]) IsEmpty() bool {
	return c.list.IsEmpty()
}

func (c *Cache[K, V]) Capacity() int {
	return c.capacity
}

// IsFull reports whether the next Insert of a new key will evict.
func (c *Cache[K, V]) IsFull() bool {
	return c.list.Len() >= c.capacity
}

func (c *Cache[K, V]) Contains(key K) bool {
	return c.bucket.get(key) != nil
}

// Peek returns the value without promoting the key.
func (c *Cache[K, V]) Peek(key K) (V, bool) {
	if it := c.bucket.get(key); it != nil {
		return it.value, true
	}
	var zero V
	return zero, false
}

// Get returns the value and marks the key as the most recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	if v, ok := c.GetMut(key); ok {
		return *v, true
	}
	var zero V
	return zero, false
}

// GetMut is Get returning a pointer to the stored value, which the caller
// may modify in place. The pointer is only meaningful while the key stays
// in the cache.
func (c *Cache[K, V]) GetMut(key K) (*V, bool) {
	it := c.bucket.get(key)
	if it == nil {
		c.stats.Misses++
		c.metrics.miss()
		return nil, false
	}
	c.list.MoveToFront(it.ref)
	c.stats.Hits++
	c.metrics.hit()
	return &it.value, true
}

// Insert stores value under key and marks it the most recently used.
// If the key was already present its previous value is returned with
// true. Otherwise, a full cache first evicts its least recently used
// entry.
func (c *Cache[K, V]) Insert(key K, value V) (V, bool) {
	if it := c.bucket.get(key); it != nil {
		c.list.MoveToFront(it.ref)
		old := it.value
		it.value = value
		return old, true
	}
	if c.IsFull() {
		c.evict()
	}
	c.bucket.set(key, c.list.PushFront(key), value)
	c.changed()
	var zero V
	return zero, false
}

// Remove the key from the cache, returning its value if it was present.
func (c *Cache[K, V]) Remove(key K) (V, bool) {
	it := c.bucket.delete(key)
	if it == nil {
		var zero V
		return zero, false
	}
	c.list.Remove(it.ref)
	c.changed()
	return it.value, true
}

// Oldest returns the least recently used entry without touching it.
func (c *Cache[K, V]) Oldest() (K, V, bool) {
	ref, ok := c.list.Back()
	if !ok {
		var key K
		var value V
		return key, value, false
	}
	key := c.list.Value(ref)
	return key, c.bucket.get(key).value, true
}

// RemoveOldest evicts the least recently used entry.
func (c *Cache[K, V]) RemoveOldest() (K, V, bool) {
	key, value, ok := c.evict()
	if ok {
		c.changed()
	}
	return key, value, ok
}

// Keys returns the keys from most to least recently used.
func (c *Cache[K, V]) Keys() []K {
	return c.list.Values()
}

// All yields entries from most to least recently used without touching
// them. The cache must not be modified during iteration.
func (c *Cache[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for key := range c.list.All() {
			if !yield(key, c.bucket.get(key).value) {
				return
			}
		}
	}
}

// Clear empties the cache. The eviction callback is not called.
func (c *Cache[K, V]) Clear() {
	c.list.Clear()
	c.bucket.clear()
	c.changed()
}

// Resize changes the capacity, evicting least recently used entries until
// the cache fits. It returns how many were evicted.
func (c *Cache[K, V]) Resize(capacity int) (int, error) {
	if capacity < 1 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	c.capacity = capacity
	evicted := 0
	for c.list.Len() > capacity {
		c.evict()
		evicted++
	}
	c.changed()
	return evicted, nil
}

func (c *Cache[K, V]) Stats() Stats {
	s := c.stats
	s.Size = c.list.Len()
	s.Capacity = c.capacity
	return s
}

func (c *Cache[K, V]) evict() (K, V, bool) {
	key, ok := c.list.PopBack()
	if !ok {
		var value V
		return key, value, false
	}
	it := c.bucket.delete(key)
	c.stats.Evictions++
	c.metrics.evicted()
	if c.onEvict != nil {
		c.onEvict(key, it.value)
	}
	return key, it.value, true
}

// changed runs after every mutation that can alter the entry count.
func (c *Cache[K, V]) changed() {
	if debug {
		c.verify()
	}
	c.metrics.resized(c.list.Len())
}

// verify walks the whole list, so it only runs in lrudebug builds.
func (c *Cache[K, V]) verify() {
	if c.list.Len() != c.bucket.itemCount() {
		panic(fmt.Sprintf("lru: list holds %d keys, index holds %d", c.list.Len(), c.bucket.itemCount()))
	}
	if c.list.Len() > c.capacity {
		panic(fmt.Sprintf("lru: %d entries over capacity %d", c.list.Len(), c.capacity))
	}
	for ref, ok := c.list.Front(); ok; ref, ok = c.list.Next(ref) {
		it := c.bucket.get(c.list.Value(ref))
		if it == nil || it.ref != ref {
			panic(fmt.Sprintf("lru: key %v is listed but not indexed at its cell", c.list.Value(ref)))
		}
	}
}
