package lru

import "github.com/prometheus/client_golang/prometheus"

type Configuration[K comparable, V any] struct {
	capacity   int
	onEvict    func(key K, value V)
	registerer prometheus.Registerer
	namespace  string
}

// Creates a configuration object with sensible defaults
// Use this as the start of the fluent configuration:
// e.g.: lru.New(lru.Configure[string, int]().Capacity(10000))
func Configure[K comparable, V any]() *Configuration[K, V] {
	return &Configuration[K, V]{
		capacity:  5000,
		namespace: "lru",
	}
}

// The maximum number of entries to hold. Must be at least 1
// [5000]
func (c *Configuration[K, V]) Capacity(max int) *Configuration[K, V] {
	c.capacity = max
	return c
}

// Called for every entry dropped to make room (an overflowing Insert,
// a shrinking Resize or RemoveOldest). Explicit Remove and Clear do not
// trigger it. The callback must not modify the cache.
func (c *Configuration[K, V]) OnEvict(callback func(key K, value V)) *Configuration[K, V] {
	c.onEvict = callback
	return c
}

// Registers hit, miss, eviction and size collectors on reg when the cache
// is created. Two caches sharing a registry need distinct namespaces.
func (c *Configuration[K, V]) Metrics(reg prometheus.Registerer) *Configuration[K, V] {
	c.registerer = reg
	return c
}

// Prefix for the collector names
// ["lru"]
func (c *Configuration[K, V]) Namespace(namespace string) *Configuration[K, V] {
	c.namespace = namespace
	return c
}
