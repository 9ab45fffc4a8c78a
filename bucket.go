package lru

// bucket is the cache's key index.
type bucket[K comparable, V any] struct {
	lookup map[K]*item[V]
}

func newBucket[K comparable, V any](hint int) *bucket[K, V] {
	return &bucket[K, V]{lookup: make(map[K]*item[V], hint)}
}

func (b *bucket[K, V]) itemCount() int {
	return len(b.lookup)
}

func (b *bucket[K, V]) get(key K) *item[V] {
	return b.lookup[key]
}

// set registers a fresh key. Callers replace the value of an existing key
// through the *item returned by get.
func (b *bucket[K, V]) set(key K, ref Ref, value V) *item[V] {
	it := &item[V]{ref: ref, value: value}
	b.lookup[key] = it
	return it
}

func (b *bucket[K, V]) delete(key K) *item[V] {
	it, ok := b.lookup[key]
	if !ok {
		return nil
	}
	delete(b.lookup, key)
	return it
}

func (b *bucket[K, V]) clear() {
	clear(b.lookup)
}
