package lru

// item is what the index stores per key: where the key's cell sits in the
// recency list, and the value. The list owns the cell; ref only locates it.
type item[V any] struct {
	ref   Ref
	value V
}
