//go:build lrudebug

package lru

// Built with -tags lrudebug: List checks every Ref it is handed and Cache
// cross-checks its list against its index after each mutation.
const debug = true
