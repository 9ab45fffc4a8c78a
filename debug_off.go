//go:build !lrudebug

package lru

const debug = false
