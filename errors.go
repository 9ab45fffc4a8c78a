package lru

import "errors"

var (
	ErrInvalidCapacity = errors.New("lru: capacity must be at least 1")
	ErrStaleRef        = errors.New("lru: ref does not belong to this list")
)
