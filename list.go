package lru

import (
	"fmt"
	"iter"
	"slices"
)

// Ref is a handle to a cell of a List. It stays valid until the cell is
// removed from the list, and is never invalidated by operations on other
// cells. The zero Ref refers to nothing.
type Ref struct {
	slot uint32
	gen  uint32
}

type cell[T any] struct {
	prev  uint32
	next  uint32
	gen   uint32
	value T
}

// List is a doubly linked list whose cells live in a single slice and are
// addressed by Ref instead of by pointer. Removed slots are recycled.
//
// cells[0] is the root: root.next is the head and root.prev the tail, so
// slot 0 doubles as "no cell".
//
// The zero value is an empty list ready to use.
type List[T any] struct {
	cells  []cell[T]
	free   []uint32
	length int
}

func NewList[T any]() *List[T] {
	return new(List[T]).init()
}

func (l *List[T]) init() *List[T] {
	if l.cells == nil {
		l.cells = make([]cell[T], 1, 8)
	}
	return l
}

func (l *List[T]) Len() int {
	return l.length
}

func (l *List[T]) IsEmpty() bool {
	return l.length == 0
}

// PushFront inserts value before the current head.
func (l *List[T]) PushFront(value T) Ref {
	slot := l.alloc(value)
	l.link(slot, 0)
	return l.ref(slot)
}

// PushBack inserts value after the current tail.
func (l *List[T]) PushBack(value T) Ref {
	slot := l.alloc(value)
	l.link(slot, l.cells[0].prev)
	return l.ref(slot)
}

func (l *List[T]) PopFront() (T, bool) {
	if l.length == 0 {
		var zero T
		return zero, false
	}
	slot := l.cells[0].next
	l.unlink(slot)
	return l.release(slot), true
}

func (l *List[T]) PopBack() (T, bool) {
	if l.length == 0 {
		var zero T
		return zero, false
	}
	slot := l.cells[0].prev
	l.unlink(slot)
	return l.release(slot), true
}

// Remove splices the cell out of the list and returns its value. r must
// refer to a live cell of l; r and any copy of it are dead afterwards.
func (l *List[T]) Remove(r Ref) T {
	l.check(r)
	l.unlink(r.slot)
	return l.release(r.slot)
}

// MoveToFront relinks the cell as the new head. The cell keeps its slot,
// so r stays valid.
func (l *List[T]) MoveToFront(r Ref) {
	l.check(r)
	if l.cells[0].next == r.slot {
		return
	}
	l.unlink(r.slot)
	l.link(r.slot, 0)
}

// MoveToBack relinks the cell as the new tail.
func (l *List[T]) MoveToBack(r Ref) {
	l.check(r)
	if l.cells[0].prev == r.slot {
		return
	}
	l.unlink(r.slot)
	l.link(r.slot, l.cells[0].prev)
}

// Value returns the value carried by the cell.
func (l *List[T]) Value(r Ref) T {
	l.check(r)
	return l.cells[r.slot].value
}

func (l *List[T]) Front() (Ref, bool) {
	if l.length == 0 {
		return Ref{}, false
	}
	return l.ref(l.cells[0].next), true
}

func (l *List[T]) Back() (Ref, bool) {
	if l.length == 0 {
		return Ref{}, false
	}
	return l.ref(l.cells[0].prev), true
}

func (l *List[T]) Next(r Ref) (Ref, bool) {
	l.check(r)
	next := l.cells[r.slot].next
	if next == 0 {
		return Ref{}, false
	}
	return l.ref(next), true
}

func (l *List[T]) Prev(r Ref) (Ref, bool) {
	l.check(r)
	prev := l.cells[r.slot].prev
	if prev == 0 {
		return Ref{}, false
	}
	return l.ref(prev), true
}

// Owns reports whether r refers to a live cell of l. Refs minted by a
// different list can collide, so this is a sanity check, not a proof.
func (l *List[T]) Owns(r Ref) bool {
	return r.slot != 0 && int(r.slot) < len(l.cells) && l.cells[r.slot].gen == r.gen
}

// All yields values from head to tail. The list must not be modified
// during iteration.
func (l *List[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		if l.length == 0 {
			return
		}
		for slot := l.cells[0].next; slot != 0; slot = l.cells[slot].next {
			if !yield(l.cells[slot].value) {
				return
			}
		}
	}
}

// Backward yields values from tail to head.
func (l *List[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		if l.length == 0 {
			return
		}
		for slot := l.cells[0].prev; slot != 0; slot = l.cells[slot].prev {
			if !yield(l.cells[slot].value) {
				return
			}
		}
	}
}

func (l *List[T]) Values() []T {
	return slices.Collect(l.All())
}

// Append moves every value of other to the back of l, in order, leaving
// other empty.
func (l *List[T]) Append(other *List[T]) {
	if other == l {
		return
	}
	for {
		value, ok := other.PopFront()
		if !ok {
			return
		}
		l.PushBack(value)
	}
}

// Clear removes every cell. Outstanding refs become dead.
func (l *List[T]) Clear() {
	for l.length > 0 {
		slot := l.cells[0].next
		l.unlink(slot)
		l.release(slot)
	}
}

func (l *List[T]) alloc(value T) uint32 {
	l.init()
	var slot uint32
	if n := len(l.free); n > 0 {
		slot = l.free[n-1]
		l.free = l.free[:n-1]
	} else {
		l.cells = append(l.cells, cell[T]{gen: 1})
		slot = uint32(len(l.cells) - 1)
	}
	l.cells[slot].value = value
	l.length++
	return slot
}

// release returns the slot to the free stack. Bumping the generation kills
// every Ref handed out for the old occupant.
func (l *List[T]) release(slot uint32) T {
	c := &l.cells[slot]
	value := c.value
	var zero T
	c.value = zero
	c.gen++
	if c.gen == 0 {
		c.gen = 1
	}
	l.free = append(l.free, slot)
	l.length--
	return value
}

// link places slot right after at. at == 0 means the front.
func (l *List[T]) link(slot, at uint32) {
	next := l.cells[at].next
	c := &l.cells[slot]
	c.prev = at
	c.next = next
	l.cells[at].next = slot
	l.cells[next].prev = slot
}

func (l *List[T]) unlink(slot uint32) {
	c := &l.cells[slot]
	l.cells[c.prev].next = c.next
	l.cells[c.next].prev = c.prev
	c.prev = 0
	c.next = 0
}

func (l *List[T]) ref(slot uint32) Ref {
	return Ref{slot: slot, gen: l.cells[slot].gen}
}

// check enforces the caller's promise that r belongs to l. Only builds
// tagged lrudebug pay for it.
func (l *List[T]) check(r Ref) {
	if debug && !l.Owns(r) {
		panic(fmt.Errorf("%w (slot %d, gen %d)", ErrStaleRef, r.slot, r.gen))
	}
}
