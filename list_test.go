package lru

import (
	"testing"

	"github.com/airt/lru/assert"
)

func Test_List_PushFront(t *testing.T) {
	l := NewList[int]()
	assertList(t, l)

	l.PushFront(1)
	assertList(t, l, 1)

	l.PushFront(2)
	assertList(t, l, 2, 1)

	l.PushFront(3)
	assertList(t, l, 3, 2, 1)
}

func Test_List_PushBack(t *testing.T) {
	l := NewList[int]()
	l.PushBack(1)
	l.PushBack(2)
	l.PushFront(0)
	l.PushBack(3)
	assertList(t, l, 0, 1, 2, 3)
}

func Test_List_ZeroValueIsUsable(t *testing.T) {
	var l List[string]
	assert.True(t, l.IsEmpty())
	_, ok := l.PopBack()
	assert.False(t, ok)
	_, ok = l.Front()
	assert.False(t, ok)
	assert.Equal(t, len(l.Values()), 0)

	l.PushBack("leto")
	l.PushFront("paul")
	assert.List(t, l.Values(), []string{"paul", "leto"})
}

func Test_List_PopFront(t *testing.T) {
	l := NewList[int]()
	_, ok := l.PopFront()
	assert.False(t, ok)

	l.PushBack(1)
	l.PushBack(2)
	v, ok := l.PopFront()
	assert.True(t, ok)
	assert.Equal(t, v, 1)
	assertList(t, l, 2)

	v, _ = l.PopFront()
	assert.Equal(t, v, 2)
	assertList(t, l)

	_, ok = l.PopFront()
	assert.False(t, ok)
}

func Test_List_PopBack(t *testing.T) {
	l := NewList[int]()
	_, ok := l.PopBack()
	assert.False(t, ok)

	l.PushFront(1)
	l.PushFront(2)
	v, ok := l.PopBack()
	assert.True(t, ok)
	assert.Equal(t, v, 1)
	v, _ = l.PopBack()
	assert.Equal(t, v, 2)
	assertList(t, l)

	_, ok = l.PopBack()
	assert.False(t, ok)
}

func Test_List_Remove(t *testing.T) {
	l := NewList[int]()
	assertList(t, l)

	node := l.PushFront(1)
	assert.Equal(t, l.Remove(node), 1)
	assertList(t, l)

	n5 := l.PushFront(5)
	n4 := l.PushFront(4)
	n3 := l.PushFront(3)
	n2 := l.PushFront(2)
	n1 := l.PushFront(1)

	l.Remove(n5)
	assertList(t, l, 1, 2, 3, 4)

	l.Remove(n1)
	assertList(t, l, 2, 3, 4)

	l.Remove(n3)
	assertList(t, l, 2, 4)

	l.Remove(n2)
	assertList(t, l, 4)

	l.Remove(n4)
	assertList(t, l)
}

func Test_List_RemoveKeepsOtherRefsValid(t *testing.T) {
	l := NewList[string]()
	a := l.PushBack("a")
	b := l.PushBack("b")
	c := l.PushBack("c")

	l.Remove(b)
	assert.Equal(t, l.Value(a), "a")
	assert.Equal(t, l.Value(c), "c")
	next, ok := l.Next(a)
	assert.True(t, ok)
	assert.Equal(t, next, c)
	prev, ok := l.Prev(c)
	assert.True(t, ok)
	assert.Equal(t, prev, a)
}

func Test_List_MoveToFront(t *testing.T) {
	l := NewList[int]()

	n1 := l.PushFront(1)
	l.MoveToFront(n1)
	assertList(t, l, 1)

	n2 := l.PushFront(2)
	l.MoveToFront(n1)
	assertList(t, l, 1, 2)
	l.MoveToFront(n2)
	assertList(t, l, 2, 1)

	n3 := l.PushBack(3)
	l.MoveToFront(n1)
	assertList(t, l, 1, 2, 3)
	l.MoveToFront(n3)
	assertList(t, l, 3, 1, 2)
	assert.Equal(t, l.Len(), 3)
}

func Test_List_MoveToBack(t *testing.T) {
	l := listFromInts(1, 2, 3)
	front, _ := l.Front()
	l.MoveToBack(front)
	assertList(t, l, 2, 3, 1)

	back, _ := l.Back()
	l.MoveToBack(back)
	assertList(t, l, 2, 3, 1)

	mid, _ := l.Next(mustFront(t, l))
	l.MoveToBack(mid)
	assertList(t, l, 2, 1, 3)
}

func Test_List_RefsSurviveMoves(t *testing.T) {
	l := NewList[int]()
	n1 := l.PushBack(1)
	n2 := l.PushBack(2)
	l.MoveToFront(n2)
	l.MoveToBack(n2)
	l.MoveToFront(n2)
	assert.True(t, l.Owns(n1))
	assert.True(t, l.Owns(n2))
	assert.Equal(t, l.Value(n2), 2)
}

func Test_List_RemovedRefIsNotOwned(t *testing.T) {
	l := NewList[int]()
	n1 := l.PushBack(1)
	assert.True(t, l.Owns(n1))
	l.Remove(n1)
	assert.False(t, l.Owns(n1))

	// the slot is recycled, but under a new generation
	n2 := l.PushBack(2)
	assert.Equal(t, n2.slot, n1.slot)
	assert.False(t, l.Owns(n1))
	assert.True(t, l.Owns(n2))

	assert.False(t, l.Owns(Ref{}))
	assert.False(t, l.Owns(Ref{slot: 99, gen: 1}))
}

func Test_List_ReusesFreedSlots(t *testing.T) {
	l := NewList[int]()
	for i := 0; i < 4; i++ {
		l.PushBack(i)
	}
	for i := 0; i < 1000; i++ {
		l.PopFront()
		l.PushBack(i)
	}
	assert.Equal(t, l.Len(), 4)
	assert.Equal(t, len(l.cells), 5)
	assertList(t, l, 996, 997, 998, 999)
}

func Test_List_Append(t *testing.T) {
	l1 := listFromInts(1, 2, 3)
	l2 := listFromInts(4, 5, 6)
	l1.Append(l2)
	assertList(t, l1, 1, 2, 3, 4, 5, 6)
	assertList(t, l2)
	assert.Equal(t, l1.Len(), 6)
	assert.True(t, l2.IsEmpty())

	l1.Append(l1)
	assert.Equal(t, l1.Len(), 6)
}

func Test_List_Backward(t *testing.T) {
	l := listFromInts(1, 2, 3)
	var values []int
	for v := range l.Backward() {
		values = append(values, v)
	}
	assert.List(t, values, []int{3, 2, 1})
}

func Test_List_AllStopsEarly(t *testing.T) {
	l := listFromInts(1, 2, 3)
	var values []int
	for v := range l.All() {
		values = append(values, v)
		if v == 2 {
			break
		}
	}
	assert.List(t, values, []int{1, 2})
}

func Test_List_Clear(t *testing.T) {
	l := NewList[int]()
	n1 := l.PushBack(1)
	l.PushBack(2)
	l.Clear()
	assertList(t, l)
	assert.False(t, l.Owns(n1))

	l.PushBack(3)
	assertList(t, l, 3)
}

func assertList(t *testing.T, list *List[int], expected ...int) {
	t.Helper()
	assert.Equal(t, list.Len(), len(expected))
	assert.Equal(t, list.IsEmpty(), len(expected) == 0)

	if len(expected) == 0 {
		_, ok := list.Front()
		assert.False(t, ok)
		_, ok = list.Back()
		assert.False(t, ok)
		return
	}

	node, ok := list.Front()
	for _, expected := range expected {
		assert.True(t, ok)
		assert.Equal(t, list.Value(node), expected)
		node, ok = list.Next(node)
	}
	assert.False(t, ok)

	node, ok = list.Back()
	for i := len(expected) - 1; i >= 0; i-- {
		assert.True(t, ok)
		assert.Equal(t, list.Value(node), expected[i])
		node, ok = list.Prev(node)
	}
	assert.False(t, ok)
}

func mustFront(t *testing.T, list *List[int]) Ref {
	t.Helper()
	ref, ok := list.Front()
	assert.True(t, ok)
	return ref
}

func listFromInts(ints ...int) *List[int] {
	l := NewList[int]()
	for i := len(ints) - 1; i >= 0; i-- {
		l.PushFront(ints[i])
	}
	return l
}
