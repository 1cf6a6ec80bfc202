package appender

import (
	"fmt"

	"github.com/emirpasic/gods/lists/doublylinkedlist"
)

// Appender is an ordered sequence of items of type T. The zero value is not
// usable, create Appenders with New.
type Appender[T any] struct {
	list  *doublylinkedlist.List // append-optimized form
	cache []T                    // read-optimized form
	dirty bool                   // cache out of sync with list?
}

// New creates an empty Appender.
func New[T any]() *Appender[T] {
	return &Appender[T]{list: doublylinkedlist.New()}
}

// Len returns the number of items.
func (a *Appender[T]) Len() int {
	return a.list.Size()
}

// Append adds an item at the right end.
func (a *Appender[T]) Append(item T) {
	a.list.Add(item)
	a.dirty = true
}

// Extend appends all items, in order.
func (a *Appender[T]) Extend(items ...T) {
	for _, item := range items {
		a.list.Add(item)
	}
	if len(items) > 0 {
		a.dirty = true
	}
}

// Drop removes the last n items. Dropping more items than present empties
// the Appender.
func (a *Appender[T]) Drop(n int) {
	for ; n > 0 && !a.list.Empty(); n-- {
		a.list.Remove(a.list.Size() - 1)
		a.dirty = true
	}
}

// At returns the item at index i. At panics if i is out of range.
func (a *Appender[T]) At(i int) T {
	a.sync()
	if i < 0 || i >= len(a.cache) {
		panic(fmt.Errorf("appender: index %d out of range [0…%d)", i, len(a.cache)))
	}
	return a.cache[i]
}

// Find returns the index of the first item (in insertion order) for which
// pred returns true, or -1.
func (a *Appender[T]) Find(pred func(T) bool) int {
	a.sync()
	for i, item := range a.cache {
		if pred(item) {
			return i
		}
	}
	return -1
}

// Values returns a copy of the items, in insertion order.
func (a *Appender[T]) Values() []T {
	a.sync()
	values := make([]T, len(a.cache))
	copy(values, a.cache)
	return values
}

// sync re-creates the read-optimized form, if necessary.
func (a *Appender[T]) sync() {
	if !a.dirty {
		return
	}
	a.cache = a.cache[:0]
	it := a.list.Iterator()
	for it.Next() {
		item, _ := it.Value().(T)
		a.cache = append(a.cache, item)
	}
	a.dirty = false
}
