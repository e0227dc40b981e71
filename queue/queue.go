/*
Package queue provides a lock-free queue for handing out work items
to concurrent workers.

A Queue is a shared reference to an immutable singly-linked list.
Poll replaces the list with its tail using compare-and-swap, retrying
when it loses a race against another goroutine, so that each item is
delivered to exactly one caller. Neither Poll nor Push ever block, and
there is no fairness guarantee between competing goroutines.
*/
package queue

import (
	"iter"
	"sync/atomic"
)

type node[T any] struct {
	item T
	next *node[T]
}

/*
A Queue is a lock-free list of pending items.

Nodes are never modified or reused once published, so a successful
compare-and-swap on the head pointer cannot confuse two different
lists.

The zero Queue is valid and empty. A Queue must not be copied after
first use.
*/
type Queue[T any] struct {
	head atomic.Pointer[node[T]]
}

// New returns a queue holding items, with items[0] being polled first.
func New[T any](items ...T) *Queue[T] {
	var list *node[T]
	for i := len(items) - 1; i >= 0; i-- {
		list = &node[T]{item: items[i], next: list}
	}
	q := new(Queue[T])
	q.head.Store(list)
	return q
}

// FromSeq returns a queue holding the elements of s, with the first element
// of s being polled first.
func FromSeq[T any](s iter.Seq[T]) *Queue[T] {
	var first, last *node[T]
	for x := range s {
		n := &node[T]{item: x}
		if last == nil {
			first = n
		} else {
			last.next = n
		}
		last = n
	}
	q := new(Queue[T])
	q.head.Store(first)
	return q
}

// Poll removes and returns the first item of q. The ok result is false if q
// is empty.
//
// Poll is safe to be invoked from different goroutines. Each item is
// returned by exactly one invocation of Poll.
func (q *Queue[T]) Poll() (item T, ok bool) {
	for {
		list := q.head.Load()
		if list == nil {
			return
		}
		if q.head.CompareAndSwap(list, list.next) {
			return list.item, true
		}
	}
}

// Push adds item to the front of q, so that it is polled before all items
// currently in q.
//
// Push is safe to be invoked from different goroutines.
func (q *Queue[T]) Push(item T) {
	n := &node[T]{item: item}
	for {
		n.next = q.head.Load()
		if q.head.CompareAndSwap(n.next, n) {
			return
		}
	}
}

// IsEmpty reports whether q has no items at the time of the call.
func (q *Queue[T]) IsEmpty() bool {
	return q.head.Load() == nil
}
