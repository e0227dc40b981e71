/*
Package chunk partitions bulk data into chunks that can be folded
independently by parallel workers.

Chunks of slices and contiguous gonum vectors are views that share
the backing storage of the partitioned data, so that partitioning
does not copy any elements. The backing storage must not be modified
while any of its chunks are still in use. Concurrent reads of
different chunks over the same backing storage are safe.

Sources that cannot be sliced in constant time, such as iter.Seq
values or strided vectors, are partitioned by buffering the elements
of each chunk into a fresh slice.
*/
package chunk

import (
	"fmt"
	"iter"

	"github.com/exascience/parfold"
)

/*
A Chunk is a read-only view of the half-open range [start, end) of a
backing slice.

The zero Chunk is valid and empty.
*/
type Chunk[T any] struct {
	backing    []T
	start, end int
	index      int
}

func newChunk[T any](backing []T, start, end, index int) Chunk[T] {
	if (start < 0) || (end < start) || (end > len(backing)) {
		panic(fmt.Sprintf("invalid chunk range: %v:%v", start, end))
	}
	return Chunk[T]{backing: backing, start: start, end: end, index: index}
}

// Len returns the number of elements in c.
func (c Chunk[T]) Len() int {
	return c.end - c.start
}

// Start returns the index of the first element of c in its backing storage.
func (c Chunk[T]) Start() int {
	return c.start
}

// End returns the index after the last element of c in its backing storage.
func (c Chunk[T]) End() int {
	return c.end
}

// Index returns the position of c in the sequence of chunks it was
// partitioned into.
func (c Chunk[T]) Index() int {
	return c.index
}

// At returns the i-th element of c, with 0 <= i < c.Len().
func (c Chunk[T]) At(i int) T {
	if (i < 0) || (i >= c.Len()) {
		panic(fmt.Sprintf("index out of chunk range: %v", i))
	}
	return c.backing[c.start+i]
}

// Values returns the elements of c as a slice sharing c's backing storage.
// The capacity of the result is clipped, so appending to it never
// overwrites elements of other chunks.
func (c Chunk[T]) Values() []T {
	return c.backing[c.start:c.end:c.end]
}

// All returns an iterator over the elements of c in order.
func (c Chunk[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, x := range c.backing[c.start:c.end] {
			if !yield(x) {
				return
			}
		}
	}
}

/*
Fold reduces the elements of c in order, starting with seed, by
computing acc = step(acc, x) for each element x.

As soon as step returns a terminated result, Fold returns that result
as is, and step is not invoked on any of the remaining elements.
Otherwise, Fold returns the final accumulator as a plain value.
*/
func Fold[T, A any](c Chunk[T], step func(acc A, x T) parfold.Result[A], seed A) parfold.Result[A] {
	acc := seed
	for _, x := range c.backing[c.start:c.end] {
		result := step(acc, x)
		if result.IsTerminated() {
			return result
		}
		acc = result.Unwrap()
	}
	return parfold.Value(acc)
}

// Reduce folds c with the Step method of r, starting from r.Init().
func Reduce[T, A any](c Chunk[T], r parfold.Reducer[T, A]) parfold.Result[A] {
	return Fold(c, r.Step, r.Init())
}
