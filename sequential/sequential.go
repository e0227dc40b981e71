// Package sequential provides sequential implementations of the
// functions provided by the parallel and speculative packages. This
// is useful for testing and debugging.
//
// It is not recommended to use the implementations of this package
// for any other purpose, because they are almost certainly too
// inefficient for regular sequential programs.
package sequential

import (
	"slices"

	"github.com/exascience/parfold"
	"github.com/exascience/parfold/chunk"
	"github.com/exascience/parfold/queue"
)

// Reduce receives a slice of chunks and a reducer, and folds the chunks
// one after the other, combining the chunk results left to right.
//
// Reduce stops at the first chunk that terminates early, and returns a
// terminated result. The returned value has been completed with
// parfold.Complete.
func Reduce[T, A any](chunks []chunk.Chunk[T], r parfold.Reducer[T, A]) parfold.Result[A] {
	acc := parfold.Value(r.Init())
	for _, c := range chunks {
		if acc = parfold.CombineResults(r, acc, chunk.Reduce(c, r)); acc.IsTerminated() {
			break
		}
	}
	return parfold.CompleteResult(r, acc)
}

// ReduceSlice partitions s into chunks of size chunkSize with
// chunk.PartitionAll, and folds them with Reduce.
func ReduceSlice[T, A any](s []T, chunkSize int, r parfold.Reducer[T, A]) (parfold.Result[A], error) {
	chunks, err := chunk.PartitionAll(chunkSize, s)
	if err != nil {
		return parfold.Result[A]{}, err
	}
	return Reduce(slices.Collect(chunks), r), nil
}

// Drain polls all chunks from q, sorts them by index, and folds them
// with Reduce. The number of workers n is ignored.
func Drain[T, A any](q *queue.Queue[chunk.Chunk[T]], _ int, r parfold.Reducer[T, A]) parfold.Result[A] {
	var chunks []chunk.Chunk[T]
	for c, ok := q.Poll(); ok; c, ok = q.Poll() {
		chunks = append(chunks, c)
	}
	slices.SortFunc(chunks, func(x, y chunk.Chunk[T]) int {
		return x.Index() - y.Index()
	})
	return Reduce(chunks, r)
}
