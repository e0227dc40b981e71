/*
Package speculative provides functions for folding partitioned data
in parallel, similar to the functions in package parallel, except that
the implementations here return early when they can.

Reduce returns as soon as the result of a chunk, or of a group of
adjacent chunks, is known to be terminated, without waiting for the
chunks to its right, since their results cannot contribute to the
final result anymore.

Additionally, Reduce also handles panics, similar to the functions in
package parallel. However, panics may not propagate to the invoking
goroutine in case Reduce returns early.

Reduce does not stop the folds of chunks that may still be running in
parallel in case of early termination. To ensure that compute
resources are freed up in such cases, user programs need to use some
other safe form of communication to gracefully stop their execution,
for example the cancelation feature of the context package of Go's
standard library. (Any such additional communication is likely to add
additional performance overhead, which is why this is not done by
default.)
*/
package speculative

import (
	"slices"
	"sync"

	"github.com/exascience/parfold"
	"github.com/exascience/parfold/chunk"
	"github.com/exascience/parfold/internal"
)

/*
Reduce receives a slice of chunks and a reducer, folds each chunk with
the reducer in parallel, and combines the chunk results left to right.

The slice is divided recursively into halves, and the right half is
folded in its own goroutine. If the left half yields a terminated
result, Reduce returns it without waiting for the right half.
Otherwise, Reduce waits for the right half, and combines both results.

The result is the same as that of parallel.Reduce: it is terminated
if any chunk terminates early, and then combines only the results of
the chunks up to and including the left-most terminated chunk. The
returned value has been completed with parfold.Complete.

If one or more reducer invocations panic, the corresponding goroutines
recover the panics, and Reduce may eventually panic with the left-most
recovered panic value. If both panics occur and terminated results are
returned, then the left-most of these events takes precedence.
*/
func Reduce[T, A any](chunks []chunk.Chunk[T], r parfold.Reducer[T, A]) parfold.Result[A] {
	if len(chunks) == 0 {
		return parfold.CompleteResult(r, parfold.Value(r.Init()))
	}
	var recur func([]chunk.Chunk[T]) parfold.Result[A]
	recur = func(chunks []chunk.Chunk[T]) parfold.Result[A] {
		if len(chunks) == 1 {
			return chunk.Reduce(chunks[0], r)
		}
		half := len(chunks) / 2
		var right parfold.Result[A]
		var p interface{}
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer func() {
				p = internal.WrapPanic(recover())
				wg.Done()
			}()
			right = recur(chunks[half:])
		}()
		left := recur(chunks[:half])
		if left.IsTerminated() {
			return left
		}
		wg.Wait()
		if p != nil {
			panic(p)
		}
		return parfold.CombineResults(r, left, right)
	}
	return parfold.CompleteResult(r, recur(chunks))
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
