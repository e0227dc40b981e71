// Package parallel provides functions for folding partitioned data in
// parallel.
//
// Reduce splits a slice of chunks recursively and folds each chunk in its own
// goroutine. Drain starts a fixed number of workers that poll chunks from a
// shared lock-free queue until it is empty. Both combine the chunk results
// left to right, so that the result is the same as that of a sequential fold,
// provided the reducer's Combine is associative.
package parallel

import (
	"cmp"
	"math"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/exascience/parfold"
	"github.com/exascience/parfold/chunk"
	"github.com/exascience/parfold/internal"
	"github.com/exascience/parfold/queue"
)

// Do receives zero or more thunks and executes them in parallel.
//
// Each thunk is invoked in its own goroutine, and Do returns only
// when all thunks have terminated, returning the left-most error
// value that is different from nil.
//
// If one or more thunks panic, the corresponding goroutines recover
// the panics, and Do eventually panics with the left-most
// recovered panic value.
func Do(thunks ...func() error) (err error) {
	switch len(thunks) {
	case 0:
		return nil
	case 1:
		return thunks[0]()
	}
	var err0, err1 error
	var p interface{}
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer func() {
			p = internal.WrapPanic(recover())
			wg.Done()
		}()
		if len(thunks) == 2 {
			err1 = thunks[1]()
		} else {
			err1 = Do(thunks[len(thunks)/2:]...)
		}
	}()
	if len(thunks) == 2 {
		err0 = thunks[0]()
	} else {
		err0 = Do(thunks[:len(thunks)/2]...)
	}
	wg.Wait()
	if p != nil {
		panic(p)
	}
	if err0 != nil {
		err = err0
	} else {
		err = err1
	}
	return
}

// Reduce receives a slice of chunks and a reducer, folds each chunk with
// the reducer in parallel, and combines the chunk results left to right.
//
// The slice is divided recursively into halves, and the right half is
// folded in its own goroutine. Reduce returns only when all chunks have
// been folded.
//
// If a chunk terminates early, the result is terminated, and it combines
// only the results of the chunks up to and including the left-most
// terminated chunk. Chunks to the right of it are still folded, but
// their results are discarded. The returned value has been completed
// with parfold.Complete. If chunks is empty, the completed r.Init() is
// returned.
//
// If one or more reducer invocations panic, the corresponding
// goroutines recover the panics, and Reduce eventually panics with the
// left-most recovered panic value.
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
//
// ReduceSlice returns an error wrapping chunk.ErrInvalidChunkSize if
// chunkSize <= 0.
func ReduceSlice[T, A any](s []T, chunkSize int, r parfold.Reducer[T, A]) (parfold.Result[A], error) {
	chunks, err := chunk.PartitionAll(chunkSize, s)
	if err != nil {
		return parfold.Result[A]{}, err
	}
	return Reduce(slices.Collect(chunks), r), nil
}

type indexedResult[A any] struct {
	index  int
	result parfold.Result[A]
}

/*
Drain starts n workers that repeatedly poll chunks from q and fold
them with the reducer, until q is empty. If n is 0,
runtime.GOMAXPROCS(0) is used. The chunk results are then combined in
the order of their chunk indices.

The chunks in q must have distinct indices, for example because they
all stem from the same partition. Each worker keeps the results of
its own chunks, so no other state than q is shared between workers.

When a chunk terminates early, workers skip any chunks they poll
afterwards whose index is greater than that of the terminated chunk.
The result is then terminated, and combines only the results of the
chunks up to and including the left-most terminated chunk. All chunks
to its left are guaranteed to be folded, since they are never
skipped. The returned value has been completed with parfold.Complete.

Drain panics if n < 0. If one or more reducer invocations panic, Drain
eventually panics with the left-most recovered panic value.
*/
func Drain[T, A any](q *queue.Queue[chunk.Chunk[T]], n int, r parfold.Reducer[T, A]) parfold.Result[A] {
	var limit atomic.Int64
	limit.Store(math.MaxInt64)
	results := make([][]indexedResult[A], internal.ComputeNofWorkers(n, -1))
	thunks := make([]func() error, len(results))
	for w := range thunks {
		thunks[w] = func() error {
			for c, ok := q.Poll(); ok; c, ok = q.Poll() {
				index := int64(c.Index())
				if index > limit.Load() {
					continue
				}
				result := chunk.Reduce(c, r)
				results[w] = append(results[w], indexedResult[A]{c.Index(), result})
				if result.IsTerminated() {
					for current := limit.Load(); (index < current) && !limit.CompareAndSwap(current, index); current = limit.Load() {
					}
				}
			}
			return nil
		}
	}
	_ = Do(thunks...) // workers never return an error

	var all []indexedResult[A]
	for _, local := range results {
		all = append(all, local...)
	}
	slices.SortFunc(all, func(x, y indexedResult[A]) int {
		return cmp.Compare(x.index, y.index)
	})
	stop := limit.Load()
	acc := parfold.Value(r.Init())
	for _, x := range all {
		if int64(x.index) > stop {
			break
		}
		acc = parfold.CombineResults(r, acc, x.result)
	}
	return parfold.CompleteResult(r, acc)
}
