// Package parfold provides the low-level primitives that a parallel fold
// (reduce) engine is built from: chunked partitioning of bulk data, an
// early-termination signal that composes through nested reduction steps, a
// lock-free single-pop work queue, and a mutable two-slot accumulator for
// allocation-free single-threaded reduction loops.
//
// This package defines the reduction result type shared by all subpackages,
// the ShortCircuit combinator, and the Reducer interfaces that engines
// consume.
//
// Parfold provides the following subpackages:
//
// parfold/chunk partitions slices, sequences, and gonum vectors into chunks,
// and folds individual chunks in order, stopping as soon as a step terminates.
//
// parfold/queue provides a lock-free queue from which concurrent workers pop
// work items, each item being delivered exactly once.
//
// parfold/pair provides an unsynchronized two-slot accumulator.
//
// parfold/seq provides lazy helpers over iter.Seq: successive pairs,
// differences, and cumulative sums.
//
// parfold/parallel folds chunks in parallel, either by recursive splitting or
// by draining a shared queue with a fixed number of workers.
//
// parfold/speculative folds chunks in parallel and returns as soon as the
// left-most terminated result is known.
//
// parfold/sequential provides sequential implementations of the engines, for
// testing and debugging purposes.
package parfold
