package parfold

import (
	"fmt"
	"runtime"
)

// A Result is the outcome of a reduction step: either a plain accumulator
// value, or a terminated value signaling that the reduction must stop.
//
// The zero Result is a plain zero value.
type Result[T any] struct {
	value      T
	terminated bool
}

// Value returns a plain, non-terminated result.
func Value[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Terminated returns a result that stops the enclosing reduction. No further
// step is executed once a terminated result has been produced.
func Terminated[T any](v T) Result[T] {
	return Result[T]{value: v, terminated: true}
}

// Get returns the wrapped value and whether it is terminated.
func (r Result[T]) Get() (value T, terminated bool) {
	return r.value, r.terminated
}

// IsTerminated reports whether r signals early termination.
func (r Result[T]) IsTerminated() bool {
	return r.terminated
}

// Unwrap returns the wrapped value, discarding the termination flag.
func (r Result[T]) Unwrap() T {
	return r.value
}

func (r Result[T]) String() string {
	if r.terminated {
		return fmt.Sprintf("Terminated(%v)", r.value)
	}
	return fmt.Sprintf("Value(%v)", r.value)
}

/*
ShortCircuit composes a reduction expression around exactly one step
call that may terminate.

The call has already been evaluated. Its unwrapped value is passed to
expr, which builds the surrounding expression (for example, storing
the inner accumulator into an outer one). If call is terminated, the
outcome of expr is returned as a terminated result, so that the whole
surrounding expression stops the reduction; otherwise it is returned
as a plain value.

Taking a single Result is what restricts each composition level to
one short-circuiting call. Nested compositions apply ShortCircuit once
per level:

	return parfold.ShortCircuit(inner.Step(acc.inner, x), func(in A) Outer {
		acc.inner = in
		return acc
	})
*/
func ShortCircuit[T, U any](call Result[T], expr func(T) U) Result[U] {
	if call.terminated {
		return Terminated(expr(call.value))
	}
	return Value(expr(call.value))
}

/*
ComputeEffectiveChunkSize determines a chunk size for partitioning
an input of length n.

Useful threshold parameter values are 1 to evenly divide up the
input across the available logical CPUs (as determined by
runtime.GOMAXPROCS(0)); or 2 or higher to additionally divide that
number by the threshold parameter. Use 1 if you expect no load
imbalance, between 2 and 10 if you expect some load imbalance, or 10
or more if you expect even more load imbalance.

A threshold parameter value of 0 yields chunks of size 1, the most
fine-grained parallelism.

A threshold parameter value below zero specifies the chunk size
directly, which becomes the absolute value of the threshold parameter
value.

More specifically:

If the input threshold is > 0, the return value is ceiling(n /
(threshold * runtime.GOMAXPROCS(0))), but at least 1.

If the input threshold is == 0, the return value is 1.

If the input threshold is < 0, the return value is abs(threshold).

ComputeEffectiveChunkSize panics if n < 0.
*/
func ComputeEffectiveChunkSize(n, threshold int) int {
	if n < 0 {
		panic(fmt.Sprintf("invalid input length: %v", n))
	}
	if threshold > 0 {
		if n == 0 {
			return 1
		}
		threshold = ((n - 1) / (threshold * runtime.GOMAXPROCS(0))) + 1
	} else if threshold < 0 {
		return -1 * threshold
	}
	if threshold == 0 {
		threshold = 1
	}
	return threshold
}
