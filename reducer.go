package parfold

import (
	"errors"
	"fmt"
)

type (
	// A Reducer describes a fold over elements of type T into an
	// accumulator of type A.
	//
	// Init produces a fresh seed for each chunk, and must be an identity
	// for Combine. Step folds one element into the accumulator and may
	// terminate the reduction. Combine merges the accumulators of two
	// adjacent chunks, left before right.
	Reducer[T, A any] interface {
		Init() A
		Step(acc A, x T) Result[A]
		Combine(x, y A) A
	}

	// A Finisher is a Reducer that transforms the final accumulator once
	// all chunks have been combined.
	Finisher[A any] interface {
		Finish(acc A) A
	}

	// Funcs implements Reducer and Finisher from plain functions.
	// InitFunc, StepFunc, and CombineFunc must be set. A nil FinishFunc is
	// the identity.
	Funcs[T, A any] struct {
		InitFunc    func() A
		StepFunc    func(acc A, x T) Result[A]
		CombineFunc func(x, y A) A
		FinishFunc  func(acc A) A
	}
)

// Init implements Reducer.
func (f Funcs[T, A]) Init() A { return f.InitFunc() }

// Step implements Reducer.
func (f Funcs[T, A]) Step(acc A, x T) Result[A] { return f.StepFunc(acc, x) }

// Combine implements Reducer.
func (f Funcs[T, A]) Combine(x, y A) A { return f.CombineFunc(x, y) }

// Finish implements Finisher.
func (f Funcs[T, A]) Finish(acc A) A {
	if f.FinishFunc == nil {
		return acc
	}
	return f.FinishFunc(acc)
}

// Complete applies the Finish method of r to acc if r is a Finisher, and
// returns acc unchanged otherwise.
func Complete[T, A any](r Reducer[T, A], acc A) A {
	if f, ok := r.(Finisher[A]); ok {
		return f.Finish(acc)
	}
	return acc
}

// CombineResults combines the results of two adjacent chunks, left before
// right. If left is terminated, the reduction stopped before the right chunk,
// and left is returned as is. Otherwise the combined value is terminated iff
// right is.
func CombineResults[T, A any](r Reducer[T, A], left, right Result[A]) Result[A] {
	if left.terminated {
		return left
	}
	return Result[A]{value: r.Combine(left.value, right.value), terminated: right.terminated}
}

// CompleteResult applies Complete to the value of result, keeping its
// termination flag.
func CompleteResult[T, A any](r Reducer[T, A], result Result[A]) Result[A] {
	return Result[A]{value: Complete(r, result.value), terminated: result.terminated}
}

// An Fn is an untyped reducing function. Called with no arguments it
// produces a seed, with one argument it finishes an accumulator, with two
// arguments it performs a step, and with more arguments it combines.
//
// An Fn that does not support a given number of arguments returns an
// *ArityError.
type Fn func(args ...any) (any, error)

// An ArityError reports that an Fn was called with a number of arguments it
// does not support.
type ArityError struct {
	Got int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("wrong number of arguments: %v", e.Got)
}

// WrapUnary adapts fn so that it can always be called with one argument.
//
// With one argument, the wrapper calls fn with that argument. If fn fails
// with an *ArityError, the argument is returned unchanged instead. Any other
// error is returned as is. All other argument counts are passed through to
// fn.
func WrapUnary(fn Fn) Fn {
	return func(args ...any) (any, error) {
		if len(args) != 1 {
			return fn(args...)
		}
		result, err := fn(args[0])
		var arityErr *ArityError
		if errors.As(err, &arityErr) {
			return args[0], nil
		}
		return result, err
	}
}
