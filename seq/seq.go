// Package seq provides lazy helpers over iter.Seq values.
//
// All functions return sequences that are derived from their source on every
// iteration, so they can be iterated more than once whenever their source
// can. They are finite if their source is finite, and infinite otherwise.
package seq

import "iter"

// Number is the set of types that support addition and subtraction.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// SuccessivePairs returns the pairs of adjacent elements of s: (s0, s1),
// (s1, s2), and so on. The result is empty if s has fewer than two elements.
func SuccessivePairs[T any](s iter.Seq[T]) iter.Seq2[T, T] {
	return func(yield func(T, T) bool) {
		var prev T
		started := false
		for x := range s {
			if started && !yield(prev, x) {
				return
			}
			prev, started = x, true
		}
	}
}

// Differences returns the difference between each element of s and the
// element preceding it.
func Differences[T Number](s iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for a, b := range SuccessivePairs(s) {
			if !yield(b - a) {
				return
			}
		}
	}
}

// CumulativeSums returns the running sums of s, starting with the first
// element of s.
func CumulativeSums[T Number](s iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		var sum T
		for x := range s {
			sum += x
			if !yield(sum) {
				return
			}
		}
	}
}

// CumulativeSumsFrom returns initial, followed by the running sums of s
// added to initial.
//
// CumulativeSumsFrom is the inverse of Differences up to the initial value:
// for a non-empty xs, CumulativeSumsFrom(x0, Differences(CumulativeSumsFrom(x0, xs)))
// yields the same elements as CumulativeSumsFrom(x0, xs).
func CumulativeSumsFrom[T Number](initial T, s iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		sum := initial
		if !yield(sum) {
			return
		}
		for x := range s {
			sum += x
			if !yield(sum) {
				return
			}
		}
	}
}
