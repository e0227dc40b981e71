// Package pair provides a mutable two-slot accumulator for reduction loops
// that track two values at once, such as a running count alongside a running
// sum, without allocating a new pair at every step.
package pair

import "fmt"

// A Pair holds two mutable slots.
//
// A Pair is not safe for concurrent use. It is meant to be owned by the
// goroutine that folds a single chunk, and must not be shared with other
// goroutines while that fold is running.
//
// The zero Pair is valid and holds two zero values.
type Pair[A, B any] struct {
	first  A
	second B
}

// New returns a new pair holding first and second.
func New[A, B any](first A, second B) *Pair[A, B] {
	return &Pair[A, B]{first: first, second: second}
}

// First returns the first slot.
func (p *Pair[A, B]) First() A {
	return p.first
}

// Second returns the second slot.
func (p *Pair[A, B]) Second() B {
	return p.second
}

// SetFirst stores first in the first slot and returns p.
func (p *Pair[A, B]) SetFirst(first A) *Pair[A, B] {
	p.first = first
	return p
}

// SetSecond stores second in the second slot and returns p.
func (p *Pair[A, B]) SetSecond(second B) *Pair[A, B] {
	p.second = second
	return p
}

// SetBoth stores first and second and returns p.
func (p *Pair[A, B]) SetBoth(first A, second B) *Pair[A, B] {
	p.first = first
	p.second = second
	return p
}

func (p *Pair[A, B]) String() string {
	return fmt.Sprintf("[%v %v]", p.first, p.second)
}
