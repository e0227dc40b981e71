package cli

import (
	"github.com/exascience/parfold"
	"github.com/exascience/parfold/pair"
)

// sumReducer accumulates the count and the sum of its elements.
type sumReducer struct{}

func (sumReducer) Init() *pair.Pair[int, float64] {
	return pair.New(0, 0.0)
}

func (sumReducer) Step(acc *pair.Pair[int, float64], x float64) parfold.Result[*pair.Pair[int, float64]] {
	return parfold.Value(acc.SetBoth(acc.First()+1, acc.Second()+x))
}

func (sumReducer) Combine(x, y *pair.Pair[int, float64]) *pair.Pair[int, float64] {
	return x.SetBoth(x.First()+y.First(), x.Second()+y.Second())
}

// match is the result of aboveReducer.
type match struct {
	value float64
	found bool
}

// aboveReducer terminates at the first element greater than its threshold.
type aboveReducer struct {
	threshold float64
}

func (aboveReducer) Init() match { return match{} }

func (r aboveReducer) Step(acc match, x float64) parfold.Result[match] {
	if x > r.threshold {
		return parfold.Terminated(match{value: x, found: true})
	}
	return parfold.Value(acc)
}

func (aboveReducer) Combine(x, y match) match {
	if x.found {
		return x
	}
	return y
}

// counting wraps a reducer and additionally counts the elements that its
// steps have seen, including the element at which a step terminates. Since
// chunk results are combined left to right, the count of a terminated result
// is the position of the terminating element in the whole input.
type counting[T, A any] struct {
	inner parfold.Reducer[T, A]
}

func (c counting[T, A]) Init() *pair.Pair[int, A] {
	return pair.New(0, c.inner.Init())
}

func (c counting[T, A]) Step(acc *pair.Pair[int, A], x T) parfold.Result[*pair.Pair[int, A]] {
	return parfold.ShortCircuit(c.inner.Step(acc.Second(), x), func(inner A) *pair.Pair[int, A] {
		return acc.SetBoth(acc.First()+1, inner)
	})
}

func (c counting[T, A]) Combine(x, y *pair.Pair[int, A]) *pair.Pair[int, A] {
	return x.SetBoth(x.First()+y.First(), c.inner.Combine(x.Second(), y.Second()))
}

func (c counting[T, A]) Finish(acc *pair.Pair[int, A]) *pair.Pair[int, A] {
	return acc.SetSecond(parfold.Complete(c.inner, acc.Second()))
}

// wordCounter counts occurrences of words.
type wordCounter struct{}

func (wordCounter) Init() map[string]int { return make(map[string]int) }

func (wordCounter) Step(acc map[string]int, word string) parfold.Result[map[string]int] {
	acc[word]++
	return parfold.Value(acc)
}

func (wordCounter) Combine(x, y map[string]int) map[string]int {
	if len(x) < len(y) {
		x, y = y, x
	}
	for word, n := range y {
		x[word] += n
	}
	return x
}
