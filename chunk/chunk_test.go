package chunk

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exascience/parfold"
)

func sum(acc, x int) parfold.Result[int] {
	return parfold.Value(acc + x)
}

func TestFold(t *testing.T) {
	s := ints(10)
	seq, err := PartitionAll(4, s)
	require.NoError(t, err)
	var totals []int
	for c := range seq {
		result := Fold(c, sum, 0)
		assert.False(t, result.IsTerminated())
		totals = append(totals, result.Unwrap())
	}
	assert.Equal(t, []int{0 + 1 + 2 + 3, 4 + 5 + 6 + 7, 8 + 9}, totals)
}

func TestFoldEmpty(t *testing.T) {
	var c Chunk[int]
	result := Fold(c, sum, 42)
	assert.Equal(t, parfold.Value(42), result)
	assert.Equal(t, 0, c.Len())
}

func TestFoldTerminates(t *testing.T) {
	s := []int{5, 3, 8, 1, 9, 2}
	c := newChunk(s, 0, len(s), 0)

	for k := range s {
		var visited []int
		result := Fold(c, func(acc, x int) parfold.Result[int] {
			visited = append(visited, x)
			acc += x
			if len(visited) == k+1 {
				return parfold.Terminated(acc)
			}
			return parfold.Value(acc)
		}, 0)

		require.True(t, result.IsTerminated())
		assert.Equal(t, s[:k+1], visited, "no element after the k-th may be visited")
		expected := 0
		for _, x := range s[:k+1] {
			expected += x
		}
		assert.Equal(t, expected, result.Unwrap())
	}
}

func TestFoldRespectsBounds(t *testing.T) {
	s := ints(10)
	c := newChunk(s, 3, 6, 1)
	var visited []int
	Fold(c, func(acc, x int) parfold.Result[int] {
		visited = append(visited, x)
		return parfold.Value(acc)
	}, 0)
	assert.Equal(t, []int{3, 4, 5}, visited)
	assert.Equal(t, visited, slices.Collect(c.All()))
	assert.Equal(t, 4, c.At(1))
	assert.Panics(t, func() { c.At(3) })
}

func TestNewChunkInvalidRange(t *testing.T) {
	s := ints(4)
	assert.Panics(t, func() { newChunk(s, -1, 2, 0) })
	assert.Panics(t, func() { newChunk(s, 3, 2, 0) })
	assert.Panics(t, func() { newChunk(s, 0, 5, 0) })
}

func TestReduce(t *testing.T) {
	r := parfold.Funcs[int, []int]{
		InitFunc: func() []int { return nil },
		StepFunc: func(acc []int, x int) parfold.Result[[]int] {
			if x < 0 {
				return parfold.Terminated(acc)
			}
			return parfold.Value(append(acc, x*x))
		},
		CombineFunc: func(x, y []int) []int { return append(x, y...) },
	}
	c := newChunk([]int{1, 2, 3, -1, 4}, 0, 5, 0)
	result := Reduce[int, []int](c, r)
	assert.True(t, result.IsTerminated())
	assert.Equal(t, []int{1, 4, 9}, result.Unwrap())
}
