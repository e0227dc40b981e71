package parfold

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResult(t *testing.T) {
	v := Value(3)
	value, terminated := v.Get()
	assert.Equal(t, 3, value)
	assert.False(t, terminated)
	assert.False(t, v.IsTerminated())
	assert.Equal(t, "Value(3)", v.String())

	r := Terminated("done")
	value2, terminated2 := r.Get()
	assert.Equal(t, "done", value2)
	assert.True(t, terminated2)
	assert.Equal(t, "done", r.Unwrap())
	assert.Equal(t, "Terminated(done)", r.String())

	var zero Result[int]
	assert.Equal(t, Value(0), zero)
}

type outer struct {
	count int
	inner []int
}

func TestShortCircuit(t *testing.T) {
	expr := func(inner []int) outer {
		return outer{count: len(inner), inner: inner}
	}

	result := ShortCircuit(Value([]int{1, 2}), expr)
	assert.False(t, result.IsTerminated())
	assert.Equal(t, outer{count: 2, inner: []int{1, 2}}, result.Unwrap())

	result = ShortCircuit(Terminated([]int{1, 2, 3}), expr)
	assert.True(t, result.IsTerminated())
	assert.Equal(t, outer{count: 3, inner: []int{1, 2, 3}}, result.Unwrap(),
		"the surrounding expression is built from the unwrapped value")
}

func TestShortCircuitNested(t *testing.T) {
	// Three levels of composition around one terminating step.
	step := func(acc, x int) Result[int] {
		if x > 10 {
			return Terminated(acc)
		}
		return Value(acc + x)
	}
	level := func(acc [2]int, x int) Result[[2]int] {
		return ShortCircuit(step(acc[1], x), func(inner int) [2]int {
			return [2]int{acc[0] + 1, inner}
		})
	}
	top := func(acc [3]int, x int) Result[[3]int] {
		return ShortCircuit(level([2]int{acc[1], acc[2]}, x), func(in [2]int) [3]int {
			return [3]int{acc[0] + 1, in[0], in[1]}
		})
	}

	acc := Value([3]int{})
	for _, x := range []int{1, 2, 3, 20, 4} {
		acc = top(acc.Unwrap(), x)
		if acc.IsTerminated() {
			break
		}
	}
	assert.True(t, acc.IsTerminated())
	assert.Equal(t, [3]int{4, 4, 6}, acc.Unwrap())
}

func TestComputeEffectiveChunkSize(t *testing.T) {
	procs := runtime.GOMAXPROCS(0)

	assert.Equal(t, 1, ComputeEffectiveChunkSize(100, 0))
	assert.Equal(t, 7, ComputeEffectiveChunkSize(100, -7))
	assert.Equal(t, 1, ComputeEffectiveChunkSize(0, 1))
	assert.Equal(t, (100*procs-1)/procs+1, ComputeEffectiveChunkSize(100*procs, 1))
	assert.Equal(t, 50, ComputeEffectiveChunkSize(100*procs, 2))
	assert.Panics(t, func() { ComputeEffectiveChunkSize(-1, 1) })
}
