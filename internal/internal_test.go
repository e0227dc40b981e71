package internal

import (
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeNofWorkers(t *testing.T) {
	procs := runtime.GOMAXPROCS(0)
	assert.Equal(t, min(procs, 100), ComputeNofWorkers(0, 100))
	assert.Equal(t, procs, ComputeNofWorkers(0, -1))
	assert.Equal(t, 3, ComputeNofWorkers(3, 10))
	assert.Equal(t, 2, ComputeNofWorkers(8, 2))
	assert.Equal(t, 1, ComputeNofWorkers(8, 0))
	assert.Equal(t, 8, ComputeNofWorkers(8, -1))
	assert.Panics(t, func() { ComputeNofWorkers(-1, 10) })
}

func TestWrapPanic(t *testing.T) {
	assert.Nil(t, WrapPanic(nil))

	s, ok := WrapPanic("boom").(string)
	assert.True(t, ok)
	assert.Contains(t, s, "boom")
	assert.Contains(t, s, "rethrown at")

	err, ok := WrapPanic(errors.New("bad")).(error)
	assert.True(t, ok)
	assert.Contains(t, err.Error(), "bad")

	var rerr runtime.Error
	func() {
		defer func() {
			rerr, _ = WrapPanic(recover()).(runtime.Error)
		}()
		var m map[string]int
		m["x"] = 1
	}()
	assert.NotNil(t, rerr)
}
