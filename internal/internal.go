package internal

import (
	"errors"
	"fmt"
	"runtime"
	"runtime/debug"
)

// ComputeNofWorkers bounds the number of workers n by the number of chunks.
// If n is 0, runtime.GOMAXPROCS(0) is used. If chunks is negative, the number
// of chunks is unknown and does not bound the result. The result is at
// least 1.
func ComputeNofWorkers(n, chunks int) (workers int) {
	switch {
	case n == 0:
		workers = runtime.GOMAXPROCS(0)
	case n > 0:
		workers = n
	default:
		panic(fmt.Sprintf("invalid number of workers: %v", n))
	}
	if (chunks >= 0) && (workers > chunks) {
		workers = chunks
	}
	if workers < 1 {
		workers = 1
	}
	return
}

type runtimeError struct{ error }

func (runtimeError) RuntimeError() {}

// WrapPanic adds stack trace information to a recovered panic.
func WrapPanic(p interface{}) interface{} {
	if p != nil {
		s := fmt.Sprintf("%v\n%s\nrethrown at", p, debug.Stack())
		if _, isError := p.(error); isError {
			r := errors.New(s)
			if _, isRuntimeError := p.(runtime.Error); isRuntimeError {
				return runtimeError{r}
			}
			return r
		}
		return s
	}
	return nil
}
