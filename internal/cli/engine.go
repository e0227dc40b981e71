package cli

import (
	"log/slog"
	"time"

	"github.com/exascience/parfold"
	"github.com/exascience/parfold/chunk"
	"github.com/exascience/parfold/parallel"
	"github.com/exascience/parfold/queue"
	"github.com/exascience/parfold/sequential"
	"github.com/exascience/parfold/speculative"
)

// reduce folds chunks with the engine selected in cfg.
func reduce[T, A any](cfg Config, log *slog.Logger, chunks []chunk.Chunk[T], r parfold.Reducer[T, A]) parfold.Result[A] {
	start := time.Now()
	var result parfold.Result[A]
	switch cfg.Engine {
	case EngineQueue:
		result = parallel.Drain(queue.New(chunks...), cfg.Workers, r)
	case EngineSpeculative:
		result = speculative.Reduce(chunks, r)
	case EngineSequential:
		result = sequential.Reduce(chunks, r)
	default:
		result = parallel.Reduce(chunks, r)
	}
	log.Debug("reduced chunks",
		"engine", cfg.Engine,
		"chunks", len(chunks),
		"terminated", result.IsTerminated(),
		"elapsed", time.Since(start))
	return result
}
