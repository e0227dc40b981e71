package cli

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/exascience/parfold"
)

// Engines that fold the partitioned input.
const (
	EngineParallel    = "parallel"
	EngineQueue       = "queue"
	EngineSpeculative = "speculative"
	EngineSequential  = "sequential"
)

// ValidEngines defines the allowed engine names.
var ValidEngines = []string{EngineParallel, EngineQueue, EngineSpeculative, EngineSequential}

// streamChunkSize is used for inputs of unknown length when no chunk size is
// configured.
const streamChunkSize = 1024

// Config controls how input is partitioned and folded.
type Config struct {
	// ChunkSize is the number of elements per chunk. If 0, the chunk size
	// is derived from the input length and Threshold.
	ChunkSize int `yaml:"chunk_size"`

	// Threshold is passed to parfold.ComputeEffectiveChunkSize when
	// ChunkSize is 0.
	Threshold int `yaml:"threshold"`

	// Workers is the number of workers of the queue engine. If 0,
	// runtime.GOMAXPROCS(0) is used.
	Workers int `yaml:"workers"`

	// Engine is one of ValidEngines.
	Engine string `yaml:"engine"`
}

// DefaultConfig returns the configuration used when no config file is given.
func DefaultConfig() Config {
	return Config{
		Threshold: 1,
		Engine:    EngineParallel,
	}
}

// LoadConfig reads a YAML config file. Fields missing from the file keep
// their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that all fields hold usable values.
func (c Config) Validate() error {
	if c.ChunkSize < 0 {
		return fmt.Errorf("invalid chunk size %d: must not be negative", c.ChunkSize)
	}
	if c.Workers < 0 {
		return fmt.Errorf("invalid number of workers %d: must not be negative", c.Workers)
	}
	if !slices.Contains(ValidEngines, c.Engine) {
		return fmt.Errorf("invalid engine %q: must be one of %v", c.Engine, ValidEngines)
	}
	return nil
}

// EffectiveChunkSize returns the chunk size for an input of length n. A
// negative n means that the length is not known in advance.
func (c Config) EffectiveChunkSize(n int) int {
	switch {
	case c.ChunkSize > 0:
		return c.ChunkSize
	case n < 0:
		return streamChunkSize
	default:
		return parfold.ComputeEffectiveChunkSize(n, c.Threshold)
	}
}
