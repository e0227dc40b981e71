package cli

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig("testdata/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, Config{ChunkSize: 2, Threshold: 1, Workers: 3, Engine: EngineQueue}, cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config")

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chunk_size: [1, 2\n"), 0o644))
	_, err = LoadConfig(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	tests := []struct {
		name string
		cfg  Config
		msg  string
	}{
		{"negative chunk size", Config{ChunkSize: -1, Engine: EngineParallel}, "invalid chunk size"},
		{"negative workers", Config{Workers: -2, Engine: EngineQueue}, "invalid number of workers"},
		{"unknown engine", Config{Engine: "fast"}, "invalid engine"},
		{"empty engine", Config{}, "invalid engine"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorContains(t, tt.cfg.Validate(), tt.msg)
		})
	}
}

func TestEffectiveChunkSize(t *testing.T) {
	assert.Equal(t, 7, Config{ChunkSize: 7}.EffectiveChunkSize(100))
	assert.Equal(t, 7, Config{ChunkSize: 7}.EffectiveChunkSize(-1))
	assert.Equal(t, streamChunkSize, Config{Threshold: 1}.EffectiveChunkSize(-1))
	assert.Equal(t, 1, Config{Threshold: 0}.EffectiveChunkSize(100))
	assert.Equal(t, 5, Config{Threshold: -5}.EffectiveChunkSize(100))

	procs := runtime.GOMAXPROCS(0)
	assert.Equal(t, 100, Config{Threshold: 1}.EffectiveChunkSize(100*procs))
}
