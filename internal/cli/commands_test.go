package cli

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

// engineArgs lists flag combinations that must all produce the same output.
var engineArgs = [][]string{
	{},
	{"--chunk-size", "1"},
	{"--chunk-size", "2", "--engine", EngineQueue, "--workers", "3"},
	{"--chunk-size", "2", "--engine", EngineSpeculative},
	{"--chunk-size", "3", "--engine", EngineSequential},
	{"--threshold", "0", "--engine", EngineQueue},
	{"--chunk-size", "100000000000"},
}

func TestGolden(t *testing.T) {
	tests := []struct {
		golden string
		args   []string
	}{
		{"sum", []string{"sum", "testdata/numbers.txt"}},
		{"sum_json", []string{"sum", "--format", "json", "testdata/numbers.txt"}},
		{"find", []string{"find", "--above", "3", "testdata/numbers.txt"}},
		{"find_json", []string{"find", "--above", "3", "--format", "json", "testdata/numbers.txt"}},
		{"find_none", []string{"find", "--above", "10", "testdata/numbers.txt"}},
		{"find_none_json", []string{"find", "--above", "10", "--format", "json", "testdata/numbers.txt"}},
		{"deltas", []string{"deltas", "testdata/numbers.txt"}},
		{"deltas_json", []string{"deltas", "--format", "json", "testdata/numbers.txt"}},
		{"integrate", []string{"deltas", "--integrate", "--initial", "1", "testdata/deltas.txt"}},
		{"cumulative", []string{"deltas", "--integrate", "testdata/deltas.txt"}},
		{"wordcount", []string{"wordcount", "testdata/words.txt"}},
		{"wordcount_json", []string{"wordcount", "--format", "json", "testdata/words.txt"}},
	}

	g := newGoldie(t)
	for _, tt := range tests {
		for _, extra := range engineArgs {
			t.Run(tt.golden, func(t *testing.T) {
				stdout, _, err := execute(t, "", append(tt.args, extra...)...)
				require.NoError(t, err, "args %v", extra)
				g.Assert(t, tt.golden, []byte(stdout))
			})
		}
	}
}

func TestReadsStdin(t *testing.T) {
	g := newGoldie(t)

	stdout, _, err := execute(t, "1\n2\n\n4\n5\n2\n", "sum")
	require.NoError(t, err)
	g.Assert(t, "sum", []byte(stdout))

	stdout, _, err = execute(t, "1\n2\n4\n5\n2\n", "sum", "-")
	require.NoError(t, err)
	g.Assert(t, "sum", []byte(stdout))

	stdout, _, err = execute(t, "", "sum")
	require.NoError(t, err)
	g.Assert(t, "sum_empty", []byte(stdout))
}

func TestSQLiteSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "readings.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE readings (v REAL NOT NULL)`)
	require.NoError(t, err)
	for _, v := range []float64{1, 2, 4, 5, 2} {
		_, err = db.Exec(`INSERT INTO readings (v) VALUES (?)`, v)
		require.NoError(t, err)
	}
	require.NoError(t, db.Close())

	query := "SELECT v FROM readings ORDER BY rowid"
	g := newGoldie(t)
	for _, extra := range engineArgs {
		stdout, _, err := execute(t, "", append([]string{"sum", "--sqlite", path, "--query", query}, extra...)...)
		require.NoError(t, err)
		g.Assert(t, "sum", []byte(stdout))

		stdout, _, err = execute(t, "", append([]string{"find", "--above", "3", "--sqlite", path, "--query", query}, extra...)...)
		require.NoError(t, err)
		g.Assert(t, "find", []byte(stdout))
	}

	_, _, err = execute(t, "", "sum", "--sqlite", path, "--query", "SELECT v FROM nowhere")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestSourceFlagErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{"query without sqlite", []string{"sum", "--query", "SELECT 1"}, "--query requires --sqlite"},
		{"sqlite without query", []string{"sum", "--sqlite", "x.db"}, "--sqlite requires --query"},
		{"file and sqlite", []string{"sum", "--sqlite", "x.db", "--query", "SELECT 1", "testdata/numbers.txt"}, "cannot read from both"},
		{"initial without integrate", []string{"deltas", "--initial", "1", "testdata/deltas.txt"}, "--initial requires --integrate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
		})
	}
}

func TestMalformedInput(t *testing.T) {
	_, _, err := execute(t, "1\ntwo\n3\n", "sum")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, _, err = execute(t, "", "sum", "testdata/missing.txt")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestFindSkipsBlankLines(t *testing.T) {
	stdout, _, err := execute(t, "1\n\n5\n", "find", "--above", "3")
	require.NoError(t, err)
	newGoldie(t).Assert(t, "find_blank_lines", []byte(stdout))
}

func TestFindRequiresAbove(t *testing.T) {
	_, _, err := execute(t, "1\n", "find")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "above")
}
