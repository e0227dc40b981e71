package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"iter"
	"os"
	"slices"
	"strconv"
	"strings"

	_ "github.com/mattn/go-sqlite3" // registers the sqlite3 driver
	"github.com/spf13/cobra"
	"golang.org/x/text/unicode/norm"
	"gonum.org/v1/gonum/mat"

	"github.com/exascience/parfold/chunk"
)

// SourceOptions selects where numeric input is read from.
type SourceOptions struct {
	SQLitePath string
	Query      string
}

func (o *SourceOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.SQLitePath, "sqlite", "", "read numbers from this SQLite database instead of a file")
	cmd.Flags().StringVar(&o.Query, "query", "", "query selecting one numeric column (requires --sqlite)")
}

func (o *SourceOptions) validate(args []string) error {
	switch {
	case o.SQLitePath == "" && o.Query != "":
		return fmt.Errorf("--query requires --sqlite")
	case o.SQLitePath != "" && o.Query == "":
		return fmt.Errorf("--sqlite requires --query")
	case o.SQLitePath != "" && len(args) > 0:
		return fmt.Errorf("cannot read from both a file and --sqlite")
	}
	return nil
}

// numberChunks partitions the numeric input of a command. Database rows are
// streamed through chunk.PartitionSeq, while file input is read into a
// vector and partitioned without copying.
func (o *SourceOptions) numberChunks(ctx context.Context, cmd *cobra.Command, args []string, cfg Config) ([]chunk.Chunk[float64], error) {
	if err := o.validate(args); err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid flags", err)
	}
	if o.SQLitePath != "" {
		chunks, err := queryChunks(ctx, o.SQLitePath, o.Query, cfg.EffectiveChunkSize(-1))
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to query database", err)
		}
		return chunks, nil
	}

	in, err := openInput(cmd, args)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open input", err)
	}
	defer in.Close()
	data, err := readNumbers(in)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to read input", err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	chunks, err := chunk.PartitionVector(cfg.EffectiveChunkSize(len(data)), mat.NewVecDense(len(data), data))
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid config", err)
	}
	return slices.Collect(chunks), nil
}

// openInput opens the file named by the only argument, or standard input if
// there is no argument or it is "-".
func openInput(cmd *cobra.Command, args []string) (io.ReadCloser, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	return os.Open(args[0])
}

// readNumbers parses one number per line. Blank lines are skipped.
func readNumbers(r io.Reader) ([]float64, error) {
	var data []float64
	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		x, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		data = append(data, x)
	}
	return data, scanner.Err()
}

// queryChunks runs query against the SQLite database at path, and
// partitions the first column of the result rows.
func queryChunks(ctx context.Context, path, query string, chunkSize int) ([]chunk.Chunk[float64], error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scanErr error
	values := func(yield func(float64) bool) {
		for rows.Next() {
			var x float64
			if scanErr = rows.Scan(&x); scanErr != nil {
				return
			}
			if !yield(x) {
				return
			}
		}
	}
	partitions, err := chunk.PartitionSeq(chunkSize, values)
	if err != nil {
		return nil, err
	}
	chunks := slices.Collect(partitions)
	if scanErr != nil {
		return nil, scanErr
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return chunks, nil
}

// words returns the whitespace separated words of r in Unicode normalization
// form NFC, so that canonically equivalent spellings compare equal. The
// returned function reports the first read error after iteration.
func words(r io.Reader) (iter.Seq[string], func() error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	seq := func(yield func(string) bool) {
		for scanner.Scan() {
			if !yield(norm.NFC.String(scanner.Text())) {
				return
			}
		}
	}
	return seq, scanner.Err
}
