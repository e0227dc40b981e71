package cli

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/exascience/parfold/chunk"
)

// WordCounts is the output of the wordcount command.
type WordCounts map[string]int

func (w WordCounts) String() string {
	var b strings.Builder
	for i, word := range slices.Sorted(maps.Keys(w)) {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s %d", word, w[word])
	}
	return b.String()
}

// NewWordCountCommand creates the wordcount command.
func NewWordCountCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wordcount [file]",
		Short: "Count word occurrences",
		Long: `Split a file or standard input into whitespace separated words, and
count how often each word occurs. Words are compared in Unicode normalization
form NFC. Text output is sorted by word.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWordCount(rootOpts, cmd, args)
		},
	}

	return cmd
}

func runWordCount(opts *RootOptions, cmd *cobra.Command, args []string) error {
	log := opts.logger()
	in, err := openInput(cmd, args)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open input", err)
	}
	defer in.Close()

	seq, readErr := words(in)
	partitions, err := chunk.PartitionSeq(opts.Config.EffectiveChunkSize(-1), seq)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid config", err)
	}
	chunks := slices.Collect(partitions)
	if err := readErr(); err != nil {
		return WrapExitError(ExitCommandError, "failed to read input", err)
	}
	log.Debug("partitioned input", "chunks", len(chunks))

	counts := reduce(opts.Config, log, chunks, wordCounter{}).Unwrap()
	return opts.formatter(cmd).Success(WordCounts(counts))
}
