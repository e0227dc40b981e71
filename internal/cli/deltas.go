package cli

import (
	"fmt"
	"iter"
	"strings"

	"github.com/spf13/cobra"

	"github.com/exascience/parfold/chunk"
	"github.com/exascience/parfold/seq"
)

// Series is the output of the deltas command.
type Series []float64

func (s Series) String() string {
	var b strings.Builder
	for i, x := range s {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprint(&b, x)
	}
	return b.String()
}

// DeltasOptions holds the flags of the deltas command.
type DeltasOptions struct {
	Source    SourceOptions
	Integrate bool
	Initial   float64
}

// NewDeltasCommand creates the deltas command.
func NewDeltasCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DeltasOptions{}

	cmd := &cobra.Command{
		Use:   "deltas [file]",
		Short: "Print differences or cumulative sums of numbers",
		Long: `Read one number per line from a file, standard input, or an SQLite
query, and print the differences between successive numbers.

With --integrate, print the cumulative sums instead. If --initial is set, it
is printed first and added to every sum, which inverts the differences of a
series starting with that value.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeltas(rootOpts, opts, cmd, args)
		},
	}
	cmd.Flags().BoolVar(&opts.Integrate, "integrate", false, "print cumulative sums instead of differences")
	cmd.Flags().Float64Var(&opts.Initial, "initial", 0, "initial value of the cumulative sums (requires --integrate)")
	opts.Source.addFlags(cmd)

	return cmd
}

func runDeltas(rootOpts *RootOptions, opts *DeltasOptions, cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("initial") && !opts.Integrate {
		return WrapExitError(ExitCommandError, "invalid flags", fmt.Errorf("--initial requires --integrate"))
	}
	chunks, err := opts.Source.numberChunks(cmd.Context(), cmd, args, rootOpts.Config)
	if err != nil {
		return err
	}

	values := concat(chunks)
	var out iter.Seq[float64]
	switch {
	case !opts.Integrate:
		out = seq.Differences(values)
	case cmd.Flags().Changed("initial"):
		out = seq.CumulativeSumsFrom(opts.Initial, values)
	default:
		out = seq.CumulativeSums(values)
	}
	series := Series{}
	for x := range out {
		series = append(series, x)
	}
	return rootOpts.formatter(cmd).Success(series)
}

// concat yields the elements of all chunks in order.
func concat[T any](chunks []chunk.Chunk[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, c := range chunks {
			for x := range c.All() {
				if !yield(x) {
					return
				}
			}
		}
	}
}
