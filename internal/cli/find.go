package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// FindReport is the output of the find command. Position is the 1-based
// position of Value among the numbers read, not counting blank lines.
type FindReport struct {
	Found    bool     `json:"found"`
	Position int      `json:"position,omitempty"`
	Value    *float64 `json:"value,omitempty"`
}

func (r FindReport) String() string {
	if !r.Found {
		return "not found"
	}
	return fmt.Sprintf("found %v at position %d", *r.Value, r.Position)
}

// NewFindCommand creates the find command.
func NewFindCommand(rootOpts *RootOptions) *cobra.Command {
	var source SourceOptions
	var above float64

	cmd := &cobra.Command{
		Use:   "find --above <x> [file]",
		Short: "Find the first number above a threshold",
		Long: `Read one number per line from a file, standard input, or an SQLite
query, and report the first number greater than --above together with its
position among the numbers read. Chunks after the first match are not combined, and the speculative
engine does not wait for them.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFind(rootOpts, &source, above, cmd, args)
		},
	}
	cmd.Flags().Float64Var(&above, "above", 0, "report the first number greater than this value")
	_ = cmd.MarkFlagRequired("above")
	source.addFlags(cmd)

	return cmd
}

func runFind(opts *RootOptions, source *SourceOptions, above float64, cmd *cobra.Command, args []string) error {
	log := opts.logger()
	chunks, err := source.numberChunks(cmd.Context(), cmd, args, opts.Config)
	if err != nil {
		return err
	}
	log.Debug("partitioned input", "chunks", len(chunks))

	r := counting[float64, match]{inner: aboveReducer{threshold: above}}
	acc := reduce(opts.Config, log, chunks, r).Unwrap()
	var report FindReport
	if m := acc.Second(); m.found {
		report = FindReport{Found: true, Position: acc.First(), Value: &m.value}
	}
	return opts.formatter(cmd).Success(report)
}
