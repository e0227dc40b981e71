package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// SumReport is the output of the sum command.
type SumReport struct {
	Count int     `json:"count"`
	Sum   float64 `json:"sum"`
	Mean  float64 `json:"mean"`
}

func (r SumReport) String() string {
	return fmt.Sprintf("count: %d\nsum: %v\nmean: %v", r.Count, r.Sum, r.Mean)
}

// NewSumCommand creates the sum command.
func NewSumCommand(rootOpts *RootOptions) *cobra.Command {
	var source SourceOptions

	cmd := &cobra.Command{
		Use:   "sum [file]",
		Short: "Count, sum, and average numbers",
		Long: `Read one number per line from a file, standard input, or an SQLite
query, and report their count, sum, and mean. The mean of no numbers is 0.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSum(rootOpts, &source, cmd, args)
		},
	}
	source.addFlags(cmd)

	return cmd
}

func runSum(opts *RootOptions, source *SourceOptions, cmd *cobra.Command, args []string) error {
	log := opts.logger()
	chunks, err := source.numberChunks(cmd.Context(), cmd, args, opts.Config)
	if err != nil {
		return err
	}
	log.Debug("partitioned input", "chunks", len(chunks))

	acc := reduce(opts.Config, log, chunks, sumReducer{}).Unwrap()
	report := SumReport{Count: acc.First(), Sum: acc.Second()}
	if report.Count > 0 {
		report.Mean = report.Sum / float64(report.Count)
	}
	return opts.formatter(cmd).Success(report)
}
