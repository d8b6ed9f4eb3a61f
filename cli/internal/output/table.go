package output

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"github.com/zhaobenny/tputplot/internal/model"
)

// TableOptions controls table display behavior
type TableOptions struct {
	ForceCompact bool
}

// shouldUseCompact determines if compact mode should be used
func shouldUseCompact(opts TableOptions) bool {
	if opts.ForceCompact {
		return true
	}
	return TerminalWidth() < compactThreshold
}

// PrintSummary prints one row of throughput statistics per run
func PrintSummary(w io.Writer, summaries []model.Summary, opts TableOptions) error {
	if len(summaries) == 0 {
		fmt.Fprintln(w, "No runs to summarize.")
		return nil
	}

	compact := shouldUseCompact(opts)

	table := tablewriter.NewWriter(w)
	if compact {
		table.Header("Run", "Buckets", "Peak", "Mean")
	} else {
		table.Header("Run", "Records", "Buckets", "Peak", "Mean", "Std Dev", "Final Count")
	}

	for _, s := range summaries {
		var row []string
		if compact {
			row = []string{
				s.Label,
				humanize.Comma(int64(s.Buckets)),
				humanize.Comma(s.PeakThroughput),
				humanize.CommafWithDigits(s.MeanThroughput, 2),
			}
		} else {
			row = []string{
				s.Label,
				humanize.Comma(s.Records),
				humanize.Comma(int64(s.Buckets)),
				humanize.Comma(s.PeakThroughput),
				humanize.CommafWithDigits(s.MeanThroughput, 2),
				humanize.CommafWithDigits(s.StdDev, 2),
				humanize.Comma(s.FinalCount),
			}
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}

	return table.Render()
}
