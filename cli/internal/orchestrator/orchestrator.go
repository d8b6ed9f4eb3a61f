// Package orchestrator turns the command line into runs, aggregates each run
// and hands the results to a figure.
package orchestrator

import (
	"errors"
	"log/slog"

	"github.com/zhaobenny/tputplot/cli/internal/aggregator"
	"github.com/zhaobenny/tputplot/internal/model"
)

// ErrUsage is returned when there are too few arguments to form a request
var ErrUsage = errors.New("need at least one file/label pair and a title")

// minArgs is one file, one label and the title
const minArgs = 3

// Request is a parsed invocation
type Request struct {
	Runs  []model.Run
	Title string
}

// Figure receives the aggregated series in order
type Figure interface {
	AddSeries(model.Series) error
}

// ParseArgs splits "<file> <label> ... <title>" into a request. The last
// argument is always the title. With an even argument count the final file
// takes the title as its label.
func ParseArgs(args []string) (Request, error) {
	if len(args) < minArgs {
		return Request{}, ErrUsage
	}

	last := len(args) - 1
	req := Request{Title: args[last]}
	for i := 0; i < last; i += 2 {
		req.Runs = append(req.Runs, model.Run{Path: args[i], Label: args[i+1]})
	}

	if len(args)%2 == 0 {
		slog.Warn("odd number of file/label arguments, reusing the title as the last label",
			"file", args[last-1], "label", args[last])
	}
	return req, nil
}

// Run aggregates every run in order. The first failure aborts the request and
// later files are not opened.
func Run(req Request, opts aggregator.Options) ([]model.Series, error) {
	series := make([]model.Series, 0, len(req.Runs))
	for _, run := range req.Runs {
		s, err := aggregator.AggregateFile(run, opts)
		if err != nil {
			return nil, err
		}
		slog.Debug("aggregated run",
			"path", run.Path, "label", run.Label, "records", s.Records, "buckets", s.Len())
		series = append(series, s)
	}
	return series, nil
}

// Plot adds every series to fig
func Plot(fig Figure, series []model.Series) error {
	for _, s := range series {
		if err := fig.AddSeries(s); err != nil {
			return err
		}
	}
	return nil
}
