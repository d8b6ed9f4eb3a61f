package aggregator

import (
	"errors"
	"fmt"
	"io"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/zhaobenny/tputplot/internal/model"
	"github.com/zhaobenny/tputplot/internal/parser"
)

// Options for aggregation
type Options struct {
	// FlushTrailing emits the bucket still open at end of input.
	// Off by default: the last bucket of every run is dropped.
	FlushTrailing bool
}

// Aggregate folds timestamped records into a throughput series.
//
// Records are expected grouped by timestamp; the input is not sorted, so a
// timestamp that reappears after a different one opens a new bucket. The
// first bucket is implicitly open at time 0. A bucket is flushed when a record
// with a different timestamp arrives, and the flushed update count already
// includes that record. The record itself is not counted in the throughput of
// the bucket it opens.
func Aggregate(r io.Reader, opts Options) (model.Series, error) {
	var (
		series             model.Series
		currentTime        int64
		currentThroughput  int64
		currentUpdateCount int64
	)

	err := parser.Lines(r, func(lineNo int, line string) error {
		ts, err := parser.ParseTimestamp(line)
		if err != nil {
			return &parser.ParseError{Line: lineNo, Text: line, Err: err}
		}

		currentUpdateCount++
		if ts == currentTime {
			currentThroughput++
			return nil
		}

		series.Throughputs = append(series.Throughputs, currentThroughput)
		series.UpdateCounts = append(series.UpdateCounts, currentUpdateCount)
		currentThroughput = 0
		currentTime = ts
		return nil
	})
	if err != nil {
		return model.Series{}, err
	}

	if opts.FlushTrailing && currentThroughput > 0 {
		series.Throughputs = append(series.Throughputs, currentThroughput)
		series.UpdateCounts = append(series.UpdateCounts, currentUpdateCount)
	}

	series.Records = currentUpdateCount
	return series, nil
}

// AggregateFile opens run.Path and aggregates it
func AggregateFile(run model.Run, opts Options) (model.Series, error) {
	rc, err := parser.Open(run.Path)
	if err != nil {
		return model.Series{}, err
	}
	defer rc.Close()

	series, err := Aggregate(rc, opts)
	if err != nil {
		var pe *parser.ParseError
		if errors.As(err, &pe) {
			pe.Path = run.Path
			return model.Series{}, pe
		}
		return model.Series{}, fmt.Errorf("read %s: %w", run.Path, err)
	}

	series.Path = run.Path
	series.Label = run.Label
	return series, nil
}

// Summarize returns throughput statistics for a series
func Summarize(s model.Series) model.Summary {
	sum := model.Summary{
		Label:   s.Label,
		Records: s.Records,
		Buckets: s.Len(),
	}
	if s.Len() == 0 {
		return sum
	}

	values := make([]float64, len(s.Throughputs))
	for i, v := range s.Throughputs {
		values[i] = float64(v)
	}

	sum.PeakThroughput = int64(floats.Max(values))
	sum.MeanThroughput = stat.Mean(values, nil)
	if len(values) > 1 {
		sum.StdDev = stat.StdDev(values, nil)
	}
	sum.FinalCount = s.UpdateCounts[len(s.UpdateCounts)-1]
	return sum
}
