package output

import (
	"encoding/json"
	"io"

	"github.com/zhaobenny/tputplot/internal/model"
)

// JSONOutput represents the JSON output structure
type JSONOutput struct {
	Series []JSONSeries `json:"series"`
	Total  JSONTotal    `json:"total"`
}

// JSONSeries represents a single run in JSON format
type JSONSeries struct {
	Label        string  `json:"label"`
	Path         string  `json:"path"`
	Records      int64   `json:"records"`
	UpdateCounts []int64 `json:"update_counts"`
	Throughputs  []int64 `json:"throughputs"`
}

// JSONTotal sums the runs
type JSONTotal struct {
	Runs    int   `json:"runs"`
	Records int64 `json:"records"`
	Buckets int   `json:"buckets"`
}

// PrintJSON writes all series as indented JSON
func PrintJSON(w io.Writer, series []model.Series) error {
	output := JSONOutput{
		Series: make([]JSONSeries, len(series)),
		Total:  JSONTotal{Runs: len(series)},
	}

	for i, s := range series {
		// Empty arrays rather than null for runs without buckets
		updates, throughputs := s.UpdateCounts, s.Throughputs
		if updates == nil {
			updates, throughputs = []int64{}, []int64{}
		}

		output.Series[i] = JSONSeries{
			Label:        s.Label,
			Path:         s.Path,
			Records:      s.Records,
			UpdateCounts: updates,
			Throughputs:  throughputs,
		}
		output.Total.Records += s.Records
		output.Total.Buckets += s.Len()
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
