package model

// Run is one input file and the legend label it is plotted under
type Run struct {
	Path  string
	Label string
}

// Series is the aggregated throughput of a single run.
// UpdateCounts and Throughputs are index-aligned and always the same length.
type Series struct {
	Label        string
	Path         string
	UpdateCounts []int64 // Cumulative record count at each bucket flush
	Throughputs  []int64 // Records counted inside the flushed bucket
	Records      int64   // Lines consumed from the input
}

// Len returns the number of emitted points
func (s Series) Len() int {
	return len(s.UpdateCounts)
}

// Summary holds per-series statistics shown by --summary
type Summary struct {
	Label          string
	Records        int64
	Buckets        int
	PeakThroughput int64
	MeanThroughput float64
	StdDev         float64
	FinalCount     int64
}
