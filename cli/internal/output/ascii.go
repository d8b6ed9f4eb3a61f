package output

import (
	"fmt"
	"io"

	"github.com/guptarohit/asciigraph"

	"github.com/zhaobenny/tputplot/internal/model"
)

// axisMargin leaves room for the y-axis labels next to the plot area
const axisMargin = 12

var seriesColors = []asciigraph.AnsiColor{
	asciigraph.Red,
	asciigraph.Blue,
	asciigraph.Green,
	asciigraph.Yellow,
	asciigraph.Magenta,
	asciigraph.Cyan,
}

// ASCIIOptions controls the terminal chart
type ASCIIOptions struct {
	Title  string
	Width  int // 0 uses the terminal width
	Height int
	Color  bool
}

// PrintASCII draws the throughput series in the terminal. The x axis is the
// bucket index, not the update count.
func PrintASCII(w io.Writer, series []model.Series, opts ASCIIOptions) error {
	var (
		data   [][]float64
		labels []string
		colors []asciigraph.AnsiColor
	)
	for _, s := range series {
		if s.Len() == 0 {
			continue
		}
		values := make([]float64, s.Len())
		for i, v := range s.Throughputs {
			values[i] = float64(v)
		}
		data = append(data, values)
		labels = append(labels, s.Label)
		colors = append(colors, seriesColors[len(colors)%len(seriesColors)])
	}

	if len(data) == 0 {
		_, err := fmt.Fprintln(w, "No buckets to plot.")
		return err
	}

	width := opts.Width
	if width <= 0 {
		width = TerminalWidth() - axisMargin
	}
	height := opts.Height
	if height <= 0 {
		height = 15
	}

	options := []asciigraph.Option{
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Caption(opts.Title),
		asciigraph.SeriesLegends(labels...),
	}
	if opts.Color {
		options = append(options, asciigraph.SeriesColors(colors...))
	}

	_, err := fmt.Fprintln(w, asciigraph.PlotMany(data, options...))
	return err
}
