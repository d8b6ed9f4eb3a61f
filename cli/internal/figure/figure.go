// Package figure renders throughput series as a line chart.
package figure

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pkg/browser"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/zhaobenny/tputplot/internal/model"
)

// Formats lists the image formats the figure can be written as
var Formats = []string{"png", "svg", "pdf", "eps", "jpg", "tif"}

// Meta describes the chart decorations
type Meta struct {
	Title  string
	XLabel string
	YLabel string
	Grid   bool
}

// Figure is a chart built up one series at a time and rendered once
type Figure struct {
	plot   *plot.Plot
	colors []color.Color
	series int
}

// New creates an empty figure
func New(meta Meta) (*Figure, error) {
	palette, err := brewer.GetPalette(brewer.TypeQualitative, "Set1", 9)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = meta.Title
	p.X.Label.Text = meta.XLabel
	p.Y.Label.Text = meta.YLabel
	p.Legend.Top = true
	p.Legend.Padding = 1 * vg.Millimeter
	if meta.Grid {
		p.Add(plotter.NewGrid())
	}

	return &Figure{plot: p, colors: palette.Colors()}, nil
}

// AddSeries adds s as one labeled line
func (f *Figure) AddSeries(s model.Series) error {
	pts := make(plotter.XYs, s.Len())
	for i := range pts {
		pts[i].X = float64(s.UpdateCounts[i])
		pts[i].Y = float64(s.Throughputs[i])
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("series %q: %w", s.Label, err)
	}
	line.Color = f.colors[f.series%len(f.colors)]
	line.Width = vg.Points(1)

	// An empty run still gets a legend entry
	if len(pts) > 0 {
		f.plot.Add(line)
	}
	f.plot.Legend.Add(s.Label, line)
	f.series++
	return nil
}

// Len returns the number of series added so far
func (f *Figure) Len() int {
	return f.series
}

// WriteTo renders the figure in the given format. Sizes are in inches.
func (f *Figure) WriteTo(w io.Writer, format string, width, height float64) error {
	wt, err := f.plot.WriterTo(vg.Length(width)*vg.Inch, vg.Length(height)*vg.Inch, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// Save renders the figure to path, picking the format from its extension
func (f *Figure) Save(path string, width, height float64) error {
	format := FormatOf(path)
	if !ValidFormat(format) {
		return fmt.Errorf("unsupported image format %q", format)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := f.WriteTo(file, format, width, height); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// FormatOf returns the lower-cased extension of path without the dot
func FormatOf(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}

// ValidFormat reports whether format is one of Formats
func ValidFormat(format string) bool {
	return slices.Contains(Formats, format)
}

// Show opens a rendered figure in the desktop's default viewer
func Show(path string) error {
	return browser.OpenFile(path)
}
