package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"

	"github.com/zhaobenny/tputplot/cli/internal/aggregator"
	"github.com/zhaobenny/tputplot/cli/internal/config"
	"github.com/zhaobenny/tputplot/cli/internal/figure"
	"github.com/zhaobenny/tputplot/cli/internal/orchestrator"
	"github.com/zhaobenny/tputplot/cli/internal/output"
	"github.com/zhaobenny/tputplot/internal/model"
	"github.com/zhaobenny/tputplot/internal/parser"
)

const (
	progName = "tputplot"
	version  = "0.1.0"
)

const (
	exitOK = iota
	exitError
	exitUsage
	exitParse
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    !isTerminal(w),
	}))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet(progName, pflag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		outPath       string
		format        string
		width         float64
		height        float64
		flushTrailing bool
		noOpen        bool
		ascii         bool
		summary       bool
		compact       bool
		jsonOut       bool
		exportPath    string
		configPath    string
		verbose       bool
		showVer       bool
	)

	fs.StringVarP(&outPath, "output", "o", "", "Write the chart to this file (format from extension)")
	fs.StringVar(&format, "format", "", "Chart format when no --output is given: "+strings.Join(figure.Formats, ", "))
	fs.Float64Var(&width, "width", 0, "Chart width in inches")
	fs.Float64Var(&height, "height", 0, "Chart height in inches")
	fs.BoolVar(&flushTrailing, "flush-trailing", false, "Also emit the bucket still open at end of file")
	fs.BoolVar(&noOpen, "no-open", false, "Do not open the chart in a viewer")
	fs.BoolVar(&ascii, "ascii", false, "Draw the chart in the terminal")
	fs.BoolVar(&summary, "summary", false, "Print per-run throughput statistics")
	fs.BoolVarP(&compact, "compact", "c", false, "Force compact summary table")
	fs.BoolVar(&jsonOut, "json", false, "Print the aggregated series as JSON")
	fs.StringVar(&exportPath, "export", "", "Export the series to a .json, .csv or .xlsx file")
	fs.StringVar(&configPath, "config", "", "Config file (default ~/.tputplot.yaml)")
	fs.BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
	fs.BoolVar(&showVer, "version", false, "Show version")

	fs.Usage = func() {
		fmt.Fprintf(stderr, `%s - plot throughput over time from benchmark CSV logs

Usage: %s [options] <file.csv> <label> [<file.csv> <label> ...] <plot-title>

Each input line is a comma-separated record; the second field is an integer
timestamp. Files ending in .gz, .zst or .xz are decompressed, "-" reads stdin.

Options:
`, progName, progName)
		fs.PrintDefaults()
		fmt.Fprintf(stderr, `
Examples:
  %[1]s naive.csv Naive delta.csv Delta "Triangle query"
  %[1]s -o chart.svg --no-open run.csv.gz Run "Throughput"
  %[1]s --ascii --summary run.csv Run "Throughput"
`, progName)
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	if showVer {
		fmt.Fprintf(stdout, "%s version %s\n", progName, version)
		return exitOK
	}

	slog.SetDefault(newLogger(stderr, verbose))

	req, err := orchestrator.ParseArgs(fs.Args())
	if errors.Is(err, orchestrator.ErrUsage) {
		fmt.Fprintf(stdout, "%s list(<file-name.csv>, <legend-name>) <plot-title>\n", progName)
		return exitOK
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return exitError
	}
	if fs.Changed("format") {
		cfg.Format = format
	}
	if fs.Changed("width") {
		cfg.Width = width
	}
	if fs.Changed("height") {
		cfg.Height = height
	}
	if flushTrailing {
		cfg.FlushTrailing = true
	}
	if noOpen {
		cfg.Open = false
	}

	if outPath != "" {
		cfg.Format = figure.FormatOf(outPath)
	}
	if !figure.ValidFormat(cfg.Format) {
		fmt.Fprintf(stderr, "Error: Unsupported chart format %q. Use one of: %s.\n",
			cfg.Format, strings.Join(figure.Formats, ", "))
		return exitUsage
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		fmt.Fprintf(stderr, "Error: Chart width and height must be positive.\n")
		return exitUsage
	}

	series, err := orchestrator.Run(req, aggregator.Options{FlushTrailing: cfg.FlushTrailing})
	if err != nil {
		return reportError(stderr, err)
	}

	if jsonOut {
		if err := output.PrintJSON(stdout, series); err != nil {
			return reportError(stderr, err)
		}
	}

	if summary {
		summaries := make([]model.Summary, len(series))
		for i, s := range series {
			summaries[i] = aggregator.Summarize(s)
		}
		if err := output.PrintSummary(stdout, summaries, output.TableOptions{ForceCompact: compact}); err != nil {
			return reportError(stderr, err)
		}
	}

	if exportPath != "" {
		if err := output.Export(exportPath, series); err != nil {
			return reportError(stderr, err)
		}
		slog.Info("series exported", "path", exportPath)
	}

	if ascii {
		opts := output.ASCIIOptions{Title: req.Title, Color: isTerminal(stdout)}
		if err := output.PrintASCII(stdout, series, opts); err != nil {
			return reportError(stderr, err)
		}
	}

	// Text-only output unless a chart file was asked for explicitly
	if outPath == "" && (jsonOut || ascii) {
		return exitOK
	}

	path, err := render(req.Title, series, cfg, outPath)
	if err != nil {
		return reportError(stderr, err)
	}
	slog.Info("chart written", "path", path, "runs", len(series))

	if cfg.Open {
		if err := figure.Show(path); err != nil {
			slog.Warn("could not open viewer", "path", path, "err", err)
		}
	}

	return exitOK
}

// render draws every series onto one figure and saves it. Without an explicit
// path the chart goes to a fresh file in the configured output directory.
func render(title string, series []model.Series, cfg *config.Config, path string) (string, error) {
	fig, err := figure.New(figure.Meta{
		Title:  title,
		XLabel: cfg.XLabel,
		YLabel: cfg.YLabel,
		Grid:   true,
	})
	if err != nil {
		return "", err
	}

	if err := orchestrator.Plot(fig, series); err != nil {
		return "", err
	}

	if path == "" {
		dir := cfg.OutputDir
		if dir == "" {
			dir = os.TempDir()
		}
		f, err := os.CreateTemp(dir, progName+"-*."+cfg.Format)
		if err != nil {
			return "", err
		}
		path = f.Name()
		f.Close()
	}

	if err := fig.Save(path, cfg.Width, cfg.Height); err != nil {
		return "", fmt.Errorf("save %s: %w", path, err)
	}
	return path, nil
}

func reportError(stderr io.Writer, err error) int {
	var pe *parser.ParseError
	if errors.As(err, &pe) {
		fmt.Fprintf(stderr, "Error: parse %v\n", err)
		return exitParse
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return exitError
}
