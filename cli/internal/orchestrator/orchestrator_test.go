package orchestrator

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhaobenny/tputplot/cli/internal/aggregator"
	"github.com/zhaobenny/tputplot/internal/model"
	"github.com/zhaobenny/tputplot/internal/parser"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Request
	}{
		{
			name: "single pair",
			args: []string{"a.csv", "naive", "Throughput"},
			want: Request{Title: "Throughput", Runs: []model.Run{{Path: "a.csv", Label: "naive"}}},
		},
		{
			name: "two pairs",
			args: []string{"a.csv", "naive", "b.csv", "delta", "Compare"},
			want: Request{Title: "Compare", Runs: []model.Run{
				{Path: "a.csv", Label: "naive"},
				{Path: "b.csv", Label: "delta"},
			}},
		},
		{
			name: "dangling file takes the title as label",
			args: []string{"a.csv", "naive", "b.csv", "Compare"},
			want: Request{Title: "Compare", Runs: []model.Run{
				{Path: "a.csv", Label: "naive"},
				{Path: "b.csv", Label: "Compare"},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseArgs(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseArgsTooFew(t *testing.T) {
	for _, args := range [][]string{nil, {"a.csv"}, {"a.csv", "naive"}} {
		_, err := ParseArgs(args)
		assert.ErrorIs(t, err, ErrUsage)
	}
}

func writeRun(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	req := Request{
		Title: "Compare",
		Runs: []model.Run{
			{Path: writeRun(t, dir, "a.csv", "a,0\nb,1\nc,2\n"), Label: "naive"},
			{Path: writeRun(t, dir, "b.csv", "a,0\nb,0\nc,0\nd,1\n"), Label: "delta"},
		},
	}

	series, err := Run(req, aggregator.Options{})
	require.NoError(t, err)
	require.Len(t, series, 2)

	assert.Equal(t, "naive", series[0].Label)
	assert.Equal(t, []int64{2, 3}, series[0].UpdateCounts)
	assert.Equal(t, []int64{1, 0}, series[0].Throughputs)
	assert.Equal(t, "delta", series[1].Label)
	assert.Equal(t, []int64{4}, series[1].UpdateCounts)
	assert.Equal(t, []int64{3}, series[1].Throughputs)
}

func TestRunAbortsOnFirstFailure(t *testing.T) {
	dir := t.TempDir()
	req := Request{
		Title: "Compare",
		Runs: []model.Run{
			{Path: writeRun(t, dir, "a.csv", "a,0\nb,1\n"), Label: "ok"},
			{Path: writeRun(t, dir, "b.csv", "a,0\nbroken\n"), Label: "bad"},
			{Path: filepath.Join(dir, "never-opened.csv"), Label: "missing"},
		},
	}

	series, err := Run(req, aggregator.Options{})
	assert.Nil(t, series)

	var pe *parser.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, req.Runs[1].Path, pe.Path)
	assert.False(t, errors.Is(err, os.ErrNotExist))
}

func TestRunMissingFile(t *testing.T) {
	req := Request{Runs: []model.Run{{Path: filepath.Join(t.TempDir(), "nope.csv"), Label: "x"}}}

	_, err := Run(req, aggregator.Options{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

type recordingFigure struct {
	labels []string
	fail   string
}

func (f *recordingFigure) AddSeries(s model.Series) error {
	if s.Label == f.fail {
		return errors.New("boom")
	}
	f.labels = append(f.labels, s.Label)
	return nil
}

func TestPlot(t *testing.T) {
	series := []model.Series{{Label: "a"}, {Label: "b"}, {Label: "c"}}

	fig := &recordingFigure{}
	require.NoError(t, Plot(fig, series))
	assert.Equal(t, []string{"a", "b", "c"}, fig.labels)

	failing := &recordingFigure{fail: "b"}
	assert.Error(t, Plot(failing, series))
	assert.Equal(t, []string{"a"}, failing.labels)
}
