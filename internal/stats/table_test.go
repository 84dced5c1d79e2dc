package stats

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/numstat/internal/model"
)

func TestFormatTableAlignsColumns(t *testing.T) {
	cols := []column{{title: "Bin"}, {title: "Start", right: true}, {title: "Frequency", right: true}}
	rows := [][]string{
		{"1", "-2.50", "12"},
		{"10", "100.00", "3"},
	}

	lines := formatTable(cols, rows, true)
	assert.Equal(t, []string{
		"Bin  Start Frequency",
		"--- ------ ---------",
		"1    -2.50        12",
		"10  100.00         3",
	}, lines)
}

func TestFormatTableWithoutHeader(t *testing.T) {
	lines := formatTable(summaryColumns, [][]string{{"Mean", "5.0"}, {"Standard Deviation", "12.25"}}, false)
	assert.Equal(t, []string{
		"Mean                 5.0",
		"Standard Deviation 12.25",
	}, lines)
	assert.Nil(t, formatTable(nil, [][]string{{"x"}}, true))
}

func TestRenderSummary(t *testing.T) {
	sample := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	var buf bytes.Buffer
	require.NoError(t, RenderSummary(&buf, sample, DefaultDecimals))
	out := buf.String()
	for _, want := range []string{"Count: 8", "Trend:  ---==*@", "5.0000", "4.5000", "7.0000", "2.1381", "Standard Deviation"} {
		assert.Contains(t, out, want)
	}
}

func TestRenderSummaryInsufficient(t *testing.T) {
	var buf bytes.Buffer
	err := RenderSummary(&buf, []float64{5}, DefaultDecimals)
	require.ErrorIs(t, err, ErrInsufficient)
	assert.Contains(t, buf.String(), "Please enter at least two numbers.")
	assert.NotContains(t, buf.String(), "Trend:")
}

func TestRenderHistogramTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderHistogramTable(&buf, []model.HistogramBin{{BinStart: 4.5, BinEnd: 5.5, Frequency: 1}}))
	assert.Equal(t, "Histogram\n"+
		"Bin Start  End Frequency\n"+
		"--- ----- ---- ---------\n"+
		"  1  4.50 5.50         1\n\n", buf.String())
}

func TestRenderHistogramTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderHistogramTable(&buf, nil))
	assert.Equal(t, "No values.\n", buf.String())
}

func TestSparkline(t *testing.T) {
	assert.Equal(t, " @", Sparkline([]float64{0, 9}))
	assert.Equal(t, "+++", Sparkline([]float64{3, 3, 3}))
	assert.Equal(t, "@ ", Sparkline([]float64{-1, -10}))
	assert.Empty(t, Sparkline(nil))
	assert.Equal(t, "Trend: +", TrendLine([]float64{42}))
}
