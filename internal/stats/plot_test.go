package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/numstat/internal/model"
)

func TestPlotPoints(t *testing.T) {
	points := ToPoints([]float64{1, 2, 3, 2, 1})
	for _, kind := range []model.ChartKind{model.ChartBar, model.ChartLine, model.ChartScatter} {
		var buf bytes.Buffer
		err := PlotPoints(&buf, points, kind, PointsDomain(points, 100), PlotOptions{
			Title:  "Test Plot",
			XAxis:  model.DefaultXAxis(),
			YAxis:  model.DefaultYAxis(),
			Width:  20,
			Height: 4,
		})
		require.NoError(t, err, "PlotPoints(%s)", kind)
		out := buf.String()
		assert.Contains(t, out, "Test Plot", "title in %s output", kind)
		assert.Contains(t, out, "Value: 0.00..6.00", "domain line in %s output", kind)
		assert.Contains(t, out, "Index", "x axis name in %s output", kind)
		lines := strings.Split(strings.TrimSpace(out), "\n")
		assert.GreaterOrEqual(t, len(lines), 1+1+4+1+1+1)
	}
}

func TestPlotHistogram(t *testing.T) {
	bins := Bin([]float64{1, 1, 2, 3, 3, 3, 4})
	var buf bytes.Buffer
	err := PlotHistogram(&buf, bins, BinsDomain(bins, 200), PlotOptions{
		XAxis:  model.AxisConfig{Name: "Value", TickCount: 3},
		YAxis:  model.AxisConfig{Name: "Frequency", TickCount: 3},
		Width:  30,
		Height: 6,
	})
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Frequency: 0.00..")
	assert.Contains(t, out, "1.00")
	assert.Contains(t, out, "4.00")
}

func TestPlotEmptyDoesNotFail(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PlotPoints(&buf, nil, model.ChartLine, PointsDomain(nil, 100), PlotOptions{Width: 10, Height: 2}))
	require.NoError(t, PlotHistogram(&buf, nil, BinsDomain(nil, 100), PlotOptions{Width: 10, Height: 2}))
}

func TestPlotWidthFor(t *testing.T) {
	axisWidth := axisLabelWidth + len([]rune(axisSeparator))
	assert.Equal(t, 80-axisWidth, PlotWidthFor(80))
	assert.Equal(t, minPlotWidth, PlotWidthFor(0))
}

func TestNormalizeDomain(t *testing.T) {
	lo, hi := normalizeDomain(model.AxisDomain{Low: 0, High: -4})
	assert.Equal(t, -4.0, lo)
	assert.Equal(t, 0.0, hi)

	lo, hi = normalizeDomain(model.AxisDomain{Low: 0, High: 0})
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 1.0, hi)
}

func TestValueToRowClamps(t *testing.T) {
	assert.Equal(t, 0, valueToRow(50, 0, 10, 8))
	assert.Equal(t, 7, valueToRow(-3, 0, 10, 8))
}

func TestHistogramAxes(t *testing.T) {
	x, y := HistogramAxes(model.DefaultXAxis(), model.DefaultYAxis())
	assert.Equal(t, "Value", x.Name)
	assert.Equal(t, "Frequency", y.Name)

	custom := model.DefaultXAxis()
	custom.Name = "Bucket"
	x, _ = HistogramAxes(custom, model.DefaultYAxis())
	assert.Equal(t, "Bucket", x.Name)
}

func TestRenderChartHistogramNames(t *testing.T) {
	var buf bytes.Buffer
	err := RenderChart(&buf, []float64{1, 1, 2}, model.ChartHistogram, 100, PlotOptions{
		Title:  "Histogram",
		XAxis:  model.DefaultXAxis(),
		YAxis:  model.DefaultYAxis(),
		Width:  30,
		Height: 4,
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Frequency: 0.00..4.00")
}
