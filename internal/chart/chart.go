// Package chart exports chart projections as image files.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/verte-zerg/numstat/internal/model"
	"github.com/verte-zerg/numstat/internal/stats"
)

// ErrNoValues is returned when there is nothing to draw.
var ErrNoValues = errors.New("no values to plot")

const (
	imageWidth  = 8 * vg.Inch
	imageHeight = 5 * vg.Inch
)

var (
	lightFill = color.RGBA{R: 0x25, G: 0x63, B: 0xeb, A: 0xff}
	darkFill  = color.RGBA{R: 0x22, G: 0xd3, B: 0xee, A: 0xff}
	darkBack  = color.RGBA{R: 0x1e, G: 0x1e, B: 0x1e, A: 0xff}
)

// Options describes one exported chart.
type Options struct {
	Kind  model.ChartKind
	Zoom  int
	Theme string
	XAxis model.AxisConfig
	YAxis model.AxisConfig
}

// Build assembles a plot for values using the same projections as the text charts.
func Build(values []float64, opts Options) (*plot.Plot, error) {
	if len(values) == 0 {
		return nil, ErrNoValues
	}
	p := plot.New()
	p.Title.Text = opts.Kind.Title()
	fill := lightFill
	if opts.Theme == "dark" {
		fill = darkFill
		applyDarkTheme(p)
	}

	var domain model.AxisDomain
	xAxis, yAxis := opts.XAxis, opts.YAxis
	switch opts.Kind {
	case model.ChartHistogram:
		bins := stats.Bin(values)
		domain = stats.BinsDomain(bins, float64(opts.Zoom))
		p.Add(histogramPlotter(bins, fill))
		xAxis, yAxis = stats.HistogramAxes(xAxis, yAxis)
	default:
		points := stats.ToPoints(values)
		domain = stats.PointsDomain(points, float64(opts.Zoom))
		if err := addPoints(p, points, opts.Kind, fill); err != nil {
			return nil, err
		}
	}

	if yAxis.ShowGrid || xAxis.ShowGrid {
		grid := plotter.NewGrid()
		if !xAxis.ShowGrid {
			grid.Vertical.Color = nil
		}
		if !yAxis.ShowGrid {
			grid.Horizontal.Color = nil
		}
		p.Add(grid)
	}
	applyAxis(&p.X, xAxis)
	applyAxis(&p.Y, yAxis)
	p.Y.Min, p.Y.Max = orderedDomain(domain)
	return p, nil
}

// SavePNG renders values and writes the image to path. The format follows
// the file extension.
func SavePNG(path string, values []float64, opts Options) error {
	p, err := Build(values, opts)
	if err != nil {
		return err
	}
	if err := p.Save(imageWidth, imageHeight, path); err != nil {
		return fmt.Errorf("failed to save chart: %w", err)
	}
	return nil
}

func addPoints(p *plot.Plot, points []model.ChartPoint, kind model.ChartKind, fill color.Color) error {
	xys := make(plotter.XYs, len(points))
	vals := make(plotter.Values, len(points))
	for i, pt := range points {
		xys[i].X = float64(pt.Index)
		xys[i].Y = pt.Value
		vals[i] = pt.Value
	}
	switch kind {
	case model.ChartLine:
		line, err := plotter.NewLine(xys)
		if err != nil {
			return fmt.Errorf("failed to build line: %w", err)
		}
		line.Color = fill
		p.Add(line)
	case model.ChartScatter:
		scatter, err := plotter.NewScatter(xys)
		if err != nil {
			return fmt.Errorf("failed to build scatter: %w", err)
		}
		scatter.GlyphStyle.Color = fill
		p.Add(scatter)
	default:
		width := vg.Points(math.Max(1, 360/float64(len(points))))
		bars, err := plotter.NewBarChart(vals, width)
		if err != nil {
			return fmt.Errorf("failed to build bars: %w", err)
		}
		bars.Color = fill
		bars.LineStyle.Width = 0
		p.Add(bars)
	}
	return nil
}

func histogramPlotter(bins []model.HistogramBin, fill color.Color) *plotter.Histogram {
	out := make([]plotter.HistogramBin, len(bins))
	for i, b := range bins {
		out[i] = plotter.HistogramBin{Min: b.BinStart, Max: b.BinEnd, Weight: float64(b.Frequency)}
	}
	width := 0.0
	if len(bins) > 0 {
		width = bins[0].BinEnd - bins[0].BinStart
	}
	return &plotter.Histogram{
		Bins:      out,
		Width:     width,
		FillColor: fill,
		LineStyle: plotter.DefaultLineStyle,
	}
}

func applyAxis(axis *plot.Axis, cfg model.AxisConfig) {
	axis.Label.Text = cfg.Name
	axis.Label.TextStyle.Rotation = degrees(cfg.NameRotation)
	axis.Tick.Label.Rotation = degrees(cfg.TickRotation)
	if cfg.TickCount >= 2 {
		axis.Tick.Marker = countTicks(cfg.TickCount)
	}
}

func applyDarkTheme(p *plot.Plot) {
	p.BackgroundColor = darkBack
	p.Title.TextStyle.Color = color.White
	for _, axis := range []*plot.Axis{&p.X, &p.Y} {
		axis.Color = color.White
		axis.Label.TextStyle.Color = color.White
		axis.Tick.Color = color.White
		axis.Tick.Label.Color = color.White
	}
}

func orderedDomain(d model.AxisDomain) (float64, float64) {
	if d.High < d.Low {
		return d.High, d.Low
	}
	if d.High == d.Low {
		return d.Low, d.Low + 1
	}
	return d.Low, d.High
}

func degrees(deg int) float64 {
	return float64(deg) * math.Pi / 180
}

// countTicks places a fixed number of evenly spaced labelled ticks.
type countTicks int

// Ticks implements plot.Ticker.
func (n countTicks) Ticks(minVal, maxVal float64) []plot.Tick {
	count := int(n)
	ticks := make([]plot.Tick, 0, count)
	for k := 0; k < count; k++ {
		v := minVal + float64(k)*(maxVal-minVal)/float64(count-1)
		ticks = append(ticks, plot.Tick{Value: v, Label: strconv.FormatFloat(v, 'f', 2, 64)})
	}
	return ticks
}
