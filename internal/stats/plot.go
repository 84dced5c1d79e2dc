package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/verte-zerg/numstat/internal/model"
)

// PlotOptions controls text chart layout.
type PlotOptions struct {
	Title      string
	XAxis      model.AxisConfig
	YAxis      model.AxisConfig
	Width      int
	Height     int
	Theme      string
	ForceColor bool
}

type xTick struct {
	col   int
	label string
}

const (
	defaultPlotHeight   = 12
	minPlotWidth        = 10
	axisLabelWidth      = 10
	axisSeparator       = " │ "
	axisCorner          = " └"
	colorReset          = "\x1b[0m"
	gridColor           = "\x1b[90m"
	terminalWidthBackup = 80
	defaultTickCount    = 5
	barGap              = 1
)

var themeColors = map[string]string{
	"dark":  "\x1b[36m",
	"light": "\x1b[34m",
}

// canvas is a braille grid: every cell holds 2x4 dots.
type canvas struct {
	width  int
	height int
	data   [][]uint8
	grid   [][]uint8
	lo     float64
	hi     float64
}

func newCanvas(width, height int, domain model.AxisDomain) *canvas {
	lo, hi := normalizeDomain(domain)
	return &canvas{
		width:  width,
		height: height,
		data:   makeCells(height, width),
		grid:   makeCells(height, width),
		lo:     lo,
		hi:     hi,
	}
}

func (c *canvas) pxWidth() int  { return c.width * 2 }
func (c *canvas) pxHeight() int { return c.height * 4 }

func (c *canvas) row(v float64) int {
	return valueToRow(v, c.lo, c.hi, c.pxHeight())
}

func (c *canvas) baseline() float64 {
	return math.Max(c.lo, math.Min(0, c.hi))
}

// vbar fills pixel columns x0..x1 between the baseline and v.
func (c *canvas) vbar(x0, x1 int, v float64) {
	top := c.row(v)
	bottom := c.row(c.baseline())
	if top > bottom {
		top, bottom = bottom, top
	}
	for x := x0; x <= x1; x++ {
		for y := top; y <= bottom; y++ {
			setBrailleDot(c.data, x, y)
		}
	}
}

func (c *canvas) drawGrid(xAxis, yAxis model.AxisConfig, xCols []int) {
	if yAxis.ShowGrid {
		for _, py := range tickRows(c.pxHeight(), tickCount(yAxis)) {
			for x := 0; x < c.pxWidth(); x += 4 {
				setBrailleDot(c.grid, x, py)
			}
		}
	}
	if xAxis.ShowGrid {
		for _, col := range xCols {
			for y := 0; y < c.pxHeight(); y += 4 {
				setBrailleDot(c.grid, col*2, y)
			}
		}
	}
}

// PlotPoints renders points as a bar, line or scatter chart scaled to domain.
func PlotPoints(w io.Writer, points []model.ChartPoint, kind model.ChartKind, domain model.AxisDomain, opts PlotOptions) error {
	width, height := resolveSize(opts)
	c := newCanvas(width, height, domain)
	n := len(points)

	switch kind {
	case model.ChartLine:
		prevX, prevY := -1, -1
		for i, p := range points {
			px, py := pointX(i, n, c.pxWidth()), c.row(p.Value)
			if prevX >= 0 {
				drawLine(prevX, prevY, px, py, func(x, y int) {
					setBrailleDot(c.data, x, y)
				})
			} else {
				setBrailleDot(c.data, px, py)
			}
			prevX, prevY = px, py
		}
	case model.ChartScatter:
		for i, p := range points {
			setBrailleDot(c.data, pointX(i, n, c.pxWidth()), c.row(p.Value))
		}
	default:
		for i, p := range points {
			x0, x1 := barSpan(i, n, c.pxWidth())
			c.vbar(x0, x1, p.Value)
		}
	}

	ticks := pointTicks(points, kind, c.pxWidth(), tickCount(opts.XAxis))
	c.drawGrid(opts.XAxis, opts.YAxis, tickCols(ticks))
	return renderCanvas(w, c, ticks, opts)
}

// RenderChart projects values for kind, scales them by zoom and plots the result.
func RenderChart(w io.Writer, values []float64, kind model.ChartKind, zoomPercent float64, opts PlotOptions) error {
	if kind == model.ChartHistogram {
		bins := Bin(values)
		opts.XAxis, opts.YAxis = HistogramAxes(opts.XAxis, opts.YAxis)
		return PlotHistogram(w, bins, BinsDomain(bins, zoomPercent), opts)
	}
	points := ToPoints(values)
	return PlotPoints(w, points, kind, PointsDomain(points, zoomPercent), opts)
}

// HistogramAxes renames untouched default axes for a histogram, where x holds
// values and y holds frequencies.
func HistogramAxes(xAxis, yAxis model.AxisConfig) (model.AxisConfig, model.AxisConfig) {
	if xAxis.Name == model.DefaultXAxis().Name {
		xAxis.Name = "Value"
	}
	if yAxis.Name == model.DefaultYAxis().Name {
		yAxis.Name = "Frequency"
	}
	return xAxis, yAxis
}

// PlotHistogram renders bins as adjacent bars scaled to domain.
func PlotHistogram(w io.Writer, bins []model.HistogramBin, domain model.AxisDomain, opts PlotOptions) error {
	width, height := resolveSize(opts)
	c := newCanvas(width, height, domain)
	for i, b := range bins {
		x0, x1 := barSpan(i, len(bins), c.pxWidth())
		c.vbar(x0, x1, float64(b.Frequency))
	}
	ticks := binTicks(bins, width, tickCount(opts.XAxis))
	c.drawGrid(opts.XAxis, opts.YAxis, tickCols(ticks))
	return renderCanvas(w, c, ticks, opts)
}

func renderCanvas(w io.Writer, c *canvas, ticks []xTick, opts PlotOptions) error {
	useColor := shouldUseColor(w, opts.ForceColor)
	color := themeColors[opts.Theme]
	if color == "" {
		color = themeColors["dark"]
	}
	labels := makeAxisLabels(c.height, c.lo, c.hi, tickCount(opts.YAxis))

	if opts.Title != "" {
		if _, err := fmt.Fprintln(w, opts.Title); err != nil {
			return err
		}
	}
	yName := opts.YAxis.Name
	if yName == "" {
		yName = "y"
	}
	if _, err := fmt.Fprintf(w, "%s: %s..%s\n", yName, formatTick(c.lo), formatTick(c.hi)); err != nil {
		return err
	}
	for y := 0; y < c.height; y++ {
		var row strings.Builder
		row.WriteString(fmt.Sprintf("%*s%s", axisLabelWidth, labels[y], axisSeparator))
		for x := 0; x < c.width; x++ {
			mask := c.data[y][x]
			switch {
			case mask != 0:
				writeCell(&row, brailleFromMask(mask), color, useColor)
			case c.grid[y][x] != 0:
				writeCell(&row, brailleFromMask(c.grid[y][x]), gridColor, useColor)
			default:
				row.WriteRune(brailleFromMask(0))
			}
		}
		if _, err := fmt.Fprintln(w, row.String()); err != nil {
			return err
		}
	}
	pad := strings.Repeat(" ", axisLabelWidth)
	if _, err := fmt.Fprintln(w, pad+axisCorner+strings.Repeat("─", c.width+1)); err != nil {
		return err
	}
	tickPad := strings.Repeat(" ", axisLabelWidth+len([]rune(axisSeparator)))
	if _, err := fmt.Fprintln(w, tickPad+placeLabels(ticks, c.width)); err != nil {
		return err
	}
	if opts.XAxis.Name != "" {
		if _, err := fmt.Fprintln(w, tickPad+centerLabel(opts.XAxis.Name, c.width)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

func writeCell(b *strings.Builder, ch rune, color string, useColor bool) {
	if !useColor {
		b.WriteRune(ch)
		return
	}
	b.WriteString(color)
	b.WriteRune(ch)
	b.WriteString(colorReset)
}

func resolveSize(opts PlotOptions) (int, int) {
	width, height := opts.Width, opts.Height
	if height <= 0 {
		height = defaultPlotHeight
	}
	if width <= 0 {
		width = autoPlotWidth()
	}
	if width < minPlotWidth {
		width = minPlotWidth
	}
	return width, height
}

func normalizeDomain(domain model.AxisDomain) (float64, float64) {
	lo, hi := domain.Low, domain.High
	if math.IsNaN(lo) || math.IsInf(lo, 0) {
		lo = 0
	}
	if math.IsNaN(hi) || math.IsInf(hi, 0) {
		hi = lo + 1
	}
	if hi < lo {
		lo, hi = hi, lo
	}
	if math.Abs(hi-lo) < 1e-9 {
		hi = lo + 1
	}
	return lo, hi
}

func tickCount(axis model.AxisConfig) int {
	if axis.TickCount < 2 {
		return defaultTickCount
	}
	return axis.TickCount
}

func tickRows(pxHeight, ticks int) []int {
	rows := make([]int, 0, ticks)
	for k := 0; k < ticks; k++ {
		rows = append(rows, int(math.Round(float64(k)*float64(pxHeight-1)/float64(ticks-1))))
	}
	return rows
}

func tickCols(ticks []xTick) []int {
	cols := make([]int, len(ticks))
	for i, t := range ticks {
		cols[i] = t.col
	}
	return cols
}

func pointX(i, n, pxWidth int) int {
	if n <= 1 {
		return pxWidth / 2
	}
	return int(math.Round(float64(i) * float64(pxWidth-1) / float64(n-1)))
}

func barSpan(i, n, pxWidth int) (int, int) {
	start := i * pxWidth / n
	end := (i+1)*pxWidth/n - 1
	if end < start {
		end = start
	}
	if end-start >= 2 {
		end -= barGap
	}
	return start, end
}

func pointTicks(points []model.ChartPoint, kind model.ChartKind, pxWidth, ticks int) []xTick {
	n := len(points)
	if n == 0 {
		return nil
	}
	if ticks > n {
		ticks = n
	}
	out := make([]xTick, 0, ticks)
	seen := map[int]bool{}
	for k := 0; k < ticks; k++ {
		idx := 0
		if ticks > 1 {
			idx = int(math.Round(float64(k) * float64(n-1) / float64(ticks-1)))
		}
		if seen[idx] {
			continue
		}
		seen[idx] = true
		px := pointX(idx, n, pxWidth)
		if kind == model.ChartBar {
			x0, x1 := barSpan(idx, n, pxWidth)
			px = (x0 + x1) / 2
		}
		out = append(out, xTick{col: px / 2, label: fmt.Sprintf("%d", points[idx].Index)})
	}
	return out
}

func binTicks(bins []model.HistogramBin, width, ticks int) []xTick {
	if len(bins) == 0 {
		return nil
	}
	start := bins[0].BinStart
	end := bins[len(bins)-1].BinEnd
	out := make([]xTick, 0, ticks)
	for k := 0; k < ticks; k++ {
		frac := float64(k) / float64(ticks-1)
		out = append(out, xTick{
			col:   int(math.Round(frac * float64(width-1))),
			label: formatTick(start + frac*(end-start)),
		})
	}
	return out
}

// placeLabels lays out tick labels on one line, dropping labels that would overlap.
func placeLabels(ticks []xTick, width int) string {
	line := []rune(strings.Repeat(" ", width))
	next := 0
	for _, t := range ticks {
		label := []rune(t.label)
		start := t.col - len(label)/2
		if start+len(label) > width {
			start = width - len(label)
		}
		if start < 0 {
			start = 0
		}
		if start < next || start+len(label) > width {
			continue
		}
		copy(line[start:], label)
		next = start + len(label) + 1
	}
	return strings.TrimRight(string(line), " ")
}

func centerLabel(label string, width int) string {
	n := len([]rune(label))
	if n >= width {
		return label
	}
	return strings.Repeat(" ", (width-n)/2) + label
}

func formatTick(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	if len(s) > axisLabelWidth {
		s = fmt.Sprintf("%.3g", v)
	}
	return s
}

func autoPlotWidth() int {
	return PlotWidthFor(terminalWidth())
}

// PlotWidthFor computes a plot width that fits within the total available width.
func PlotWidthFor(totalWidth int) int {
	if totalWidth <= 0 {
		return minPlotWidth
	}
	axisWidth := axisLabelWidth + len([]rune(axisSeparator))
	plotWidth := totalWidth - axisWidth
	if plotWidth < minPlotWidth {
		plotWidth = minPlotWidth
	}
	return plotWidth
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func makeAxisLabels(height int, lo, hi float64, ticks int) []string {
	labels := make([]string, height)
	if height <= 0 {
		return labels
	}
	for k, py := range tickRows(height*4, ticks) {
		frac := float64(k) / float64(ticks-1)
		labels[py/4] = formatTick(hi - frac*(hi-lo))
	}
	return labels
}

func makeCells(height, width int) [][]uint8 {
	cells := make([][]uint8, height)
	for y := 0; y < height; y++ {
		cells[y] = make([]uint8, width)
	}
	return cells
}

func valueToRow(v, minVal, maxVal float64, height int) int {
	if height <= 1 {
		return 0
	}
	pos := (v - minVal) / (maxVal - minVal)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return int(math.Round((1 - pos) * float64(height-1)))
}

func drawLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := int(math.Abs(float64(x1 - x0)))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -int(math.Abs(float64(y1 - y0)))
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			if x0 == x1 {
				break
			}
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			if y0 == y1 {
				break
			}
			err += dx
			y0 += sy
		}
	}
}

func setBrailleDot(cells [][]uint8, x, y int) {
	if y < 0 || x < 0 {
		return
	}
	cellY := y / 4
	cellX := x / 2
	if cellY >= len(cells) || cellX >= len(cells[cellY]) {
		return
	}
	cells[cellY][cellX] |= brailleDotMask(x%2, y%4)
}

func brailleDotMask(x, y int) uint8 {
	switch {
	case x == 0 && y == 0:
		return 0x01
	case x == 0 && y == 1:
		return 0x02
	case x == 0 && y == 2:
		return 0x04
	case x == 0 && y == 3:
		return 0x40
	case x == 1 && y == 0:
		return 0x08
	case x == 1 && y == 1:
		return 0x10
	case x == 1 && y == 2:
		return 0x20
	case x == 1 && y == 3:
		return 0x80
	default:
		return 0
	}
}

func brailleFromMask(mask uint8) rune {
	return rune(0x2800 + int(mask))
}
