// Package model defines shared data structures.
package model

// Summary holds descriptive statistics for one sample snapshot.
type Summary struct {
	Mean   float64
	Median float64
	Mode   float64
	Range  float64
	StdDev float64
}

// ChartPoint is one sample element positioned for plotting.
type ChartPoint struct {
	Index int
	Value float64
}

// HistogramBin is a half-open interval with its frequency count.
type HistogramBin struct {
	BinStart  float64
	BinEnd    float64
	Frequency int
}

// AxisDomain is the vertical range of a chart.
type AxisDomain struct {
	Low  float64
	High float64
}

// AxisConfig describes how a chart axis is labelled.
type AxisConfig struct {
	Name         string
	NameRotation int
	TickRotation int
	ShowGrid     bool
	TickCount    int
}

// DefaultXAxis returns the default index axis.
func DefaultXAxis() AxisConfig {
	return AxisConfig{Name: "Index", NameRotation: 0, TickRotation: 0, ShowGrid: true, TickCount: 5}
}

// DefaultYAxis returns the default value axis.
func DefaultYAxis() AxisConfig {
	return AxisConfig{Name: "Value", NameRotation: -90, TickRotation: 0, ShowGrid: true, TickCount: 5}
}

// ChartKind selects the chart rendering.
type ChartKind int

const (
	ChartBar ChartKind = iota
	ChartLine
	ChartScatter
	ChartHistogram
)

// ChartKinds lists every chart in tab order.
var ChartKinds = []ChartKind{ChartBar, ChartLine, ChartScatter, ChartHistogram}

// String returns the chart's short name.
func (k ChartKind) String() string {
	switch k {
	case ChartBar:
		return "bar"
	case ChartLine:
		return "line"
	case ChartScatter:
		return "scatter"
	case ChartHistogram:
		return "histogram"
	default:
		return "unknown"
	}
}

// Title returns the chart's tab label.
func (k ChartKind) Title() string {
	switch k {
	case ChartBar:
		return "Bar Chart"
	case ChartLine:
		return "Line Chart"
	case ChartScatter:
		return "Scatter Plot"
	case ChartHistogram:
		return "Histogram"
	default:
		return "Unknown"
	}
}

// ParseChartKind parses a chart name as produced by String.
func ParseChartKind(name string) (ChartKind, bool) {
	for _, k := range ChartKinds {
		if k.String() == name {
			return k, true
		}
	}
	return ChartBar, false
}

// Config defines resolved view settings.
type Config struct {
	Zoom     int
	Theme    string
	Decimals int
	Chart    ChartKind
	XAxis    AxisConfig
	YAxis    AxisConfig
}
