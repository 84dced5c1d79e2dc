package stats

import (
	"math"

	"github.com/verte-zerg/numstat/internal/model"
)

// FullZoom is the zoom percentage at which a domain tightly bounds the data.
const FullZoom = 200.0

// ToPoints indexes each sample element by its position.
func ToPoints(sample []float64) []model.ChartPoint {
	points := make([]model.ChartPoint, len(sample))
	for i, v := range sample {
		points[i] = model.ChartPoint{Index: i, Value: v}
	}
	return points
}

// PointValue selects a point's value for YDomain.
func PointValue(p model.ChartPoint) float64 {
	return p.Value
}

// BinFrequency selects a bin's frequency for YDomain.
func BinFrequency(b model.HistogramBin) float64 {
	return float64(b.Frequency)
}

// YDomain returns [0, max(field) * 200/zoomPercent]. Empty items give [0, 1].
// zoomPercent must be positive; callers clamp it before calling.
func YDomain[T any](items []T, field func(T) float64, zoomPercent float64) model.AxisDomain {
	if len(items) == 0 {
		return model.AxisDomain{Low: 0, High: 1}
	}
	maxVal := math.Inf(-1)
	for _, item := range items {
		if v := field(item); v > maxVal {
			maxVal = v
		}
	}
	return model.AxisDomain{Low: 0, High: maxVal * (FullZoom / zoomPercent)}
}

// PointsDomain is YDomain over point values.
func PointsDomain(points []model.ChartPoint, zoomPercent float64) model.AxisDomain {
	return YDomain(points, PointValue, zoomPercent)
}

// BinsDomain is YDomain over bin frequencies.
func BinsDomain(bins []model.HistogramBin, zoomPercent float64) model.AxisDomain {
	return YDomain(bins, BinFrequency, zoomPercent)
}
