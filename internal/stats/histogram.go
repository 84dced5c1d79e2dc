package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/verte-zerg/numstat/internal/model"
)

// MaxBins caps the number of histogram bins.
const MaxBins = 20

// Bin partitions the sample into contiguous equal-width bins between its
// minimum and maximum. A sample whose values are all equal gets a single bin
// of width 1 centred on that value.
func Bin(sample []float64) []model.HistogramBin {
	if len(sample) == 0 {
		return []model.HistogramBin{}
	}
	minVal := floats.Min(sample)
	maxVal := floats.Max(sample)
	if minVal == maxVal {
		return []model.HistogramBin{{
			BinStart:  minVal - 0.5,
			BinEnd:    maxVal + 0.5,
			Frequency: len(sample),
		}}
	}

	count := BinCount(len(sample))
	width := (maxVal - minVal) / float64(count)
	bins := make([]model.HistogramBin, count)
	for i := range bins {
		bins[i].BinStart = minVal + float64(i)*width
		bins[i].BinEnd = minVal + float64(i+1)*width
	}
	for _, v := range sample {
		idx := count - 1
		if v != maxVal {
			idx = int(math.Floor((v - minVal) / width))
		}
		if idx < 0 || idx >= count {
			continue
		}
		bins[idx].Frequency++
	}
	return bins
}

// BinCount returns ceil(sqrt(n)) limited to MaxBins.
func BinCount(n int) int {
	if n <= 0 {
		return 0
	}
	count := int(math.Ceil(math.Sqrt(float64(n))))
	if count > MaxBins {
		count = MaxBins
	}
	return count
}
