// Package stats contains statistics calculations and reporting.
package stats

import (
	"errors"

	mstats "github.com/montanaflynn/stats"

	"github.com/verte-zerg/numstat/internal/model"
)

// MinSummaryLen is the smallest sample Summarize accepts.
const MinSummaryLen = 2

// ErrInsufficient is returned when a sample is too small to summarize.
var ErrInsufficient = errors.New("please enter at least two numbers")

// Summarize computes mean, median, mode, range and sample standard deviation.
// The input is not modified.
func Summarize(sample []float64) (model.Summary, error) {
	if len(sample) < MinSummaryLen {
		return model.Summary{}, ErrInsufficient
	}
	data := mstats.Float64Data(sample)

	mean, err := mstats.Mean(data)
	if err != nil {
		return model.Summary{}, err
	}
	median, err := mstats.Median(data)
	if err != nil {
		return model.Summary{}, err
	}
	minVal, err := mstats.Min(data)
	if err != nil {
		return model.Summary{}, err
	}
	maxVal, err := mstats.Max(data)
	if err != nil {
		return model.Summary{}, err
	}
	stdDev, err := mstats.StandardDeviationSample(data)
	if err != nil {
		return model.Summary{}, err
	}

	return model.Summary{
		Mean:   mean,
		Median: median,
		Mode:   Mode(sample),
		Range:  maxVal - minVal,
		StdDev: stdDev,
	}, nil
}

// Mode returns the most frequent value. Ties go to the value that first
// reached the winning count in a left-to-right scan. An empty sample yields 0.
func Mode(sample []float64) float64 {
	if len(sample) == 0 {
		return 0
	}
	counts := make(map[float64]int, len(sample))
	maxCount := 0
	mode := sample[0]
	for _, v := range sample {
		counts[v]++
		if counts[v] > maxCount {
			maxCount = counts[v]
			mode = v
		}
	}
	return mode
}
