package stats

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeKnownSample(t *testing.T) {
	sample := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	s, err := Summarize(sample)
	require.NoError(t, err)

	assert.InDelta(t, 5.0, s.Mean, 1e-12)
	assert.InDelta(t, 4.5, s.Median, 1e-12)
	assert.Equal(t, 4.0, s.Mode)
	assert.InDelta(t, 7.0, s.Range, 1e-12)
	assert.InDelta(t, 2.1381, s.StdDev, 1e-4)
}

func TestSummarizeDoesNotMutateInput(t *testing.T) {
	sample := []float64{9, 1, 5, 3}
	_, err := Summarize(sample)
	require.NoError(t, err)
	assert.Equal(t, []float64{9, 1, 5, 3}, sample)
}

func TestSummarizeInsufficient(t *testing.T) {
	for _, sample := range [][]float64{nil, {}, {5}} {
		_, err := Summarize(sample)
		assert.True(t, errors.Is(err, ErrInsufficient), "sample %v", sample)
	}
}

func TestSummarizeOddMedian(t *testing.T) {
	s, err := Summarize([]float64{3, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, 2.0, s.Median)
}

func TestSummarizeConstantSample(t *testing.T) {
	s, err := Summarize([]float64{1, 1, 1, 1})
	require.NoError(t, err)
	assert.Equal(t, 0.0, s.StdDev)
	assert.Equal(t, 0.0, s.Range)
	assert.Equal(t, 1.0, s.Mode)
}

func TestSummarizeTwoElements(t *testing.T) {
	s, err := Summarize([]float64{1, 3})
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt2, s.StdDev, 1e-12)
	assert.Equal(t, 2.0, s.Median)
}

func TestModeTieBreak(t *testing.T) {
	tests := []struct {
		name   string
		sample []float64
		want   float64
	}{
		{name: "first element when all unique", sample: []float64{7, 3, 1}, want: 7},
		{name: "first to reach max count", sample: []float64{3, 1, 1, 3}, want: 1},
		{name: "later value overtakes", sample: []float64{2, 2, 5, 5, 5}, want: 5},
		{name: "single", sample: []float64{-4}, want: -4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Mode(tt.sample))
		})
	}
}

func TestSummaryProperties(t *testing.T) {
	samples := [][]float64{
		{1, 2},
		{-3, 10, 0.5, 0.5, 99},
		{4, 4, 4},
		{1e6, -1e6, 3.25, 7, 7, 2},
	}
	for _, sample := range samples {
		s, err := Summarize(sample)
		require.NoError(t, err)
		minVal, maxVal := sample[0], sample[0]
		allEqual := true
		for _, v := range sample {
			minVal = math.Min(minVal, v)
			maxVal = math.Max(maxVal, v)
			if v != sample[0] {
				allEqual = false
			}
		}
		assert.GreaterOrEqual(t, s.StdDev, 0.0)
		assert.Equal(t, allEqual, s.StdDev == 0)
		assert.GreaterOrEqual(t, s.Median, minVal)
		assert.LessOrEqual(t, s.Median, maxVal)
		assert.Contains(t, sample, s.Mode)
		assert.Equal(t, maxVal-minVal, s.Range)
	}
}
