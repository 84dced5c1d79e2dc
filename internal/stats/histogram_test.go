package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/numstat/internal/model"
)

func TestBinEmpty(t *testing.T) {
	bins := Bin(nil)
	require.NotNil(t, bins)
	assert.Empty(t, bins)
}

func TestBinSingleValue(t *testing.T) {
	bins := Bin([]float64{5})
	assert.Equal(t, []model.HistogramBin{{BinStart: 4.5, BinEnd: 5.5, Frequency: 1}}, bins)
}

func TestBinConstantSample(t *testing.T) {
	bins := Bin([]float64{1, 1, 1, 1})
	assert.Equal(t, []model.HistogramBin{{BinStart: 0.5, BinEnd: 1.5, Frequency: 4}}, bins)
}

func TestBinMaxGoesToLastBin(t *testing.T) {
	bins := Bin([]float64{1, 2, 3, 4})
	require.Len(t, bins, 2)
	assert.Equal(t, 1.0, bins[0].BinStart)
	assert.Equal(t, 2.5, bins[0].BinEnd)
	assert.Equal(t, 4.0, bins[1].BinEnd)
	assert.Equal(t, 2, bins[0].Frequency)
	assert.Equal(t, 2, bins[1].Frequency)
}

func TestBinKeepsEmptyBins(t *testing.T) {
	bins := Bin([]float64{0, 0, 0, 10})
	require.Len(t, bins, 2)
	assert.Equal(t, 3, bins[0].Frequency)
	assert.Equal(t, 1, bins[1].Frequency)

	bins = Bin([]float64{0, 0, 0, 0, 0, 9, 9, 9, 9})
	require.Len(t, bins, 3)
	assert.Equal(t, []int{5, 0, 4}, frequencies(bins))
}

func TestBinCountCapped(t *testing.T) {
	assert.Equal(t, 0, BinCount(0))
	assert.Equal(t, 1, BinCount(1))
	assert.Equal(t, 3, BinCount(5))
	assert.Equal(t, 20, BinCount(400))
	assert.Equal(t, MaxBins, BinCount(10000))

	sample := make([]float64, 1000)
	for i := range sample {
		sample[i] = float64(i) * 0.37
	}
	assert.Len(t, Bin(sample), MaxBins)
}

func TestBinProperties(t *testing.T) {
	samples := [][]float64{
		{2, 4, 4, 4, 5, 5, 7, 9},
		{0.1, 0.2, 0.3, 0.7, 0.9, 1.1, 1.3},
		{-5, 3, -2.5, 8, 8, 8, 1e-3},
		{1, 2},
	}
	for _, sample := range samples {
		bins := Bin(sample)
		total := 0
		for i, b := range bins {
			assert.GreaterOrEqual(t, b.Frequency, 0)
			total += b.Frequency
			if i+1 < len(bins) {
				assert.Equal(t, b.BinEnd, bins[i+1].BinStart)
			}
		}
		assert.Equal(t, len(sample), total, "sample %v", sample)
		assert.Equal(t, bins, Bin(sample))
	}
}

func frequencies(bins []model.HistogramBin) []int {
	out := make([]int, len(bins))
	for i, b := range bins {
		out[i] = b.Frequency
	}
	return out
}
