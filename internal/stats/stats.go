package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/verte-zerg/numstat/internal/model"
)

const sparkChars = " .:-=+*#%@"

// DefaultDecimals is the display precision for summary values.
const DefaultDecimals = 4

// Sparkline renders a single-line ASCII trend of the values in list order.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := floats.Min(values)
	maxVal := floats.Max(values)
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// TrendLine labels the sparkline of values for display under the count.
func TrendLine(values []float64) string {
	return "Trend: " + Sparkline(values)
}

// FormatValue renders v with the given number of decimals.
func FormatValue(v float64, decimals int) string {
	if decimals < 0 {
		decimals = DefaultDecimals
	}
	return fmt.Sprintf("%.*f", decimals, v)
}

// SummaryRows returns label/value pairs in display order.
func SummaryRows(s model.Summary, decimals int) [][]string {
	return [][]string{
		{"Mean", FormatValue(s.Mean, decimals)},
		{"Median", FormatValue(s.Median, decimals)},
		{"Mode", FormatValue(s.Mode, decimals)},
		{"Range", FormatValue(s.Range, decimals)},
		{"Standard Deviation", FormatValue(s.StdDev, decimals)},
	}
}

// RenderSummary prints the summary of sample, or the insufficient-data message.
func RenderSummary(w io.Writer, sample []float64, decimals int) error {
	summary, err := Summarize(sample)
	if err != nil {
		if _, werr := fmt.Fprintf(w, "%s.\n", capitalize(err.Error())); werr != nil {
			return werr
		}
		return err
	}
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Count: %d\n", len(sample)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, TrendLine(sample)); err != nil {
		return err
	}
	if err := writeLines(w, formatTable(summaryColumns, SummaryRows(summary, decimals), false)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

// RenderHistogramTable prints one row per bin.
func RenderHistogramTable(w io.Writer, bins []model.HistogramBin) error {
	if len(bins) == 0 {
		_, err := fmt.Fprintln(w, "No values.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Histogram"); err != nil {
		return err
	}
	if err := writeLines(w, formatTable(histogramColumns, histogramRows(bins), true)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
