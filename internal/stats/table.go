package stats

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/numstat/internal/model"
)

// column is one table column: its header and alignment.
type column struct {
	title string
	right bool
}

var summaryColumns = []column{
	{title: "Statistic"},
	{title: "Value", right: true},
}

var histogramColumns = []column{
	{title: "Bin", right: true},
	{title: "Start", right: true},
	{title: "End", right: true},
	{title: "Frequency", right: true},
}

// histogramRows formats one row per bin in histogramColumns order.
func histogramRows(bins []model.HistogramBin) [][]string {
	rows := make([][]string, 0, len(bins))
	for i, b := range bins {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%.2f", b.BinStart),
			fmt.Sprintf("%.2f", b.BinEnd),
			fmt.Sprintf("%d", b.Frequency),
		})
	}
	return rows
}

// formatTable lays rows out under cols. With header set, the titles and a
// dashed rule lead the output and count towards the column widths.
func formatTable(cols []column, rows [][]string, header bool) []string {
	if len(cols) == 0 {
		return nil
	}
	widths := make([]int, len(cols))
	if header {
		for i, c := range cols {
			widths[i] = runewidth.StringWidth(c.title)
		}
	}
	for _, row := range rows {
		for i := range cols {
			if w := runewidth.StringWidth(cellAt(row, i)); w > widths[i] {
				widths[i] = w
			}
		}
	}

	lines := make([]string, 0, len(rows)+2)
	if header {
		titles := make([]string, len(cols))
		rule := make([]string, len(cols))
		for i, c := range cols {
			titles[i] = c.title
			rule[i] = strings.Repeat("-", widths[i])
		}
		lines = append(lines, formatRow(cols, titles, widths), formatRow(cols, rule, widths))
	}
	for _, row := range rows {
		lines = append(lines, formatRow(cols, row, widths))
	}
	return lines
}

func formatRow(cols []column, row []string, widths []int) string {
	cells := make([]string, len(cols))
	for i, c := range cols {
		cells[i] = padCell(cellAt(row, i), widths[i], c.right)
	}
	return strings.Join(cells, " ")
}

func cellAt(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func padCell(value string, width int, right bool) string {
	padding := width - runewidth.StringWidth(value)
	if padding <= 0 {
		return value
	}
	if right {
		return strings.Repeat(" ", padding) + value
	}
	return value + strings.Repeat(" ", padding)
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
