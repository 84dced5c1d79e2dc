// Package dataio imports and exports number lists as CSV or XLSX files.
package dataio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/verte-zerg/numstat/internal/sample"
)

// DefaultExportName is the file name used when none is given.
const DefaultExportName = "standard_deviation_data.csv"

// ReadCSV reads comma separated numbers. Newlines, semicolons and tabs also
// separate tokens. Empty tokens and tokens that are not finite numbers are
// skipped.
func ReadCSV(r io.Reader) ([]float64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	fields := strings.FieldsFunc(string(data), func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r' || r == ';' || r == '\t'
	})
	values := make([]float64, 0, len(fields))
	for _, field := range fields {
		v, err := sample.ParseValue(field)
		if err != nil {
			continue
		}
		values = append(values, v)
	}
	return values, nil
}

// WriteCSV writes values joined by commas.
func WriteCSV(w io.Writer, values []float64) error {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(parts, ",")); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

// Import loads numbers from path, choosing the format by extension.
func Import(path string) ([]float64, error) {
	if isXLSX(path) {
		return ReadXLSX(path, "")
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only import.
			_ = cerr
		}
	}()
	return ReadCSV(file)
}

// Export writes values to path, choosing the format by extension. The file is
// written to a temporary name first and renamed into place.
func Export(path string, values []float64) error {
	if path == "" {
		path = DefaultExportName
	}
	if isXLSX(path) {
		return WriteXLSX(path, values)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create export dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(dir, "export-*.csv")
	if err != nil {
		return fmt.Errorf("failed to create temp export: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()
	if err := WriteCSV(tmpFile, values); err != nil {
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close export: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

func isXLSX(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xlsx")
}
