package dataio

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/verte-zerg/numstat/internal/sample"
)

const xlsxSheet = "Sheet1"

// ReadXLSX reads every numeric cell of sheet in row order. An empty sheet
// name selects the first sheet.
func ReadXLSX(path, sheet string) ([]float64, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			// Best-effort close for read-only workbook.
			_ = cerr
		}
	}()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	var values []float64
	for _, row := range rows {
		for _, cell := range row {
			v, err := sample.ParseValue(cell)
			if err != nil {
				continue
			}
			values = append(values, v)
		}
	}
	return values, nil
}

// WriteXLSX writes one value per row in the first column of a new workbook.
func WriteXLSX(path string, values []float64) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if idx, err := f.GetSheetIndex(xlsxSheet); err != nil || idx == -1 {
		idx, err := f.NewSheet(xlsxSheet)
		if err != nil {
			return fmt.Errorf("failed to create sheet: %w", err)
		}
		f.SetActiveSheet(idx)
	}
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(xlsxSheet, cell, v); err != nil {
			return fmt.Errorf("failed to write cell %s: %w", cell, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
