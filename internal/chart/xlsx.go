package chart

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	xlsxSeriesSheet = "revenue"
	xlsxAxisSheet   = "axis"
)

// BuildXLSX exports the series with the derived bar heights, plus the axis
// scale on a second sheet.
func BuildXLSX(v View) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSeriesSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(xlsxAxisSheet); err != nil {
		return nil, fmt.Errorf("create axis sheet: %w", err)
	}

	_ = f.SetCellValue(xlsxSeriesSheet, "A1", "Month")
	_ = f.SetCellValue(xlsxSeriesSheet, "B1", "Revenue (USD)")
	_ = f.SetCellValue(xlsxSeriesSheet, "C1", "Bar height (px)")
	for i, b := range v.Bars {
		row := i + 2
		_ = f.SetCellValue(xlsxSeriesSheet, fmt.Sprintf("A%d", row), b.Period)
		_ = f.SetCellValue(xlsxSeriesSheet, fmt.Sprintf("B%d", row), b.Amount.Dollars())
		_ = f.SetCellValue(xlsxSeriesSheet, fmt.Sprintf("C%d", row), b.Height)
	}

	_ = f.SetCellValue(xlsxAxisSheet, "A1", v.Title)
	_ = f.SetCellValue(xlsxAxisSheet, "A2", v.Caption)
	if v.Empty {
		_ = f.SetCellValue(xlsxAxisSheet, "A4", v.Notice)
	} else {
		_ = f.SetCellValue(xlsxAxisSheet, "A4", "Chart height (px)")
		_ = f.SetCellValue(xlsxAxisSheet, "B4", v.ChartHeight)
		_ = f.SetCellValue(xlsxAxisSheet, "A5", "Top")
		_ = f.SetCellValue(xlsxAxisSheet, "B5", FormatTick(v.Axis.Top))
		_ = f.SetCellValue(xlsxAxisSheet, "A6", "Step")
		_ = f.SetCellValue(xlsxAxisSheet, "B6", FormatTick(v.Axis.Step))
		_ = f.SetCellValue(xlsxAxisSheet, "A8", "Labels")
		for i, t := range v.Ticks {
			_ = f.SetCellValue(xlsxAxisSheet, fmt.Sprintf("A%d", i+9), t.Label)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
