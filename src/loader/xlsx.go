package loader

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/iafilius/GUIPlotter/src/dataset"
)

// parseXLSX reads the first sheet. The first non-empty row is the header; blank
// header cells are named Column_<n>.
func parseXLSX(path string) ([]dataset.Column, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	var header []string
	var raw [][]string
	for i, row := range rows {
		if blankRow(row) {
			continue
		}
		if header == nil {
			header = make([]string, len(row))
			for j, h := range row {
				h = strings.TrimSpace(h)
				if h == "" {
					h = fmt.Sprintf("Column_%d", j+1)
				}
				header[j] = h
			}
			raw = make([][]string, len(header))
			continue
		}
		if len(row) > len(header) && !blankRow(row[len(header):]) {
			return nil, fmt.Errorf("row %d of sheet %q has %d cells, header has %d", i+1, sheet, len(row), len(header))
		}
		for j := range header {
			cell := ""
			if j < len(row) {
				cell = row[j]
			}
			raw[j] = append(raw[j], cell)
		}
	}
	if header == nil {
		return nil, nil
	}
	cols := make([]dataset.Column, len(header))
	for j, h := range header {
		cols[j] = dataset.ColumnFromStrings(h, raw[j])
	}
	return cols, nil
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
