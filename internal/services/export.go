package services

import (
	"sort"
	"time"

	"github.com/xuri/excelize/v2"
)

// BuildWorkbook renders a row set into a single-sheet xlsx blob.
// Columns come from the rows' own keys, sorted so the sheet layout is
// stable regardless of map iteration order.
func BuildWorkbook(sheet string, rows []map[string]interface{}) ([]byte, error) {
	file := excelize.NewFile()
	defer func() { _ = file.Close() }()
	if err := file.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headers := columnUnion(rows)
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}
	for rowIdx, row := range rows {
		for colIdx, header := range headers {
			value, ok := row[header]
			if !ok || value == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			if err := file.SetCellValue(sheet, cell, exportCell(value)); err != nil {
				return nil, err
			}
		}
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func columnUnion(rows []map[string]interface{}) []string {
	seen := map[string]bool{}
	headers := []string{}
	for _, row := range rows {
		for key := range row {
			if !seen[key] {
				seen[key] = true
				headers = append(headers, key)
			}
		}
	}
	sort.Strings(headers)
	return headers
}

func exportCell(value interface{}) interface{} {
	switch v := value.(type) {
	case []byte:
		return string(v)
	case time.Time:
		return v.UTC().Format(time.RFC3339)
	default:
		return v
	}
}
