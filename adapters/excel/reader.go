package excel

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// ReadWorkbook loads the summary and histogram back from an exported workbook
func ReadWorkbook(path string) (*WorkbookData, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()
	return readWorkbook(f)
}

// ReadWorkbookFrom loads an exported workbook from a stream
func ReadWorkbookFrom(r io.Reader) (*WorkbookData, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()
	return readWorkbook(f)
}

func readWorkbook(f *excelize.File) (*WorkbookData, error) {
	summaryRows, err := f.GetRows(SummarySheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read %s sheet: %w", SummarySheet, err)
	}
	data := &WorkbookData{Summary: make(map[string]string, len(summaryRows))}
	for _, row := range summaryRows {
		if len(row) < 2 {
			continue
		}
		data.Summary[row[0]] = row[1]
	}

	histRows, err := f.GetRows(HistogramSheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read %s sheet: %w", HistogramSheet, err)
	}
	if len(histRows) == 0 {
		return data, nil
	}
	for i, row := range histRows[1:] {
		if len(row) < 2 {
			return nil, fmt.Errorf("histogram row %d is incomplete", i+2)
		}
		freq, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, fmt.Errorf("histogram row %d: invalid frequency %q: %w", i+2, row[1], err)
		}
		hr := HistogramRow{Label: row[0], Frequency: freq}
		if len(row) > 2 && row[2] != "" {
			if hr.Expected, err = strconv.ParseFloat(row[2], 64); err != nil {
				return nil, fmt.Errorf("histogram row %d: invalid expected value %q: %w", i+2, row[2], err)
			}
		}
		data.Histogram = append(data.Histogram, hr)
	}
	return data, nil
}
