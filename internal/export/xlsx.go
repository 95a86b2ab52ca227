package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet the converted rows are written to
const SheetName = "Sheet1"

// ConvertCSVToXLSX copies every row of the CSV file into a spreadsheet, cell
// text unchanged, and returns the number of rows written (header included).
func ConvertCSVToXLSX(csvPath, xlsxPath string) (int, error) {
	in, err := os.Open(csvPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer in.Close()

	if err := ensureDir(xlsxPath); err != nil {
		return 0, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return 0, fmt.Errorf("failed to create sheet writer: %w", err)
	}

	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1

	rows := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return rows, fmt.Errorf("failed to read CSV row %d: %w", rows+1, err)
		}

		cells := make([]interface{}, len(record))
		for i, value := range record {
			cells[i] = value
		}

		cell, err := excelize.CoordinatesToCellName(1, rows+1)
		if err != nil {
			return rows, err
		}
		if err := sw.SetRow(cell, cells); err != nil {
			return rows, fmt.Errorf("failed to write spreadsheet row %d: %w", rows+1, err)
		}
		rows++
	}

	if err := sw.Flush(); err != nil {
		return rows, fmt.Errorf("failed to flush spreadsheet: %w", err)
	}

	if err := f.SaveAs(xlsxPath); err != nil {
		return rows, fmt.Errorf("failed to save spreadsheet: %w", err)
	}

	return rows, nil
}
