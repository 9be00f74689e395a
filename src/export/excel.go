package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jiaming2012/value-logger/src/models"
)

// Download filename and MIME type are fixed constants.
const (
	ExcelFilename    = "value_log.xlsx"
	ExcelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

const sheetTitle = "Records"

// ToExcel serializes the table into a single-sheet xlsx workbook: header row
// first, then one row per record in schema column order. Missing cells render
// as empty strings. The encoder embeds no timestamps or random ids, so equal
// input yields byte-identical output.
func ToExcel(schema models.Schema, rows []models.Record) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetTitle); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	writeRow := func(rowNum int, cells []string) error {
		for i, cell := range cells {
			ref, err := excelize.CoordinatesToCellName(i+1, rowNum)
			if err != nil {
				return err
			}

			if err := f.SetCellStr(sheetTitle, ref, cell); err != nil {
				return err
			}
		}

		return nil
	}

	if err := writeRow(1, schema); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, row := range rows {
		if err := writeRow(i+2, schema.Normalize(row)); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}

	return buf.Bytes(), nil
}
