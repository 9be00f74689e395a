package export

import (
	"fmt"

	"github.com/gocarina/gocsv"

	"github.com/jiaming2012/value-logger/src/models"
)

const (
	CSVFilename    = "value_log.csv"
	CSVContentType = "text/csv"
)

type csvRecord struct {
	Timestamp string `csv:"timestamp"`
	Category  string `csv:"category"`
	Item      string `csv:"item"`
	Value     string `csv:"value"`
	Unit      string `csv:"unit"`
	Note      string `csv:"note"`
}

// ToCSV serializes the table as CSV with the schema header. The CSV shape is
// the fixed record schema; like the xlsx encoder, missing cells render as
// empty strings.
func ToCSV(schema models.Schema, rows []models.Record) ([]byte, error) {
	out := make([]csvRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, csvRecord{
			Timestamp: row.Cell(schema, models.TimestampColumn),
			Category:  row.Cell(schema, models.CategoryColumn),
			Item:      row.Cell(schema, models.ItemColumn),
			Value:     row.Cell(schema, models.ValueColumn),
			Unit:      row.Cell(schema, models.UnitColumn),
			Note:      row.Cell(schema, models.NoteColumn),
		})
	}

	data, err := gocsv.MarshalBytes(&out)
	if err != nil {
		return nil, fmt.Errorf("failed to encode csv: %w", err)
	}

	return data, nil
}
