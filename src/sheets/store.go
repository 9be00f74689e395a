package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/sheets/v4"
)

// RecordStore reads and writes one worksheet of one spreadsheet. All methods
// hit the remote API; callers own all in-memory state and decide what to do
// when a call fails.
type RecordStore struct {
	srv           *sheets.Service
	spreadsheetID string
	sheetName     string
	sheetID       int64
	sheetIDKnown  bool
}

func NewRecordStore(srv *sheets.Service, spreadsheetID, sheetName string) *RecordStore {
	return &RecordStore{
		srv:           srv,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}
}

// ReadAll fetches every data row below the header. Cells come back as
// strings; non-string cells are formatted with %v.
func (s *RecordStore) ReadAll(ctx context.Context) ([][]string, error) {
	sheetRange := fmt.Sprintf("%s!A:Z", s.sheetName)
	response, err := s.srv.Spreadsheets.Values.Get(s.spreadsheetID, sheetRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve data from sheet: %w", err)
	}

	if len(response.Values) == 0 {
		return nil, nil
	}

	rows := make([][]string, 0, len(response.Values)-1)
	for _, raw := range response.Values[1:] { // skip header row
		row := make([]string, 0, len(raw))
		for _, cell := range raw {
			if text, ok := cell.(string); ok {
				row = append(row, text)
			} else {
				row = append(row, fmt.Sprintf("%v", cell))
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// InsertRowAt pushes a blank row in at the given 1-based sheet position and
// fills it with the record's cells. Position 2 is directly below the header,
// so the remote sheet accumulates newest-first.
func (s *RecordStore) InsertRowAt(ctx context.Context, values []string, position int) error {
	sheetID, err := s.resolveSheetID(ctx)
	if err != nil {
		return err
	}

	insertRequest := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{
				InsertDimension: &sheets.InsertDimensionRequest{
					Range: &sheets.DimensionRange{
						SheetId:    sheetID,
						Dimension:  "ROWS",
						StartIndex: int64(position - 1),
						EndIndex:   int64(position),
					},
					InheritFromBefore: false,
				},
			},
		},
	}

	if _, err := s.srv.Spreadsheets.BatchUpdate(s.spreadsheetID, insertRequest).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to insert row at position %d: %w", position, err)
	}

	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}

	writeRange := fmt.Sprintf("%s!A%d", s.sheetName, position)
	valueRange := &sheets.ValueRange{Values: [][]interface{}{cells}}

	if _, err := s.srv.Spreadsheets.Values.Update(s.spreadsheetID, writeRange, valueRange).ValueInputOption("RAW").Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to write row at position %d: %w", position, err)
	}

	return nil
}

// ClearAndOverwrite replaces the whole sheet content with header + rows.
// Last writer wins; concurrent remote edits from other sessions are
// discarded by design.
func (s *RecordStore) ClearAndOverwrite(ctx context.Context, values [][]interface{}) error {
	clearRange := fmt.Sprintf("%s!A:Z", s.sheetName)
	if _, err := s.srv.Spreadsheets.Values.Clear(s.spreadsheetID, clearRange, &sheets.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to clear sheet: %w", err)
	}

	writeRange := fmt.Sprintf("%s!A1", s.sheetName)
	valueRange := &sheets.ValueRange{Values: values}

	if _, err := s.srv.Spreadsheets.Values.Update(s.spreadsheetID, writeRange, valueRange).ValueInputOption("RAW").Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to overwrite sheet: %w", err)
	}

	return nil
}

func (s *RecordStore) resolveSheetID(ctx context.Context) (int64, error) {
	if s.sheetIDKnown {
		return s.sheetID, nil
	}

	spreadsheet, err := s.srv.Spreadsheets.Get(s.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("failed to get spreadsheet %s: %w", s.spreadsheetID, err)
	}

	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == s.sheetName {
			s.sheetID = sheet.Properties.SheetId
			s.sheetIDKnown = true
			return s.sheetID, nil
		}
	}

	return 0, fmt.Errorf("sheet %s not found in spreadsheet %s", s.sheetName, s.spreadsheetID)
}
