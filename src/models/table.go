package models

// WorkingTable is the in-session source of truth: an ordered record sequence
// mirroring the remote sheet. Mutated only by new-record insertion and edit
// reconciliation; every row always has exactly the schema's columns.
type WorkingTable struct {
	Schema Schema
	Rows   []Record
}

func NewWorkingTable(schema Schema) *WorkingTable {
	return &WorkingTable{
		Schema: schema,
		Rows:   make([]Record, 0),
	}
}

// NewWorkingTableFromRows builds a table from raw remote rows, normalizing
// each row to the schema.
func NewWorkingTableFromRows(schema Schema, rows [][]string) *WorkingTable {
	table := NewWorkingTable(schema)
	for _, row := range rows {
		table.Rows = append(table.Rows, schema.Normalize(row))
	}

	return table
}

// InsertFront adds a record at the head of the table. Newest records
// conventionally live at the top, matching the remote sheet's row 2 insert.
func (t *WorkingTable) InsertFront(rec Record) {
	rec = t.Schema.Normalize(rec)
	t.Rows = append([]Record{rec}, t.Rows...)
}

// Replace swaps the table contents wholesale, normalizing every row.
func (t *WorkingTable) Replace(rows []Record) {
	out := make([]Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, t.Schema.Normalize(row))
	}

	t.Rows = out
}

func (t *WorkingTable) Clone() *WorkingTable {
	out := NewWorkingTable(t.Schema)
	for _, row := range t.Rows {
		out.Rows = append(out.Rows, row.Clone())
	}

	return out
}

func (t *WorkingTable) Len() int {
	return len(t.Rows)
}

// ToRows renders header + data rows as sheet values for a wholesale
// overwrite of the remote store.
func (t *WorkingTable) ToRows() [][]interface{} {
	values := make([][]interface{}, 0, len(t.Rows)+1)

	header := make([]interface{}, len(t.Schema))
	for i, column := range t.Schema {
		header[i] = column
	}
	values = append(values, header)

	for _, row := range t.Rows {
		cells := make([]interface{}, len(t.Schema))
		for i := range t.Schema {
			cells[i] = row[i]
		}
		values = append(values, cells)
	}

	return values
}
