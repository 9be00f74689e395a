package models

import (
	"time"
)

// TimestampLayout is the format records are stamped with at submission time.
const TimestampLayout = "2006-01-02 15:04"

const (
	TimestampColumn = "timestamp"
	CategoryColumn  = "category"
	ItemColumn      = "item"
	ValueColumn     = "value"
	UnitColumn      = "unit"
	NoteColumn      = "note"
)

// Schema is the ordered column list shared by every record in a session.
type Schema []string

func DefaultSchema() Schema {
	return Schema{TimestampColumn, CategoryColumn, ItemColumn, ValueColumn, UnitColumn, NoteColumn}
}

func (s Schema) Index(column string) int {
	for i, c := range s {
		if c == column {
			return i
		}
	}

	return -1
}

func (s Schema) Contains(column string) bool {
	return s.Index(column) >= 0
}

// Normalize pads a short row with empty cells and truncates a long one, so
// the result always has exactly one cell per schema column.
func (s Schema) Normalize(cells []string) Record {
	out := make(Record, len(s))
	for i := range s {
		if i < len(cells) {
			out[i] = cells[i]
		}
	}

	return out
}

// Record holds one row's cells in schema column order. Cells are plain text;
// the value column is parsed as a number only for sorting and summaries.
type Record []string

func (r Record) Cell(schema Schema, column string) string {
	idx := schema.Index(column)
	if idx < 0 || idx >= len(r) {
		return ""
	}

	return r[idx]
}

func (r Record) Clone() Record {
	out := make(Record, len(r))
	copy(out, r)
	return out
}

func NewRecord(schema Schema, category, item, value, unit, note string, submittedAt time.Time) Record {
	rec := make(Record, len(schema))
	set := func(column, cell string) {
		if idx := schema.Index(column); idx >= 0 {
			rec[idx] = cell
		}
	}

	set(TimestampColumn, submittedAt.Format(TimestampLayout))
	set(CategoryColumn, category)
	set(ItemColumn, item)
	set(ValueColumn, value)
	set(UnitColumn, unit)
	set(NoteColumn, note)

	return rec
}
