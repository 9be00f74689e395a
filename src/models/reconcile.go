package models

import (
	"sort"
)

// EditedRow is one row as it left the editor. Ref is the index of the
// displayed row it was edited from, or -1 for a row the user added.
type EditedRow struct {
	Ref   int      `json:"ref"`
	Cells []string `json:"cells"`
}

// Reconcile merges the user-edited view of the display table back into a new
// working table row sequence. Rows may have been added, removed, reordered or
// field-modified relative to the displayed rows.
//
// The timestamp column is system-owned: for any edited row that references a
// displayed row, the displayed timestamp is carried over verbatim, discarding
// whatever the editor sent.
//
// With PersistDisplayOrderOnSave set, the output order is exactly the edited
// order. Otherwise rows that existed before editing are restored to their
// original relative working table order, and rows without a prior position
// are appended at the end in their edited relative order.
func Reconcile(schema Schema, displayed []DisplayRow, edited []EditedRow, spec SortSpec) []Record {
	type mergedRow struct {
		prior int
		cells Record
	}

	tsIdx := schema.Index(TimestampColumn)

	merged := make([]mergedRow, 0, len(edited))
	for _, row := range edited {
		cells := schema.Normalize(row.Cells)
		prior := -1

		if row.Ref >= 0 && row.Ref < len(displayed) {
			prior = displayed[row.Ref].Position
			if tsIdx >= 0 {
				cells[tsIdx] = displayed[row.Ref].Cells.Cell(schema, TimestampColumn)
			}
		}

		merged = append(merged, mergedRow{prior: prior, cells: cells})
	}

	if !spec.PersistDisplayOrderOnSave {
		sort.SliceStable(merged, func(i, j int) bool {
			a, b := merged[i].prior, merged[j].prior
			if a < 0 || b < 0 {
				// new rows sort after every row with a known position
				return b < 0 && a >= 0
			}

			return a < b
		})
	}

	out := make([]Record, 0, len(merged))
	for _, row := range merged {
		out = append(out, row.cells)
	}

	return out
}
