package models

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DisplayRow is one row of the derived display table. Position is the row's
// index in the working table it was sorted from, which the reconciler uses
// to restore the original order when the sorted order is not persisted.
type DisplayRow struct {
	Position int    `json:"position"`
	Cells    Record `json:"cells"`
}

// SortRecords derives the display table: a stable two-key sort of the
// working table rows. The input is never mutated. With no keys configured
// the input order is returned unchanged.
//
// Per-column semantics: the timestamp column compares chronologically and
// the value column numerically; cells that fail to parse sort as a null
// minimum, before every parsable cell. All other columns compare as text.
func SortRecords(schema Schema, rows []Record, spec SortSpec) []DisplayRow {
	display := make([]DisplayRow, len(rows))
	for i, row := range rows {
		display[i] = DisplayRow{Position: i, Cells: row.Clone()}
	}

	primary := spec.PrimaryKey
	if !schema.Contains(primary) {
		primary = ""
	}

	secondary := spec.SecondaryKey
	if !schema.Contains(secondary) || secondary == primary {
		secondary = ""
	}

	if primary == "" && secondary == "" {
		return display
	}

	sort.SliceStable(display, func(i, j int) bool {
		a, b := display[i].Cells, display[j].Cells

		if primary != "" {
			if cmp := compareCells(primary, a.Cell(schema, primary), b.Cell(schema, primary), spec.PrimaryAscending); cmp != 0 {
				return cmp < 0
			}
		}

		if secondary != "" {
			if cmp := compareCells(secondary, a.Cell(schema, secondary), b.Cell(schema, secondary), spec.SecondaryAscending); cmp != 0 {
				return cmp < 0
			}
		}

		return false
	})

	return display
}

func compareCells(column, a, b string, ascending bool) int {
	cmp := compareAscending(column, a, b)
	if !ascending {
		cmp = -cmp
	}

	return cmp
}

func compareAscending(column, a, b string) int {
	switch column {
	case TimestampColumn:
		return compareTimestamps(a, b)
	case ValueColumn:
		return compareNumbers(a, b)
	default:
		return strings.Compare(a, b)
	}
}

func compareTimestamps(a, b string) int {
	ta, errA := time.Parse(TimestampLayout, a)
	tb, errB := time.Parse(TimestampLayout, b)

	if errA != nil || errB != nil {
		return compareNullFirst(errA == nil, errB == nil)
	}

	switch {
	case ta.Before(tb):
		return -1
	case ta.After(tb):
		return 1
	default:
		return 0
	}
}

func compareNumbers(a, b string) int {
	da, errA := decimal.NewFromString(strings.TrimSpace(a))
	db, errB := decimal.NewFromString(strings.TrimSpace(b))

	if errA != nil || errB != nil {
		return compareNullFirst(errA == nil, errB == nil)
	}

	return da.Cmp(db)
}

// compareNullFirst orders unparsable cells before parsable ones. Two
// unparsable cells compare equal so stability keeps their input order.
func compareNullFirst(aValid, bValid bool) int {
	switch {
	case aValid == bValid:
		return 0
	case bValid:
		return -1
	default:
		return 1
	}
}
