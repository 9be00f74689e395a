package models

// SortSpec configures the display ordering of the working table. It is
// replaced wholesale when the user applies new sort settings, never mutated
// field by field.
type SortSpec struct {
	PrimaryKey                string `json:"primaryKey" schema:"key1"`
	PrimaryAscending          bool   `json:"primaryAscending" schema:"asc1"`
	SecondaryKey              string `json:"secondaryKey" schema:"key2"`
	SecondaryAscending        bool   `json:"secondaryAscending" schema:"asc2"`
	PersistDisplayOrderOnSave bool   `json:"persistDisplayOrderOnSave" schema:"persist"`
}

// DefaultSortSpec shows newest records first.
func DefaultSortSpec() SortSpec {
	return SortSpec{
		PrimaryKey:                TimestampColumn,
		PrimaryAscending:          false,
		SecondaryAscending:        true,
		PersistDisplayOrderOnSave: true,
	}
}

// ClearedSortSpec keeps the working table's own order.
func ClearedSortSpec() SortSpec {
	return SortSpec{
		PrimaryAscending:          true,
		SecondaryAscending:        true,
		PersistDisplayOrderOnSave: true,
	}
}

func (s SortSpec) HasKeys() bool {
	return s.PrimaryKey != "" || s.SecondaryKey != ""
}
