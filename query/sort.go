package query

import (
	"cmp"
	"strings"

	"github.com/acikkaynak/interpreter-search-go/interpreters"
)

// Sort is the store-level order of a search. Distance ordering cannot be
// expressed by the store; it falls back to creation time there and is
// applied in memory by the caller.
type Sort struct {
	Field interpreters.SortField
	Desc  bool
}

func NewSort(field interpreters.SortField, order interpreters.SortOrder) Sort {
	return Sort{Field: field, Desc: order == interpreters.Descending}
}

// Keys are the fields a store orders by, before the id tie-break.
func (s Sort) Keys() []Field {
	switch s.Field {
	case interpreters.SortByName:
		return []Field{FieldFirstName, FieldLastName}
	case interpreters.SortByCity:
		return []Field{FieldCity}
	case interpreters.SortByRating:
		return []Field{FieldRating}
	default:
		return []Field{FieldCreatedAt}
	}
}

// Columns returns ORDER BY terms. id is always the last, ascending term so
// that offset pagination is stable.
func (s Sort) Columns() []string {
	dir := " ASC"
	if s.Desc {
		dir = " DESC"
	}

	var columns []string
	for _, k := range s.Keys() {
		columns = append(columns, string(k)+dir)
	}
	return append(columns, string(FieldID)+" ASC")
}

// Compare orders two records the way Columns orders rows. Strings compare
// by byte value, not by database collation.
func (s Sort) Compare(a, b interpreters.Interpreter) int {
	for _, k := range s.Keys() {
		c := compareField(a, b, k)
		if s.Desc {
			c = -c
		}
		if c != 0 {
			return c
		}
	}
	return cmp.Compare(a.ID, b.ID)
}

func compareField(a, b interpreters.Interpreter, f Field) int {
	switch f {
	case FieldRating:
		return cmp.Compare(a.Rating, b.Rating)
	case FieldCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	default:
		return strings.Compare(stringField(a, f), stringField(b, f))
	}
}
