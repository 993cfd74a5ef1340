package models

import (
	"strings"
	"time"
)

// Catalog column names. ColumnRawDay is derived and never displayed.
const (
	ColumnID         = "Id"
	ColumnTitle      = "Title"
	ColumnInstructor = "Instructor"
	ColumnClassroom  = "Classroom"
	ColumnTime       = "Time"
	ColumnRawDay     = "raw_day"
	ColumnDay        = "Day"
)

// RequiredColumns must be present in every catalog source.
var RequiredColumns = []string{ColumnTitle, ColumnInstructor, ColumnID, ColumnClassroom, ColumnTime}

// RawTable is a catalog as read from its source, index column removed.
type RawTable struct {
	Header []string
	Index  []string
	Rows   [][]string
}

// Course is one catalog row. RawDay and Day are derived from Time.
type Course struct {
	Index      string            `json:"index"`
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	Instructor string            `json:"instructor"`
	Classroom  string            `json:"classroom"`
	Time       string            `json:"time"`
	RawDay     []string          `json:"raw_day"`
	Day        string            `json:"day"`
	Extra      map[string]string `json:"extra,omitempty"`
}

// Value returns the display value of a named column.
func (c Course) Value(column string) string {
	switch column {
	case ColumnID:
		return c.ID
	case ColumnTitle:
		return c.Title
	case ColumnInstructor:
		return c.Instructor
	case ColumnClassroom:
		return c.Classroom
	case ColumnTime:
		return c.Time
	case ColumnDay:
		return c.Day
	case ColumnRawDay:
		return strings.Join(c.RawDay, ",")
	default:
		return c.Extra[column]
	}
}

// Table is an immutable, normalized catalog. Columns lists the displayable
// columns in source order with Day appended.
type Table struct {
	Columns  []string  `json:"columns"`
	Courses  []Course  `json:"courses"`
	Source   string    `json:"source"`
	LoadedAt time.Time `json:"loaded_at"`
}

// Len reports the number of courses.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Courses)
}

// HasColumn reports whether column is displayable.
func (t *Table) HasColumn(column string) bool {
	if t == nil {
		return false
	}
	for _, c := range t.Columns {
		if c == column {
			return true
		}
	}
	return false
}
