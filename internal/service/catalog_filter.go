package service

import (
	"regexp"
	"strings"

	"github.com/noah-isme/course-viewer/internal/models"
)

// Filter returns the rows of t visible under state, projected to the
// requested columns in source order. It never mutates t.
//
// A course matches when the query matches its Title, Instructor or Id and,
// if any day is selected, its meeting days satisfy the day mode. A course
// with no meeting days is vacuously a subset of any selection.
func Filter(t *models.Table, state models.FilterState) *models.View {
	columns := ProjectColumns(t, state.Columns)
	view := &models.View{Columns: columns, Rows: [][]string{}, Total: t.Len()}
	if t == nil {
		return view
	}

	filtering := state.Query != "" || state.Days.Any()
	matchText := compileQuery(state.Query)
	matchDays := dayPredicate(state.Days, state.Mode)

	for _, course := range t.Courses {
		if filtering {
			if !(matchText(course.Title) || matchText(course.Instructor) || matchText(course.ID)) {
				continue
			}
			if !matchDays(course.RawDay) {
				continue
			}
		}
		row := make([]string, len(columns))
		for i, col := range columns {
			row[i] = course.Value(col)
		}
		view.Rows = append(view.Rows, row)
	}
	view.Count = len(view.Rows)
	return view
}

// ProjectColumns resolves a column request against the displayable columns.
// Unknown names, duplicates and raw_day are dropped; an empty request selects
// every displayable column.
func ProjectColumns(t *models.Table, requested []string) []string {
	if t == nil {
		return []string{}
	}
	if len(requested) == 0 {
		out := make([]string, 0, len(t.Columns))
		for _, c := range t.Columns {
			if c != models.ColumnRawDay {
				out = append(out, c)
			}
		}
		return out
	}

	out := make([]string, 0, len(requested))
	seen := make(map[string]struct{}, len(requested))
	for _, c := range requested {
		c = strings.TrimSpace(c)
		if c == models.ColumnRawDay || !t.HasColumn(c) {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// compileQuery treats the query as an unanchored, case-sensitive regular
// expression. Queries that do not compile are matched literally.
func compileQuery(query string) func(string) bool {
	if query == "" {
		return func(string) bool { return true }
	}
	re, err := regexp.Compile(query)
	if err != nil {
		return func(s string) bool { return strings.Contains(s, query) }
	}
	return re.MatchString
}

func dayPredicate(selection models.DaySelection, mode models.DayMode) func([]string) bool {
	if !selection.Any() {
		return func([]string) bool { return true }
	}
	selected := selection.Set()
	return func(rawDay []string) bool {
		distinct := make(map[string]struct{}, len(rawDay))
		for _, d := range rawDay {
			if _, ok := selected[d]; !ok {
				return false
			}
			distinct[d] = struct{}{}
		}
		if mode == models.DayModeAllMatched {
			return len(distinct) == len(selected)
		}
		return true
	}
}
