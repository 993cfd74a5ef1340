package service

import (
	"strings"
	"time"

	"github.com/noah-isme/course-viewer/internal/models"
	"github.com/noah-isme/course-viewer/pkg/cjk"
)

// BuildTable maps a raw catalog onto courses and normalizes them. Columns
// other than the required ones are kept as extras in source order.
func BuildTable(raw *models.RawTable, source string) *models.Table {
	if raw == nil {
		return &models.Table{Columns: []string{}, Courses: []models.Course{}, Source: source}
	}

	position := make(map[string]int, len(raw.Header))
	columns := make([]string, 0, len(raw.Header)+1)
	for i, h := range raw.Header {
		if h == models.ColumnRawDay || h == models.ColumnDay {
			continue
		}
		if _, dup := position[h]; dup {
			continue
		}
		position[h] = i
		columns = append(columns, h)
	}
	columns = append(columns, models.ColumnDay)

	cell := func(row []string, column string) string {
		if i, ok := position[column]; ok && i < len(row) {
			return row[i]
		}
		return ""
	}

	courses := make([]models.Course, 0, len(raw.Rows))
	for r, row := range raw.Rows {
		course := models.Course{
			ID:         cell(row, models.ColumnID),
			Title:      cell(row, models.ColumnTitle),
			Instructor: cell(row, models.ColumnInstructor),
			Classroom:  cell(row, models.ColumnClassroom),
			Time:       cell(row, models.ColumnTime),
		}
		if r < len(raw.Index) {
			course.Index = raw.Index[r]
		}
		for _, col := range columns {
			if isCoreColumn(col) {
				continue
			}
			if course.Extra == nil {
				course.Extra = make(map[string]string)
			}
			course.Extra[col] = cell(row, col)
		}
		courses = append(courses, course)
	}

	return Normalize(&models.Table{Columns: columns, Courses: courses, Source: source, LoadedAt: time.Now().UTC()})
}

// Normalize returns a copy of t with trimmed text fields and RawDay/Day
// recomputed from Time. It is idempotent.
func Normalize(t *models.Table) *models.Table {
	if t == nil {
		return nil
	}
	out := &models.Table{
		Columns:  append([]string(nil), t.Columns...),
		Courses:  make([]models.Course, len(t.Courses)),
		Source:   t.Source,
		LoadedAt: t.LoadedAt,
	}
	for i, c := range t.Courses {
		out.Courses[i] = NormalizeCourse(c)
	}
	return out
}

// NormalizeCourse applies, in order: trim Time and Classroom, extract RawDay
// from Time, join Day, trim Title.
func NormalizeCourse(c models.Course) models.Course {
	c.Time = strings.TrimSpace(c.Time)
	c.Classroom = strings.TrimSpace(c.Classroom)
	c.RawDay = cjk.Runs(c.Time)
	c.Day = strings.Join(c.RawDay, ", ")
	c.Title = strings.TrimSpace(c.Title)
	if c.Extra != nil {
		extra := make(map[string]string, len(c.Extra))
		for k, v := range c.Extra {
			extra[k] = v
		}
		c.Extra = extra
	}
	return c
}

func isCoreColumn(column string) bool {
	switch column {
	case models.ColumnID, models.ColumnTitle, models.ColumnInstructor,
		models.ColumnClassroom, models.ColumnTime, models.ColumnDay, models.ColumnRawDay:
		return true
	}
	return false
}
