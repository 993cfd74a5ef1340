package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-viewer/internal/models"
)

func TestBuildTableNormalizesCourses(t *testing.T) {
	table := sampleTable()

	require.Equal(t, 5, table.Len())
	assert.Equal(t, []string{"Title", "Instructor", "Id", "Classroom", "Time", "Credits", "Day"}, table.Columns)

	first := table.Courses[0]
	assert.Equal(t, "0", first.Index)
	assert.Equal(t, "Calculus", first.Title)
	assert.Equal(t, "R101", first.Classroom)
	assert.Equal(t, "一三 10:00-12:00", first.Time)
	assert.Equal(t, []string{"一三"}, first.RawDay)
	assert.Equal(t, "一三", first.Day)
	assert.Equal(t, "3", first.Extra["Credits"])
	assert.Equal(t, "test", table.Source)
}

func TestBuildTableEmptyTime(t *testing.T) {
	seminar := sampleTable().Courses[2]
	assert.Empty(t, seminar.RawDay)
	assert.Equal(t, "", seminar.Day)
}

func TestBuildTableSeparatedDays(t *testing.T) {
	chem := sampleTable().Courses[3]
	assert.Equal(t, []string{"一", "三", "五"}, chem.RawDay)
	assert.Equal(t, "一, 三, 五", chem.Day)
}

func TestBuildTableDropsSourceDerivedColumns(t *testing.T) {
	raw := &models.RawTable{
		Header: []string{"Title", "Instructor", "Id", "Classroom", "Time", "raw_day", "Day"},
		Rows:   [][]string{{"A", "B", "C", "D", "二", "stale", "stale"}},
	}
	table := BuildTable(raw, "test")
	assert.Equal(t, []string{"Title", "Instructor", "Id", "Classroom", "Time", "Day"}, table.Columns)
	assert.Equal(t, "二", table.Courses[0].Day)
	assert.NotContains(t, table.Courses[0].Extra, "Day")
}

func TestNormalizeIsIdempotent(t *testing.T) {
	once := sampleTable()
	twice := Normalize(once)
	assert.Equal(t, once.Courses, twice.Courses)
	assert.Equal(t, once.Columns, twice.Columns)
}

func TestNormalizeCourseOrder(t *testing.T) {
	c := NormalizeCourse(models.Course{Title: "  X  ", Time: "  一三 10:00-12:00 教室101  ", Classroom: " A "})
	assert.Equal(t, "X", c.Title)
	assert.Equal(t, "A", c.Classroom)
	assert.Equal(t, "一三 10:00-12:00 教室101", c.Time)
	assert.Equal(t, []string{"一三", "教室"}, c.RawDay)
	assert.Equal(t, "一三, 教室", c.Day)
}

func TestNormalizeDoesNotShareExtras(t *testing.T) {
	table := sampleTable()
	copied := Normalize(table)
	copied.Courses[0].Extra["Credits"] = "9"
	assert.Equal(t, "3", table.Courses[0].Extra["Credits"])
}
