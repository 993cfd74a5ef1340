package repository

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/course-viewer/pkg/errors"
)

const sampleCatalog = `,Id,Title,Instructor,Classroom,Time,Credits
0,CSIE1212,  Algorithms ,Hsu, 新101 ,"一7,8,9 ",3
1,MATH4006,Calculus,Lin,天103,"二3,4四2",4
`

func TestParseCourseCSV(t *testing.T) {
	table, err := ParseCourseCSV(strings.NewReader(sampleCatalog))
	require.NoError(t, err)
	assert.Equal(t, []string{"Id", "Title", "Instructor", "Classroom", "Time", "Credits"}, table.Header)
	assert.Equal(t, []string{"0", "1"}, table.Index)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "  Algorithms ", table.Rows[0][1])
}

func TestParseCourseCSVStripsBOMAndPadsShortRows(t *testing.T) {
	input := "\ufeffidx,Id,Title,Instructor,Classroom,Time\n0,A1,Intro,Wu\n"
	table, err := ParseCourseCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, "Id", table.Header[0])
	require.Len(t, table.Rows, 1)
	assert.Equal(t, []string{"A1", "Intro", "Wu", "", ""}, table.Rows[0])
}

func TestParseCourseCSVEmpty(t *testing.T) {
	_, err := ParseCourseCSV(strings.NewReader(""))
	assert.True(t, errors.Is(err, errEmptySource))
}

func TestParseCourseCSVMissingColumns(t *testing.T) {
	_, err := ParseCourseCSV(strings.NewReader(",Id,Title\n0,A,B\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrMalformedSource))
	assert.Contains(t, err.Error(), "Instructor")
}

func TestParseCourseCSVHeaderOnly(t *testing.T) {
	table, err := ParseCourseCSV(strings.NewReader(",Id,Title,Instructor,Classroom,Time\n"))
	require.NoError(t, err)
	assert.Empty(t, table.Rows)
}
