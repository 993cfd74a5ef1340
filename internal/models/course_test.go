package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDayMode(t *testing.T) {
	for raw, want := range map[string]DayMode{
		"":            DayModeSubset,
		"Subset":      DayModeSubset,
		"All Matched": DayModeAllMatched,
		"AllMatched":  DayModeAllMatched,
		"all_matched": DayModeAllMatched,
	} {
		got, err := ParseDayMode(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}
	_, err := ParseDayMode("superset")
	assert.Error(t, err)
}

func TestParseDaySelection(t *testing.T) {
	sel, err := ParseDaySelection([]string{"三", " 一 ", ""})
	require.NoError(t, err)
	assert.Equal(t, []string{"一", "三"}, sel.Glyphs())
	assert.True(t, sel.Any())
	assert.Len(t, sel.Set(), 2)

	_, err = ParseDaySelection([]string{"Mon"})
	assert.Error(t, err)

	var empty DaySelection
	assert.False(t, empty.Any())
	assert.Empty(t, empty.Glyphs())
}

func TestDaySelectionToggleReturnsCopy(t *testing.T) {
	var sel DaySelection
	next := sel.Toggle(6)
	assert.False(t, sel[6])
	assert.True(t, next[6])
	assert.Equal(t, next, next.Toggle(9))
}

func TestCourseValue(t *testing.T) {
	c := Course{ID: "CSIE1212", Title: "Algorithms", RawDay: []string{"一", "三"}, Day: "一, 三", Extra: map[string]string{"Credits": "3"}}
	assert.Equal(t, "CSIE1212", c.Value(ColumnID))
	assert.Equal(t, "一, 三", c.Value(ColumnDay))
	assert.Equal(t, "3", c.Value("Credits"))
	assert.Equal(t, "", c.Value("Missing"))
}
