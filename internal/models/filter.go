package models

import (
	"fmt"
	"strings"
	"time"
)

// Weekdays lists the weekday glyphs in selection order.
var Weekdays = [7]string{"一", "二", "三", "四", "五", "六", "日"}

// DayMode selects how a course's meeting days are compared to the selection.
type DayMode string

const (
	// DayModeSubset matches courses meeting only on selected days.
	DayModeSubset DayMode = "Subset"
	// DayModeAllMatched matches courses meeting on exactly the selected days.
	DayModeAllMatched DayMode = "AllMatched"
)

// ParseDayMode accepts the API and form spellings of a mode. Empty means Subset.
func ParseDayMode(raw string) (DayMode, error) {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(raw), " ", ""))
	switch normalized {
	case "", "subset":
		return DayModeSubset, nil
	case "allmatched", "all_matched", "exact":
		return DayModeAllMatched, nil
	default:
		return "", fmt.Errorf("unknown day mode %q", raw)
	}
}

// DaySelection is the seven-slot weekday toggle vector.
type DaySelection [7]bool

// ParseDaySelection builds a selection from weekday glyphs.
func ParseDaySelection(glyphs []string) (DaySelection, error) {
	var sel DaySelection
	for _, g := range glyphs {
		g = strings.TrimSpace(g)
		if g == "" {
			continue
		}
		idx := WeekdayIndex(g)
		if idx < 0 {
			return DaySelection{}, fmt.Errorf("unknown weekday %q", g)
		}
		sel[idx] = true
	}
	return sel, nil
}

// WeekdayIndex returns the slot of glyph or -1.
func WeekdayIndex(glyph string) int {
	for i, d := range Weekdays {
		if d == glyph {
			return i
		}
	}
	return -1
}

// Any reports whether at least one day is selected.
func (d DaySelection) Any() bool {
	for _, v := range d {
		if v {
			return true
		}
	}
	return false
}

// Toggle flips slot i.
func (d DaySelection) Toggle(i int) DaySelection {
	if i >= 0 && i < len(d) {
		d[i] = !d[i]
	}
	return d
}

// Glyphs returns the selected weekday glyphs in order.
func (d DaySelection) Glyphs() []string {
	out := make([]string, 0, len(d))
	for i, v := range d {
		if v {
			out = append(out, Weekdays[i])
		}
	}
	return out
}

// Set returns the selected glyphs as a set.
func (d DaySelection) Set() map[string]struct{} {
	set := make(map[string]struct{}, len(d))
	for _, g := range d.Glyphs() {
		set[g] = struct{}{}
	}
	return set
}

// FilterState is one visitor's query, column choice and committed days.
type FilterState struct {
	ID        string       `json:"id,omitempty"`
	Query     string       `json:"query"`
	Mode      DayMode      `json:"mode"`
	Columns   []string     `json:"columns,omitempty"`
	Days      DaySelection `json:"-"`
	CreatedAt time.Time    `json:"created_at,omitempty"`
	UpdatedAt time.Time    `json:"updated_at,omitempty"`
}

// SelectedDays exposes the committed day selection as glyphs.
func (s FilterState) SelectedDays() []string {
	return s.Days.Glyphs()
}

// View is the projected, filtered subset of a table handed to a renderer.
type View struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Count   int        `json:"count"`
	Total   int        `json:"total"`
}
