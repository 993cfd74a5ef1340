// Package tableview wraps the bubbles table component so a filtered,
// projected row set can be shown as an interactive, sortable table inside
// any bubbletea program.
package tableview

import (
	"sort"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	defaultHeight   = 15
	defaultMaxWidth = 32
	minColumnWidth  = 4
)

// KeyMap holds the sorting bindings layered on top of the table's own.
type KeyMap struct {
	CycleSort   key.Binding
	ReverseSort key.Binding
}

// DefaultKeyMap binds s to cycle the sort column and r to reverse it.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		CycleSort:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort column")),
		ReverseSort: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reverse sort")),
	}
}

// Model is an embeddable sortable table.
type Model struct {
	KeyMap KeyMap

	table    table.Model
	columns  []string
	rows     [][]string
	sortCol  int
	desc     bool
	maxWidth int
}

// New constructs an empty, focused table.
func New() Model {
	t := table.New(table.WithFocused(true), table.WithHeight(defaultHeight))
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	t.SetStyles(styles)
	return Model{KeyMap: DefaultKeyMap(), table: t, sortCol: -1, maxWidth: defaultMaxWidth}
}

// SetData replaces the displayed columns and rows. Rows are shown in the
// given order until a sort is requested; any active sort is cleared when
// the column set changes.
func (m *Model) SetData(columns []string, rows [][]string) {
	if !equalStrings(m.columns, columns) {
		m.sortCol = -1
		m.desc = false
	}
	m.columns = append([]string(nil), columns...)
	m.rows = make([][]string, len(rows))
	for i, row := range rows {
		fitted := make([]string, len(columns))
		copy(fitted, row)
		m.rows[i] = fitted
	}
	m.sync()
}

// Len reports the number of rows.
func (m Model) Len() int {
	return len(m.rows)
}

// Columns returns the displayed column names.
func (m Model) Columns() []string {
	return append([]string(nil), m.columns...)
}

// Rows returns the rows in display order.
func (m Model) Rows() [][]string {
	return m.sorted()
}

// Sort reports the active sort column and direction; ok is false when unsorted.
func (m Model) Sort() (column string, descending bool, ok bool) {
	if m.sortCol < 0 || m.sortCol >= len(m.columns) {
		return "", false, false
	}
	return m.columns[m.sortCol], m.desc, true
}

// SelectedRow returns the row under the cursor.
func (m Model) SelectedRow() []string {
	return m.table.SelectedRow()
}

// SetHeight sets the visible row count.
func (m *Model) SetHeight(h int) {
	m.table.SetHeight(h)
}

// SetMaxColumnWidth caps each column's width in cells.
func (m *Model) SetMaxColumnWidth(w int) {
	if w < minColumnWidth {
		w = minColumnWidth
	}
	m.maxWidth = w
	m.sync()
}

// Focus gives the table keyboard focus.
func (m *Model) Focus() { m.table.Focus() }

// Blur removes keyboard focus.
func (m *Model) Blur() { m.table.Blur() }

// Focused reports whether the table has focus.
func (m Model) Focused() bool { return m.table.Focused() }

// Update handles sort keys and forwards everything else to the table.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && m.table.Focused() {
		switch {
		case key.Matches(km, m.KeyMap.CycleSort):
			m.cycleSort()
			return m, nil
		case key.Matches(km, m.KeyMap.ReverseSort):
			if m.sortCol >= 0 {
				m.desc = !m.desc
				m.sync()
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the table.
func (m Model) View() string {
	return m.table.View()
}

func (m *Model) cycleSort() {
	if len(m.columns) == 0 {
		return
	}
	m.sortCol++
	if m.sortCol >= len(m.columns) {
		m.sortCol = -1
	}
	m.desc = false
	m.sync()
}

func (m Model) sorted() [][]string {
	out := make([][]string, len(m.rows))
	copy(out, m.rows)
	if m.sortCol < 0 || m.sortCol >= len(m.columns) {
		return out
	}
	col, desc := m.sortCol, m.desc
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return less(out[j][col], out[i][col])
		}
		return less(out[i][col], out[j][col])
	})
	return out
}

func (m *Model) sync() {
	rows := m.sorted()
	widths := make([]int, len(m.columns))
	for i, c := range m.columns {
		widths[i] = lipgloss.Width(c) + 2
	}
	for _, row := range rows {
		for i, v := range row {
			if w := lipgloss.Width(v); w > widths[i] {
				widths[i] = w
			}
		}
	}

	cols := make([]table.Column, len(m.columns))
	for i, c := range m.columns {
		title := c
		if i == m.sortCol {
			if m.desc {
				title += " ▼"
			} else {
				title += " ▲"
			}
		}
		w := widths[i]
		if w > m.maxWidth {
			w = m.maxWidth
		}
		if w < minColumnWidth {
			w = minColumnWidth
		}
		cols[i] = table.Column{Title: title, Width: w}
	}

	tableRows := make([]table.Row, len(rows))
	for i, row := range rows {
		tableRows[i] = table.Row(row)
	}

	// Rows must be cleared before the column count shrinks.
	m.table.SetRows(nil)
	m.table.SetColumns(cols)
	m.table.SetRows(tableRows)
	if m.table.Cursor() >= len(tableRows) {
		m.table.SetCursor(0)
	}
}

// less orders numerically when both values are numbers.
func less(a, b string) bool {
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		return fa < fb
	}
	return a < b
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
