// Package browser is the terminal front end: a search box, the weekday
// form and a sortable result table, all driven by the catalog service.
package browser

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/noah-isme/course-viewer/internal/models"
	"github.com/noah-isme/course-viewer/pkg/tableview"
)

const queryTimeout = 30 * time.Second

type catalogQuerier interface {
	Query(ctx context.Context, state models.FilterState) (*models.View, bool, error)
}

type focus int

const (
	focusSearch focus = iota
	focusTable
)

type viewMsg struct {
	seq  int
	view *models.View
	err  error
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	countStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

type keyMap struct {
	Quit       key.Binding
	SwitchPane key.Binding
	Submit     key.Binding
	ToggleMode key.Binding
}

var keys = keyMap{
	Quit:       key.NewBinding(key.WithKeys("ctrl+c", "esc", "q")),
	SwitchPane: key.NewBinding(key.WithKeys("tab", "shift+tab")),
	Submit:     key.NewBinding(key.WithKeys("enter")),
	ToggleMode: key.NewBinding(key.WithKeys("m")),
}

// tableRenderer hands filtered views to the table component.
type tableRenderer struct {
	table *tableview.Model
}

func (r tableRenderer) Render(view *models.View) error {
	r.table.SetData(view.Columns, view.Rows)
	return nil
}

// Model is the bubbletea model of the browser.
type Model struct {
	catalog catalogQuerier

	state       models.FilterState
	pendingDays models.DaySelection
	pendingMode models.DayMode

	search textinput.Model
	table  tableview.Model
	focus  focus

	seq     int
	count   int
	total   int
	loading bool
	err     error
}

// New builds the browser. columns limits the displayed columns; empty shows all.
func New(catalog catalogQuerier, columns []string) Model {
	search := textinput.New()
	search.Placeholder = "course title, id or instructor"
	search.Prompt = "Search: "
	search.CharLimit = 256
	search.Focus()

	table := tableview.New()
	table.Blur()

	return Model{
		catalog:     catalog,
		state:       models.FilterState{Mode: models.DayModeSubset, Columns: columns},
		pendingMode: models.DayModeSubset,
		search:      search,
		table:       table,
		focus:       focusSearch,
		loading:     true,
	}
}

// State returns the committed filter state.
func (m Model) State() models.FilterState {
	return m.state
}

// Init loads the first view.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.query())
}

// Update handles input and query results.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if h := msg.Height - 9; h > 3 {
			m.table.SetHeight(h)
		}
		if msg.Width > 0 {
			m.search.Width = msg.Width - len(m.search.Prompt) - 2
		}
		return m, nil

	case viewMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			return m, nil
		}
		_ = tableRenderer{table: &m.table}.Render(msg.view)
		m.count = msg.view.Count
		m.total = msg.view.Total
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.forward(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case m.focus == focusTable && key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.SwitchPane):
		m.switchFocus()
		return m, nil
	case key.Matches(msg, keys.Submit):
		return m.submit()
	}

	if m.focus == focusTable {
		if key.Matches(msg, keys.ToggleMode) {
			if m.pendingMode == models.DayModeAllMatched {
				m.pendingMode = models.DayModeSubset
			} else {
				m.pendingMode = models.DayModeAllMatched
			}
			return m, nil
		}
		if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && msg.Runes[0] >= '1' && msg.Runes[0] <= '7' {
			m.pendingDays = m.pendingDays.Toggle(int(msg.Runes[0] - '1'))
			return m, nil
		}
	}

	return m.forward(msg)
}

func (m Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.focus == focusSearch {
		before := m.search.Value()
		m.search, cmd = m.search.Update(msg)
		if m.search.Value() != before {
			m.state.Query = m.search.Value()
			next := m.requery()
			return m, tea.Batch(cmd, next)
		}
		return m, cmd
	}
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// submit commits the pending day selection and mode.
func (m Model) submit() (tea.Model, tea.Cmd) {
	m.state.Days = m.pendingDays
	m.state.Mode = m.pendingMode
	cmd := m.requery()
	return m, cmd
}

func (m *Model) switchFocus() {
	if m.focus == focusSearch {
		m.focus = focusTable
		m.search.Blur()
		m.table.Focus()
		return
	}
	m.focus = focusSearch
	m.table.Blur()
	m.search.Focus()
}

func (m *Model) requery() tea.Cmd {
	m.seq++
	m.loading = true
	return m.query()
}

func (m Model) query() tea.Cmd {
	seq, state, catalog := m.seq, m.state, m.catalog
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
		defer cancel()
		view, _, err := catalog.Query(ctx, state)
		return viewMsg{seq: seq, view: view, err: err}
	}
}

// View renders the screen.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Course Viewer"))
	b.WriteString("\n\n")
	b.WriteString(m.search.View())
	b.WriteString("\n")
	b.WriteString(m.daysLine())
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	case m.loading && m.total == 0:
		b.WriteString(countStyle.Render("Loading catalog..."))
		b.WriteString("\n")
	default:
		b.WriteString(countStyle.Render(fmt.Sprintf("%d results (of %d)", m.count, m.total)))
		b.WriteString("\n")
		b.WriteString(m.table.View())
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("tab switch pane • 1-7 toggle day • m mode • enter submit • s/r sort • q quit"))
	return b.String()
}

func (m Model) daysLine() string {
	parts := make([]string, 0, len(models.Weekdays)+1)
	for i, d := range models.Weekdays {
		box := "[ ]"
		if m.pendingDays[i] {
			box = "[x]"
		}
		parts = append(parts, fmt.Sprintf("%d%s%s", i+1, box, d))
	}
	mode := "(•) Subset ( ) All Matched"
	if m.pendingMode == models.DayModeAllMatched {
		mode = "( ) Subset (•) All Matched"
	}
	line := strings.Join(parts, " ") + "   " + mode
	if m.pendingDays != m.state.Days || m.pendingMode != m.state.Mode {
		line += pendingStyle.Render("  (enter to apply)")
	}
	return line
}
