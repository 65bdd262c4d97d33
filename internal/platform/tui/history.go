package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/snakepit/internal/game"
	"github.com/vovakirdan/snakepit/internal/storage"
)

const maxHistoryRows = 100

// historyView selects which session listing the table shows.
type historyView int

const (
	viewTopScores historyView = iota
	viewRecent
)

// HistoryKeyMap defines the key bindings for the history screen.
type HistoryKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Select key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Select, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Toggle, k.Back, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "top/recent"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "events"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// sessionDetail holds the event drill-down for one selected session.
type sessionDetail struct {
	entry  storage.SessionEntry
	events []game.Event
	err    error
}

// HistoryModel is the Bubble Tea model for the session history screen.
type HistoryModel struct {
	store    *storage.Store
	view     historyView
	stats    storage.Stats
	entries  []storage.SessionEntry
	detail   *sessionDetail
	table    table.Model
	help     help.Model
	keys     HistoryKeyMap
	width    int
	height   int
	loadErr  error
	quitting bool
}

// NewHistoryModel creates a new history model.
func NewHistoryModel(store *storage.Store, width, height int) HistoryModel {
	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		store:  store,
		keys:   DefaultHistoryKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates the session table.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 8},
		{Title: "Length", Width: 8},
		{Title: "Ended", Width: 20},
		{Title: "Date", Width: 14},
	}

	height := m.height - 8
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load refreshes the table for the current view.
func (m *HistoryModel) load() {
	if m.store == nil {
		m.table.SetRows(nil)
		return
	}

	var entries []storage.SessionEntry
	var err error
	switch m.view {
	case viewTopScores:
		entries, err = m.store.TopSessions(maxHistoryRows)
	case viewRecent:
		entries, err = m.store.RecentSessions(maxHistoryRows)
	}
	if err != nil {
		m.loadErr = err
		m.entries = nil
		m.table.SetRows(nil)
		return
	}
	m.loadErr = nil
	m.entries = entries

	if stats, statsErr := m.store.Stats(); statsErr == nil {
		m.stats = stats
	}

	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		ended := "still open"
		if e.Finished() {
			ended = string(e.EndReason)
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", e.Score),
			fmt.Sprintf("%d", e.SnakeLen),
			ended,
			e.StartedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// openDetail loads the recorded events of the selected session.
func (m *HistoryModel) openDetail() {
	if m.store == nil {
		return
	}
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.entries) {
		return
	}

	entry := m.entries[idx]
	events, err := m.store.SessionEvents(entry.ID)
	m.detail = &sessionDetail{entry: entry, events: events, err: err}
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			if m.detail != nil {
				m.detail = nil
				return m, nil
			}
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Select):
			if m.detail == nil {
				m.openDetail()
			}
			return m, nil

		case key.Matches(msg, m.keys.Toggle):
			if m.detail != nil {
				return m, nil
			}
			if m.view == viewTopScores {
				m.view = viewRecent
			} else {
				m.view = viewTopScores
			}
			m.load()
			return m, nil
		}

		if m.detail != nil {
			// the detail view has no scrolling state of its own
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.load()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}
	if m.detail != nil {
		return m.viewDetail()
	}

	title := "Top Scores"
	if m.view == viewRecent {
		title = "Recent Sessions"
	}

	header := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf(" Snakepit - %s", title))

	statsLine := fmt.Sprintf(" %d sessions, high score %d, %d food eaten, %d traps hit",
		m.stats.TotalSessions, m.stats.HighScore, m.stats.TotalFoodEaten, m.stats.TotalTrapHits)

	body := m.table.View()
	if m.loadErr != nil {
		body = fmt.Sprintf("\n cannot load history: %v\n", m.loadErr)
	} else if m.store == nil {
		body = "\n no database configured\n"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		statsLine,
		"",
		body,
		"",
		" "+m.help.View(m.keys),
	)
}

// viewDetail renders the per-session event listing.
func (m HistoryModel) viewDetail() string {
	d := m.detail
	header := lipgloss.NewStyle().Bold(true).Render(
		fmt.Sprintf(" Snakepit - Session on %s", d.entry.StartedAt.Format("Jan 02 15:04")))

	ended := "still open"
	if d.entry.Finished() {
		ended = string(d.entry.EndReason)
	}
	summary := fmt.Sprintf(" score %d, length %d, %s", d.entry.Score, d.entry.SnakeLen, ended)

	var body string
	switch {
	case d.err != nil:
		body = fmt.Sprintf("\n cannot load events: %v\n", d.err)
	case len(d.events) == 0:
		body = "\n no events recorded\n"
	default:
		lines := make([]string, 0, len(d.events))
		for _, ev := range d.events {
			lines = append(lines, fmt.Sprintf(" tick %5d  %-15s %s", ev.Tick, ev.Kind, ev.Detail))
		}
		body = lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		summary,
		"",
		body,
		"",
		" "+m.help.View(m.keys),
	)
}

// RunHistory starts the history screen and blocks until the user quits.
func RunHistory(store *storage.Store, width, height int) error {
	model := NewHistoryModel(store, width, height)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
