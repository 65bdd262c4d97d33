package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/snakepit/internal/core"
	"github.com/vovakirdan/snakepit/internal/game"
)

// Model is the Bubble Tea model for a single game session. It forwards
// input to the session and redraws snapshots at the frame rate; the
// simulation itself runs on the session's own timers.
type Model struct {
	session  *game.Session
	screen   *core.Screen
	keys     *KeyMapper
	fps      int
	tooSmall bool
	quitting bool
}

// NewModel creates a Bubble Tea model around a game session.
func NewModel(session *game.Session, screenW, screenH, fps int) Model {
	return Model{
		session: session,
		screen:  core.NewScreen(screenW, screenH),
		keys:    NewKeyMapper(),
		fps:     fps,
	}
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return frameCmd(m.fps)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, msg.Height)
		m.checkSize()
		return m, nil

	case FrameMsg:
		return m, frameCmd(m.fps)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.Control(msg) {
	case ControlQuit:
		m.session.Close()
		m.quitting = true
		return m, tea.Quit

	case ControlPause:
		m.session.TogglePause()
		return m, nil

	case ControlRestart:
		if m.session.State() == game.StateGameOver {
			m.session.Reset()
			m.session.Start()
		}
		return m, nil

	case ControlStart:
		m.session.Start()
		return m, nil
	}

	if dir, ok := m.keys.Direction(msg); ok {
		// a movement key also starts an idle game
		m.session.Start()
		m.session.SetDirection(dir)
	}
	return m, nil
}

// checkSize flags terminals too small for the board.
func (m *Model) checkSize() {
	snap := m.session.Snapshot()
	minW, minH := MinScreenSize(snap.BoardW, snap.BoardH)
	m.tooSmall = m.screen.Width() < minW || m.screen.Height() < minH
}

// View renders the current snapshot to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.tooSmall {
		m.screen.Clear()
		m.screen.DrawTextCentered(m.screen.Height()/2, "Window too small")
		m.screen.DrawTextCentered(m.screen.Height()/2+1, "Resize to continue")
		return RenderScreen(m.screen)
	}

	drawSnapshot(m.screen, m.session.Snapshot(), m.session.Resumed())
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program for a session and blocks until the
// player quits.
func Run(session *game.Session, screenW, screenH, fps int) error {
	model := NewModel(session, screenW, screenH, fps)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
