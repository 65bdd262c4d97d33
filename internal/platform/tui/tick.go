// Package tui provides the Bubble Tea integration: the render loop, input
// mapping, the history screen, and SSH serving via Wish. The simulation
// runs on its own timers inside the game session; the TUI only samples
// snapshots and forwards input.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameMsg is sent to trigger a screen redraw.
type FrameMsg time.Time

// frameCmd returns a Bubble Tea command that sends frame messages at the
// specified rate.
func frameCmd(fps int) tea.Cmd {
	if fps <= 0 {
		fps = 30
	}
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}
