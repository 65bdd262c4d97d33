package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/snakepit/internal/game"
)

// Control is a non-movement action derived from input.
type Control int

const (
	ControlNone Control = iota
	ControlStart
	ControlPause
	ControlRestart
	ControlQuit
)

// KeyMapper translates Bubble Tea key messages to game input.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// Direction maps a key message to a movement direction. Supports arrows,
// WASD and vim-style HJKL.
func (km *KeyMapper) Direction(msg tea.KeyMsg) (game.Direction, bool) {
	switch msg.String() {
	case "up", "w", "k":
		return game.DirUp, true
	case "down", "s", "j":
		return game.DirDown, true
	case "left", "a", "h":
		return game.DirLeft, true
	case "right", "d", "l":
		return game.DirRight, true
	}
	return game.DirRight, false
}

// Control maps a key message to a control action.
func (km *KeyMapper) Control(msg tea.KeyMsg) Control {
	switch msg.String() {
	case "ctrl+c", "q":
		return ControlQuit
	case "p", "esc":
		return ControlPause
	case "r":
		return ControlRestart
	case "enter", " ":
		return ControlStart
	}
	return ControlNone
}
