package tui

import (
	"fmt"

	"github.com/vovakirdan/snakepit/internal/core"
	"github.com/vovakirdan/snakepit/internal/game"
)

// Board drawing offsets: one HUD line, then the board inside a box.
const (
	hudHeight    = 2
	boardOriginX = 1
	boardOriginY = hudHeight + 1
)

// MinScreenSize returns the smallest terminal that fits a board of the
// given dimensions with the HUD and box borders.
func MinScreenSize(boardW, boardH int) (w, h int) {
	return boardW + 2, boardH + hudHeight + 2
}

// drawSnapshot renders the full play screen: HUD, board box, entities and
// state overlays.
func drawSnapshot(dst *core.Screen, snap game.Snapshot, resumed bool) {
	dst.Clear()

	drawHUD(dst, snap)
	dst.DrawBox(core.NewRect(0, hudHeight, snap.BoardW+2, snap.BoardH+2))

	for _, obs := range snap.Obstacles {
		r := obs.Rect
		dst.DrawRect(core.NewRect(boardOriginX+r.X, boardOriginY+r.Y, r.W, r.H), '#', core.ColorGray)
	}

	for _, trap := range snap.Traps {
		if trap.Triggered {
			// triggered trap in its warning window
			dst.SetCell(boardOriginX+trap.Pos.X, boardOriginY+trap.Pos.Y, 'x', core.ColorBrightRed)
		} else {
			dst.SetCell(boardOriginX+trap.Pos.X, boardOriginY+trap.Pos.Y, 'X', core.ColorOrange)
		}
	}

	dst.SetCell(boardOriginX+snap.Food.X, boardOriginY+snap.Food.Y, '*', core.ColorBrightYellow)

	for i, seg := range snap.Snake {
		if i == 0 {
			dst.SetCell(boardOriginX+seg.X, boardOriginY+seg.Y, '@', core.ColorBrightGreen)
		} else {
			dst.SetCell(boardOriginX+seg.X, boardOriginY+seg.Y, 'o', core.ColorGreen)
		}
	}

	switch snap.State {
	case game.StateIdle:
		if resumed {
			drawOverlay(dst, snap, "Saved game loaded", "Press Enter to continue")
		} else {
			drawOverlay(dst, snap, "SNAKEPIT", "Press Enter to start")
		}
	case game.StatePaused:
		drawOverlay(dst, snap, "Paused", "Press P to resume")
	case game.StateGameOver:
		drawOverlay(dst, snap, fmt.Sprintf("Game Over: %s", snap.EndReason),
			fmt.Sprintf("Score %d  -  Press R to restart", snap.Score))
	}
}

// drawHUD draws the top status bar and separator.
func drawHUD(dst *core.Screen, snap game.Snapshot) {
	hud := fmt.Sprintf(" Snakepit  Score: %d  Length: %d  Tick: %dms  Reshape: %ds",
		snap.Score, len(snap.Snake), snap.TickInterval.Milliseconds(), snap.ReshapeCountdown)
	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, dst.Width(), '─')
}

// drawOverlay centers a two-line message over the board.
func drawOverlay(dst *core.Screen, snap game.Snapshot, title, subtitle string) {
	midY := boardOriginY + snap.BoardH/2
	dst.DrawTextCentered(midY-1, title)
	dst.DrawTextCentered(midY+1, subtitle)
}
