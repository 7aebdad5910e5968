package ui

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog/log"

	"othello_go/internal/game"
)

// cellCenter returns the layout-pixel center of (row, col).
func cellCenter(row, col int) (x, y float64) {
	x = boardLeft + (float64(col)+0.5)*cellSize
	y = boardTop + (float64(row)+0.5)*cellSize
	return
}

// cellAt maps a layout-pixel position to a board cell.
func cellAt(x, y float64) (row, col int, ok bool) {
	fx := (x - boardLeft) / cellSize
	fy := (y - boardTop) / cellSize
	if fx < 0 || fy < 0 {
		return 0, 0, false
	}
	row, col = int(fy), int(fx)
	return row, col, game.InBounds(row, col)
}

// handleInput plays a left click on a legal cell for the side to move. The
// click is checked with a dry run first so an illegal click changes nothing.
func (gs *GameScreen) handleInput(now time.Time) {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	gs.power.wake(now)

	mx, my := ebiten.CursorPosition()
	row, col, ok := cellAt(float64(mx), float64(my))
	if !ok {
		return
	}
	turn := gs.state.GetTurn()
	if !gs.state.ApplyMove(turn, row, col, false) {
		log.Debug().Int("row", row).Int("col", col).Stringer("color", turn).Msg("illegal-click")
		return
	}
	gs.commit(game.Move{Row: row, Col: col})
}
