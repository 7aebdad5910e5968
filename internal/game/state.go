package game

// GameState is a board, the color to move and the number of moves played so far.
// Ply decides the search-width policy near the end of the game; it is not the
// search-tree depth.
type GameState struct {
	Board *Board
	Turn  Color
	Ply   int
}

// NewGameState returns the initial position with Black to move.
func NewGameState() *GameState {
	return &GameState{
		Board: NewBoard(),
		Turn:  Black,
	}
}

// Clone returns an independent snapshot.
func (gs *GameState) Clone() *GameState {
	return &GameState{
		Board: gs.Board.Clone(),
		Turn:  gs.Turn,
		Ply:   gs.Ply,
	}
}

// Reset returns the state to the initial position.
func (gs *GameState) Reset() {
	*gs = *NewGameState()
}

// MakeMove plays m for the color to move. The turn passes to the opponent only
// when the opponent has a legal reply; otherwise the same color moves again.
func (gs *GameState) MakeMove(m Move) (Undo, error) {
	return gs.play(gs.Turn, m.Row, m.Col)
}

func (gs *GameState) play(color Color, row, col int) (Undo, error) {
	u, err := gs.Board.MakeMove(color, row, col)
	if err != nil {
		return u, err
	}
	gs.Ply++
	gs.Turn = color
	if gs.Board.HasAnyMove(color.Opponent()) {
		gs.Turn = color.Opponent()
	}
	return u, nil
}

// GetBoard returns a read-only copy for rendering.
func (gs *GameState) GetBoard() Board {
	return *gs.Board
}

// GetTurn returns the color to move.
func (gs *GameState) GetTurn() Color {
	return gs.Turn
}

// LegalCell reports whether the color to move may play (row, col).
func (gs *GameState) LegalCell(row, col int) bool {
	return gs.Board.Legal(gs.Turn, row, col)
}

// ApplyMove is the click-handling entry point. With commit false it only checks
// legality for color; with commit true it also plays the move and advances the
// turn. An illegal request leaves the state unchanged and returns false.
func (gs *GameState) ApplyMove(color Color, row, col int, commit bool) bool {
	if !gs.Board.Legal(color, row, col) {
		return false
	}
	if !commit {
		return true
	}
	_, err := gs.play(color, row, col)
	return err == nil
}

func (gs *GameState) GameOver() bool { return gs.Board.GameOver() }

func (gs *GameState) Winner() (Color, bool) { return gs.Board.Winner() }

func (gs *GameState) Score(color Color) int { return gs.Board.Score(color) }

// EmptyCount returns the number of empty squares.
func (gs *GameState) EmptyCount() int {
	return Cells - gs.Board.Score(Black) - gs.Board.Score(White)
}
