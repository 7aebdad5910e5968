// File game/board.go
package game

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Size is the side length of the square board.
const Size = 8

// Cells is the number of squares on the board.
const Cells = Size * Size

// Cell is the content of one square: Empty or a disk of either color.
type Cell uint8

const (
	Empty Cell = iota
	BlackDisk
	WhiteDisk
)

// Color is one of the two adversarial roles.
type Color uint8

const (
	Black Color = 1
	White Color = 2
)

// Opponent maps Black to White and back. Black^3 == White, White^3 == Black.
func (c Color) Opponent() Color { return c ^ 3 }

// Disk returns the cell value occupied by c.
func (c Color) Disk() Cell { return Cell(c) }

func (c Color) String() string {
	switch c {
	case Black:
		return "Black"
	case White:
		return "White"
	}
	return "None"
}

// ErrInvalidMove is returned for off-board, occupied or non-capturing coordinates.
var ErrInvalidMove = errors.New("invalid move")

// Move is a board coordinate. Legality depends on the board and the mover.
type Move struct {
	Row, Col int
}

// NoMove is returned by the search at leaf nodes.
var NoMove = Move{Row: -1, Col: -1}

func (m Move) String() string {
	if m == NoMove {
		return "pass"
	}
	return fmt.Sprintf("(%d,%d)", m.Row, m.Col)
}

// directions lists the 8 unit scan directions.
var directions = [8][2]int{
	{0, 1}, {0, -1}, {1, 0}, {1, 1},
	{1, -1}, {-1, 0}, {-1, 1}, {-1, -1},
}

// Board is a fixed 8x8 grid.
type Board struct {
	Cells [Size][Size]Cell
}

// NewBoard returns the initial position: four center disks in the diagonal pattern.
func NewBoard() *Board {
	b := &Board{}
	b.Cells[3][3] = WhiteDisk
	b.Cells[3][4] = BlackDisk
	b.Cells[4][3] = BlackDisk
	b.Cells[4][4] = WhiteDisk
	return b
}

// InBounds reports whether (row, col) lies on the board.
func InBounds(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}

// At returns the cell at (row, col). Off-board coordinates read as Empty.
func (b *Board) At(row, col int) Cell {
	if !InBounds(row, col) {
		return Empty
	}
	return b.Cells[row][col]
}

// Clone returns an independent copy (array assignment is a deep copy).
func (b *Board) Clone() *Board {
	nb := *b
	return &nb
}

// run returns the number of opponent disks bracketed from (row, col) in
// direction (dr, dc), or 0 when the direction does not capture.
func (b *Board) run(me Color, row, col, dr, dc int) int {
	opp := me.Opponent().Disk()
	r, c := row+dr, col+dc
	n := 0
	for InBounds(r, c) && b.Cells[r][c] == opp {
		r += dr
		c += dc
		n++
	}
	if n == 0 || !InBounds(r, c) || b.Cells[r][c] != me.Disk() {
		return 0
	}
	return n
}

// Legal reports whether color may place a disk at (row, col).
func (b *Board) Legal(color Color, row, col int) bool {
	if !InBounds(row, col) || b.Cells[row][col] != Empty {
		return false
	}
	for _, d := range directions {
		if b.run(color, row, col, d[0], d[1]) > 0 {
			return true
		}
	}
	return false
}

// Undo records exactly what MakeMove changed: the placed cell and the flipped cells.
type Undo struct {
	placed  Move
	mover   Color
	flipped [32]uint8 // row*Size+col
	n       uint8
}

// Flipped returns the number of disks the move captured.
func (u *Undo) Flipped() int { return int(u.n) }

// FlippedCells returns the captured coordinates in scan order.
func (u *Undo) FlippedCells() []Move {
	out := make([]Move, u.n)
	for i := 0; i < int(u.n); i++ {
		out[i] = Move{Row: int(u.flipped[i]) / Size, Col: int(u.flipped[i]) % Size}
	}
	return out
}

// MakeMove places color's disk at (row, col) and flips every bracketed run in
// all 8 directions. The runs are measured before any disk changes, so the flips
// are atomic relative to the single placed disk. On ErrInvalidMove the board is
// left untouched.
func (b *Board) MakeMove(color Color, row, col int) (Undo, error) {
	u := Undo{placed: Move{Row: row, Col: col}, mover: color}
	if !InBounds(row, col) || b.Cells[row][col] != Empty {
		return u, ErrInvalidMove
	}

	var runs [8]int
	total := 0
	for i, d := range directions {
		runs[i] = b.run(color, row, col, d[0], d[1])
		total += runs[i]
	}
	if total == 0 {
		return u, ErrInvalidMove
	}

	me := color.Disk()
	for i, d := range directions {
		r, c := row, col
		for k := 0; k < runs[i]; k++ {
			r += d[0]
			c += d[1]
			b.Cells[r][c] = me
			u.flipped[u.n] = uint8(r*Size + c)
			u.n++
		}
	}
	b.Cells[row][col] = me
	return u, nil
}

// UnmakeMove reverts a successful MakeMove. Undo records must be unwound in
// reverse order of application.
func (b *Board) UnmakeMove(u Undo) {
	opp := u.mover.Opponent().Disk()
	for i := int(u.n) - 1; i >= 0; i-- {
		sq := u.flipped[i]
		b.Cells[sq/Size][sq%Size] = opp
	}
	b.Cells[u.placed.Row][u.placed.Col] = Empty
}

// Apply is MakeMove without the undo record.
func (b *Board) Apply(color Color, row, col int) error {
	_, err := b.MakeMove(color, row, col)
	return err
}

// LegalMoves enumerates every legal destination for color in row-major order.
// An empty result means color must pass. The slice is owned by the caller.
func (b *Board) LegalMoves(color Color) []Move {
	moves := make([]Move, 0, 16)
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b.Legal(color, r, c) {
				moves = append(moves, Move{Row: r, Col: c})
			}
		}
	}
	return moves
}

// HasAnyMove stops at the first legal destination.
func (b *Board) HasAnyMove(color Color) bool {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b.Legal(color, r, c) {
				return true
			}
		}
	}
	return false
}

// GameOver is true when neither color can move.
func (b *Board) GameOver() bool {
	return !b.HasAnyMove(Black) && !b.HasAnyMove(White)
}

// Score counts color's disks.
func (b *Board) Score(color Color) int {
	me := color.Disk()
	n := 0
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b.Cells[r][c] == me {
				n++
			}
		}
	}
	return n
}

// Winner compares disk counts. decided is false on a tie.
func (b *Board) Winner() (winner Color, decided bool) {
	black, white := b.Score(Black), b.Score(White)
	switch {
	case black > white:
		return Black, true
	case white > black:
		return White, true
	}
	return 0, false
}

// String renders the board with b/w/_ one row per line.
func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			switch b.Cells[r][c] {
			case BlackDisk:
				sb.WriteByte('b')
			case WhiteDisk:
				sb.WriteByte('w')
			default:
				sb.WriteByte('_')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ParseBoard reads the String format back. Used by tests and tools.
func ParseBoard(s string) (*Board, error) {
	rows := strings.Fields(s)
	if len(rows) != Size {
		return nil, errors.Errorf("parse board: want %d rows, got %d", Size, len(rows))
	}
	b := &Board{}
	for r, line := range rows {
		if len(line) != Size {
			return nil, errors.Errorf("parse board: row %d has %d cells", r, len(line))
		}
		for c := 0; c < Size; c++ {
			switch line[c] {
			case 'b', 'B':
				b.Cells[r][c] = BlackDisk
			case 'w', 'W':
				b.Cells[r][c] = WhiteDisk
			case '_', '.', '-':
				b.Cells[r][c] = Empty
			default:
				return nil, errors.Errorf("parse board: bad cell %q at (%d,%d)", line[c], r, c)
			}
		}
	}
	return b, nil
}
