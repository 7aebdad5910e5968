package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"othello_go/internal/game"
)

// Board geometry in layout pixels.
const (
	cellSize   = 60
	boardPx    = cellSize * game.Size
	boardLeft  = (WindowWidth - boardPx) / 2
	boardTop   = 70
	diskRadius = cellSize*0.5 - 6
)

var (
	backgroundColor = color.RGBA{0x1e, 0x1e, 0x1e, 0xff}
	feltColor       = color.RGBA{0x1f, 0x7a, 0x3c, 0xff}
	gridColor       = color.RGBA{0x0c, 0x3b, 0x1c, 0xff}
	blackDisk       = color.RGBA{0x14, 0x14, 0x14, 0xff}
	whiteDisk       = color.RGBA{0xf0, 0xf0, 0xf0, 0xff}
	hintColor       = color.RGBA{0xff, 0xff, 0xff, 0x50}
	lastMoveColor   = color.RGBA{0xe8, 0x3a, 0x3a, 0xff}
	flipRing        = color.RGBA{0xff, 0xd0, 0x40, 0xff}
)

// Diagonal light falloff over the felt.
const gradKage = `//kage:unit pixels
package main

var UBright float
var UDark float
var USize vec2

func Fragment(dstPos vec4, srcPos vec2, col vec4) vec4 {
	c := imageSrc0At(srcPos)
	o := imageSrc0Origin()
	p := (srcPos - o) / USize
	t := clamp((p.x+p.y)*0.5, 0.0, 1.0)
	return vec4(c.rgb*mix(UBright, UDark, t), c.a)
}
`

// Baked on first use; the felt never changes.
var boardBaked *ebiten.Image

func bakeBoard() *ebiten.Image {
	felt := ebiten.NewImage(boardPx, boardPx)
	felt.Fill(feltColor)

	out := ebiten.NewImage(boardPx, boardPx)
	if shader, err := ebiten.NewShader([]byte(gradKage)); err == nil {
		op := &ebiten.DrawRectShaderOptions{}
		op.Images[0] = felt
		op.Uniforms = map[string]any{
			"UBright": float32(1.25),
			"UDark":   float32(0.8),
			"USize":   []float32{boardPx, boardPx},
		}
		out.DrawRectShader(boardPx, boardPx, shader, op)
	} else {
		out.DrawImage(felt, nil)
	}

	for i := 0; i <= game.Size; i++ {
		p := float32(i * cellSize)
		vector.StrokeLine(out, p, 0, p, boardPx, 2, gridColor, false)
		vector.StrokeLine(out, 0, p, boardPx, p, 2, gridColor, false)
	}
	for _, s := range [][2]int{{2, 2}, {2, 6}, {6, 2}, {6, 6}} {
		vector.DrawFilledCircle(out, float32(s[0]*cellSize), float32(s[1]*cellSize), 4, gridColor, true)
	}
	return out
}

func drawBoard(dst *ebiten.Image) {
	if boardBaked == nil {
		boardBaked = bakeBoard()
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(boardLeft, boardTop)
	dst.DrawImage(boardBaked, op)

	for i := 0; i < game.Size; i++ {
		x, _ := cellCenter(0, i)
		drawTextCentered(dst, string(rune('a'+i)), x, boardTop-12, color.White)
		_, y := cellCenter(i, 0)
		drawTextCentered(dst, fmt.Sprint(i+1), boardLeft-14, y, color.White)
	}
}

func drawDisks(dst *ebiten.Image, b *game.Board, flips []flip) {
	flipping := make(map[game.Move]bool, len(flips))
	for _, f := range flips {
		flipping[f.cell] = true
	}
	for r := 0; r < game.Size; r++ {
		for c := 0; c < game.Size; c++ {
			var clr color.Color
			switch b.At(r, c) {
			case game.BlackDisk:
				clr = blackDisk
			case game.WhiteDisk:
				clr = whiteDisk
			default:
				continue
			}
			x, y := cellCenter(r, c)
			vector.DrawFilledCircle(dst, float32(x), float32(y), diskRadius, clr, true)
			if flipping[game.Move{Row: r, Col: c}] {
				vector.StrokeCircle(dst, float32(x), float32(y), diskRadius+2, 3, flipRing, true)
			}
		}
	}
}

// drawHints marks every cell where side may play, using the same dry-run
// check that clicks go through.
func drawHints(dst *ebiten.Image, st *game.GameState, side game.Color) {
	for r := 0; r < game.Size; r++ {
		for c := 0; c < game.Size; c++ {
			if !st.ApplyMove(side, r, c, false) {
				continue
			}
			x, y := cellCenter(r, c)
			vector.DrawFilledCircle(dst, float32(x), float32(y), 7, hintColor, true)
		}
	}
}

func drawLastMove(dst *ebiten.Image, mv game.Move) {
	x, y := cellCenter(mv.Row, mv.Col)
	vector.DrawFilledCircle(dst, float32(x), float32(y), 5, lastMoveColor, true)
}

func (gs *GameScreen) drawStatus(dst *ebiten.Image) {
	face := basicfont.Face7x13
	black, white := gs.state.Score(game.Black), gs.state.Score(game.White)
	text.Draw(dst, fmt.Sprintf("Black: %d     White: %d", black, white), face, 20, 24, color.White)

	var status string
	switch {
	case gs.state.GameOver():
		if w, ok := gs.state.Winner(); ok {
			status = fmt.Sprintf("%v wins. Press R to play again", w)
		} else {
			status = "Tie. Press R to play again"
		}
	case gs.thinking():
		status = fmt.Sprintf("%v is thinking...", gs.state.GetTurn())
	default:
		status = fmt.Sprintf("%v to move", gs.state.GetTurn())
	}
	drawTextCentered(dst, status, WindowWidth/2, WindowHeight-24, color.White)
}

func drawTextCentered(dst *ebiten.Image, s string, x, y float64, col color.Color) {
	face := basicfont.Face7x13
	b := text.BoundString(face, s)
	w := float64(b.Dx())
	h := float64(b.Dy())
	text.Draw(dst, s, face, int(x-w/2), int(y+h/2)-2, col)
}
