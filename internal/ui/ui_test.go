package ui

import (
	"testing"

	"othello_go/internal/game"
)

func TestCellAtInvertsCellCenter(t *testing.T) {
	for r := 0; r < game.Size; r++ {
		for c := 0; c < game.Size; c++ {
			x, y := cellCenter(r, c)
			gr, gc, ok := cellAt(x, y)
			if !ok || gr != r || gc != c {
				t.Fatalf("cellAt(cellCenter(%d,%d)) = %d,%d,%v", r, c, gr, gc, ok)
			}
		}
	}
	for _, p := range [][2]float64{{boardLeft - 1, boardTop + 5}, {boardLeft + 5, boardTop - 1}, {boardLeft + boardPx + 1, boardTop + 5}} {
		if _, _, ok := cellAt(p[0], p[1]); ok {
			t.Errorf("cellAt(%v) should be off the board", p)
		}
	}
}

func TestParseMode(t *testing.T) {
	for _, s := range []string{"pve", "pvp", "eve"} {
		if m, err := ParseMode(s); err != nil || string(m) != s {
			t.Errorf("ParseMode(%q) = %q, %v", s, m, err)
		}
	}
	if _, err := ParseMode("cvc"); err == nil {
		t.Errorf("unknown mode accepted")
	}
}

func TestToneLength(t *testing.T) {
	buf := tone(440, 70)
	if want := 4 * SampleRate * 70 / 1000; len(buf) != want {
		t.Fatalf("len = %d, want %d", len(buf), want)
	}
	// Stereo channels carry the same sample.
	for i := 0; i+3 < len(buf); i += 4 {
		if buf[i] != buf[i+2] || buf[i+1] != buf[i+3] {
			t.Fatalf("channels differ at frame %d", i/4)
		}
	}
}

func TestNilSoundsIsSilent(t *testing.T) {
	var s *sounds
	s.play(true)
	if newSounds(nil) != nil {
		t.Fatalf("no context should mean no sounds")
	}
}
