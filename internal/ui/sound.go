package ui

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const SampleRate = 44100

// sounds holds one short click per side, synthesized at start-up. A nil
// *sounds plays nothing.
type sounds struct {
	ctx   *audio.Context
	click map[bool][]byte // keyed by "black moved"
}

func newSounds(ctx *audio.Context) *sounds {
	if ctx == nil {
		return nil
	}
	return &sounds{
		ctx: ctx,
		click: map[bool][]byte{
			true:  tone(440, 70),
			false: tone(660, 70),
		},
	}
}

func (s *sounds) play(black bool) {
	if s == nil {
		return
	}
	s.ctx.NewPlayerFromBytes(s.click[black]).Play()
}

// tone renders a decaying sine as 16-bit little-endian stereo PCM.
func tone(freq float64, ms int) []byte {
	n := SampleRate * ms / 1000
	buf := make([]byte, 4*n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		env := math.Exp(-t * 60)
		v := int16(0.3 * env * math.Sin(2*math.Pi*freq*t) * math.MaxInt16)
		for ch := 0; ch < 2; ch++ {
			buf[4*i+2*ch] = byte(v)
			buf[4*i+2*ch+1] = byte(v >> 8)
		}
	}
	return buf
}
