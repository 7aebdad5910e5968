package ui

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	activeTPS = 60
	idleTPS   = 10
	idleAfter = 2 * time.Second
)

// powerSaver drops the tick rate while the window waits on a human or shows a
// finished game, and restores it on input or agent activity.
type powerSaver struct {
	idle         bool
	lastActivity time.Time
}

func (p *powerSaver) wake(now time.Time) {
	p.lastActivity = now
	if !p.idle {
		return
	}
	ebiten.SetVsyncEnabled(true)
	ebiten.SetTPS(activeTPS)
	p.idle = false
}

func (p *powerSaver) tick(now time.Time) {
	if p.idle {
		return
	}
	if p.lastActivity.IsZero() {
		p.lastActivity = now
		return
	}
	if now.Sub(p.lastActivity) < idleAfter {
		return
	}
	ebiten.SetVsyncEnabled(false)
	ebiten.SetTPS(idleTPS)
	p.idle = true
}
