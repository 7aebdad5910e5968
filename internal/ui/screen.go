// Package ui is the ebiten front end: a clickable board, score labels and a
// background agent.
package ui

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"othello_go/internal/game"
)

const (
	WindowWidth  = 800
	WindowHeight = 600
)

// minThink keeps agent replies on screen long enough to follow.
const minThink = 400 * time.Millisecond

type Mode string

const (
	HumanVsAgent Mode = "pve"
	HumanVsHuman Mode = "pvp"
	AgentVsAgent Mode = "eve"
)

func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case HumanVsAgent, HumanVsHuman, AgentVsAgent:
		return m, nil
	}
	return "", errors.Errorf("unknown mode %q (want pve, pvp or eve)", s)
}

type Options struct {
	Mode      Mode
	Human     game.Color // side clicked by the human in HumanVsAgent
	Search    game.SearchConfig
	Weights   game.Weights
	ShowHints bool
	Audio     *audio.Context // nil mutes the move clicks
}

type flip struct {
	cell  game.Move
	until time.Time
}

// GameScreen implements ebiten.Game.
type GameScreen struct {
	state    *game.GameState
	opts     Options
	searcher *game.Searcher

	lastMove game.Move
	flips    []flip
	power    powerSaver
	sounds   *sounds

	aiResultCh   chan game.Move // capacity 1
	aiCancelCh   chan struct{}  // closed to drop a running search
	aiRunning    bool
	aiQueued     *game.Move
	aiDelayUntil time.Time
}

func NewGameScreen(opts Options) *GameScreen {
	return &GameScreen{
		state:      game.NewGameState(),
		opts:       opts,
		searcher:   game.NewSearcher(opts.Search, opts.Weights),
		lastMove:   game.NoMove,
		sounds:     newSounds(opts.Audio),
		aiResultCh: make(chan game.Move, 1),
		aiCancelCh: make(chan struct{}),
	}
}

func (gs *GameScreen) isAgent(c game.Color) bool {
	switch gs.opts.Mode {
	case AgentVsAgent:
		return true
	case HumanVsAgent:
		return c != gs.opts.Human
	}
	return false
}

// commit plays mv for the side to move and records what to highlight.
func (gs *GameScreen) commit(mv game.Move) {
	mover := gs.state.GetTurn()
	u, err := gs.state.MakeMove(mv)
	if err != nil {
		log.Error().Err(err).Stringer("move", mv).Stringer("color", mover).Msg("commit")
		return
	}
	gs.lastMove = mv
	gs.sounds.play(mover == game.Black)
	until := time.Now().Add(350 * time.Millisecond)
	for _, c := range u.FlippedCells() {
		gs.flips = append(gs.flips, flip{cell: c, until: until})
	}
	log.Debug().Stringer("color", mover).Stringer("move", mv).Int("flipped", u.Flipped()).Msg("move")
	if gs.state.GameOver() {
		w, ok := gs.state.Winner()
		log.Info().Bool("decided", ok).Stringer("winner", w).
			Int("black", gs.state.Score(game.Black)).Int("white", gs.state.Score(game.White)).
			Msg("game-over")
	}
}

func (gs *GameScreen) cancelAgent() {
	if gs.aiRunning {
		close(gs.aiCancelCh)
		gs.aiRunning = false
	}
	gs.aiQueued = nil
	select {
	case <-gs.aiResultCh:
	default:
	}
}

func (gs *GameScreen) reset() {
	gs.cancelAgent()
	gs.state.Reset()
	gs.lastMove = game.NoMove
	gs.flips = nil
}

func (gs *GameScreen) Update() error {
	now := time.Now()

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		gs.power.wake(now)
		gs.reset()
		return nil
	}

	kept := gs.flips[:0]
	for _, f := range gs.flips {
		if now.Before(f.until) {
			kept = append(kept, f)
		}
	}
	gs.flips = kept

	if gs.state.GameOver() {
		gs.cancelAgent()
		gs.power.tick(now)
		return nil
	}

	turn := gs.state.GetTurn()
	if gs.isAgent(turn) {
		gs.power.wake(now)
		gs.updateAgent(now, turn)
		return nil
	}

	gs.handleInput(now)
	gs.power.tick(now)
	return nil
}

// updateAgent starts a background search on a snapshot, then plays its
// result once minThink has passed.
func (gs *GameScreen) updateAgent(now time.Time, turn game.Color) {
	if gs.aiQueued != nil {
		if now.Before(gs.aiDelayUntil) {
			return
		}
		mv := *gs.aiQueued
		gs.aiQueued = nil
		gs.commit(mv)
		return
	}

	if !gs.aiRunning {
		gs.aiRunning = true
		gs.aiDelayUntil = now.Add(minThink)
		// Fresh channels per search so a cancelled one cannot deliver late.
		gs.aiResultCh = make(chan game.Move, 1)
		gs.aiCancelCh = make(chan struct{})
		go func(st *game.GameState, color game.Color, out chan<- game.Move, cancel <-chan struct{}) {
			mv, ok := gs.searcher.Search(st, color)
			select {
			case <-cancel:
				return
			default:
			}
			if ok {
				select {
				case out <- mv:
				default:
				}
			}
		}(gs.state.Clone(), turn, gs.aiResultCh, gs.aiCancelCh)
	}

	select {
	case mv := <-gs.aiResultCh:
		gs.aiQueued = &mv
		gs.aiRunning = false
	default:
	}
}

func (gs *GameScreen) thinking() bool {
	return gs.aiRunning || gs.aiQueued != nil
}

func (gs *GameScreen) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	drawBoard(screen)

	board := gs.state.GetBoard()
	turn := gs.state.GetTurn()
	if gs.opts.ShowHints && !gs.state.GameOver() && !gs.isAgent(turn) {
		drawHints(screen, gs.state, turn)
	}
	drawDisks(screen, &board, gs.flips)
	if gs.lastMove != game.NoMove {
		drawLastMove(screen, gs.lastMove)
	}
	gs.drawStatus(screen)
}

func (gs *GameScreen) Layout(outsideWidth, outsideHeight int) (int, int) {
	return WindowWidth, WindowHeight
}
