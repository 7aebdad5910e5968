// Package tournament plays single games between two weight vectors.
package tournament

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"othello_go/internal/game"
)

// Result is the outcome of one game. Black played the first weight vector.
// Moves counts plies from the initial position.
type Result struct {
	Winner  game.Color
	Decided bool // false on a tie
	Black   int
	White   int
	Moves   int
}

func (r Result) String() string {
	if !r.Decided {
		return fmt.Sprintf("tie %d-%d after %d moves", r.Black, r.White, r.Moves)
	}
	return fmt.Sprintf("%v wins %d-%d after %d moves", r.Winner, r.Black, r.White, r.Moves)
}

// Runner holds the search parameters shared by both sides.
type Runner struct {
	search game.SearchConfig
}

func NewRunner(cfg game.SearchConfig) *Runner {
	return &Runner{search: cfg}
}

// Play runs a full game from the initial position, Black searching with a and
// White with b. A side without a legal move is skipped by the turn rule of
// GameState. ctx is checked between moves.
func (r *Runner) Play(ctx context.Context, a, b game.Weights) (Result, error) {
	return r.PlayFrom(ctx, game.NewGameState(), a, b)
}

// PlayFrom is Play starting from a copy of start.
func (r *Runner) PlayFrom(ctx context.Context, start *game.GameState, a, b game.Weights) (Result, error) {
	players := map[game.Color]*game.Searcher{
		game.Black: game.NewSearcher(r.search, a),
		game.White: game.NewSearcher(r.search, b),
	}
	st := start.Clone()

	for !st.GameOver() {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		mover := st.GetTurn()
		mv, ok := players[mover].Search(st, mover)
		if !ok {
			// GameState only hands the turn to a color that can move.
			return Result{}, errors.Errorf("%v to move at ply %d has no move", mover, st.Ply)
		}
		if _, err := st.MakeMove(mv); err != nil {
			return Result{}, errors.Wrapf(err, "ply %d: %v plays %v", st.Ply, mover, mv)
		}
	}

	winner, decided := st.Winner()
	return Result{
		Winner:  winner,
		Decided: decided,
		Black:   st.Score(game.Black),
		White:   st.Score(game.White),
		Moves:   st.Ply,
	}, nil
}
