// cmd/arena plays a weight vector against a reference vector, each pair of
// games with colors swapped, and reports the score.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"othello_go/internal/game"
	"othello_go/internal/tournament"
)

var (
	candidate = flag.String("a", "", "candidate weights, e.g. \"[51 151 74 97 103 78 151 126 26]\"")
	reference = flag.String("b", game.DefaultWeights.String(), "reference weights")
	pairs     = flag.Int("pairs", 1, "game pairs to play (colors swapped within a pair)")
	depth     = flag.Int("depth", 4, "search depth")
	width     = flag.Int("width", 3, "ordered moves kept before the endgame window (0 = all)")
	workers   = flag.Int("workers", 2, "games played at once")
	randOpen  = flag.Int("random_open", 4, "random plies played before each pair")
	seed      = flag.Int64("seed", time.Now().UnixNano(), "random seed for openings")
)

type tally struct{ wins, losses, ties, disks int }

// book adds one game seen from the candidate, who played aColor.
func (t *tally) book(res tournament.Result, aColor game.Color) {
	switch {
	case !res.Decided:
		t.ties++
	case res.Winner == aColor:
		t.wins++
	default:
		t.losses++
	}
	if aColor == game.Black {
		t.disks += res.Black - res.White
	} else {
		t.disks += res.White - res.Black
	}
}

func main() {
	flag.Parse()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	a, err := game.ParseWeights(*candidate)
	if err != nil {
		log.Fatal().Err(err).Msg("bad -a")
	}
	b, err := game.ParseWeights(*reference)
	if err != nil {
		log.Fatal().Err(err).Msg("bad -b")
	}

	rng := rand.New(rand.NewSource(*seed))
	openings := make([]*game.GameState, *pairs)
	for i := range openings {
		openings[i] = randomOpening(rng, *randOpen)
	}

	runner := tournament.NewRunner(game.SearchConfig{MaxDepth: *depth, Width: *width, Workers: 1})
	results := make([]tournament.Result, 2**pairs)

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(*workers)
	for i := range results {
		i := i
		g.Go(func() error {
			var err error
			open := openings[i/2]
			if i%2 == 0 {
				results[i], err = runner.PlayFrom(ctx, open, a, b)
			} else {
				results[i], err = runner.PlayFrom(ctx, open, b, a)
			}
			return err
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("game")
	}

	var t tally
	for i, res := range results {
		aColor := game.Black
		if i%2 == 1 {
			aColor = game.White
		}
		t.book(res, aColor)
		log.Info().Int("game", i+1).Stringer("candidate", aColor).Stringer("result", res).Msg("played")
	}
	n := len(results)
	fmt.Printf("candidate %v vs reference %v\n", a, b)
	fmt.Printf("wins=%d losses=%d ties=%d | score=%.1f%% | disk diff/game=%+.1f\n",
		t.wins, t.losses, t.ties,
		100*(float64(t.wins)+0.5*float64(t.ties))/float64(n),
		float64(t.disks)/float64(n))
}

// randomOpening plays n uniformly random legal plies from the initial position.
func randomOpening(r *rand.Rand, n int) *game.GameState {
	st := game.NewGameState()
	for i := 0; i < n && !st.GameOver(); i++ {
		moves := st.Board.LegalMoves(st.GetTurn())
		if _, err := st.MakeMove(moves[r.Intn(len(moves))]); err != nil {
			log.Fatal().Err(err).Msg("opening")
		}
	}
	return st
}
