// cmd/bench_perf plays self-play games with the default weights under a CPU
// profile and reports search throughput.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/pkg/profile"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"othello_go/internal/game"
	"othello_go/internal/tournament"
)

func main() {
	depth := flag.Int("depth", 4, "search depth")
	width := flag.Int("width", 3, "ordered moves kept before the endgame window (0 = all)")
	workers := flag.Int("workers", 1, "root-parallel search workers")
	games := flag.Int("games", 3, "games to play")
	out := flag.String("profile-dir", ".", "directory for cpu.pprof")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	defer profile.Start(profile.CPUProfile, profile.ProfilePath(*out), profile.NoShutdownHook).Stop()

	cfg := game.SearchConfig{MaxDepth: *depth, Width: *width, Workers: *workers}

	// Full games through the tournament loop.
	runner := tournament.NewRunner(cfg)
	start := time.Now()
	for i := 0; i < *games; i++ {
		res, err := runner.Play(context.Background(), game.DefaultWeights, game.DefaultWeights)
		if err != nil {
			log.Fatal().Err(err).Msg("game")
		}
		log.Info().Int("game", i+1).Stringer("result", res).Msg("played")
	}
	log.Info().Dur("took", time.Since(start)).Int("games", *games).Msg("self-play")

	// Node rate of a single searcher over one game.
	s := game.NewSearcher(cfg, game.DefaultWeights)
	st := game.NewGameState()
	start = time.Now()
	for !st.GameOver() {
		mv, ok := s.Search(st, st.GetTurn())
		if !ok {
			break
		}
		if _, err := st.MakeMove(mv); err != nil {
			log.Fatal().Err(err).Msg("move")
		}
	}
	elapsed := time.Since(start)
	log.Info().
		Int64("nodes", s.Nodes()).
		Dur("took", elapsed).
		Float64("nodes_per_sec", float64(s.Nodes())/elapsed.Seconds()).
		Int("black", st.Score(game.Black)).
		Int("white", st.Score(game.White)).
		Msg("search")
}
