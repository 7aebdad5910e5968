// cmd/evolve tunes evaluator weights by self-play and writes one log<N>.txt
// per generation.
package main

import (
	"context"
	"flag"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"othello_go/internal/config"
	"othello_go/internal/evolve"
	"othello_go/internal/monitor"
	"othello_go/internal/tournament"
)

func main() {
	configFlag := flag.String("config", "", "JSON config file (defaults are used for missing fields)")
	generations := flag.Int("generations", 0, "generation limit (0 = config value)")
	seed := flag.Int64("seed", -1, "random seed (0 = random, -1 = config value)")
	workers := flag.Int("workers", 0, "concurrent league games (0 = config value)")
	depth := flag.Int("depth", 0, "search depth (0 = config value)")
	logDir := flag.String("log-dir", "", "directory for log<N>.txt (empty = config value)")
	monitorAddr := flag.String("monitor", "", "serve progress on this address, e.g. :8090")
	verbose := flag.Bool("v", false, "log every league game")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	if *generations > 0 {
		cfg.Evolution.Generations = *generations
	}
	if *seed >= 0 {
		cfg.Evolution.Seed = *seed
	}
	if *workers > 0 {
		cfg.Evolution.Workers = *workers
	}
	if *depth > 0 {
		cfg.Search.MaxDepth = *depth
	}
	if *logDir != "" {
		cfg.Evolution.LogDir = *logDir
	}
	if *monitorAddr != "" {
		cfg.Monitor.Addr = *monitorAddr
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := evolve.ResolveSeed(cfg.Evolution.Seed)
	runner := tournament.NewRunner(cfg.Search.SearchConfig())
	opts := []evolve.Option{
		evolve.WithRand(rand.New(rand.NewSource(s))),
		evolve.WithObserver(evolve.LogObserver{}),
		evolve.WithObserver(evolve.NewFileHistory(cfg.Evolution.LogDir)),
	}

	monitorDone := make(chan struct{})
	monCtx, stopMonitor := context.WithCancel(ctx)
	if cfg.Monitor.Addr != "" {
		hub := monitor.NewHub()
		opts = append(opts, evolve.WithObserver(hub))
		go func() {
			defer close(monitorDone)
			if err := monitor.Serve(monCtx, cfg.Monitor.Addr, hub); err != nil {
				log.Error().Err(err).Msg("monitor")
			}
		}()
	} else {
		close(monitorDone)
	}

	log.Info().
		Int64("seed", s).
		Int("population", cfg.Evolution.Population).
		Int("generations", cfg.Evolution.Generations).
		Int("depth", cfg.Search.MaxDepth).
		Int("workers", cfg.Evolution.Workers).
		Msg("evolving")

	start := time.Now()
	best, err := evolve.New(cfg.Evolution, runner.Play, opts...).Run(ctx)
	stopMonitor()
	<-monitorDone
	if err != nil {
		log.Fatal().Err(err).Msg("evolution failed")
	}
	log.Info().
		Stringer("weights", best.Weights).
		Int("games", best.Games).
		Int("win_score", best.WinScore).
		Dur("took", time.Since(start)).
		Msg("OPTIMUM WEIGHT LIST")
}
