package main

import (
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"othello_go/internal/config"
	"othello_go/internal/game"
	"othello_go/internal/ui"
)

func main() {
	modeFlag := flag.String("mode", "pve", "game mode: pve (human vs agent), pvp (human vs human) or eve (agent vs agent)")
	humanFlag := flag.String("human", "black", "side played by the human in pve mode: black or white")
	configFlag := flag.String("config", "", "JSON config file; search settings are read from it")
	depthFlag := flag.Int("depth", 0, "agent search depth (0 = config value)")
	weightsFlag := flag.String("weights", game.DefaultWeights.String(), "agent evaluator weights, as printed in log<N>.txt")
	hintsFlag := flag.Bool("hints", true, "mark legal cells for the human")
	muteFlag := flag.Bool("mute", false, "no move sounds")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	mode, err := ui.ParseMode(*modeFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("bad -mode")
	}
	human := game.Black
	switch *humanFlag {
	case "black":
	case "white":
		human = game.White
	default:
		log.Fatal().Str("human", *humanFlag).Msg("bad -human")
	}

	weights, err := game.ParseWeights(*weightsFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("bad -weights")
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	if *depthFlag > 0 {
		cfg.Search.MaxDepth = *depthFlag
	}

	var audioCtx *audio.Context
	if !*muteFlag {
		audioCtx = audio.NewContext(ui.SampleRate)
	}

	screen := ui.NewGameScreen(ui.Options{
		Mode:      mode,
		Human:     human,
		Search:    cfg.Search.SearchConfig(),
		Weights:   weights,
		ShowHints: *hintsFlag,
		Audio:     audioCtx,
	})
	log.Info().Str("mode", string(mode)).Stringer("human", human).Int("depth", cfg.Search.MaxDepth).Msg("starting")

	ebiten.SetVsyncEnabled(true)
	ebiten.SetTPS(60)
	ebiten.SetWindowSize(ui.WindowWidth, ui.WindowHeight)
	ebiten.SetWindowTitle("Othello")

	if err := ebiten.RunGame(screen); err != nil {
		log.Fatal().Err(err).Msg("run")
	}
}
