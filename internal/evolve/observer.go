package evolve

import (
	"github.com/rs/zerolog/log"

	"othello_go/internal/game"
	"othello_go/internal/tournament"
)

// Match is one booked league game.
type Match struct {
	Generation int
	League     int
	Number     int // index within the league
	Black      game.Weights
	White      game.Weights
	Result     tournament.Result
}

// WinnerWeights returns the weights of the winning side, or false on a tie.
func (m Match) WinnerWeights() (game.Weights, bool) {
	if !m.Result.Decided {
		return game.Weights{}, false
	}
	if m.Result.Winner == game.Black {
		return m.Black, true
	}
	return m.White, true
}

// Observer receives progress events from the optimizer goroutine, in order.
// A non-nil error aborts the run.
type Observer interface {
	GenerationStarted(gen int, pop []game.Weights) error
	MatchPlayed(m Match) error
	GenerationFinished(gen int, standings []Standing) error
	Finished(best Standing) error
}

// LogObserver reports progress through the global zerolog logger.
type LogObserver struct{}

func (LogObserver) GenerationStarted(gen int, pop []game.Weights) error {
	log.Info().Int("generation", gen).Int("population", len(pop)).Msg("generation-started")
	return nil
}

func (LogObserver) MatchPlayed(m Match) error {
	log.Debug().
		Int("generation", m.Generation).
		Int("league", m.League).
		Int("game", m.Number).
		Stringer("black", m.Black).
		Stringer("white", m.White).
		Stringer("result", m.Result).
		Msg("match")
	return nil
}

func (LogObserver) GenerationFinished(gen int, standings []Standing) error {
	if len(standings) == 0 {
		return nil
	}
	log.Info().
		Int("generation", gen).
		Stringer("leader", standings[0].Weights).
		Float64("fitness", standings[0].Fitness).
		Msg("generation-finished")
	return nil
}

func (LogObserver) Finished(best Standing) error {
	log.Info().Stringer("weights", best.Weights).Float64("fitness", best.Fitness).Msg("optimum")
	return nil
}
