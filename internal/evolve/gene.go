// Package evolve tunes evaluator weights with a generational genetic
// algorithm whose fitness comes from round-robin self-play leagues.
package evolve

import (
	"math/rand"
	"sort"

	"github.com/pkg/errors"

	"othello_go/internal/game"
	"othello_go/internal/tournament"
)

// Points awarded per game.
const (
	WinPoints = 2
	TiePoints = 1
)

// ErrUndefinedFitness is returned when fitness is read for a gene that has
// not played. The league schedule rules this out, so seeing it is a bug.
var ErrUndefinedFitness = errors.New("fitness undefined: gene has played no games")

// Gene is a weight vector with its accumulated tournament record. The record
// is kept when a gene survives into the next generation.
type Gene struct {
	Weights  game.Weights
	Games    int
	WinScore int
}

func NewGene(w game.Weights) *Gene {
	return &Gene{Weights: w}
}

// Fitness is WinScore / Games.
func (g *Gene) Fitness() (float64, error) {
	if g.Games == 0 {
		return 0, errors.Wrapf(ErrUndefinedFitness, "gene %v", g.Weights)
	}
	return float64(g.WinScore) / float64(g.Games), nil
}

// record books one game for the pair (a as Black, b as White).
func record(a, b *Gene, res tournament.Result) {
	a.Games++
	b.Games++
	switch {
	case !res.Decided:
		a.WinScore += TiePoints
		b.WinScore += TiePoints
	case res.Winner == game.Black:
		a.WinScore += WinPoints
	default:
		b.WinScore += WinPoints
	}
}

// Standing is a read-only view of a gene handed to observers.
type Standing struct {
	Weights  game.Weights
	Games    int
	WinScore int
	Fitness  float64 // zero while Games == 0
}

func (g *Gene) Standing() Standing {
	f, _ := g.Fitness()
	return Standing{Weights: g.Weights, Games: g.Games, WinScore: g.WinScore, Fitness: f}
}

type Population []*Gene

// SortByFitness orders the population by descending fitness, keeping the
// current order among equal fitness.
func (p Population) SortByFitness() error {
	fit := make(map[*Gene]float64, len(p))
	for _, g := range p {
		f, err := g.Fitness()
		if err != nil {
			return err
		}
		fit[g] = f
	}
	sort.SliceStable(p, func(i, j int) bool { return fit[p[i]] > fit[p[j]] })
	return nil
}

func (p Population) Weights() []game.Weights {
	out := make([]game.Weights, len(p))
	for i, g := range p {
		out[i] = g.Weights
	}
	return out
}

func (p Population) Standings() []Standing {
	out := make([]Standing, len(p))
	for i, g := range p {
		out[i] = g.Standing()
	}
	return out
}

// sample draws k distinct genes from pool.
func sample(r *rand.Rand, pool []*Gene, k int) []*Gene {
	idx := r.Perm(len(pool))[:k]
	out := make([]*Gene, k)
	for i, j := range idx {
		out[i] = pool[j]
	}
	return out
}
