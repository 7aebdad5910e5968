package evolve

import (
	"context"
	"math"
	"math/rand"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"

	"othello_go/internal/config"
	"othello_go/internal/game"
	"othello_go/internal/tournament"
)

// MatchFunc plays one game with a as Black and b as White.
// tournament.Runner.Play satisfies it.
type MatchFunc func(ctx context.Context, a, b game.Weights) (tournament.Result, error)

type Option func(*Optimizer)

// WithRand replaces the seeded source. The optimizer is the only user of r.
func WithRand(r *rand.Rand) Option {
	return func(o *Optimizer) { o.rng = r }
}

func WithObserver(obs Observer) Option {
	return func(o *Optimizer) { o.observers = append(o.observers, obs) }
}

// ResolveSeed returns seed, or a fresh random non-zero seed when seed is 0.
func ResolveSeed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return int64(frand.Uint64n(math.MaxInt64-1)) + 1
}

// Optimizer runs the generational loop. Generations are numbered from 1.
type Optimizer struct {
	cfg       config.Evolution
	match     MatchFunc
	rng       *rand.Rand
	observers []Observer

	pop Population
	gen int
}

// New builds an optimizer for a validated configuration.
func New(cfg config.Evolution, match MatchFunc, opts ...Option) *Optimizer {
	o := &Optimizer{
		cfg:   cfg,
		match: match,
		gen:   1,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(ResolveSeed(cfg.Seed)))
	}
	return o
}

func (o *Optimizer) Generation() int { return o.gen }

func (o *Optimizer) Population() Population { return o.pop }

// InitPopulation draws a fresh random population. Every component but the
// last is uniform in [MinWeight, MaxWeight]; the disk-differential weight is
// uniform in [MinWeight, LastWeightMax].
func (o *Optimizer) InitPopulation() {
	lo, hi := o.cfg.MinWeight, o.cfg.MaxWeight
	o.pop = make(Population, o.cfg.Population)
	for i := range o.pop {
		var w game.Weights
		for j := 0; j < game.NumFeatures-1; j++ {
			w[j] = lo + o.rng.Intn(hi-lo+1)
		}
		w[game.FeatDiskDifferential] = lo + o.rng.Intn(o.cfg.LastWeightMax-lo+1)
		o.pop[i] = NewGene(w)
	}
	o.gen = 1
}

type fixture struct {
	league, number int
	a, b           *Gene
}

// fixtures splits the population, in its current order, into consecutive
// leagues and pairs every two genes of a league once.
func (o *Optimizer) fixtures() []fixture {
	size := o.cfg.LeagueSize
	var out []fixture
	for l := 0; l*size < len(o.pop); l++ {
		league := o.pop[l*size : (l+1)*size]
		n := 0
		for i := 0; i < len(league); i++ {
			for j := i + 1; j < len(league); j++ {
				out = append(out, fixture{league: l, number: n, a: league[i], b: league[j]})
				n++
			}
		}
	}
	return out
}

// RunGeneration plays every league fixture, books the results and sorts the
// population by fitness. Games run on up to cfg.Workers goroutines; their
// results are booked afterwards in fixture order so the outcome does not
// depend on scheduling.
func (o *Optimizer) RunGeneration(ctx context.Context) error {
	fx := o.fixtures()
	results := make([]tournament.Result, len(fx))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.cfg.Workers)
	for i, f := range fx {
		i, f := i, f
		g.Go(func() error {
			res, err := o.match(gctx, f.a.Weights, f.b.Weights)
			if err != nil {
				return errors.Wrapf(err, "generation %d league %d game %d", o.gen, f.league, f.number)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, f := range fx {
		record(f.a, f.b, results[i])
		m := Match{
			Generation: o.gen,
			League:     f.league,
			Number:     f.number,
			Black:      f.a.Weights,
			White:      f.b.Weights,
			Result:     results[i],
		}
		if err := o.notify(func(obs Observer) error { return obs.MatchPlayed(m) }); err != nil {
			return err
		}
	}
	return o.pop.SortByFitness()
}

// NextGeneration replaces the sorted population with its successor and
// advances the generation counter, which also lowers the mutation rate.
func (o *Optimizer) NextGeneration() {
	o.gen++
	elite := o.pop[:o.cfg.Elite]
	worst := o.pop[o.cfg.Elite:]

	next := make(Population, 0, o.cfg.Population)
	next = append(next, elite...)
	next = append(next, sample(o.rng, worst, o.cfg.WorstCarry)...)
	next = append(next, o.Crossover(elite, nil, o.cfg.EliteCrossovers)...)
	next = append(next, o.Crossover(worst, nil, o.cfg.WorstCrossovers)...)
	next = append(next, o.Crossover(elite, worst, o.cfg.MixedCrossovers)...)
	o.pop = next
}

// Run evolves a fresh population for cfg.Generations generations and returns
// the fittest gene of the last one.
func (o *Optimizer) Run(ctx context.Context) (Gene, error) {
	o.InitPopulation()
	for {
		gen, pop := o.gen, o.pop.Weights()
		if err := o.notify(func(obs Observer) error { return obs.GenerationStarted(gen, pop) }); err != nil {
			return Gene{}, err
		}
		if err := o.RunGeneration(ctx); err != nil {
			return Gene{}, err
		}
		standings := o.pop.Standings()
		if err := o.notify(func(obs Observer) error { return obs.GenerationFinished(gen, standings) }); err != nil {
			return Gene{}, err
		}
		if o.gen >= o.cfg.Generations {
			break
		}
		o.NextGeneration()
	}

	best := *o.pop[0]
	if err := o.notify(func(obs Observer) error { return obs.Finished(best.Standing()) }); err != nil {
		return best, err
	}
	return best, nil
}

func (o *Optimizer) notify(fn func(Observer) error) error {
	for _, obs := range o.observers {
		if err := fn(obs); err != nil {
			return err
		}
	}
	return nil
}
