package evolve

import (
	"context"
	"math/rand"
	"os"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"

	"othello_go/internal/config"
	"othello_go/internal/game"
	"othello_go/internal/tournament"
)

func testConfig() config.Evolution {
	cfg := config.DefaultConfig().Evolution
	cfg.Seed = 17
	return cfg
}

func sum(w game.Weights) int {
	s := 0
	for _, v := range w {
		s += v
	}
	return s
}

// heavier lets the side with the larger weight sum win.
func heavier(_ context.Context, a, b game.Weights) (tournament.Result, error) {
	switch sa, sb := sum(a), sum(b); {
	case sa > sb:
		return tournament.Result{Winner: game.Black, Decided: true}, nil
	case sb > sa:
		return tournament.Result{Winner: game.White, Decided: true}, nil
	}
	return tournament.Result{}, nil
}

func TestBlend(t *testing.T) {
	a := game.Weights{100, 1, 200, 7, 50, 3, 10, 199, 2}
	b := game.Weights{1, 100, 1, 8, 50, 4, 11, 1, 11}
	cases := []struct {
		alpha float64
		want  game.Weights
	}{
		{1, a},
		{0, b},
		{0.5, game.Weights{50, 50, 100, 7, 50, 3, 10, 100, 6}},
		{0.25, game.Weights{25, 75, 50, 7, 50, 3, 10, 50, 8}},
	}
	for _, tc := range cases {
		if got := Blend(a, b, tc.alpha); got != tc.want {
			t.Fatalf("Blend(alpha=%v) = %v, want %v", tc.alpha, got, tc.want)
		}
	}
}

func TestMutateStaysInBounds(t *testing.T) {
	cfg := testConfig()
	cfg.MutationProbability = 1
	o := New(cfg, heavier)
	r := rand.New(rand.NewSource(4))
	for n := 0; n < 5000; n++ {
		var w game.Weights
		for i := range w {
			w[i] = []int{1, 2, 100, 199, 200}[r.Intn(5)]
		}
		got := o.Mutate(w)
		changed := 0
		for i := range got {
			if got[i] < cfg.MinWeight || got[i] > cfg.MaxWeight {
				t.Fatalf("component %d = %d out of bounds", i, got[i])
			}
			if got[i] != w[i] {
				changed++
			}
		}
		if changed > 1 {
			t.Fatalf("%d components mutated: %v -> %v", changed, w, got)
		}
	}
}

func TestMutationRateDecays(t *testing.T) {
	cfg := testConfig()
	cfg.MutationProbability = 0.2
	o := New(cfg, heavier)
	o.gen = 1000000
	w := game.Weights{100, 100, 100, 100, 100, 100, 100, 100, 100}
	for n := 0; n < 1000; n++ {
		if o.Mutate(w) != w {
			t.Fatalf("mutation at probability 2e-7 happened on draw %d", n)
		}
	}
}

func TestInitPopulationBounds(t *testing.T) {
	cfg := testConfig()
	o := New(cfg, heavier)
	o.InitPopulation()
	if len(o.Population()) != cfg.Population {
		t.Fatalf("population = %d", len(o.Population()))
	}
	for _, g := range o.Population() {
		for i, v := range g.Weights {
			hi := cfg.MaxWeight
			if i == game.FeatDiskDifferential {
				hi = cfg.LastWeightMax
			}
			if v < cfg.MinWeight || v > hi {
				t.Fatalf("weight %d = %d outside [%d,%d]", i, v, cfg.MinWeight, hi)
			}
		}
		if g.Games != 0 || g.WinScore != 0 {
			t.Fatalf("fresh gene has a record")
		}
	}
}

func TestFitnessUndefinedWithoutGames(t *testing.T) {
	g := NewGene(game.DefaultWeights)
	if _, err := g.Fitness(); !errors.Is(err, ErrUndefinedFitness) {
		t.Fatalf("err = %v", err)
	}
	if err := (Population{g}).SortByFitness(); !errors.Is(err, ErrUndefinedFitness) {
		t.Fatalf("sort err = %v", err)
	}
}

func TestRunGenerationSchedulesLeagues(t *testing.T) {
	cfg := testConfig()
	var calls atomic.Int64
	count := func(ctx context.Context, a, b game.Weights) (tournament.Result, error) {
		calls.Add(1)
		return heavier(ctx, a, b)
	}
	o := New(cfg, count)
	o.InitPopulation()
	if err := o.RunGeneration(context.Background()); err != nil {
		t.Fatal(err)
	}
	leagues := cfg.Population / cfg.LeagueSize
	perLeague := cfg.LeagueSize * (cfg.LeagueSize - 1) / 2
	if got := calls.Load(); got != int64(leagues*perLeague) {
		t.Fatalf("games played = %d, want %d", got, leagues*perLeague)
	}
	total := 0
	for _, g := range o.Population() {
		if g.Games != cfg.LeagueSize-1 {
			t.Fatalf("gene played %d games, want %d", g.Games, cfg.LeagueSize-1)
		}
		total += g.WinScore
	}
	if total != WinPoints*leagues*perLeague {
		t.Fatalf("points handed out = %d", total)
	}
	prev := 2.0
	for _, g := range o.Population() {
		f, err := g.Fitness()
		if err != nil {
			t.Fatal(err)
		}
		if f > prev {
			t.Fatalf("population not sorted by fitness")
		}
		prev = f
	}
}

func TestNextGenerationKeepsElite(t *testing.T) {
	cfg := testConfig()
	o := New(cfg, heavier)
	o.InitPopulation()
	if err := o.RunGeneration(context.Background()); err != nil {
		t.Fatal(err)
	}
	elite := o.Population()[:cfg.Elite].Weights()
	o.NextGeneration()
	next := o.Population()
	if len(next) != cfg.Population {
		t.Fatalf("next generation has %d genes", len(next))
	}
	for i, w := range elite {
		if next[i].Weights != w {
			t.Fatalf("elite %d changed: %v -> %v", i, w, next[i].Weights)
		}
	}
	if o.Generation() != 2 {
		t.Fatalf("generation = %d", o.Generation())
	}
	seen := map[*Gene]bool{}
	for _, g := range next {
		if seen[g] {
			t.Fatalf("gene carried twice")
		}
		seen[g] = true
	}
}

func TestParallelLeaguesMatchSequential(t *testing.T) {
	run := func(workers int) []game.Weights {
		cfg := testConfig()
		cfg.Workers = workers
		o := New(cfg, heavier)
		if _, err := o.Run(context.Background()); err != nil {
			t.Fatal(err)
		}
		return o.Population().Weights()
	}
	seq, par := run(1), run(6)
	for i := range seq {
		if seq[i] != par[i] {
			t.Fatalf("gene %d: sequential %v, parallel %v", i, seq[i], par[i])
		}
	}
}

func TestMatchErrorAbortsRun(t *testing.T) {
	boom := errors.New("boom")
	fail := func(context.Context, game.Weights, game.Weights) (tournament.Result, error) {
		return tournament.Result{}, boom
	}
	if _, err := New(testConfig(), fail).Run(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}

func TestFileHistory(t *testing.T) {
	cfg := testConfig()
	cfg.Generations = 2
	dir := t.TempDir()
	h := NewFileHistory(dir)
	best, err := New(cfg, heavier, WithObserver(h), WithObserver(LogObserver{})).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	first, err := os.ReadFile(h.Path(1))
	if err != nil {
		t.Fatal(err)
	}
	text := string(first)
	if !strings.HasPrefix(text, generationRule+"\ngeneration number 1\n") {
		t.Fatalf("unexpected header:\n%s", text)
	}
	if n := strings.Count(text, "genes fight: "); n != 50 {
		t.Fatalf("%d match-ups logged, want 50", n)
	}
	if n := strings.Count(text, "winner is: ") + strings.Count(text, "\ntie\n"); n != 50 {
		t.Fatalf("%d outcomes logged, want 50", n)
	}
	if strings.Contains(text, "OPTIMUM") {
		t.Fatalf("optimum written before the last generation")
	}

	last, err := os.ReadFile(h.Path(2))
	if err != nil {
		t.Fatal(err)
	}
	want := "OPTIMUM WEIGHT LIST\n" + best.Weights.String() + "\n"
	if !strings.HasSuffix(string(last), want) {
		t.Fatalf("last log does not end with the optimum:\n%s", last)
	}
}

func TestOneGenerationWithRealGames(t *testing.T) {
	if testing.Short() {
		t.Skip("plays 50 full games")
	}
	cfg := testConfig()
	cfg.Workers = 4
	runner := tournament.NewRunner(game.SearchConfig{MaxDepth: 1, Width: 3, Workers: 1})
	o := New(cfg, runner.Play)
	o.InitPopulation()
	if err := o.RunGeneration(context.Background()); err != nil {
		t.Fatal(err)
	}
	elite := o.Population()[:cfg.Elite].Weights()
	o.NextGeneration()
	if len(o.Population()) != cfg.Population {
		t.Fatalf("next generation has %d genes", len(o.Population()))
	}
	for i, w := range elite {
		if o.Population()[i].Weights != w {
			t.Fatalf("elite %d changed", i)
		}
	}
}
