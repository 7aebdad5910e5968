package config

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"othello_go/internal/game"
)

type Config struct {
	Search    Search    `json:"search"`
	Evolution Evolution `json:"evolution"`
	Monitor   Monitor   `json:"monitor"`
}

type Search struct {
	MaxDepth     int  `json:"max_depth"`
	Width        int  `json:"width"`
	FollowPasses bool `json:"follow_passes"`
	Workers      int  `json:"workers"`
}

type Evolution struct {
	Population      int `json:"population"`
	LeagueSize      int `json:"league_size"`
	Elite           int `json:"elite"`
	WorstCarry      int `json:"worst_carry"`
	EliteCrossovers int `json:"elite_crossovers"`
	WorstCrossovers int `json:"worst_crossovers"`
	MixedCrossovers int `json:"mixed_crossovers"`
	Generations     int `json:"generations"`

	// MutationProbability is divided by the generation number.
	MutationProbability float64 `json:"mutation_probability"`
	// MutationBias bounds the perturbation to [-MutationBias, MutationBias).
	MutationBias int `json:"mutation_bias"`

	MinWeight int `json:"min_weight"`
	MaxWeight int `json:"max_weight"`
	// LastWeightMax caps the disk-differential weight in the first generation only.
	LastWeightMax int `json:"last_weight_max"`

	// Seed 0 draws a random seed at startup.
	Seed    int64  `json:"seed"`
	Workers int    `json:"workers"`
	LogDir  string `json:"log_dir"`
}

type Monitor struct {
	// Addr is the listen address of the progress server; empty disables it.
	Addr string `json:"addr"`
}

func DefaultConfig() Config {
	return Config{
		Search: Search{
			MaxDepth: 4,
			Width:    3,
			Workers:  1,
		},
		Evolution: Evolution{
			Population:      25,
			LeagueSize:      5,
			Elite:           6,
			WorstCarry:      2,
			EliteCrossovers: 9,
			WorstCrossovers: 1,
			MixedCrossovers: 7,
			Generations:     3,

			MutationProbability: 0.2,
			MutationBias:        50,

			MinWeight:     1,
			MaxWeight:     200,
			LastWeightMax: 11,

			Workers: 1,
			LogDir:  ".",
		},
	}
}

// SearchConfig converts to the engine's search parameters.
func (s Search) SearchConfig() game.SearchConfig {
	return game.SearchConfig{
		MaxDepth:     s.MaxDepth,
		Width:        s.Width,
		FollowPasses: s.FollowPasses,
		Workers:      s.Workers,
	}
}

// Load overlays the JSON file at path on DefaultConfig. An empty path returns
// the defaults. The result is validated.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, cfg.Validate()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "read config %s", path)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, cfg.Validate()
}

// Validate rejects configurations that would fail mid-run.
func (c Config) Validate() error {
	if err := c.Search.Validate(); err != nil {
		return errors.WithMessage(err, "search")
	}
	if err := c.Evolution.Validate(); err != nil {
		return errors.WithMessage(err, "evolution")
	}
	return nil
}

func (s Search) Validate() error {
	switch {
	case s.MaxDepth < 1:
		return errors.Errorf("max_depth must be >= 1, got %d", s.MaxDepth)
	case s.Width < 0:
		return errors.Errorf("width must be >= 0, got %d", s.Width)
	case s.Workers < 1:
		return errors.Errorf("workers must be >= 1, got %d", s.Workers)
	}
	return nil
}

func (e Evolution) Validate() error {
	if e.LeagueSize < 2 {
		return errors.Errorf("league_size must be >= 2, got %d", e.LeagueSize)
	}
	if e.Population < e.LeagueSize || e.Population%e.LeagueSize != 0 {
		return errors.Errorf("population %d is not a positive multiple of league_size %d", e.Population, e.LeagueSize)
	}
	for name, v := range map[string]int{
		"elite": e.Elite, "worst_carry": e.WorstCarry, "elite_crossovers": e.EliteCrossovers,
		"worst_crossovers": e.WorstCrossovers, "mixed_crossovers": e.MixedCrossovers,
	} {
		if v < 0 {
			return errors.Errorf("%s must be >= 0, got %d", name, v)
		}
	}
	if sum := e.Elite + e.WorstCarry + e.EliteCrossovers + e.WorstCrossovers + e.MixedCrossovers; sum != e.Population {
		return errors.Errorf("selection split sums to %d, want population %d", sum, e.Population)
	}
	worst := e.Population - e.Elite
	if e.EliteCrossovers > 0 && e.Elite < 2 {
		return errors.Errorf("elite crossover needs at least 2 elite genes, got %d", e.Elite)
	}
	if e.WorstCrossovers > 0 && worst < 2 {
		return errors.Errorf("worst crossover needs at least 2 non-elite genes, got %d", worst)
	}
	if e.MixedCrossovers > 0 && (e.Elite < 1 || worst < 1) {
		return errors.New("mixed crossover needs both elite and non-elite genes")
	}
	if e.WorstCarry > worst {
		return errors.Errorf("worst_carry %d exceeds the %d non-elite genes", e.WorstCarry, worst)
	}
	if e.Generations < 1 {
		return errors.Errorf("generations must be >= 1, got %d", e.Generations)
	}
	if e.MutationProbability < 0 || e.MutationProbability > 1 {
		return errors.Errorf("mutation_probability must be in [0,1], got %v", e.MutationProbability)
	}
	if e.MutationBias < 1 {
		return errors.Errorf("mutation_bias must be >= 1, got %d", e.MutationBias)
	}
	if e.MinWeight > e.MaxWeight {
		return errors.Errorf("min_weight %d > max_weight %d", e.MinWeight, e.MaxWeight)
	}
	if e.LastWeightMax < e.MinWeight || e.LastWeightMax > e.MaxWeight {
		return errors.Errorf("last_weight_max %d outside [%d,%d]", e.LastWeightMax, e.MinWeight, e.MaxWeight)
	}
	if e.Workers < 1 {
		return errors.Errorf("workers must be >= 1, got %d", e.Workers)
	}
	return nil
}
