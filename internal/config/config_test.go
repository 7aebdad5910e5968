package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"population not divisible", func(c *Config) { c.Evolution.Population = 24 }, "multiple of league_size"},
		{"split mismatch", func(c *Config) { c.Evolution.Elite = 5 }, "selection split"},
		{"tiny elite", func(c *Config) {
			c.Evolution.Elite = 1
			c.Evolution.MixedCrossovers = 12
		}, "at least 2 elite"},
		{"depth", func(c *Config) { c.Search.MaxDepth = 0 }, "max_depth"},
		{"bounds", func(c *Config) { c.Evolution.MinWeight = 300 }, "min_weight"},
		{"generations", func(c *Config) { c.Evolution.Generations = 0 }, "generations"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected an error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	body := `{"search": {"max_depth": 2}, "evolution": {"generations": 5, "seed": 9}}`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Search.MaxDepth != 2 || cfg.Search.Width != 3 {
		t.Fatalf("search = %+v", cfg.Search)
	}
	if cfg.Evolution.Generations != 5 || cfg.Evolution.Seed != 9 || cfg.Evolution.Population != 25 {
		t.Fatalf("evolution = %+v", cfg.Evolution)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	if err := os.WriteFile(path, []byte(`{"evolution": {"population": 26}}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("population 26 with league size 5 must be rejected")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("missing file must be an error")
	}
}
