package main

import (
	"fmt"
	"log/slog"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/biome/config"
	"github.com/pthm-cable/biome/rng"
	"github.com/pthm-cable/biome/world"
)

// PatchParams holds the tunable plant placement parameters.
type PatchParams struct {
	Patchiness float64
	PatchScale float64
	Count      int
	SeedIndex  int
}

// DefaultParams reads the starting values from cfg.
func DefaultParams(cfg *config.Config) PatchParams {
	return PatchParams{
		Patchiness: cfg.Population.Patchiness,
		PatchScale: cfg.Population.PatchScale,
		Count:      cfg.Population.Plants,
	}
}

// Seed returns the world seed for the current index.
func (p PatchParams) Seed() string {
	return fmt.Sprintf("patch-%d", p.SeedIndex)
}

// Plant is a placed plant reduced to what the preview draws.
type Plant struct {
	X, Y, Amount float64
}

// Plants builds a plants-only world from base with p applied and returns
// the placed plants.
func (p PatchParams) Plants(base *config.Config, logger *slog.Logger) []Plant {
	cfg := base.Clone()
	cfg.Population = config.PopulationConfig{
		Plants:     p.Count,
		Patchiness: p.Patchiness,
		PatchScale: p.PatchScale,
	}
	w := world.NewWithOptions(rng.New(p.Seed()), world.Options{Config: cfg, Logger: logger})

	var plants []Plant
	for _, e := range w.Snapshot().Entities {
		if e.Resource == nil || e.Position == nil {
			continue
		}
		plants = append(plants, Plant{X: e.Position.X, Y: e.Position.Y, Amount: e.Resource.Amount})
	}
	return plants
}

// ClusterStats summarises how plants spread over a grid of cells.
type ClusterStats struct {
	Mean  float64 // plants per cell
	CV    float64 // coefficient of variation of the per-cell counts
	Empty int     // cells without plants
}

// Clustering bins plants into an n×n grid over a width×height world.
// Uniform placement gives a low CV; patchy placement a high one.
func Clustering(plants []Plant, width, height float64, n int) ClusterStats {
	if n <= 0 || width <= 0 || height <= 0 {
		return ClusterStats{}
	}
	counts := make([]float64, n*n)
	for _, p := range plants {
		cx := min(n-1, max(0, int(p.X/width*float64(n))))
		cy := min(n-1, max(0, int(p.Y/height*float64(n))))
		counts[cy*n+cx]++
	}

	var s ClusterStats
	for _, c := range counts {
		if c == 0 {
			s.Empty++
		}
	}
	mean, std := stat.PopMeanStdDev(counts, nil)
	s.Mean = mean
	if mean > 0 {
		s.CV = std / mean
	}
	return s
}

// YAMLLines returns the population overrides as config lines.
func (p PatchParams) YAMLLines() []string {
	return []string{
		"population:",
		fmt.Sprintf("  plants: %d", p.Count),
		fmt.Sprintf("  patchiness: %.2f", p.Patchiness),
		fmt.Sprintf("  patch_scale: %.4f", p.PatchScale),
	}
}

// YAML returns the population overrides as a config snippet.
func (p PatchParams) YAML() string {
	return strings.Join(p.YAMLLines(), "\n")
}
