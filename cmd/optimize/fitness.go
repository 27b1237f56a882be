package main

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/biome/config"
	"github.com/pthm-cable/biome/rng"
	"github.com/pthm-cable/biome/telemetry"
	"github.com/pthm-cable/biome/world"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int64
	seeds       []string
	baseConfig  *config.Config
	statsWindow float64
	logger      *slog.Logger

	mu          sync.Mutex
	lastQuality float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int64, seeds []string, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		statsWindow: 10.0, // 10 seconds per window
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// Minimum viable population: if either trophic level stays below this for
// extinctionGraceSec, it counts as functionally extinct.
const (
	minViablePop       = 3
	extinctionGraceSec = 30.0
	warmupSec          = 5.0
)

// runResult holds the results from a single simulation run.
type runResult struct {
	survivalTicks int64                   // ticks before functional extinction (or maxTicks if survived)
	windowStats   []telemetry.WindowStats // collected each telemetry window
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	fitness float64
	quality float64
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is negative survival ticks: longer survival = lower (better) fitness.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)

	// Worlds share nothing, so seeds run in parallel
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s string) {
			defer wg.Done()
			result := fe.runSimulation(cfg.Clone(), s)
			quality := computeQuality(result.windowStats, cfg)
			results[idx] = seedResult{
				fitness: computeFitness(result.survivalTicks, quality),
				quality: quality,
			}
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalQuality float64
	for _, r := range results {
		totalFitness += r.fitness
		totalQuality += r.quality
	}
	n := float64(len(fe.seeds))

	fe.mu.Lock()
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return totalFitness / n
}

// runSimulation executes a single headless simulation run.
// Runs until functional extinction or maxTicks, whichever comes first.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed string) *runResult {
	result := &runResult{}

	monitor := telemetry.NewMonitor(telemetry.MonitorOptions{
		WindowSec: fe.statsWindow,
		DT:        cfg.Physics.DT,
		Logger:    fe.logger,
		OnWindow: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
		},
	})
	w := world.NewWithOptions(rng.New(seed), monitor.WorldOptions(world.Options{
		Config: cfg,
		Logger: fe.logger,
	}))

	tracker := newExtinctionTracker(cfg.Physics.DT)
	for w.Tick() < fe.maxTicks {
		w.Step(cfg.Physics.DT)
		monitor.AfterStep(w)

		c := w.Counts()
		if tracker.extinct(w.Tick(), c.Agents, c.Predators) {
			result.survivalTicks = w.Tick()
			return result
		}
	}

	// Survived the full run
	result.survivalTicks = fe.maxTicks
	return result
}

// extinctionTracker detects hard and functional extinction of agents or
// predators after a warmup period.
type extinctionTracker struct {
	warmupTicks  int64
	graceTicks   int64
	agentsBelow  int64
	predatorsLow int64
}

func newExtinctionTracker(dt float64) *extinctionTracker {
	return &extinctionTracker{
		warmupTicks: int64(math.Round(warmupSec / dt)),
		graceTicks:  int64(math.Round(extinctionGraceSec / dt)),
	}
}

// extinct records one tick of counts and reports whether the run is over.
func (t *extinctionTracker) extinct(tick int64, agents, predators int) bool {
	if tick < t.warmupTicks {
		return false
	}
	// Hard extinction: either level completely gone
	if agents == 0 || predators == 0 {
		return true
	}

	if agents < minViablePop {
		t.agentsBelow++
	} else {
		t.agentsBelow = 0
	}
	if predators < minViablePop {
		t.predatorsLow++
	} else {
		t.predatorsLow = 0
	}
	return t.agentsBelow >= t.graceTicks || t.predatorsLow >= t.graceTicks
}

// computeFitness calculates the scalar fitness (lower = better).
// Formula: -(survivalTicks × (1.0 + 0.2 × quality))
// Survival dominates; quality adds up to 20% bonus to differentiate
// configs with similar survival.
func computeFitness(survivalTicks int64, quality float64) float64 {
	return -(float64(survivalTicks) * (1.0 + 0.2*quality))
}

// Quality component weights.
const (
	qualityWeightRatio     = 0.30
	qualityWeightStability = 0.25
	qualityWeightEnergy    = 0.25
	qualityWeightHunting   = 0.20

	qualityWarmupWindows = 3 // skip first N windows (warmup)
	qualityMinPop        = 3 // exclude windows where either level < this
	targetRatio          = 8 // agents per predator
)

// computeQuality computes ecosystem quality ∈ [0, 1] from window stats.
func computeQuality(windows []telemetry.WindowStats, cfg *config.Config) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}
	valid := windows[qualityWarmupWindows:]

	var ratioSum, energySum, huntSum float64
	var count int
	agentCounts := make([]float64, 0, len(valid))
	predCounts := make([]float64, 0, len(valid))

	for _, w := range valid {
		if w.Agents < qualityMinPop || w.Predators < qualityMinPop {
			continue
		}
		count++
		agentCounts = append(agentCounts, float64(w.Agents))
		predCounts = append(predCounts, float64(w.Predators))

		// 1. Population ratio score
		logErr := math.Log(float64(w.Agents) / float64(w.Predators) / targetRatio)
		ratioSum += math.Exp(-logErr * logErr)

		// 3. Energy health: median energy near half of max
		agentH := math.Exp(-math.Pow((w.AgentEnergyP50/cfg.Agent.MaxEnergy-0.5)/0.25, 2))
		predH := math.Exp(-math.Pow((w.PredatorEnergyP50/cfg.Predator.MaxEnergy-0.5)/0.25, 2))
		energySum += (agentH + predH) / 2.0

		// 4. Hunting activity: kills per predator per window
		killsPerPred := float64(w.PredatorKills) / float64(w.Predators)
		huntSum += 1.0 - math.Exp(-killsPerPred)
	}

	// No valid windows → zero quality
	if count == 0 {
		return 0
	}
	n := float64(count)

	// 2. Population stability (CV across all valid windows)
	stabilityScore := 0.0
	if len(agentCounts) >= 2 {
		cvAgents := cv(agentCounts)
		cvPred := cv(predCounts)
		stabilityScore = math.Exp(-(cvAgents*cvAgents + cvPred*cvPred))
	}

	quality := qualityWeightRatio*ratioSum/n +
		qualityWeightStability*stabilityScore +
		qualityWeightEnergy*energySum/n +
		qualityWeightHunting*huntSum/n

	return min(1, max(0, quality))
}

// cv computes the coefficient of variation (std/mean) for a slice of values.
func cv(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean, std := stat.PopMeanStdDev(values, nil)
	if mean == 0 {
		return 0
	}
	return std / mean
}

// seedNames returns n evaluation seeds.
func seedNames(n int) []string {
	seeds := make([]string, n)
	for i := range seeds {
		seeds[i] = fmt.Sprintf("opt-%d", i*1000+42)
	}
	return seeds
}
