package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/biome/config"
	"github.com/pthm-cable/biome/telemetry"
)

func TestParamVectorDefaultsMatchConfig(t *testing.T) {
	pv := NewParamVector()
	got := pv.ExtractFromConfig(config.Default())
	for i, spec := range pv.Specs {
		if math.Abs(got[i]-spec.Default) > 1e-9 {
			t.Errorf("%s: config default %v, spec default %v", spec.Name, got[i], spec.Default)
		}
		if spec.Default < spec.Min || spec.Default > spec.Max {
			t.Errorf("%s: default %v outside [%v, %v]", spec.Name, spec.Default, spec.Min, spec.Max)
		}
	}
}

func TestNormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector()
	raw := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-9 {
			t.Errorf("%s: %v -> %v", pv.Specs[i].Name, raw[i], back[i])
		}
	}
}

func TestApplyToConfigClamps(t *testing.T) {
	pv := NewParamVector()
	values := make([]float64, pv.Dim())
	for i, spec := range pv.Specs {
		values[i] = spec.Max + 10
	}

	cfg := config.Default()
	pv.ApplyToConfig(cfg, values)
	got := pv.ExtractFromConfig(cfg)
	for i, spec := range pv.Specs {
		if got[i] != spec.Max {
			t.Errorf("%s = %v, want clamp to %v", spec.Name, got[i], spec.Max)
		}
	}
	if cfg.Predator.RestMax < cfg.Predator.RestMin {
		t.Errorf("rest window inverted: [%v, %v]", cfg.Predator.RestMin, cfg.Predator.RestMax)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("applied config invalid: %v", err)
	}
}

func TestCV(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"constant", []float64{5, 5, 5}, 0},
		{"zero mean", []float64{0, 0}, 0},
		{"spread", []float64{2, 4, 4, 4, 5, 5, 7, 9}, 2.0 / 5.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cv(tt.values); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("cv = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtinctionTracker(t *testing.T) {
	dt := 1.0
	tests := []struct {
		name      string
		agents    int
		predators int
		ticks     int64 // ticks after warmup
		want      bool
	}{
		{"healthy", 40, 6, 100, false},
		{"no predators", 40, 0, 1, true},
		{"no agents", 0, 6, 1, true},
		{"few predators within grace", 40, 2, int64(extinctionGraceSec) - 1, false},
		{"few predators past grace", 40, 2, int64(extinctionGraceSec), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := newExtinctionTracker(dt)
			// Warmup ignores everything
			if tr.extinct(0, 0, 0) {
				t.Fatal("extinct during warmup")
			}
			var got bool
			start := tr.warmupTicks
			for i := int64(0); i < tt.ticks && !got; i++ {
				got = tr.extinct(start+i, tt.agents, tt.predators)
			}
			if got != tt.want {
				t.Errorf("extinct = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComputeFitness(t *testing.T) {
	if got := computeFitness(1000, 0); got != -1000 {
		t.Errorf("fitness(1000, 0) = %v", got)
	}
	if got := computeFitness(1000, 1); math.Abs(got+1200) > 1e-9 {
		t.Errorf("fitness(1000, 1) = %v, want -1200", got)
	}
	// Longer survival always wins over quality
	if computeFitness(2000, 0) >= computeFitness(1000, 1) {
		t.Error("survival should dominate quality")
	}
}

func TestComputeQuality(t *testing.T) {
	cfg := config.Default()
	ideal := telemetry.WindowStats{
		Agents:            48,
		Predators:         6,
		AgentEnergyP50:    cfg.Agent.MaxEnergy / 2,
		PredatorEnergyP50: cfg.Predator.MaxEnergy / 2,
		PredatorKills:     30,
	}

	windows := func(n int, w telemetry.WindowStats) []telemetry.WindowStats {
		out := make([]telemetry.WindowStats, n)
		for i := range out {
			out[i] = w
		}
		return out
	}

	if got := computeQuality(windows(qualityWarmupWindows, ideal), cfg); got != 0 {
		t.Errorf("warmup-only quality = %v, want 0", got)
	}

	sparse := ideal
	sparse.Predators = 1
	if got := computeQuality(windows(10, sparse), cfg); got != 0 {
		t.Errorf("quality without viable predators = %v, want 0", got)
	}

	got := computeQuality(windows(10, ideal), cfg)
	if got < 0.95 || got > 1 {
		t.Errorf("ideal quality = %v, want near 1", got)
	}

	skewed := ideal
	skewed.Agents = 200
	skewed.AgentEnergyP50 = 0
	if worse := computeQuality(windows(10, skewed), cfg); worse >= got {
		t.Errorf("skewed quality %v should be below ideal %v", worse, got)
	}
}

func TestEvaluateShortRun(t *testing.T) {
	pv := NewParamVector()
	fe := NewFitnessEvaluator(pv, 50, seedNames(2), config.Default())

	fitness := fe.Evaluate(pv.DefaultVector())
	// Default worlds survive 50 ticks: warmup alone is longer
	if math.Abs(fitness+50) > 1e-9 {
		t.Errorf("fitness = %v, want -50", fitness)
	}
	if q := fe.LastQuality(); q != 0 {
		t.Errorf("quality = %v, want 0 with too few windows", q)
	}
}
