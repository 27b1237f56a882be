package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population counts at window end
	Agents      int `csv:"agents"`
	Predators   int `csv:"predators"`
	Apex        int `csv:"apex"`
	Plants      int `csv:"plants"`
	Pods        int `csv:"pods"`
	ForceFields int `csv:"force_fields"`

	// Events during window
	AgentBirths    int `csv:"agent_births"`
	PredatorBirths int `csv:"predator_births"`
	ApexBirths     int `csv:"apex_births"`
	AgentDeaths    int `csv:"agent_deaths"`
	PredatorDeaths int `csv:"predator_deaths"`
	ApexDeaths     int `csv:"apex_deaths"`

	// Feeding and hunting
	PredatorKills int     `csv:"predator_kills"`
	ApexKills     int     `csv:"apex_kills"`
	Bites         int     `csv:"bites"`
	BiteAmount    float64 `csv:"bite_amount"`

	// Flora
	PodSeeds      int `csv:"pod_seeds"`
	Seedlings     int `csv:"seedlings"`
	Regrowths     int `csv:"regrowths"`
	RegimeChanges int `csv:"regime_changes"`

	// Energy distribution (sampled at window end)
	AgentEnergyMean float64 `csv:"agent_energy_mean"`
	AgentEnergyP10  float64 `csv:"agent_energy_p10"`
	AgentEnergyP50  float64 `csv:"agent_energy_p50"`
	AgentEnergyP90  float64 `csv:"agent_energy_p90"`

	PredatorEnergyMean float64 `csv:"predator_energy_mean"`
	PredatorEnergyP10  float64 `csv:"predator_energy_p10"`
	PredatorEnergyP50  float64 `csv:"predator_energy_p50"`
	PredatorEnergyP90  float64 `csv:"predator_energy_p90"`

	ApexEnergyMean float64 `csv:"apex_energy_mean"`
	ApexEnergyP10  float64 `csv:"apex_energy_p10"`
	ApexEnergyP50  float64 `csv:"apex_energy_p50"`
	ApexEnergyP90  float64 `csv:"apex_energy_p90"`

	// Food and climate
	ResourceMean float64 `csv:"resource_mean"`
	ResourceStd  float64 `csv:"resource_std"`
	Storminess   float64 `csv:"storminess"`
	Fertility    float64 `csv:"fertility"`
	Metabolism   float64 `csv:"metabolism"`
	Regime       string  `csv:"regime"`
}

// Percentile returns the p-th empirical quantile of a sorted slice.
// p is clamped to [0, 1]. Returns 0 if the slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// ComputeEnergyStats calculates mean and percentiles from energy values.
// values is not modified.
func ComputeEnergyStats(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)
	return mean, p10, p50, p90
}

// ComputeResourceStats returns the mean and population standard deviation
// of resource amounts.
func ComputeResourceStats(amounts []float64) (mean, std float64) {
	if len(amounts) == 0 {
		return 0, 0
	}
	return stat.PopMeanStdDev(amounts, nil)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartTick),
		slog.Int64("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("agents", s.Agents),
		slog.Int("predators", s.Predators),
		slog.Int("apex", s.Apex),
		slog.Int("plants", s.Plants),
		slog.Int("pods", s.Pods),
		slog.Int("force_fields", s.ForceFields),
		slog.Int("agent_births", s.AgentBirths),
		slog.Int("predator_births", s.PredatorBirths),
		slog.Int("apex_births", s.ApexBirths),
		slog.Int("agent_deaths", s.AgentDeaths),
		slog.Int("predator_deaths", s.PredatorDeaths),
		slog.Int("apex_deaths", s.ApexDeaths),
		slog.Int("predator_kills", s.PredatorKills),
		slog.Int("apex_kills", s.ApexKills),
		slog.Int("bites", s.Bites),
		slog.Float64("bite_amount", s.BiteAmount),
		slog.Int("pod_seeds", s.PodSeeds),
		slog.Int("seedlings", s.Seedlings),
		slog.Int("regrowths", s.Regrowths),
		slog.Int("regime_changes", s.RegimeChanges),
		slog.Float64("agent_energy_mean", s.AgentEnergyMean),
		slog.Float64("agent_energy_p10", s.AgentEnergyP10),
		slog.Float64("agent_energy_p50", s.AgentEnergyP50),
		slog.Float64("agent_energy_p90", s.AgentEnergyP90),
		slog.Float64("predator_energy_mean", s.PredatorEnergyMean),
		slog.Float64("predator_energy_p10", s.PredatorEnergyP10),
		slog.Float64("predator_energy_p50", s.PredatorEnergyP50),
		slog.Float64("predator_energy_p90", s.PredatorEnergyP90),
		slog.Float64("apex_energy_mean", s.ApexEnergyMean),
		slog.Float64("apex_energy_p10", s.ApexEnergyP10),
		slog.Float64("apex_energy_p50", s.ApexEnergyP50),
		slog.Float64("apex_energy_p90", s.ApexEnergyP90),
		slog.Float64("resource_mean", s.ResourceMean),
		slog.Float64("resource_std", s.ResourceStd),
		slog.Float64("storminess", s.Storminess),
		slog.Float64("fertility", s.Fertility),
		slog.Float64("metabolism", s.Metabolism),
		slog.String("regime", s.Regime),
	)
}

// LogStats logs the headline numbers of the window.
func (s WindowStats) LogStats(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"agents", s.Agents,
		"predators", s.Predators,
		"apex", s.Apex,
		"plants", s.Plants,
		"pods", s.Pods,
		"agent_births", s.AgentBirths,
		"agent_deaths", s.AgentDeaths,
		"predator_births", s.PredatorBirths,
		"predator_deaths", s.PredatorDeaths,
		"predator_kills", s.PredatorKills,
		"apex_kills", s.ApexKills,
		"bites", s.Bites,
		"pod_seeds", s.PodSeeds,
		"regrowths", s.Regrowths,
		"agent_energy_mean", s.AgentEnergyMean,
		"predator_energy_mean", s.PredatorEnergyMean,
		"resource_mean", s.ResourceMean,
		"storminess", s.Storminess,
		"regime", s.Regime,
	)
}
