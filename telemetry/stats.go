package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for one telemetry window.
type WindowStats struct {
	Tick    int64   `csv:"tick"`
	SimTime float64 `csv:"sim_time"`

	// Population counts at window end
	Creatures     int `csv:"creatures"`
	Herbivores    int `csv:"herbivores"`
	Carnivores    int `csv:"carnivores"`
	Plants        int `csv:"plants"`
	LivingSpecies int `csv:"living_species"`

	// Events during window
	Births            int `csv:"births"`
	DeathsStarvation  int `csv:"deaths_starvation"`
	DeathsOldAge      int `csv:"deaths_old_age"`
	DeathsDehydration int `csv:"deaths_dehydration"`
	DeathsPredation   int `csv:"deaths_predation"`

	// Energy fraction distribution (sampled at window end)
	EnergyMean float64 `csv:"energy_mean"`
	EnergyStd  float64 `csv:"energy_std"`
	EnergyP10  float64 `csv:"energy_p10"`
	EnergyP50  float64 `csv:"energy_p50"`
	EnergyP90  float64 `csv:"energy_p90"`
}

// ComputeEnergyStats calculates mean, standard deviation, and
// percentiles of the given values.
func ComputeEnergyStats(values []float64) (mean, std, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)
	if n > 1 {
		std = stat.StdDev(values, nil)
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)

	return mean, std, p10, p50, p90
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"tick", s.Tick,
		"sim_time", s.SimTime,
		"creatures", s.Creatures,
		"herbivores", s.Herbivores,
		"carnivores", s.Carnivores,
		"plants", s.Plants,
		"living_species", s.LivingSpecies,
		"births", s.Births,
		"deaths_starvation", s.DeathsStarvation,
		"deaths_old_age", s.DeathsOldAge,
		"deaths_dehydration", s.DeathsDehydration,
		"deaths_predation", s.DeathsPredation,
		"energy_mean", s.EnergyMean,
		"energy_std", s.EnergyStd,
		"energy_p10", s.EnergyP10,
		"energy_p50", s.EnergyP50,
		"energy_p90", s.EnergyP90,
	)
}
