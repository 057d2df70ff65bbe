package world

import "log/slog"

// LogSummary emits a one-line structured snapshot of the world state.
func (w *World) LogSummary() {
	slog.Info("world",
		"tick", w.TickCount,
		"sim_time", w.SimTime,
		"creatures", w.LivingCreatures(),
		"plants", w.LivingPlants(),
		"species_living", w.Species.Living(),
		"species_all_time", len(w.Species.Species),
	)
}

// LogTopSpecies logs the n largest living species with their counts.
func (w *World) LogTopSpecies(n int) {
	for _, sp := range w.Species.Top(n) {
		slog.Info("species",
			"id", sp.ID,
			"name", sp.Name,
			"living", sp.LivingCount,
			"all_time", sp.AllTimeCount,
		)
	}
}
