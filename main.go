package main

import (
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/Dev2150/prismata/config"
	"github.com/Dev2150/prismata/systems"
	"github.com/Dev2150/prismata/telemetry"
	"github.com/Dev2150/prismata/world"
)

// tickDt is the fixed simulation step in seconds.
const tickDt float32 = 1.0 / 60.0

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	savePath := flag.String("save", "", "Write world state here on exit")
	loadPath := flag.String("load", "", "Resume from a saved world state")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")

	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(rngSeed))

	statsWindowSec := cfg.Telemetry.StatsWindow
	if *statsWindow > 0 {
		statsWindowSec = *statsWindow
	}

	terrain := systems.NewHeightfield(rngSeed, cfg.Derived.WorldW32, cfg.Derived.WorldD32, float32(cfg.World.SeaLevel))
	w := world.New(cfg, terrain, rng)

	collector := telemetry.NewCollector(statsWindowSec)
	w.SetCollector(collector)

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to open output directory", "error", err)
		os.Exit(1)
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	if *loadPath != "" {
		if err := w.Load(*loadPath); err != nil {
			slog.Error("failed to load save", "path", *loadPath, "error", err)
			os.Exit(1)
		}
		slog.Info("resumed from save", "path", *loadPath, "tick", w.TickCount, "creatures", w.LivingCreatures())
	} else {
		w.Populate()
	}

	slog.Info("starting simulation",
		"seed", rngSeed,
		"max_ticks", *maxTicks,
		"stats_window", statsWindowSec,
		"creatures", w.LivingCreatures(),
		"plants", w.LivingPlants(),
	)

	for {
		w.Tick(tickDt)

		if collector.ShouldFlush() {
			stats := collector.Flush(w.SimTime, w.TickCount, w.Census(), w.EnergyFractions())
			if *logStats {
				stats.LogStats()
			}
			if err := output.WriteTelemetry(stats); err != nil {
				slog.Error("failed to write telemetry", "error", err)
			}
		}

		if *maxTicks > 0 && int(w.TickCount) >= *maxTicks {
			slog.Info("max ticks reached", "tick", w.TickCount)
			break
		}
		if w.LivingCreatures() == 0 {
			slog.Info("population extinct", "tick", w.TickCount, "sim_time", w.SimTime)
			break
		}
	}

	w.LogSummary()
	w.LogTopSpecies(5)

	if err := output.WriteCreatures(w.CreatureRows()); err != nil {
		slog.Error("failed to write creature dump", "error", err)
	}
	if err := output.WriteSpecies(w.SpeciesRows()); err != nil {
		slog.Error("failed to write species ledger", "error", err)
	}

	if *savePath != "" {
		if err := w.Save(*savePath); err != nil {
			slog.Error("failed to save world", "path", *savePath, "error", err)
			os.Exit(1)
		}
		slog.Info("world saved", "path", *savePath, "tick", w.TickCount)
	}
}
