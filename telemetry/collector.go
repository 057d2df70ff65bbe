// Package telemetry accumulates simulation events into fixed windows
// and writes them out as CSV for offline analysis.
package telemetry

// DeathCause labels why a creature died, for per-window breakdowns.
type DeathCause uint8

const (
	DeathStarvation DeathCause = iota
	DeathOldAge
	DeathDehydration
	DeathPredation

	deathCauseCount
)

// String returns the cause name for logs and CSV export.
func (d DeathCause) String() string {
	switch d {
	case DeathStarvation:
		return "starvation"
	case DeathOldAge:
		return "old_age"
	case DeathDehydration:
		return "dehydration"
	case DeathPredation:
		return "predation"
	}
	return "unknown"
}

// Collector counts events within a sliding time window. A nil Collector
// is valid and drops everything, so the world never has to guard its
// recording calls.
type Collector struct {
	windowSec float64
	elapsed   float64

	births int
	deaths [deathCauseCount]int
}

// NewCollector creates a collector that flushes every windowSec
// simulation seconds.
func NewCollector(windowSec float64) *Collector {
	if windowSec <= 0 {
		windowSec = 1
	}
	return &Collector{windowSec: windowSec}
}

// RecordBirth counts one birth in the current window.
func (c *Collector) RecordBirth() {
	if c == nil {
		return
	}
	c.births++
}

// RecordDeath counts one death in the current window.
func (c *Collector) RecordDeath(cause DeathCause) {
	if c == nil {
		return
	}
	c.deaths[cause]++
}

// Advance moves simulation time forward by dt seconds.
func (c *Collector) Advance(dt float64) {
	if c == nil {
		return
	}
	c.elapsed += dt
}

// ShouldFlush reports whether a full window has elapsed.
func (c *Collector) ShouldFlush() bool {
	if c == nil {
		return false
	}
	return c.elapsed >= c.windowSec
}

// Population is the point-in-time census supplied at flush time. The
// collector only counts events; the caller owns the population.
type Population struct {
	Creatures     int
	Herbivores    int
	Carnivores    int
	Plants        int
	LivingSpecies int
}

// Flush produces a WindowStats from the window's counters plus the
// caller-supplied census, then resets for the next window. energies
// holds the energy fraction of every living creature.
func (c *Collector) Flush(simTime float64, tick int64, pop Population, energies []float64) WindowStats {
	if c == nil {
		return WindowStats{}
	}
	stats := WindowStats{
		Tick:    tick,
		SimTime: simTime,

		Creatures:     pop.Creatures,
		Herbivores:    pop.Herbivores,
		Carnivores:    pop.Carnivores,
		Plants:        pop.Plants,
		LivingSpecies: pop.LivingSpecies,

		Births:            c.births,
		DeathsStarvation:  c.deaths[DeathStarvation],
		DeathsOldAge:      c.deaths[DeathOldAge],
		DeathsDehydration: c.deaths[DeathDehydration],
		DeathsPredation:   c.deaths[DeathPredation],
	}
	stats.EnergyMean, stats.EnergyStd, stats.EnergyP10, stats.EnergyP50, stats.EnergyP90 = ComputeEnergyStats(energies)

	c.elapsed = 0
	c.births = 0
	for i := range c.deaths {
		c.deaths[i] = 0
	}
	return stats
}
