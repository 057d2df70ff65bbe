package telemetry

import (
	"math"
	"testing"
)

func TestComputeEnergyStats(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	mean, std, p10, p50, p90 := ComputeEnergyStats(values)

	if math.Abs(mean-5.5) > 0.001 {
		t.Errorf("mean = %v, want 5.5", mean)
	}

	// Sample standard deviation of 1..10
	if math.Abs(std-3.0277) > 0.001 {
		t.Errorf("std = %v, want ~3.0277", std)
	}

	// Empirical quantiles land on observed values
	if p10 != 1 {
		t.Errorf("p10 = %v, want 1", p10)
	}
	if p50 != 5 {
		t.Errorf("p50 = %v, want 5", p50)
	}
	if p90 != 9 {
		t.Errorf("p90 = %v, want 9", p90)
	}
}

func TestComputeEnergyStatsEmpty(t *testing.T) {
	mean, std, p10, p50, p90 := ComputeEnergyStats([]float64{})

	if mean != 0 || std != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty slice should return all zeros")
	}
}

func TestComputeEnergyStatsSingle(t *testing.T) {
	mean, std, _, p50, _ := ComputeEnergyStats([]float64{0.7})

	if mean != 0.7 {
		t.Errorf("mean = %v, want 0.7", mean)
	}
	if std != 0 {
		t.Errorf("std = %v, want 0 for single sample", std)
	}
	if p50 != 0.7 {
		t.Errorf("p50 = %v, want 0.7", p50)
	}
}

func TestCollectorWindowLifecycle(t *testing.T) {
	c := NewCollector(10)

	c.RecordBirth()
	c.RecordBirth()
	c.RecordDeath(DeathStarvation)
	c.RecordDeath(DeathPredation)
	c.RecordDeath(DeathPredation)

	c.Advance(5)
	if c.ShouldFlush() {
		t.Error("window should not flush at half duration")
	}
	c.Advance(5)
	if !c.ShouldFlush() {
		t.Error("window should flush after full duration elapsed")
	}

	pop := Population{Creatures: 42, Herbivores: 40, Carnivores: 2, Plants: 300, LivingSpecies: 3}
	stats := c.Flush(10.0, 600, pop, []float64{0.5, 0.5})

	if stats.Births != 2 {
		t.Errorf("births = %d, want 2", stats.Births)
	}
	if stats.DeathsStarvation != 1 || stats.DeathsPredation != 2 {
		t.Errorf("deaths = (starvation %d, predation %d), want (1, 2)",
			stats.DeathsStarvation, stats.DeathsPredation)
	}
	if stats.Creatures != 42 || stats.Plants != 300 || stats.LivingSpecies != 3 {
		t.Errorf("population snapshot = (%d, %d, %d), want (42, 300, 3)",
			stats.Creatures, stats.Plants, stats.LivingSpecies)
	}
	if stats.Herbivores != 40 || stats.Carnivores != 2 {
		t.Errorf("diet split = (%d, %d), want (40, 2)", stats.Herbivores, stats.Carnivores)
	}
	if stats.EnergyMean != 0.5 {
		t.Errorf("energy mean = %v, want 0.5", stats.EnergyMean)
	}

	// Flush resets the window
	if c.ShouldFlush() {
		t.Error("collector should not be ready to flush right after Flush")
	}
	next := c.Flush(10.0, 600, Population{}, nil)
	if next.Births != 0 || next.DeathsPredation != 0 {
		t.Error("counters should reset between windows")
	}
}

func TestNilCollectorIsSafe(t *testing.T) {
	var c *Collector

	c.RecordBirth()
	c.RecordDeath(DeathOldAge)
	c.Advance(100)

	if c.ShouldFlush() {
		t.Error("nil collector should never request a flush")
	}
}
