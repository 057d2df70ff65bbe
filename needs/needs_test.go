package needs

import (
	"math"
	"testing"
)

func activeRates() [DriveCount]float32 {
	var rates [DriveCount]float32
	rates[Hunger] = 0.02
	rates[Thirst] = 0.03
	rates[Sleep] = 0.01
	rates[Libido] = 0.015
	return rates
}

// ---------- Monotonic rise ----------

func TestTick_UrgencyNonDecreasingAndCapped(t *testing.T) {
	n := New(activeRates())
	dt := float32(1.0 / 60.0)

	prev := n.Urgency
	for i := 0; i < 60*120; i++ { // two simulated minutes
		n.Tick(dt)
		for d := Drive(0); d < DriveCount; d++ {
			if d == Fear {
				continue
			}
			if n.CraveRate[d] > 0 && n.Urgency[d] < prev[d] {
				t.Fatalf("drive %s decreased without Satisfy: %f -> %f", d, prev[d], n.Urgency[d])
			}
			if n.Urgency[d] > 1 {
				t.Fatalf("drive %s escaped cap: %f", d, n.Urgency[d])
			}
		}
		prev = n.Urgency
	}

	// Thirst at rate 0.03 must have hit the cap after 120s
	if n.Urgency[Thirst] != 1 {
		t.Errorf("expected thirst capped at 1.0, got %f", n.Urgency[Thirst])
	}
}

func TestTick_LatentChannelStaysFlat(t *testing.T) {
	n := New(activeRates()) // Social rate is 0
	n.Urgency[Social] = 0.4

	for i := 0; i < 600; i++ {
		n.Tick(1.0 / 60.0)
	}
	if n.Urgency[Social] != 0.4 {
		t.Errorf("latent channel should not rise, got %f", n.Urgency[Social])
	}
}

// ---------- Fear ----------

func TestFear_OverridesEverything(t *testing.T) {
	n := New(activeRates())
	n.Urgency[Hunger] = 1.0
	n.Urgency[Thirst] = 1.0
	n.Urgency[Fear] = 0.51

	if d := n.ActiveDrive(); d != Fear {
		t.Errorf("fear above threshold must win, got %s", d)
	}
}

func TestFear_BelowThresholdDefersToUrgency(t *testing.T) {
	n := New(activeRates())
	n.Urgency[Fear] = 0.5 // exactly at threshold: no override
	n.Urgency[Thirst] = 0.9

	if d := n.ActiveDrive(); d != Thirst {
		t.Errorf("expected thirst to win below fear threshold, got %s", d)
	}
}

func TestFear_DecaysWithoutStimulus(t *testing.T) {
	n := New(activeRates())
	n.Urgency[Fear] = 1.0

	for i := 0; i < 60*5; i++ {
		n.Tick(1.0 / 60.0)
	}
	if n.Urgency[Fear] != 0 {
		t.Errorf("fear should fully decay in 5s, got %f", n.Urgency[Fear])
	}
}

func TestRaiseFear_CloserThreatsRaiseFaster(t *testing.T) {
	dt := float32(1.0 / 60.0)

	near := New(activeRates())
	far := New(activeRates())
	for i := 0; i < 60; i++ {
		near.RaiseFear(0.1, 0.8, dt)
		far.RaiseFear(0.9, 0.8, dt)
	}

	if near.Urgency[Fear] <= far.Urgency[Fear] {
		t.Errorf("near threat fear (%f) should exceed far threat fear (%f)",
			near.Urgency[Fear], far.Urgency[Fear])
	}
}

func TestRaiseFear_HeldStimulusDoesNotDecayAway(t *testing.T) {
	n := New(activeRates())
	dt := float32(1.0 / 60.0)

	// A sustained close threat must push fear over the override threshold
	// even though Tick decays fear every step.
	for i := 0; i < 60*4; i++ {
		n.Tick(dt)
		n.RaiseFear(0.2, 1.0, dt)
	}
	if n.Urgency[Fear] <= 0.5 {
		t.Errorf("sustained threat should exceed override threshold, got %f", n.Urgency[Fear])
	}
}

// ---------- Resolution ----------

func TestActiveDrive_HighestNonLatentWins(t *testing.T) {
	n := New(activeRates())
	n.Urgency[Hunger] = 0.3
	n.Urgency[Thirst] = 0.7
	n.Urgency[Sleep] = 0.5
	n.Urgency[Social] = 0.99 // latent: rate 0, must be skipped

	if d := n.ActiveDrive(); d != Thirst {
		t.Errorf("expected thirst, got %s", d)
	}
}

func TestActiveDrive_DesireMultiplierShiftsPriority(t *testing.T) {
	n := New(activeRates())
	n.Urgency[Hunger] = 0.6
	n.Urgency[Sleep] = 0.5
	n.Desire[Sleep] = 2.0

	if d := n.ActiveDrive(); d != Sleep {
		t.Errorf("weighted sleep (1.0) should beat hunger (0.6), got %s", d)
	}
}

func TestActiveDrive_AllLatentReturnsNone(t *testing.T) {
	var rates [DriveCount]float32
	n := New(rates)
	n.Urgency[Hunger] = 0.8

	if d := n.ActiveDrive(); d != None {
		t.Errorf("expected None with all channels latent, got %s", d)
	}
}

// ---------- Satisfy / critical ----------

func TestSatisfy_FlooredAtZero(t *testing.T) {
	n := New(activeRates())
	n.Urgency[Hunger] = 0.3
	n.Satisfy(Hunger, 0.5)
	if n.Urgency[Hunger] != 0 {
		t.Errorf("satisfy should floor at 0, got %f", n.Urgency[Hunger])
	}
}

func TestIsCritical_ThirstAtCap(t *testing.T) {
	n := New(activeRates())
	n.Urgency[Thirst] = 1.0
	if !n.IsCritical(Thirst) {
		t.Error("thirst at 1.0 should be critical")
	}
	n.Urgency[Thirst] = 0.999
	if n.IsCritical(Thirst) {
		t.Error("thirst below 1.0 should not be critical")
	}
	n.Urgency[Hunger] = 1.0
	if n.IsCritical(Hunger) {
		t.Error("hunger has no critical threshold")
	}
}

func TestTick_RiseMatchesRate(t *testing.T) {
	n := New(activeRates())
	n.Tick(1.0)
	if math.Abs(float64(n.Urgency[Hunger]-0.02)) > 1e-6 {
		t.Errorf("expected hunger 0.02 after 1s at rate 0.02, got %f", n.Urgency[Hunger])
	}
}
