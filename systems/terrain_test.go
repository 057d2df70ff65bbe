package systems

import (
	"math/rand"
	"testing"
)

func TestHeightfield_Deterministic(t *testing.T) {
	a := NewHeightfield(42, 512, 512, -5)
	b := NewHeightfield(42, 512, 512, -5)

	for _, p := range [][2]float32{{0, 0}, {100, 250}, {511, 511}} {
		if a.Height(p[0], p[1]) != b.Height(p[0], p[1]) {
			t.Fatalf("same seed produced different heights at %v", p)
		}
	}
}

func TestHeightfield_SlopeRange(t *testing.T) {
	hf := NewHeightfield(7, 512, 512, -5)
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 200; i++ {
		x := rng.Float32() * 512
		z := rng.Float32() * 512
		s := hf.Slope(x, z)
		if s < 0 || s > 1 {
			t.Fatalf("slope (sine of angle) out of [0,1] at (%g,%g): %g", x, z, s)
		}
	}
}

func TestHeightfield_SnapClampsToWaterTable(t *testing.T) {
	hf := NewHeightfield(3, 512, 512, 100) // sea level above all terrain
	p := hf.SnapToSurface(50, 50)
	if p.Y != 100 {
		t.Errorf("underwater snap should sit at sea level, got %g", p.Y)
	}
	if !hf.IsWater(50, 50) {
		t.Error("everything should be water with sea level above max amplitude")
	}
}

func TestHeightfield_FindNearestWaterFromWater(t *testing.T) {
	hf := NewHeightfield(3, 512, 512, 100)
	pos, ok := hf.FindNearestWater(hf.SnapToSurface(10, 10), 50)
	if !ok {
		t.Fatal("expected water found when standing in it")
	}
	if pos.X != 10 || pos.Z != 10 {
		t.Errorf("expected current position returned, got (%g,%g)", pos.X, pos.Z)
	}
}

func TestHeightfield_FindNearestWaterNoneInRange(t *testing.T) {
	hf := NewHeightfield(3, 512, 512, -100) // sea level below all terrain
	if _, ok := hf.FindNearestWater(hf.SnapToSurface(256, 256), 100); ok {
		t.Error("expected no water found with sea level below min amplitude")
	}
}

func TestHeightfield_RandomLandPositionIsDry(t *testing.T) {
	hf := NewHeightfield(9, 512, 512, -5)
	rng := rand.New(rand.NewSource(9))

	for i := 0; i < 50; i++ {
		p := hf.RandomLandPosition(rng)
		if p.X < 0 || p.X > 512 || p.Z < 0 || p.Z > 512 {
			t.Fatalf("position out of bounds: %+v", p)
		}
		if hf.IsWater(p.X, p.Z) {
			t.Fatalf("random land position is wet: %+v", p)
		}
	}
}
