package world

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/Dev2150/prismata/components"
	"github.com/Dev2150/prismata/genome"
)

func TestSaveRoundTrip(t *testing.T) {
	w := newTestWorld(t, &flatTerrain{})

	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 6; i++ {
		pos := components.Vec3{X: float32(50 + i*60), Z: float32(40 + i*30)}
		w.SpawnCreature(genome.Random(rng), pos, 0, 0, int32(i))
	}
	for i := 0; i < 4; i++ {
		w.SpawnPlant(components.Vec3{X: float32(30 + i*100), Z: 200}, components.PlantBush)
	}
	for i := 0; i < 30; i++ {
		w.Tick(testDt)
	}

	path := filepath.Join(t.TempDir(), "world.sav")
	if err := w.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	w2 := newTestWorld(t, &flatTerrain{})
	if err := w2.Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if w2.TickCount != w.TickCount {
		t.Errorf("tick count = %d, want %d", w2.TickCount, w.TickCount)
	}
	if w2.SimTime != w.SimTime {
		t.Errorf("sim time = %v, want %v", w2.SimTime, w.SimTime)
	}
	if len(w2.Creatures) != len(w.Creatures) {
		t.Fatalf("creature count = %d, want %d", len(w2.Creatures), len(w.Creatures))
	}
	if len(w2.Plants) != len(w.Plants) {
		t.Fatalf("plant count = %d, want %d", len(w2.Plants), len(w.Plants))
	}
	if len(w2.Species.Species) != len(w.Species.Species) {
		t.Fatalf("species count = %d, want %d", len(w2.Species.Species), len(w.Species.Species))
	}

	for i := range w.Creatures {
		a, b := &w.Creatures[i], &w2.Creatures[i]
		if a.ID != b.ID {
			t.Errorf("creature %d: ID = %d, want %d", i, b.ID, a.ID)
		}
		if a.Genome != b.Genome {
			t.Errorf("creature %d: genome differs after round trip", i)
		}
		if a.Energy != b.Energy || a.Age != b.Age {
			t.Errorf("creature %d: biology differs: energy %v/%v, age %v/%v",
				i, b.Energy, a.Energy, b.Age, a.Age)
		}
		if a.Pos != b.Pos {
			t.Errorf("creature %d: position %+v, want %+v", i, b.Pos, a.Pos)
		}
		if a.State != b.State {
			t.Errorf("creature %d: state %v, want %v", i, b.State, a.State)
		}
		if w2.CreatureByID(a.ID) == nil {
			t.Errorf("creature %d should resolve by ID after load", a.ID)
		}
	}

	for i := range w.Species.Species {
		a, b := w.Species.Species[i], w2.Species.Species[i]
		if a.ID != b.ID || a.Name != b.Name {
			t.Errorf("species %d: got (%d, %q), want (%d, %q)", i, b.ID, b.Name, a.ID, a.Name)
		}
		if a.AllTimeCount != b.AllTimeCount {
			t.Errorf("species %d: all-time count = %d, want %d", a.ID, b.AllTimeCount, a.AllTimeCount)
		}
	}

	// Both worlds must hand out the same next ID
	rng2 := rand.New(rand.NewSource(99))
	id1 := w.SpawnCreature(genome.Random(rng2), components.Vec3{X: 10, Z: 10}, 0, 0, 0)
	id2 := w2.SpawnCreature(genome.Random(rng2), components.Vec3{X: 10, Z: 10}, 0, 0, 0)
	if id1 != id2 {
		t.Errorf("next ID after load = %d, want %d", id2, id1)
	}
}

func TestLoadRejectsBadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bogus.sav")
	if err := os.WriteFile(path, []byte("not a save file at all"), 0644); err != nil {
		t.Fatal(err)
	}

	w := newTestWorld(t, &flatTerrain{})
	if err := w.Load(path); err == nil {
		t.Error("loading a non-save file should fail")
	}
}

func TestLoadRejectsWrongVersion(t *testing.T) {
	w := newTestWorld(t, &flatTerrain{})
	w.SpawnPlant(components.Vec3{X: 10, Z: 10}, components.PlantGrass)

	path := filepath.Join(t.TempDir(), "world.sav")
	if err := w.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	data[4] = 0xFF // Corrupt the version field
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	if err := w.Load(path); err == nil {
		t.Error("loading a future save version should fail")
	}
}

func TestLoadRejectsTruncatedFile(t *testing.T) {
	w := newTestWorld(t, &flatTerrain{})

	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 3; i++ {
		w.SpawnCreature(genome.Random(rng), components.Vec3{X: float32(50 * (i + 1)), Z: 100}, 0, 0, 0)
	}

	path := filepath.Join(t.TempDir(), "world.sav")
	if err := w.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data[:len(data)/2], 0644); err != nil {
		t.Fatal(err)
	}

	w2 := newTestWorld(t, &flatTerrain{})
	before := len(w2.Creatures)
	if err := w2.Load(path); err == nil {
		t.Error("loading a truncated save should fail")
	}
	if len(w2.Creatures) != before {
		t.Error("a failed load must not modify the world")
	}
}
