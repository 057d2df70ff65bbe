package species

import (
	"math/rand"
	"testing"

	"github.com/Dev2150/prismata/genome"
)

func newManager() *Manager {
	return NewManager(0.18, rand.New(rand.NewSource(21)))
}

func TestClassify_CentroidMapsToItself(t *testing.T) {
	m := newManager()
	rng := rand.New(rand.NewSource(22))

	g := genome.Random(rng)
	id := m.Classify(&g)

	sp := m.Get(id)
	if sp == nil {
		t.Fatal("species record missing after classify")
	}

	// Classifying the centroid genome itself must return the same
	// species: distance 0 < epsilon.
	again := m.Classify(&sp.Centroid)
	if again != id {
		t.Errorf("centroid classified into species %d, expected %d", again, id)
	}
}

func TestClassify_DistantGenomeFoundsNewSpecies(t *testing.T) {
	m := newManager()

	var a, b genome.Genome
	for i := range b.Genes {
		b.Genes[i] = 1 // distance 1.0 from a, far above epsilon
	}

	idA := m.Classify(&a)
	idB := m.Classify(&b)

	if idA == idB {
		t.Fatal("maximally distant genomes should not share a species")
	}
	if len(m.Species) != 2 {
		t.Fatalf("expected 2 species records, got %d", len(m.Species))
	}
}

func TestClassify_NearbyGenomeJoins(t *testing.T) {
	m := newManager()

	var a genome.Genome
	for i := range a.Genes {
		a.Genes[i] = 0.5
	}
	b := a
	b.Genes[0] = 0.52 // tiny divergence

	idA := m.Classify(&a)
	idB := m.Classify(&b)

	if idA != idB {
		t.Errorf("near-identical genomes split into species %d and %d", idA, idB)
	}
	sp := m.Get(idA)
	if sp.LivingCount != 2 || sp.AllTimeCount != 2 {
		t.Errorf("expected counts 2/2, got %d/%d", sp.LivingCount, sp.AllTimeCount)
	}
}

func TestClassify_SkipsExtinctSpecies(t *testing.T) {
	m := newManager()

	var a genome.Genome
	idA := m.Classify(&a)
	m.RecordDeath(idA)

	if sp := m.Get(idA); !sp.Extinct() {
		t.Fatal("species with zero living members should be extinct")
	}

	// Same genome again: the extinct record is not a clustering target,
	// so a new species is founded.
	idB := m.Classify(&a)
	if idB == idA {
		t.Error("extinct species should not receive new members")
	}
	if m.Get(idA) == nil {
		t.Error("extinct record must be retained for history")
	}
}

func TestUpdateCentroids_MeanOfLivingMembers(t *testing.T) {
	m := newManager()

	var founder genome.Genome
	for i := range founder.Genes {
		founder.Genes[i] = 0.5
	}
	id := m.Classify(&founder)

	g1 := founder
	g1.Genes[0] = 0.4
	g2 := founder
	g2.Genes[0] = 0.6

	m.UpdateCentroids(map[int32][]*genome.Genome{
		id: {&g1, &g2},
	})

	sp := m.Get(id)
	if sp.LivingCount != 2 {
		t.Errorf("expected living count 2 after centroid update, got %d", sp.LivingCount)
	}
	if got := sp.Centroid.Genes[0]; got < 0.499 || got > 0.501 {
		t.Errorf("expected centroid gene 0 near 0.5, got %f", got)
	}
}

func TestUpdateCentroids_ZeroesExtinct(t *testing.T) {
	m := newManager()
	var g genome.Genome
	id := m.Classify(&g)

	m.UpdateCentroids(map[int32][]*genome.Genome{}) // no members anywhere

	sp := m.Get(id)
	if sp == nil {
		t.Fatal("extinct record must persist")
	}
	if sp.LivingCount != 0 {
		t.Errorf("expected living count 0 for extinct species, got %d", sp.LivingCount)
	}
}

func TestGeneratedNames_FormedAndMostlyDistinct(t *testing.T) {
	m := newManager()

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		name := m.generateName()
		if name == "" {
			t.Fatal("species name must not be empty")
		}
		if name[0] < 'A' || name[0] > 'Z' {
			t.Fatalf("name should be capitalized: %q", name)
		}
		seen[name] = true
	}
	// Syllable pools are large; collisions across 50 draws should be rare
	if len(seen) < 40 {
		t.Errorf("expected mostly distinct names, got %d unique", len(seen))
	}
}
