// Package world owns the entity store and runs the simulation tick.
//
// All creature and plant storage lives here; every other package sees
// IDs or transient slot indices only. Slots are invalidated by the
// compaction phase at the end of each tick, so nothing may cache one
// across a tick boundary.
package world

import (
	"math"
	"math/rand"

	"github.com/Dev2150/prismata/components"
	"github.com/Dev2150/prismata/config"
	"github.com/Dev2150/prismata/genome"
	"github.com/Dev2150/prismata/needs"
	"github.com/Dev2150/prismata/species"
	"github.com/Dev2150/prismata/systems"
	"github.com/Dev2150/prismata/telemetry"
)

// World holds the complete simulation state.
type World struct {
	cfg     *config.Config
	rng     *rand.Rand
	terrain systems.Terrain

	// Entity storage. Exported for read-only consumers (renderer, UI);
	// mutation happens only inside the tick.
	Creatures []components.Creature
	Plants    []components.Plant

	Species *species.Manager

	// ID bookkeeping: IDs are never reused, 0 is invalid.
	slotByID map[components.ID]int
	nextID   components.ID

	creatureHash *systems.SpatialHash
	plantHash    *systems.SpatialHash

	// Reused query buffer; valid only inside a single perception call.
	queryBuf []systems.Neighbor

	collector *telemetry.Collector

	SimTime   float64
	TickCount int64
	Paused    bool
}

// New creates an empty world over the given terrain oracle. The rng is
// owned by the world; threading it explicitly keeps runs reproducible.
func New(cfg *config.Config, terrain systems.Terrain, rng *rand.Rand) *World {
	cell := float32(cfg.World.SpatialCellSize)
	return &World{
		cfg:          cfg,
		rng:          rng,
		terrain:      terrain,
		Species:      species.NewManager(float32(cfg.Species.Epsilon), rng),
		slotByID:     make(map[components.ID]int),
		nextID:       1,
		creatureHash: systems.NewSpatialHash(cfg.Derived.WorldW32, cfg.Derived.WorldD32, cell),
		plantHash:    systems.NewSpatialHash(cfg.Derived.WorldW32, cfg.Derived.WorldD32, cell),
	}
}

// SetCollector attaches a telemetry collector. Nil is fine; all
// collector methods are nil-safe.
func (w *World) SetCollector(c *telemetry.Collector) {
	w.collector = c
}

// Terrain returns the surface oracle.
func (w *World) Terrain() systems.Terrain {
	return w.terrain
}

// Rng returns the world-owned random generator.
func (w *World) Rng() *rand.Rand {
	return w.rng
}

// Populate seeds the initial random population and flora.
func (w *World) Populate() {
	for i := 0; i < w.cfg.Population.InitialCreatures; i++ {
		g := genome.Random(w.rng)
		pos := w.terrain.RandomLandPosition(w.rng)
		w.SpawnCreature(g, pos, components.InvalidID, components.InvalidID, 0)
	}
	for i := 0; i < w.cfg.Population.InitialPlants; i++ {
		pos := w.terrain.RandomLandPosition(w.rng)
		w.SpawnPlant(pos, w.randomPlantType())
	}
}

// randomPlantType draws a plant type from the configured weights.
func (w *World) randomPlantType() components.PlantType {
	p := &w.cfg.Plants
	total := p.GrassWeight + p.BushWeight + p.TreeWeight
	r := w.rng.Float64() * total
	switch {
	case r < p.GrassWeight:
		return components.PlantGrass
	case r < p.GrassWeight+p.BushWeight:
		return components.PlantBush
	default:
		return components.PlantTree
	}
}

// SpawnCreature allocates the next ID, classifies the genome into a
// species, derives biology from the genome, and registers the creature.
func (w *World) SpawnCreature(g genome.Genome, pos components.Vec3, parentA, parentB components.ID, generation int32) components.ID {
	id := w.nextID
	w.nextID++

	speciesID := w.Species.Classify(&g)

	mass := g.Mass()
	maxEnergy := mass * float32(w.cfg.Energy.MaxEnergyPerMass)

	var rates [needs.DriveCount]float32
	rates[needs.Hunger] = g.CraveRate(genome.GeneHungerRate)
	rates[needs.Thirst] = g.CraveRate(genome.GeneThirstRate)
	rates[needs.Sleep] = g.CraveRate(genome.GeneSleepRate)
	rates[needs.Libido] = g.CraveRate(genome.GeneLibidoRate)
	rates[needs.Social] = g.CraveRate(genome.GeneSocialRate)

	c := components.Creature{
		ID:         id,
		ParentA:    parentA,
		ParentB:    parentB,
		Generation: generation,
		SpeciesID:  speciesID,
		Pos:        w.terrain.SnapToSurface(pos.X, pos.Z),
		Heading:    w.rng.Float32()*2*math.Pi - math.Pi,
		Genome:     g,
		Needs:      needs.New(rates),
		Energy:     maxEnergy * 0.75,
		MaxEnergy:  maxEnergy,
		Lifespan:   g.Lifespan(),
		Mass:       mass,
		Alive:      true,
		State:      components.StateIdle,
	}
	c.Senses.Reset()

	w.Creatures = append(w.Creatures, c)
	w.slotByID[id] = len(w.Creatures) - 1
	return id
}

// SpawnPlant adds a full-grown plant at the given position.
func (w *World) SpawnPlant(pos components.Vec3, t components.PlantType) {
	w.Plants = append(w.Plants, components.Plant{
		Pos:       w.terrain.SnapToSurface(pos.X, pos.Z),
		Type:      t,
		Nutrition: t.MaxNutrition(),
		Alive:     true,
	})
}

// creatureByID resolves an ID through the slot map. Returns nil for
// missing or dead entities; cached references dying mid-tick is
// ordinary, never an error.
func (w *World) creatureByID(id components.ID) *components.Creature {
	if id == components.InvalidID {
		return nil
	}
	slot, ok := w.slotByID[id]
	if !ok {
		return nil
	}
	c := &w.Creatures[slot]
	if !c.Alive {
		return nil
	}
	return c
}

// CreatureByID exposes ID resolution for read-only consumers.
func (w *World) CreatureByID(id components.ID) *components.Creature {
	return w.creatureByID(id)
}

// LivingCreatures counts creatures with Alive set.
func (w *World) LivingCreatures() int {
	n := 0
	for i := range w.Creatures {
		if w.Creatures[i].Alive {
			n++
		}
	}
	return n
}

// LivingPlants counts plants with Alive set.
func (w *World) LivingPlants() int {
	n := 0
	for i := range w.Plants {
		if w.Plants[i].Alive {
			n++
		}
	}
	return n
}

// Tick advances the simulation by dt seconds of wall time, scaled by
// the configured speed multiplier. Phases run strictly in order; the
// perceive-all / act-all split guarantees every creature reads a
// consistent pre-tick snapshot. A paused world does not advance
// simulated time at all.
func (w *World) Tick(dt float32) {
	if w.Paused {
		return
	}
	dt *= w.cfg.Derived.SpeedMultiplier32

	w.growPlants(dt)
	w.rebuildSpatialHashes()
	w.perceiveAll(dt)
	w.actAll(dt)
	w.reproduce(dt)
	w.removeDeadCreatures()
	w.evictPlants()

	w.TickCount++
	if w.cfg.Species.CentroidUpdateTicks > 0 &&
		w.TickCount%int64(w.cfg.Species.CentroidUpdateTicks) == 0 {
		w.updateSpeciesCentroids()
	}

	w.SimTime += float64(dt)
	w.collector.Advance(float64(dt))
}

// growPlants advances regrow timers and tracks time spent dead.
func (w *World) growPlants(dt float32) {
	for i := range w.Plants {
		w.Plants[i].Grow(dt)
	}
}

// rebuildSpatialHashes re-indexes every living entity. Full rebuild per
// tick is a simplicity-over-throughput tradeoff that holds up at the
// target population scale.
func (w *World) rebuildSpatialHashes() {
	w.creatureHash.Clear()
	for i := range w.Creatures {
		c := &w.Creatures[i]
		if c.Alive {
			w.creatureHash.Insert(i, c.Pos.X, c.Pos.Z)
		}
	}

	w.plantHash.Clear()
	for i := range w.Plants {
		p := &w.Plants[i]
		if p.Alive {
			w.plantHash.Insert(i, p.Pos.X, p.Pos.Z)
		}
	}
}

// removeDeadCreatures compacts dead entries out of storage and rebuilds
// the ID map from scratch. O(n) unconditionally; it runs once per tick
// after all mutation is finished, so incremental upkeep buys nothing.
func (w *World) removeDeadCreatures() {
	live := w.Creatures[:0]
	for i := range w.Creatures {
		c := &w.Creatures[i]
		if c.Alive {
			live = append(live, *c)
		} else {
			w.Species.RecordDeath(c.SpeciesID)
		}
	}
	w.Creatures = live

	clear(w.slotByID)
	for i := range w.Creatures {
		w.slotByID[w.Creatures[i].ID] = i
	}
}

// evictPlants removes plants dead past the eviction delay. This is
// memory reclamation only; regrowth is handled by growPlants.
func (w *World) evictPlants() {
	evictAfter := float32(w.cfg.Plants.EvictionDelay)
	kept := w.Plants[:0]
	for i := range w.Plants {
		p := &w.Plants[i]
		if p.Alive || p.DeadTime < evictAfter {
			kept = append(kept, *p)
		}
	}
	w.Plants = kept
}

// updateSpeciesCentroids recomputes centroids from living members.
func (w *World) updateSpeciesCentroids() {
	members := make(map[int32][]*genome.Genome)
	for i := range w.Creatures {
		c := &w.Creatures[i]
		if c.Alive {
			members[c.SpeciesID] = append(members[c.SpeciesID], &c.Genome)
		}
	}
	w.Species.UpdateCentroids(members)
}
