package world

import (
	"github.com/Dev2150/prismata/components"
	"github.com/Dev2150/prismata/genome"
	"github.com/Dev2150/prismata/needs"
)

// pendingBirth defers offspring creation until iteration over the
// creature slice has finished; spawning mid-loop would invalidate the
// pointers the loop holds.
type pendingBirth struct {
	genome     genome.Genome
	pos        components.Vec3
	parentA    components.ID
	parentB    components.ID
	generation int32
}

// reproduce advances running gestations and then forms new pairs.
// Gestation runs first so a litter delivered this tick cannot
// immediately re-pair its mother with the same cached perception.
func (w *World) reproduce(dt float32) {
	var births []pendingBirth

	for i := range w.Creatures {
		c := &w.Creatures[i]
		if !c.Alive || c.State != components.StateMating {
			continue
		}
		c.GestationTimer -= dt
		if c.GestationTimer > 0 {
			continue
		}
		births = append(births, w.deliver(c)...)
	}

	for i := range w.Creatures {
		c := &w.Creatures[i]
		if c.Alive && c.State != components.StateMating {
			w.tryPair(c)
		}
	}

	// Births are recorded here, not in SpawnCreature, so initial
	// population seeding never inflates the first telemetry window.
	for _, b := range births {
		w.SpawnCreature(b.genome, b.pos, b.parentA, b.parentB, b.generation)
		w.collector.RecordBirth()
	}
}

// deliver ends a gestation. The mate is looked up by ID at delivery
// time; if it died or vanished since pairing the gestation is abandoned
// and the mother simply returns to idle.
func (w *World) deliver(c *components.Creature) []pendingBirth {
	mate := w.creatureByID(c.MateTargetID)
	w.releaseFromMating(c)
	if mate == nil {
		return nil
	}
	if mate.State == components.StateMating && mate.MateTargetID == c.ID {
		w.releaseFromMating(mate)
	}

	scatter := float32(w.cfg.Reproduction.SpawnScatter)
	gen := c.Generation
	if mate.Generation > gen {
		gen = mate.Generation
	}

	litter := c.Genome.LitterSize()
	births := make([]pendingBirth, 0, litter)
	for i := 0; i < litter; i++ {
		child := genome.Crossover(c.Genome, mate.Genome, w.rng)
		child.Mutate(w.rng)
		pos := components.Vec3{
			X: c.Pos.X + (w.rng.Float32()*2-1)*scatter,
			Z: c.Pos.Z + (w.rng.Float32()*2-1)*scatter,
		}
		births = append(births, pendingBirth{
			genome:     child,
			pos:        pos,
			parentA:    c.ID,
			parentB:    mate.ID,
			generation: gen + 1,
		})
	}

	c.Energy -= float32(w.cfg.Reproduction.BirthCostPerMass) * c.Mass * float32(litter)
	return births
}

// releaseFromMating returns a creature to the open state machine and
// fully discharges its libido so it does not immediately re-pair.
func (w *World) releaseFromMating(c *components.Creature) {
	c.State = components.StateIdle
	c.GestationTimer = 0
	c.MateTargetID = components.InvalidID
	c.Needs.Satisfy(needs.Libido, 1)
}

// tryPair commits a creature to mating when its cached mate candidate
// is close enough, genetically compatible, and not already gestating.
// Only the initiating side enters the mating state; the partner keeps
// acting freely and is resolved again at delivery.
func (w *World) tryPair(c *components.Creature) {
	if c.Needs.Urgency[needs.Libido] <= float32(w.cfg.Reproduction.PairingLibidoThreshold) {
		return
	}
	if c.Senses.MateID == components.InvalidID {
		return
	}
	if c.Senses.MateDist == components.NotFound ||
		c.Senses.MateDist > float32(w.cfg.Reproduction.InteractionRadius) {
		return
	}
	mate := w.creatureByID(c.Senses.MateID)
	if mate == nil || mate.State == components.StateMating {
		return
	}
	if c.Genome.DistanceTo(&mate.Genome) >= float32(w.cfg.Species.Epsilon) {
		return
	}

	c.State = components.StateMating
	c.MateTargetID = mate.ID
	c.GestationTimer = c.Genome.GestationTime()
}
