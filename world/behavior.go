package world

import (
	"math"

	"github.com/Dev2150/prismata/components"
	"github.com/Dev2150/prismata/needs"
	"github.com/Dev2150/prismata/systems"
	"github.com/Dev2150/prismata/telemetry"
)

// actAll runs the behavior state machine for every living creature.
// Perception has already completed for the whole population, so acting
// mutates freely without breaking same-tick fairness.
func (w *World) actAll(dt float32) {
	for i := range w.Creatures {
		c := &w.Creatures[i]
		if c.Alive {
			w.actCreature(c, dt)
		}
	}
}

// actCreature advances one creature: age and needs, drive dispatch,
// movement, energy accounting, and the death checks.
func (w *World) actCreature(c *components.Creature, dt float32) {
	c.Age += dt
	c.Needs.Tick(dt)

	var desired components.Vec2
	if c.State == components.StateMating {
		// Mating creatures hold still; gestation is advanced by the
		// reproduction phase, not here.
	} else {
		desired = w.dispatchDrive(c, dt)
	}

	speed, slope := w.applyMovement(c, desired, dt)
	w.applyEnergyCost(c, speed, slope, dt)
	w.checkDeath(c)
}

// dispatchDrive resolves the active drive and returns the desired
// velocity for this tick, performing any in-range feeding or drinking.
func (w *World) dispatchDrive(c *components.Creature, dt float32) components.Vec2 {
	switch c.Needs.ActiveDrive() {
	case needs.Fear:
		return w.flee(c)
	case needs.Hunger:
		return w.seekFood(c, dt)
	case needs.Thirst:
		return w.seekWater(c, dt)
	case needs.Sleep:
		return w.sleep(c, dt)
	case needs.Libido:
		return w.seekMate(c)
	default:
		c.State = components.StateIdle
		return w.wander(c)
	}
}

// flee steers directly away from the nearest perceived predator. A
// predator that died since perception simply drops the creature back to
// wandering.
func (w *World) flee(c *components.Creature) components.Vec2 {
	pred := w.creatureByID(c.Senses.PredatorID)
	if pred == nil {
		c.State = components.StateIdle
		return w.wander(c)
	}
	c.State = components.StateFleeing
	return steerAway(c.Pos, pred.Pos, c.Genome.MaxSpeed())
}

// seekFood routes hunger to hunting or grazing depending on diet genes
// and what perception found. Carnivores prefer visible prey; everyone
// falls back to plants, then to wandering.
func (w *World) seekFood(c *components.Creature, dt float32) components.Vec2 {
	carnivore := c.Genome.CarnivoreEfficiency() > float32(w.cfg.Perception.DietThreshold)

	if carnivore && c.Senses.PreyID != components.InvalidID {
		return w.hunt(c, dt)
	}
	if c.Senses.FoodPlant >= 0 {
		return w.graze(c, dt)
	}
	c.State = components.StateIdle
	return w.wander(c)
}

// hunt pursues the cached prey and, within melee range, transfers
// energy from prey to hunter scaled by the carnivore-efficiency gene.
// Prey drained to zero dies on the spot.
func (w *World) hunt(c *components.Creature, dt float32) components.Vec2 {
	prey := w.creatureByID(c.Senses.PreyID)
	if prey == nil {
		c.State = components.StateIdle
		return w.wander(c)
	}
	c.State = components.StateHunting

	dist := systems.Hypot32(prey.Pos.X-c.Pos.X, prey.Pos.Z-c.Pos.Z)
	if dist <= float32(w.cfg.Behavior.MeleeRange) {
		bite := float32(w.cfg.Behavior.HuntRate) * dt
		if bite > prey.Energy {
			bite = prey.Energy
		}
		prey.Energy -= bite
		gain := bite * c.Genome.CarnivoreEfficiency()
		c.AddEnergy(gain)
		c.Needs.Satisfy(needs.Hunger, gain*float32(w.cfg.Behavior.HungerPerEnergy))

		if prey.Energy <= 0 {
			prey.Energy = 0
			prey.Alive = false
			w.collector.RecordDeath(telemetry.DeathPredation)
		}
		return components.Vec2{} // stay on the kill
	}

	return steerToward(c.Pos, prey.Pos, c.Genome.MaxSpeed())
}

// graze pursues the cached plant and, within range, depletes its
// nutrition scaled by the herbivore-efficiency gene.
func (w *World) graze(c *components.Creature, dt float32) components.Vec2 {
	if c.Senses.FoodPlant < 0 || c.Senses.FoodPlant >= len(w.Plants) {
		c.State = components.StateIdle
		return w.wander(c)
	}
	plant := &w.Plants[c.Senses.FoodPlant]
	if !plant.Alive {
		c.State = components.StateIdle
		return w.wander(c)
	}
	c.State = components.StateSeekFood

	dist := systems.Hypot32(plant.Pos.X-c.Pos.X, plant.Pos.Z-c.Pos.Z)
	if dist <= float32(w.cfg.Behavior.GrazeRange) {
		taken := plant.Deplete(float32(w.cfg.Behavior.EatRate) * dt)
		gain := taken * c.Genome.HerbivoreEfficiency()
		c.AddEnergy(gain)
		c.Needs.Satisfy(needs.Hunger, gain*float32(w.cfg.Behavior.HungerPerEnergy))
		return components.Vec2{} // feeding in place
	}

	return steerToward(c.Pos, plant.Pos, c.Genome.MaxSpeed())
}

// seekWater pursues the cached water position and drinks at a fixed
// rate inside the drink radius.
func (w *World) seekWater(c *components.Creature, dt float32) components.Vec2 {
	if !c.Senses.WaterFound {
		c.State = components.StateIdle
		return w.wander(c)
	}
	c.State = components.StateSeekWater

	if c.Senses.WaterDist <= float32(w.cfg.Behavior.DrinkRadius) {
		c.Needs.Satisfy(needs.Thirst, float32(w.cfg.Behavior.DrinkRate)*dt)
		return components.Vec2{}
	}

	return steerToward(c.Pos, c.Senses.WaterPos, c.Genome.MaxSpeed())
}

// sleep holds still, recovers energy, and works the Sleep drive down.
func (w *World) sleep(c *components.Creature, dt float32) components.Vec2 {
	c.State = components.StateSleeping
	c.Velocity = components.Vec2{}
	c.AddEnergy(float32(w.cfg.Behavior.SleepRecovery) * dt)
	c.Needs.Satisfy(needs.Sleep, float32(w.cfg.Behavior.SleepSatisfyRate)*dt)
	return components.Vec2{}
}

// seekMate approaches the nearest qualifying mate at reduced speed.
// Actual pairing is arbitrated by the reproduction phase.
func (w *World) seekMate(c *components.Creature) components.Vec2 {
	mate := w.creatureByID(c.Senses.MateID)
	if mate == nil {
		c.State = components.StateIdle
		return w.wander(c)
	}
	c.State = components.StateSeekMate
	return steerToward(c.Pos, mate.Pos, c.Genome.MaxSpeed()*float32(w.cfg.Behavior.SeekMateSpeed))
}

// wander produces a smoothed random walk by jittering the heading.
func (w *World) wander(c *components.Creature) components.Vec2 {
	jitter := float32(w.cfg.Behavior.WanderJitter)
	heading := c.Heading + (w.rng.Float32()*2-1)*jitter*0.5
	speed := c.Genome.MaxSpeed() * 0.4
	return components.Vec2{
		X: float32(math.Cos(float64(heading))) * speed,
		Z: float32(math.Sin(float64(heading))) * speed,
	}
}

// checkDeath applies the three death conditions. Each is terminal and
// they are not mutually exclusive; whichever fires first records the
// cause.
func (w *World) checkDeath(c *components.Creature) {
	if !c.Alive {
		return
	}
	switch {
	case c.Energy <= 0:
		c.Energy = 0
		c.Alive = false
		w.collector.RecordDeath(telemetry.DeathStarvation)
	case c.Age >= c.Lifespan:
		c.Alive = false
		w.collector.RecordDeath(telemetry.DeathOldAge)
	case c.Needs.IsCritical(needs.Thirst):
		c.Alive = false
		w.collector.RecordDeath(telemetry.DeathDehydration)
	}
}

// steerToward returns a velocity of the given speed pointing at target.
func steerToward(from, to components.Vec3, speed float32) components.Vec2 {
	dx := to.X - from.X
	dz := to.Z - from.Z
	d := systems.Hypot32(dx, dz)
	if d < 1e-5 {
		return components.Vec2{}
	}
	return components.Vec2{X: dx / d * speed, Z: dz / d * speed}
}

// steerAway returns a velocity of the given speed pointing away from
// threat.
func steerAway(from, threat components.Vec3, speed float32) components.Vec2 {
	dx := from.X - threat.X
	dz := from.Z - threat.Z
	d := systems.Hypot32(dx, dz)
	if d < 1e-5 {
		// Directly on top of the threat: pick any direction.
		return components.Vec2{X: speed}
	}
	return components.Vec2{X: dx / d * speed, Z: dz / d * speed}
}
