package world

import (
	"math"

	"github.com/Dev2150/prismata/components"
	"github.com/Dev2150/prismata/systems"
)

// applyMovement integrates the creature toward its desired velocity and
// returns the realized speed and the slope it stood on. Velocity follows
// the desire with first-order lag so direction changes read as steering
// rather than teleports. Moves onto ground steeper than the genome's
// slope tolerance are refused unless the step is net downhill.
func (w *World) applyMovement(c *components.Creature, desired components.Vec2, dt float32) (speed, slope float32) {
	lag := float32(w.cfg.Behavior.VelocityLag)
	alpha := systems.Clamp32(lag*dt, 0, 1)
	c.Velocity.X = systems.Lerp32(c.Velocity.X, desired.X, alpha)
	c.Velocity.Z = systems.Lerp32(c.Velocity.Z, desired.Z, alpha)

	speed = systems.Hypot32(c.Velocity.X, c.Velocity.Z)
	if speed > 1e-4 {
		c.Heading = float32(math.Atan2(float64(c.Velocity.Z), float64(c.Velocity.X)))
	}

	nx := systems.Clamp32(c.Pos.X+c.Velocity.X*dt, 0, w.cfg.Derived.WorldW32)
	nz := systems.Clamp32(c.Pos.Z+c.Velocity.Z*dt, 0, w.cfg.Derived.WorldD32)

	slope = w.terrain.Slope(nx, nz)
	if slope > c.Genome.MaxSlope() && w.terrain.Height(nx, nz) >= c.Pos.Y {
		// Too steep to climb. The creature stays put but still pays for
		// the attempt through the returned speed.
		c.Velocity = components.Vec2{}
		slope = w.terrain.Slope(c.Pos.X, c.Pos.Z)
		return speed, slope
	}

	c.Pos = w.terrain.SnapToSurface(nx, nz)
	return speed, slope
}

// applyEnergyCost debits the metabolic cost of this tick. The base cost
// is paid even when standing still; movement scales quadratically with
// speed and linearly with mass, and steep ground adds a surcharge.
func (w *World) applyEnergyCost(c *components.Creature, speed, slope float32, dt float32) {
	base := float32(w.cfg.Energy.BaseCost)
	if c.IsElderly() {
		base *= float32(w.cfg.Energy.OldAgeFactor)
	}
	move := float32(w.cfg.Energy.MoveCost) * speed * speed * c.Mass
	grade := float32(w.cfg.Energy.SlopeCost) * slope * speed * c.Mass
	c.Energy -= (base + move + grade) * dt
}
