package world

import (
	"math"

	"github.com/Dev2150/prismata/components"
	"github.com/Dev2150/prismata/needs"
	"github.com/Dev2150/prismata/systems"
)

// perceiveAll runs perception for every living creature against the
// pre-tick snapshot. No creature acts until all have perceived.
func (w *World) perceiveAll(dt float32) {
	for i := range w.Creatures {
		c := &w.Creatures[i]
		if c.Alive {
			w.perceiveCreature(c, i, dt)
		}
	}
}

// perceiveCreature fills the creature's perception cache: nearest
// predator, prey, and mate within the vision cone, nearest plant, and a
// rate-limited water lookup. Finishes by updating the Fear channel.
func (w *World) perceiveCreature(c *components.Creature, slot int, dt float32) {
	c.Senses.Reset()

	visionRange := c.Genome.VisionRange()
	halfFOV := c.Genome.VisionFOV() / 2
	adjacencyEps := float32(w.cfg.Perception.AdjacencyEpsilon)
	adjacencySq := adjacencyEps * adjacencyEps
	massRatio := float32(w.cfg.Perception.PredatorMassRatio)
	dietThreshold := float32(w.cfg.Perception.DietThreshold)
	mateThreshold := float32(w.cfg.Perception.MateLibidoThreshold)

	var predSq, preySq, mateSq float32 = -1, -1, -1

	w.queryBuf = w.creatureHash.QueryRadiusInto(w.queryBuf[:0], c.Pos.X, c.Pos.Z, visionRange, slot)
	for _, n := range w.queryBuf {
		other := &w.Creatures[n.Index]
		if !other.Alive {
			continue
		}

		// Field-of-view cone, bypassed for adjacent candidates: a
		// creature pressed against you is noticed regardless of facing.
		if n.DistSq > adjacencySq {
			angle := float32(math.Atan2(float64(n.DZ), float64(n.DX)))
			if abs32(systems.NormalizeAngle(angle-c.Heading)) > halfFOV {
				continue
			}
		}

		switch {
		case other.Mass > c.Mass*massRatio && other.Genome.CarnivoreEfficiency() > dietThreshold:
			if predSq < 0 || n.DistSq < predSq {
				predSq = n.DistSq
				c.Senses.PredatorID = other.ID
			}
		case c.Mass > other.Mass*massRatio:
			if preySq < 0 || n.DistSq < preySq {
				preySq = n.DistSq
				c.Senses.PreyID = other.ID
			}
		}

		// Mate candidacy is independent of the size classification.
		if other.SpeciesID == c.SpeciesID && other.Needs.Urgency[needs.Libido] > mateThreshold {
			if mateSq < 0 || n.DistSq < mateSq {
				mateSq = n.DistSq
				c.Senses.MateID = other.ID
			}
		}
	}

	// One sqrt per found category, after the scan.
	if predSq >= 0 {
		c.Senses.PredatorDist = sqrt32(predSq)
	}
	if preySq >= 0 {
		c.Senses.PreyDist = sqrt32(preySq)
	}
	if mateSq >= 0 {
		c.Senses.MateDist = sqrt32(mateSq)
	}

	w.perceivePlants(c, visionRange)
	w.perceiveWater(c, dt)

	// Fear rises with predator proximity, scaled by the sensitivity
	// gene; without a visible predator it decays in the needs tick.
	if c.Senses.PredatorDist >= 0 {
		c.Needs.RaiseFear(c.Senses.PredatorDist/visionRange, c.Genome.FearSensitivity(), dt)
	}
}

// perceivePlants finds the nearest living plant via the flora hash.
func (w *World) perceivePlants(c *components.Creature, visionRange float32) {
	var bestSq float32 = -1

	w.queryBuf = w.plantHash.QueryRadiusInto(w.queryBuf[:0], c.Pos.X, c.Pos.Z, visionRange, -1)
	for _, n := range w.queryBuf {
		p := &w.Plants[n.Index]
		if !p.Alive {
			continue
		}
		if bestSq < 0 || n.DistSq < bestSq {
			bestSq = n.DistSq
			c.Senses.FoodPlant = n.Index
			c.Senses.FoodPos = p.Pos
		}
	}
	if bestSq >= 0 {
		c.Senses.FoodDist = sqrt32(bestSq)
	}
}

// perceiveWater refreshes the cached water target. Terrain queries are
// rate-limited per creature; between queries the cached position is
// kept and only its distance is refreshed.
func (w *World) perceiveWater(c *components.Creature, dt float32) {
	c.Senses.WaterTimer -= dt
	if c.Senses.WaterTimer <= 0 {
		pos, ok := w.terrain.FindNearestWater(c.Pos, float32(w.cfg.Perception.WaterSearchRadius))
		c.Senses.WaterFound = ok
		if ok {
			c.Senses.WaterPos = pos
		}
		c.Senses.WaterTimer = float32(w.cfg.Perception.WaterQueryInterval)
	}

	if c.Senses.WaterFound {
		c.Senses.WaterDist = systems.Hypot32(c.Senses.WaterPos.X-c.Pos.X, c.Senses.WaterPos.Z-c.Pos.Z)
	} else {
		c.Senses.WaterDist = components.NotFound
	}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func sqrt32(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}
