package world

import "github.com/Dev2150/prismata/telemetry"

// CreatureRows builds the CSV dump rows for every living creature.
func (w *World) CreatureRows() []telemetry.CreatureRow {
	rows := make([]telemetry.CreatureRow, 0, len(w.Creatures))
	for i := range w.Creatures {
		c := &w.Creatures[i]
		if !c.Alive {
			continue
		}
		name := ""
		if sp := w.Species.Get(c.SpeciesID); sp != nil {
			name = sp.Name
		}
		rows = append(rows, telemetry.CreatureRow{
			ID:         uint64(c.ID),
			SpeciesID:  c.SpeciesID,
			Species:    name,
			Generation: c.Generation,
			State:      c.State.String(),
			PosX:       c.Pos.X,
			PosZ:       c.Pos.Z,
			Age:        c.Age,
			Lifespan:   c.Lifespan,
			Mass:       c.Mass,
			EnergyFrac: c.EnergyFrac(),
			MaxSpeed:   c.Genome.MaxSpeed(),
			Vision:     c.Genome.VisionRange(),
			Herbivory:  c.Genome.HerbivoreEfficiency(),
			Carnivory:  c.Genome.CarnivoreEfficiency(),
		})
	}
	return rows
}

// SpeciesRows builds the CSV rows for the species ledger, extinct
// species included.
func (w *World) SpeciesRows() []telemetry.SpeciesRow {
	rows := make([]telemetry.SpeciesRow, 0, len(w.Species.Species))
	for _, sp := range w.Species.Species {
		rows = append(rows, telemetry.SpeciesRow{
			ID:           sp.ID,
			Name:         sp.Name,
			LivingCount:  sp.LivingCount,
			AllTimeCount: sp.AllTimeCount,
			Extinct:      sp.Extinct(),
		})
	}
	return rows
}

// Census returns the point-in-time population counts for telemetry.
// The herbivore/carnivore split uses the same diet threshold as
// perception's predator classification.
func (w *World) Census() telemetry.Population {
	pop := telemetry.Population{
		Plants:        w.LivingPlants(),
		LivingSpecies: w.Species.Living(),
	}
	dietThreshold := float32(w.cfg.Perception.DietThreshold)
	for i := range w.Creatures {
		c := &w.Creatures[i]
		if !c.Alive {
			continue
		}
		pop.Creatures++
		if c.Genome.CarnivoreEfficiency() > dietThreshold {
			pop.Carnivores++
		} else {
			pop.Herbivores++
		}
	}
	return pop
}

// EnergyFractions samples the energy fraction of every living creature
// for window statistics.
func (w *World) EnergyFractions() []float64 {
	out := make([]float64, 0, len(w.Creatures))
	for i := range w.Creatures {
		if w.Creatures[i].Alive {
			out = append(out, float64(w.Creatures[i].EnergyFrac()))
		}
	}
	return out
}
