// Package genome defines the heritable parameter vector for creatures.
//
// Every gene is stored normalized to [0,1] so crossover, mutation, and
// distance stay generic over the whole array. Accessors remap raw values
// to their biological ranges.
package genome

import (
	"math"
	"math/rand"
)

// Gene indexes the fixed gene array.
type Gene uint8

const (
	GeneMutationRate Gene = iota // Per-gene mutation probability
	GeneMutationStd              // Gaussian mutation noise std
	GeneMaxSpeed
	GeneVisionRange
	GeneVisionFOV
	GeneMaxSlope // Steepest climbable slope (sine of angle)
	GeneLifespan
	GeneMass
	GeneLitterSize
	GeneGestation
	GeneHerbivory // Plant-feeding efficiency
	GeneCarnivory // Meat-feeding efficiency
	GeneFearSensitivity
	GeneHue // Display hue, also seeds species color
	GeneHungerRate
	GeneThirstRate
	GeneSleepRate
	GeneLibidoRate
	GeneSocialRate

	GeneCount
)

// Genome is a fixed-length vector of normalized genes.
// Save files embed the raw array verbatim, so GeneCount is part of the
// persistence contract.
type Genome struct {
	Genes [GeneCount]float32
}

// Random returns a genome with every gene sampled uniformly from [0,1].
func Random(rng *rand.Rand) Genome {
	var g Genome
	for i := range g.Genes {
		g.Genes[i] = rng.Float32()
	}
	return g
}

// remap linearly maps a raw [0,1] gene to [lo, hi].
func (g *Genome) remap(gene Gene, lo, hi float32) float32 {
	return lo + g.Genes[gene]*(hi-lo)
}

// MutationRate returns the per-gene mutation probability. Evolvable, so
// mutation rate itself drifts under selection.
func (g *Genome) MutationRate() float32 { return g.remap(GeneMutationRate, 0.01, 0.20) }

// MutationStd returns the Gaussian noise std applied on mutation.
func (g *Genome) MutationStd() float32 { return g.remap(GeneMutationStd, 0.01, 0.15) }

// MaxSpeed returns top ground speed in world units per second.
func (g *Genome) MaxSpeed() float32 { return g.remap(GeneMaxSpeed, 2.0, 14.0) }

// VisionRange returns the perception radius in world units.
func (g *Genome) VisionRange() float32 { return g.remap(GeneVisionRange, 10.0, 60.0) }

// VisionFOV returns the full vision cone angle in radians.
func (g *Genome) VisionFOV() float32 {
	return g.remap(GeneVisionFOV, float32(math.Pi)/2, float32(math.Pi)*5/3)
}

// MaxSlope returns the steepest climbable slope as sine of the angle.
func (g *Genome) MaxSlope() float32 { return g.remap(GeneMaxSlope, 0.15, 0.85) }

// Lifespan returns maximum age in seconds of simulated time.
func (g *Genome) Lifespan() float32 { return g.remap(GeneLifespan, 120, 600) }

// Mass returns body mass. Scales energy capacity, movement cost, and the
// predator/prey classification.
func (g *Genome) Mass() float32 { return g.remap(GeneMass, 0.5, 5.0) }

// LitterSize returns offspring per birth.
func (g *Genome) LitterSize() int {
	return 1 + int(g.Genes[GeneLitterSize]*3.0)
}

// GestationTime returns seconds between pairing and birth.
func (g *Genome) GestationTime() float32 { return g.remap(GeneGestation, 5, 30) }

// HerbivoreEfficiency returns the fraction of plant nutrition converted
// to energy when grazing.
func (g *Genome) HerbivoreEfficiency() float32 { return g.Genes[GeneHerbivory] }

// CarnivoreEfficiency returns the fraction of prey energy converted to
// energy when hunting.
func (g *Genome) CarnivoreEfficiency() float32 { return g.Genes[GeneCarnivory] }

// FearSensitivity scales how strongly visible predators raise Fear.
func (g *Genome) FearSensitivity() float32 { return g.Genes[GeneFearSensitivity] }

// Hue returns the display hue in degrees.
func (g *Genome) Hue() float32 { return g.remap(GeneHue, 0, 360) }

// CraveRate returns the urgency rise rate per second for a drive gene.
// Rates near zero leave the drive latent.
func (g *Genome) CraveRate(gene Gene) float32 {
	v := g.Genes[gene]
	// Bottom of the range is truly latent: the drive never rises.
	if v < 0.05 {
		return 0
	}
	return v * 0.05
}

// Crossover produces a child by an independent 50/50 per-gene coin flip.
// No linkage between genes.
func Crossover(a, b Genome, rng *rand.Rand) Genome {
	var child Genome
	for i := range child.Genes {
		if rng.Float32() < 0.5 {
			child.Genes[i] = a.Genes[i]
		} else {
			child.Genes[i] = b.Genes[i]
		}
	}
	return child
}

// Mutate perturbs each gene independently with probability MutationRate,
// adding Gaussian noise with std MutationStd, clamped to [0,1].
func (g *Genome) Mutate(rng *rand.Rand) {
	rate := g.MutationRate()
	std := float64(g.MutationStd())
	for i := range g.Genes {
		if rng.Float32() >= rate {
			continue
		}
		v := g.Genes[i] + float32(rng.NormFloat64()*std)
		if v < 0 {
			v = 0
		} else if v > 1 {
			v = 1
		}
		g.Genes[i] = v
	}
}

// DistanceTo returns the normalized RMS distance between two genomes.
// Symmetric, non-negative, zero iff the genomes are identical. Used for
// species clustering and the UI divergence percentage.
func (g *Genome) DistanceTo(other *Genome) float32 {
	var sum float64
	for i := range g.Genes {
		d := float64(g.Genes[i] - other.Genes[i])
		sum += d * d
	}
	return float32(math.Sqrt(sum / float64(GeneCount)))
}
