package systems

import (
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/Dev2150/prismata/components"
)

// Terrain is the surface oracle consumed by the simulation core. The
// core only reads it; mesh generation and rendering live outside this
// module entirely.
type Terrain interface {
	// Height returns elevation at a ground position.
	Height(x, z float32) float32
	// Slope returns the sine of the surface angle from horizontal.
	Slope(x, z float32) float32
	// IsWater reports whether the position lies under the water table.
	IsWater(x, z float32) bool
	// SnapToSurface projects a ground position onto the surface.
	SnapToSurface(x, z float32) components.Vec3
	// FindNearestWater searches outward from a position, up to radius.
	FindNearestWater(from components.Vec3, radius float32) (components.Vec3, bool)
	// RandomLandPosition returns a dry position inside the world bounds.
	RandomLandPosition(rng *rand.Rand) components.Vec3
}

// Heightfield implements Terrain over fractal simplex noise. It is the
// default oracle for headless runs and tests; an external mesh-backed
// oracle can replace it behind the same interface.
type Heightfield struct {
	noise    opensimplex.Noise
	width    float32
	depth    float32
	seaLevel float32

	baseFreq  float64
	octaves   int
	amplitude float32
}

// NewHeightfield creates a noise-backed terrain of width x depth world
// units. seaLevel is the water table elevation.
func NewHeightfield(seed int64, width, depth, seaLevel float32) *Heightfield {
	return &Heightfield{
		noise:     opensimplex.New(seed),
		width:     width,
		depth:     depth,
		seaLevel:  seaLevel,
		baseFreq:  0.008,
		octaves:   4,
		amplitude: 40,
	}
}

// Height samples fractal noise: each octave doubles frequency and
// halves amplitude.
func (t *Heightfield) Height(x, z float32) float32 {
	freq := t.baseFreq
	amp := 1.0
	sum := 0.0
	norm := 0.0
	for i := 0; i < t.octaves; i++ {
		sum += t.noise.Eval2(float64(x)*freq, float64(z)*freq) * amp
		norm += amp
		freq *= 2
		amp *= 0.5
	}
	return float32(sum/norm) * t.amplitude
}

// slopeSampleStep is the finite-difference step for gradient estimation.
const slopeSampleStep = 1.0

// Slope estimates the gradient by central differences and converts it
// to the sine of the angle from horizontal.
func (t *Heightfield) Slope(x, z float32) float32 {
	gx := (t.Height(x+slopeSampleStep, z) - t.Height(x-slopeSampleStep, z)) / (2 * slopeSampleStep)
	gz := (t.Height(x, z+slopeSampleStep) - t.Height(x, z-slopeSampleStep)) / (2 * slopeSampleStep)
	grad := float32(math.Sqrt(float64(gx*gx + gz*gz)))
	// sin(atan(g)) = g / sqrt(1 + g^2)
	return grad / float32(math.Sqrt(float64(1+grad*grad)))
}

// IsWater reports whether the surface lies below the water table.
func (t *Heightfield) IsWater(x, z float32) bool {
	return t.Height(x, z) < t.seaLevel
}

// SnapToSurface returns the position with Y set to the surface height.
// Underwater positions snap to the water table, not the submerged floor.
func (t *Heightfield) SnapToSurface(x, z float32) components.Vec3 {
	h := t.Height(x, z)
	if h < t.seaLevel {
		h = t.seaLevel
	}
	return components.Vec3{X: x, Y: h, Z: z}
}

// FindNearestWater ring-searches outward from the given position. The
// sampling is coarse; callers treat the result as a goal to steer
// toward, not an exact shoreline.
func (t *Heightfield) FindNearestWater(from components.Vec3, radius float32) (components.Vec3, bool) {
	const ringStep = 8.0
	const angleSteps = 16

	if t.IsWater(from.X, from.Z) {
		return t.SnapToSurface(from.X, from.Z), true
	}

	for r := float32(ringStep); r <= radius; r += ringStep {
		for i := 0; i < angleSteps; i++ {
			a := float64(i) / angleSteps * 2 * math.Pi
			x := from.X + r*float32(math.Cos(a))
			z := from.Z + r*float32(math.Sin(a))
			if x < 0 || x > t.width || z < 0 || z > t.depth {
				continue
			}
			if t.IsWater(x, z) {
				return t.SnapToSurface(x, z), true
			}
		}
	}
	return components.Vec3{}, false
}

// RandomLandPosition rejection-samples a dry spot. Falls back to the
// world center after a bounded number of attempts so a pathological
// all-water seed cannot hang spawning.
func (t *Heightfield) RandomLandPosition(rng *rand.Rand) components.Vec3 {
	for i := 0; i < 256; i++ {
		x := rng.Float32() * t.width
		z := rng.Float32() * t.depth
		if !t.IsWater(x, z) {
			return t.SnapToSurface(x, z)
		}
	}
	return t.SnapToSurface(t.width/2, t.depth/2)
}

// SeaLevel returns the water table elevation.
func (t *Heightfield) SeaLevel() float32 {
	return t.seaLevel
}
