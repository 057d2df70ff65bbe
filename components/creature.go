// Package components defines the plain data types owned by the world's
// entity store.
package components

import (
	"github.com/Dev2150/prismata/genome"
	"github.com/Dev2150/prismata/needs"
)

// ID identifies an entity for the lifetime of a world. IDs are never
// reused; 0 is reserved as invalid.
type ID uint64

// InvalidID marks a missing cross-reference.
const InvalidID ID = 0

// Vec3 is a world-space position. Y is elevation and is always re-snapped
// to the terrain surface after movement.
type Vec3 struct {
	X, Y, Z float32
}

// Vec2 is a ground-plane vector.
type Vec2 struct {
	X, Z float32
}

// State is a creature's behavior state.
type State uint8

const (
	StateIdle State = iota
	StateSeekFood
	StateSeekWater
	StateSleeping
	StateSeekMate
	StateFleeing
	StateHunting
	StateMating
)

// String returns the state name for logs and CSV export.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSeekFood:
		return "seek_food"
	case StateSeekWater:
		return "seek_water"
	case StateSleeping:
		return "sleeping"
	case StateSeekMate:
		return "seek_mate"
	case StateFleeing:
		return "fleeing"
	case StateHunting:
		return "hunting"
	case StateMating:
		return "mating"
	}
	return "unknown"
}

// Perception caches the nearest-of-category results computed once per
// tick. Distances hold NotFound when nothing qualified; IDs are resolved
// through the world's ID map and may refer to entities that died since
// perception ran.
type Perception struct {
	PredatorID   ID
	PredatorDist float32
	PreyID       ID
	PreyDist     float32
	MateID       ID
	MateDist     float32

	FoodPlant int // Plant slot, valid only within the tick
	FoodDist  float32
	FoodPos   Vec3

	WaterPos   Vec3
	WaterDist  float32
	WaterFound bool
	WaterTimer float32 // Seconds until the next terrain water query
}

// NotFound is the sentinel distance for empty perception slots.
const NotFound float32 = -1

// Reset clears the per-tick fields back to their sentinels. The water
// cache survives between queries and is left alone.
func (p *Perception) Reset() {
	p.PredatorID = InvalidID
	p.PredatorDist = NotFound
	p.PreyID = InvalidID
	p.PreyDist = NotFound
	p.MateID = InvalidID
	p.MateDist = NotFound
	p.FoodPlant = -1
	p.FoodDist = NotFound
}

// Creature is one fauna entity. The world's store owns the slice; every
// other component refers to creatures by ID only.
type Creature struct {
	// Identity
	ID         ID
	ParentA    ID
	ParentB    ID
	Generation int32
	SpeciesID  int32

	// Spatial
	Pos      Vec3
	Velocity Vec2
	Heading  float32

	// Biology
	Genome    genome.Genome
	Needs     needs.Needs
	Energy    float32
	MaxEnergy float32
	Age       float32
	Lifespan  float32
	Mass      float32
	Alive     bool

	// Behavior
	State          State
	GestationTimer float32
	MateTargetID   ID

	// Perception cache, rewritten each tick before acting
	Senses Perception
}

// EnergyFrac returns energy as a fraction of capacity for display and
// telemetry.
func (c *Creature) EnergyFrac() float32 {
	if c.MaxEnergy <= 0 {
		return 0
	}
	return c.Energy / c.MaxEnergy
}

// AddEnergy credits energy, clamped to capacity. Every gain site must go
// through here; the high-side clamp is not applied anywhere else.
func (c *Creature) AddEnergy(amount float32) {
	c.Energy += amount
	if c.Energy > c.MaxEnergy {
		c.Energy = c.MaxEnergy
	}
}

// IsElderly reports whether the old-age energy surcharge applies.
func (c *Creature) IsElderly() bool {
	return c.Age > c.Lifespan*0.8
}
