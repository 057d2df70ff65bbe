package components

// PlantType distinguishes plant growth forms. Bigger forms carry more
// nutrition and regrow slower.
type PlantType uint8

const (
	PlantGrass PlantType = iota
	PlantBush
	PlantTree
)

// String returns the plant type name.
func (t PlantType) String() string {
	switch t {
	case PlantGrass:
		return "grass"
	case PlantBush:
		return "bush"
	case PlantTree:
		return "tree"
	}
	return "unknown"
}

// MaxNutrition returns the full-grown nutrition for a plant type.
func (t PlantType) MaxNutrition() float32 {
	switch t {
	case PlantBush:
		return 60
	case PlantTree:
		return 120
	}
	return 25
}

// RegrowDelay returns seconds between death and regrowth.
func (t PlantType) RegrowDelay() float32 {
	switch t {
	case PlantBush:
		return 45
	case PlantTree:
		return 90
	}
	return 20
}

// Plant is one flora entity. Plants never move; a dead plant regrows in
// place after RegrowDelay and is evicted from storage only long after
// death (memory reclamation, not simulation logic).
type Plant struct {
	Pos       Vec3
	Type      PlantType
	Nutrition float32
	GrowTimer float32 // Seconds until regrowth while dead
	DeadTime  float32 // Seconds spent dead, drives eviction
	Alive     bool
}

// Deplete removes up to amount of nutrition and returns what was
// actually taken. Hitting zero kills the plant and starts its regrow
// timer.
func (p *Plant) Deplete(amount float32) float32 {
	if !p.Alive || amount <= 0 {
		return 0
	}
	taken := amount
	if taken > p.Nutrition {
		taken = p.Nutrition
	}
	p.Nutrition -= taken
	if p.Nutrition <= 0 {
		p.Nutrition = 0
		p.Alive = false
		p.GrowTimer = p.Type.RegrowDelay()
		p.DeadTime = 0
	}
	return taken
}

// Grow advances the regrowth clock for a dead plant. Returns true when
// the plant came back to life this call.
func (p *Plant) Grow(dt float32) bool {
	if p.Alive {
		return false
	}
	p.DeadTime += dt
	p.GrowTimer -= dt
	if p.GrowTimer <= 0 {
		p.Alive = true
		p.Nutrition = p.Type.MaxNutrition()
		p.DeadTime = 0
		return true
	}
	return false
}
