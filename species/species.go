// Package species implements nearest-centroid species clustering over
// genomes.
package species

import (
	"math"
	"math/rand"
	"sort"

	"github.com/Dev2150/prismata/genome"
)

// Color is an RGB display color derived from a species' founding hue.
type Color struct {
	R, G, B uint8
}

// Info is one species record. Records persist after extinction so the
// history remains available for display; only LivingCount goes to zero.
type Info struct {
	ID           int32
	Name         string
	Centroid     genome.Genome
	LivingCount  int
	AllTimeCount int
	Color        Color
}

// Extinct reports whether the species has no living members.
func (s *Info) Extinct() bool {
	return s.LivingCount == 0
}

// Manager owns the species records and the clustering threshold.
type Manager struct {
	Species []*Info

	epsilon float32
	nextID  int32
	rng     *rand.Rand
}

// NewManager creates a manager with the given genetic-distance epsilon.
// The rng is used only for procedural name generation.
func NewManager(epsilon float32, rng *rand.Rand) *Manager {
	return &Manager{
		epsilon: epsilon,
		nextID:  1,
		rng:     rng,
	}
}

// Epsilon returns the clustering threshold, which doubles as the mate
// compatibility bound.
func (m *Manager) Epsilon() float32 {
	return m.epsilon
}

// Classify assigns a genome to the nearest living species within
// epsilon, or founds a new species seeded by the genome. Returns the
// species ID and increments its member counts.
func (m *Manager) Classify(g *genome.Genome) int32 {
	var best *Info
	var bestDist float32 = math.MaxFloat32

	for _, sp := range m.Species {
		if sp.Extinct() {
			continue
		}
		d := g.DistanceTo(&sp.Centroid)
		if d < bestDist {
			bestDist = d
			best = sp
		}
	}

	if best != nil && bestDist < m.epsilon {
		best.LivingCount++
		best.AllTimeCount++
		return best.ID
	}

	sp := &Info{
		ID:           m.nextID,
		Name:         m.generateName(),
		Centroid:     *g,
		LivingCount:  1,
		AllTimeCount: 1,
		Color:        colorFromHue(g.Hue()),
	}
	m.nextID++
	m.Species = append(m.Species, sp)
	return sp.ID
}

// RecordDeath decrements a species' living count.
func (m *Manager) RecordDeath(speciesID int32) {
	if sp := m.Get(speciesID); sp != nil && sp.LivingCount > 0 {
		sp.LivingCount--
	}
}

// Get returns the species record for an ID, or nil.
func (m *Manager) Get(speciesID int32) *Info {
	for _, sp := range m.Species {
		if sp.ID == speciesID {
			return sp
		}
	}
	return nil
}

// UpdateCentroids recomputes each species' centroid as the mean genome
// of its living members and refreshes living counts. Species with no
// members keep their last centroid and are marked extinct by the zeroed
// count; their records are retained. Run periodically, not every tick.
func (m *Manager) UpdateCentroids(memberGenomes map[int32][]*genome.Genome) {
	for _, sp := range m.Species {
		members := memberGenomes[sp.ID]
		sp.LivingCount = len(members)
		if len(members) == 0 {
			continue
		}

		var sums [genome.GeneCount]float64
		for _, g := range members {
			for i, v := range g.Genes {
				sums[i] += float64(v)
			}
		}
		for i := range sp.Centroid.Genes {
			sp.Centroid.Genes[i] = float32(sums[i] / float64(len(members)))
		}
	}
}

// Living returns the number of non-extinct species.
func (m *Manager) Living() int {
	n := 0
	for _, sp := range m.Species {
		if !sp.Extinct() {
			n++
		}
	}
	return n
}

// Top returns the n largest living species by member count.
func (m *Manager) Top(n int) []*Info {
	living := make([]*Info, 0, len(m.Species))
	for _, sp := range m.Species {
		if !sp.Extinct() {
			living = append(living, sp)
		}
	}
	sort.Slice(living, func(i, j int) bool {
		return living[i].LivingCount > living[j].LivingCount
	})
	if n > len(living) {
		n = len(living)
	}
	return living[:n]
}

// Restore replaces the manager's records wholesale. Used by save
// loading; nextID continues above the highest restored ID.
func (m *Manager) Restore(records []*Info) {
	m.Species = records
	m.nextID = 1
	for _, sp := range records {
		if sp.ID >= m.nextID {
			m.nextID = sp.ID + 1
		}
	}
}

// colorFromHue derives the display color from the founder's hue gene.
// Saturation and value are fixed for legible, distinct colors.
func colorFromHue(hue float32) Color {
	r, g, b := hsvToRGB(float64(hue), 0.7, 0.9)
	return Color{R: r, G: g, B: b}
}

// hsvToRGB converts HSV to RGB.
func hsvToRGB(h, s, v float64) (uint8, uint8, uint8) {
	h = math.Mod(h, 360)
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return uint8((r + m) * 255), uint8((g + m) * 255), uint8((b + m) * 255)
}
