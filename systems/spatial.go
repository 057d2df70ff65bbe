// Package systems provides the spatial index, terrain oracle, and math
// helpers used by the simulation core.
package systems

// Neighbor holds a nearby entity slot with precomputed spatial data.
// This avoids recomputing deltas and distances in perception.
type Neighbor struct {
	Index  int     // Slot in the owning store, valid only within the tick
	DX, DZ float32 // Delta from query origin
	DistSq float32 // Squared distance (avoid sqrt in the hot path)
}

// entry is one stored position. Positions are captured at insert so
// queries never reach back into the entity store.
type entry struct {
	index int
	x, z  float32
}

// SpatialHash is a uniform grid over the bounded ground plane. It is
// fully rebuilt once per tick before perception runs and queried many
// times per tick.
type SpatialHash struct {
	cellSize float32
	cols     int
	rows     int
	width    float32
	depth    float32
	cells    [][]entry
}

// NewSpatialHash creates a grid covering a width x depth world. Cell
// size should roughly match typical perception radius so occupancy per
// cell stays O(1) at target densities.
func NewSpatialHash(width, depth, cellSize float32) *SpatialHash {
	cols := int(width/cellSize) + 1
	rows := int(depth/cellSize) + 1

	cells := make([][]entry, cols*rows)
	for i := range cells {
		cells[i] = make([]entry, 0, 8)
	}

	return &SpatialHash{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		width:    width,
		depth:    depth,
		cells:    cells,
	}
}

// Clear removes all entries, keeping cell capacity for reuse.
func (h *SpatialHash) Clear() {
	for i := range h.cells {
		h.cells[i] = h.cells[i][:0]
	}
}

// Insert adds a store slot at the given ground position.
func (h *SpatialHash) Insert(index int, x, z float32) {
	idx := h.cellIndex(x, z)
	h.cells[idx] = append(h.cells[idx], entry{index: index, x: x, z: z})
}

// QueryRadiusInto appends every stored slot within radius of (x, z) to
// dst and returns the updated slice. Reuse dst across calls to avoid
// allocations. Cells are visited by bounding square, then filtered by
// exact squared distance so the square-vs-circle mismatch never leaks
// false positives.
func (h *SpatialHash) QueryRadiusInto(dst []Neighbor, x, z, radius float32, exclude int) []Neighbor {
	cellRadius := int(radius/h.cellSize) + 1

	centerCol := int(x / h.cellSize)
	centerRow := int(z / h.cellSize)

	minCol := clampInt(centerCol-cellRadius, 0, h.cols-1)
	maxCol := clampInt(centerCol+cellRadius, 0, h.cols-1)
	minRow := clampInt(centerRow-cellRadius, 0, h.rows-1)
	maxRow := clampInt(centerRow+cellRadius, 0, h.rows-1)

	radiusSq := radius * radius

	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			for _, e := range h.cells[row*h.cols+col] {
				if e.index == exclude {
					continue
				}
				dx := e.x - x
				dz := e.z - z
				distSq := dx*dx + dz*dz
				if distSq <= radiusSq {
					dst = append(dst, Neighbor{Index: e.index, DX: dx, DZ: dz, DistSq: distSq})
				}
			}
		}
	}

	return dst
}

// cellIndex returns the flat cell index for a world position, clamped
// to the grid. The world is bounded, not toroidal.
func (h *SpatialHash) cellIndex(x, z float32) int {
	col := clampInt(int(x/h.cellSize), 0, h.cols-1)
	row := clampInt(int(z/h.cellSize), 0, h.rows-1)
	return row*h.cols + col
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
