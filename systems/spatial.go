package systems

import (
	"math"

	"github.com/pthm-cable/biome/ecs"
)

// Neighbor holds a nearby entity with precomputed spatial data.
type Neighbor struct {
	E      ecs.Entity
	DX, DY float64 // toroidal delta from query origin
	DistSq float64
}

type gridEntry struct {
	e    ecs.Entity
	x, y float64
}

// SpatialGrid buckets entity positions into uniform cells covering the torus.
// Positions are captured at insert time; callers rebuild the grid after
// anything moves.
type SpatialGrid struct {
	cellW, cellH float64
	cols, rows   int
	width        float64
	height       float64
	cells        [][]gridEntry
}

// NewSpatialGrid creates a grid covering the given world size. The cell size
// is stretched so that a whole number of cells spans each axis exactly.
func NewSpatialGrid(width, height, cellSize float64) *SpatialGrid {
	cols := max(1, int(math.Ceil(width/cellSize)))
	rows := max(1, int(math.Ceil(height/cellSize)))

	cells := make([][]gridEntry, cols*rows)
	for i := range cells {
		cells[i] = make([]gridEntry, 0, 8)
	}

	return &SpatialGrid{
		cellW:  width / float64(cols),
		cellH:  height / float64(rows),
		cols:   cols,
		rows:   rows,
		width:  width,
		height: height,
		cells:  cells,
	}
}

// Clear removes all entities from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds an entity at the given position.
func (g *SpatialGrid) Insert(e ecs.Entity, x, y float64) {
	idx := g.cellIndex(x, y)
	g.cells[idx] = append(g.cells[idx], gridEntry{e: e, x: x, y: y})
}

// QueryRadiusInto appends every entity within radius of (x, y), other than
// exclude, to dst. Each candidate is visited once even when the radius spans
// the whole torus.
func (g *SpatialGrid) QueryRadiusInto(dst []Neighbor, x, y, radius float64, exclude ecs.Entity) []Neighbor {
	radiusSq := radius * radius
	cols := g.span(int(math.Floor(x/g.cellW)), int(math.Ceil(radius/g.cellW)), g.cols)
	rows := g.span(int(math.Floor(y/g.cellH)), int(math.Ceil(radius/g.cellH)), g.rows)

	for _, row := range rows {
		for _, col := range cols {
			for _, c := range g.cells[row*g.cols+col] {
				if c.e == exclude {
					continue
				}
				dx, dy := ToroidalDelta(x, y, c.x, c.y, g.width, g.height)
				distSq := dx*dx + dy*dy
				if distSq <= radiusSq {
					dst = append(dst, Neighbor{E: c.e, DX: dx, DY: dy, DistSq: distSq})
				}
			}
		}
	}
	return dst
}

// Nearest returns the closest entity within radius that passes keep. Ties
// resolve to the lower entity id, which matches a linear scan in insertion
// order. ok is false when nothing qualifies.
func (g *SpatialGrid) Nearest(x, y, radius float64, exclude ecs.Entity, keep func(ecs.Entity) bool) (best Neighbor, ok bool) {
	for _, n := range g.QueryRadiusInto(nil, x, y, radius, exclude) {
		if keep != nil && !keep(n.E) {
			continue
		}
		if !ok || n.DistSq < best.DistSq || (n.DistSq == best.DistSq && n.E < best.E) {
			best, ok = n, true
		}
	}
	return best, ok
}

// span lists the wrapped cell indices within reach of center, each once.
func (g *SpatialGrid) span(center, reach, n int) []int {
	if 2*reach+1 >= n {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out
	}
	out := make([]int, 0, 2*reach+1)
	for d := -reach; d <= reach; d++ {
		out = append(out, ((center+d)%n+n)%n)
	}
	return out
}

// cellIndex returns the flat index for a world position.
func (g *SpatialGrid) cellIndex(x, y float64) int {
	col := int(x / g.cellW)
	row := int(y / g.cellH)

	// Clamp to valid range
	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}

	return row*g.cols + col
}
