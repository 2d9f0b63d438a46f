package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/planar/components"
	"github.com/pthm-cable/planar/vector2"
)

// Neighbor holds a nearby entity with precomputed spatial data.
type Neighbor struct {
	E      ecs.Entity
	Delta  vector2.Vector2 // From query origin to the neighbor
	DistSq float64
}

// SpatialGrid provides O(1) neighbor lookups using a cell-based grid.
// Positions outside the world are stored in the nearest edge cell.
type SpatialGrid struct {
	cellSize float64
	cols     int
	rows     int
	cells    [][]ecs.Entity // flat grid of entity lists
}

// NewSpatialGrid creates a spatial grid covering the given world size.
func NewSpatialGrid(bounds Bounds, cellSize float64) *SpatialGrid {
	cols := int(bounds.Width/cellSize) + 1
	rows := int(bounds.Height/cellSize) + 1

	cells := make([][]ecs.Entity, cols*rows)
	for i := range cells {
		cells[i] = make([]ecs.Entity, 0, 8)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    cells,
	}
}

// Clear removes all entities from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds an entity to the grid at the given position.
func (g *SpatialGrid) Insert(e ecs.Entity, p vector2.XY) {
	col, row := g.cell(p)
	idx := row*g.cols + col
	g.cells[idx] = append(g.cells[idx], e)
}

// MaxQueryResults caps the number of neighbors returned by spatial queries.
const MaxQueryResults = 128

// QueryRadiusInto finds entities within radius of origin and appends them to dst
// (up to MaxQueryResults). Reuse dst across calls to avoid allocations.
func (g *SpatialGrid) QueryRadiusInto(dst []Neighbor, origin vector2.XY, radius float64, exclude ecs.Entity, posMap *ecs.Map[components.Position]) []Neighbor {
	o := vector2.From(origin)
	cellRadius := int(radius/g.cellSize) + 1
	centerCol, centerRow := g.cell(o)
	radiusSq := radius * radius

	for row := max(centerRow-cellRadius, 0); row <= min(centerRow+cellRadius, g.rows-1); row++ {
		for col := max(centerCol-cellRadius, 0); col <= min(centerCol+cellRadius, g.cols-1); col++ {
			for _, e := range g.cells[row*g.cols+col] {
				if e == exclude {
					continue
				}

				pos := posMap.Get(e)
				if pos == nil {
					continue
				}

				delta := pos.Minus(o)
				distSq := delta.SqrMagnitude()
				if distSq <= radiusSq {
					dst = append(dst, Neighbor{E: e, Delta: delta, DistSq: distSq})
					if len(dst) >= MaxQueryResults {
						return dst
					}
				}
			}
		}
	}

	return dst
}

// cell returns the clamped column and row for a world position.
func (g *SpatialGrid) cell(p vector2.XY) (col, row int) {
	x, y := p.XY()
	col = min(max(int(x/g.cellSize), 0), g.cols-1)
	row = min(max(int(y/g.cellSize), 0), g.rows-1)
	return col, row
}
