package physics

import "math"

// SpatialGrid is a uniform grid for broad-phase collision detection on a bounded field.
// Boxes are inserted by index into every cell they cover, then candidate boxes
// near a query box are visited without scanning the whole store.
//
// A box may be reported more than once by a single query when it spans
// several cells. Callers that need a unique answer must tolerate duplicates.
type SpatialGrid struct {
	cellSize    float64
	invCellSize float64 // 1 / cellSize (precomputed to avoid division)
	cols        int
	rows        int
	cells       []gridCell
}

// gridCell stores the indices of boxes that fall within a grid cell.
// The slice is reused between ticks (reset to [:0]) to avoid allocations.
type gridCell struct {
	items []int
}

// NewSpatialGrid creates a spatial grid covering the given field dimensions.
func NewSpatialGrid(fieldW, fieldH, cellSize float64) *SpatialGrid {
	cols := int(math.Ceil(fieldW / cellSize))
	rows := int(math.Ceil(fieldH / cellSize))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	return &SpatialGrid{
		cellSize:    cellSize,
		invCellSize: 1.0 / cellSize,
		cols:        cols,
		rows:        rows,
		cells:       make([]gridCell, cols*rows),
	}
}

// Clear removes all items from the grid without deallocating cell memory.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i].items = g.cells[i].items[:0]
	}
}

// Insert adds the box identified by index to every cell it covers.
// Boxes outside the field are clamped onto the border cells.
func (g *SpatialGrid) Insert(r Rect, index int) {
	c0, r0, c1, r1 := g.span(r)
	for row := r0; row <= r1; row++ {
		rowOffset := row * g.cols
		for col := c0; col <= c1; col++ {
			cell := &g.cells[rowOffset+col]
			cell.items = append(cell.items, index)
		}
	}
}

// Query calls fn for each item index stored in the cells covered by r.
// If fn returns true, iteration stops early.
func (g *SpatialGrid) Query(r Rect, fn func(index int) bool) {
	c0, r0, c1, r1 := g.span(r)
	for row := r0; row <= r1; row++ {
		rowOffset := row * g.cols
		for col := c0; col <= c1; col++ {
			for _, itemIdx := range g.cells[rowOffset+col].items {
				if fn(itemIdx) {
					return
				}
			}
		}
	}
}

// span returns the inclusive cell range covered by r.
func (g *SpatialGrid) span(r Rect) (c0, r0, c1, r1 int) {
	c0, r0 = g.posToCell(r.X, r.Y)
	c1, r1 = g.posToCell(r.X+r.W, r.Y+r.H)
	return c0, r0, c1, r1
}

// posToCell converts field coordinates to grid cell coordinates.
// Clamps to valid range to handle positions just outside the field.
func (g *SpatialGrid) posToCell(x, y float64) (col, row int) {
	col = int(math.Floor(x * g.invCellSize))
	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}

	row = int(math.Floor(y * g.invCellSize))
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}

	return col, row
}
