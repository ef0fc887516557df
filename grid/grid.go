package grid

import (
	"math"

	"github.com/paulmach/orb"
)

// Grid is an immutable occupancy raster. Cells are stored row-major,
// index = y*Width + x; y grows away from the origin.
type Grid struct {
	width, height int
	resolution    float64
	origin        orb.Point
	cells         []CellState
}

// New builds a Grid from a flat row-major cell slice. The slice is copied.
// Returns ErrEmptyGrid, ErrCellCount, ErrBadResolution or ErrBadOrigin on invalid input.
// Complexity: O(W×H).
func New(width, height int, resolution float64, origin orb.Point, cells []CellState) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyGrid
	}
	if len(cells) != width*height {
		return nil, ErrCellCount
	}
	if err := validateMeta(resolution, origin); err != nil {
		return nil, err
	}
	g := &Grid{
		width:      width,
		height:     height,
		resolution: resolution,
		origin:     origin,
		cells:      make([]CellState, len(cells)),
	}
	copy(g.cells, cells)

	return g, nil
}

// FromRows builds a Grid from rows[y][x]. Row 0 is the row at the origin.
// Returns ErrEmptyGrid if there are no rows or no columns,
// ErrNonRectangular if any row length differs.
// Complexity: O(W×H).
func FromRows(rows [][]CellState, resolution float64, origin orb.Point) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	h, w := len(rows), len(rows[0])
	cells := make([]CellState, 0, w*h)
	for _, row := range rows {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
		cells = append(cells, row...)
	}

	return New(w, h, resolution, origin, cells)
}

func validateMeta(resolution float64, origin orb.Point) error {
	if !(resolution > 0) || math.IsInf(resolution, 0) {
		return ErrBadResolution
	}
	for _, c := range origin {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return ErrBadOrigin
		}
	}
	return nil
}

// WithCells returns a new Grid with g's metadata and the given cells.
func (g *Grid) WithCells(cells []CellState) (*Grid, error) {
	return New(g.width, g.height, g.resolution, g.origin, cells)
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Resolution returns meters per pixel.
func (g *Grid) Resolution() float64 { return g.resolution }

// Origin returns the world coordinate of pixel (0,0).
func (g *Grid) Origin() orb.Point { return g.origin }

// Len returns Width×Height.
func (g *Grid) Len() int { return len(g.cells) }

// MaxDimension returns max(Width, Height).
func (g *Grid) MaxDimension() int {
	if g.width > g.height {
		return g.width
	}
	return g.height
}

// SameShape reports whether o has the same dimensions and resolution as g.
func (g *Grid) SameShape(o *Grid) bool {
	return o != nil && g.width == o.width && g.height == o.height && g.resolution == o.resolution
}

// InBounds reports whether (x,y) lies within the grid boundaries.
// Complexity: O(1).
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Index maps (x,y) to a row-major index: y*Width + x.
// Complexity: O(1).
func (g *Grid) Index(x, y int) int {
	return y*g.width + x
}

// Coordinate converts a row-major index back to a Pixel.
// Complexity: O(1).
func (g *Grid) Coordinate(idx int) Pixel {
	return Pixel{X: idx % g.width, Y: idx / g.width}
}

// At returns the state of (x,y). Cells outside the grid are Unknown.
func (g *Grid) At(x, y int) CellState {
	if !g.InBounds(x, y) {
		return Unknown
	}
	return g.cells[g.Index(x, y)]
}

// CellAt returns the state of the cell at a row-major index.
func (g *Grid) CellAt(idx int) CellState {
	return g.cells[idx]
}

// IsFree reports whether (x,y) is inside the grid and Free.
func (g *Grid) IsFree(x, y int) bool {
	return g.At(x, y) == Free
}

// IsOccupied reports whether (x,y) is inside the grid and Occupied.
func (g *Grid) IsOccupied(x, y int) bool {
	return g.InBounds(x, y) && g.cells[g.Index(x, y)] == Occupied
}

// Cells returns a copy of the row-major cell slice.
func (g *Grid) Cells() []CellState {
	out := make([]CellState, len(g.cells))
	copy(out, g.cells)
	return out
}

// Count returns the number of cells in state s.
func (g *Grid) Count(s CellState) int {
	n := 0
	for _, c := range g.cells {
		if c == s {
			n++
		}
	}
	return n
}

// ToWorld converts a (possibly fractional) pixel location into world coordinates.
func (g *Grid) ToWorld(p orb.Point) orb.Point {
	return orb.Point{
		g.origin[0] + p[0]*g.resolution,
		g.origin[1] + p[1]*g.resolution,
	}
}

// ToPixel converts a world location into fractional pixel coordinates.
// It is the exact inverse of ToWorld.
func (g *Grid) ToPixel(w orb.Point) orb.Point {
	return orb.Point{
		(w[0] - g.origin[0]) / g.resolution,
		(w[1] - g.origin[1]) / g.resolution,
	}
}

// PixelToWorld converts a discrete pixel into world coordinates.
func (g *Grid) PixelToWorld(p Pixel) orb.Point {
	return g.ToWorld(p.Point())
}
