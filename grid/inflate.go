package grid

import (
	"fmt"
	"math"
)

// Inflate dilates every Occupied cell of g by a disk of radius meters, so that
// each cell within ceil(radius/resolution) pixels (Euclidean) of an obstacle
// becomes Occupied. Free and Unknown cells outside the disks are preserved.
// The result is a new Grid; g is not modified.
//
// Complexity: O(W×H + K×r²) for K occupied cells and r the pixel radius.
func Inflate(g *Grid, radius float64) (*Grid, error) {
	if radius < 0 || math.IsNaN(radius) || math.IsInf(radius, 0) {
		return nil, fmt.Errorf("%w: %v", ErrBadRadius, radius)
	}
	r := int(math.Ceil(radius / g.resolution))
	cells := g.Cells()
	if r == 0 {
		return g.WithCells(cells)
	}

	disk := diskOffsets(r)
	for idx, c := range g.cells {
		if c != Occupied {
			continue
		}
		p := g.Coordinate(idx)
		// interior obstacle cells add nothing new
		if g.surrounded(p) {
			continue
		}
		for _, d := range disk {
			x, y := p.X+d.X, p.Y+d.Y
			if g.InBounds(x, y) {
				cells[g.Index(x, y)] = Occupied
			}
		}
	}

	return g.WithCells(cells)
}

// surrounded reports whether all 8 neighbors of p are Occupied.
func (g *Grid) surrounded(p Pixel) bool {
	for _, d := range offsets8 {
		if !g.IsOccupied(p.X+d.X, p.Y+d.Y) {
			return false
		}
	}
	return true
}

func diskOffsets(r int) []Pixel {
	out := make([]Pixel, 0, (2*r+1)*(2*r+1))
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				out = append(out, Pixel{X: dx, Y: dy})
			}
		}
	}
	return out
}
