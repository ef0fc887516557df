package grid

import (
	"math"

	"github.com/paulmach/orb"
)

// Line4 returns the 4-connected Bresenham line from a to b, both endpoints
// included. Consecutive pixels differ by exactly one step in X or in Y, so the
// line cannot be crossed by a 4-connected walk.
// Complexity: O(|dx|+|dy|).
func Line4(a, b Pixel) []Pixel {
	nx, ny := b.X-a.X, b.Y-a.Y
	sx, sy := 1, 1
	if nx < 0 {
		nx, sx = -nx, -1
	}
	if ny < 0 {
		ny, sy = -ny, -1
	}

	line := make([]Pixel, 0, nx+ny+1)
	p := a
	line = append(line, p)
	for ix, iy := 0, 0; ix < nx || iy < ny; {
		// step along x while its fractional progress lags behind y's
		if iy >= ny || (ix < nx && (1+2*ix)*ny < (1+2*iy)*nx) {
			p.X += sx
			ix++
		} else {
			p.Y += sy
			iy++
		}
		line = append(line, p)
	}

	return line
}

// LineOfSight reports whether the straight segment between two pixel-space
// points crosses only non-Occupied cells. Pixel (x,y) covers
// [x-0.5, x+0.5) × [y-0.5, y+0.5). When the segment passes exactly through a
// cell corner both side cells must be clear. Cells outside the grid block.
// Complexity: O(|dx|+|dy|).
func (g *Grid) LineOfSight(from, to orb.Point) bool {
	sx, sy := from[0]+0.5, from[1]+0.5
	tx, ty := to[0]+0.5, to[1]+0.5
	xCell, yCell := int(math.Floor(sx)), int(math.Floor(sy))
	toX, toY := int(math.Floor(tx)), int(math.Floor(ty))
	if g.blocks(xCell, yCell) || g.blocks(toX, toY) {
		return false
	}

	dx, dy := tx-sx, ty-sy
	adx, ady := math.Abs(dx), math.Abs(dy)
	stepX, stepY := 0, 0
	if dx > 0 {
		stepX = 1
	} else if dx < 0 {
		stepX = -1
	}
	if dy > 0 {
		stepY = 1
	} else if dy < 0 {
		stepY = -1
	}

	tDeltaX, tDeltaY := math.Inf(1), math.Inf(1)
	tMaxX, tMaxY := math.Inf(1), math.Inf(1)
	if stepX > 0 {
		tDeltaX = 1 / adx
		tMaxX = (float64(xCell+1) - sx) / adx
	} else if stepX < 0 {
		tDeltaX = 1 / adx
		tMaxX = (sx - float64(xCell)) / adx
	}
	if stepY > 0 {
		tDeltaY = 1 / ady
		tMaxY = (float64(yCell+1) - sy) / ady
	} else if stepY < 0 {
		tDeltaY = 1 / ady
		tMaxY = (sy - float64(yCell)) / ady
	}

	limit := abs(toX-xCell) + abs(toY-yCell) + 1
	for i := 0; i <= limit; i++ {
		if xCell == toX && yCell == toY {
			return true
		}
		switch {
		case tMaxX < tMaxY:
			xCell += stepX
			tMaxX += tDeltaX
		case tMaxY < tMaxX:
			yCell += stepY
			tMaxY += tDeltaY
		default:
			if g.blocks(xCell+stepX, yCell) || g.blocks(xCell, yCell+stepY) {
				return false
			}
			xCell += stepX
			yCell += stepY
			tMaxX += tDeltaX
			tMaxY += tDeltaY
		}
		if g.blocks(xCell, yCell) {
			return false
		}
	}

	return false
}

func (g *Grid) blocks(x, y int) bool {
	return !g.InBounds(x, y) || g.cells[g.Index(x, y)] == Occupied
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
