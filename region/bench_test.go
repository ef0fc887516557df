package region

import (
	"strings"
	"testing"

	"github.com/paulmach/orb"

	"github.com/katalvlaran/topomap/critical"
	"github.com/katalvlaran/topomap/grid"
)

// benchLattice builds a rooms×rooms lattice of square rooms joined by 4-pixel
// doors, with one critical line across every door.
func benchLattice(b *testing.B, room, rooms int) (*grid.Grid, []critical.Point) {
	b.Helper()
	size := rooms*(room+1) + 1
	lo, hi := room/2-2, room/2+1
	rows := make([][]byte, size)
	for y := range rows {
		rows[y] = []byte(strings.Repeat(".", size))
		for x := 0; x < size; x++ {
			if x%(room+1) == 0 || y%(room+1) == 0 {
				rows[y][x] = '#'
			}
		}
	}

	var points []critical.Point
	for k := 1; k < rooms; k++ {
		wall := k * (room + 1)
		for c := 0; c < rooms; c++ {
			base := c * (room + 1)
			for d := lo; d <= hi; d++ {
				rows[base+d][wall] = '.'
				rows[wall][base+d] = '.'
			}
			// text rows count down from the top; the grid flips them
			y := func(row int) int { return size - 1 - row }
			points = append(points,
				cp(grid.Pixel{X: wall, Y: y(base + lo + 1)},
					grid.Pixel{X: wall, Y: y(base + lo - 1)}, grid.Pixel{X: wall, Y: y(base + hi + 1)}),
				cp(grid.Pixel{X: base + lo + 1, Y: y(wall)},
					grid.Pixel{X: base + lo - 1, Y: y(wall)}, grid.Pixel{X: base + hi + 1, Y: y(wall)}))
		}
	}

	var sb strings.Builder
	for _, r := range rows {
		sb.Write(r)
		sb.WriteByte('\n')
	}
	g, err := grid.ParseText(sb.String(), 0.05, orb.Point{})
	if err != nil {
		b.Fatal(err)
	}
	return g, points
}

func BenchmarkSegment(b *testing.B) {
	g, points := benchLattice(b, 40, 6)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Segment(g, points); err != nil {
			b.Fatal(err)
		}
	}
}
