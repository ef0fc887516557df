package grid_test

import (
	"fmt"

	"github.com/paulmach/orb"

	"github.com/katalvlaran/topomap/grid"
)

// ExampleParseText builds a small room split by a wall and counts its free areas.
func ExampleParseText() {
	g, err := grid.ParseText(`
#######
#..#..#
#..#..#
#######
`, 0.05, orb.Point{})
	if err != nil {
		fmt.Println(err)
		return
	}
	l := g.FreeComponents(grid.Conn4)
	fmt.Println(g.Width(), g.Height(), l.Count())
	// Output: 7 4 2
}

// ExampleLine4 draws a 4-connected line.
func ExampleLine4() {
	fmt.Println(grid.Line4(grid.Pixel{X: 0, Y: 0}, grid.Pixel{X: 2, Y: 1}))
	// Output: [{0 0} {1 0} {1 1} {2 1}]
}
