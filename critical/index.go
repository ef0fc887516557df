package critical

import (
	"sort"

	"github.com/dhconnelly/rtreego"

	"github.com/katalvlaran/topomap/voronoi"
)

// pointExtent is the half-size of the box stored for each pixel.
const pointExtent = 0.25

// pointEntry wraps a Voronoi point index for R-tree storage.
type pointEntry struct {
	i    int
	bbox rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (e *pointEntry) Bounds() rtreego.Rect {
	return e.bbox
}

// neighborIndex answers fixed-radius queries over Voronoi points.
type neighborIndex struct {
	tree   *rtreego.Rtree
	points []voronoi.Point
}

func newNeighborIndex(points []voronoi.Point) *neighborIndex {
	tree := rtreego.NewTree(2, 25, 50)
	for i, p := range points {
		tree.Insert(&pointEntry{
			i:    i,
			bbox: rtreego.Point{float64(p.X), float64(p.Y)}.ToRect(pointExtent),
		})
	}
	return &neighborIndex{tree: tree, points: points}
}

// within returns, in ascending order, the indices of the points other than i
// whose Euclidean distance to point i is at most eps.
func (n *neighborIndex) within(i int, eps float64) []int {
	p := n.points[i]
	box, err := rtreego.NewRect(
		rtreego.Point{float64(p.X) - eps, float64(p.Y) - eps},
		[]float64{2 * eps, 2 * eps},
	)
	if err != nil {
		return nil
	}

	var out []int
	for _, s := range n.tree.SearchIntersect(box) {
		j := s.(*pointEntry).i
		if j == i || p.Distance(n.points[j].Pixel) > eps {
			continue
		}
		out = append(out, j)
	}
	sort.Ints(out)

	return out
}
