package topograph

import (
	"fmt"
	"math"
	"slices"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/katalvlaran/topomap/bfs"
	"github.com/katalvlaran/topomap/dijkstra"
)

// locked exposes the arena to bfs and dijkstra while the caller holds g.mu.
type locked struct{ g *Graph }

func (l locked) Order() int                      { return len(l.g.vertices) }
func (l locked) HasVertex(id int) bool           { return l.g.has(id) }
func (l locked) Neighbors(id int) []int          { return l.g.neighbors(id) }
func (l locked) Weight(a, b int) (float64, bool) { return l.g.weight(a, b) }

// Components returns the connected components, each in ascending id order.
func (g *Graph) Components() [][]int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return bfs.Components(locked{g})
}

// Connected reports whether every vertex reaches every other. The empty graph is connected.
func (g *Graph) Connected() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.live == 0 {
		return true
	}
	first := 0
	for !g.has(first) {
		first++
	}
	res, err := bfs.BFS(locked{g}, first)
	if err != nil {
		return false
	}
	return len(res.Order) == g.live
}

// Hops returns a route from one vertex to another with the fewest edges.
// Vertices listed in avoid are never entered, which models closed doors;
// avoiding an endpoint yields ErrVertexNotFound.
func (g *Graph) Hops(from, to int, avoid ...int) ([]int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if !g.has(from) || !g.has(to) || slices.Contains(avoid, from) || slices.Contains(avoid, to) {
		return nil, fmt.Errorf("%w: %d → %d", ErrVertexNotFound, from, to)
	}

	res, err := bfs.BFS(locked{g}, from, bfs.WithFilterNeighbor(func(_, nbr int) bool {
		return !slices.Contains(avoid, nbr)
	}))
	if err != nil {
		return nil, err
	}
	return res.PathTo(to)
}

// Within returns the vertices at most hops edges away from id in
// breadth-first order, starting with id itself. Negative hops is an error.
func (g *Graph) Within(id, hops int) ([]int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if !g.has(id) {
		return nil, fmt.Errorf("%w: %d", ErrVertexNotFound, id)
	}
	if hops == 0 {
		return []int{id}, nil
	}
	res, err := bfs.BFS(locked{g}, id, bfs.WithMaxDepth(hops))
	if err != nil {
		return nil, err
	}
	return res.Order, nil
}

// WithinDistance returns, in ascending order, the vertices whose travel
// distance along the graph from id is at most maxDistance meters.
func (g *Graph) WithinDistance(id int, maxDistance float64) ([]int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	res, err := dijkstra.Dijkstra(locked{g}, dijkstra.Source(id), dijkstra.WithMaxDistance(maxDistance))
	if err != nil {
		return nil, err
	}
	var out []int
	for v := range res.Dist {
		if res.Reached(v) && res.Dist[v] <= maxDistance {
			out = append(out, v)
		}
	}
	return out, nil
}

// ShortestPath returns the cheapest vertex sequence from one vertex to another and its cost.
func (g *Graph) ShortestPath(from, to int) ([]int, float64, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	res, err := dijkstra.Dijkstra(locked{g}, dijkstra.Source(from))
	if err != nil {
		return nil, 0, err
	}
	path, err := res.PathTo(to)
	if err != nil {
		return nil, 0, err
	}
	return path, res.Dist[to], nil
}

// vertexEntry stores a vertex id in the spatial index.
type vertexEntry struct {
	id  int
	loc orb.Point
}

// Bounds implements rtreego.Spatial.
func (e *vertexEntry) Bounds() rtreego.Rect {
	return rtreego.Point{e.loc[0], e.loc[1]}.ToRect(1e-9)
}

// Nearest returns the vertex closest to the world point p. With maxDistance > 0,
// vertices farther than maxDistance are ignored. Equidistant vertices resolve
// to the lowest id.
func (g *Graph) Nearest(p orb.Point, maxDistance float64) (Vertex, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.live == 0 {
		return Vertex{}, false
	}
	tree := g.index()

	var hits []rtreego.Spatial
	if maxDistance > 0 {
		box, err := rtreego.NewRect(
			rtreego.Point{p[0] - maxDistance, p[1] - maxDistance},
			[]float64{2 * maxDistance, 2 * maxDistance},
		)
		if err != nil {
			return Vertex{}, false
		}
		hits = tree.SearchIntersect(box)
	} else {
		nn := tree.NearestNeighbor(rtreego.Point{p[0], p[1]})
		if nn == nil {
			return Vertex{}, false
		}
		// gather everything at the same distance for a stable tie-break
		d := planar.Distance(p, nn.(*vertexEntry).loc) + 1e-9
		box, err := rtreego.NewRect(rtreego.Point{p[0] - d, p[1] - d}, []float64{2 * d, 2 * d})
		if err != nil {
			return *g.vertices[nn.(*vertexEntry).id], true
		}
		hits = tree.SearchIntersect(box)
	}

	best, bestD := -1, math.Inf(1)
	for _, h := range hits {
		e := h.(*vertexEntry)
		d := planar.Distance(p, e.loc)
		if maxDistance > 0 && d > maxDistance {
			continue
		}
		if d < bestD || (d == bestD && e.id < best) {
			best, bestD = e.id, d
		}
	}
	if best < 0 {
		return Vertex{}, false
	}
	return *g.vertices[best], true
}

// index returns the spatial index, rebuilding it when the arena changed.
// The caller holds g.mu for reading.
func (g *Graph) index() *rtreego.Rtree {
	g.idxMu.Lock()
	defer g.idxMu.Unlock()
	if g.idx != nil && g.idxVersion == g.version {
		return g.idx
	}
	tree := rtreego.NewTree(2, 25, 50)
	for _, v := range g.vertices {
		if v != nil {
			tree.Insert(&vertexEntry{id: v.ID, loc: v.Location})
		}
	}
	g.idx, g.idxVersion = tree, g.version
	return tree
}
