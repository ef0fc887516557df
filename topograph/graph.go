// File: graph.go
// Role: arena storage, mutation and lookup.

package topograph

import (
	"fmt"
	"slices"
	"sync"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Graph is an undirected topological graph.
//
// mu guards the arena; idxMu guards the lazily built spatial index, which is
// rebuilt whenever version moves past idxVersion.
type Graph struct {
	mu sync.RWMutex

	resolution float64
	origin     orb.Point

	vertices []*Vertex
	adj      []map[int]*Edge
	live     int
	edges    int
	version  uint64

	idxMu      sync.Mutex
	idx        *rtreego.Rtree
	idxVersion uint64
}

// New returns an empty graph whose grid frame has the given resolution and origin.
func New(resolution float64, origin orb.Point) *Graph {
	return &Graph{resolution: resolution, origin: origin}
}

// Resolution returns the meters per pixel of the grid the graph was built on.
func (g *Graph) Resolution() float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.resolution
}

// Origin returns the world position of pixel (0,0).
func (g *Graph) Origin() orb.Point {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.origin
}

// AddVertex stores v in a new slot and returns its id. v.ID is ignored.
// Complexity: O(1) amortized.
func (g *Graph) AddVertex(v Vertex) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.addVertex(v)
}

func (g *Graph) addVertex(v Vertex) int {
	v.ID = len(g.vertices)
	g.vertices = append(g.vertices, &v)
	g.adj = append(g.adj, map[int]*Edge{})
	g.live++
	g.version++
	return v.ID
}

// AddEdge connects a and b, weighted by the distance between their locations.
// If the edge already exists, critical is merged into its Critical list.
func (g *Graph) AddEdge(a, b int, critical ...int) (Edge, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	e, err := g.addEdge(a, b, critical...)
	if err != nil {
		return Edge{}, err
	}
	return e.clone(), nil
}

func (g *Graph) addEdge(a, b int, critical ...int) (*Edge, error) {
	if a == b {
		return nil, fmt.Errorf("%w: %d", ErrLoopNotAllowed, a)
	}
	if !g.has(a) || !g.has(b) {
		return nil, fmt.Errorf("%w: edge %d-%d", ErrVertexNotFound, a, b)
	}
	if a > b {
		a, b = b, a
	}
	e, ok := g.adj[a][b]
	if !ok {
		e = &Edge{A: a, B: b, Weight: planar.Distance(g.vertices[a].Location, g.vertices[b].Location)}
		g.adj[a][b] = e
		g.adj[b][a] = e
		g.edges++
	}
	for _, c := range critical {
		if !slices.Contains(e.Critical, c) {
			e.Critical = append(e.Critical, c)
		}
	}
	g.version++
	return e, nil
}

// RemoveEdge deletes the edge between a and b.
func (g *Graph) RemoveEdge(a, b int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.removeEdge(a, b)
}

func (g *Graph) removeEdge(a, b int) error {
	if !g.has(a) || !g.has(b) {
		return fmt.Errorf("%w: edge %d-%d", ErrVertexNotFound, a, b)
	}
	if _, ok := g.adj[a][b]; !ok {
		return fmt.Errorf("%w: %d-%d", ErrEdgeNotFound, a, b)
	}
	delete(g.adj[a], b)
	delete(g.adj[b], a)
	g.edges--
	g.version++
	return nil
}

// RemoveVertex deletes id and its incident edges. The slot is not reused.
func (g *Graph) RemoveVertex(id int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.has(id) {
		return fmt.Errorf("%w: %d", ErrVertexNotFound, id)
	}
	for nb := range g.adj[id] {
		delete(g.adj[nb], id)
		g.edges--
	}
	g.adj[id] = nil
	g.vertices[id] = nil
	g.live--
	g.version++
	return nil
}

func (g *Graph) has(id int) bool {
	return id >= 0 && id < len(g.vertices) && g.vertices[id] != nil
}

// HasVertex reports whether id is a live vertex.
func (g *Graph) HasVertex(id int) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.has(id)
}

// Vertex returns a copy of vertex id.
func (g *Graph) Vertex(id int) (Vertex, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if !g.has(id) {
		return Vertex{}, false
	}
	return *g.vertices[id], true
}

// HasEdge reports whether a and b are adjacent.
func (g *Graph) HasEdge(a, b int) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if !g.has(a) {
		return false
	}
	_, ok := g.adj[a][b]
	return ok
}

// Edge returns a copy of the edge between a and b.
func (g *Graph) Edge(a, b int) (Edge, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if !g.has(a) {
		return Edge{}, false
	}
	e, ok := g.adj[a][b]
	if !ok {
		return Edge{}, false
	}
	return e.clone(), true
}

// Weight returns the weight of the edge between a and b.
func (g *Graph) Weight(a, b int) (float64, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.weight(a, b)
}

func (g *Graph) weight(a, b int) (float64, bool) {
	if !g.has(a) {
		return 0, false
	}
	e, ok := g.adj[a][b]
	if !ok {
		return 0, false
	}
	return e.Weight, true
}

// Neighbors returns the vertices adjacent to id in ascending order.
func (g *Graph) Neighbors(id int) []int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.neighbors(id)
}

func (g *Graph) neighbors(id int) []int {
	if !g.has(id) {
		return nil
	}
	out := make([]int, 0, len(g.adj[id]))
	for nb := range g.adj[id] {
		out = append(out, nb)
	}
	slices.Sort(out)
	return out
}

// Degree returns the number of edges at id, or 0 if it does not exist.
func (g *Graph) Degree(id int) int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if !g.has(id) {
		return 0
	}
	return len(g.adj[id])
}

// Vertices returns copies of the live vertices in ascending id order.
func (g *Graph) Vertices() []Vertex {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]Vertex, 0, g.live)
	for _, v := range g.vertices {
		if v != nil {
			out = append(out, *v)
		}
	}
	return out
}

// Edges returns copies of all edges ordered by (A, B).
func (g *Graph) Edges() []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]Edge, 0, g.edges)
	for a := range g.vertices {
		for _, b := range g.neighbors(a) {
			if a < b {
				out = append(out, g.adj[a][b].clone())
			}
		}
	}
	return out
}

// VertexCount returns the number of live vertices.
func (g *Graph) VertexCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.live
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.edges
}

// Order returns the number of slots, removed ones included.
func (g *Graph) Order() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.vertices)
}

// Compact returns a copy with the live vertices renumbered 0..n-1 in id order,
// and remap[old] = new id, or -1 for removed slots.
func (g *Graph) Compact() (*Graph, []int) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := New(g.resolution, g.origin)
	remap := make([]int, len(g.vertices))
	for id, v := range g.vertices {
		remap[id] = -1
		if v != nil {
			remap[id] = out.addVertex(*v)
		}
	}
	for a := range g.vertices {
		for b, e := range g.adj[a] {
			if a < b {
				ne := e.clone()
				ne.A, ne.B = remap[a], remap[b]
				out.link(&ne)
			}
		}
	}
	return out, remap
}

// Clone returns a deep copy that keeps every id, removed slots included.
func (g *Graph) Clone() *Graph {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := New(g.resolution, g.origin)
	out.vertices = make([]*Vertex, len(g.vertices))
	out.adj = make([]map[int]*Edge, len(g.vertices))
	for id, v := range g.vertices {
		if v == nil {
			continue
		}
		c := *v
		out.vertices[id] = &c
		out.adj[id] = map[int]*Edge{}
		out.live++
	}
	for a := range g.vertices {
		for b, e := range g.adj[a] {
			if a < b {
				ne := e.clone()
				out.link(&ne)
			}
		}
	}
	return out
}

// link stores an already validated edge.
func (g *Graph) link(e *Edge) {
	g.adj[e.A][e.B] = e
	g.adj[e.B][e.A] = e
	g.edges++
	g.version++
}
