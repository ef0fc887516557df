package region

// adjacencyGraph is the region graph induced by critical points, as seen by bfs.
type adjacencyGraph [][]int

func newAdjacencyGraph(n int, adj []Adjacency) adjacencyGraph {
	g := make(adjacencyGraph, n)
	for _, a := range adj {
		g[a.A] = append(g[a.A], a.B)
		g[a.B] = append(g[a.B], a.A)
	}
	return g
}

func (g adjacencyGraph) Order() int             { return len(g) }
func (g adjacencyGraph) HasVertex(id int) bool  { return id >= 0 && id < len(g) }
func (g adjacencyGraph) Neighbors(id int) []int { return g[id] }
