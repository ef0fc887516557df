package dijkstra

import (
	"container/heap"
	"fmt"
	"math"
	"reflect"
)

// Dijkstra computes single-source shortest paths over g.
func Dijkstra(g Graph, opts ...Option) (*Result, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}
	if g == nil || (reflect.ValueOf(g).Kind() == reflect.Ptr && reflect.ValueOf(g).IsNil()) {
		return nil, ErrNilGraph
	}
	if cfg.Source < 0 || cfg.Source >= g.Order() || !g.HasVertex(cfg.Source) {
		return nil, fmt.Errorf("%w: %d", ErrVertexNotFound, cfg.Source)
	}

	n := g.Order()
	r := &runner{
		g:       g,
		options: cfg,
		res: &Result{
			Source: cfg.Source,
			Dist:   make([]float64, n),
			Prev:   make([]int, n),
		},
		visited: make([]bool, n),
		pq:      make(nodePQ, 0, n),
	}
	r.init()
	if err := r.process(); err != nil {
		return nil, err
	}

	return r.res, nil
}

// runner holds the mutable state of one run.
type runner struct {
	g       Graph
	options Options
	res     *Result
	visited []bool
	pq      nodePQ
}

func (r *runner) init() {
	for v := range r.res.Dist {
		r.res.Dist[v] = math.Inf(1)
		r.res.Prev[v] = -1
	}
	r.res.Dist[r.options.Source] = 0
	heap.Init(&r.pq)
	heap.Push(&r.pq, &nodeItem{id: r.options.Source, dist: 0})
}

// process pops vertices in distance order; stale entries are skipped.
func (r *runner) process() error {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*nodeItem)
		if r.visited[item.id] {
			continue
		}
		if item.dist > r.options.MaxDistance {
			break
		}
		r.visited[item.id] = true
		if err := r.relax(item.id); err != nil {
			return err
		}
	}
	return nil
}

func (r *runner) relax(u int) error {
	for _, v := range r.g.Neighbors(u) {
		if v < 0 || v >= len(r.visited) || r.visited[v] || !r.g.HasVertex(v) {
			continue
		}
		w, ok := r.g.Weight(u, v)
		if !ok {
			continue
		}
		if w < 0 || math.IsNaN(w) {
			return fmt.Errorf("%w: edge %d→%d weight=%v", ErrNegativeWeight, u, v, w)
		}
		nd := r.res.Dist[u] + w
		if nd > r.options.MaxDistance {
			continue
		}
		if nd > r.res.Dist[v] || (nd == r.res.Dist[v] && r.res.Prev[v] >= 0 && r.res.Prev[v] < u) {
			continue
		}
		r.res.Dist[v] = nd
		r.res.Prev[v] = u
		heap.Push(&r.pq, &nodeItem{id: v, dist: nd})
	}
	return nil
}

// nodeItem is a heap entry; several may exist for one vertex.
type nodeItem struct {
	id   int
	dist float64
}

// nodePQ is a min-heap by distance, then id.
type nodePQ []*nodeItem

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].id < pq[j].id
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }

func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]
	return item
}
