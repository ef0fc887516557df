package voronoi

import (
	"github.com/katalvlaran/topomap/grid"
)

// walk offsets, row by row from the lower-left neighbor
var traceOffsets = [8]grid.Pixel{
	{X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1},
	{X: -1, Y: 0}, {X: 1, Y: 0},
	{X: -1, Y: 1}, {X: 0, Y: 1}, {X: 1, Y: 1},
}

// wallTracer answers whether two obstacle pixels are joined by a short
// 8-connected walk through non-free cells. It is a depth-limited, goal-directed
// depth-first search with an explicit stack. Visited cells stay visited for the
// whole walk, so it is a best-effort test, not a shortest path.
// A tracer is not safe for concurrent use.
type wallTracer struct {
	g     *grid.Grid
	stamp []uint32
	epoch uint32
	stack []traceFrame
}

type traceFrame struct {
	depth int
	next  [8]grid.Pixel
	n, i  int
}

func newWallTracer(g *grid.Grid) *wallTracer {
	return &wallTracer{
		g:     g,
		stamp: make([]uint32, g.Len()),
		stack: make([]traceFrame, 0, 64),
	}
}

// connected reports whether goal is reachable from start in at most depth steps.
func (t *wallTracer) connected(start, goal grid.Pixel, depth int) bool {
	if start == goal {
		return true
	}
	if depth <= 0 {
		return false
	}
	t.epoch++
	if t.epoch == 0 {
		clear(t.stamp)
		t.epoch = 1
	}

	t.stack = t.stack[:0]
	t.push(start, goal, depth)
	for len(t.stack) > 0 {
		top := &t.stack[len(t.stack)-1]
		if top.i >= top.n {
			t.stack = t.stack[:len(t.stack)-1]
			continue
		}
		n := top.next[top.i]
		top.i++
		if t.visited(n) {
			continue
		}
		if n == goal {
			return true
		}
		if top.depth-1 == 0 {
			continue
		}
		t.push(n, goal, top.depth-1)
	}

	return false
}

// push marks p visited and stacks its walkable neighbors, closest to goal first.
func (t *wallTracer) push(p, goal grid.Pixel, depth int) {
	t.stamp[t.g.Index(p.X, p.Y)] = t.epoch
	f := traceFrame{depth: depth}
	var dist [8]int
	for _, d := range traceOffsets {
		q := p.Add(d)
		if !t.g.InBounds(q.X, q.Y) || t.g.At(q.X, q.Y) == grid.Free || t.visited(q) {
			continue
		}
		dx, dy := q.X-goal.X, q.Y-goal.Y
		dq := dx*dx + dy*dy
		// insertion keeps offset order among equal distances
		k := f.n
		for k > 0 && dist[k-1] > dq {
			f.next[k], dist[k] = f.next[k-1], dist[k-1]
			k--
		}
		f.next[k], dist[k] = q, dq
		f.n++
	}
	t.stack = append(t.stack, f)
}

func (t *wallTracer) visited(p grid.Pixel) bool {
	return t.stamp[t.g.Index(p.X, p.Y)] == t.epoch
}
