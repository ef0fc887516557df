package dijkstra

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors.
var (
	// ErrNilGraph indicates that a nil graph was passed to Dijkstra.
	ErrNilGraph = errors.New("dijkstra: graph is nil")

	// ErrVertexNotFound indicates that the source vertex does not exist in the graph.
	ErrVertexNotFound = errors.New("dijkstra: source vertex not found in graph")

	// ErrNegativeWeight indicates that a negative edge weight was detected.
	ErrNegativeWeight = errors.New("dijkstra: negative edge weight encountered")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("dijkstra: invalid option supplied")

	// ErrBadMaxDistance indicates that MaxDistance was set to a negative value.
	ErrBadMaxDistance = errors.New("dijkstra: MaxDistance must be non-negative")

	// ErrNoPath indicates that the destination was not reached.
	ErrNoPath = errors.New("dijkstra: no path")
)

// Graph is a weighted graph over integer vertex ids in [0, Order()).
type Graph interface {
	Order() int
	HasVertex(id int) bool
	Neighbors(id int) []int
	// Weight returns the cost of the edge a→b.
	Weight(a, b int) (float64, bool)
}

// Option represents a functional option for configuring Dijkstra.
type Option func(*Options)

// Options configures Dijkstra.
type Options struct {
	// Source is the start vertex.
	Source int

	// MaxDistance stops exploring paths longer than this. Default +Inf.
	MaxDistance float64

	err error
}

// DefaultOptions returns options starting at vertex 0 with no distance cap.
func DefaultOptions() Options {
	return Options{MaxDistance: math.Inf(1)}
}

// Source sets the start vertex.
func Source(id int) Option {
	return func(o *Options) {
		o.Source = id
	}
}

// WithMaxDistance caps the explored distance.
func WithMaxDistance(max float64) Option {
	return func(o *Options) {
		if max < 0 || math.IsNaN(max) {
			o.err = fmt.Errorf("%w: %w (%v)", ErrOptionViolation, ErrBadMaxDistance, max)
			return
		}
		o.MaxDistance = max
	}
}

// Result holds distances and predecessors indexed by vertex id.
// Unreached vertices have Dist +Inf and Prev -1.
type Result struct {
	Source int
	Dist   []float64
	Prev   []int
}

// Reached reports whether id was reached.
func (r *Result) Reached(id int) bool {
	return id >= 0 && id < len(r.Dist) && !math.IsInf(r.Dist[id], 1)
}

// PathTo returns the vertices of the shortest path from Source to dest.
func (r *Result) PathTo(dest int) ([]int, error) {
	if !r.Reached(dest) {
		return nil, fmt.Errorf("%w: %d → %d", ErrNoPath, r.Source, dest)
	}
	var path []int
	for v := dest; v >= 0; v = r.Prev[v] {
		path = append(path, v)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}
