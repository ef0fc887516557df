// Package dijkstra implements Dijkstra's shortest-path algorithm on
// integer-indexed graphs with non-negative float64 edge weights.
//
// Overview:
//
//   - Dijkstra computes the minimum-cost path from a single source vertex to all
//     reachable vertices in O((V + E) log V) time.
//   - It relies on a min-heap with lazy decrease-key: stale heap entries are
//     skipped when popped instead of being updated in place.
//   - MaxDistance caps exploration; vertices beyond it stay unreached.
//
// Any type exposing Order, HasVertex, Neighbors and Weight satisfies Graph.
// Ties between equal-cost paths are broken toward the lower vertex id, so
// results are reproducible.
//
// Error handling (sentinel errors):
//
//   - ErrNilGraph:        the graph is nil.
//   - ErrVertexNotFound:  the source vertex does not exist.
//   - ErrNegativeWeight:  a negative or NaN weight was met during relaxation.
//   - ErrBadMaxDistance:  MaxDistance is negative or NaN (reported as ErrOptionViolation).
//   - ErrNoPath:          PathTo on an unreached vertex.
//
// Example:
//
//	res, err := dijkstra.Dijkstra(g, dijkstra.Source(0))
//	if err != nil {
//	    return err
//	}
//	path, err := res.PathTo(7)
package dijkstra
