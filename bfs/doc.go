// Package bfs provides breadth-first search over integer-indexed graphs,
// returning hop distances, parent links, and visit order.
//
// Any type exposing Order, HasVertex, and Neighbors satisfies Graph. Vertex ids
// are integers in [0, Order()); ids for which HasVertex is false are skipped,
// so arena graphs with removed slots can be searched directly.
//
// Determinism
//
//	Neighbors are enqueued in the order the graph returns them. Graphs that
//	return sorted neighbor lists produce a reproducible visit sequence.
//
// Usage
//
//	res, err := bfs.BFS(g, 0,
//	    bfs.WithContext(ctx),
//	    bfs.WithMaxDepth(3),
//	    bfs.WithFilterNeighbor(func(curr, nbr int) bool { return nbr != 7 }),
//	    bfs.WithOnVisit(func(id, depth int) error { return nil }),
//	)
//
//	comps := bfs.Components(g) // connected components, each sorted ascending
//
// Options
//
//   - DefaultOptions(): background Context, no-op visit hook, no depth limit, no filtering.
//   - WithContext(ctx):            set a custom context for cancellation.
//   - WithMaxDepth(d):             stop exploring beyond depth d (>0).
//   - WithFilterNeighbor(fn):      skip edges for which fn(curr,neighbor)==false.
//   - WithOnVisit(fn):             hook during visit; returning error aborts BFS.
//
// Errors
//
//   - ErrGraphNil             if the graph is nil.
//   - ErrStartVertexNotFound  if the start vertex does not exist.
//   - ErrOptionViolation      if an Option is invalid (e.g. negative MaxDepth).
//   - Wrapped user-supplied hook errors from OnVisit.
//
// Complexity: O(V + E) time, O(V) memory.
package bfs
