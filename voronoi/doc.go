// Package voronoi approximates the discrete Voronoi diagram of the free space
// of an occupancy grid.
//
// For every Free pixel of the inflated grid, Search grows a square ring outward
// from ceil(clearance/resolution) pixels and collects the Occupied pixels of the
// source grid lying on it. Candidates are offered nearest-first to a basis
// accumulator which keeps only obstacle pixels within one pixel of the minimum
// distance that belong to distinct walls. Two obstacle pixels are the same wall
// when they are closer than twice the clearance, or when a short walk through
// the non-free cells of the inflated grid joins them. A pixel with at least two
// basis points is a Voronoi point.
//
// Complexity:
//
//   - Search: O(F × (R + B×D)) for F free pixels, R ring pixels scanned,
//     B basis candidates and D = 8^depth bounded wall walks (in practice the
//     walk is short and greedy).
//   - Memory: O(W×H) per worker for the walk's visited stamps.
//
// Options:
//
//   - WithLogger: structured logger (default no-op).
//   - WithWorkers: number of goroutines scanning row bands (default 1).
//   - WithContext: cancellation between rows.
//
// Errors:
//
//   - ErrNilGrid, ErrGridMismatch, ErrBadClearance, ErrOptionViolation.
package voronoi
