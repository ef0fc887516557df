// Package critical reduces Voronoi points to critical points: local minima of
// clearance that mark doorways and narrow passages.
//
// A Voronoi point is a candidate when no Voronoi point within epsilon pixels
// has a lower average clearance and its clearance is strictly below the mean
// of those neighbors. Candidates are inserted with suppression so that no two
// critical points lie within epsilon of each other: the one with the larger
// clearance drop wins, and on ties the earlier one is kept. A final filter keeps
// only points whose two basis points lie on a near-straight line through the
// point, which removes room-corner artifacts.
//
// Neighborhood queries use an R-tree over the Voronoi points.
//
// Complexity: O(V log V + V×k) for V points and k neighbors per query.
package critical
