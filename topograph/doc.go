// Package topograph defines the topological navigation graph produced from an
// occupancy grid: an undirected graph whose vertices are navigable regions or
// narrow-passage waypoints and whose edges carry Euclidean cost.
//
// The graph is a stable arena. Vertex ids are slot indices that never change
// while the graph is edited; removed slots stay empty until Compact renumbers
// the live vertices and returns the remapping table.
//
// Invariants:
//
//   - No self-loops and at most one edge per vertex pair.
//   - Edge endpoints satisfy A < B; Edge.Weight is the distance between the
//     endpoint locations.
//   - Neighbors, Vertices and Edges return ascending, reproducible orders.
//
// Concurrency:
//
//	All methods are safe for concurrent use; readers share a sync.RWMutex.
//
// Files:
//
//	Write and Read store graphs as YAML or JSON, optionally gzip-compressed,
//	chosen by file extension (.yaml, .yml, .json, plus .gz). Documents carry a
//	semantic version; a different major version is rejected with ErrVersion.
//	GeoJSON exports the graph as a FeatureCollection for map viewers.
package topograph
