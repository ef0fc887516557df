// SPDX-License-Identifier: MIT
// Package: topomap/builder
//
// doc.go — package overview.

// Package builder turns a region segmentation into the final topological graph.
//
// Build runs three passes over a stable vertex arena (topograph.Graph ids are
// never reused, so pass results can be related by id):
//
//   - Pass 1, region graph: one vertex per reachable region at its centroid,
//     radius sqrt(pixels); one edge per pair of regions sharing critical points.
//     Parallel doors between the same two regions share one edge, which lists
//     all of them in Edge.Critical.
//   - Pass 2, chain collapsing: a vertex with exactly two neighbors that see each
//     other over the source grid is replaced by a direct edge between them. The
//     collapse is worklist-driven, so it extends outward along straight chains.
//     Result.Absorbed records which surviving edge replaced each collapsed vertex.
//   - Pass 3, demotion: a region vertex with at least MergeThresholdArea/res²
//     pixels and more than two neighbors is replaced by the critical points on
//     its boundary. Each of its edges is rebound to the boundary critical points
//     the edge passes through (nearest by bearing when it lists none); a neighbor
//     that already is such a critical point is reused. The exits of a demoted
//     region are then connected pairwise.
//
// The final graph is compacted to dense ids and uses world coordinates: vertex
// locations, radii and edge weights are in meters.
//
// Any structural inconsistency (an edge to a region that was not kept, a critical
// index out of range, a disconnected result) aborts the build with ErrInvariant
// and no partial graph.
package builder
