// Package region splits the free space of an occupancy grid into regions
// separated by critical lines.
//
// Every critical point contributes a line between its two basis points. The
// lines are burned into an obstacle mask and the remaining Free pixels are
// labelled with 4-connectivity. A critical point must then touch exactly two
// regions; one that does not is dropped with an error log and labelling is
// repeated without it, until every retained point resolves.
//
// Regions and critical points form an adjacency graph. Only its dominant
// connected component is kept reachable: the one with the largest pixel area,
// then the most regions, then the lowest region id. Other components are
// discarded with a warning.
package region
