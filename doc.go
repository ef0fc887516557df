// Package topomap turns a 2D occupancy grid into a topological navigation
// graph: one vertex per room-like region, one edge per doorway between them.
//
// 🚀 What is topomap?
//
//	A pipeline library and command line tool that brings together:
//		• Grids: occupancy cells, ROS-style map loading, obstacle inflation
//		• Voronoi search: free pixels equidistant to two or more walls
//		• Critical points: clearance minima that mark doors and passages
//		• Regions: free space cut along critical lines and labelled
//		• Graph building: region graph, straight-chain collapsing, hub splitting
//		• Graph queries: connectivity, shortest path, nearest vertex, YAML/JSON I/O
//
// Under the hood, everything is organized under these subpackages:
//
//	grid/      — occupancy grid, map files, inflation, lines of sight
//	voronoi/   — row-parallel Voronoi point search with wall tracing
//	critical/  — critical point extraction over an R-tree
//	region/    — segmentation into reachable regions
//	builder/   — the three-pass graph builder
//	topograph/ — the resulting graph, its queries and file formats
//	bfs/       — breadth-first traversal and components over integer graphs
//	dijkstra/  — shortest paths over integer graphs
//	mapper/    — configuration and the end-to-end pipeline
//	cmd/topomap — command line front end
//
// Quick ASCII example:
//
//	###############
//	#.....#.......#        (0)──────(1)
//	#.............#   →
//	#.....#.......#
//	###############
//
// See examples/ for a runnable program.
package topomap
