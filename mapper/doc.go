// Package mapper runs the full pipeline that turns an occupancy grid into a
// topological navigation graph:
//
//	inflate → voronoi.Search → critical.Extract → region.Segment → builder.Build
//
// A Mapper is configured once from a Config (usually loaded from a TOML file)
// and may be run on any number of grids. Run is deterministic: the same grid
// and Config always produce the same graph, whatever the worker count.
//
// Every intermediate product is kept in the Result for inspection, and
// Result.Diagnostics exports them as a GeoJSON FeatureCollection in world
// coordinates.
package mapper
