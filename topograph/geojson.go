package topograph

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// GeoJSON returns the graph as a FeatureCollection in world coordinates:
// one Point per vertex and one LineString per edge.
func (g *Graph) GeoJSON() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	AppendGeoJSON(fc, g)
	return fc
}

// AppendGeoJSON adds the vertices and edges of g to fc.
func AppendGeoJSON(fc *geojson.FeatureCollection, g *Graph) {
	vertices := g.Vertices()
	loc := make(map[int]orb.Point, len(vertices))
	for _, v := range vertices {
		loc[v.ID] = v.Location
		f := geojson.NewFeature(v.Location)
		f.Properties["layer"] = "vertex"
		f.Properties["id"] = v.ID
		f.Properties["kind"] = v.Kind.String()
		f.Properties["radius"] = v.Radius
		fc.Append(f)
	}
	for _, e := range g.Edges() {
		f := geojson.NewFeature(orb.LineString{loc[e.A], loc[e.B]})
		f.Properties["layer"] = "edge"
		f.Properties["a"] = e.A
		f.Properties["b"] = e.B
		f.Properties["weight"] = e.Weight
		fc.Append(f)
	}
}
