package mapper

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/katalvlaran/topomap/critical"
	"github.com/katalvlaran/topomap/grid"
	"github.com/katalvlaran/topomap/topograph"
)

// Diagnostics layers, stored in the "layer" property of each feature.
const (
	LayerVoronoi      = "voronoi"
	LayerCritical     = "critical"
	LayerCriticalLine = "critical_line"
	LayerDroppedLine  = "dropped_line"
)

// Diagnostics returns the Voronoi points, the critical points with their
// lines and the final graph as one FeatureCollection in world coordinates.
// Clearances are in meters.
func (r *Result) Diagnostics() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	res := r.Source.Resolution()

	for _, p := range r.VoronoiPoints {
		f := geojson.NewFeature(r.world(p.Pixel))
		f.Properties["layer"] = LayerVoronoi
		f.Properties["clearance"] = p.AverageClearance * res
		f.Properties["basis"] = len(p.Basis)
		fc.Append(f)
	}

	var kept []critical.Point
	var dropped []critical.Point
	if r.Segmentation != nil {
		kept, dropped = r.Segmentation.Critical, r.Segmentation.Dropped
	}
	for i, c := range kept {
		f := geojson.NewFeature(r.world(c.Pixel))
		f.Properties["layer"] = LayerCritical
		f.Properties["index"] = i
		f.Properties["clearance"] = c.AverageClearance * res
		f.Properties["clearance_diff"] = c.ClearanceDiff * res
		fc.Append(f)
		fc.Append(r.lineFeature(c, LayerCriticalLine, i))
	}
	for i, c := range dropped {
		fc.Append(r.lineFeature(c, LayerDroppedLine, i))
	}

	if r.Graph != nil {
		topograph.AppendGeoJSON(fc, r.Graph)
	}
	return fc
}

func (r *Result) lineFeature(c critical.Point, layer string, i int) *geojson.Feature {
	a, b := c.Line()
	f := geojson.NewFeature(orb.LineString{r.world(a), r.world(b)})
	f.Properties["layer"] = layer
	f.Properties["index"] = i
	return f
}

func (r *Result) world(p grid.Pixel) orb.Point {
	return r.Source.PixelToWorld(p)
}
