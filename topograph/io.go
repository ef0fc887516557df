package topograph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/blang/semver"
	"github.com/klauspost/compress/gzip"
	"github.com/paulmach/orb"
	"gopkg.in/yaml.v3"
)

// FormatVersion is written into every graph document.
const FormatVersion = "1.0.0"

var formatVersion = semver.MustParse(FormatVersion)

// Format is a graph document encoding.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
)

// FormatFromPath picks the encoding from the file extension and reports
// whether the file is gzip-compressed.
func FormatFromPath(path string) (Format, bool, error) {
	name := strings.ToLower(path)
	gz := strings.HasSuffix(name, ".gz")
	name = strings.TrimSuffix(name, ".gz")
	switch filepath.Ext(name) {
	case ".yaml", ".yml":
		return FormatYAML, gz, nil
	case ".json":
		return FormatJSON, gz, nil
	}
	return 0, false, fmt.Errorf("%w: unknown extension in %q", ErrFormat, path)
}

// document is the serialized graph. Edges are listed on both endpoints.
type document struct {
	Version    string      `yaml:"version" json:"version"`
	Resolution float64     `yaml:"resolution" json:"resolution"`
	Origin     [2]float64  `yaml:"origin,flow" json:"origin"`
	Vertices   []vertexDoc `yaml:"vertices" json:"vertices"`
}

type vertexDoc struct {
	ID     int     `yaml:"id" json:"id"`
	X      float64 `yaml:"x" json:"x"`
	Y      float64 `yaml:"y" json:"y"`
	Radius float64 `yaml:"radius" json:"radius"`
	Kind   string  `yaml:"kind" json:"kind"`
	Pixels int     `yaml:"pixels,omitempty" json:"pixels,omitempty"`
	Edges  []int   `yaml:"edges,flow" json:"edges"`
}

// Write stores g at path in the format given by its extension.
func Write(path string, g *Graph) (err error) {
	format, gz, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("topograph: create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("topograph: close %s: %w", path, cerr)
		}
	}()

	var w io.Writer = f
	if gz {
		zw := gzip.NewWriter(f)
		defer func() {
			if cerr := zw.Close(); err == nil && cerr != nil {
				err = fmt.Errorf("topograph: compress %s: %w", path, cerr)
			}
		}()
		w = zw
	}

	return Encode(w, g, format)
}

// Read loads a graph written by Write.
func Read(path string) (*Graph, error) {
	format, gz, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("topograph: open %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if gz {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrFormat, path, err)
		}
		defer zr.Close()
		r = zr
	}

	return Decode(r, format)
}

// Encode writes g to w. Vertices are renumbered densely in id order.
func Encode(w io.Writer, g *Graph, format Format) error {
	c, _ := g.Compact()
	doc := document{
		Version:    FormatVersion,
		Resolution: c.resolution,
		Origin:     [2]float64{c.origin[0], c.origin[1]},
		Vertices:   make([]vertexDoc, 0, c.live),
	}
	for _, v := range c.vertices {
		edges := c.neighbors(v.ID)
		if edges == nil {
			edges = []int{}
		}
		doc.Vertices = append(doc.Vertices, vertexDoc{
			ID:     v.ID,
			X:      v.Location[0],
			Y:      v.Location[1],
			Radius: v.Radius,
			Kind:   v.Kind.String(),
			Pixels: v.Pixels,
			Edges:  edges,
		})
	}

	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(&doc); err != nil {
			return fmt.Errorf("topograph: encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(&doc); err != nil {
			return fmt.Errorf("topograph: encode json: %w", err)
		}
		return nil
	}
	return fmt.Errorf("%w: format %d", ErrFormat, format)
}

// Decode reads a graph document from r. Weights are recomputed from the
// vertex locations and each undirected edge is kept once.
func Decode(r io.Reader, format Format) (*Graph, error) {
	var doc document
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFormat, err)
		}
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFormat, err)
		}
	default:
		return nil, fmt.Errorf("%w: format %d", ErrFormat, format)
	}

	ver, err := semver.Parse(doc.Version)
	if err != nil {
		return nil, fmt.Errorf("%w: version %q: %v", ErrFormat, doc.Version, err)
	}
	if ver.Major != formatVersion.Major {
		return nil, fmt.Errorf("%w: %s (want %d.x)", ErrVersion, ver, formatVersion.Major)
	}

	origin := orb.Point{doc.Origin[0], doc.Origin[1]}
	g := New(doc.Resolution, origin)
	ids := make(map[int]int, len(doc.Vertices))
	for _, vd := range doc.Vertices {
		if _, dup := ids[vd.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate vertex id %d", ErrFormat, vd.ID)
		}
		kind, err := ParseKind(vd.Kind)
		if err != nil {
			return nil, err
		}
		loc := orb.Point{vd.X, vd.Y}
		var px orb.Point
		if doc.Resolution > 0 {
			px = orb.Point{(vd.X - origin[0]) / doc.Resolution, (vd.Y - origin[1]) / doc.Resolution}
		}
		ids[vd.ID] = g.addVertex(Vertex{
			Kind:     kind,
			Location: loc,
			Pixel:    px,
			Radius:   vd.Radius,
			Pixels:   vd.Pixels,
			Region:   -1,
			Critical: -1,
		})
	}
	for _, vd := range doc.Vertices {
		for _, nb := range vd.Edges {
			b, ok := ids[nb]
			if !ok {
				return nil, fmt.Errorf("%w: vertex %d lists unknown neighbor %d", ErrFormat, vd.ID, nb)
			}
			if _, err := g.addEdge(ids[vd.ID], b); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrFormat, err)
			}
		}
	}

	return g, nil
}
