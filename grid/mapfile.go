package grid

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png" // PNG map images
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/paulmach/orb"
	"gopkg.in/yaml.v3"
)

// MapDescriptor is a ROS map_server style map description.
type MapDescriptor struct {
	Image          string    `yaml:"image"`
	Resolution     float64   `yaml:"resolution"`
	Origin         []float64 `yaml:"origin"`
	Negate         int       `yaml:"negate"`
	OccupiedThresh float64   `yaml:"occupied_thresh"`
	FreeThresh     float64   `yaml:"free_thresh"`
}

// DefaultMapDescriptor returns the map_server defaults for thresholds.
func DefaultMapDescriptor() MapDescriptor {
	return MapDescriptor{
		OccupiedThresh: 0.65,
		FreeThresh:     0.196,
	}
}

// Validate checks the descriptor fields.
func (d MapDescriptor) Validate() error {
	switch {
	case d.Image == "":
		return fmt.Errorf("%w: image tag is empty", ErrMapDescriptor)
	case len(d.Origin) < 2:
		return fmt.Errorf("%w: origin needs at least x and y", ErrMapDescriptor)
	case d.FreeThresh < 0 || d.OccupiedThresh > 1 || d.FreeThresh > d.OccupiedThresh:
		return fmt.Errorf("%w: need 0 <= free_thresh <= occupied_thresh <= 1", ErrMapDescriptor)
	}
	return validateMeta(d.Resolution, d.origin())
}

func (d MapDescriptor) origin() orb.Point {
	if len(d.Origin) < 2 {
		return orb.Point{}
	}
	return orb.Point{d.Origin[0], d.Origin[1]}
}

// Classify maps an 8-bit gray value to a cell state using the descriptor thresholds.
func (d MapDescriptor) Classify(v uint8) CellState {
	p := float64(255-v) / 255
	if d.Negate != 0 {
		p = float64(v) / 255
	}
	switch {
	case p > d.OccupiedThresh:
		return Occupied
	case p < d.FreeThresh:
		return Free
	}
	return Unknown
}

// ReadMapDescriptor decodes a YAML map descriptor.
func ReadMapDescriptor(r io.Reader) (MapDescriptor, error) {
	d := DefaultMapDescriptor()
	if err := yaml.NewDecoder(r).Decode(&d); err != nil {
		return d, fmt.Errorf("%w: %v", ErrMapDescriptor, err)
	}
	return d, d.Validate()
}

// LoadMap reads a map descriptor and the image it references. A relative image
// path is resolved against the descriptor's directory. Images ending in .txt
// are read with ReadText; anything else is decoded as an image and thresholded.
func LoadMap(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("grid: open map descriptor: %w", err)
	}
	defer f.Close()

	d, err := ReadMapDescriptor(f)
	if err != nil {
		return nil, err
	}
	imgPath := d.Image
	if !filepath.IsAbs(imgPath) {
		imgPath = filepath.Join(filepath.Dir(path), imgPath)
	}

	img, err := os.Open(imgPath)
	if err != nil {
		return nil, fmt.Errorf("grid: open map image: %w", err)
	}
	defer img.Close()

	if strings.EqualFold(filepath.Ext(imgPath), ".txt") {
		return ReadText(img, d.Resolution, d.origin())
	}
	decoded, _, err := image.Decode(img)
	if err != nil {
		return nil, fmt.Errorf("grid: decode map image: %w", err)
	}
	return FromImage(decoded, d)
}

// FromImage thresholds img into a Grid. The top image row becomes y = Height-1.
func FromImage(img image.Image, d MapDescriptor) (*Grid, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, ErrEmptyGrid
	}
	cells := make([]CellState, w*h)
	for row := 0; row < h; row++ {
		y := h - 1 - row
		for x := 0; x < w; x++ {
			gray := color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+row)).(color.Gray)
			cells[y*w+x] = d.Classify(gray.Y)
		}
	}

	return New(w, h, d.Resolution, d.origin(), cells)
}
