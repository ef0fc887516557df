package grid

// Labeling is the result of connected-component labelling over a W×H raster.
// Labels[idx] is the component of cell idx, or -1 if the cell was not passable.
// Components are numbered 0..Count()-1 in raster order of their first cell.
type Labeling struct {
	Width, Height int
	Labels        []int
	Sizes         []int
}

// Count returns the number of components.
func (l *Labeling) Count() int {
	return len(l.Sizes)
}

// Label returns the component of (x,y), or -1.
func (l *Labeling) Label(x, y int) int {
	if x < 0 || y < 0 || x >= l.Width || y >= l.Height {
		return -1
	}
	return l.Labels[y*l.Width+x]
}

// ConnectedComponents labels every maximal connected set of passable cells
// of a width×height raster, according to conn.
//
// Time:   O(W·H·d), where d = 4 or 8.
// Memory: O(W·H) for labels and the queue.
func ConnectedComponents(width, height int, passable func(idx int) bool, conn Connectivity) *Labeling {
	total := width * height
	l := &Labeling{
		Width:  width,
		Height: height,
		Labels: make([]int, total),
	}
	for i := range l.Labels {
		l.Labels[i] = -1
	}
	offsets := conn.Offsets()
	queue := make([]int, 0, 64)

	for i0 := 0; i0 < total; i0++ {
		if l.Labels[i0] != -1 || !passable(i0) {
			continue
		}
		label := len(l.Sizes)
		// BFS to collect component
		queue = append(queue[:0], i0)
		l.Labels[i0] = label
		size := 0

		for qi := 0; qi < len(queue); qi++ {
			u := queue[qi]
			size++
			ux, uy := u%width, u/width
			for _, d := range offsets {
				vx, vy := ux+d.X, uy+d.Y
				if vx < 0 || vy < 0 || vx >= width || vy >= height {
					continue
				}
				vi := vy*width + vx
				if l.Labels[vi] != -1 || !passable(vi) {
					continue
				}
				l.Labels[vi] = label
				queue = append(queue, vi)
			}
		}
		l.Sizes = append(l.Sizes, size)
	}

	return l
}

// FreeComponents labels the Free cells of g.
func (g *Grid) FreeComponents(conn Connectivity) *Labeling {
	return ConnectedComponents(g.width, g.height, func(idx int) bool {
		return g.cells[idx] == Free
	}, conn)
}
