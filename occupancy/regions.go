package occupancy

// NoRegion labels OCCUPIED and out-of-bounds cells.
const NoRegion = -1

// Regions is a labelling of 4-connected FREE components ("rooms").
// Two cells share a label iff a 4-connected FREE path joins them.
type Regions struct {
	grid   *Grid
	labels []int
	sizes  []int
}

// Regions finds all contiguous regions of FREE cells using BFS.
// Labels are assigned in row-major order of each region's first cell.
//
// Time:   O(W·H·4).
// Memory: O(W·H) for labels and the queue.
func (g *Grid) Regions() *Regions {
	total := g.width * g.height
	labels := make([]int, total)
	for i := range labels {
		labels[i] = NoRegion
	}
	var sizes []int

	queue := make([]int, 0, total)
	for i0 := 0; i0 < total; i0++ {
		if g.cells[i0] == Occupied || labels[i0] != NoRegion {
			continue
		}
		label := len(sizes)
		labels[i0] = label
		queue = append(queue[:0], i0)

		for qi := 0; qi < len(queue); qi++ {
			u := g.Coordinate(queue[qi])
			for _, d := range neighborOffsets4 {
				v := u.Add(d[0], d[1])
				if !g.Free(v) {
					continue
				}
				vi := g.index(v.Row, v.Col)
				if labels[vi] == NoRegion {
					labels[vi] = label
					queue = append(queue, vi)
				}
			}
		}
		sizes = append(sizes, len(queue))
	}

	return &Regions{grid: g, labels: labels, sizes: sizes}
}

// Count returns the number of FREE regions.
func (r *Regions) Count() int { return len(r.sizes) }

// Label returns the region of p, or NoRegion for walls and out-of-bounds cells.
func (r *Regions) Label(p Position) int {
	if !r.grid.InBounds(p) {
		return NoRegion
	}
	return r.labels[r.grid.index(p.Row, p.Col)]
}

// Size returns the number of cells in region label, 0 for unknown labels.
func (r *Regions) Size(label int) int {
	if label < 0 || label >= len(r.sizes) {
		return 0
	}
	return r.sizes[label]
}

// Connected reports whether a and b are FREE cells of the same region.
func (r *Regions) Connected(a, b Position) bool {
	la := r.Label(a)
	return la != NoRegion && la == r.Label(b)
}
