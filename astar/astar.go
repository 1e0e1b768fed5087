package astar

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/katalvlaran/radarmaze/occupancy"
)

// FindPath returns a minimum-cost path from start to goal on grid.
//
// Validation (in order):
//  1. Options must be valid (ErrOptionViolation).
//  2. grid must be non-nil (ErrNilGrid).
//  3. start and goal must be in bounds (ErrOutOfBounds).
//
// The occupancy of start itself is not checked, so a search may begin on a
// wall cell; every other cell on the returned path is FREE.
func FindPath(grid *occupancy.Grid, start, goal occupancy.Position, opts ...Option) (Path, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}
	if grid == nil {
		return nil, ErrNilGrid
	}
	if !grid.InBounds(start) {
		return nil, fmt.Errorf("%w: start %v", ErrOutOfBounds, start)
	}
	if !grid.InBounds(goal) {
		return nil, fmt.Errorf("%w: goal %v", ErrOutOfBounds, goal)
	}
	if start == goal {
		return Path{start}, nil
	}

	r := newRunner(grid, goal, cfg)

	return r.search(start), nil
}

// runner holds the mutable state of one A* execution.
// Cells are addressed by their row-major grid index.
type runner struct {
	grid    *occupancy.Grid
	goal    occupancy.Position
	penalty int

	cost      []int  // best known g per cell; math.MaxInt when unseen
	prev      []int  // predecessor index; -1 for none
	closed    []bool // expanded cells
	penalized []bool // cells among the last PenaltyWindow recent entries
	pq        nodePQ
	seq       int
}

func newRunner(grid *occupancy.Grid, goal occupancy.Position, cfg Options) *runner {
	n := grid.Height() * grid.Width()
	r := &runner{
		grid:    grid,
		goal:    goal,
		penalty: cfg.Penalty,
		cost:    make([]int, n),
		prev:    make([]int, n),
		closed:  make([]bool, n),
	}
	for i := range r.cost {
		r.cost[i] = math.MaxInt
		r.prev[i] = -1
	}

	if len(cfg.Recent) > 0 && cfg.Penalty > 0 {
		r.penalized = make([]bool, n)
		from := max(len(cfg.Recent)-cfg.PenaltyWindow, 0)
		for _, p := range cfg.Recent[from:] {
			if grid.InBounds(p) {
				r.penalized[grid.Index(p)] = true
			}
		}
	}

	return r
}

// search runs the main loop from start and returns the reconstructed path,
// or nil when the open set empties without reaching the goal.
func (r *runner) search(start occupancy.Position) Path {
	si := r.grid.Index(start)
	gi := r.grid.Index(r.goal)
	r.cost[si] = 0
	heap.Init(&r.pq)
	r.push(si, 0, Manhattan(start, r.goal))

	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*nodeItem)
		if r.closed[item.idx] {
			continue // stale entry
		}
		if item.idx == gi {
			return r.reconstruct(gi)
		}
		r.closed[item.idx] = true
		r.expand(item.idx)
	}

	return nil
}

// expand relaxes the free, unexpanded 4-neighbours of cell u.
func (r *runner) expand(u int) {
	from := r.grid.Coordinate(u)
	for _, nb := range r.grid.Neighbors4(from) {
		if r.grid.Occupied(nb) {
			continue
		}
		v := r.grid.Index(nb)
		if r.closed[v] {
			continue
		}

		step := 1
		if r.penalized != nil && r.penalized[v] {
			step += r.penalty
		}
		g := r.cost[u] + step
		if g >= r.cost[v] {
			continue
		}
		r.cost[v] = g
		r.prev[v] = u
		r.push(v, g, g+Manhattan(nb, r.goal))
	}
}

func (r *runner) push(idx, g, f int) {
	heap.Push(&r.pq, &nodeItem{idx: idx, g: g, f: f, seq: r.seq})
	r.seq++
}

// reconstruct follows predecessors back from goal index gi.
func (r *runner) reconstruct(gi int) Path {
	n := 0
	for i := gi; i != -1; i = r.prev[i] {
		n++
	}
	path := make(Path, n)
	for i := gi; i != -1; i = r.prev[i] {
		n--
		path[n] = r.grid.Coordinate(i)
	}

	return path
}

// nodeItem is an open-set entry.
type nodeItem struct {
	idx int // row-major cell index
	g   int // cost from start when pushed
	f   int // g + heuristic
	seq int // insertion order, breaks f ties
}

// nodePQ is a min-heap of *nodeItem ordered by f, then seq.
type nodePQ []*nodeItem

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	if pq[i].f != pq[j].f {
		return pq[i].f < pq[j].f
	}
	return pq[i].seq < pq[j].seq
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }

func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]

	return item
}
