package explorer

import (
	"fmt"
	"log/slog"

	"github.com/katalvlaran/radarmaze/astar"
	"github.com/katalvlaran/radarmaze/explored"
	"github.com/katalvlaran/radarmaze/frontier"
	"github.com/katalvlaran/radarmaze/occupancy"
	"github.com/katalvlaran/radarmaze/radar"
)

// Explorer owns one agent on one grid: its radar, explored mask, history
// and plan. It is not safe for concurrent use.
type Explorer struct {
	grid    *occupancy.Grid
	regions *occupancy.Regions // computed on first use
	radar   *radar.Radar
	mask    *explored.Mask
	opts    Options
	log     *slog.Logger

	start   occupancy.Position
	pos     occupancy.Position
	state   State
	moves   int
	trail   []occupancy.Position
	history *ring

	plan    astar.Path
	planIdx int
	exits   []occupancy.Position
}

// New places an agent on grid at start and performs the initial scan.
func New(grid *occupancy.Grid, start occupancy.Position, opts ...Option) (*Explorer, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if grid == nil {
		return nil, ErrNilGrid
	}
	if !grid.InBounds(start) {
		return nil, fmt.Errorf("%w: start %v in %dx%d grid", ErrOutOfBounds, start, grid.Height(), grid.Width())
	}

	rd, err := radar.New(grid, start, radar.WithMaxRange(o.RadarRange))
	if err != nil {
		return nil, err
	}

	e := &Explorer{
		grid:    grid,
		radar:   rd,
		mask:    explored.NewFor(grid),
		opts:    o,
		log:     o.Logger,
		start:   start,
		pos:     start,
		trail:   []occupancy.Position{start},
		history: newRing(o.HistorySize),
	}
	if err = e.rescan(); err != nil {
		return nil, err
	}
	e.log.Debug("explorer ready",
		slog.String("start", start.String()),
		slog.Int("height", grid.Height()),
		slog.Int("width", grid.Width()),
		slog.Int("explored", e.mask.Count()))

	return e, nil
}

// Grid returns the grid the agent moves on.
func (e *Explorer) Grid() *occupancy.Grid { return e.grid }

// State returns the current policy state.
func (e *Explorer) State() State { return e.state }

// Position returns the agent's cell.
func (e *Explorer) Position() occupancy.Position { return e.pos }

// Start returns the start cell.
func (e *Explorer) Start() occupancy.Position { return e.start }

// Moves returns the number of accepted moves.
func (e *Explorer) Moves() int { return e.moves }

// Exits returns a copy of the known exits.
func (e *Explorer) Exits() []occupancy.Position {
	return append([]occupancy.Position(nil), e.exits...)
}

// Snapshot returns deep copies of all externally visible state.
func (e *Explorer) Snapshot() Snapshot {
	scan, _ := e.radar.Cached()
	s := Snapshot{
		State:         e.state,
		Position:      e.pos,
		Start:         e.start,
		Moves:         e.moves,
		RadarRange:    e.radar.MaxRange(),
		Explored:      e.mask.Snapshot(),
		ExploredCount: e.mask.Count(),
		Frontiers:     frontier.Count(e.grid, e.mask),
		Scan:          scan.Clone(),
		Plan:          e.plan.Clone(),
		PlanIndex:     e.planIdx,
		Trail:         append([]occupancy.Position(nil), e.trail...),
		History:       e.history.Slice(),
	}
	if e.exits != nil {
		s.Exits = e.Exits()
	}

	return s
}

// Move steps the agent one cell in direction d. It reports false, with no
// error, when the target is a wall or off the grid. Manual moves are
// refused with ErrBusy while a plan is being followed.
func (e *Explorer) Move(d Direction) (bool, error) {
	if e.state == Navigating {
		return false, ErrBusy
	}
	dRow, dCol := d.Delta()
	moved, err := e.move(dRow, dCol)
	if err != nil {
		return false, err
	}
	if !moved {
		e.log.Debug("move blocked", slog.String("direction", d.String()), slog.String("at", e.pos.String()))
	}

	return moved, nil
}

// StartExploration switches to Exploring. It is a no-op while already
// exploring and refused with ErrBusy while navigating.
func (e *Explorer) StartExploration() error {
	switch e.state {
	case Navigating:
		return ErrBusy
	case Exploring:
		return nil
	}
	e.transition(Exploring)

	return nil
}

// StopExploration returns to Idle if exploring. The trail is kept; use
// StopAndClear to drop it.
func (e *Explorer) StopExploration() {
	if e.state == Exploring {
		e.transition(Idle)
	}
}

// GoHome plans a path back to the start and begins navigating it.
// An unreachable start returns a nil path and no error. A path of one cell
// means the agent is already home and no navigation starts.
func (e *Explorer) GoHome() (astar.Path, error) {
	if err := e.checkPlannable(); err != nil {
		return nil, err
	}
	e.clearTrail()

	path, err := astar.FindPath(e.grid, e.pos, e.start)
	if err != nil {
		return nil, err
	}
	if path == nil {
		e.log.Info("home unreachable", slog.String("from", e.pos.String()))
		return nil, nil
	}
	if err = e.beginNavigation(path, e.start); err != nil {
		return nil, err
	}

	return path.Clone(), nil
}

// GoToNearestExit plans the shortest path to any known exit and begins
// navigating it. It returns ErrNoExits when no exits are known and a nil
// path with no error when none is reachable.
func (e *Explorer) GoToNearestExit() (astar.Path, error) {
	if err := e.checkPlannable(); err != nil {
		return nil, err
	}
	e.clearTrail()
	if len(e.exits) == 0 {
		return nil, ErrNoExits
	}

	var (
		best   astar.Path
		target occupancy.Position
	)
	for _, exit := range e.exits {
		if !e.reachable(exit) {
			continue
		}
		path, err := astar.FindPath(e.grid, e.pos, exit)
		if err != nil {
			return nil, err
		}
		if path != nil && (best == nil || path.Len() < best.Len()) {
			best, target = path, exit
		}
	}
	if best == nil {
		e.log.Info("no exit reachable", slog.String("from", e.pos.String()), slog.Int("exits", len(e.exits)))
		return nil, nil
	}
	if err := e.beginNavigation(best, target); err != nil {
		return nil, err
	}

	return best.Clone(), nil
}

// SetRadarRange changes the radar range and rescans. The explored mask is
// kept.
func (e *Explorer) SetRadarRange(n int) error {
	if err := e.radar.SetRange(n); err != nil {
		return err
	}
	e.log.Debug("radar range changed", slog.Int("range", n))

	return e.rescan()
}

// StopAndClear aborts any navigation and clears the trail and plan.
// Exploration, if running, continues.
func (e *Explorer) StopAndClear() {
	if e.state == Navigating {
		e.transition(Idle)
	}
	e.clearTrail()
}

// FindExits returns the FREE border cells of grid whose Manhattan distance
// from start exceeds threshold, in row-major order.
func FindExits(grid *occupancy.Grid, start occupancy.Position, threshold int) []occupancy.Position {
	var out []occupancy.Position
	for r := 0; r < grid.Height(); r++ {
		for c := 0; c < grid.Width(); c++ {
			p := occupancy.Position{Row: r, Col: c}
			if grid.OnBorder(p) && grid.Free(p) && p.Manhattan(start) > threshold {
				out = append(out, p)
			}
		}
	}

	return out
}

// move applies a one-cell offset if the target is a FREE grid cell, then
// rescans from the new cell.
func (e *Explorer) move(dRow, dCol int) (bool, error) {
	next := e.pos.Add(dRow, dCol)
	if !e.grid.Free(next) {
		return false, nil
	}
	if err := e.radar.Move(next); err != nil {
		return false, err
	}
	e.pos = next
	e.moves++
	e.trail = append(e.trail, next)

	return true, e.rescan()
}

// rescan runs a full sweep from the current cell and marks what it saw.
func (e *Explorer) rescan() error {
	scan, err := e.radar.Scan360(e.opts.AngleStep)
	if err != nil {
		return err
	}
	e.mask.MarkScan(e.pos, scan)

	return nil
}

func (e *Explorer) checkPlannable() error {
	if e.state == Navigating || e.state == Exploring {
		return fmt.Errorf("%w: %s", ErrBusy, e.state)
	}
	return nil
}

// beginNavigation installs path as the plan. Paths shorter than two cells
// are recorded but do not start navigation.
func (e *Explorer) beginNavigation(path astar.Path, goal occupancy.Position) error {
	if err := e.validatePlan(path, goal); err != nil {
		return err
	}
	e.plan, e.planIdx = path, 1
	if path.Len() < 2 {
		return nil
	}
	e.log.Info("navigation started", slog.String("goal", goal.String()), slog.Int("steps", path.Steps()))
	e.transition(Navigating)

	return nil
}

// validatePlan checks that path leaves from the agent's cell, reaches goal
// and only enters FREE cells by unit steps. The first cell is the agent's
// own and may be a wall when the agent was placed on one.
func (e *Explorer) validatePlan(path astar.Path, goal occupancy.Position) error {
	if !path.Connects(e.pos, goal) {
		return fmt.Errorf("%w: plan does not run %v → %v", ErrPlanCorrupted, e.pos, goal)
	}
	if path.Len() < 2 {
		return nil
	}
	if astar.Manhattan(path[0], path[1]) != 1 {
		return fmt.Errorf("%w: first step %v → %v", ErrPlanCorrupted, path[0], path[1])
	}
	if err := path[1:].Valid(e.grid); err != nil {
		return fmt.Errorf("%w: %v", ErrPlanCorrupted, err)
	}

	return nil
}

func (e *Explorer) clearTrail() {
	e.trail = []occupancy.Position{e.pos}
	e.plan, e.planIdx = nil, 0
}

// reachable reports whether p shares a free region with the agent. An agent
// standing on a wall has no region, so everything is treated as reachable
// and left for A* to decide.
func (e *Explorer) reachable(p occupancy.Position) bool {
	if !e.grid.Free(e.pos) {
		return true
	}
	if e.regions == nil {
		e.regions = e.grid.Regions()
	}

	return e.regions.Connected(e.pos, p)
}

func (e *Explorer) transition(to State) {
	if e.state == to {
		return
	}
	e.log.Debug("state change", slog.String("from", e.state.String()), slog.String("to", to.String()))
	e.state = to
}
