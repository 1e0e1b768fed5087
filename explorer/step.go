package explorer

import (
	"fmt"
	"log/slog"

	"github.com/katalvlaran/radarmaze/astar"
	"github.com/katalvlaran/radarmaze/frontier"
	"github.com/katalvlaran/radarmaze/occupancy"
)

// Step advances the agent by at most one cell.
//
//   - Exploring: move one cell toward the nearest reachable frontier. When no
//     frontier is left, or none is reachable, compute the exits and switch
//     to Done.
//   - Navigating: apply the next plan step. The last step switches to Done.
//     A rejected step aborts the plan, switches to Idle and returns
//     ErrPlanCorrupted.
//   - Idle, Done: nothing happens.
func (e *Explorer) Step() (StepResult, error) {
	switch e.state {
	case Exploring:
		return e.exploreStep()
	case Navigating:
		return e.navigateStep()
	default:
		return e.result(false, nil), nil
	}
}

func (e *Explorer) exploreStep() (StepResult, error) {
	frontiers := frontier.Find(e.grid, e.mask)
	if len(frontiers) == 0 {
		e.finishExploration("no frontiers left")
		return e.result(false, nil), nil
	}
	frontier.SortByDistance(frontiers, e.pos)

	recent := e.history.Slice()
	for _, target := range frontiers {
		// Walls and other regions can never yield a path of two cells.
		if e.grid.Occupied(target) || !e.reachable(target) {
			continue
		}
		path, err := astar.FindPath(e.grid, e.pos, target, astar.WithAvoidRecent(recent))
		if err != nil {
			return e.result(false, nil), err
		}
		if path.Len() < 2 {
			continue
		}

		if !e.history.RecentContains(e.pos, astar.DefaultPenaltyWindow) {
			e.history.Push(e.pos)
		}
		next := path[1]
		moved, err := e.move(next.Row-e.pos.Row, next.Col-e.pos.Col)
		if err != nil {
			return e.result(false, nil), err
		}
		if !moved {
			e.transition(Idle)
			return e.result(false, nil), fmt.Errorf("%w: exploring step %v → %v", ErrPlanCorrupted, e.pos, next)
		}

		return e.result(true, &target), nil
	}

	e.finishExploration("no reachable frontier")

	return e.result(false, nil), nil
}

func (e *Explorer) navigateStep() (StepResult, error) {
	if e.planIdx >= e.plan.Len() {
		e.transition(Done)
		return e.result(false, nil), nil
	}

	next := e.plan[e.planIdx]
	moved := false
	var err error
	if e.pos.Manhattan(next) == 1 {
		moved, err = e.move(next.Row-e.pos.Row, next.Col-e.pos.Col)
		if err != nil {
			return e.result(false, nil), err
		}
	}
	if !moved {
		e.log.Error("navigation halted",
			slog.String("at", e.pos.String()),
			slog.String("next", next.String()),
			slog.Int("index", e.planIdx))
		e.plan, e.planIdx = nil, 0
		e.transition(Idle)

		return e.result(false, nil), fmt.Errorf("%w: step %v → %v", ErrPlanCorrupted, e.pos, next)
	}

	e.planIdx++
	if e.planIdx >= e.plan.Len() {
		e.log.Info("navigation finished", slog.String("at", e.pos.String()), slog.Int("moves", e.moves))
		e.transition(Done)
	}

	return e.result(true, nil), nil
}

func (e *Explorer) finishExploration(reason string) {
	e.exits = FindExits(e.grid, e.start, e.opts.ExitThreshold)
	e.log.Info("exploration finished",
		slog.String("reason", reason),
		slog.Int("moves", e.moves),
		slog.Int("explored", e.mask.Count()),
		slog.Int("exits", len(e.exits)))
	e.transition(Done)
}

func (e *Explorer) result(moved bool, target *occupancy.Position) StepResult {
	return StepResult{State: e.state, Position: e.pos, Moved: moved, Target: target}
}

// Run calls Step until the agent leaves the Exploring and Navigating
// states, or until maxSteps steps have been taken when maxSteps > 0.
// It returns the number of steps that moved the agent.
func (e *Explorer) Run(maxSteps int) (int, error) {
	moved := 0
	for i := 0; maxSteps <= 0 || i < maxSteps; i++ {
		if e.state != Exploring && e.state != Navigating {
			break
		}
		res, err := e.Step()
		if err != nil {
			return moved, err
		}
		if res.Moved {
			moved++
		}
	}

	return moved, nil
}
