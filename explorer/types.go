package explorer

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/katalvlaran/radarmaze/astar"
	"github.com/katalvlaran/radarmaze/occupancy"
	"github.com/katalvlaran/radarmaze/radar"
)

// Sentinel errors returned by the explorer.
var (
	// ErrNilGrid indicates a nil grid passed to New.
	ErrNilGrid = errors.New("explorer: grid is nil")

	// ErrOutOfBounds indicates a start position outside the grid.
	ErrOutOfBounds = errors.New("explorer: position out of grid bounds")

	// ErrOptionViolation indicates an invalid functional option value.
	ErrOptionViolation = errors.New("explorer: invalid option")

	// ErrBusy indicates a command refused because the agent is following
	// a plan, or is exploring when a plan is requested.
	ErrBusy = errors.New("explorer: agent is busy")

	// ErrNoExits indicates GoToNearestExit before any exit was found.
	ErrNoExits = errors.New("explorer: no exits known; finish exploring first")

	// ErrPlanCorrupted indicates a planned step that could not be executed.
	// Navigation is aborted when it is returned.
	ErrPlanCorrupted = errors.New("explorer: planned step rejected")

	// ErrBadDirection indicates an unknown direction name.
	ErrBadDirection = errors.New("explorer: unknown direction")
)

// State is the exploration policy state.
type State int

const (
	// Idle waits for a command.
	Idle State = iota
	// Exploring moves one step toward the nearest reachable frontier per Step.
	Exploring
	// Navigating follows a computed plan one step per Step.
	Navigating
	// Done means exploration or navigation has finished.
	Done
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Exploring:
		return "exploring"
	case Navigating:
		return "navigating"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// MarshalText renders the state by name.
func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText parses a state name written by MarshalText.
func (s *State) UnmarshalText(b []byte) error {
	for _, st := range []State{Idle, Exploring, Navigating, Done} {
		if st.String() == string(b) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("explorer: unknown state %q", b)
}

// Direction is a manual move.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Delta returns the (row, col) offset of d.
func (d Direction) Delta() (int, int) {
	switch d {
	case Up:
		return -1, 0
	case Down:
		return 1, 0
	case Left:
		return 0, -1
	case Right:
		return 0, 1
	}
	return 0, 0
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection accepts up/down/left/right and the w/s/a/d keys,
// case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "w":
		return Up, nil
	case "down", "s":
		return Down, nil
	case "left", "a":
		return Left, nil
	case "right", "d":
		return Right, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadDirection, s)
}

// Defaults applied by New.
const (
	DefaultRadarRange    = 30
	DefaultAngleStep     = 3
	DefaultExitThreshold = 10
	DefaultHistorySize   = 10
)

// Options configures an Explorer.
type Options struct {
	RadarRange    int // radar steps per ray; > 0
	AngleStep     int // degrees between rays; within [1, 360]
	ExitThreshold int // minimum Manhattan distance (exclusive) from start to an exit; ≥ 0
	HistorySize   int // recent positions remembered for the A* penalty; ≥ 1
	Logger        *slog.Logger

	err error
}

// Option represents a functional option for New.
type Option func(*Options)

// DefaultOptions returns the defaults with a discarding logger.
func DefaultOptions() Options {
	return Options{
		RadarRange:    DefaultRadarRange,
		AngleStep:     DefaultAngleStep,
		ExitThreshold: DefaultExitThreshold,
		HistorySize:   DefaultHistorySize,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithRadarRange sets the radar range in grid steps.
func WithRadarRange(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: radar range %d ≤ 0", ErrOptionViolation, n)
			return
		}
		o.RadarRange = n
	}
}

// WithAngleStep sets the scan resolution in degrees.
func WithAngleStep(deg int) Option {
	return func(o *Options) {
		if deg < 1 || deg > 360 {
			o.err = fmt.Errorf("%w: angle step %d outside [1, 360]", ErrOptionViolation, deg)
			return
		}
		o.AngleStep = deg
	}
}

// WithExitThreshold sets how far from the start a border cell must be to
// count as an exit.
func WithExitThreshold(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: exit threshold %d < 0", ErrOptionViolation, n)
			return
		}
		o.ExitThreshold = n
	}
}

// WithHistorySize sets the capacity of the recent-position history.
func WithHistorySize(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: history size %d < 1", ErrOptionViolation, n)
			return
		}
		o.HistorySize = n
	}
}

// WithLogger routes state transitions and command outcomes to l.
// A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// StepResult reports what one Step did.
type StepResult struct {
	State    State               `json:"state"`
	Position occupancy.Position  `json:"position"`
	Moved    bool                `json:"moved"`
	Target   *occupancy.Position `json:"target,omitempty"` // frontier chosen while exploring
}

// Snapshot is a read-only copy of everything a renderer needs.
// Mutating it never affects the Explorer.
type Snapshot struct {
	State         State                `json:"state"`
	Position      occupancy.Position   `json:"position"`
	Start         occupancy.Position   `json:"start"`
	Moves         int                  `json:"moves"`
	RadarRange    int                  `json:"radar_range"`
	Explored      [][]bool             `json:"explored"`
	ExploredCount int                  `json:"explored_count"`
	Frontiers     int                  `json:"frontiers"`
	Scan          radar.Scan           `json:"scan"`
	Plan          astar.Path           `json:"plan,omitempty"`
	PlanIndex     int                  `json:"plan_index"`
	Exits         []occupancy.Position `json:"exits,omitempty"`
	Trail         []occupancy.Position `json:"trail"`
	History       []occupancy.Position `json:"history,omitempty"`
}
