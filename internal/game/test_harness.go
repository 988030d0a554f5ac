package game

import (
	"github.com/Garsondee/Zombie-Sense/internal/config"
)

// TestSim is a headless simulation harness used by tests and the headless
// report. It wraps an Apocalypse with a SimLog and a SimReporter and has no
// Ebiten dependency.
type TestSim struct {
	Height    int
	Width     int
	obstacles []Cell
	zombies   []Cell
	humans    []Cell
	scenario  *config.Scenario
	seed      int64

	Sim      *Apocalypse
	SimLog   *SimLog
	Reporter *SimReporter
	Trails   *TrailMap
	Repeats  *RepeatTracker
	Last     TickResult
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra simOptionKind = iota // grid size, obstacles, verbose; applied first
	simOptActor                      // zombies and humans; applied after the grid is built
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithGridSize sets the grid dimensions.
func WithGridSize(height, width int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.Height = height
		ts.Width = width
	}}
}

// WithObstacle marks a single cell FULL.
func WithObstacle(row, col int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.obstacles = append(ts.obstacles, Cell{row, col})
	}}
}

// WithWall marks cells (row, fromCol)..(row, toCol) when horizontal is true,
// otherwise (fromRow, col)..(toRow, col), with row/col given by line.
func WithWall(horizontal bool, line, from, to int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		for i := from; i <= to; i++ {
			if horizontal {
				ts.obstacles = append(ts.obstacles, Cell{line, i})
			} else {
				ts.obstacles = append(ts.obstacles, Cell{i, line})
			}
		}
	}}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.SimLog = NewSimLog(v)
	}}
}

// WithReportWindow sets the reporter's sliding window.
func WithReportWindow(ticks int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.Reporter = NewSimReporter(ticks)
	}}
}

// WithScenario takes grid, obstacles and actors from a scenario. seed feeds
// random placement.
func WithScenario(sc *config.Scenario, seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.scenario = sc
		ts.seed = seed
		ts.Height = sc.Height
		ts.Width = sc.Width
	}}
}

// WithZombie adds a zombie at (row, col).
func WithZombie(row, col int) SimOption {
	return SimOption{simOptActor, func(ts *TestSim) {
		ts.zombies = append(ts.zombies, Cell{row, col})
	}}
}

// WithHuman adds a human at (row, col).
func WithHuman(row, col int) SimOption {
	return SimOption{simOptActor, func(ts *TestSim) {
		ts.humans = append(ts.humans, Cell{row, col})
	}}
}

// NewTestSim constructs a TestSim from the given options in ordered passes:
//  1. Infrastructure (grid size, obstacles, scenario, verbose)
//  2. Actors
//  3. Build the Apocalypse, its trail map and repeat tracker
func NewTestSim(opts ...SimOption) (*TestSim, error) {
	ts := &TestSim{
		Height:   20,
		Width:    30,
		SimLog:   NewSimLog(false),
		Reporter: NewSimReporter(reportWindowTicks),
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	for _, o := range opts {
		if o.kind == simOptActor {
			o.fn(ts)
		}
	}

	if ts.scenario != nil {
		sim, err := NewApocalypseFromScenario(ts.scenario, ts.seed)
		if err != nil {
			return nil, err
		}
		for _, o := range ts.obstacles {
			if err := sim.grid.SetObstacle(o.Row, o.Col); err != nil {
				return nil, err
			}
		}
		for _, z := range ts.zombies {
			if err := sim.AddZombie(z.Row, z.Col); err != nil {
				return nil, err
			}
		}
		for _, h := range ts.humans {
			if err := sim.AddHuman(h.Row, h.Col); err != nil {
				return nil, err
			}
		}
		ts.Sim = sim
	} else {
		sim, err := NewApocalypse(ts.Height, ts.Width, ts.obstacles, ts.zombies, ts.humans)
		if err != nil {
			return nil, err
		}
		ts.Sim = sim
	}
	ts.Trails = NewTrailMap(ts.Height, ts.Width)
	ts.Repeats = NewRepeatTracker()
	ts.Repeats.Observe(ts.Sim)
	return ts, nil
}

// RunTicks advances the simulation n ticks, logging events to SimLog.
func (ts *TestSim) RunTicks(n int) error {
	for i := 0; i < n; i++ {
		if err := ts.runOneTick(); err != nil {
			return err
		}
	}
	return nil
}

// RunUntil advances the simulation up to maxTicks, stopping early if predicate
// returns true. Returns the tick at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) (int, error) {
	for i := 0; i < maxTicks; i++ {
		if err := ts.runOneTick(); err != nil {
			return -1, err
		}
		if predicate(ts) {
			return ts.Sim.Tick(), nil
		}
	}
	return -1, nil
}

func (ts *TestSim) runOneTick() error {
	res, err := ts.Sim.Step()
	if err != nil {
		return err
	}
	ts.Last = res
	ts.SimLog.Record(res)
	ts.Reporter.Collect(res, ts.Sim)
	ts.Trails.Record(res)
	ts.Repeats.Observe(ts.Sim)
	return nil
}

// CurrentTick returns the current simulation tick.
func (ts *TestSim) CurrentTick() int {
	return ts.Sim.Tick()
}

// SimSnapshot is a lightweight copy of the actor positions at a tick.
type SimSnapshot struct {
	Tick    int
	Zombies []Cell
	Humans  []Cell
}

// Snapshot returns the current actor positions.
func (ts *TestSim) Snapshot() SimSnapshot {
	return SimSnapshot{
		Tick:    ts.Sim.Tick(),
		Zombies: ts.Sim.Zombies(),
		Humans:  ts.Sim.Humans(),
	}
}

// Outcome classifies the run as of the last tick.
func (ts *TestSim) Outcome() PursuitOutcomeReason {
	return DeterminePursuitOutcome(ts.Sim, ts.Repeats.Cycle())
}

// Settled reports whether the run reached a verdict: every human caught, or
// positions repeating. Usable as a RunUntil predicate.
func Settled(ts *TestSim) bool {
	return ts.Outcome().Outcome != OutcomeInconclusive
}

// AllCaught reports whether every human shares a cell with a zombie.
// Usable as a RunUntil predicate.
func AllCaught(ts *TestSim) bool {
	n := ts.Sim.NumHumans()
	return n > 0 && len(CaughtHumans(ts.Sim.zombies, ts.Sim.humans)) == n
}
