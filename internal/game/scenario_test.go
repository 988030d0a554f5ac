package game

import (
	"testing"

	"github.com/Garsondee/Zombie-Sense/internal/config"
)

// dumpLog prints the full SimLog to t.Log so it appears in `go test -v` output.
func dumpLog(t *testing.T, ts *TestSim) {
	t.Helper()
	entries := ts.SimLog.Entries()
	if len(entries) == 0 {
		t.Log("(no log entries)")
		return
	}
	for _, e := range entries {
		t.Log(e.String())
	}
}

// dumpSummary prints the scenario summary block.
func dumpSummary(t *testing.T, ts *TestSim) {
	t.Helper()
	t.Log(ts.SimLog.Summary(ts.Sim))
	if ts.Reporter != nil {
		t.Log(ts.Reporter.FormatLatest())
		if wr := ts.Reporter.WindowSummary(); wr != nil {
			t.Log(wr.Format())
		}
	}
}

// --- Scenario: Dead-End Corridor ---

func TestScenario_DeadEndCorridorCatch(t *testing.T) {
	t.Log("=== TestScenario_DeadEndCorridorCatch ===")
	t.Log("--- Setup: 1x6 corridor, zombie at the open end, human in the middle ---")

	ts, err := NewTestSim(
		WithGridSize(1, 6),
		WithZombie(0, 5),
		WithHuman(0, 2),
	)
	if err != nil {
		t.Fatalf("NewTestSim: %v", err)
	}

	tick, err := ts.RunUntil(AllCaught, 40)
	if err != nil {
		t.Fatalf("RunUntil: %v", err)
	}
	dumpLog(t, ts)
	dumpSummary(t, ts)

	// The human reaches (0,0) at T=2 and holds; the zombie arrives at T=5.
	if tick != 5 {
		t.Fatalf("expected catch at tick 5, got %d", tick)
	}
	if !ts.SimLog.HasEntry("contact", "caught", "by Z0 at (0,0)") {
		t.Fatalf("expected a caught entry naming Z0")
	}
	if ts.SimLog.FirstTick("contact", "caught") != tick {
		t.Fatalf("expected first caught tick %d, got %d", tick, ts.SimLog.FirstTick("contact", "caught"))
	}
}

// --- Scenario: Wall Detour ---

func TestScenario_WallDetour(t *testing.T) {
	t.Log("=== TestScenario_WallDetour ===")
	t.Log("--- Setup: 7x7, vertical wall col 3 rows 0..5, zombie left, human right ---")

	ts, err := NewTestSim(
		WithGridSize(7, 7),
		WithWall(false, 3, 0, 5),
		WithZombie(0, 0),
		WithHuman(0, 6),
	)
	if err != nil {
		t.Fatalf("NewTestSim: %v", err)
	}
	if err := ts.RunTicks(12); err != nil {
		t.Fatalf("RunTicks: %v", err)
	}
	dumpLog(t, ts)

	// The only gap is row 6, so the zombie's path must pass through it.
	crossed := false
	for _, e := range ts.SimLog.FilterActor("Z0") {
		if e.Key == "step" && e.Value == "(6,2) → (6,3)" {
			crossed = true
		}
	}
	if !crossed {
		t.Fatalf("expected Z0 to go through the gap at (6,3)")
	}
}

// --- Scenario: Enclosed Human ---

func TestScenario_EnclosedHumanIsUnreachable(t *testing.T) {
	t.Log("=== TestScenario_EnclosedHumanIsUnreachable ===")

	ts, err := NewTestSim(
		WithGridSize(5, 5),
		WithWall(true, 1, 1, 3),
		WithWall(true, 3, 1, 3),
		WithObstacle(2, 1),
		WithObstacle(2, 3),
		WithZombie(4, 4),
		WithHuman(2, 2),
	)
	if err != nil {
		t.Fatalf("NewTestSim: %v", err)
	}
	if err := ts.RunTicks(5); err != nil {
		t.Fatalf("RunTicks: %v", err)
	}
	dumpSummary(t, ts)

	// With no reachable human every candidate ties, so the zombie keeps
	// taking its first open neighbour: up column 4, then back and forth.
	if got := ts.Sim.Zombies()[0]; got != (Cell{1, 4}) {
		t.Fatalf("expected zombie at (1,4) after wandering, got %v", got)
	}
	if got := ts.Sim.Humans()[0]; got != (Cell{2, 2}) {
		t.Fatalf("expected enclosed human to hold, got %v", got)
	}
	latest := ts.Reporter.Latest()
	if latest == nil || latest.Stranded != 1 || latest.MinChase != -1 {
		t.Fatalf("expected one stranded zombie, got %+v", latest)
	}
}

// --- Scenario: Bundled Default ---

func TestScenario_DefaultMapRuns(t *testing.T) {
	ts, err := NewTestSim(WithScenario(config.DefaultScenario(), 0), WithVerbose(true))
	if err != nil {
		t.Fatalf("NewTestSim: %v", err)
	}
	if ts.Sim.NumZombies() != 2 || ts.Sim.NumHumans() != 3 {
		t.Fatalf("expected 2 zombies and 3 humans, got %d/%d", ts.Sim.NumZombies(), ts.Sim.NumHumans())
	}
	if err := ts.RunTicks(100); err != nil {
		t.Fatalf("RunTicks: %v", err)
	}
	dumpSummary(t, ts)

	if ts.CurrentTick() != 100 {
		t.Fatalf("expected tick 100, got %d", ts.CurrentTick())
	}
	if n := ts.SimLog.CountCategory("move", "position"); n != 100*5 {
		t.Fatalf("expected 500 verbose position entries, got %d", n)
	}
	if len(ts.Reporter.History()) != 100 {
		t.Fatalf("expected 100 reports, got %d", len(ts.Reporter.History()))
	}
}

func TestScenario_ExtraActorsOnTopOfScenario(t *testing.T) {
	ts, err := NewTestSim(
		WithScenario(config.DefaultScenario(), 0),
		WithZombie(0, 0),
		WithObstacle(0, 1),
	)
	if err != nil {
		t.Fatalf("NewTestSim: %v", err)
	}
	if ts.Sim.NumZombies() != 3 {
		t.Fatalf("expected 3 zombies, got %d", ts.Sim.NumZombies())
	}
	if full, _ := ts.Sim.Grid().IsObstacle(0, 1); !full {
		t.Fatalf("expected extra obstacle at (0,1)")
	}
}

func TestScenario_SnapshotIsStable(t *testing.T) {
	ts, err := NewTestSim(WithGridSize(4, 4), WithZombie(0, 0), WithHuman(3, 3))
	if err != nil {
		t.Fatalf("NewTestSim: %v", err)
	}
	before := ts.Snapshot()
	if err := ts.RunTicks(1); err != nil {
		t.Fatalf("RunTicks: %v", err)
	}
	if before.Tick != 0 || before.Zombies[0] != (Cell{0, 0}) {
		t.Fatalf("snapshot changed after a tick: %+v", before)
	}
	if after := ts.Snapshot(); after.Tick != 1 {
		t.Fatalf("expected snapshot tick 1, got %d", after.Tick)
	}
}

func TestScenario_DeterministicReplay(t *testing.T) {
	run := func() SimSnapshot {
		ts, err := NewTestSim(WithScenario(config.DefaultScenario(), 0))
		if err != nil {
			t.Fatalf("NewTestSim: %v", err)
		}
		if err := ts.RunTicks(30); err != nil {
			t.Fatalf("RunTicks: %v", err)
		}
		return ts.Snapshot()
	}
	a, b := run(), run()
	for i := range a.Zombies {
		if a.Zombies[i] != b.Zombies[i] {
			t.Fatalf("zombie %d diverged: %v vs %v", i, a.Zombies[i], b.Zombies[i])
		}
	}
	for i := range a.Humans {
		if a.Humans[i] != b.Humans[i] {
			t.Fatalf("human %d diverged: %v vs %v", i, a.Humans[i], b.Humans[i])
		}
	}
}
