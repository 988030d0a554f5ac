package game

import (
	"strings"
	"testing"
)

func tickResultFixture() TickResult {
	hf, _ := NewDistanceField([][]int{{0, 1, 2}, {1, 2, 3}, {2, 3, 4}})
	return TickResult{
		Tick: 7,
		ZombieMoves: []Move{
			{Index: 0, From: Cell{1, 1}, To: Cell{0, 1}},
			{Index: 1, From: Cell{2, 2}, To: Cell{2, 2}},
		},
		HumanMoves: []Move{
			{Index: 0, From: Cell{0, 0}, To: Cell{0, 1}},
			{Index: 1, From: Cell{2, 0}, To: Cell{1, 0}},
		},
		HumanField: hf,
	}
}

func TestSimLog_RecordStepsAndCatches(t *testing.T) {
	sl := NewSimLog(false)
	sl.Record(tickResultFixture())

	if n := sl.CountCategory("move", "step"); n != 3 {
		t.Fatalf("expected 3 step entries, got %d", n)
	}
	if n := sl.CountCategory("move", "hold"); n != 0 {
		t.Fatalf("expected no hold entries without verbose, got %d", n)
	}
	e, ok := sl.LastOf("contact", "caught")
	if !ok {
		t.Fatal("expected a caught entry")
	}
	if e.Actor != "H0" || e.Value != "by Z0 at (0,1)" || e.Tick != 7 {
		t.Fatalf("unexpected caught entry: %s", e.String())
	}
	if !sl.HasEntry("move", "step", "(2,0) → (1,0)") {
		t.Fatalf("expected H1 step entry, got:\n%s", sl.Format())
	}
}

func TestSimLog_VerboseRecordsHoldsAndField(t *testing.T) {
	sl := NewSimLog(true)
	sl.Record(tickResultFixture())

	if n := sl.CountCategory("move", "hold"); n != 1 {
		t.Fatalf("expected 1 hold entry, got %d", n)
	}
	if n := sl.CountCategory("move", "position"); n != 4 {
		t.Fatalf("expected 4 position entries, got %d", n)
	}
	e, ok := sl.LastOf("field", "max_distance")
	if !ok || e.NumVal != 4 {
		t.Fatalf("expected max_distance 4, got %+v (ok=%v)", e, ok)
	}
}

func TestSimLog_Filters(t *testing.T) {
	sl := NewSimLog(false)
	sl.Add(1, "Z0", "zombie", "move", "step", "a", 0)
	sl.Add(2, "H0", "human", "move", "step", "b", 0)
	sl.Add(3, "H0", "human", "contact", "caught", "c", 0)
	sl.AddVerbose(3, "H0", "human", "move", "position", "d", 0)

	if got := len(sl.Entries()); got != 3 {
		t.Fatalf("expected AddVerbose to be dropped, got %d entries", got)
	}
	if got := len(sl.FilterActor("H0")); got != 2 {
		t.Fatalf("expected 2 H0 entries, got %d", got)
	}
	if got := len(sl.FilterTickRange(2, 3)); got != 2 {
		t.Fatalf("expected 2 entries in T=2..3, got %d", got)
	}
	if got := len(sl.Filter("move", "")); got != 2 {
		t.Fatalf("expected 2 move entries, got %d", got)
	}
	if got := sl.FirstTick("contact", "caught"); got != 3 {
		t.Fatalf("expected first caught at 3, got %d", got)
	}
	if got := sl.FirstTick("sim", "clear"); got != -1 {
		t.Fatalf("expected -1 for missing key, got %d", got)
	}
	if lines := strings.Count(sl.FormatRange(1, 1), "\n"); lines != 1 {
		t.Fatalf("expected 1 formatted line, got %d", lines)
	}

	sl.Reset()
	if len(sl.Entries()) != 0 {
		t.Fatalf("expected empty log after Reset")
	}
}

func TestSimLog_SummaryListsCaughtHumans(t *testing.T) {
	a := mustApocalypse(t, 3, 3, nil, []Cell{{1, 1}}, []Cell{{0, 0}, {1, 1}})
	sl := NewSimLog(false)
	s := sl.Summary(a)
	if !strings.Contains(s, "Caught now: [H1]") {
		t.Fatalf("expected H1 caught in summary, got:\n%s", s)
	}
	if !strings.Contains(s, "zombies=1  humans=2") {
		t.Fatalf("expected actor counts in summary, got:\n%s", s)
	}
}

func TestCaughtHumans(t *testing.T) {
	got := CaughtHumans([]Cell{{0, 0}, {2, 2}}, []Cell{{2, 2}, {1, 1}, {0, 0}, {2, 2}})
	want := []int{0, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	if CaughtHumans(nil, []Cell{{0, 0}}) != nil {
		t.Fatal("expected nil with no zombies")
	}
}
