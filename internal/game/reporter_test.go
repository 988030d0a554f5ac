package game

import (
	"strings"
	"testing"
)

func TestSimReporter_CollectChaseStats(t *testing.T) {
	a := mustApocalypse(t, 3, 3, nil, []Cell{{0, 1}, {2, 2}}, []Cell{{0, 1}, {1, 0}})
	r := NewSimReporter(10)
	rep := r.Collect(tickResultFixture(), a)

	if rep.Tick != 7 || rep.Zombies != 2 || rep.Humans != 2 {
		t.Fatalf("unexpected header: %+v", rep)
	}
	if rep.Caught != 1 {
		t.Fatalf("expected 1 caught, got %d", rep.Caught)
	}
	if rep.ZombiesMoved != 1 || rep.HumansMoved != 2 {
		t.Fatalf("expected moved 1/2, got %d/%d", rep.ZombiesMoved, rep.HumansMoved)
	}
	// Field at (0,1)=1 and (2,2)=4.
	if rep.MinChase != 1 || rep.MeanChase != 2.5 || rep.Stranded != 0 {
		t.Fatalf("unexpected chase stats: min=%d mean=%.2f stranded=%d", rep.MinChase, rep.MeanChase, rep.Stranded)
	}
	if r.Latest() == nil || r.Latest().Tick != 7 {
		t.Fatalf("expected latest tick 7, got %+v", r.Latest())
	}
}

func TestSimReporter_WindowSummary(t *testing.T) {
	r := NewSimReporter(2)
	if r.WindowSummary() != nil {
		t.Fatal("expected nil window summary before any report")
	}
	if r.FormatLatest() != "no reports yet" {
		t.Fatalf("unexpected empty FormatLatest: %q", r.FormatLatest())
	}
	r.history = []TickReport{
		{Tick: 1, Caught: 0, ZombiesMoved: 2, MeanChase: 6, MinChase: 5},
		{Tick: 2, Caught: 1, ZombiesMoved: 2, MeanChase: 4, MinChase: 3},
		{Tick: 3, Caught: 3, ZombiesMoved: 0, MeanChase: 2, MinChase: -1},
	}
	wr := r.WindowSummary()
	if wr.FromTick != 2 || wr.ToTick != 3 || wr.SampleCount != 2 {
		t.Fatalf("expected window T=2..3 with 2 samples, got %+v", wr)
	}
	if wr.AvgCaught != 2 || wr.AvgZombiesMoved != 1 || wr.AvgMeanChase != 3 {
		t.Fatalf("unexpected averages: %+v", wr)
	}
	if wr.BestMinChase != 3 {
		t.Fatalf("expected best min chase 3, got %d", wr.BestMinChase)
	}
	if !strings.Contains(wr.Format(), "T=2..3") {
		t.Fatalf("expected tick range in format, got:\n%s", wr.Format())
	}

	r.Reset()
	if len(r.History()) != 0 {
		t.Fatal("expected empty history after Reset")
	}
}

func TestNewSimReporter_DefaultWindow(t *testing.T) {
	if r := NewSimReporter(0); r.windowTicks != reportWindowTicks {
		t.Fatalf("expected default window %d, got %d", reportWindowTicks, r.windowTicks)
	}
}
