package game

import (
	"fmt"
	"strings"
)

// reportWindowTicks is the default sliding window for recent-behaviour reports.
const reportWindowTicks = 50

// TickReport is a snapshot of the simulation right after one tick.
type TickReport struct {
	Tick    int
	Zombies int
	Humans  int
	Caught  int // humans sharing a cell with a zombie

	ZombiesMoved int
	HumansMoved  int

	// Chase distance: the pre-tick human field sampled at each zombie's new
	// cell. Zombies with no reachable human are counted in Stranded instead.
	MeanChase float64
	MinChase  int // -1 when every zombie is stranded
	Stranded  int
}

// SimReporter collects one TickReport per tick and summarises sliding windows.
type SimReporter struct {
	history     []TickReport
	windowTicks int
}

// NewSimReporter creates a reporter with the given window size.
func NewSimReporter(windowTicks int) *SimReporter {
	if windowTicks <= 0 {
		windowTicks = reportWindowTicks
	}
	return &SimReporter{windowTicks: windowTicks}
}

// Collect builds and stores the report for res. a must already reflect the tick.
func (r *SimReporter) Collect(res TickResult, a *Apocalypse) TickReport {
	rep := TickReport{
		Tick:     res.Tick,
		Zombies:  a.NumZombies(),
		Humans:   a.NumHumans(),
		Caught:   len(CaughtHumans(a.zombies, a.humans)),
		MinChase: -1,
	}
	for _, m := range res.ZombieMoves {
		if m.Moved() {
			rep.ZombiesMoved++
		}
	}
	for _, m := range res.HumanMoves {
		if m.Moved() {
			rep.HumansMoved++
		}
	}

	if res.HumanField != nil {
		sum, n := 0, 0
		for _, m := range res.ZombieMoves {
			d := res.HumanField.at(m.To)
			if !d.Reachable() {
				rep.Stranded++
				continue
			}
			sum += int(d)
			n++
			if rep.MinChase < 0 || int(d) < rep.MinChase {
				rep.MinChase = int(d)
			}
		}
		if n > 0 {
			rep.MeanChase = float64(sum) / float64(n)
		}
	}

	r.history = append(r.history, rep)
	return rep
}

// Latest returns the most recent report, or nil when nothing was collected.
func (r *SimReporter) Latest() *TickReport {
	if len(r.history) == 0 {
		return nil
	}
	return &r.history[len(r.history)-1]
}

// History returns every collected report, oldest first.
func (r *SimReporter) History() []TickReport {
	return r.history
}

// Reset drops the collected history.
func (r *SimReporter) Reset() {
	r.history = nil
}

// WindowReport averages the reports inside the most recent window.
type WindowReport struct {
	FromTick    int
	ToTick      int
	SampleCount int

	AvgCaught       float64
	AvgZombiesMoved float64
	AvgHumansMoved  float64
	AvgMeanChase    float64
	BestMinChase    int // smallest MinChase seen in the window, -1 if none
}

// WindowSummary averages the last windowTicks reports. Nil when empty.
func (r *SimReporter) WindowSummary() *WindowReport {
	if len(r.history) == 0 {
		return nil
	}
	start := len(r.history) - r.windowTicks
	if start < 0 {
		start = 0
	}
	samples := r.history[start:]
	wr := &WindowReport{
		FromTick:     samples[0].Tick,
		ToTick:       samples[len(samples)-1].Tick,
		SampleCount:  len(samples),
		BestMinChase: -1,
	}
	for _, s := range samples {
		wr.AvgCaught += float64(s.Caught)
		wr.AvgZombiesMoved += float64(s.ZombiesMoved)
		wr.AvgHumansMoved += float64(s.HumansMoved)
		wr.AvgMeanChase += s.MeanChase
		if s.MinChase >= 0 && (wr.BestMinChase < 0 || s.MinChase < wr.BestMinChase) {
			wr.BestMinChase = s.MinChase
		}
	}
	n := float64(len(samples))
	wr.AvgCaught /= n
	wr.AvgZombiesMoved /= n
	wr.AvgHumansMoved /= n
	wr.AvgMeanChase /= n
	return wr
}

// Format renders the window summary as a short block.
func (wr *WindowReport) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Window T=%d..%d (%d samples) ===\n", wr.FromTick, wr.ToTick, wr.SampleCount)
	fmt.Fprintf(&sb, "avg_caught=%.2f  avg_zombies_moved=%.2f  avg_humans_moved=%.2f\n",
		wr.AvgCaught, wr.AvgZombiesMoved, wr.AvgHumansMoved)
	fmt.Fprintf(&sb, "avg_mean_chase=%.2f  best_min_chase=%d\n", wr.AvgMeanChase, wr.BestMinChase)
	return sb.String()
}

// FormatLatest renders the latest report as one line.
func (r *SimReporter) FormatLatest() string {
	rep := r.Latest()
	if rep == nil {
		return "no reports yet"
	}
	return fmt.Sprintf("T=%d zombies=%d humans=%d caught=%d moved=%d/%d chase_mean=%.2f chase_min=%d stranded=%d",
		rep.Tick, rep.Zombies, rep.Humans, rep.Caught, rep.ZombiesMoved, rep.HumansMoved,
		rep.MeanChase, rep.MinChase, rep.Stranded)
}
