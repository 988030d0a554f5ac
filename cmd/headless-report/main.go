package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Garsondee/Zombie-Sense/internal/config"
	"github.com/Garsondee/Zombie-Sense/internal/game"
)

type runStats struct {
	runIndex int
	seed     int64
	ticks    int

	zombies int
	humans  int

	firstCatchTick int
	allCaughtTick  int
	caughtAtEnd    int
	zombieSteps    int
	humanSteps     int

	finalMeanChase float64
	finalMinChase  int
	outcome        game.PursuitOutcomeReason
	catchHotspot   string
	windowSummary  *game.WindowReport
	logText        string
}

func main() {
	var runs int
	var ticks int
	var workers int
	var seedBase int64
	var seedStep int64
	var scenarioPath string
	var verbose bool
	var copyOut bool

	flag.IntVar(&runs, "runs", 5, "number of headless simulation runs")
	flag.IntVar(&ticks, "ticks", 0, "ticks per run (0 = scenario ticks)")
	flag.IntVar(&workers, "workers", 4, "runs executed in parallel")
	flag.Int64Var(&seedBase, "seed-base", 42, "base placement seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&scenarioPath, "scenario", "", "scenario YAML file (empty = built-in default)")
	flag.BoolVar(&verbose, "verbose", false, "print the full event log of run 1")
	flag.BoolVar(&copyOut, "copy", false, "copy the report to the clipboard")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if workers <= 0 {
		fmt.Println("error: -workers must be > 0")
		return
	}

	sc := config.DefaultScenario()
	if scenarioPath != "" {
		var err error
		if sc, err = config.LoadScenario(scenarioPath); err != nil {
			log.Fatal(err)
		}
	}
	if ticks <= 0 {
		ticks = sc.Ticks
	}

	all, err := runAll(sc, runs, ticks, workers, seedBase, seedStep, verbose)
	if err != nil {
		log.Fatal(err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Headless Pursuit Report ===\n")
	fmt.Fprintf(&sb, "scenario=%s grid=%dx%d runs=%d ticks=%d seed_base=%d seed_step=%d\n\n",
		sc.Name, sc.Height, sc.Width, runs, ticks, seedBase, seedStep)
	for _, rs := range all {
		printRun(&sb, rs)
	}
	printAggregate(&sb, all)
	if verbose && len(all) > 0 {
		sb.WriteString("\n=== Run 1 event log ===\n")
		sb.WriteString(all[0].logText)
	}

	report := sb.String()
	fmt.Print(report)
	if copyOut {
		if err := game.CopyToClipboard(report); err != nil {
			log.Printf("clipboard: %v", err)
		}
	}
}

// runAll executes the runs on a bounded pool of goroutines. Each run owns its
// own simulation; results land in their run slot.
func runAll(sc *config.Scenario, runs, ticks, workers int, seedBase, seedStep int64, verbose bool) ([]runStats, error) {
	all := make([]runStats, runs)
	var eg errgroup.Group
	eg.SetLimit(workers)
	for i := 0; i < runs; i++ {
		eg.Go(func() error {
			seed := seedBase + int64(i)*seedStep
			rs, err := runScenario(sc, i+1, seed, ticks, verbose && i == 0)
			if err != nil {
				return fmt.Errorf("run %d (seed=%d): %w", i+1, seed, err)
			}
			all[i] = rs
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return all, nil
}

func runScenario(sc *config.Scenario, runIndex int, seed int64, ticks int, verbose bool) (runStats, error) {
	ts, err := game.NewTestSim(game.WithScenario(sc, seed), game.WithVerbose(verbose))
	if err != nil {
		return runStats{}, err
	}
	if err := ts.RunTicks(ticks); err != nil {
		return runStats{}, err
	}

	rs := runStats{
		runIndex:       runIndex,
		seed:           seed,
		ticks:          ticks,
		zombies:        ts.Sim.NumZombies(),
		humans:         ts.Sim.NumHumans(),
		firstCatchTick: ts.SimLog.FirstTick("contact", "caught"),
		allCaughtTick:  firstAllCaught(ts.Reporter.History()),
		zombieSteps:    countKind(ts.SimLog.Filter("move", "step"), "zombie"),
		humanSteps:     countKind(ts.SimLog.Filter("move", "step"), "human"),
		finalMinChase:  -1,
		outcome:        ts.Outcome(),
		catchHotspot:   hotspotString(ts.Trails.Layer(game.TrailCatch)),
		windowSummary:  ts.Reporter.WindowSummary(),
	}
	if latest := ts.Reporter.Latest(); latest != nil {
		rs.caughtAtEnd = latest.Caught
		rs.finalMeanChase = latest.MeanChase
		rs.finalMinChase = latest.MinChase
	}
	if verbose {
		rs.logText = ts.SimLog.Format()
	}
	return rs, nil
}

// hotspotString renders the heat-weighted centre of a trail layer.
func hotspotString(l *game.HeatLayer) string {
	row, col, ok := l.Centroid()
	if !ok {
		return "n/a"
	}
	return fmt.Sprintf("(%.1f,%.1f)", row, col)
}

func firstAllCaught(history []game.TickReport) int {
	for _, r := range history {
		if r.Humans > 0 && r.Caught == r.Humans {
			return r.Tick
		}
	}
	return -1
}

func countKind(entries []game.SimLogEntry, kind string) int {
	n := 0
	for _, e := range entries {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func printRun(w io.Writer, rs runStats) {
	fmt.Fprintf(w, "--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Fprintf(w, "actors: zombies=%d humans=%d\n", rs.zombies, rs.humans)
	fmt.Fprintf(w, "phase_markers: first_catch=%d all_caught=%d\n", rs.firstCatchTick, rs.allCaughtTick)
	fmt.Fprintf(w, "event_totals: zombie_steps=%d human_steps=%d caught_at_end=%d/%d\n",
		rs.zombieSteps, rs.humanSteps, rs.caughtAtEnd, rs.humans)
	fmt.Fprintf(w, "final_chase: mean=%.2f min=%d\n", rs.finalMeanChase, rs.finalMinChase)
	fmt.Fprintf(w, "outcome=%s reason=%s free=%d unreachable=%d loop=%d catch_hotspot=%s\n",
		rs.outcome.Outcome, rs.outcome.Description, rs.outcome.Free, rs.outcome.Unreachable, rs.outcome.Cycle, rs.catchHotspot)
	if rs.windowSummary != nil {
		fmt.Fprintf(w, "window_samples=%d window_tick_range=%d..%d avg_caught=%.2f avg_mean_chase=%.2f\n",
			rs.windowSummary.SampleCount, rs.windowSummary.FromTick, rs.windowSummary.ToTick,
			rs.windowSummary.AvgCaught, rs.windowSummary.AvgMeanChase)
	}
	fmt.Fprintln(w)
}

func printAggregate(w io.Writer, all []runStats) {
	totalCaught := 0
	totalHumans := 0
	totalZSteps := 0
	totalHSteps := 0
	chaseSum := 0.0
	outcomes := make(map[game.PursuitOutcome]int)
	catchTicks := make([]int, 0, len(all))
	allCaughtTicks := make([]int, 0, len(all))

	for _, rs := range all {
		totalCaught += rs.caughtAtEnd
		totalHumans += rs.humans
		totalZSteps += rs.zombieSteps
		totalHSteps += rs.humanSteps
		chaseSum += rs.finalMeanChase
		outcomes[rs.outcome.Outcome]++
		if rs.firstCatchTick >= 0 {
			catchTicks = append(catchTicks, rs.firstCatchTick)
		}
		if rs.allCaughtTick >= 0 {
			allCaughtTicks = append(allCaughtTicks, rs.allCaughtTick)
		}
	}

	fmt.Fprintln(w, "=== Aggregate ===")
	fmt.Fprintf(w, "runs=%d\n", len(all))
	fmt.Fprintf(w, "avg_steps_per_run: zombie=%.1f human=%.1f\n", avg(totalZSteps, len(all)), avg(totalHSteps, len(all)))
	fmt.Fprintf(w, "caught_share=%s\n", shareString(totalCaught, totalHumans))
	fmt.Fprintf(w, "outcomes: all_caught=%d stalemate=%d inconclusive=%d no_humans=%d\n",
		outcomes[game.OutcomeAllCaught], outcomes[game.OutcomeStalemate],
		outcomes[game.OutcomeInconclusive], outcomes[game.OutcomeNoHumans])
	fmt.Fprintf(w, "phase_marker_avg_ticks: first_catch=%s all_caught=%s\n", avgTickString(catchTicks), avgTickString(allCaughtTicks))
	if len(all) > 0 {
		fmt.Fprintf(w, "avg_final_mean_chase=%.2f\n", chaseSum/float64(len(all)))
	}
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func shareString(part, total int) string {
	if total <= 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.0f%% (%d/%d)", float64(part)/float64(total)*100, part, total)
}

func init() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)
}
