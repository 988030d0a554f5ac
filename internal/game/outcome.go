package game

import "strconv"

type PursuitOutcome int

const (
	OutcomeInconclusive PursuitOutcome = iota
	OutcomeAllCaught
	OutcomeStalemate
	OutcomeNoHumans
)

func (o PursuitOutcome) String() string {
	switch o {
	case OutcomeAllCaught:
		return "all_caught"
	case OutcomeStalemate:
		return "stalemate"
	case OutcomeNoHumans:
		return "no_humans"
	case OutcomeInconclusive:
		return "inconclusive"
	default:
		return "unknown"
	}
}

type PursuitOutcomeReason struct {
	Outcome     PursuitOutcome
	Zombies     int
	Humans      int
	Caught      int
	Free        int
	Unreachable int // free humans no zombie can reach
	Cycle       int // ticks between repeats of the current positions, 0 if none seen
	Description string
}

// RepeatTracker remembers the tick at which every actor configuration of a
// run was first seen. Movement is a pure function of the positions, so once a
// configuration comes back the run loops through the same ticks forever.
type RepeatTracker struct {
	seen  map[string]int
	cycle int
	buf   []byte
}

// NewRepeatTracker returns an empty tracker.
func NewRepeatTracker() *RepeatTracker {
	return &RepeatTracker{seen: make(map[string]int)}
}

// Observe records the current positions of a and returns the loop length
// when they were seen before, or 0.
func (t *RepeatTracker) Observe(a *Apocalypse) int {
	b := t.buf[:0]
	for _, z := range a.zombies {
		b = appendCellKey(b, z)
	}
	b = append(b, '|')
	for _, h := range a.humans {
		b = appendCellKey(b, h)
	}
	t.buf = b

	if first, ok := t.seen[string(b)]; ok {
		t.cycle = a.Tick() - first
		return t.cycle
	}
	t.seen[string(b)] = a.Tick()
	t.cycle = 0
	return 0
}

// Cycle returns the loop length found by the last Observe.
func (t *RepeatTracker) Cycle() int { return t.cycle }

// Reset forgets every configuration. Call it whenever actors or obstacles
// change outside of a tick.
func (t *RepeatTracker) Reset() {
	clear(t.seen)
	t.cycle = 0
}

func appendCellKey(b []byte, c Cell) []byte {
	b = strconv.AppendInt(b, int64(c.Row), 10)
	b = append(b, ',')
	b = strconv.AppendInt(b, int64(c.Col), 10)
	return append(b, ';')
}

// DeterminePursuitOutcome classifies the current positions of a. cycle is
// the loop length reported by a RepeatTracker; any positive value makes an
// unfinished run a stalemate, whether the actors stand still or keep
// stepping back and forth.
func DeterminePursuitOutcome(a *Apocalypse, cycle int) PursuitOutcomeReason {
	caught := CaughtHumans(a.zombies, a.humans)
	r := PursuitOutcomeReason{
		Zombies: len(a.zombies),
		Humans:  len(a.humans),
		Caught:  len(caught),
		Free:    len(a.humans) - len(caught),
		Cycle:   cycle,
	}

	if r.Humans == 0 {
		r.Outcome = OutcomeNoHumans
		r.Description = "no_humans_on_map"
		return r
	}
	if r.Free == 0 {
		r.Outcome = OutcomeAllCaught
		r.Description = "every_human_caught"
		return r
	}

	if zf, err := a.ComputeDistanceField(EntityZombie); err == nil {
		isCaught := make(map[int]bool, len(caught))
		for _, i := range caught {
			isCaught[i] = true
		}
		for i, h := range a.humans {
			if !isCaught[i] && !zf.at(h).Reachable() {
				r.Unreachable++
			}
		}
	}

	if cycle > 0 {
		r.Outcome = OutcomeStalemate
		switch {
		case r.Zombies == 0:
			r.Description = "stalemate_no_zombies"
		case r.Unreachable == r.Free:
			r.Description = "stalemate_survivors_sealed_off"
		default:
			r.Description = "stalemate_looping"
		}
		return r
	}

	r.Outcome = OutcomeInconclusive
	if r.Caught > 0 {
		r.Description = "inconclusive_partial_catch"
	} else {
		r.Description = "inconclusive_pursuit_ongoing"
	}
	return r
}
