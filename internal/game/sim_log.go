package game

import (
	"fmt"
	"strings"
)

// SimLogEntry is one recorded event during a simulation run.
type SimLogEntry struct {
	Tick     int
	Actor    string  // label e.g. "Z0", "H3", or "--" for global events
	Kind     string  // "zombie", "human", or "--"
	Category string  // move, contact, field, sim
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] Z0   move      step             (3,4) → (2,4)
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-4s %-9s %-16s %s",
		e.Tick, e.Actor, e.Category, e.Key, e.Value)
}

// SimLog collects structured events. Unlike EventLog (UI ring-buffer),
// SimLog is unbounded and machine-readable.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. If verbose is true, per-tick position and
// field entries are also recorded.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Verbose reports whether per-tick detail is recorded.
func (sl *SimLog) Verbose() bool { return sl.verbose }

// Add records a new entry.
func (sl *SimLog) Add(tick int, actor, kind, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:     tick,
		Actor:    actor,
		Kind:     kind,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(tick int, actor, kind, category, key, value string, numVal float64) {
	if !sl.verbose {
		return
	}
	sl.Add(tick, actor, kind, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// Reset drops every entry.
func (sl *SimLog) Reset() {
	sl.entries = nil
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterActor returns entries for a specific actor label.
func (sl *SimLog) FilterActor(label string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Actor == label {
			out = append(out, e)
		}
	}
	return out
}

// FilterTickRange returns entries within [fromTick, toTick] inclusive.
func (sl *SimLog) FilterTickRange(fromTick, toTick int) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Tick >= fromTick && e.Tick <= toTick {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (sl *SimLog) CountCategory(category, key string) int {
	return len(sl.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	entries := sl.Filter(category, key)
	if len(entries) == 0 {
		return SimLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// FirstTick returns the tick of the first entry matching category+key, or -1.
func (sl *SimLog) FirstTick(category, key string) int {
	for _, e := range sl.entries {
		if e.Category == category && e.Key == key {
			return e.Tick
		}
	}
	return -1
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (sl *SimLog) Format() string {
	var sb strings.Builder
	for _, e := range sl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatRange returns a log string filtered to a tick range.
func (sl *SimLog) FormatRange(fromTick, toTick int) string {
	var sb strings.Builder
	for _, e := range sl.FilterTickRange(fromTick, toTick) {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Record appends the events of one tick: a step or hold per actor, and a
// caught contact for every human sharing a cell with a zombie afterwards.
func (sl *SimLog) Record(res TickResult) {
	for _, m := range res.ZombieMoves {
		sl.recordMove(res.Tick, EntityZombie, m)
	}
	for _, m := range res.HumanMoves {
		sl.recordMove(res.Tick, EntityHuman, m)
	}

	zombieAt := make(map[Cell]int, len(res.ZombieMoves))
	for _, m := range res.ZombieMoves {
		if _, ok := zombieAt[m.To]; !ok {
			zombieAt[m.To] = m.Index
		}
	}
	for _, m := range res.HumanMoves {
		if zi, ok := zombieAt[m.To]; ok {
			sl.Add(res.Tick, actorLabel(EntityHuman, m.Index), "human", "contact", "caught",
				fmt.Sprintf("by %s at %s", actorLabel(EntityZombie, zi), m.To), 0)
		}
	}

	if sl.verbose && res.HumanField != nil {
		maxD := res.HumanField.MaxReachable()
		sl.Add(res.Tick, "--", "--", "field", "max_distance", fmt.Sprintf("human field max=%d", maxD), float64(maxD))
	}
}

func (sl *SimLog) recordMove(tick int, e Entity, m Move) {
	label := actorLabel(e, m.Index)
	kind := e.String()
	if m.Moved() {
		sl.Add(tick, label, kind, "move", "step", fmt.Sprintf("%s → %s", m.From, m.To), 0)
	} else {
		sl.AddVerbose(tick, label, kind, "move", "hold", m.From.String(), 0)
	}
	sl.AddVerbose(tick, label, kind, "move", "position", m.To.String(), 0)
}

// Summary returns a short human-readable summary of the simulation state.
func (sl *SimLog) Summary(a *Apocalypse) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%03d ---\n", a.Tick())
	fmt.Fprintf(&sb, "Grid: %dx%d  obstacles=%d\n", a.Grid().Height(), a.Grid().Width(), len(a.Grid().Obstacles()))
	fmt.Fprintf(&sb, "Actors: zombies=%d  humans=%d\n", a.NumZombies(), a.NumHumans())
	fmt.Fprintf(&sb, "Events: steps=%d  caught=%d\n", sl.CountCategory("move", "step"), sl.CountCategory("contact", "caught"))

	caught := CaughtHumans(a.Zombies(), a.Humans())
	if len(caught) == 0 {
		sb.WriteString("Caught now: none\n")
		return sb.String()
	}
	labels := make([]string, len(caught))
	for i, idx := range caught {
		labels[i] = actorLabel(EntityHuman, idx)
	}
	fmt.Fprintf(&sb, "Caught now: [%s]\n", strings.Join(labels, ", "))
	return sb.String()
}

// CaughtHumans returns the indices of humans standing on a zombie's cell.
func CaughtHumans(zombies, humans []Cell) []int {
	occupied := make(map[Cell]struct{}, len(zombies))
	for _, z := range zombies {
		occupied[z] = struct{}{}
	}
	var out []int
	for i, h := range humans {
		if _, ok := occupied[h]; ok {
			out = append(out, i)
		}
	}
	return out
}
