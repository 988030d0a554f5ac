package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	logPanelWidth = 320
	logMaxEntries = 60
	logLineHeight = 14
)

// EventKind classifies an event log line for its colour tag.
type EventKind uint8

const (
	EventGlobal  EventKind = iota // run-wide: loads, clears, tallies
	EventZombie                   // about one zombie
	EventHuman                    // about one human
	EventOutcome                  // the run reached a verdict
)

// EventEntry is a single line in the event log.
type EventEntry struct {
	Tick    int
	Label   string // e.g. "Z1", "H3", "--"
	Kind    EventKind
	Message string
}

// EventLog is a ring buffer of recent simulation events rendered on-screen.
type EventLog struct {
	entries []EventEntry
	head    int
	count   int
}

// NewEventLog creates an event log with a fixed capacity.
func NewEventLog() *EventLog {
	return &EventLog{
		entries: make([]EventEntry, logMaxEntries),
	}
}

// Add appends an entry, overwriting the oldest once full.
func (el *EventLog) Add(tick int, label string, kind EventKind, msg string) {
	el.entries[el.head] = EventEntry{
		Tick:    tick,
		Label:   label,
		Kind:    kind,
		Message: msg,
	}
	el.head = (el.head + 1) % logMaxEntries
	if el.count < logMaxEntries {
		el.count++
	}
}

// AddTick copies the interesting events of one tick: catches, and a
// one-line movement tally.
func (el *EventLog) AddTick(res TickResult) {
	zMoved, hMoved := 0, 0
	for _, m := range res.ZombieMoves {
		if m.Moved() {
			zMoved++
		}
	}
	for _, m := range res.HumanMoves {
		if m.Moved() {
			hMoved++
		}
	}
	el.Add(res.Tick, "--", EventGlobal, fmt.Sprintf("moved z=%d/%d h=%d/%d",
		zMoved, len(res.ZombieMoves), hMoved, len(res.HumanMoves)))

	zombies := make([]Cell, len(res.ZombieMoves))
	for i, m := range res.ZombieMoves {
		zombies[i] = m.To
	}
	humans := make([]Cell, len(res.HumanMoves))
	for i, m := range res.HumanMoves {
		humans[i] = m.To
	}
	for _, idx := range CaughtHumans(zombies, humans) {
		el.Add(res.Tick, actorLabel(EntityHuman, idx), EventHuman, fmt.Sprintf("caught at %s", humans[idx]))
	}
}

// Clear drops every entry.
func (el *EventLog) Clear() {
	el.head = 0
	el.count = 0
}

// Recent returns entries in chronological order (oldest first).
func (el *EventLog) Recent() []EventEntry {
	result := make([]EventEntry, el.count)
	for i := 0; i < el.count; i++ {
		idx := (el.head - el.count + i + logMaxEntries) % logMaxEntries
		result[i] = el.entries[idx]
	}
	return result
}

// Draw renders the event log panel on the right side of the screen.
func (el *EventLog) Draw(screen *ebiten.Image, face text.Face, panelX int, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), float32(panelH), color.RGBA{R: 12, G: 10, B: 10, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 70, G: 50, B: 50, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), 18, color.RGBA{R: 30, G: 20, B: 20, A: 255}, false)
	drawText(screen, face, "EVENT LOG", panelX+8, 3, color.White)

	entries := el.Recent()

	// Newest at the bottom.
	maxVisible := (panelH - 26) / logLineHeight
	startIdx := 0
	if len(entries) > maxVisible {
		startIdx = len(entries) - maxVisible
	}
	visible := entries[startIdx:]
	recent := 3

	y := 22
	for i, e := range visible {
		if i >= len(visible)-recent {
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(logPanelWidth-4), float32(logLineHeight), color.RGBA{R: 40, G: 30, B: 30, A: 160}, false)
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+4), 3, 6, kindColor(e.Kind), false)
		line := fmt.Sprintf("%4d [%s] %s", e.Tick, e.Label, e.Message)
		drawText(screen, face, line, panelX+12, y+1, color.RGBA{R: 210, G: 210, B: 200, A: 255})
		y += logLineHeight
	}
}

func kindColor(k EventKind) color.RGBA {
	switch k {
	case EventZombie:
		return zombieColor
	case EventHuman:
		return humanColor
	case EventOutcome:
		return color.RGBA{R: 235, G: 200, B: 70, A: 255}
	default:
		return color.RGBA{R: 140, G: 140, B: 140, A: 255}
	}
}

func drawText(dst *ebiten.Image, face text.Face, s string, x, y int, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(dst, s, face, op)
}
