package game

// TrailKind identifies a specific heat layer within a TrailMap.
type TrailKind int

const (
	TrailZombie    TrailKind = iota // where zombies have stood recently
	TrailHuman                      // where humans have stood recently
	TrailCatch                      // cells where a human was caught
	trailKindCount                  // layer count
)

// TrailKindName returns a short display name for a layer.
func TrailKindName(k TrailKind) string {
	switch k {
	case TrailZombie:
		return "Zombie"
	case TrailHuman:
		return "Human"
	case TrailCatch:
		return "Catch"
	default:
		return "Unknown"
	}
}

// trailDecayRates are the per-tick decay rates for each layer (subtracted each tick).
//
//	TrailZombie 0.04  → a footprint fades over ~12 ticks
//	TrailHuman  0.04  → same
//	TrailCatch  0.005 → ~200 ticks
var trailDecayRates = [trailKindCount]float32{
	0.04,
	0.04,
	0.005,
}

const (
	heatMaxValue  float32 = 1.0
	trailDeposit  float32 = 0.5 // heat left per actor per tick
	catchDeposit  float32 = 1.0
	maxTrailAlpha         = 140
)

// HeatLayer is a 2-D float32 grid of decaying values in [0, heatMaxValue].
type HeatLayer struct {
	cells     []float32
	rows      int
	cols      int
	decayRate float32
}

func newHeatLayer(rows, cols int, decayRate float32) *HeatLayer {
	return &HeatLayer{
		cells:     make([]float32, rows*cols),
		rows:      rows,
		cols:      cols,
		decayRate: decayRate,
	}
}

// Add adds delta to cell (row, col), clamped to [0, heatMaxValue].
func (l *HeatLayer) Add(row, col int, delta float32) {
	if row < 0 || row >= l.rows || col < 0 || col >= l.cols {
		return
	}
	idx := row*l.cols + col
	l.cells[idx] = clampHeat(l.cells[idx] + delta)
}

// Set forces a cell to exactly v, clamped to [0, heatMaxValue].
func (l *HeatLayer) Set(row, col int, v float32) {
	if row < 0 || row >= l.rows || col < 0 || col >= l.cols {
		return
	}
	l.cells[row*l.cols+col] = clampHeat(v)
}

// At returns the heat value at (row, col), or 0 if out of bounds.
func (l *HeatLayer) At(row, col int) float32 {
	if row < 0 || row >= l.rows || col < 0 || col >= l.cols {
		return 0
	}
	return l.cells[row*l.cols+col]
}

// SumAround returns the total heat in the square of the given radius
// centred on c, clipped to the layer.
func (l *HeatLayer) SumAround(c Cell, radius int) float32 {
	var sum float32
	for row := max(0, c.Row-radius); row <= min(l.rows-1, c.Row+radius); row++ {
		for col := max(0, c.Col-radius); col <= min(l.cols-1, c.Col+radius); col++ {
			sum += l.cells[row*l.cols+col]
		}
	}
	return sum
}

// MaxAround returns the peak heat in the square of the given radius centred on c.
func (l *HeatLayer) MaxAround(c Cell, radius int) float32 {
	var best float32
	for row := max(0, c.Row-radius); row <= min(l.rows-1, c.Row+radius); row++ {
		for col := max(0, c.Col-radius); col <= min(l.cols-1, c.Col+radius); col++ {
			if v := l.cells[row*l.cols+col]; v > best {
				best = v
			}
		}
	}
	return best
}

// Centroid returns the heat-weighted centroid in cell coordinates.
// ok is false when the layer has no heat (all zeros).
func (l *HeatLayer) Centroid() (row, col float64, ok bool) {
	var sumW, sumR, sumC float64
	for r := 0; r < l.rows; r++ {
		for c := 0; c < l.cols; c++ {
			v := float64(l.cells[r*l.cols+c])
			if v <= 0 {
				continue
			}
			sumW += v
			sumR += float64(r) * v
			sumC += float64(c) * v
		}
	}
	if sumW < 1e-9 {
		return 0, 0, false
	}
	return sumR / sumW, sumC / sumW, true
}

// Decay subtracts decayRate from every cell, clamping at 0.
func (l *HeatLayer) Decay() {
	if l.decayRate <= 0 {
		return
	}
	for i := range l.cells {
		v := l.cells[i] - l.decayRate
		if v < 0 {
			v = 0
		}
		l.cells[i] = v
	}
}

// Fill sets every cell to v.
func (l *HeatLayer) Fill(v float32) {
	v = clampHeat(v)
	for i := range l.cells {
		l.cells[i] = v
	}
}

func clampHeat(v float32) float32 {
	if v > heatMaxValue {
		return heatMaxValue
	}
	if v < 0 {
		return 0
	}
	return v
}

// --- TrailMap ---

// TrailMap holds the decaying footprint layers of a run.
type TrailMap struct {
	layers [trailKindCount]*HeatLayer
}

// NewTrailMap creates empty layers for a rows×cols grid.
func NewTrailMap(rows, cols int) *TrailMap {
	m := &TrailMap{}
	for k := TrailKind(0); k < trailKindCount; k++ {
		m.layers[k] = newHeatLayer(rows, cols, trailDecayRates[k])
	}
	return m
}

// Layer returns the HeatLayer for kind k.
func (m *TrailMap) Layer(k TrailKind) *HeatLayer {
	return m.layers[k]
}

// Decay applies per-tick decay to all layers.
func (m *TrailMap) Decay() {
	for _, l := range m.layers {
		l.Decay()
	}
}

// Reset zeroes every layer.
func (m *TrailMap) Reset() {
	for _, l := range m.layers {
		l.Fill(0)
	}
}

// Record decays the layers, deposits heat at every actor's new cell and
// marks every catch of the tick at full heat.
func (m *TrailMap) Record(res TickResult) {
	m.Decay()
	zombies := make([]Cell, len(res.ZombieMoves))
	for i, mv := range res.ZombieMoves {
		zombies[i] = mv.To
		m.layers[TrailZombie].Add(mv.To.Row, mv.To.Col, trailDeposit)
	}
	humans := make([]Cell, len(res.HumanMoves))
	for i, mv := range res.HumanMoves {
		humans[i] = mv.To
		m.layers[TrailHuman].Add(mv.To.Row, mv.To.Col, trailDeposit)
	}
	for _, idx := range CaughtHumans(zombies, humans) {
		m.layers[TrailCatch].Set(humans[idx].Row, humans[idx].Col, catchDeposit)
	}
}
