package game

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Inspector panel, rendered into an offscreen buffer at 1× then blitted at inspScale.
const (
	inspScale = 2   // scale factor for inspector text rendering
	inspBufW  = 200 // buffer width in pixels (~33 chars at debug font)
	inspBufH  = 240 // buffer height in pixels
	inspPad   = 4   // padding in buffer-space pixels
	inspLineH = 13  // line height in buffer-space pixels

	inspTrailRadius = 1 // trail heat is summed over the 3×3 block
)

// Inspector holds the selected cell and view toggle state.
type Inspector struct {
	selected *Cell
	rawView  bool // false = curated, true = neighbour values
}

// CellReport is everything the inspector shows about one cell.
type CellReport struct {
	Cell     Cell
	Obstacle bool
	Zombies  []int // indices of zombies on the cell
	Humans   []int // indices of humans on the cell

	HumanDist    Distance // what a zombie here follows
	ZombieDist   Distance // what a human here flees
	ObstacleDist Distance

	// Candidate values in the order the movement passes evaluate them.
	ZombieCandidates []CandidateValue
	HumanCandidates  []CandidateValue

	// Recent trail heat around the cell, indexed by TrailKind.
	TrailSum  [trailKindCount]float32
	TrailPeak [trailKindCount]float32
}

// CandidateValue is a neighbour cell and the field value seen there.
type CandidateValue struct {
	Cell    Cell
	Dist    Distance
	Blocked bool
}

// inspectCell computes a CellReport from the current positions. trails may
// be nil.
func inspectCell(a *Apocalypse, trails *TrailMap, c Cell) (CellReport, error) {
	if err := a.grid.check(c.Row, c.Col); err != nil {
		return CellReport{}, err
	}
	rep := CellReport{Cell: c, Obstacle: a.grid.blocked(c)}
	for i, z := range a.zombies {
		if z == c {
			rep.Zombies = append(rep.Zombies, i)
		}
	}
	for i, h := range a.humans {
		if h == c {
			rep.Humans = append(rep.Humans, i)
		}
	}

	hf, err := a.ComputeDistanceField(EntityHuman)
	if err != nil {
		return CellReport{}, err
	}
	zf, err := a.ComputeDistanceField(EntityZombie)
	if err != nil {
		return CellReport{}, err
	}
	of, err := a.ComputeDistanceField(EntityObstacle)
	if err != nil {
		return CellReport{}, err
	}
	rep.HumanDist, rep.ZombieDist, rep.ObstacleDist = hf.at(c), zf.at(c), of.at(c)

	var buf [8]Cell
	for _, n := range a.grid.appendNeighbors(buf[:0], c, dirs4[:]) {
		rep.ZombieCandidates = append(rep.ZombieCandidates, CandidateValue{n, hf.at(n), a.grid.blocked(n)})
	}
	for _, n := range a.grid.appendNeighbors(buf[:0], c, dirs8[:]) {
		rep.HumanCandidates = append(rep.HumanCandidates, CandidateValue{n, zf.at(n), a.grid.blocked(n)})
	}
	if trails != nil {
		for k := TrailKind(0); k < trailKindCount; k++ {
			l := trails.Layer(k)
			rep.TrailSum[k] = l.SumAround(c, inspTrailRadius)
			rep.TrailPeak[k] = l.MaxAround(c, inspTrailRadius)
		}
	}
	return rep, nil
}

// fmtDist renders a distance, with "-" for unreachable cells.
func fmtDist(d Distance) string {
	if !d.Reachable() {
		return "-"
	}
	return fmt.Sprint(int32(d))
}

func fmtLabels(e Entity, idx []int) string {
	if len(idx) == 0 {
		return "none"
	}
	parts := make([]string, len(idx))
	for i, v := range idx {
		parts[i] = actorLabel(e, v)
	}
	return strings.Join(parts, ",")
}

// curatedLines is the default inspector view.
func (rep CellReport) curatedLines() []string {
	state := "open"
	if rep.Obstacle {
		state = "OBSTACLE"
	}
	lines := []string{
		"-- CELL --",
		fmt.Sprintf("state: %s", state),
		fmt.Sprintf("zombies: %s", fmtLabels(EntityZombie, rep.Zombies)),
		fmt.Sprintf("humans:  %s", fmtLabels(EntityHuman, rep.Humans)),
		"-- FIELDS --",
		fmt.Sprintf("to human:    %s", fmtDist(rep.HumanDist)),
		fmt.Sprintf("to zombie:   %s", fmtDist(rep.ZombieDist)),
		fmt.Sprintf("to obstacle: %s", fmtDist(rep.ObstacleDist)),
		"-- TRAILS 3x3 --",
	}
	for k := TrailKind(0); k < trailKindCount; k++ {
		lines = append(lines, fmt.Sprintf("%-7s sum %.2f peak %.2f", TrailKindName(k), rep.TrailSum[k], rep.TrailPeak[k]))
	}
	return lines
}

// rawLines lists the candidate values the movement passes would compare.
func (rep CellReport) rawLines() []string {
	lines := []string{fmt.Sprintf("zombie sees %s here", fmtDist(rep.HumanDist))}
	for _, cv := range rep.ZombieCandidates {
		lines = append(lines, candidateLine(cv))
	}
	lines = append(lines, fmt.Sprintf("human sees %s here", fmtDist(rep.ZombieDist)))
	for _, cv := range rep.HumanCandidates {
		lines = append(lines, candidateLine(cv))
	}
	return lines
}

func candidateLine(cv CandidateValue) string {
	if cv.Blocked {
		return fmt.Sprintf("  %-7s #", cv.Cell)
	}
	return fmt.Sprintf("  %-7s %s", cv.Cell, fmtDist(cv.Dist))
}

// handleInspectorClick selects the clicked cell, or deselects when the click
// misses the grid. Returns true if a cell was hit.
func (g *Game) handleInspectorClick(mx, my int) bool {
	c, ok := g.cellAt(mx, my)
	if !ok {
		g.inspector.selected = nil
		return false
	}
	if g.inspector.selected != nil && *g.inspector.selected == c {
		g.inspector.selected = nil
		return true
	}
	g.inspector.selected = &c
	return true
}

// drawInspector renders the inspector panel into an offscreen buffer at 1×,
// then blits it onto the screen at inspScale for readability.
func (g *Game) drawInspector(screen *ebiten.Image) {
	sel := g.inspector.selected
	if sel == nil {
		return
	}
	rep, err := inspectCell(g.sim, g.trails, *sel)
	if err != nil {
		return
	}

	if g.inspBuf == nil {
		g.inspBuf = ebiten.NewImage(inspBufW, inspBufH)
	}
	g.inspBuf.Clear()

	buf := g.inspBuf
	bw := float32(inspBufW)
	bh := float32(inspBufH)

	panelBg := color.RGBA{R: 14, G: 16, B: 14, A: 230}
	panelBorder := color.RGBA{R: 55, G: 80, B: 55, A: 255}
	vector.FillRect(buf, 0, 0, bw, bh, panelBg, false)
	vector.StrokeRect(buf, 0, 0, bw, bh, 1.0, panelBorder, false)

	lx := inspPad
	ly := inspPad
	ebitenutil.DebugPrintAt(buf, fmt.Sprintf("[ CELL %s ]", rep.Cell), lx, ly)
	ly += inspLineH + 2

	viewName := "CURATED"
	lines := rep.curatedLines()
	if g.inspector.rawView {
		viewName = "NEIGHBOURS"
		lines = rep.rawLines()
	}
	ebitenutil.DebugPrintAt(buf, fmt.Sprintf("view: %s  [I]", viewName), lx, ly)
	ly += inspLineH + 4

	vector.StrokeLine(buf, float32(lx), float32(ly), bw-float32(inspPad), float32(ly), 1.0, panelBorder, false)
	ly += 4

	for _, l := range lines {
		if ly+inspLineH > inspBufH {
			break
		}
		ebitenutil.DebugPrintAt(buf, l, lx, ly)
		ly += inspLineH
	}

	// Outline the selected cell on the grid.
	cs := float32(g.cellPx)
	vector.StrokeRect(screen, float32(borderWidth)+float32(sel.Col)*cs, float32(borderWidth)+float32(sel.Row)*cs,
		cs, cs, 2.0, color.RGBA{R: 240, G: 240, B: 120, A: 255}, false)

	// Top-right corner of the playfield.
	px := borderWidth + g.gameWidth - inspBufW*inspScale - 8
	py := borderWidth + 8
	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(float64(inspScale), float64(inspScale))
	opts.GeoM.Translate(float64(px), float64(py))
	screen.DrawImage(buf, opts)
}
