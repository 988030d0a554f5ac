package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Zombie-Sense/internal/config"
)

// borderWidth is the pixel gap between the window edge and the grid.
const borderWidth = 24

// Playfield pixel budget used to pick the cell size.
const (
	maxFieldW  = 960
	maxFieldH  = 720
	minCellPx  = 4
	maxCellPx  = 40
	tickPerSec = 60 // ebiten update rate
)

var (
	zombieColor   = color.RGBA{R: 210, G: 60, B: 60, A: 255}
	humanColor    = color.RGBA{R: 80, G: 200, B: 110, A: 255}
	obstacleColor = color.RGBA{R: 58, G: 58, B: 64, A: 255}
	groundColor   = color.RGBA{R: 34, G: 40, B: 34, A: 255}
	gridLineColor = color.RGBA{R: 50, G: 58, B: 50, A: 120}
)

// overlayColors maps each field source to its heat layer colour.
var overlayColors = [3]color.RGBA{
	EntityObstacle: {R: 220, G: 200, B: 60, A: 150},
	EntityHuman:    {R: 60, G: 200, B: 120, A: 150},
	EntityZombie:   {R: 230, G: 60, B: 60, A: 150},
}

// stepRates are the selectable run speeds in ticks per second.
var stepRates = []float64{1, 2, 4, 8, 15, 30}

// placeMode is what a left click drops onto the grid.
type placeMode uint8

const (
	placeZombie placeMode = iota
	placeHuman
	placeObstacle
)

func (m placeMode) String() string {
	switch m {
	case placeZombie:
		return "zombie"
	case placeHuman:
		return "human"
	default:
		return "obstacle"
	}
}

func (m placeMode) eventKind() EventKind {
	switch m {
	case placeZombie:
		return EventZombie
	case placeHuman:
		return EventHuman
	default:
		return EventGlobal
	}
}

// Game is the ebiten front end: it owns an Apocalypse and renders the grid,
// the actors and an optional distance-field overlay.
type Game struct {
	scenario *config.Scenario
	seed     int64

	sim      *Apocalypse
	simLog   *SimLog
	reporter *SimReporter
	events   *EventLog

	cellPx     int
	gameWidth  int // grid width in pixels
	gameHeight int // grid height in pixels
	width      int
	height     int
	face       text.Face

	overlay   Entity
	showField bool
	field     *DistanceField // cached overlay field, nil when stale
	mode      placeMode
	showHUD   bool

	inspector Inspector
	inspBuf   *ebiten.Image

	trails     *TrailMap
	showTrails bool

	repeats *RepeatTracker
	outcome PursuitOutcomeReason

	paused    bool
	rateIdx   int
	tickAccum float64

	status string
}

// New creates the viewer for a scenario. seed feeds random placement.
func New(sc *config.Scenario, seed int64) (*Game, error) {
	g := &Game{
		scenario: sc,
		seed:     seed,
		events:   NewEventLog(),
		face:     text.NewGoXFace(basicfont.Face7x13),
		overlay:  EntityHuman,
		showHUD:  true,
		paused:   true,
		rateIdx:  2,
	}
	if err := g.reset(); err != nil {
		return nil, err
	}
	g.cellPx = cellSizeFor(sc.Height, sc.Width)
	g.gameWidth = sc.Width * g.cellPx
	g.gameHeight = sc.Height * g.cellPx
	g.width = borderWidth + g.gameWidth + borderWidth + logPanelWidth
	g.height = borderWidth + g.gameHeight + borderWidth
	if g.height < 480 {
		g.height = 480
	}
	return g, nil
}

// WindowSize returns the preferred window size in pixels.
func (g *Game) WindowSize() (int, int) {
	return g.width, g.height
}

// cellSizeFor picks the largest cell size that fits the playfield budget.
func cellSizeFor(height, width int) int {
	px := min(maxFieldW/width, maxFieldH/height)
	return max(minCellPx, min(maxCellPx, px))
}

// reset rebuilds the simulation from the scenario.
func (g *Game) reset() error {
	sim, err := NewApocalypseFromScenario(g.scenario, g.seed)
	if err != nil {
		return err
	}
	g.sim = sim
	g.simLog = NewSimLog(false)
	g.reporter = NewSimReporter(reportWindowTicks)
	g.trails = NewTrailMap(g.scenario.Height, g.scenario.Width)
	g.events.Clear()
	g.events.Add(0, "--", EventGlobal, fmt.Sprintf("scenario %s loaded", g.scenario.Name))
	g.field = nil
	g.repeats = NewRepeatTracker()
	g.restartOutcome()
	return nil
}

func (g *Game) Update() error {
	if err := g.handleInput(); err != nil {
		return err
	}
	if g.paused {
		return nil
	}
	g.tickAccum += stepRates[g.rateIdx] / tickPerSec
	for g.tickAccum >= 1.0 {
		g.tickAccum -= 1.0
		if err := g.simTick(); err != nil {
			return err
		}
	}
	return nil
}

// simTick runs one simulation tick and feeds the logs.
func (g *Game) simTick() error {
	res, err := g.sim.Step()
	if err != nil {
		return err
	}
	g.simLog.Record(res)
	g.reporter.Collect(res, g.sim)
	g.events.AddTick(res)
	g.trails.Record(res)
	g.field = nil

	prev := g.outcome.Outcome
	g.outcome = DeterminePursuitOutcome(g.sim, g.repeats.Observe(g.sim))
	if g.outcome.Outcome != prev && g.outcome.Outcome != OutcomeInconclusive {
		g.events.Add(res.Tick, "--", EventOutcome, "outcome: "+g.outcome.Description)
		g.paused = true
	}
	return nil
}

// restartOutcome drops the repeat history after an edit outside of a tick
// and classifies the edited positions.
func (g *Game) restartOutcome() {
	g.repeats.Reset()
	g.outcome = DeterminePursuitOutcome(g.sim, g.repeats.Observe(g.sim))
}

// handleInput processes edge-triggered keys and clicks.
func (g *Game) handleInput() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.paused = !g.paused
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.paused = true
		if err := g.simTick(); err != nil {
			return err
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyComma):
		if g.rateIdx > 0 {
			g.rateIdx--
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyPeriod):
		if g.rateIdx < len(stepRates)-1 {
			g.rateIdx++
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		g.showHUD = !g.showHUD
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.sim.Clear()
		g.simLog.Reset()
		g.reporter.Reset()
		g.trails.Reset()
		g.events.Add(0, "--", EventGlobal, "actors cleared")
		g.field = nil
		g.restartOutcome()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		if err := g.reset(); err != nil {
			return err
		}
	case inpututil.IsKeyJustPressed(ebiten.Key4):
		g.showTrails = !g.showTrails
	case inpututil.IsKeyJustPressed(ebiten.KeyI):
		g.inspector.rawView = !g.inspector.rawView
	case inpututil.IsKeyJustPressed(ebiten.KeyK):
		if err := CopyToClipboard(FormatReport(g.sim, g.simLog, g.reporter, g.outcome)); err != nil {
			g.status = "copy failed: " + err.Error()
		} else {
			g.status = "report copied"
		}
	}

	for i, k := range []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3} {
		if inpututil.IsKeyJustPressed(k) {
			g.toggleOverlay([]Entity{EntityHuman, EntityZombie, EntityObstacle}[i])
		}
	}
	for k, m := range map[ebiten.Key]placeMode{ebiten.KeyZ: placeZombie, ebiten.KeyU: placeHuman, ebiten.KeyO: placeObstacle} {
		if inpututil.IsKeyJustPressed(k) {
			g.mode = m
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		if c, ok := g.cellAt(mx, my); ok {
			g.place(c)
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		mx, my := ebiten.CursorPosition()
		g.handleInspectorClick(mx, my)
	}
	return nil
}

// toggleOverlay shows the field for e, or hides it when e is already shown.
func (g *Game) toggleOverlay(e Entity) {
	if g.showField && g.overlay == e {
		g.showField = false
		return
	}
	g.overlay = e
	g.showField = true
	g.field = nil
}

// cellAt maps a screen position to a grid cell.
func (g *Game) cellAt(mx, my int) (Cell, bool) {
	x, y := mx-borderWidth, my-borderWidth
	if x < 0 || y < 0 {
		return Cell{}, false
	}
	c := Cell{Row: y / g.cellPx, Col: x / g.cellPx}
	return c, g.sim.grid.InBounds(c.Row, c.Col)
}

// place drops the current placement mode's item on c. Obstacles can only be
// added before the first tick.
func (g *Game) place(c Cell) {
	var err error
	switch g.mode {
	case placeZombie:
		err = g.sim.AddZombie(c.Row, c.Col)
	case placeHuman:
		err = g.sim.AddHuman(c.Row, c.Col)
	case placeObstacle:
		if g.sim.Tick() > 0 {
			g.status = "obstacles are fixed once the run starts"
			return
		}
		err = g.sim.grid.SetObstacle(c.Row, c.Col)
	}
	if err != nil {
		g.status = err.Error()
		return
	}
	g.events.Add(g.sim.Tick(), "--", g.mode.eventKind(), fmt.Sprintf("placed %s at %s", g.mode, c))
	g.field = nil
	g.restartOutcome()
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 12, G: 14, B: 12, A: 255})

	g.drawGrid(screen)
	if g.showField {
		if g.field == nil {
			if f, err := g.sim.ComputeDistanceField(g.overlay); err == nil {
				g.field = f
			}
		}
		if g.field != nil {
			g.drawHeatLayer(screen, g.field, overlayColors[g.overlay])
		}
	}
	if g.showTrails {
		g.drawTrails(screen)
	}
	drawGridOffset(screen, borderWidth, borderWidth, g.gameWidth, g.gameHeight, g.cellPx, gridLineColor)
	g.drawActors(screen)
	g.drawInspector(screen)

	ox, oy := float32(borderWidth), float32(borderWidth)
	vector.StrokeRect(screen, ox-1, oy-1, float32(g.gameWidth)+2, float32(g.gameHeight)+2, 2.0, color.RGBA{R: 90, G: 65, B: 65, A: 255}, false)

	g.events.Draw(screen, g.face, borderWidth+g.gameWidth+borderWidth, g.height)
	if g.showHUD {
		g.drawHUD(screen)
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("T=%d", g.sim.Tick()), borderWidth, 4)
}

func (g *Game) drawGrid(screen *ebiten.Image) {
	cs := float32(g.cellPx)
	ox, oy := float32(borderWidth), float32(borderWidth)
	vector.FillRect(screen, ox, oy, float32(g.gameWidth), float32(g.gameHeight), groundColor, false)
	for _, o := range g.sim.grid.Obstacles() {
		vector.FillRect(screen, ox+float32(o.Col)*cs, oy+float32(o.Row)*cs, cs, cs, obstacleColor, false)
	}
}

// drawHeatLayer renders a distance field as an alpha wash, strongest at the
// sources and fading out to the farthest reachable cell.
func (g *Game) drawHeatLayer(screen *ebiten.Image, df *DistanceField, baseCol color.RGBA) {
	cs := float32(g.cellPx)
	ox, oy := float32(borderWidth), float32(borderWidth)
	maxD := df.MaxReachable()
	for row := 0; row < df.rows; row++ {
		for col := 0; col < df.cols; col++ {
			c, ok := heatColor(df.dist[row*df.cols+col], maxD, baseCol)
			if !ok {
				continue
			}
			vector.FillRect(screen, ox+float32(col)*cs, oy+float32(row)*cs, cs, cs, c, false)
		}
	}
}

// heatColor scales baseCol's alpha by closeness to the sources. Unreachable
// and farthest cells are not drawn.
func heatColor(d Distance, maxD int, baseCol color.RGBA) (color.RGBA, bool) {
	if !d.Reachable() || maxD < 0 {
		return color.RGBA{}, false
	}
	v := 1.0
	if maxD > 0 {
		v = 1.0 - float64(d)/float64(maxD+1)
	}
	alpha := uint8(float64(baseCol.A) * v)
	if alpha < 2 {
		return color.RGBA{}, false
	}
	return color.RGBA{R: baseCol.R, G: baseCol.G, B: baseCol.B, A: alpha}, true
}

// trailColors maps each trail layer to its overlay colour.
var trailColors = [trailKindCount]color.RGBA{
	TrailZombie: {R: 230, G: 80, B: 80},
	TrailHuman:  {R: 90, G: 210, B: 130},
	TrailCatch:  {R: 255, G: 230, B: 80},
}

// drawTrails washes each cell with its trail heat, one layer at a time.
func (g *Game) drawTrails(screen *ebiten.Image) {
	cs := float32(g.cellPx)
	ox, oy := float32(borderWidth), float32(borderWidth)
	for k := TrailKind(0); k < trailKindCount; k++ {
		l := g.trails.Layer(k)
		for row := 0; row < l.rows; row++ {
			for col := 0; col < l.cols; col++ {
				v := l.cells[row*l.cols+col]
				if v <= 0 {
					continue
				}
				c := trailColors[k]
				c.A = uint8(v * maxTrailAlpha)
				vector.FillRect(screen, ox+float32(col)*cs, oy+float32(row)*cs, cs, cs, c, false)
			}
		}
	}
}

func (g *Game) drawActors(screen *ebiten.Image) {
	cs := float32(g.cellPx)
	ox, oy := float32(borderWidth), float32(borderWidth)
	r := cs * 0.35
	centre := func(c Cell) (float32, float32) {
		return ox + (float32(c.Col)+0.5)*cs, oy + (float32(c.Row)+0.5)*cs
	}
	for _, h := range g.sim.humans {
		x, y := centre(h)
		vector.FillCircle(screen, x, y, r, humanColor, true)
	}
	for _, z := range g.sim.zombies {
		x, y := centre(z)
		vector.FillCircle(screen, x, y, r*0.8, zombieColor, true)
	}
	for _, idx := range CaughtHumans(g.sim.zombies, g.sim.humans) {
		x, y := centre(g.sim.humans[idx])
		vector.StrokeCircle(screen, x, y, r+2, 1.5, color.RGBA{R: 255, G: 230, B: 80, A: 255}, true)
	}
}

// drawHUD renders keyboard shortcut hints in the bottom-left corner.
func (g *Game) drawHUD(screen *ebiten.Image) {
	speed := fmt.Sprintf("%gx/s", stepRates[g.rateIdx])
	if g.paused {
		speed = "PAUSED"
	}
	overlay := "off"
	if g.showField {
		overlay = g.overlay.String()
	}
	lines := []string{
		fmt.Sprintf("SIM: %s  P=run/pause  Space=step  ,/.=speed", speed),
		fmt.Sprintf("Field: %s  1=human 2=zombie 3=obstacle 4=trails", overlay),
		fmt.Sprintf("Place: %s  Z/U/O  click=place", g.mode),
		fmt.Sprintf("zombies=%d humans=%d caught=%d  %s", g.sim.NumZombies(), g.sim.NumHumans(),
			g.outcome.Caught, g.outcome.Description),
		"RMB=inspect  I=inspector view",
		"C=clear  R=reset  K=copy report  H=hide",
	}
	if g.status != "" {
		lines = append(lines, g.status)
	}

	const lineH = 15
	const charW = 7
	const padX, padY = 6, 5
	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, len(l))
	}
	boxW := float32(maxLen*charW + padX*2)
	boxH := float32(len(lines)*lineH + padY*2)
	bx := float32(borderWidth + 6)
	by := float32(g.height) - boxH - float32(borderWidth) - 6

	vector.FillRect(screen, bx, by, boxW, boxH, color.RGBA{R: 10, G: 6, B: 6, A: 210}, false)
	vector.StrokeRect(screen, bx, by, boxW, boxH, 1.0, color.RGBA{R: 100, G: 60, B: 60, A: 180}, false)
	for i, line := range lines {
		drawText(screen, g.face, line, int(bx)+padX, int(by)+padY+i*lineH, color.White)
	}
}

func drawGridOffset(screen *ebiten.Image, offX, offY, w, h, spacing int, c color.Color) {
	if spacing < 8 {
		return
	}
	ox, oy := float32(offX), float32(offY)
	for x := 0; x <= w; x += spacing {
		xf := ox + float32(x)
		vector.StrokeLine(screen, xf, oy, xf, oy+float32(h), 1.0, c, false)
	}
	for y := 0; y <= h; y += spacing {
		yf := oy + float32(y)
		vector.StrokeLine(screen, ox, yf, ox+float32(w), yf, 1.0, c, false)
	}
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
