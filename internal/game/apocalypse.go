package game

import "fmt"

// Entity selects which cells seed a distance field.
type Entity uint8

const (
	EntityObstacle Entity = iota
	EntityHuman
	EntityZombie
)

func (e Entity) String() string {
	switch e {
	case EntityObstacle:
		return "obstacle"
	case EntityHuman:
		return "human"
	case EntityZombie:
		return "zombie"
	default:
		return fmt.Sprintf("entity(%d)", uint8(e))
	}
}

// actorLabel returns the short label used in logs, e.g. "Z0" or "H3".
func actorLabel(e Entity, idx int) string {
	if e == EntityZombie {
		return fmt.Sprintf("Z%d", idx)
	}
	return fmt.Sprintf("H%d", idx)
}

// Move records one actor's relocation during a tick. From == To when the
// actor held its cell.
type Move struct {
	Index int
	From  Cell
	To    Cell
}

// Moved reports whether the actor changed cell.
func (m Move) Moved() bool { return m.From != m.To }

// TickResult describes what happened in one Step.
type TickResult struct {
	Tick        int
	ZombieMoves []Move
	HumanMoves  []Move
	HumanField  *DistanceField // pre-tick field the zombies followed
	ZombieField *DistanceField // pre-tick field the humans fled
}

// Apocalypse owns a grid with static obstacles and the ordered zombie and
// human position lists.
type Apocalypse struct {
	grid    *Grid
	zombies []Cell
	humans  []Cell
	tick    int
}

// NewApocalypse builds a simulation of the given size. Actors placed on
// obstacle cells are accepted as given.
func NewApocalypse(height, width int, obstacles, zombies, humans []Cell) (*Apocalypse, error) {
	grid, err := NewGrid(height, width)
	if err != nil {
		return nil, err
	}
	for _, o := range obstacles {
		if err := grid.SetObstacle(o.Row, o.Col); err != nil {
			return nil, fmt.Errorf("obstacle: %w", err)
		}
	}
	a := &Apocalypse{grid: grid}
	for _, z := range zombies {
		if err := a.AddZombie(z.Row, z.Col); err != nil {
			return nil, err
		}
	}
	for _, h := range humans {
		if err := a.AddHuman(h.Row, h.Col); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Grid exposes the obstacle grid for read access.
func (a *Apocalypse) Grid() *Grid { return a.grid }

// Tick returns the number of completed steps since construction or Clear.
func (a *Apocalypse) Tick() int { return a.tick }

// Clear empties both actor lists. Obstacles stay.
func (a *Apocalypse) Clear() {
	a.zombies = nil
	a.humans = nil
	a.tick = 0
}

// AddZombie appends a zombie at (row, col).
func (a *Apocalypse) AddZombie(row, col int) error {
	if err := a.grid.check(row, col); err != nil {
		return fmt.Errorf("zombie: %w", err)
	}
	a.zombies = append(a.zombies, Cell{row, col})
	return nil
}

// AddHuman appends a human at (row, col).
func (a *Apocalypse) AddHuman(row, col int) error {
	if err := a.grid.check(row, col); err != nil {
		return fmt.Errorf("human: %w", err)
	}
	a.humans = append(a.humans, Cell{row, col})
	return nil
}

// NumZombies returns the number of zombies.
func (a *Apocalypse) NumZombies() int { return len(a.zombies) }

// NumHumans returns the number of humans.
func (a *Apocalypse) NumHumans() int { return len(a.humans) }

// Zombies returns a copy of the zombie positions in insertion order.
func (a *Apocalypse) Zombies() []Cell { return append([]Cell(nil), a.zombies...) }

// Humans returns a copy of the human positions in insertion order.
func (a *Apocalypse) Humans() []Cell { return append([]Cell(nil), a.humans...) }

// ComputeDistanceField builds the field seeded by every cell of the given
// entity type. For EntityObstacle the field is the distance from the
// nearest obstacle through open cells.
func (a *Apocalypse) ComputeDistanceField(e Entity) (*DistanceField, error) {
	var sources []Cell
	switch e {
	case EntityZombie:
		sources = a.zombies
	case EntityHuman:
		sources = a.humans
	case EntityObstacle:
		sources = a.grid.Obstacles()
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownEntity, uint8(e))
	}
	return ComputeDistanceField(a.grid, sources)
}

// MoveZombies steps every zombie toward lower values of humanField.
func (a *Apocalypse) MoveZombies(humanField *DistanceField) error {
	moves, err := a.planMoves(a.zombies, humanField, dirs4[:], closer)
	if err != nil {
		return err
	}
	a.zombies = applyMoves(moves)
	return nil
}

// MoveHumans steps every human toward higher values of zombieField.
func (a *Apocalypse) MoveHumans(zombieField *DistanceField) error {
	moves, err := a.planMoves(a.humans, zombieField, dirs8[:], farther)
	if err != nil {
		return err
	}
	a.humans = applyMoves(moves)
	return nil
}

// Step advances one tick. Both fields are computed from the pre-tick
// positions before either group moves.
func (a *Apocalypse) Step() (TickResult, error) {
	humanField, err := a.ComputeDistanceField(EntityHuman)
	if err != nil {
		return TickResult{}, err
	}
	zombieField, err := a.ComputeDistanceField(EntityZombie)
	if err != nil {
		return TickResult{}, err
	}
	zMoves, err := a.planMoves(a.zombies, humanField, dirs4[:], closer)
	if err != nil {
		return TickResult{}, err
	}
	hMoves, err := a.planMoves(a.humans, zombieField, dirs8[:], farther)
	if err != nil {
		return TickResult{}, err
	}
	a.zombies = applyMoves(zMoves)
	a.humans = applyMoves(hMoves)
	a.tick++
	return TickResult{
		Tick:        a.tick,
		ZombieMoves: zMoves,
		HumanMoves:  hMoves,
		HumanField:  humanField,
		ZombieField: zombieField,
	}, nil
}

func closer(candidate, best Distance) bool  { return candidate < best }
func farther(candidate, best Distance) bool { return candidate > best }

// planMoves evaluates the greedy policy for every actor against the same
// field. Candidates are the neighbours in dirs order followed by the actor's
// own cell; the first open candidate with a strictly better value wins, so a
// neighbour tied with the current cell is preferred over staying. An actor
// with no open candidate stays.
func (a *Apocalypse) planMoves(actors []Cell, field *DistanceField, dirs [][2]int, better func(candidate, best Distance) bool) ([]Move, error) {
	if err := field.matches(a.grid); err != nil {
		return nil, err
	}
	moves := make([]Move, len(actors))
	var buf [9]Cell
	for i, cur := range actors {
		best, found := cur, false
		var bestDist Distance
		for _, n := range append(a.grid.appendNeighbors(buf[:0], cur, dirs), cur) {
			if a.grid.blocked(n) {
				continue
			}
			if d := field.at(n); !found || better(d, bestDist) {
				best, bestDist, found = n, d, true
			}
		}
		moves[i] = Move{Index: i, From: cur, To: best}
	}
	return moves, nil
}

func applyMoves(moves []Move) []Cell {
	if len(moves) == 0 {
		return nil
	}
	out := make([]Cell, len(moves))
	for i, m := range moves {
		out[i] = m.To
	}
	return out
}
