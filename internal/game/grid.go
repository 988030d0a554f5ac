package game

import (
	"fmt"
	"math"
)

// CellState is the static occupancy of a grid cell.
type CellState uint8

const (
	CellEmpty CellState = iota // Open ground
	CellFull                   // Obstacle
)

// Cell is a (row, col) grid coordinate. Cells compare by value.
type Cell struct {
	Row int
	Col int
}

// String formats the cell as "(row,col)".
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// dirs4 is the four-neighbour enumeration order: up, down, left, right.
// Movement tie-breaks depend on it.
var dirs4 = [4][2]int{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
}

// dirs8 extends dirs4 with the diagonals: up-left, up-right, down-left, down-right.
var dirs8 = [8][2]int{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
	{-1, -1}, {-1, 1}, {1, -1}, {1, 1},
}

// Grid is a fixed-size occupancy surface. Obstacles are marked during setup
// and treated as immutable once a simulation starts ticking.
type Grid struct {
	rows  int
	cols  int
	cells []CellState
}

// maxGridCells keeps every finite distance below Unreachable.
const maxGridCells = math.MaxInt32

func checkSize(height, width int) error {
	if height <= 0 || width <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, height, width)
	}
	if height > maxGridCells/width {
		return fmt.Errorf("%w: %dx%d exceeds %d cells", ErrInvalidSize, height, width, maxGridCells)
	}
	return nil
}

// NewGrid builds an empty grid of the given height and width.
func NewGrid(height, width int) (*Grid, error) {
	if err := checkSize(height, width); err != nil {
		return nil, err
	}
	return &Grid{
		rows:  height,
		cols:  width,
		cells: make([]CellState, height*width),
	}, nil
}

// Height returns the number of rows.
func (g *Grid) Height() int { return g.rows }

// Width returns the number of columns.
func (g *Grid) Width() int { return g.cols }

// InBounds reports whether (row, col) lies inside the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && col >= 0 && row < g.rows && col < g.cols
}

func (g *Grid) check(row, col int) error {
	if !g.InBounds(row, col) {
		return fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrOutOfBounds, row, col, g.rows, g.cols)
	}
	return nil
}

// SetObstacle marks a cell as FULL.
func (g *Grid) SetObstacle(row, col int) error {
	if err := g.check(row, col); err != nil {
		return err
	}
	g.cells[row*g.cols+col] = CellFull
	return nil
}

// IsObstacle reports whether the cell is FULL.
func (g *Grid) IsObstacle(row, col int) (bool, error) {
	if err := g.check(row, col); err != nil {
		return false, err
	}
	return g.cells[row*g.cols+col] == CellFull, nil
}

// IsOpen reports whether the cell is EMPTY. Actors never make a cell non-open.
func (g *Grid) IsOpen(row, col int) (bool, error) {
	full, err := g.IsObstacle(row, col)
	return !full, err
}

// blocked is the unchecked obstacle test used by the BFS and movement loops.
func (g *Grid) blocked(c Cell) bool {
	return g.cells[c.Row*g.cols+c.Col] == CellFull
}

// FourNeighbors returns the in-bounds neighbours of (row, col) in the order
// up, down, left, right.
func (g *Grid) FourNeighbors(row, col int) ([]Cell, error) {
	if err := g.check(row, col); err != nil {
		return nil, err
	}
	return g.appendNeighbors(make([]Cell, 0, 4), Cell{row, col}, dirs4[:]), nil
}

// EightNeighbors returns the in-bounds neighbours of (row, col): the four
// orthogonal ones in FourNeighbors order, then up-left, up-right, down-left,
// down-right.
func (g *Grid) EightNeighbors(row, col int) ([]Cell, error) {
	if err := g.check(row, col); err != nil {
		return nil, err
	}
	return g.appendNeighbors(make([]Cell, 0, 8), Cell{row, col}, dirs8[:]), nil
}

func (g *Grid) appendNeighbors(dst []Cell, c Cell, dirs [][2]int) []Cell {
	for _, d := range dirs {
		r, cc := c.Row+d[0], c.Col+d[1]
		if g.InBounds(r, cc) {
			dst = append(dst, Cell{r, cc})
		}
	}
	return dst
}

// Obstacles returns every FULL cell in row-major order.
func (g *Grid) Obstacles() []Cell {
	var out []Cell
	for i, s := range g.cells {
		if s == CellFull {
			out = append(out, Cell{Row: i / g.cols, Col: i % g.cols})
		}
	}
	return out
}
