package game

import (
	"fmt"
	"math"
)

// Distance is a step count in a DistanceField.
type Distance int32

// Unreachable marks cells that no source can reach. It compares greater than
// every finite distance, so min/max movement comparisons need no special case.
const Unreachable Distance = math.MaxInt32

// Reachable reports whether d is a finite distance.
func (d Distance) Reachable() bool { return d != Unreachable }

// DistanceField holds the shortest 4-connected step count from every cell to
// the nearest source cell. Obstacles are never expanded through.
type DistanceField struct {
	rows int
	cols int
	dist []Distance
}

// ComputeDistanceField runs a multi-source BFS over grid. Every source is
// seeded at distance 0 before any expansion, so the result does not depend
// on the order of sources. A source sitting on an obstacle still gets 0.
func ComputeDistanceField(grid *Grid, sources []Cell) (*DistanceField, error) {
	df := &DistanceField{
		rows: grid.rows,
		cols: grid.cols,
		dist: make([]Distance, grid.rows*grid.cols),
	}
	for i := range df.dist {
		df.dist[i] = Unreachable
	}

	queue := make([]Cell, 0, len(sources))
	for _, s := range sources {
		if err := grid.check(s.Row, s.Col); err != nil {
			return nil, fmt.Errorf("distance field source: %w", err)
		}
		k := df.key(s)
		if df.dist[k] == 0 {
			continue
		}
		df.dist[k] = 0
		queue = append(queue, s)
	}

	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		next := df.dist[df.key(cur)] + 1
		for _, d := range dirs4 {
			n := Cell{cur.Row + d[0], cur.Col + d[1]}
			if !grid.InBounds(n.Row, n.Col) || grid.blocked(n) {
				continue
			}
			k := df.key(n)
			if df.dist[k] != Unreachable {
				continue
			}
			df.dist[k] = next
			queue = append(queue, n)
		}
	}
	return df, nil
}

// NewDistanceField builds a field from an explicit row-major matrix. Values at
// or above height*width are read as Unreachable, matching Matrix output.
func NewDistanceField(matrix [][]int) (*DistanceField, error) {
	if len(matrix) == 0 || len(matrix[0]) == 0 {
		return nil, fmt.Errorf("%w: empty matrix", ErrInvalidSize)
	}
	rows, cols := len(matrix), len(matrix[0])
	if err := checkSize(rows, cols); err != nil {
		return nil, err
	}
	sentinel := rows * cols
	df := &DistanceField{rows: rows, cols: cols, dist: make([]Distance, rows*cols)}
	for r, line := range matrix {
		if len(line) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidSize, r, len(line), cols)
		}
		for c, v := range line {
			switch {
			case v < 0:
				return nil, fmt.Errorf("negative distance %d at (%d,%d)", v, r, c)
			case v >= sentinel:
				df.dist[r*cols+c] = Unreachable
			default:
				df.dist[r*cols+c] = Distance(v)
			}
		}
	}
	return df, nil
}

func (df *DistanceField) key(c Cell) int { return c.Row*df.cols + c.Col }

// Height returns the number of rows.
func (df *DistanceField) Height() int { return df.rows }

// Width returns the number of columns.
func (df *DistanceField) Width() int { return df.cols }

// Sentinel is the legacy "effectively infinite" value, height*width.
func (df *DistanceField) Sentinel() int { return df.rows * df.cols }

// At returns the distance stored for (row, col).
func (df *DistanceField) At(row, col int) (Distance, error) {
	if row < 0 || col < 0 || row >= df.rows || col >= df.cols {
		return Unreachable, fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrOutOfBounds, row, col, df.rows, df.cols)
	}
	return df.dist[row*df.cols+col], nil
}

// at is the unchecked lookup used by movement.
func (df *DistanceField) at(c Cell) Distance { return df.dist[df.key(c)] }

// Matrix returns a row-major copy of the field with unreachable cells
// rendered as Sentinel().
func (df *DistanceField) Matrix() [][]int {
	sentinel := df.Sentinel()
	out := make([][]int, df.rows)
	for r := range out {
		out[r] = make([]int, df.cols)
		for c := range out[r] {
			d := df.dist[r*df.cols+c]
			if d == Unreachable {
				out[r][c] = sentinel
			} else {
				out[r][c] = int(d)
			}
		}
	}
	return out
}

// MaxReachable returns the largest finite distance in the field, or -1 when
// nothing is reachable. The viewer scales heat layers by it.
func (df *DistanceField) MaxReachable() int {
	best := -1
	for _, d := range df.dist {
		if d != Unreachable && int(d) > best {
			best = int(d)
		}
	}
	return best
}

func (df *DistanceField) matches(g *Grid) error {
	if df.rows != g.rows || df.cols != g.cols {
		return fmt.Errorf("%w: field %dx%d, grid %dx%d", ErrFieldMismatch, df.rows, df.cols, g.rows, g.cols)
	}
	return nil
}
