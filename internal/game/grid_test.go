package game

import (
	"errors"
	"math"
	"testing"
)

func TestNewGrid_RejectsNonPositiveSize(t *testing.T) {
	for _, sz := range [][2]int{{0, 3}, {3, 0}, {-1, 4}} {
		if _, err := NewGrid(sz[0], sz[1]); !errors.Is(err, ErrInvalidSize) {
			t.Fatalf("NewGrid(%d,%d): expected ErrInvalidSize, got %v", sz[0], sz[1], err)
		}
	}
}

func TestNewGrid_RejectsSizeBeyondDistanceRange(t *testing.T) {
	for _, sz := range [][2]int{{1 << 16, 1 << 16}, {math.MaxInt, 2}, {2, math.MaxInt32}} {
		if _, err := NewGrid(sz[0], sz[1]); !errors.Is(err, ErrInvalidSize) {
			t.Fatalf("NewGrid(%d,%d): expected ErrInvalidSize, got %v", sz[0], sz[1], err)
		}
	}
	if err := checkSize(1, math.MaxInt32); err != nil {
		t.Fatalf("expected a single row of %d cells to fit, got %v", math.MaxInt32, err)
	}
}

func TestGrid_ObstacleRoundTrip(t *testing.T) {
	g, err := NewGrid(4, 5)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	if g.Height() != 4 || g.Width() != 5 {
		t.Fatalf("expected 4x5, got %dx%d", g.Height(), g.Width())
	}
	if err := g.SetObstacle(2, 3); err != nil {
		t.Fatalf("SetObstacle: %v", err)
	}
	full, err := g.IsObstacle(2, 3)
	if err != nil || !full {
		t.Fatalf("expected (2,3) to be an obstacle, got full=%v err=%v", full, err)
	}
	open, err := g.IsOpen(2, 3)
	if err != nil || open {
		t.Fatalf("expected (2,3) not open, got open=%v err=%v", open, err)
	}
	open, err = g.IsOpen(0, 0)
	if err != nil || !open {
		t.Fatalf("expected (0,0) open, got open=%v err=%v", open, err)
	}
	if got := g.Obstacles(); len(got) != 1 || got[0] != (Cell{2, 3}) {
		t.Fatalf("expected obstacles [(2,3)], got %v", got)
	}
}

func TestGrid_OutOfBounds(t *testing.T) {
	g, _ := NewGrid(3, 3)
	cases := [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 3}}
	for _, c := range cases {
		if err := g.SetObstacle(c[0], c[1]); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("SetObstacle%v: expected ErrOutOfBounds, got %v", c, err)
		}
		if _, err := g.IsObstacle(c[0], c[1]); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("IsObstacle%v: expected ErrOutOfBounds, got %v", c, err)
		}
		if _, err := g.IsOpen(c[0], c[1]); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("IsOpen%v: expected ErrOutOfBounds, got %v", c, err)
		}
		if _, err := g.FourNeighbors(c[0], c[1]); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("FourNeighbors%v: expected ErrOutOfBounds, got %v", c, err)
		}
		if _, err := g.EightNeighbors(c[0], c[1]); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("EightNeighbors%v: expected ErrOutOfBounds, got %v", c, err)
		}
	}
}

func TestGrid_FourNeighborsOrder(t *testing.T) {
	g, _ := NewGrid(3, 3)
	tests := []struct {
		name string
		at   Cell
		want []Cell
	}{
		{"centre", Cell{1, 1}, []Cell{{0, 1}, {2, 1}, {1, 0}, {1, 2}}},
		{"top-left corner", Cell{0, 0}, []Cell{{1, 0}, {0, 1}}},
		{"bottom edge", Cell{2, 1}, []Cell{{1, 1}, {2, 0}, {2, 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := g.FourNeighbors(tt.at.Row, tt.at.Col)
			if err != nil {
				t.Fatalf("FourNeighbors: %v", err)
			}
			assertCells(t, got, tt.want)
		})
	}
}

func TestGrid_EightNeighborsOrder(t *testing.T) {
	g, _ := NewGrid(3, 3)
	got, err := g.EightNeighbors(1, 1)
	if err != nil {
		t.Fatalf("EightNeighbors: %v", err)
	}
	assertCells(t, got, []Cell{
		{0, 1}, {2, 1}, {1, 0}, {1, 2},
		{0, 0}, {0, 2}, {2, 0}, {2, 2},
	})

	got, _ = g.EightNeighbors(0, 2)
	assertCells(t, got, []Cell{{1, 2}, {0, 1}, {1, 1}})
}

func TestGrid_SingleCellHasNoNeighbors(t *testing.T) {
	g, _ := NewGrid(1, 1)
	four, _ := g.FourNeighbors(0, 0)
	eight, _ := g.EightNeighbors(0, 0)
	if len(four) != 0 || len(eight) != 0 {
		t.Fatalf("expected no neighbours on 1x1 grid, got %v / %v", four, eight)
	}
}

func assertCells(t *testing.T, got, want []Cell) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: expected %v, got %v (full: %v)", i, want[i], got[i], got)
		}
	}
}
