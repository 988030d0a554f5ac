package game

import (
	"errors"
	"math/rand"
	"testing"
)

func mustGrid(t *testing.T, h, w int, obstacles ...Cell) *Grid {
	t.Helper()
	g, err := NewGrid(h, w)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	for _, o := range obstacles {
		if err := g.SetObstacle(o.Row, o.Col); err != nil {
			t.Fatalf("SetObstacle: %v", err)
		}
	}
	return g
}

func mustField(t *testing.T, g *Grid, sources ...Cell) *DistanceField {
	t.Helper()
	df, err := ComputeDistanceField(g, sources)
	if err != nil {
		t.Fatalf("ComputeDistanceField: %v", err)
	}
	return df
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func TestDistanceField_OpenGridIsManhattan(t *testing.T) {
	g := mustGrid(t, 6, 9)
	src := Cell{2, 5}
	df := mustField(t, g, src)
	for r := 0; r < 6; r++ {
		for c := 0; c < 9; c++ {
			got, _ := df.At(r, c)
			want := absInt(r-src.Row) + absInt(c-src.Col)
			if int(got) != want {
				t.Fatalf("(%d,%d): expected %d, got %d", r, c, want, got)
			}
		}
	}
}

func TestDistanceField_MultiSourceIsElementwiseMin(t *testing.T) {
	rng := rand.New(rand.NewSource(7)) // #nosec G404 -- test
	g := mustGrid(t, 10, 12, Cell{3, 3}, Cell{3, 4}, Cell{3, 5}, Cell{6, 8}, Cell{7, 8})
	sources := []Cell{{0, 0}, {9, 11}, {5, 2}, {1, 10}}

	multi := mustField(t, g, sources...)
	singles := make([]*DistanceField, len(sources))
	for i, s := range sources {
		singles[i] = mustField(t, g, s)
	}
	for r := 0; r < 10; r++ {
		for c := 0; c < 12; c++ {
			want := Unreachable
			for _, s := range singles {
				if d, _ := s.At(r, c); d < want {
					want = d
				}
			}
			if got, _ := multi.At(r, c); got != want {
				t.Fatalf("(%d,%d): expected %d, got %d", r, c, want, got)
			}
		}
	}

	// Source order must not matter.
	shuffled := append([]Cell(nil), sources...)
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	again := mustField(t, g, shuffled...)
	for i := range multi.dist {
		if multi.dist[i] != again.dist[i] {
			t.Fatalf("field differs after shuffling sources at index %d: %d vs %d", i, multi.dist[i], again.dist[i])
		}
	}
}

func TestDistanceField_EnclosedCellGetsSentinel(t *testing.T) {
	// Ring of obstacles around (2,2) on a 5x5 grid.
	ring := []Cell{{1, 1}, {1, 2}, {1, 3}, {2, 1}, {2, 3}, {3, 1}, {3, 2}, {3, 3}}
	g := mustGrid(t, 5, 5, ring...)
	df := mustField(t, g, Cell{0, 0})

	d, _ := df.At(2, 2)
	if d.Reachable() {
		t.Fatalf("expected enclosed cell unreachable, got %d", d)
	}
	if m := df.Matrix(); m[2][2] != 25 {
		t.Fatalf("expected sentinel 25 in matrix, got %d", m[2][2])
	}
	if df.Sentinel() != 25 {
		t.Fatalf("expected Sentinel()=25, got %d", df.Sentinel())
	}
	// Obstacle cells are never expanded into.
	for _, o := range ring {
		if d, _ := df.At(o.Row, o.Col); d.Reachable() {
			t.Fatalf("obstacle %v received distance %d", o, d)
		}
	}
}

func TestDistanceField_WallForcesDetour(t *testing.T) {
	// Vertical wall in column 2 from row 0..3 on a 5x5 grid: the only way
	// from (0,0) to (0,4) is around the bottom through row 4.
	g := mustGrid(t, 5, 5, Cell{0, 2}, Cell{1, 2}, Cell{2, 2}, Cell{3, 2})
	df := mustField(t, g, Cell{0, 0})
	got, _ := df.At(0, 4)
	if got != 12 {
		t.Fatalf("expected detour distance 12, got %d", got)
	}
}

func TestDistanceField_SourceOnObstacleIsZero(t *testing.T) {
	g := mustGrid(t, 3, 3, Cell{1, 1})
	df := mustField(t, g, Cell{1, 1})
	if d, _ := df.At(1, 1); d != 0 {
		t.Fatalf("expected 0 at source, got %d", d)
	}
	if d, _ := df.At(0, 1); d != 1 {
		t.Fatalf("expected 1 next to source, got %d", d)
	}
}

func TestDistanceField_NoSourcesAllUnreachable(t *testing.T) {
	g := mustGrid(t, 3, 4)
	df := mustField(t, g)
	if df.MaxReachable() != -1 {
		t.Fatalf("expected MaxReachable -1, got %d", df.MaxReachable())
	}
	for _, row := range df.Matrix() {
		for _, v := range row {
			if v != 12 {
				t.Fatalf("expected every cell = sentinel 12, got %v", df.Matrix())
			}
		}
	}
}

func TestDistanceField_DuplicateSources(t *testing.T) {
	g := mustGrid(t, 3, 3)
	a := mustField(t, g, Cell{0, 0}, Cell{0, 0}, Cell{0, 0})
	b := mustField(t, g, Cell{0, 0})
	for i := range a.dist {
		if a.dist[i] != b.dist[i] {
			t.Fatalf("duplicate sources changed the field at %d", i)
		}
	}
}

func TestDistanceField_OutOfBoundsSource(t *testing.T) {
	g := mustGrid(t, 3, 3)
	if _, err := ComputeDistanceField(g, []Cell{{3, 0}}); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
	df := mustField(t, g, Cell{0, 0})
	if _, err := df.At(0, 5); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("At: expected ErrOutOfBounds, got %v", err)
	}
}

func TestNewDistanceField_FromMatrix(t *testing.T) {
	df, err := NewDistanceField([][]int{{4, 3, 2}, {3, 2, 1}, {2, 1, 0}})
	if err != nil {
		t.Fatalf("NewDistanceField: %v", err)
	}
	if df.Height() != 3 || df.Width() != 3 {
		t.Fatalf("expected 3x3, got %dx%d", df.Height(), df.Width())
	}
	if d, _ := df.At(0, 0); d != 4 {
		t.Fatalf("expected 4 at (0,0), got %d", d)
	}

	withSentinel, err := NewDistanceField([][]int{{9, 0}, {1, 2}})
	if err != nil {
		t.Fatalf("NewDistanceField: %v", err)
	}
	if d, _ := withSentinel.At(0, 0); d.Reachable() {
		t.Fatalf("expected value >= sentinel to be unreachable, got %d", d)
	}
	if m := withSentinel.Matrix(); m[0][0] != 4 {
		t.Fatalf("expected matrix to render sentinel 4, got %d", m[0][0])
	}
}

func TestNewDistanceField_Rejects(t *testing.T) {
	if _, err := NewDistanceField(nil); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("empty: expected ErrInvalidSize, got %v", err)
	}
	if _, err := NewDistanceField([][]int{{1, 2}, {3}}); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("ragged: expected ErrInvalidSize, got %v", err)
	}
	if _, err := NewDistanceField([][]int{{-1}}); err == nil {
		t.Fatal("negative: expected error")
	}
}
