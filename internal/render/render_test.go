package render

import (
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// sampleProb builds a 15×164 matrix with a diagonal band of values and NaN elsewhere.
func sampleProb() *mat.Dense {
	m := mat.NewDense(15, 164, nil)
	for r := 0; r < 15; r++ {
		for c := 0; c < 164; c++ {
			m.Set(r, c, math.NaN())
		}
	}
	for c := 0; c < 164; c++ {
		r := c % 15
		m.Set(r, c, 1-float64(r)/14)
	}
	return m
}

func TestProbGrid_FlipsRowsAndTrimsColumns(t *testing.T) {
	m := mat.NewDense(15, 164, nil)
	m.Set(0, 0, 0.8)  // 1.0 bin, game 1
	m.Set(14, 5, 0.1) // 0.0 bin, game 6

	g := newProbGrid(m)
	c, r := g.Dims()
	if c != PlotGames || r != 15 {
		t.Fatalf("Dims: got %dx%d, want %dx15", c, r, PlotGames)
	}
	if got := g.Z(0, 14); got != 80 {
		t.Errorf("top row game 1: want 80, got %v", got)
	}
	if got := g.Z(5, 0); math.Abs(got-10) > 1e-9 {
		t.Errorf("bottom row game 6: want 10, got %v", got)
	}
	if g.X(0) != 1 || g.X(PlotGames-1) != PlotGames {
		t.Errorf("x axis should run 1..%d, got %v..%v", PlotGames, g.X(0), g.X(PlotGames-1))
	}
	if g.Y(0) != 0 || g.Y(14) != 1 {
		t.Errorf("y axis should run 0..1, got %v..%v", g.Y(0), g.Y(14))
	}
}

func TestProbGrid_RangeSkipsNaN(t *testing.T) {
	lo, hi, ok := newProbGrid(sampleProb()).zRange()
	if !ok {
		t.Fatal("expected a finite range")
	}
	if lo != 0 || hi != 100 {
		t.Errorf("want 0..100, got %v..%v", lo, hi)
	}

	empty := mat.NewDense(15, 164, nil)
	empty.Apply(func(_, _ int, _ float64) float64 { return math.NaN() }, empty)
	if _, _, ok := newProbGrid(empty).zRange(); ok {
		t.Error("all-NaN grid should report no range")
	}
}

func TestHeatMap_WritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "figures", "playoffprob.png")
	if err := HeatMap(path, sampleProb()); err != nil {
		t.Fatalf("HeatMap: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if cfg.Width <= cfg.Height {
		t.Errorf("expected landscape image, got %dx%d", cfg.Width, cfg.Height)
	}
}

func TestHeatMap_AllMasked(t *testing.T) {
	m := mat.NewDense(15, 164, nil)
	m.Apply(func(_, _ int, _ float64) float64 { return math.NaN() }, m)
	if err := HeatMap(filepath.Join(t.TempDir(), "empty.png"), m); err != nil {
		t.Errorf("HeatMap on empty matrix: %v", err)
	}
}
