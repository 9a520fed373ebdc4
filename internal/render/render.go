// Package render draws the division series probability matrix as a heat map.
package render

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// PlotGames is the number of game columns drawn. Columns past a full
// 162-game season are accumulated but not plotted.
const PlotGames = 162

const (
	dpi          = 350
	width        = 6.4 * vg.Inch
	height       = 4.8 * vg.Inch
	barWidth     = 1.2 * vg.Inch
	paletteName  = "YlGnBu"
	paletteSize  = 9
	barSteps     = 64
	title        = "Division series probability vs. game number and win pct"
	barLabelText = "Division Series Probability %"
)

// probGrid exposes the first PlotGames columns of a probability matrix as
// percentages. Rows are flipped so the 1.0 bin is drawn at the top.
type probGrid struct {
	prob *mat.Dense
	rows int
	cols int
}

func newProbGrid(prob *mat.Dense) probGrid {
	rows, cols := prob.Dims()
	if cols > PlotGames {
		cols = PlotGames
	}
	return probGrid{prob: prob, rows: rows, cols: cols}
}

func (g probGrid) Dims() (c, r int) { return g.cols, g.rows }
func (g probGrid) X(c int) float64 { return float64(c + 1) }
func (g probGrid) Y(r int) float64 { return float64(r) / float64(g.rows-1) }
func (g probGrid) Z(c, r int) float64 {
	return 100 * g.prob.At(g.rows-1-r, c)
}

// zRange returns the finite min and max of the grid.
func (g probGrid) zRange() (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for c := 0; c < g.cols; c++ {
		for r := 0; r < g.rows; r++ {
			v := g.Z(c, r)
			if math.IsNaN(v) {
				continue
			}
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}
	}
	return lo, hi, !math.IsInf(lo, 1)
}

// barGrid is a two-column strip of evenly spaced values used as a colour bar.
type barGrid struct {
	lo, hi float64
	n      int
}

func (b barGrid) Dims() (c, r int) { return 2, b.n }
func (b barGrid) X(c int) float64 { return float64(c) }
func (b barGrid) Y(r int) float64 { return b.Z(0, r) }
func (b barGrid) Z(_, r int) float64 { return b.lo + (b.hi-b.lo)*float64(r)/float64(b.n-1) }

// Plots builds the heat map and its colour bar. Cells holding NaN are left
// unpainted.
func Plots(prob *mat.Dense) (heat, bar *plot.Plot, err error) {
	pal, err := brewer.GetPalette(brewer.TypeSequential, paletteName, paletteSize)
	if err != nil {
		return nil, nil, fmt.Errorf("load palette: %w", err)
	}

	grid := newProbGrid(prob)
	lo, hi, ok := grid.zRange()
	if !ok {
		lo, hi = 0, 100
	}
	if hi-lo < 1e-9 {
		hi = lo + 1
	}

	heat = plot.New()
	heat.Title.Text = title
	heat.X.Label.Text = "Game number"
	heat.Y.Label.Text = "Win Pct"
	heat.Add(newHeatMap(grid, pal, lo, hi))

	bar = plot.New()
	bar.HideX()
	bar.Y.Label.Text = barLabelText
	bar.Add(newHeatMap(barGrid{lo: lo, hi: hi, n: barSteps}, pal, lo, hi))

	return heat, bar, nil
}

func newHeatMap(g plotter.GridXYZ, pal palette.Palette, lo, hi float64) *plotter.HeatMap {
	hm := plotter.NewHeatMap(g, pal)
	hm.Min, hm.Max = lo, hi
	return hm
}

// HeatMap renders prob as a PNG at path, creating parent directories.
func HeatMap(path string, prob *mat.Dense) error {
	heat, bar, err := Plots(prob)
	if err != nil {
		return err
	}

	img := vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(dpi))
	dc := draw.New(img)
	heat.Draw(draw.Crop(dc, 0, -barWidth, 0, 0))
	bar.Draw(draw.Crop(dc, width-barWidth, 0, 0, 0))

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create image: %w", err)
	}
	defer f.Close()

	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return f.Close()
}
