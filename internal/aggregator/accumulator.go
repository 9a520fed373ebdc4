package aggregator

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/pable/go-playoff-odds/internal/model"
)

// Accumulator holds the bin × game count grids shared by every season of a run.
//
// Total counts every team-game observation. Playoff counts the subset that
// belongs to teams which went on to play in the division series.
type Accumulator struct {
	Playoff *mat.Dense
	Total   *mat.Dense
}

// NewAccumulator returns zeroed NumBins × GameSlots grids.
func NewAccumulator() *Accumulator {
	return &Accumulator{
		Playoff: mat.NewDense(NumBins, GameSlots, nil),
		Total:   mat.NewDense(NumBins, GameSlots, nil),
	}
}

// Observe records one observation at (bin, col).
func (a *Accumulator) Observe(bin, col int, madePlayoffs bool) {
	a.Total.Set(bin, col, a.Total.At(bin, col)+1)
	if madePlayoffs {
		a.Playoff.Set(bin, col, a.Playoff.At(bin, col)+1)
	}
}

// Set overwrites both counts at (bin, col). Used when rebuilding a stored run.
func (a *Accumulator) Set(bin, col int, playoff, total float64) error {
	if bin < 0 || bin >= NumBins || col < 0 || col >= GameSlots {
		return fmt.Errorf("cell (%d,%d) outside %dx%d grid", bin, col, NumBins, GameSlots)
	}
	a.Playoff.Set(bin, col, playoff)
	a.Total.Set(bin, col, total)
	return nil
}

// Observations returns the sum of all Total counts.
func (a *Accumulator) Observations() float64 {
	return mat.Sum(a.Total)
}

// Probability returns Playoff / Total elementwise. Cells with no observations
// are NaN so that they are masked rather than drawn as zero.
func (a *Accumulator) Probability() *mat.Dense {
	var p mat.Dense
	p.Apply(func(i, j int, v float64) float64 {
		den := a.Total.At(i, j)
		if den == 0 {
			return math.NaN()
		}
		return v / den
	}, a.Playoff)
	return &p
}

// Cells returns every cell with at least one observation, in row-major order.
func (a *Accumulator) Cells() []model.MatrixCell {
	var out []model.MatrixCell
	for b := 0; b < NumBins; b++ {
		for c := 0; c < GameSlots; c++ {
			total := a.Total.At(b, c)
			if total == 0 {
				continue
			}
			out = append(out, model.MatrixCell{Bin: b, Col: c, Playoff: a.Playoff.At(b, c), Total: total})
		}
	}
	return out
}
