package aggregator

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	// NumBins is the number of win percentage reference levels.
	NumBins = 15
	// GameSlots is the number of game-number columns. Slots past 162 absorb
	// make-up games and doubleheader numbering quirks.
	GameSlots = 164
)

// Bins returns the win percentage reference levels, evenly spaced from 1.0
// down to 0.0 inclusive. Index 0 is 1.0.
func Bins() []float64 {
	refs := floats.Span(make([]float64, NumBins), 1, 0)
	refs[NumBins-1] = 0
	return refs
}

// NearestBin returns the index of the reference closest to value. On a tie the
// first minimum in refs order wins, so with Bins() the higher percentage is chosen.
func NearestBin(value float64, refs []float64) int {
	best := 0
	bestDiff := math.Inf(1)
	for i, r := range refs {
		if d := math.Abs(r - value); d < bestDiff {
			best, bestDiff = i, d
		}
	}
	return best
}
