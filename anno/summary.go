package anno

import (
	"errors"
	"github.com/celskeggs/gcviterbi/hmm"
)

// Summary characterizes one annotation of a sequence.
type Summary struct {
	RegionLengths     [][]int
	MeanRegionLengths []float64
	Composition       Composition
}

// Summarize computes region statistics and base composition for an annotation. If only some states
// are missing from the annotation, the summary is still returned alongside the hmm.ErrEmptyState error.
func Summarize(xs []hmm.Symbol, annotation []hmm.State, numStates, numSymbols int) (*Summary, error) {
	lengths, err := RegionLengths(annotation, numStates)
	if err != nil {
		return nil, err
	}
	composition, err := BaseComposition(xs, annotation, numStates, numSymbols)
	if err != nil && !errors.Is(err, hmm.ErrEmptyState) {
		return nil, err
	}
	summary := &Summary{
		RegionLengths:     lengths,
		MeanRegionLengths: make([]float64, numStates),
		Composition:       composition,
	}
	for k, l := range lengths {
		summary.MeanRegionLengths[k] = MeanRegionLength(l)
	}
	return summary, err
}
