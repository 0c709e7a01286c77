package anno

import (
	"fmt"
	"github.com/celskeggs/gcviterbi/hmm"
	"github.com/hashicorp/go-multierror"
	"gonum.org/v1/gonum/floats"
)

// Composition holds, for each state, the frequency of each symbol at the positions annotated with
// that state. A state that never occurs has a nil row.
type Composition [][]float64

// Present is false for states outside the table.
func (c Composition) Present(k hmm.State) bool {
	return k >= 0 && int(k) < len(c) && c[k] != nil
}

// BaseComposition tallies symbols by annotated state and normalizes each state's counts. When some
// states never occur, the rows of the others are still returned, along with an error listing every
// empty state; each entry matches hmm.ErrEmptyState.
func BaseComposition(xs []hmm.Symbol, annotation []hmm.State, numStates, numSymbols int) (Composition, error) {
	if numStates <= 0 || numSymbols <= 0 {
		return nil, fmt.Errorf("%w: %d states and %d symbols", hmm.ErrInvalidModel, numStates, numSymbols)
	}
	if len(xs) != len(annotation) {
		return nil, fmt.Errorf("%w: %d symbols but %d annotated states", hmm.ErrLengthMismatch, len(xs), len(annotation))
	}
	if err := checkStates(annotation, numStates); err != nil {
		return nil, err
	}
	counts := make([][]float64, numStates)
	for k := range counts {
		counts[k] = make([]float64, numSymbols)
	}
	for i, x := range xs {
		if x < 0 || int(x) >= numSymbols {
			return nil, fmt.Errorf("%w: symbol %d at position %d (alphabet size %d)", hmm.ErrSymbolOutOfRange, x, i, numSymbols)
		}
		counts[annotation[i]][x] += 1
	}
	var merr *multierror.Error
	composition := make(Composition, numStates)
	for k, row := range counts {
		total := floats.Sum(row)
		if total == 0 {
			merr = multierror.Append(merr, fmt.Errorf("%w: state %d", hmm.ErrEmptyState, k))
			continue
		}
		floats.Scale(1/total, row)
		composition[k] = row
	}
	return composition, merr.ErrorOrNil()
}
