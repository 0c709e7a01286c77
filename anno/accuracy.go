package anno

import (
	"fmt"
	"github.com/celskeggs/gcviterbi/hmm"
)

// AccuracyPolicy selects which positions Accuracy compares.
type AccuracyPolicy int

const (
	// SkipFirst leaves position 0 out of both the count of matches and the count of positions
	// compared. This reproduces the reference benchmark and is the default.
	SkipFirst AccuracyPolicy = iota
	// CompareAll compares every position.
	CompareAll
)

func (p AccuracyPolicy) firstPosition() int {
	if p == CompareAll {
		return 0
	}
	return 1
}

// Accuracy is the fraction of compared positions at which candidate agrees with reference.
func Accuracy(reference, candidate []hmm.State, policy AccuracyPolicy) (float64, error) {
	if len(reference) != len(candidate) {
		return 0, fmt.Errorf("%w: reference has %d positions, candidate has %d", hmm.ErrLengthMismatch, len(reference), len(candidate))
	}
	first := policy.firstPosition()
	if len(reference) <= first {
		return 0, fmt.Errorf("%w: no positions left to compare in %d-position annotations", hmm.ErrEmptySequence, len(reference))
	}
	correct := 0
	for i := first; i < len(reference); i++ {
		if reference[i] == candidate[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(reference)-first), nil
}
