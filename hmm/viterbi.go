package hmm

import "fmt"

// TieBreak picks between predecessor (or final) states whose scores are exactly equal.
type TieBreak int

const (
	// PreferHighest keeps the highest-indexed state among equal scores. This is the reference
	// behavior, and the default.
	PreferHighest TieBreak = iota
	// PreferLowest keeps the lowest-indexed state among equal scores.
	PreferLowest
)

func (tb TieBreak) String() string {
	switch tb {
	case PreferHighest:
		return "highest"
	case PreferLowest:
		return "lowest"
	default:
		return fmt.Sprintf("TieBreak(%d)", int(tb))
	}
}

// ParseTieBreak accepts the names produced by TieBreak.String.
func ParseTieBreak(name string) (TieBreak, error) {
	switch name {
	case "highest":
		return PreferHighest, nil
	case "lowest":
		return PreferLowest, nil
	default:
		return 0, fmt.Errorf("unknown tie-break rule %q (expected highest or lowest)", name)
	}
}

// replaces reports whether a candidate scoring `score` should replace the incumbent scoring `best`,
// given that candidates are visited in ascending state order.
func (tb TieBreak) replaces(score, best LogProb) bool {
	if tb == PreferLowest {
		return score > best
	}
	return score >= best
}

// ViterbiState runs the Viterbi recurrence one observation at a time over a preallocated Trellis.
// The path it extracts is the exact global optimum over everything fed so far.
type ViterbiState struct {
	Model    *Model
	TieBreak TieBreak

	trellis *Trellis
	periods int
}

// NewViterbiState prepares to decode up to capacity observations.
func NewViterbiState(model *Model, tieBreak TieBreak, capacity int) *ViterbiState {
	return &ViterbiState{
		Model:    model,
		TieBreak: tieBreak,
		trellis:  NewTrellis(capacity, model.NumStates()),
	}
}

func (v *ViterbiState) Periods() int {
	return v.periods
}

func (v *ViterbiState) Trellis() *Trellis {
	return v.trellis
}

// NextPeriod extends the trellis by one observation.
func (v *ViterbiState) NextPeriod(observation Symbol) error {
	m := v.Model
	if observation < 0 || int(observation) >= m.NumSymbols() {
		return fmt.Errorf("%w: symbol %d at position %d (alphabet size %d)", ErrSymbolOutOfRange, observation, v.periods, m.NumSymbols())
	}
	if v.periods >= v.trellis.Len() {
		return fmt.Errorf("trellis capacity of %d observations exhausted", v.trellis.Len())
	}
	i := v.periods
	numStates := State(m.NumStates())
	if i == 0 {
		for k := State(0); k < numStates; k++ {
			v.trellis.SetScore(0, k, m.logInitialOf(k)+m.logEmission(k, observation))
		}
	} else {
		priors := v.trellis.Row(i - 1)
		for outcome := State(0); outcome < numStates; outcome++ {
			bestScore := priors[0] + m.logTransition(0, outcome)
			bestPrevious := State(0)
			for previous := State(1); previous < numStates; previous++ {
				score := priors[previous] + m.logTransition(previous, outcome)
				if v.TieBreak.replaces(score, bestScore) {
					bestScore = score
					bestPrevious = previous
				}
			}
			v.trellis.SetScore(i, outcome, bestScore+m.logEmission(outcome, observation))
			v.trellis.SetBack(i, outcome, bestPrevious)
		}
	}
	v.periods++
	return nil
}

// ExtractPath traces back from the best final state. It also returns the log likelihood of that path.
func (v *ViterbiState) ExtractPath() ([]State, LogProb, error) {
	if v.periods == 0 {
		return nil, LogZero, ErrEmptySequence
	}
	last := v.trellis.Row(v.periods - 1)
	bestOutcome := State(0)
	bestLikelihood := last[0]
	for outcome := State(1); int(outcome) < len(last); outcome++ {
		if v.TieBreak.replaces(last[outcome], bestLikelihood) {
			bestLikelihood = last[outcome]
			bestOutcome = outcome
		}
	}
	// generate path in reverse
	path := make([]State, v.periods)
	path[v.periods-1] = bestOutcome
	for i := v.periods - 2; i >= 0; i-- {
		path[i] = v.trellis.Back(i+1, path[i+1])
	}
	return path, bestLikelihood, nil
}

// Decoder finds the most likely hidden state path for an observation sequence.
type Decoder struct {
	TieBreak TieBreak
}

// DecodeScored returns the Viterbi path for xs along with its joint log likelihood.
func (d Decoder) DecodeScored(model *Model, xs []Symbol) ([]State, LogProb, error) {
	if len(xs) == 0 {
		return nil, LogZero, ErrEmptySequence
	}
	if err := model.CheckSequence(xs); err != nil {
		return nil, LogZero, err
	}
	state := NewViterbiState(model, d.TieBreak, len(xs))
	for _, x := range xs {
		if err := state.NextPeriod(x); err != nil {
			return nil, LogZero, err
		}
	}
	return state.ExtractPath()
}

func (d Decoder) Decode(model *Model, xs []Symbol) ([]State, error) {
	path, _, err := d.DecodeScored(model, xs)
	return path, err
}

// Decode runs the Viterbi algorithm with the default tie-break rule.
func Decode(model *Model, xs []Symbol) ([]State, error) {
	return Decoder{}.Decode(model, xs)
}

// JointLogProb scores an arbitrary state path against an observation sequence.
func JointLogProb(model *Model, xs []Symbol, ys []State) (LogProb, error) {
	if len(xs) == 0 {
		return LogZero, ErrEmptySequence
	}
	if len(xs) != len(ys) {
		return LogZero, fmt.Errorf("%w: %d observations but %d states", ErrLengthMismatch, len(xs), len(ys))
	}
	if err := model.CheckSequence(xs); err != nil {
		return LogZero, err
	}
	for i, y := range ys {
		if y < 0 || int(y) >= model.NumStates() {
			return LogZero, fmt.Errorf("%w: state %d at position %d (%d states)", ErrSymbolOutOfRange, y, i, model.NumStates())
		}
	}
	total := model.logInitialOf(ys[0]) + model.logEmission(ys[0], xs[0])
	for i := 1; i < len(xs); i++ {
		total += model.logTransition(ys[i-1], ys[i]) + model.logEmission(ys[i], xs[i])
	}
	return total, nil
}
