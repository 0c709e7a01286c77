package hmm

import (
	"fmt"
	"github.com/hashicorp/go-multierror"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	"math"
)

// SumTolerance is how far a distribution may stray from summing to exactly 1.
const SumTolerance = 1e-6

// State indexes the hidden states of a Model, 0..N-1.
type State int

// Symbol indexes the observation alphabet of a Model, 0..M-1.
type Symbol int

// Model is an immutable set of HMM parameters. Linear probabilities are kept for the accessors; the
// log-space copies are what the decoder reads.
type Model struct {
	numStates  int
	numSymbols int

	initial     []Prob
	transitions []Prob // numStates x numStates, row-major
	emissions   []Prob // numStates x numSymbols, row-major

	logInitial     []LogProb
	logTransitions []LogProb
	logEmissions   []LogProb
}

func checkDistribution(name string, dist []Prob) (err error) {
	for i, p := range dist {
		if math.IsNaN(float64(p)) || p < 0 || p > 1 {
			err = multierror.Append(err, fmt.Errorf("%w: %s[%d] = %v is not a probability", ErrInvalidModel, name, i, p))
		}
	}
	if sum := floats.Sum(toFloats(dist)); !scalar.EqualWithinAbs(sum, 1.0, SumTolerance) {
		err = multierror.Append(err, fmt.Errorf("%w: %s sums to %v instead of 1", ErrInvalidModel, name, sum))
	}
	return err
}

// NewModel validates and copies the initial distribution (length N), the transition matrix (N×N,
// transitions[from][to]) and the emission matrix (N×M, emissions[state][symbol]). Every problem
// found is reported; each one matches ErrInvalidModel.
func NewModel(initial []Prob, transitions [][]Prob, emissions [][]Prob) (*Model, error) {
	n := len(initial)
	if n == 0 {
		return nil, fmt.Errorf("%w: no states", ErrInvalidModel)
	}
	if len(emissions) == 0 || len(emissions[0]) == 0 {
		return nil, fmt.Errorf("%w: no observation symbols", ErrInvalidModel)
	}
	m := len(emissions[0])

	var merr *multierror.Error
	if len(transitions) != n {
		merr = multierror.Append(merr, fmt.Errorf("%w: transition matrix has %d rows, expected %d", ErrInvalidModel, len(transitions), n))
	}
	if len(emissions) != n {
		merr = multierror.Append(merr, fmt.Errorf("%w: emission matrix has %d rows, expected %d", ErrInvalidModel, len(emissions), n))
	}
	if err := checkDistribution("initial", initial); err != nil {
		merr = multierror.Append(merr, err)
	}
	for k, row := range transitions {
		if len(row) != n {
			merr = multierror.Append(merr, fmt.Errorf("%w: transition row %d has %d columns, expected %d", ErrInvalidModel, k, len(row), n))
			continue
		}
		if err := checkDistribution(fmt.Sprintf("transitions[%d]", k), row); err != nil {
			merr = multierror.Append(merr, err)
		}
	}
	for k, row := range emissions {
		if len(row) != m {
			merr = multierror.Append(merr, fmt.Errorf("%w: emission row %d has %d columns, expected %d", ErrInvalidModel, k, len(row), m))
			continue
		}
		if err := checkDistribution(fmt.Sprintf("emissions[%d]", k), row); err != nil {
			merr = multierror.Append(merr, err)
		}
	}
	if err := merr.ErrorOrNil(); err != nil {
		return nil, err
	}

	model := &Model{
		numStates:   n,
		numSymbols:  m,
		initial:     append([]Prob(nil), initial...),
		transitions: make([]Prob, 0, n*n),
		emissions:   make([]Prob, 0, n*m),
	}
	for k := 0; k < n; k++ {
		model.transitions = append(model.transitions, transitions[k]...)
		model.emissions = append(model.emissions, emissions[k]...)
	}
	model.logInitial = logAll(model.initial)
	model.logTransitions = logAll(model.transitions)
	model.logEmissions = logAll(model.emissions)
	return model, nil
}

func logAll(ps []Prob) []LogProb {
	lps := make([]LogProb, len(ps))
	for i, p := range ps {
		lps[i] = p.Log()
	}
	return lps
}

func (m *Model) NumStates() int {
	return m.numStates
}

func (m *Model) NumSymbols() int {
	return m.numSymbols
}

func (m *Model) Initial(k State) Prob {
	return m.initial[m.checkState(k)]
}

func (m *Model) Transition(from, to State) Prob {
	return m.transitions[m.checkState(from)*m.numStates+m.checkState(to)]
}

func (m *Model) Emission(k State, x Symbol) Prob {
	return m.emissions[m.checkState(k)*m.numSymbols+m.checkSymbol(x)]
}

func (m *Model) logInitialOf(k State) LogProb {
	return m.logInitial[k]
}

func (m *Model) logTransition(from, to State) LogProb {
	return m.logTransitions[int(from)*m.numStates+int(to)]
}

func (m *Model) logEmission(k State, x Symbol) LogProb {
	return m.logEmissions[int(k)*m.numSymbols+int(x)]
}

func (m *Model) checkState(k State) int {
	if k < 0 || int(k) >= m.numStates {
		panic(fmt.Sprintf("state %d out of range for model with %d states", k, m.numStates))
	}
	return int(k)
}

func (m *Model) checkSymbol(x Symbol) int {
	if x < 0 || int(x) >= m.numSymbols {
		panic(fmt.Sprintf("symbol %d out of range for model with %d symbols", x, m.numSymbols))
	}
	return int(x)
}

// CheckSequence reports the first symbol of xs that this model cannot emit.
func (m *Model) CheckSequence(xs []Symbol) error {
	for i, x := range xs {
		if x < 0 || int(x) >= m.numSymbols {
			return fmt.Errorf("%w: symbol %d at position %d (alphabet size %d)", ErrSymbolOutOfRange, x, i, m.numSymbols)
		}
	}
	return nil
}
