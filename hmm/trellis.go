package hmm

import "fmt"

// Trellis holds the Viterbi score and backpointer for every (position, state) cell of one decode.
// Both are flat arrays with a stride of the state count, sized once up front.
type Trellis struct {
	length    int
	numStates int
	scores    []LogProb
	back      []State
}

func NewTrellis(length, numStates int) *Trellis {
	if length < 0 || numStates <= 0 {
		panic(fmt.Sprintf("invalid trellis shape %dx%d", length, numStates))
	}
	return &Trellis{
		length:    length,
		numStates: numStates,
		scores:    make([]LogProb, length*numStates),
		back:      make([]State, length*numStates),
	}
}

func (t *Trellis) Len() int {
	return t.length
}

func (t *Trellis) NumStates() int {
	return t.numStates
}

func (t *Trellis) index(i int, k State) int {
	if i < 0 || i >= t.length || k < 0 || int(k) >= t.numStates {
		panic(fmt.Sprintf("trellis cell (%d, %d) out of bounds for %dx%d", i, k, t.length, t.numStates))
	}
	return i*t.numStates + int(k)
}

func (t *Trellis) Score(i int, k State) LogProb {
	return t.scores[t.index(i, k)]
}

func (t *Trellis) SetScore(i int, k State, score LogProb) {
	t.scores[t.index(i, k)] = score
}

// Back is the predecessor state chosen for cell (i, k). Row 0 has no predecessor.
func (t *Trellis) Back(i int, k State) State {
	return t.back[t.index(i, k)]
}

func (t *Trellis) SetBack(i int, k State, previous State) {
	t.back[t.index(i, k)] = previous
}

// Row returns the scores at position i, aliased into the trellis.
func (t *Trellis) Row(i int) []LogProb {
	start := t.index(i, 0)
	return t.scores[start : start+t.numStates]
}
