package seqio

import (
	"fmt"
	"github.com/celskeggs/gcviterbi/hmm"
)

// Alphabet maps single characters to contiguous indices, in the order given.
type Alphabet struct {
	chars []byte
	index map[byte]int
}

func NewAlphabet(chars string) (*Alphabet, error) {
	if len(chars) == 0 {
		return nil, fmt.Errorf("empty alphabet")
	}
	a := &Alphabet{
		chars: []byte(chars),
		index: map[byte]int{},
	}
	for i, c := range a.chars {
		if _, dup := a.index[c]; dup {
			return nil, fmt.Errorf("character %q appears twice in alphabet %q", c, chars)
		}
		a.index[c] = i
	}
	return a, nil
}

func (a *Alphabet) Len() int {
	return len(a.chars)
}

func (a *Alphabet) String() string {
	return string(a.chars)
}

func (a *Alphabet) Char(i int) byte {
	return a.chars[i]
}

func (a *Alphabet) lookup(line string) ([]int, error) {
	out := make([]int, len(line))
	for i := 0; i < len(line); i++ {
		idx, found := a.index[line[i]]
		if !found {
			return nil, fmt.Errorf("%w: character %q at position %d is not in alphabet %q", hmm.ErrSymbolOutOfRange, line[i], i, a.String())
		}
		out[i] = idx
	}
	return out, nil
}

func (a *Alphabet) Symbols(line string) ([]hmm.Symbol, error) {
	indices, err := a.lookup(line)
	if err != nil {
		return nil, err
	}
	xs := make([]hmm.Symbol, len(indices))
	for i, idx := range indices {
		xs[i] = hmm.Symbol(idx)
	}
	return xs, nil
}

func (a *Alphabet) States(line string) ([]hmm.State, error) {
	indices, err := a.lookup(line)
	if err != nil {
		return nil, err
	}
	ys := make([]hmm.State, len(indices))
	for i, idx := range indices {
		ys[i] = hmm.State(idx)
	}
	return ys, nil
}

// FormatStates renders an annotation back into characters.
func (a *Alphabet) FormatStates(ys []hmm.State) string {
	out := make([]byte, len(ys))
	for i, y := range ys {
		out[i] = a.chars[y]
	}
	return string(out)
}
