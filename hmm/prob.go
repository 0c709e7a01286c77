package hmm

import "math"

// Prob is a probability in linear space, as stored in a Model.
type Prob float64

// LogProb is a natural-log probability, as stored in a Trellis.
type LogProb float64

// LogZero is the log of a zero probability.
var LogZero = LogProb(math.Inf(-1))

func (p Prob) Log() LogProb {
	return LogProb(math.Log(float64(p)))
}

func (lp LogProb) Prob() Prob {
	return Prob(math.Exp(float64(lp)))
}

func toFloats(ps []Prob) []float64 {
	f := make([]float64, len(ps))
	for i, p := range ps {
		f[i] = float64(p)
	}
	return f
}
