package anno

import (
	"errors"
	"github.com/celskeggs/gcviterbi/hmm"
	"github.com/hashicorp/go-multierror"
	"math"
	"math/rand"
	"testing"
)

func states(s ...int) []hmm.State {
	out := make([]hmm.State, len(s))
	for i, k := range s {
		out[i] = hmm.State(k)
	}
	return out
}

func symbols(s ...int) []hmm.Symbol {
	out := make([]hmm.Symbol, len(s))
	for i, x := range s {
		out[i] = hmm.Symbol(x)
	}
	return out
}

func intsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRegionLengths(t *testing.T) {
	tests := []struct {
		annotation []hmm.State
		expected   [][]int
	}{
		{states(0), [][]int{{1}, nil}},
		{states(1), [][]int{nil, {1}}},
		{states(0, 0, 1, 1, 1, 0), [][]int{{2, 1}, {3}}},
		{states(1, 0, 1, 0), [][]int{{1, 1}, {1, 1}}},
		{states(0, 0, 0, 0), [][]int{{4}, nil}},
		{nil, [][]int{nil, nil}},
	}
	for _, test := range tests {
		lengths, err := RegionLengths(test.annotation, 2)
		if err != nil {
			t.Errorf("%v: %v", test.annotation, err)
			continue
		}
		for k := range test.expected {
			if !intsEqual(lengths[k], test.expected[k]) {
				t.Errorf("%v: state %d lengths %v, expected %v", test.annotation, k, lengths[k], test.expected[k])
			}
		}
	}
}

func TestRegionLengthsOutOfRange(t *testing.T) {
	if _, err := RegionLengths(states(0, 2), 2); !errors.Is(err, hmm.ErrSymbolOutOfRange) {
		t.Errorf("expected ErrSymbolOutOfRange, got %v", err)
	}
}

func TestRegionLengthsNoStates(t *testing.T) {
	for _, numStates := range []int{0, -1} {
		if _, err := RegionLengths(states(), numStates); !errors.Is(err, hmm.ErrInvalidModel) {
			t.Errorf("%d states: expected ErrInvalidModel, got %v", numStates, err)
		}
	}
}

func TestRegionsRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(345))
	for trial := 0; trial < 100; trial++ {
		numStates := 1 + r.Intn(4)
		annotation := make([]hmm.State, 1+r.Intn(200))
		for i := range annotation {
			// favor runs
			if i > 0 && r.Intn(4) != 0 {
				annotation[i] = annotation[i-1]
			} else {
				annotation[i] = hmm.State(r.Intn(numStates))
			}
		}

		regions := Regions(annotation)
		for i := 1; i < len(regions); i++ {
			if regions[i].State == regions[i-1].State {
				t.Fatalf("regions %d and %d are not maximal", i-1, i)
			}
		}
		expanded := Expand(regions)
		if len(expanded) != len(annotation) {
			t.Fatalf("expanded to %d positions instead of %d", len(expanded), len(annotation))
		}
		for i := range annotation {
			if expanded[i] != annotation[i] {
				t.Fatalf("expansion differs at position %d", i)
			}
		}

		lengths, err := RegionLengths(annotation, numStates)
		if err != nil {
			t.Fatal(err)
		}
		total := 0
		for _, l := range lengths {
			for _, n := range l {
				total += n
			}
		}
		if total != len(annotation) {
			t.Errorf("region lengths sum to %d instead of %d", total, len(annotation))
		}
	}
}

func TestMeanRegionLength(t *testing.T) {
	if MeanRegionLength(nil) != 0 {
		t.Error("mean of no regions should be zero")
	}
	if m := MeanRegionLength([]int{1, 2, 6}); m != 3 {
		t.Errorf("mean is %v, expected 3", m)
	}
}

func TestBaseComposition(t *testing.T) {
	// A G C T G G | A T
	xs := symbols(0, 1, 2, 3, 1, 1, 0, 3)
	annotation := states(0, 0, 0, 0, 0, 0, 1, 1)

	composition, err := BaseComposition(xs, annotation, 2, 4)
	if err != nil {
		t.Fatal(err)
	}
	expected := [][]float64{{1.0 / 6, 3.0 / 6, 1.0 / 6, 1.0 / 6}, {0.5, 0, 0, 0.5}}
	for k, row := range expected {
		sum := 0.0
		for x, f := range row {
			if math.Abs(composition[k][x]-f) > 1e-12 {
				t.Errorf("state %d symbol %d: frequency %v, expected %v", k, x, composition[k][x], f)
			}
			sum += composition[k][x]
		}
		if math.Abs(sum-1) > 1e-12 {
			t.Errorf("state %d frequencies sum to %v", k, sum)
		}
	}
}

func TestBaseCompositionEmptyState(t *testing.T) {
	xs := symbols(0, 1, 2)
	composition, err := BaseComposition(xs, states(0, 0, 0), 3, 4)
	if !errors.Is(err, hmm.ErrEmptyState) {
		t.Fatalf("expected ErrEmptyState, got %v", err)
	}
	var merr *multierror.Error
	if !errors.As(err, &merr) || len(merr.Errors) != 2 {
		t.Errorf("expected both empty states to be reported, got %v", err)
	}
	if !composition.Present(0) || composition.Present(1) || composition.Present(2) {
		t.Errorf("wrong rows present: %v", composition)
	}
	for _, f := range composition[0] {
		if math.IsNaN(f) {
			t.Error("NaN in a present row")
		}
	}
}

func TestBaseCompositionErrors(t *testing.T) {
	if _, err := BaseComposition(symbols(0, 1), states(0), 2, 4); !errors.Is(err, hmm.ErrLengthMismatch) {
		t.Errorf("expected ErrLengthMismatch, got %v", err)
	}
	if _, err := BaseComposition(symbols(0, 4), states(0, 1), 2, 4); !errors.Is(err, hmm.ErrSymbolOutOfRange) {
		t.Errorf("expected ErrSymbolOutOfRange for a symbol, got %v", err)
	}
	if _, err := BaseComposition(symbols(0, 1), states(0, 2), 2, 4); !errors.Is(err, hmm.ErrSymbolOutOfRange) {
		t.Errorf("expected ErrSymbolOutOfRange for a state, got %v", err)
	}
	for _, counts := range [][2]int{{-1, 4}, {0, 4}, {2, -1}, {2, 0}} {
		if _, err := BaseComposition(symbols(), states(), counts[0], counts[1]); !errors.Is(err, hmm.ErrInvalidModel) {
			t.Errorf("%d states, %d symbols: expected ErrInvalidModel, got %v", counts[0], counts[1], err)
		}
	}
}

func TestCompositionPresentOutOfRange(t *testing.T) {
	composition, err := BaseComposition(symbols(0, 1), states(0, 1), 2, 4)
	if err != nil {
		t.Fatal(err)
	}
	if !composition.Present(0) || !composition.Present(1) {
		t.Errorf("wrong rows present: %v", composition)
	}
	for _, k := range []hmm.State{-1, 2, 5} {
		if composition.Present(k) {
			t.Errorf("state %d reported present in a 2-state composition", k)
		}
	}
}

func TestAccuracySelf(t *testing.T) {
	a := states(0, 1, 1, 0, 1)
	for _, policy := range []AccuracyPolicy{SkipFirst, CompareAll} {
		acc, err := Accuracy(a, a, policy)
		if err != nil {
			t.Fatal(err)
		}
		if acc != 1.0 {
			t.Errorf("policy %d: self accuracy %v", policy, acc)
		}
	}
}

func TestAccuracySinglePosition(t *testing.T) {
	reference := states(0, 0, 1, 1, 0)
	candidate := states(1, 1, 1, 0, 1)

	acc, err := Accuracy(reference, candidate, SkipFirst)
	if err != nil {
		t.Fatal(err)
	}
	if acc != 0.25 {
		t.Errorf("SkipFirst accuracy %v, expected 1/4", acc)
	}
	acc, err = Accuracy(reference, candidate, CompareAll)
	if err != nil {
		t.Fatal(err)
	}
	if acc != 0.2 {
		t.Errorf("CompareAll accuracy %v, expected 1/5", acc)
	}
}

func TestAccuracyIgnoresFirstPosition(t *testing.T) {
	reference := states(0, 1, 1)
	candidate := states(1, 1, 1)
	acc, err := Accuracy(reference, candidate, SkipFirst)
	if err != nil {
		t.Fatal(err)
	}
	if acc != 1.0 {
		t.Errorf("disagreement at position 0 counted under SkipFirst: %v", acc)
	}
}

func TestAccuracyErrors(t *testing.T) {
	if _, err := Accuracy(states(0, 1), states(0), CompareAll); !errors.Is(err, hmm.ErrLengthMismatch) {
		t.Errorf("expected ErrLengthMismatch, got %v", err)
	}
	if _, err := Accuracy(states(0), states(0), SkipFirst); !errors.Is(err, hmm.ErrEmptySequence) {
		t.Errorf("expected ErrEmptySequence, got %v", err)
	}
	if _, err := Accuracy(nil, nil, CompareAll); !errors.Is(err, hmm.ErrEmptySequence) {
		t.Errorf("expected ErrEmptySequence, got %v", err)
	}
	if acc, err := Accuracy(states(1), states(1), CompareAll); err != nil || acc != 1 {
		t.Errorf("single position under CompareAll: %v, %v", acc, err)
	}
}

func TestSummarize(t *testing.T) {
	xs := symbols(1, 2, 1, 0, 3, 0, 2, 2)
	annotation := states(0, 0, 0, 1, 1, 1, 0, 0)
	summary, err := Summarize(xs, annotation, 2, 4)
	if err != nil {
		t.Fatal(err)
	}
	if !intsEqual(summary.RegionLengths[0], []int{3, 2}) || !intsEqual(summary.RegionLengths[1], []int{3}) {
		t.Errorf("wrong region lengths %v", summary.RegionLengths)
	}
	if summary.MeanRegionLengths[0] != 2.5 || summary.MeanRegionLengths[1] != 3 {
		t.Errorf("wrong mean region lengths %v", summary.MeanRegionLengths)
	}
	if math.Abs(summary.Composition[1][0]-2.0/3) > 1e-12 {
		t.Errorf("wrong composition %v", summary.Composition)
	}

	summary, err = Summarize(xs, states(0, 0, 0, 0, 0, 0, 0, 0), 2, 4)
	if !errors.Is(err, hmm.ErrEmptyState) || summary == nil {
		t.Errorf("expected a partial summary with ErrEmptyState, got %v, %v", summary, err)
	}
}
