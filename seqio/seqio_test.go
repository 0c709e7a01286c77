package seqio

import (
	"errors"
	"github.com/celskeggs/gcviterbi/hmm"
	"io"
	"strings"
	"testing"
)

func mustAlphabet(t *testing.T, chars string) *Alphabet {
	a, err := NewAlphabet(chars)
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestNewAlphabet(t *testing.T) {
	a := mustAlphabet(t, "AGCT")
	if a.Len() != 4 || a.Char(2) != 'C' || a.String() != "AGCT" {
		t.Errorf("wrong alphabet %v", a)
	}
	if _, err := NewAlphabet("AGGT"); err == nil {
		t.Error("expected an error for a duplicated character")
	}
	if _, err := NewAlphabet(""); err == nil {
		t.Error("expected an error for an empty alphabet")
	}
}

func TestReadDataset(t *testing.T) {
	symbols, states := mustAlphabet(t, "AGCT"), mustAlphabet(t, "+-")
	for _, input := range []string{"GCAT\n++--\n", "GCAT\n++--", "GCAT\r\n++--\r\n", "GCAT\n++--\nextra\n"} {
		ds, err := ReadDataset(strings.NewReader(input), symbols, states)
		if err != nil {
			t.Errorf("%q: %v", input, err)
			continue
		}
		expectedX := []hmm.Symbol{1, 2, 0, 3}
		expectedY := []hmm.State{0, 0, 1, 1}
		for i := range expectedX {
			if ds.Sequence[i] != expectedX[i] || ds.Annotation[i] != expectedY[i] {
				t.Errorf("%q: wrong position %d: %d/%d", input, i, ds.Sequence[i], ds.Annotation[i])
			}
		}
		if states.FormatStates(ds.Annotation) != "++--" {
			t.Errorf("%q: annotation formats as %q", input, states.FormatStates(ds.Annotation))
		}
	}
}

func TestReadDatasetErrors(t *testing.T) {
	symbols, states := mustAlphabet(t, "AGCT"), mustAlphabet(t, "+-")
	if _, err := ReadDataset(strings.NewReader("GCAT\n++-\n"), symbols, states); !errors.Is(err, hmm.ErrLengthMismatch) {
		t.Errorf("expected ErrLengthMismatch, got %v", err)
	}
	if _, err := ReadDataset(strings.NewReader("GCNT\n++--\n"), symbols, states); !errors.Is(err, hmm.ErrSymbolOutOfRange) {
		t.Errorf("expected ErrSymbolOutOfRange for the sequence, got %v", err)
	}
	if _, err := ReadDataset(strings.NewReader("GCAT\n++x-\n"), symbols, states); !errors.Is(err, hmm.ErrSymbolOutOfRange) {
		t.Errorf("expected ErrSymbolOutOfRange for the annotation, got %v", err)
	}
	if _, err := ReadDataset(strings.NewReader("GCAT\n"), symbols, states); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected io.ErrUnexpectedEOF, got %v", err)
	}
}
