package seqio

import (
	"bufio"
	"fmt"
	"github.com/celskeggs/gcviterbi/hmm"
	"io"
	"os"
	"strings"
)

// Dataset is an observation sequence together with its reference annotation.
type Dataset struct {
	Sequence   []hmm.Symbol
	Annotation []hmm.State
}

// ReadDataset parses the two-line format: the sequence on the first line, the reference annotation
// on the second, each optionally newline-terminated. Anything after the second line is ignored.
func ReadDataset(r io.Reader, symbols, states *Alphabet) (*Dataset, error) {
	br := bufio.NewReader(r)
	seqLine, err := readLine(br)
	if err != nil {
		return nil, fmt.Errorf("reading sequence line: %w", err)
	}
	annoLine, err := readLine(br)
	if err != nil {
		return nil, fmt.Errorf("reading annotation line: %w", err)
	}
	if len(seqLine) != len(annoLine) {
		return nil, fmt.Errorf("%w: sequence has %d positions but annotation has %d", hmm.ErrLengthMismatch, len(seqLine), len(annoLine))
	}
	xs, err := symbols.Symbols(seqLine)
	if err != nil {
		return nil, fmt.Errorf("sequence line: %w", err)
	}
	ys, err := states.States(annoLine)
	if err != nil {
		return nil, fmt.Errorf("annotation line: %w", err)
	}
	return &Dataset{Sequence: xs, Annotation: ys}, nil
}

func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err == io.EOF {
		if line == "" {
			return "", io.ErrUnexpectedEOF
		}
	} else if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func LoadDataset(path string, symbols, states *Alphabet) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ds, err := ReadDataset(f, symbols, states)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}
