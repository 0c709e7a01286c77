package gcmodel

import (
	"fmt"
	"github.com/celskeggs/gcviterbi/hmm"
	"github.com/celskeggs/gcviterbi/seqio"
	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
	"io"
	"os"
)

// StateConfig names a hidden state and gives the character that marks it in annotations.
type StateConfig struct {
	Name  string `yaml:"name"`
	Title string `yaml:"title,omitempty"`
	Label string `yaml:"label"`
}

// Config is the file form of a model: states in index order, the observation alphabet as a string
// of characters in index order, and the three parameter tables.
type Config struct {
	States      []StateConfig `yaml:"states"`
	Alphabet    string        `yaml:"alphabet"`
	Initial     []float64     `yaml:"initial"`
	Transitions [][]float64   `yaml:"transitions"`
	Emissions   [][]float64   `yaml:"emissions"`
}

// Loaded is a validated model with the alphabets needed to read data files for it.
type Loaded struct {
	Config     *Config
	Model      *hmm.Model
	Symbols    *seqio.Alphabet
	StateChars *seqio.Alphabet
}

// Default is the two-state GC-content model: state 0 (+) is high-GC, state 1 (-) is low-GC.
func Default() *Config {
	return &Config{
		States: []StateConfig{
			{Name: "highgc", Title: "High-GC", Label: "+"},
			{Name: "lowgc", Title: "Low-GC", Label: "-"},
		},
		Alphabet: "AGCT",
		Initial:  []float64{0.5, 0.5},
		Transitions: [][]float64{
			//  to+  to-
			{0.9, 0.1}, // from+
			{0.1, 0.9}, // from-
		},
		Emissions: [][]float64{
			//   A     G     C     T
			{0.20, 0.30, 0.30, 0.20}, // +
			{0.30, 0.20, 0.20, 0.30}, // -
		},
	}
}

func probs(row []float64) []hmm.Prob {
	ps := make([]hmm.Prob, len(row))
	for i, p := range row {
		ps[i] = hmm.Prob(p)
	}
	return ps
}

func probTable(rows [][]float64) [][]hmm.Prob {
	table := make([][]hmm.Prob, len(rows))
	for i, row := range rows {
		table[i] = probs(row)
	}
	return table
}

// Build validates the configuration and constructs the model and alphabets.
func (c *Config) Build() (*Loaded, error) {
	var merr *multierror.Error
	labels := ""
	for i, s := range c.States {
		if len(s.Label) != 1 {
			merr = multierror.Append(merr, fmt.Errorf("state %d (%q) needs a one-character label, got %q", i, s.Name, s.Label))
			continue
		}
		labels += s.Label
	}
	if len(c.States) != len(c.Initial) {
		merr = multierror.Append(merr, fmt.Errorf("%d states named but %d initial probabilities given", len(c.States), len(c.Initial)))
	}
	if len(c.Emissions) > 0 && len(c.Emissions[0]) != len(c.Alphabet) {
		merr = multierror.Append(merr, fmt.Errorf("alphabet %q has %d symbols but emissions have %d columns", c.Alphabet, len(c.Alphabet), len(c.Emissions[0])))
	}
	if err := merr.ErrorOrNil(); err != nil {
		return nil, err
	}
	stateChars, err := seqio.NewAlphabet(labels)
	if err != nil {
		return nil, fmt.Errorf("state labels: %w", err)
	}
	symbols, err := seqio.NewAlphabet(c.Alphabet)
	if err != nil {
		return nil, fmt.Errorf("alphabet: %w", err)
	}
	model, err := hmm.NewModel(probs(c.Initial), probTable(c.Transitions), probTable(c.Emissions))
	if err != nil {
		return nil, err
	}
	return &Loaded{
		Config:     c,
		Model:      model,
		Symbols:    symbols,
		StateChars: stateChars,
	}, nil
}

func (c *Config) StateName(k hmm.State) string {
	return c.States[k].Name
}

// StateTitle is the human-readable name of a state, falling back to its name.
func (c *Config) StateTitle(k hmm.State) string {
	if c.States[k].Title != "" {
		return c.States[k].Title
	}
	return c.States[k].Name
}

func Decode(r io.Reader) (*Config, error) {
	c := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		return nil, err
	}
	return c, nil
}

func Load(path string) (*Loaded, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	c, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	loaded, err := c.Build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return loaded, nil
}

func (c *Config) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}
