package gcreport

import (
	"errors"
	"fmt"
	"github.com/celskeggs/gcviterbi/anno"
	"github.com/celskeggs/gcviterbi/ctrl/histplot"
	"github.com/celskeggs/gcviterbi/gcmodel"
	"github.com/celskeggs/gcviterbi/hmm"
	"github.com/celskeggs/gcviterbi/seqio"
	"gonum.org/v1/plot"
	"io"
	"log"
	"strings"
)

type Options struct {
	TieBreak hmm.TieBreak
	Accuracy anno.AccuracyPolicy
	// PlotPrefix is prepended to histogram file names. No histograms are built when empty.
	PlotPrefix string
	Bins       int
}

// StatePlot is the region length histogram of one state.
type StatePlot struct {
	State hmm.State
	Plot  *plot.Plot
}

// AnnotationReport is the summary of one annotation plus the histograms built for it.
type AnnotationReport struct {
	Heading string
	Prefix  string
	Summary *anno.Summary
	Plots   []StatePlot
}

type Result struct {
	Reference     *AnnotationReport
	Decoded       *AnnotationReport
	DecodedPath   []hmm.State
	LogLikelihood hmm.LogProb
	Accuracy      float64
}

// Plots lists every histogram built, reference first.
func (r *Result) Plots() (plots []*plot.Plot) {
	for _, report := range []*AnnotationReport{r.Reference, r.Decoded} {
		for _, sp := range report.Plots {
			plots = append(plots, sp.Plot)
		}
	}
	return plots
}

func formatComposition(symbols *seqio.Alphabet, row []float64) string {
	if row == nil {
		return "n/a (state absent)"
	}
	parts := make([]string, len(row))
	for x, f := range row {
		parts[x] = fmt.Sprintf("%c=%.2f%%", symbols.Char(x), 100*f)
	}
	return strings.Join(parts, " ")
}

func underline(heading string) string {
	return heading + "\n" + strings.Repeat("-", len(heading)) + "\n"
}

func annotate(loaded *gcmodel.Loaded, ds *seqio.Dataset, annotation []hmm.State, heading, prefix string, opts Options, out io.Writer) (*AnnotationReport, error) {
	m := loaded.Model
	summary, err := anno.Summarize(ds.Sequence, annotation, m.NumStates(), m.NumSymbols())
	if err != nil {
		if !errors.Is(err, hmm.ErrEmptyState) {
			return nil, err
		}
		log.Printf("%s: %v", heading, err)
	}
	report := &AnnotationReport{
		Heading: heading,
		Prefix:  prefix,
		Summary: summary,
	}
	if _, err := fmt.Fprint(out, underline(heading)); err != nil {
		return nil, err
	}
	for k := hmm.State(0); int(k) < m.NumStates(); k++ {
		title := loaded.Config.StateTitle(k)
		_, err := fmt.Fprintf(out, "%s mean region length: %.1f\n%s base composition: %s\n",
			title, summary.MeanRegionLengths[k],
			title, formatComposition(loaded.Symbols, summary.Composition[k]))
		if err != nil {
			return nil, err
		}
		if opts.PlotPrefix == "" {
			continue
		}
		if len(summary.RegionLengths[k]) == 0 {
			log.Printf("%s: no %s regions to plot", heading, title)
			continue
		}
		p, err := histplot.NewLengthHistogram(fmt.Sprintf("%s: %s region lengths", heading, title), summary.RegionLengths[k], opts.Bins)
		if err != nil {
			return nil, err
		}
		report.Plots = append(report.Plots, StatePlot{State: k, Plot: p})
	}
	return report, nil
}

// Run decodes the dataset's sequence, reports statistics for the reference and decoded
// annotations, and compares them.
func Run(loaded *gcmodel.Loaded, ds *seqio.Dataset, opts Options, out io.Writer) (*Result, error) {
	reference, err := annotate(loaded, ds, ds.Annotation, "Authoritative annotation statistics", "authoritative", opts, out)
	if err != nil {
		return nil, fmt.Errorf("reference annotation: %w", err)
	}
	if _, err := fmt.Fprintln(out); err != nil {
		return nil, err
	}

	log.Printf("Decoding %d positions with %d states...", len(ds.Sequence), loaded.Model.NumStates())
	path, likelihood, err := hmm.Decoder{TieBreak: opts.TieBreak}.DecodeScored(loaded.Model, ds.Sequence)
	if err != nil {
		return nil, fmt.Errorf("decoding: %w", err)
	}
	log.Printf("Decoding complete (log likelihood %.3f).", float64(likelihood))

	decoded, err := annotate(loaded, ds, path, "Viterbi annotation statistics", "viterbi", opts, out)
	if err != nil {
		return nil, fmt.Errorf("decoded annotation: %w", err)
	}
	if _, err := fmt.Fprintln(out); err != nil {
		return nil, err
	}

	accuracy, err := anno.Accuracy(ds.Annotation, path, opts.Accuracy)
	if err != nil {
		return nil, err
	}
	if _, err := fmt.Fprintf(out, "Accuracy: %.2f%%\n", 100*accuracy); err != nil {
		return nil, err
	}
	return &Result{
		Reference:     reference,
		Decoded:       decoded,
		DecodedPath:   path,
		LogLikelihood: likelihood,
		Accuracy:      accuracy,
	}, nil
}
