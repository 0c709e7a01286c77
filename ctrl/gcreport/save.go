package gcreport

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"github.com/celskeggs/gcviterbi/ctrl/histplot"
	"github.com/celskeggs/gcviterbi/gcmodel"
	"github.com/celskeggs/gcviterbi/hmm"
	"io"
	"log"
	"strconv"
)

// SaveHistograms writes each histogram to <prefix>_<annotation>_<state>.png and returns the paths
// written. A failure to save one histogram does not stop the others.
func SaveHistograms(result *Result, loaded *gcmodel.Loaded, prefix string) ([]string, error) {
	var targets []histplot.Target
	for _, report := range []*AnnotationReport{result.Reference, result.Decoded} {
		for _, sp := range report.Plots {
			path := fmt.Sprintf("%s_%s_%s.png", prefix, report.Prefix, loaded.Config.StateName(sp.State))
			log.Printf("Saving %s length histogram to %s", loaded.Config.StateTitle(sp.State), path)
			targets = append(targets, histplot.Target{Path: path, Plot: sp.Plot})
		}
	}
	return histplot.SaveAll(targets)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 4, 64)
}

// WriteStatsCSV writes one row per (annotation, state) pair.
func WriteStatsCSV(result *Result, loaded *gcmodel.Loaded, output io.Writer) error {
	var data bytes.Buffer
	c := csv.NewWriter(&data)
	fields := []string{"Annotation", "State", "Regions", "MeanRegionLength"}
	for x := 0; x < loaded.Symbols.Len(); x++ {
		fields = append(fields, "Freq"+string(loaded.Symbols.Char(x)))
	}
	fields = append(fields, "Accuracy")
	if err := c.Write(fields); err != nil {
		return err
	}
	for _, report := range []*AnnotationReport{result.Reference, result.Decoded} {
		summary := report.Summary
		for k := hmm.State(0); int(k) < loaded.Model.NumStates(); k++ {
			columns := []string{
				report.Prefix,
				loaded.Config.StateName(k),
				strconv.Itoa(len(summary.RegionLengths[k])),
				formatFloat(summary.MeanRegionLengths[k]),
			}
			for x := 0; x < loaded.Symbols.Len(); x++ {
				if summary.Composition.Present(k) {
					columns = append(columns, formatFloat(summary.Composition[k][x]))
				} else {
					columns = append(columns, "")
				}
			}
			columns = append(columns, formatFloat(result.Accuracy))
			if err := c.Write(columns); err != nil {
				return err
			}
		}
	}
	c.Flush()
	if err := c.Error(); err != nil {
		return err
	}
	_, err := data.WriteTo(output)
	return err
}
