package main

import (
	"github.com/celskeggs/gcviterbi/anno"
	"github.com/celskeggs/gcviterbi/ctrl/gcreport"
	"github.com/celskeggs/gcviterbi/ctrl/plotwin"
	"github.com/celskeggs/gcviterbi/gcmodel"
	"github.com/celskeggs/gcviterbi/hmm"
	"github.com/celskeggs/gcviterbi/seqio"
	"github.com/spf13/cobra"
	"log"
	"os"
)

var (
	modelPath            string
	tieBreakName         string
	accuracyIncludeFirst bool
	noPlots              bool
	displayPlots         bool
	csvPath              string
	bins                 int
)

func loadModel() (*gcmodel.Loaded, error) {
	if modelPath == "" {
		return gcmodel.Default().Build()
	}
	return gcmodel.Load(modelPath)
}

func runDecode(cmd *cobra.Command, args []string) error {
	datafile := args[0]
	tieBreak, err := hmm.ParseTieBreak(tieBreakName)
	if err != nil {
		return err
	}
	loaded, err := loadModel()
	if err != nil {
		return err
	}
	ds, err := seqio.LoadDataset(datafile, loaded.Symbols, loaded.StateChars)
	if err != nil {
		return err
	}

	opts := gcreport.Options{
		TieBreak: tieBreak,
		Accuracy: anno.SkipFirst,
		Bins:     bins,
	}
	if accuracyIncludeFirst {
		opts.Accuracy = anno.CompareAll
	}
	if !noPlots {
		opts.PlotPrefix = datafile
	}
	result, err := gcreport.Run(loaded, ds, opts, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if !noPlots {
		if _, err := gcreport.SaveHistograms(result, loaded, datafile); err != nil {
			return err
		}
	}
	if csvPath != "" {
		f, err := os.Create(csvPath)
		if err != nil {
			return err
		}
		if err := gcreport.WriteStatsCSV(result, loaded, f); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		log.Printf("Generated %s.", csvPath)
	}
	if displayPlots && len(result.Plots()) > 0 {
		return plotwin.DisplayPlots("Region length histograms", result.Plots()...)
	}
	return nil
}

func runModel(cmd *cobra.Command, args []string) error {
	loaded, err := loadModel()
	if err != nil {
		return err
	}
	return loaded.Config.Encode(cmd.OutOrStdout())
}

func main() {
	rootCmd := &cobra.Command{
		Use:           "gcviterbi",
		Short:         "Annotate high- and low-GC regions of a DNA sequence with a hidden Markov model",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&modelPath, "model", "", "YAML model file (default: built-in two-state GC model)")

	decodeCmd := &cobra.Command{
		Use:   "decode <datafile>",
		Short: "Decode a sequence and benchmark the result against its reference annotation",
		Long: "The data file holds the sequence on its first line and the reference annotation on its second.\n" +
			"Statistics for both annotations are printed and region length histograms are saved next to the data file.",
		Args: cobra.ExactArgs(1),
		RunE: runDecode,
	}
	decodeCmd.Flags().StringVar(&tieBreakName, "tie-break", hmm.PreferHighest.String(), "state kept among equal scores: highest or lowest")
	decodeCmd.Flags().BoolVar(&accuracyIncludeFirst, "accuracy-include-first", false, "include position 0 when computing accuracy")
	decodeCmd.Flags().BoolVar(&noPlots, "no-plots", false, "do not build or save histograms")
	decodeCmd.Flags().BoolVar(&displayPlots, "display", false, "show the histograms in a window")
	decodeCmd.Flags().StringVar(&csvPath, "csv", "", "also write statistics to this CSV file")
	decodeCmd.Flags().IntVar(&bins, "bins", 0, "histogram bin count")

	modelCmd := &cobra.Command{
		Use:   "model",
		Short: "Print the active model as YAML",
		Args:  cobra.NoArgs,
		RunE:  runModel,
	}

	rootCmd.AddCommand(decodeCmd, modelCmd)
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
