package histplot

import (
	"fmt"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"image/color"
)

// DefaultBins is the bin count used when a histogram is not given one.
const DefaultBins = 40

// NewLengthHistogram plots a distribution of region lengths, with the x axis starting at zero.
func NewLengthHistogram(title string, lengths []int, bins int) (*plot.Plot, error) {
	if len(lengths) == 0 {
		return nil, fmt.Errorf("no region lengths to plot for %q", title)
	}
	if bins <= 0 {
		bins = DefaultBins
	}
	values := make(plotter.Values, len(lengths))
	for i, l := range lengths {
		values[i] = float64(l)
	}
	var h *plotter.Histogram
	if lo, hi := floats.Min(values), floats.Max(values); lo == hi {
		// a single distinct length has no spread to bin over
		h = &plotter.Histogram{
			Bins:      []plotter.HistogramBin{{Min: lo - 0.5, Max: lo + 0.5, Weight: float64(len(values))}},
			Width:     1,
			LineStyle: plotter.DefaultLineStyle,
		}
	} else {
		var err error
		h, err = plotter.NewHist(values, bins)
		if err != nil {
			return nil, err
		}
	}
	h.FillColor = color.RGBA{0x78, 0xC6, 0x79, 255}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Region length"
	p.Y.Label.Text = "Regions"
	p.Add(h)
	p.X.Min = 0
	return p, nil
}
