package histplot

import (
	"fmt"
	"github.com/hashicorp/go-multierror"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	DefaultWidth  = 6 * vg.Inch
	DefaultHeight = 4 * vg.Inch
)

// Target is a histogram and the file it should be saved to. The image format follows the file
// extension.
type Target struct {
	Path string
	Plot *plot.Plot
}

func formatOf(path string) (string, error) {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch format {
	case "png", "svg", "pdf", "eps", "jpg", "jpeg", "tif", "tiff":
		return format, nil
	default:
		return "", fmt.Errorf("cannot infer histogram image format from %q", path)
	}
}

// EncodeHistogram renders a histogram at the default size.
func EncodeHistogram(p *plot.Plot, output io.Writer, format string) error {
	w, err := p.WriterTo(DefaultWidth, DefaultHeight, format)
	if err != nil {
		return err
	}
	_, err = w.WriteTo(output)
	return err
}

func (t Target) Save() (err error) {
	format, err := formatOf(t.Path)
	if err != nil {
		return err
	}
	output, err := os.Create(t.Path)
	if err != nil {
		return err
	}
	defer func() {
		if e := output.Close(); e != nil {
			err = multierror.Append(err, e).ErrorOrNil()
		}
	}()
	return EncodeHistogram(t.Plot, output, format)
}

// SaveLengthHistogram builds the histogram of a set of region lengths and saves it to path.
func SaveLengthHistogram(title string, lengths []int, bins int, path string) error {
	p, err := NewLengthHistogram(title, lengths, bins)
	if err != nil {
		return err
	}
	return Target{Path: path, Plot: p}.Save()
}

// SaveAll saves every target, continuing past failures. It returns the paths written and an error
// naming each target that could not be saved.
func SaveAll(targets []Target) (saved []string, err error) {
	var merr *multierror.Error
	for _, t := range targets {
		if e := t.Save(); e != nil {
			merr = multierror.Append(merr, fmt.Errorf("%s: %w", t.Path, e))
			continue
		}
		saved = append(saved, t.Path)
	}
	return saved, merr.ErrorOrNil()
}
