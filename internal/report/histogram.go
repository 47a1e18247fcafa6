package report

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// WriteHistogram saves a histogram of values with the given number of bins.
// The image format follows the file extension.
func WriteHistogram(path, title string, values []float64, bins int) error {
	if len(values) == 0 {
		return ErrNoSamples
	}
	if bins < 1 {
		return fmt.Errorf("histogram needs at least one bin, got %d", bins)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "dBm"
	p.Y.Label.Text = "frames"

	h, err := plotter.NewHist(plotter.Values(values), bins)
	if err != nil {
		return fmt.Errorf("failed to bin values: %w", err)
	}
	h.LineStyle.Width = vg.Points(1)
	p.Add(h)

	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save histogram %s: %w", path, err)
	}
	return nil
}
