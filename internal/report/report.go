// Package report summarises decoded capture headers: signal statistics, an
// HTML line chart and a PNG histogram.
package report

import (
	"errors"
	"slices"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/radiotap"
)

// ErrNoSamples is returned when no frame carried the value being reported.
var ErrNoSamples = errors.New("report: no samples")

// Sample is the per-frame data a report uses. Absent fields are nil.
type Sample struct {
	Index    int
	Captured time.Time
	Signal   *float64 // dBm
	Noise    *float64 // dBm
	RateMbps *float64
}

// SampleOf extracts the reported fields of one decoded header.
func SampleOf(index int, captured time.Time, rt radiotap.Radiotap) Sample {
	s := Sample{Index: index, Captured: captured}
	if rt.AntennaSignal != nil {
		v := float64(*rt.AntennaSignal)
		s.Signal = &v
	}
	if rt.AntennaNoise != nil {
		v := float64(*rt.AntennaNoise)
		s.Noise = &v
	}
	if rt.Rate != nil {
		v := float64(*rt.Rate)
		s.RateMbps = &v
	}
	return s
}

// Signals returns the signal values of samples that have one.
func Signals(samples []Sample) []float64 {
	var out []float64
	for _, s := range samples {
		if s.Signal != nil {
			out = append(out, *s.Signal)
		}
	}
	return out
}

// Summary describes a set of values.
type Summary struct {
	Count  int
	Mean   float64
	StdDev float64 // sample standard deviation, 0 for a single value
	Min    float64
	Max    float64
	P50    float64
	P90    float64
}

// Summarize computes the summary of values.
func Summarize(values []float64) (Summary, error) {
	if len(values) == 0 {
		return Summary{}, ErrNoSamples
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	s := Summary{
		Count: len(sorted),
		Min:   sorted[0],
		Max:   sorted[len(sorted)-1],
		P50:   stat.Quantile(0.5, stat.Empirical, sorted, nil),
		P90:   stat.Quantile(0.9, stat.Empirical, sorted, nil),
	}
	if len(sorted) > 1 {
		s.Mean, s.StdDev = stat.MeanStdDev(sorted, nil)
	} else {
		s.Mean = sorted[0]
	}
	return s, nil
}
