package config

import (
	"fmt"
	"strings"

	"github.com/banshee-data/radiotap/field"
)

// DumpConfig controls how rtdump decodes and reports a capture file.
type DumpConfig struct {
	// MaxFrames stops after this many packets; 0 reads the whole file.
	MaxFrames *int `json:"max_frames,omitempty" toml:"max_frames"`

	// StopOnError makes the first decode error fatal instead of counting it.
	StopOnError *bool `json:"stop_on_error,omitempty" toml:"stop_on_error"`

	// Kinds limits printed fields to these kind names. Empty prints all.
	Kinds []string `json:"kinds,omitempty" toml:"kinds"`

	// BPFFilter is applied when the libpcap reader is built in.
	BPFFilter *string `json:"bpf_filter,omitempty" toml:"bpf_filter"`

	// Report settings
	HistogramBins *int    `json:"histogram_bins,omitempty" toml:"histogram_bins"`
	ChartTitle    *string `json:"chart_title,omitempty" toml:"chart_title"`
}

// DefaultDumpConfig returns a config with every setting at its default.
func DefaultDumpConfig() *DumpConfig {
	return &DumpConfig{
		MaxFrames:     ptr(0),
		StopOnError:   ptr(false),
		BPFFilter:     ptr(""),
		HistogramBins: ptr(20),
		ChartTitle:    ptr("Antenna signal"),
	}
}

// LoadDumpConfig loads a DumpConfig from a .json or .toml file.
func LoadDumpConfig(path string) (*DumpConfig, error) {
	cfg := &DumpConfig{}
	if err := load(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration values are valid.
func (c *DumpConfig) Validate() error {
	if c.MaxFrames != nil && *c.MaxFrames < 0 {
		return fmt.Errorf("max_frames must be non-negative, got %d", *c.MaxFrames)
	}
	if c.HistogramBins != nil && (*c.HistogramBins < 1 || *c.HistogramBins > 1000) {
		return fmt.Errorf("histogram_bins must be between 1 and 1000, got %d", *c.HistogramBins)
	}
	if _, err := c.KindFilter(); err != nil {
		return err
	}
	return nil
}

// GetMaxFrames returns the max_frames value or the default.
func (c *DumpConfig) GetMaxFrames() int {
	if c.MaxFrames == nil {
		return 0 // default: no limit
	}
	return *c.MaxFrames
}

// GetStopOnError returns the stop_on_error value or the default.
func (c *DumpConfig) GetStopOnError() bool {
	if c.StopOnError == nil {
		return false
	}
	return *c.StopOnError
}

// GetBPFFilter returns the bpf_filter value or the default.
func (c *DumpConfig) GetBPFFilter() string {
	if c.BPFFilter == nil {
		return ""
	}
	return strings.TrimSpace(*c.BPFFilter)
}

// GetHistogramBins returns the histogram_bins value or the default.
func (c *DumpConfig) GetHistogramBins() int {
	if c.HistogramBins == nil {
		return 20
	}
	return *c.HistogramBins
}

// GetChartTitle returns the chart_title value or the default.
func (c *DumpConfig) GetChartTitle() string {
	if c.ChartTitle == nil || *c.ChartTitle == "" {
		return "Antenna signal"
	}
	return *c.ChartTitle
}

// KindFilter resolves Kinds. A nil result means no filtering.
func (c *DumpConfig) KindFilter() ([]field.Kind, error) {
	if len(c.Kinds) == 0 {
		return nil, nil
	}
	kinds := make([]field.Kind, 0, len(c.Kinds))
	for _, name := range c.Kinds {
		k, ok := field.ParseKind(strings.TrimSpace(name))
		if !ok {
			return nil, fmt.Errorf("unknown field kind %q in kinds", name)
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}
