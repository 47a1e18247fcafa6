package monitoring

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/banshee-data/radiotap"
	"github.com/banshee-data/radiotap/field"
)

// Decode error classes used as the "class" label.
const (
	ErrorClassTruncated = "truncated"
	ErrorClassMalformed = "malformed"
	ErrorClassOther     = "other"
)

// FrameMetrics counts decoded capture headers. Each instance owns its
// registry so several decoders can run in one process.
type FrameMetrics struct {
	registry    *prometheus.Registry
	frames      prometheus.Counter
	errors      *prometheus.CounterVec
	headerBytes prometheus.Histogram
	kinds       *prometheus.CounterVec
}

// NewFrameMetrics creates and registers the frame collectors.
func NewFrameMetrics() *FrameMetrics {
	m := &FrameMetrics{
		registry: prometheus.NewRegistry(),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "radiotap",
			Name:      "frames_decoded_total",
			Help:      "Capture headers decoded without error.",
		}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "radiotap",
			Name:      "decode_errors_total",
			Help:      "Capture headers that failed to decode, by error class.",
		}, []string{"class"}),
		headerBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "radiotap",
			Name:      "header_bytes",
			Help:      "Declared length of decoded capture headers.",
			Buckets:   prometheus.LinearBuckets(8, 8, 12),
		}),
		kinds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "radiotap",
			Name:      "fields_present_total",
			Help:      "Fields listed in decoded presence bitmaps, by kind.",
		}, []string{"kind"}),
	}
	m.registry.MustRegister(m.frames, m.errors, m.headerBytes, m.kinds)
	return m
}

// ObserveFrame records a successfully decoded header.
func (m *FrameMetrics) ObserveFrame(h field.Header) {
	m.frames.Inc()
	m.headerBytes.Observe(float64(h.Length))
	for _, k := range h.Present {
		m.kinds.WithLabelValues(k.String()).Inc()
	}
}

// ObserveError records a decode failure under its class.
func (m *FrameMetrics) ObserveError(err error) {
	m.errors.WithLabelValues(ErrorClass(err)).Inc()
}

// ErrorClass maps a decode error to its metric label.
func ErrorClass(err error) string {
	switch {
	case radiotap.IsTruncated(err):
		return ErrorClassTruncated
	case radiotap.IsMalformed(err):
		return ErrorClassMalformed
	}
	return ErrorClassOther
}

// Registry exposes the collectors, e.g. for promhttp or tests.
func (m *FrameMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes the current values in the text exposition format, for
// the node exporter textfile collector.
func (m *FrameMetrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics to %s: %w", path, err)
	}
	return nil
}
