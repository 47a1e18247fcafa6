package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/radiotap"
	"github.com/banshee-data/radiotap/field"
	"github.com/banshee-data/radiotap/internal/testutil"
)

var epoch = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func sampleSet(t *testing.T) []Sample {
	t.Helper()
	var samples []Sample
	for i, dbm := range []int8{-40, -50, -60, -70} {
		rt := radiotap.Build().AntennaSignal(field.AntennaSignal(dbm)).AntennaNoise(-95).Done()
		samples = append(samples, SampleOf(i+1, epoch, rt))
	}
	samples = append(samples, SampleOf(5, epoch, radiotap.Build().Rate(6).Done()))
	return samples
}

func TestSampleOf(t *testing.T) {
	t.Parallel()

	rt, err := radiotap.FromBytes(testutil.VendorFrame())
	require.NoError(t, err)
	s := SampleOf(3, epoch, rt)
	assert.Equal(t, 3, s.Index)
	require.NotNil(t, s.Signal)
	assert.Equal(t, -29.0, *s.Signal)
	assert.Nil(t, s.Noise)
	require.NotNil(t, s.RateMbps)
	assert.Equal(t, 2.0, *s.RateMbps)
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	signals := Signals(sampleSet(t))
	assert.Equal(t, []float64{-40, -50, -60, -70}, signals)

	sum, err := Summarize(signals)
	require.NoError(t, err)
	assert.Equal(t, 4, sum.Count)
	assert.InDelta(t, -55, sum.Mean, 1e-9)
	assert.InDelta(t, 12.909944487, sum.StdDev, 1e-6)
	assert.Equal(t, -70.0, sum.Min)
	assert.Equal(t, -40.0, sum.Max)
	assert.Equal(t, -60.0, sum.P50)
	assert.Equal(t, -40.0, sum.P90)

	// Input order is left alone.
	assert.Equal(t, -40.0, signals[0])
}

func TestSummarize_Edges(t *testing.T) {
	t.Parallel()

	_, err := Summarize(nil)
	assert.ErrorIs(t, err, ErrNoSamples)

	sum, err := Summarize([]float64{-33})
	require.NoError(t, err)
	assert.Equal(t, Summary{Count: 1, Mean: -33, Min: -33, Max: -33, P50: -33, P90: -33}, sum)
}

func TestWriteChart(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteChart(&buf, "Signal test", sampleSet(t)))
	html := buf.String()
	assert.Contains(t, html, "Signal test")
	assert.Contains(t, html, "echarts")
	assert.Contains(t, html, `"signal"`)
	assert.Contains(t, html, `"-"`)

	assert.ErrorIs(t, WriteChart(&buf, "x", nil), ErrNoSamples)
}

func TestWriteChart_WriterError(t *testing.T) {
	t.Parallel()

	err := WriteChart(&testutil.FailingWriter{Limit: 16}, "x", sampleSet(t))
	assert.Error(t, err)
}

func TestWriteHistogram(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "signal.png")
	require.NoError(t, WriteHistogram(path, "Antenna signal", Signals(sampleSet(t)), 4))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), data[:4])

	assert.ErrorIs(t, WriteHistogram(path, "x", nil, 4), ErrNoSamples)
	assert.ErrorContains(t, WriteHistogram(path, "x", []float64{1}, 0), "at least one bin")
	assert.Error(t, WriteHistogram(filepath.Join(t.TempDir(), "missing", "x.png"), "x", []float64{1, 2}, 2))
}
