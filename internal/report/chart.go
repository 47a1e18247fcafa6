package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// missing is how echarts marks a gap in a line series.
const missing = "-"

// WriteChart renders an HTML line chart of signal and noise per frame.
func WriteChart(w io.Writer, title string, samples []Sample) error {
	if len(samples) == 0 {
		return ErrNoSamples
	}

	x := make([]string, 0, len(samples))
	signal := make([]opts.LineData, 0, len(samples))
	noise := make([]opts.LineData, 0, len(samples))
	for _, s := range samples {
		x = append(x, strconv.Itoa(s.Index))
		signal = append(signal, lineValue(s.Signal))
		noise = append(noise, lineValue(s.Noise))
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "100%", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("frames=%d", len(samples))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "frame", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "dBm", NameLocation: "middle", NameGap: 35}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)
	line.SetXAxis(x).
		AddSeries("signal", signal).
		AddSeries("noise", noise)

	if err := line.Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

func lineValue(v *float64) opts.LineData {
	if v == nil {
		return opts.LineData{Value: missing}
	}
	return opts.LineData{Value: *v}
}
